// Package config reads pado's environment configuration. A .env file in the
// working directory or the config directory is loaded first; real
// environment variables always win over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/julianstephens/pado/internal/constants"
	"github.com/julianstephens/pado/internal/kv"
)

type Config struct {
	Store           string        `env:"PADO_STORE"`
	Debug           bool          `env:"PADO_DEBUG"`
	Timezone        string        `env:"PADO_TIMEZONE"         envDefault:"Local"`
	BackendPassword string        `env:"PADO_BACKEND_PASSWORD"`
	ValkeyTimeout   time.Duration `env:"PADO_VALKEY_TIMEOUT"   envDefault:"2s"`
}

// Load reads .env files (missing ones are skipped) and then the environment
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = DefaultEnvFiles()
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Store == "" {
		cfg.Store = constants.DefaultConfigPath
	}
	cfg.Store = ExpandHome(cfg.Store)

	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultEnvFiles lists ./.env and <configdir>/.env
func DefaultEnvFiles() []string {
	files := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".config", constants.AppName, ".env"))
	}
	return files
}

// Location resolves Timezone, "Local" or empty meaning the system zone
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, constants.DefaultTimezone) {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ConfigDir is where logs, backups and the reminder lockfile live. Remote
// stores have no directory of their own, so they use the default one.
func (c Config) ConfigDir() string {
	if c.Store == "" || kv.IsRemote(c.Store) || c.Store == "memory" || c.Store == "memory://" {
		return filepath.Dir(ExpandHome(constants.DefaultConfigPath))
	}
	return filepath.Dir(c.Store)
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
