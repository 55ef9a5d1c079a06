package kv

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/pado/internal/constants"
	"github.com/julianstephens/pado/internal/logger"
	"github.com/julianstephens/pado/internal/migration"
	"github.com/julianstephens/pado/migrations"
)

// SQLite stores keys in a single kv table of a local database file
type SQLite struct {
	path string
	db   *sql.DB
}

func NewSQLite(path string) *SQLite {
	return &SQLite{path: path}
}

func (s *SQLite) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	r, err := s.migrationRunner()
	if err != nil {
		return err
	}
	if _, err := r.Apply(func(msg string) { logger.Info(msg, "backend", "sqlite") }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLite) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return ErrNotInitialized
	}

	if err := s.open(); err != nil {
		return err
	}

	r, err := s.migrationRunner()
	if err != nil {
		return err
	}
	return r.Validate()
}

func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLite) Location() string { return s.path }

// DB returns the underlying connection, nil before Init or Load
func (s *SQLite) DB() *sql.DB { return s.db }

func (s *SQLite) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLite) migrationRunner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.SQLite), nil
}

func (s *SQLite) Get(key string) (string, bool, error) {
	if s.db == nil {
		return "", false, ErrNotInitialized
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLite) Set(key, value string) error {
	if s.db == nil {
		return ErrNotInitialized
	}
	now := time.Now().UTC().Format(constants.TimestampFormat)
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now)
	return err
}

func (s *SQLite) Remove(key string) error {
	if s.db == nil {
		return ErrNotInitialized
	}
	_, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key)
	return err
}
