// Package kv provides the string key-value namespaces the record store
// persists into. Every backend stores opaque string values under a small
// fixed set of keys, mirroring browser local storage.
package kv

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotInitialized is returned by Load when the backing storage does not exist yet
	ErrNotInitialized = errors.New("storage not initialized, run 'pado init' first")
	// ErrAlreadyInitialized is returned by Init when storage already exists
	ErrAlreadyInitialized = errors.New("storage already initialized")
)

// Backend is a string key-value namespace
type Backend interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Get returns the value stored under key; ok is false when the key is absent
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error

	// Location describes where the data lives, for messages and backups
	Location() string
}

// Options carries settings that only some backends use
type Options struct {
	// Password for remote backends; never read from the DSN itself
	Password string
	// Timeout bounds each round trip to a Valkey server; zero means the default
	Timeout time.Duration
}

// Open picks a backend from the shape of dsn without connecting
func Open(dsn string, opts Options) (Backend, error) {
	switch {
	case dsn == "":
		return nil, fmt.Errorf("empty storage location")
	case dsn == "memory" || dsn == "memory://":
		return NewMemory(), nil
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		pg, err := NewPostgres(dsn, opts.Password)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case strings.HasPrefix(dsn, "valkey://") || strings.HasPrefix(dsn, "redis://"):
		vk, err := NewValkey(dsn, opts.Password, opts.Timeout)
		if err != nil {
			return nil, err
		}
		return vk, nil
	case strings.HasSuffix(dsn, ".db") || strings.HasSuffix(dsn, ".sqlite"):
		return NewSQLite(dsn), nil
	default:
		return NewFile(dsn), nil
	}
}

// IsRemote reports whether dsn points at a server rather than a local file
func IsRemote(dsn string) bool {
	for _, p := range []string{"postgres://", "postgresql://", "valkey://", "redis://"} {
		if strings.HasPrefix(dsn, p) {
			return true
		}
	}
	return false
}
