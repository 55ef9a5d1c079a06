package kv

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/pado/internal/constants"
	"github.com/julianstephens/pado/internal/logger"
	"github.com/julianstephens/pado/internal/migration"
	"github.com/julianstephens/pado/migrations"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// Postgres stores keys in the kv table of the pado schema
type Postgres struct {
	connStr  string
	location string
	db       *sql.DB
}

// NewPostgres validates connStr and prepares it for use. The password, when
// given, is injected here and never shown by Location.
func NewPostgres(connStr, password string) (*Postgres, error) {
	if _, err := ValidateConnString(connStr); err != nil {
		return nil, err
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	location := u.Redacted()

	q := u.Query()
	if !hasParam(q, "search_path") {
		q.Set("search_path", constants.AppName)
	}
	u.RawQuery = q.Encode()

	if password != "" {
		if u.User != nil && u.User.Username() != "" {
			u.User = url.UserPassword(u.User.Username(), password)
		} else {
			logger.Warn("Backend password not used: the connection string has no user, add one as postgres://USER@host/db", "location", location)
		}
	}

	return &Postgres{connStr: u.String(), location: location}, nil
}

func hasParam(q url.Values, name string) bool {
	for key := range q {
		if strings.EqualFold(key, name) {
			return true
		}
	}
	return false
}

// ValidateConnString accepts postgres:// URLs without an embedded password
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	parsed, err := url.Parse(connStr)
	if err != nil {
		return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
	}
	if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
		return false, fmt.Errorf("%w: expected a postgres:// URL", ErrInvalidConnectionString)
	}
	if _, isSet := parsed.User.Password(); isSet {
		return false, ErrEmbeddedCredentials
	}
	if parsed.Host == "" {
		return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
	}
	return true, nil
}

func (p *Postgres) Init() error {
	db, err := p.connect()
	if err != nil {
		return err
	}

	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	r, err := p.migrationRunner()
	if err != nil {
		return err
	}
	if _, err := r.Apply(func(msg string) { logger.Info(msg, "backend", "postgres") }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (p *Postgres) Load() error {
	if p.db != nil {
		return nil
	}
	if _, err := p.connect(); err != nil {
		return err
	}
	r, err := p.migrationRunner()
	if err != nil {
		return err
	}
	return r.Validate()
}

func (p *Postgres) connect() (*sql.DB, error) {
	if p.db != nil {
		return p.db, nil
	}

	db, err := sql.Open("postgres", p.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !strings.Contains(strings.ToLower(p.connStr), "sslmode") {
			return nil, fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	p.db = db
	return db, nil
}

func (p *Postgres) migrationRunner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(p.db, subFS, migration.Postgres), nil
}

func (p *Postgres) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

// Location never includes the password
func (p *Postgres) Location() string { return p.location }

func (p *Postgres) Get(key string) (string, bool, error) {
	if p.db == nil {
		return "", false, ErrNotInitialized
	}
	var value string
	err := p.db.QueryRow("SELECT value FROM kv WHERE key = $1", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (p *Postgres) Set(key, value string) error {
	if p.db == nil {
		return ErrNotInitialized
	}
	_, err := p.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value)
	return err
}

func (p *Postgres) Remove(key string) error {
	if p.db == nil {
		return ErrNotInitialized
	}
	_, err := p.db.Exec("DELETE FROM kv WHERE key = $1", key)
	return err
}
