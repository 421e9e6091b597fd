package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLite is a Backend storing every namespace as one row of the kv table.
type SQLite struct {
	db  *sqlx.DB
	log zerolog.Logger
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bloc"
	}
	return filepath.Join(home, ".local", "share", "bloc")
}

// DefaultDBPath returns the default database file path
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "bloc.db")
}

// OpenSQLite opens the database file at dbPath and runs migrations
func OpenSQLite(dbPath string, log zerolog.Logger) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", dbPath)
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &SQLite{db: db, log: log.With().Str("component", "sqlite").Logger()}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// gooseLogger routes migration output through zerolog instead of stdout.
type gooseLogger struct {
	log zerolog.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Debug().Msgf(format, v...)
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Error().Msgf(format, v...)
}

func (s *SQLite) migrate() error {
	goose.SetLogger(gooseLogger{log: s.log})
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(s.db.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Get returns the value stored under key
func (s *SQLite) Get(key string) (string, error) {
	var value string
	err := s.db.Get(&value, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return value, nil
}

const upsertSQL = `
	INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

// Set stores value under key, replacing what was there
func (s *SQLite) Set(key, value string) error {
	if _, err := s.db.Exec(upsertSQL, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// SetMany writes all values in one transaction
func (s *SQLite) SetMany(values map[string]string) error {
	now := time.Now().UTC()
	return s.Transaction(func(tx *sqlx.Tx) error {
		for key, value := range values {
			if _, err := tx.Exec(upsertSQL, key, value, now); err != nil {
				return fmt.Errorf("write %s: %w", key, err)
			}
		}
		return nil
	})
}

// Delete removes key; a missing key is not an error
func (s *SQLite) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Clear removes every key
func (s *SQLite) Clear() error {
	_, err := s.db.Exec(`DELETE FROM kv`)
	return err
}

// Keys lists stored keys in order
func (s *SQLite) Keys() ([]string, error) {
	var keys []string
	if err := s.db.Select(&keys, `SELECT key FROM kv ORDER BY key`); err != nil {
		return nil, err
	}
	return keys, nil
}

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Transaction executes a function within a transaction
func (s *SQLite) Transaction(fn func(*sqlx.Tx) error) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
