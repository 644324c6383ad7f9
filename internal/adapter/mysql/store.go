// Package mysql loads built databases into MySQL/MariaDB so other services can
// query them with SQL.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/aero-refdb/internal/pipeline"
	mysqldriver "github.com/go-sql-driver/mysql"
)

const schema = `
CREATE TABLE IF NOT EXISTS refdb_entries (
	database_name VARCHAR(32)  NOT NULL,
	id            VARCHAR(16)  NOT NULL,
	position      INT          NOT NULL,
	body          JSON         NOT NULL,
	built_at      DATETIME(6)  NOT NULL,
	PRIMARY KEY (database_name, id),
	KEY idx_refdb_entries_position (database_name, position)
)`

const (
	deleteEntries = `DELETE FROM refdb_entries WHERE database_name = ?`
	insertEntry   = `INSERT INTO refdb_entries (database_name, id, position, body, built_at) VALUES (?, ?, ?, ?, ?)`
)

// Store is a pipeline.Sink that replaces a database's rows in one transaction.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open connects using a go-sql-driver DSN and verifies the connection.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	cfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_DSN: %w", err)
	}
	cfg.ParseTime = true

	connector, err := mysqldriver.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close() //nolint:errcheck // ping already failed
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("connected to database", "addr", cfg.Addr, "db", cfg.DBName)
	return NewStore(db, logger), nil
}

// NewStore wraps an existing connection pool.
func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func (s *Store) Name() string { return "mysql" }

// EnsureSchema creates the entries table when it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Publish clears the dataset's previous rows and loads the new ones. Readers
// see either the old database or the new one, never a mix.
func (s *Store) Publish(ctx context.Context, ds pipeline.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction for %s: %w", ds.Name(), err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, deleteEntries, ds.Name()); err != nil {
		return fmt.Errorf("clear %s: %w", ds.Name(), err)
	}

	stmt, err := tx.PrepareContext(ctx, insertEntry)
	if err != nil {
		return fmt.Errorf("prepare insert for %s: %w", ds.Name(), err)
	}
	defer stmt.Close()

	position := 0
	for id, entry := range ds.Entries {
		body, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("serialize %s entry %s: %w", ds.Name(), id, err)
		}
		if _, err := stmt.ExecContext(ctx, ds.Name(), id, position, body, ds.Meta.BuiltAt); err != nil {
			return fmt.Errorf("insert %s entry %s: %w", ds.Name(), id, err)
		}
		position++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", ds.Name(), err)
	}
	s.logger.Info("database loaded", "database", ds.Name(), "rows", position)
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
