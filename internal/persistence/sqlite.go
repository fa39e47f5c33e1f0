package persistence

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/spec-kit/resource-service/internal/config"
)

// SQLite wraps a database/sql handle backed by modernc.org/sqlite.
type SQLite struct {
	DB *sql.DB
}

// NewSQLite opens the database and applies migrations.
func NewSQLite(ctx context.Context, cfg config.SQLiteConfig, logger *zap.Logger) (*SQLite, error) {
	if cfg.DSN == "" {
		return nil, errors.New("SQLITE_DSN not provided")
	}
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, err
	}
	// One connection serializes writers and keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := RunMigrations(ctx, db, DialectSQLite, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("opened sqlite", zap.String("dsn", cfg.DSN))
	return &SQLite{DB: db}, nil
}

// Ping verifies database connectivity.
func (s *SQLite) Ping(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("sqlite not configured")
	}
	return s.DB.PingContext(ctx)
}

// Close releases the handle.
func (s *SQLite) Close() {
	if s != nil && s.DB != nil {
		_ = s.DB.Close()
	}
}
