package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/resource-service/internal/config"
)

func TestNewSQLite_AppliesMigrations(t *testing.T) {
	ctx := context.Background()
	db, err := NewSQLite(ctx, config.SQLiteConfig{DSN: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Ping(ctx))

	var tables []string
	rows, err := db.DB.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'tickets') ORDER BY name`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		tables = append(tables, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"tickets", "users"}, tables)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, err := NewSQLite(ctx, config.SQLiteConfig{DSN: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, RunMigrations(ctx, db.DB, DialectSQLite, zap.NewNop()))
}

func TestRunMigrations_UnknownDialect(t *testing.T) {
	db, err := NewSQLite(context.Background(), config.SQLiteConfig{DSN: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)

	err = RunMigrations(context.Background(), db.DB, "oracle", zap.NewNop())
	require.ErrorContains(t, err, "oracle")
}

func TestNewSQLite_RequiresDSN(t *testing.T) {
	_, err := NewSQLite(context.Background(), config.SQLiteConfig{}, zap.NewNop())
	require.Error(t, err)
}

func TestNilHandles(t *testing.T) {
	var pg *Postgres
	var lite *SQLite
	var rd *Redis
	assert.Error(t, pg.Ping(context.Background()))
	assert.Error(t, lite.Ping(context.Background()))
	assert.Error(t, rd.Ping(context.Background()))
	assert.Nil(t, pg.PoolHandle())
	pg.Close()
	lite.Close()
	rd.Close()
}
