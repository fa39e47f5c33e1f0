package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "resource-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:3000", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL())
	assert.True(t, cfg.Tickets.EnforceUserReference)
	assert.Equal(t, 256, cfg.Events.QueueSize)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQLITE_DSN", "file:test.db")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("TICKETS_ENFORCE_USER_REFERENCE", "false")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8081", cfg.App.Addr())
	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "file:test.db", cfg.SQLite.DSN)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Cache.TTL())
	assert.False(t, cfg.Tickets.EnforceUserReference)
	assert.Equal(t, time.Duration(0), cfg.App.RequestTimeout())
}

func TestLoadRejectsBadStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("POSTGRES_DSN", "")
	_, err = Load()
	require.ErrorContains(t, err, "POSTGRES_DSN")
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("REDIS_DB", "zero")
	_, err := Load()
	require.ErrorContains(t, err, "REDIS_DB")
}

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("X_INT", "nope")
	t.Setenv("X_BOOL", "maybe")
	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))
	assert.True(t, getEnvAsBool("X_BOOL", true))
	assert.Equal(t, "d", getEnv("X_MISSING_KEY", "d"))
}
