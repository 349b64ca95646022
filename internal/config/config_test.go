package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crowdfund/internal/config/configs"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, configs.StoragePostgres, cfg.Storage.Driver)
	assert.False(t, cfg.Chain.Enabled)
	assert.Equal(t, 15*time.Second, cfg.Payout.Interval)
	assert.Equal(t, "localhost:5432", cfg.Psql.Addr.Host)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
	assert.Equal(t, "text", cfg.Log.SlogFormat())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("STORAGE_SEED_DEMO", "true")
	t.Setenv("PAYOUT_BATCH", "7")
	t.Setenv("CHAIN_ENABLED", "true")
	t.Setenv("CHAIN_PRIVATE_KEY", "deadbeef")
	t.Setenv("CHAIN_CHAIN_ID", "1337")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint16(9090), cfg.HTTP.Port)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.Equal(t, "json", cfg.Log.SlogFormat())
	assert.Equal(t, configs.StorageMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.SeedDemo)
	assert.Equal(t, 7, cfg.Payout.Batch)
	assert.Equal(t, int64(1337), cfg.Chain.ChainID)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{"STORAGE_DRIVER": "mongo"}},
		{name: "chain without key", env: map[string]string{"CHAIN_ENABLED": "true"}},
		{name: "no workers", env: map[string]string{"PAYOUT_WORKERS": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}
