package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TTL", "20m")
	t.Setenv("SOURCE_BASE_URL", "http://localhost:8081/producto")
	t.Setenv("BASKET_BATCH_SIZE", "5")
	t.Setenv("SNAPSHOT_WATCHLIST", "arroz, leche ,,cafe")
	t.Setenv("OFFLINE_MODE", "1")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 20*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "http://localhost:8081/producto", cfg.Source.BaseURL)
	assert.Equal(t, 5, cfg.Basket.BatchSize)
	assert.Equal(t, []string{"arroz", "leche", "cafe"}, cfg.Snapshot.Watchlist)
	assert.True(t, cfg.Development.OfflineMode)

	// sin config.yaml los defaults se mantienen
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 500*time.Millisecond, cfg.Basket.BatchDelay)
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("ENVIRONMENT", "")
	assert.Equal(t, "development", GetEnvironment())

	t.Setenv("ENVIRONMENT", "Production")
	assert.Equal(t, "production", GetEnvironment())

	t.Setenv("ENV", "staging")
	assert.Equal(t, "staging", GetEnvironment())
}
