package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "https://query1.finance.yahoo.com", cfg.Market.BaseURL)
	assert.Equal(t, "^GSPC", cfg.Market.Benchmark)
	assert.Equal(t, "2y", cfg.Market.LookbackPeriod)
	assert.Equal(t, 15*time.Second, cfg.Market.Timeout)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "data", cfg.Store.Dir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ENV", "production")
	t.Setenv("MARKET_BENCHMARK", "^KS11")
	t.Setenv("MARKET_TIMEOUT", "5s")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("DB_MAX_CONNS", "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "^KS11", cfg.Market.Benchmark)
	assert.Equal(t, 5*time.Second, cfg.Market.Timeout)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 42, cfg.Database.MaxConns)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("ENV", "sandbox")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidDuration_FallsBack(t *testing.T) {
	t.Setenv("MARKET_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.Market.Timeout)
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	t.Setenv("MARKET_REQUESTS_PER_SEC", "-1")

	_, err := Load()
	assert.Error(t, err)
}
