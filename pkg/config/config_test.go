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

	assert.Equal(t, "SPY", cfg.Benchmark)
	assert.Equal(t, 4, cfg.TopK)
	assert.Equal(t, 420, cfg.LookbackDays)
	assert.Equal(t, 4, cfg.RankWorkers)
	assert.Equal(t, "pickmem", cfg.Memory.Namespace)
	assert.Equal(t, 14*24*time.Hour, cfg.Memory.TTL)
	assert.NotEmpty(t, cfg.Universe)
	assert.Contains(t, cfg.Universe, "AAPL")
}

func TestLoad_UniverseOverride(t *testing.T) {
	t.Setenv("UNIVERSE_TICKERS", " AAPL, MSFT ,,NVDA ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, cfg.Universe)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("ENV", "sandbox")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidTopK(t *testing.T) {
	t.Setenv("TOP_K", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnvAsInt_Malformed(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")

	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
}
