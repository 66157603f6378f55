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

	assert.Equal(t, "https://api.bls.gov/publicAPI/v2", cfg.BLS.BaseURL)
	assert.Equal(t, 30, cfg.BLS.TimeoutSecs)
	assert.Equal(t, 30*time.Second, cfg.BLS.Timeout())
	assert.Equal(t, 25, cfg.BLS.MaxSeriesPerRequest)
	assert.Equal(t, 5.0, cfg.BLS.RatePerSec)
	assert.Empty(t, cfg.BLS.APIKey)

	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, int64(4000), cfg.Anthropic.MaxTokens)
	assert.Equal(t, 0.7, cfg.Anthropic.Temperature)
	assert.Empty(t, cfg.Anthropic.Key)

	assert.Empty(t, cfg.Storage.DSN)
	assert.Equal(t, 24*time.Hour, cfg.Storage.CacheTTL())

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BLSA_BLS_API_KEY", "env-key")
	t.Setenv("BLSA_ANTHROPIC_KEY", "llm-key")
	t.Setenv("BLSA_SERVER_PORT", "9090")
	t.Setenv("BLSA_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.BLS.APIKey)
	assert.Equal(t, "llm-key", cfg.Anthropic.Key)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestDefault_MatchesLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, *cfg, Default())
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "shouting", Format: "json"})
	assert.Error(t, err)
}
