// Package config loads application configuration and wires the global logger.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	BLS       BLSConfig       `yaml:"bls" mapstructure:"bls"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Storage   StorageConfig   `yaml:"storage" mapstructure:"storage"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// BLSConfig configures the statistics provider client.
type BLSConfig struct {
	BaseURL             string  `yaml:"base_url" mapstructure:"base_url"`
	APIKey              string  `yaml:"api_key" mapstructure:"api_key"`
	TimeoutSecs         int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxSeriesPerRequest int     `yaml:"max_series_per_request" mapstructure:"max_series_per_request"`
	RatePerSec          float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// Timeout returns the request timeout as a duration.
func (c BLSConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// AnthropicConfig configures the language-model client.
type AnthropicConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	Model       string  `yaml:"model" mapstructure:"model"`
	MaxTokens   int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
}

// StorageConfig configures session and cache persistence. An empty DSN keeps
// everything in memory; a postgres:// URL or a SQLite file path persists it.
type StorageConfig struct {
	DSN           string `yaml:"dsn" mapstructure:"dsn"`
	CacheTTLHours int    `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
}

// CacheTTL returns the series cache lifetime as a duration. Zero disables
// response caching.
func (c StorageConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

// ServerConfig configures the HTTP query server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BLSA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("bls.base_url", "https://api.bls.gov/publicAPI/v2")
	// Empty-string defaults register the secret keys with viper so that
	// environment overrides survive Unmarshal.
	v.SetDefault("bls.api_key", "")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("bls.timeout_secs", 30)
	v.SetDefault("bls.max_series_per_request", 25)
	v.SetDefault("bls.rate_per_sec", 5)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.cache_ttl_hours", 24)
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 4000)
	v.SetDefault("anthropic.temperature", 0.7)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Default returns the configuration produced by defaults alone, used by
// the config init command to write a starter file.
func Default() Config {
	v := viper.New()
	applyDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
