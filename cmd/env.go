package main

import (
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/RakeemRanger/bls-data-assistant/internal/answer"
	"github.com/RakeemRanger/bls-data-assistant/internal/intent"
	"github.com/RakeemRanger/bls-data-assistant/internal/pipeline"
	"github.com/RakeemRanger/bls-data-assistant/internal/store"
	"github.com/RakeemRanger/bls-data-assistant/pkg/anthropic"
	"github.com/RakeemRanger/bls-data-assistant/pkg/bls"
)

// newProvider builds the BLS client from config, wrapped with the response
// cache when one is configured.
func newProvider() bls.Client {
	opts := []bls.Option{
		bls.WithBaseURL(cfg.BLS.BaseURL),
		bls.WithTimeout(cfg.BLS.Timeout()),
	}
	if cfg.BLS.RatePerSec > 0 {
		opts = append(opts, bls.WithRateLimit(rate.Limit(cfg.BLS.RatePerSec), 5))
	}

	client := bls.NewClient(cfg.BLS.APIKey, opts...)
	if ttl := cfg.Storage.CacheTTL(); ttl > 0 {
		return store.NewCachedProvider(client, appStore, ttl)
	}
	return client
}

// newAIClient builds the Anthropic client, or nil when no key is
// configured — extraction and composition then run their deterministic
// paths instead of failing.
func newAIClient() anthropic.Client {
	if cfg.Anthropic.Key == "" {
		zap.L().Warn("no anthropic key configured, running with deterministic extraction and answers")
		return nil
	}
	return anthropic.NewClient(cfg.Anthropic.Key)
}

// newPipeline wires the full query pipeline from config.
func newPipeline() *pipeline.Pipeline {
	ai := newAIClient()
	return pipeline.New(
		intent.New(ai, cfg.Anthropic.Model),
		answer.New(ai, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens, cfg.Anthropic.Temperature),
		newProvider(),
		cfg.BLS.MaxSeriesPerRequest,
	)
}
