/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"fmt"
	"time"

	"chainguard.dev/noveltybench/agents/embedcache"
	"chainguard.dev/noveltybench/agents/executor/retry"
	"chainguard.dev/noveltybench/benchmark/processor"
	"github.com/sethvargo/go-envconfig"
)

// Provider defaults used when EMBEDDING_MODEL is unset.
const (
	defaultOpenAIEmbeddingModel = "thenlper/gte-large"
	defaultGoogleEmbeddingModel = "gemini-embedding-001"
)

type config struct {
	// Generation and judging through OpenRouter
	OpenRouterKey     string `env:"OPEN_ROUTER_KEY"`
	OpenRouterBaseURL string `env:"OPEN_ROUTER_BASE_URL,default=https://openrouter.ai/api/v1"`

	// OpenAI-compatible embeddings endpoint. OCTO_API_KEY is the legacy name.
	EmbeddingAPIKey  string `env:"EMBEDDING_API_KEY"`
	OctoAPIKey       string `env:"OCTO_API_KEY"`
	EmbeddingBaseURL string `env:"EMBEDDING_BASE_URL,default=https://text.octoai.run/v1"`
	EmbeddingModel   string `env:"EMBEDDING_MODEL"`

	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`

	JudgeModel  string  `env:"JUDGE_MODEL,default=openai/gpt-4o-mini"`
	MaxTokens   int64   `env:"MAX_TOKENS,default=4000"`
	Temperature float64 `env:"TEMPERATURE,default=0"`

	RetryAttempts    int           `env:"RETRY_ATTEMPTS,default=3"`
	RetryBaseBackoff time.Duration `env:"RETRY_BASE_BACKOFF,default=1s"`
	RetryMaxBackoff  time.Duration `env:"RETRY_MAX_BACKOFF,default=30s"`

	QualityThreshold int     `env:"QUALITY_THRESHOLD,default=3"`
	NoveltyThreshold float64 `env:"NOVELTY_THRESHOLD,default=0.1"`
	MaxAccepted      int     `env:"MAX_ACCEPTED,default=0"`

	EmbeddingCacheSize int `env:"EMBEDDING_CACHE_SIZE,default=10000"`
	MaxConcurrency     int `env:"MAX_CONCURRENCY,default=0"`
}

// loadConfig reads the configuration through l, falling back to the process
// environment when l is nil.
func loadConfig(ctx context.Context, l envconfig.Lookuper) (*config, error) {
	if l == nil {
		l = envconfig.OsLookuper()
	}
	var cfg config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}
	if cfg.EmbeddingCacheSize <= 0 {
		cfg.EmbeddingCacheSize = embedcache.DefaultCapacity
	}
	if cfg.MaxConcurrency < 0 {
		return nil, fmt.Errorf("MAX_CONCURRENCY cannot be negative, got %d", cfg.MaxConcurrency)
	}
	if _, err := cfg.thresholds(); err != nil {
		return nil, err
	}
	if _, err := cfg.retryConfig(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *config) embeddingKey() string {
	if c.EmbeddingAPIKey != "" {
		return c.EmbeddingAPIKey
	}
	return c.OctoAPIKey
}

func (c *config) embeddingModel(provider string) string {
	if c.EmbeddingModel != "" {
		return c.EmbeddingModel
	}
	if provider == providerGoogle {
		return defaultGoogleEmbeddingModel
	}
	return defaultOpenAIEmbeddingModel
}

func (c *config) thresholds() (processor.Thresholds, error) {
	t := processor.Thresholds{
		Quality:     c.QualityThreshold,
		Novelty:     c.NoveltyThreshold,
		MaxAccepted: c.MaxAccepted,
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("invalid thresholds: %w", err)
	}
	return t, nil
}

func (c *config) retryConfig() (retry.RetryConfig, error) {
	rc := retry.DefaultRetryConfig()
	rc.BaseBackoff = c.RetryBaseBackoff
	rc.MaxBackoff = c.RetryMaxBackoff
	rc, err := rc.WithAttempts(c.RetryAttempts)
	if err != nil {
		return rc, fmt.Errorf("RETRY_ATTEMPTS: %w", err)
	}
	if err := rc.Validate(); err != nil {
		return rc, fmt.Errorf("invalid retry config: %w", err)
	}
	return rc, nil
}
