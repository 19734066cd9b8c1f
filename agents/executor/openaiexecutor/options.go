/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"errors"
	"fmt"

	"chainguard.dev/noveltybench/agents/executor/retry"
	"chainguard.dev/noveltybench/agents/metrics"
)

// Option is a functional option for configuring the executor
type Option func(*executor) error

// WithModel sets the chat model, in whatever naming scheme the endpoint uses
// (OpenRouter expects "vendor/model").
func WithModel(model string) Option {
	return func(e *executor) error {
		if model == "" {
			return errors.New("model cannot be empty")
		}
		e.model = model
		return nil
	}
}

// WithEmbeddingModel sets the model used by Embed.
func WithEmbeddingModel(model string) Option {
	return func(e *executor) error {
		if model == "" {
			return errors.New("embedding model cannot be empty")
		}
		e.embeddingModel = model
		return nil
	}
}

// WithMaxTokens sets the maximum tokens for responses
func WithMaxTokens(tokens int64) Option {
	return func(e *executor) error {
		if tokens <= 0 {
			return fmt.Errorf("max tokens must be positive, got %d", tokens)
		}
		e.maxTokens = tokens
		return nil
	}
}

// WithTemperature sets the sampling temperature.
// OpenAI-compatible endpoints accept values from 0.0 to 2.0.
func WithTemperature(temp float64) Option {
	return func(e *executor) error {
		if temp < 0.0 || temp > 2.0 {
			return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", temp)
		}
		e.temperature = temp
		return nil
	}
}

// WithRetryConfig sets the retry configuration for transient API errors.
// If not set, a default configuration is used.
func WithRetryConfig(cfg retry.RetryConfig) Option {
	return func(e *executor) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		e.retryConfig = cfg
		return nil
	}
}

// WithAttributeEnricher sets a custom attribute enricher for metrics.
func WithAttributeEnricher(enricher metrics.AttributeEnricher) Option {
	return func(e *executor) error {
		e.genaiMetrics.SetAttributeEnricher(enricher)
		return nil
	}
}
