/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"fmt"
	"strings"

	"chainguard.dev/noveltybench/agents/executor/retry"
	"chainguard.dev/noveltybench/agents/metrics"
)

// Option is a functional option for configuring the executor
type Option func(*executor) error

// WithMaxTokens sets the maximum tokens for responses
func WithMaxTokens(tokens int64) Option {
	return func(e *executor) error {
		if tokens <= 0 {
			return fmt.Errorf("max tokens must be positive, got %d", tokens)
		}
		if tokens > 32000 { // Maximum for Opus
			return fmt.Errorf("max tokens %d exceeds maximum of 32000", tokens)
		}
		e.maxTokens = tokens
		return nil
	}
}

// WithTemperature sets the temperature for responses
// Claude models support temperature values from 0.0 to 1.0
func WithTemperature(temp float64) Option {
	return func(e *executor) error {
		if temp < 0.0 || temp > 1.0 {
			return fmt.Errorf("temperature must be between 0.0 and 1.0, got %f", temp)
		}
		e.temperature = temp
		return nil
	}
}

// WithModel allows overriding the model name
func WithModel(model string) Option {
	return func(e *executor) error {
		if !strings.HasPrefix(model, "claude-") {
			return fmt.Errorf("model %q does not appear to be a Claude model (expected claude-* format)", model)
		}
		e.modelName = model
		return nil
	}
}

// WithAttributeEnricher sets a custom attribute enricher for metrics.
// If not provided, metrics will only include the model attribute.
func WithAttributeEnricher(enricher metrics.AttributeEnricher) Option {
	return func(e *executor) error {
		e.genaiMetrics.SetAttributeEnricher(enricher)
		return nil
	}
}

// WithRetryConfig sets the retry configuration for handling transient Claude API errors.
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
