/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/noveltybench/agents/executor/claudeexecutor"
	"chainguard.dev/noveltybench/agents/executor/googleexecutor"
	"chainguard.dev/noveltybench/agents/executor/openaiexecutor"
	"chainguard.dev/noveltybench/agents/executor/retry"
	"chainguard.dev/noveltybench/agents/llm"
	"chainguard.dev/noveltybench/agents/metrics"
	"github.com/anthropics/anthropic-sdk-go"
	aoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"google.golang.org/genai"
)

const (
	providerOpenRouter = "openrouter"
	providerOpenAI     = "openai"
	providerAnthropic  = "anthropic"
	providerGoogle     = "google"
)

// providerFactory builds model clients from the loaded configuration. All
// clients have SDK-level retries disabled so the executors' retry budget is
// the only one in play.
type providerFactory struct {
	cfg      *config
	retry    retry.RetryConfig
	enricher metrics.AttributeEnricher
}

func newProviderFactory(cfg *config, enricher metrics.AttributeEnricher) (*providerFactory, error) {
	rc, err := cfg.retryConfig()
	if err != nil {
		return nil, err
	}
	return &providerFactory{cfg: cfg, retry: rc, enricher: enricher}, nil
}

// completer returns a chat completer for model on the named provider.
func (f *providerFactory) completer(ctx context.Context, provider, model string) (llm.Completer, error) {
	switch provider {
	case providerOpenRouter:
		if f.cfg.OpenRouterKey == "" {
			return nil, errors.New("OPEN_ROUTER_KEY is required for the openrouter provider")
		}
		client := openai.NewClient(
			option.WithAPIKey(f.cfg.OpenRouterKey),
			option.WithBaseURL(f.cfg.OpenRouterBaseURL),
			option.WithMaxRetries(0),
		)
		return openaiexecutor.New(client,
			openaiexecutor.WithModel(model),
			openaiexecutor.WithMaxTokens(f.cfg.MaxTokens),
			openaiexecutor.WithTemperature(f.cfg.Temperature),
			openaiexecutor.WithRetryConfig(f.retry),
			openaiexecutor.WithAttributeEnricher(f.enricher),
		)

	case providerAnthropic:
		if f.cfg.AnthropicAPIKey == "" {
			return nil, errors.New("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
		client := anthropic.NewClient(
			aoption.WithAPIKey(f.cfg.AnthropicAPIKey),
			aoption.WithMaxRetries(0),
		)
		return claudeexecutor.New(client,
			claudeexecutor.WithModel(model),
			claudeexecutor.WithMaxTokens(f.cfg.MaxTokens),
			claudeexecutor.WithTemperature(f.cfg.Temperature),
			claudeexecutor.WithRetryConfig(f.retry),
			claudeexecutor.WithAttributeEnricher(f.enricher),
		)

	case providerGoogle:
		client, err := f.genaiClient(ctx)
		if err != nil {
			return nil, err
		}
		return googleexecutor.New(client,
			googleexecutor.WithModel(model),
			googleexecutor.WithMaxOutputTokens(int32(f.cfg.MaxTokens)),
			googleexecutor.WithTemperature(float32(f.cfg.Temperature)),
			googleexecutor.WithRetryConfig(f.retry),
			googleexecutor.WithAttributeEnricher(f.enricher),
		)

	default:
		return nil, fmt.Errorf("unknown completion provider %q (want %s, %s or %s)",
			provider, providerOpenRouter, providerAnthropic, providerGoogle)
	}
}

// embedder returns the embedding service on the named provider.
func (f *providerFactory) embedder(ctx context.Context, provider string) (llm.Embedder, string, error) {
	model := f.cfg.embeddingModel(provider)
	switch provider {
	case providerOpenAI:
		key := f.cfg.embeddingKey()
		if key == "" {
			return nil, "", errors.New("EMBEDDING_API_KEY (or OCTO_API_KEY) is required for the openai embedding provider")
		}
		client := openai.NewClient(
			option.WithAPIKey(key),
			option.WithBaseURL(f.cfg.EmbeddingBaseURL),
			option.WithMaxRetries(0),
		)
		e, err := openaiexecutor.New(client,
			openaiexecutor.WithEmbeddingModel(model),
			openaiexecutor.WithRetryConfig(f.retry),
			openaiexecutor.WithAttributeEnricher(f.enricher),
		)
		if err != nil {
			return nil, "", err
		}
		return e, model, nil

	case providerGoogle:
		client, err := f.genaiClient(ctx)
		if err != nil {
			return nil, "", err
		}
		e, err := googleexecutor.New(client,
			googleexecutor.WithEmbeddingModel(model),
			googleexecutor.WithRetryConfig(f.retry),
			googleexecutor.WithAttributeEnricher(f.enricher),
		)
		if err != nil {
			return nil, "", err
		}
		return e, model, nil

	default:
		return nil, "", fmt.Errorf("unknown embedding provider %q (want %s or %s)",
			provider, providerOpenAI, providerGoogle)
	}
}

func (f *providerFactory) genaiClient(ctx context.Context) (*genai.Client, error) {
	if f.cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required for the google provider")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  f.cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return client, nil
}
