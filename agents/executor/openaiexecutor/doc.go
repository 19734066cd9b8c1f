/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package openaiexecutor sends single-turn chat completions and embedding
// requests to any OpenAI-compatible endpoint, such as OpenRouter for chat or
// an OpenAI-style embedding service.
//
// # Basic Usage
//
//	client := openai.NewClient(
//	    option.WithAPIKey(cfg.OpenRouterKey),
//	    option.WithBaseURL("https://openrouter.ai/api/v1"),
//	    option.WithMaxRetries(0),
//	)
//
//	exec, err := openaiexecutor.New(client,
//	    openaiexecutor.WithModel("openai/gpt-4o-mini"),
//	    openaiexecutor.WithMaxTokens(4000),
//	)
//	if err != nil {
//	    return err
//	}
//
//	answer, err := exec.Complete(ctx, prompt)
//
// Embedding requests use the model configured with WithEmbeddingModel:
//
//	vec, err := exec.Embed(ctx, answer)
//
// # Retries
//
// Both calls are wrapped with retry.Wrap. Rate limits, timeouts, server
// errors, and transport failures are retried with exponential backoff; other
// client errors surface immediately. The SDK's own retry loop should be
// disabled with option.WithMaxRetries(0) so that the configured attempt budget
// is the only one in effect.
//
// # Metrics
//
// Token usage reported by the endpoint is recorded through the shared
// metrics.GenAI counters with the model as a dimension.
package openaiexecutor
