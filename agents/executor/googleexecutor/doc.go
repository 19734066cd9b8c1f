/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package googleexecutor sends single-turn prompts and embedding requests to
// Gemini models through the Google Gen AI SDK.
//
// # Basic Usage
//
//	client, err := genai.NewClient(ctx, &genai.ClientConfig{
//	    APIKey:  cfg.GeminiKey,
//	    Backend: genai.BackendGeminiAPI,
//	})
//	if err != nil {
//	    return err
//	}
//
//	exec, err := googleexecutor.New(client,
//	    googleexecutor.WithModel("gemini-2.5-flash"),
//	    googleexecutor.WithEmbeddingModel("gemini-embedding-001"),
//	)
//
//	answer, err := exec.Complete(ctx, prompt)
//	vec, err := exec.Embed(ctx, answer)
//
// # Configuration Options
//
//   - WithModel: chat model (must be gemini-*)
//   - WithEmbeddingModel: model used by Embed
//   - WithTemperature: 0.0 to 2.0
//   - WithMaxOutputTokens: response length cap
//   - WithRetryConfig: attempt budget and backoff for transient errors
//   - WithAttributeEnricher: extra metric attributes
//
// # Retries
//
// Calls are wrapped with retry.Wrap. Quota exhaustion, rate limiting, and
// server errors are retried; the classifier inspects genai.APIError codes
// first and falls back to matching well-known error text.
//
// # Vector Precision
//
// Gemini returns float32 embeddings; Embed widens them to float64 so they
// can be compared with vectors from any other provider.
package googleexecutor
