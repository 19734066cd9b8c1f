/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/noveltybench/agents/executor/retry"
	"chainguard.dev/noveltybench/agents/metrics"
	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"
)

// Interface is the public interface for Gemini execution
type Interface interface {
	// Complete sends prompt as a single user turn and returns the reply text.
	Complete(ctx context.Context, prompt string) (string, error)

	// Embed returns the embedding vector of text.
	Embed(ctx context.Context, text string) ([]float64, error)
}

// executor provides the private implementation
type executor struct {
	client          *genai.Client
	model           string
	embeddingModel  string
	temperature     float32
	maxOutputTokens int32
	genaiMetrics    *metrics.GenAI
	retryConfig     retry.RetryConfig

	complete retry.Func[string, string]
	embed    retry.Func[string, []float64]
}

// New creates a new executor
func New(client *genai.Client, opts ...Option) (Interface, error) {
	if client == nil {
		return nil, errors.New("client cannot be nil")
	}

	e := &executor{
		client:          client,
		model:           "gemini-2.5-flash",
		temperature:     0,
		maxOutputTokens: 4000,
		genaiMetrics:    metrics.NewGenAI(metrics.MeterName),
		retryConfig:     retry.DefaultRetryConfig(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	e.complete = retry.Wrap(e.retryConfig, "gemini generate content", isRetryableGeminiError, e.completeOnce)
	e.embed = retry.Wrap(e.retryConfig, "gemini embed content", isRetryableGeminiError, e.embedOnce)
	return e, nil
}

// Complete implements Interface
func (e *executor) Complete(ctx context.Context, prompt string) (string, error) {
	return e.complete(ctx, prompt)
}

// Embed implements Interface
func (e *executor) Embed(ctx context.Context, text string) ([]float64, error) {
	if e.embeddingModel == "" {
		return nil, errors.New("no embedding model configured")
	}
	return e.embed(ctx, text)
}

func (e *executor) completeOnce(ctx context.Context, prompt string) (string, error) {
	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(e.temperature),
		MaxOutputTokens: e.maxOutputTokens,
	})
	if err != nil {
		return "", err
	}

	if resp.UsageMetadata != nil {
		e.genaiMetrics.RecordTokens(ctx, e.model,
			int64(resp.UsageMetadata.PromptTokenCount),
			int64(resp.UsageMetadata.CandidatesTokenCount))
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("response contained no candidates")
	}

	clog.FromContext(ctx).With("model", e.model).
		With("finish_reason", string(resp.Candidates[0].FinishReason)).
		Debug("Gemini response received")

	return resp.Text(), nil
}

func (e *executor) embedOnce(ctx context.Context, text string) ([]float64, error) {
	resp, err := e.client.Models.EmbedContent(ctx, e.embeddingModel, genai.Text(text), nil)
	if err != nil {
		return nil, err
	}

	e.genaiMetrics.RecordEmbedding(ctx, e.embeddingModel, 0)

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("response contained no embeddings")
	}

	values := resp.Embeddings[0].Values
	vec := make([]float64, len(values))
	for i, v := range values {
		vec[i] = float64(v)
	}
	return vec, nil
}
