/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/noveltybench/agents/executor/retry"
	"chainguard.dev/noveltybench/agents/metrics"
	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
)

// Interface is the public interface for OpenAI-compatible execution
type Interface interface {
	// Complete sends prompt as a single user message and returns the reply text.
	Complete(ctx context.Context, prompt string) (string, error)

	// Embed returns the embedding vector of text.
	Embed(ctx context.Context, text string) ([]float64, error)
}

// executor provides the private implementation
type executor struct {
	client         openai.Client
	model          string
	embeddingModel string
	maxTokens      int64
	temperature    float64
	retryConfig    retry.RetryConfig
	genaiMetrics   *metrics.GenAI

	complete retry.Func[string, string]
	embed    retry.Func[string, []float64]
}

// emptyResponseError reports a response that carried no choices or vectors.
type emptyResponseError struct {
	what string
}

func (e *emptyResponseError) Error() string {
	return fmt.Sprintf("response contained no %s", e.what)
}

// New creates a new executor with minimal required configuration
func New(client openai.Client, opts ...Option) (Interface, error) {
	e := &executor{
		client:       client,
		model:        "openai/gpt-4o-mini",
		maxTokens:    4000,
		temperature:  0,
		retryConfig:  retry.DefaultRetryConfig(),
		genaiMetrics: metrics.NewGenAI(metrics.MeterName),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	e.complete = retry.Wrap(e.retryConfig, "openai chat completion", isRetryableOpenAIError, e.completeOnce)
	e.embed = retry.Wrap(e.retryConfig, "openai embedding", isRetryableOpenAIError, e.embedOnce)
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
	res, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: e.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(e.maxTokens),
		Temperature: openai.Float(e.temperature),
	})
	if err != nil {
		return "", err
	}

	e.genaiMetrics.RecordTokens(ctx, e.model, res.Usage.PromptTokens, res.Usage.CompletionTokens)

	if len(res.Choices) == 0 {
		return "", &emptyResponseError{what: "choices"}
	}

	clog.FromContext(ctx).With("model", e.model).
		With("prompt_tokens", res.Usage.PromptTokens).
		With("completion_tokens", res.Usage.CompletionTokens).
		Debug("Chat completion finished")

	return res.Choices[0].Message.Content, nil
}

func (e *executor) embedOnce(ctx context.Context, text string) ([]float64, error) {
	res, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: e.embeddingModel,
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return nil, err
	}

	e.genaiMetrics.RecordEmbedding(ctx, e.embeddingModel, res.Usage.PromptTokens)

	if len(res.Data) == 0 || len(res.Data[0].Embedding) == 0 {
		return nil, &emptyResponseError{what: "embeddings"}
	}
	return res.Data[0].Embedding, nil
}
