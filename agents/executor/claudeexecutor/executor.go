/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/noveltybench/agents/executor/retry"
	"chainguard.dev/noveltybench/agents/metrics"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
)

// Interface is the public interface for Claude execution
type Interface interface {
	// Complete sends prompt as a single user message and returns the reply text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// executor provides the private implementation
type executor struct {
	client       anthropic.Client
	modelName    string
	maxTokens    int64
	temperature  float64
	genaiMetrics *metrics.GenAI    // OpenTelemetry metrics for token usage
	retryConfig  retry.RetryConfig // retry configuration for transient Claude API errors

	complete retry.Func[string, string]
}

// New creates a new Executor with minimal required configuration
func New(client anthropic.Client, opts ...Option) (Interface, error) {
	e := &executor{
		client:       client,
		modelName:    "claude-sonnet-4-5",
		maxTokens:    4000,
		temperature:  0,
		genaiMetrics: metrics.NewGenAI(metrics.MeterName),
		retryConfig:  retry.DefaultRetryConfig(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	e.complete = retry.Wrap(e.retryConfig, "claude messages", isRetryableClaudeError, e.completeOnce)
	return e, nil
}

// Complete implements Interface
func (e *executor) Complete(ctx context.Context, prompt string) (string, error) {
	return e.complete(ctx, prompt)
}

func (e *executor) completeOnce(ctx context.Context, prompt string) (string, error) {
	msg, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(e.modelName),
		MaxTokens: e.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(e.temperature),
	})
	if err != nil {
		return "", err
	}

	e.genaiMetrics.RecordTokens(ctx, e.modelName, msg.Usage.InputTokens, msg.Usage.OutputTokens)

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", errors.New("response contained no text content")
	}

	clog.FromContext(ctx).With("model", e.modelName).
		With("input_tokens", msg.Usage.InputTokens).
		With("output_tokens", msg.Usage.OutputTokens).
		With("stop_reason", string(msg.StopReason)).
		Debug("Claude response received")

	return text.String(), nil
}
