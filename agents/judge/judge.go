/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/noveltybench/agents/llm"
	"chainguard.dev/noveltybench/agents/promptbuilder"
	"github.com/chainguard-dev/clog"
)

// judge implements Interface on top of a text completer
type judge struct {
	completer llm.Completer
	model     string
}

// New creates a judge that sends rubric prompts to completer. model names the
// judge model in errors and logs.
func New(completer llm.Completer, model string) Interface {
	return &judge{
		completer: completer,
		model:     model,
	}
}

// Judge implements Interface
func (j *judge) Judge(ctx context.Context, request *Request) (*Judgement, error) {
	if request.Prompt == "" {
		return nil, errors.New("prompt is required")
	}
	if request.Answer == "" {
		return nil, errors.New("answer is required")
	}

	template, err := templateFor(request.Mode)
	if err != nil {
		return nil, err
	}
	prompt, err := promptbuilder.Render(template, request)
	if err != nil {
		return nil, fmt.Errorf("building judge prompt: %w", err)
	}

	response, err := j.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, &llm.JudgeError{Model: j.model, Err: err}
	}
	if strings.TrimSpace(response) == "" {
		return nil, &llm.JudgeError{Model: j.model, Err: errors.New("empty response")}
	}

	score, err := ParseScore(response, request.Mode.ScoreTag())
	if err != nil {
		clog.FromContext(ctx).With("model", j.model).
			With("mode", string(request.Mode)).
			With("error", err).
			Warn("Judge response did not contain a score")
		return nil, err
	}

	return &Judgement{
		Mode:     request.Mode,
		Score:    score,
		Response: response,
	}, nil
}
