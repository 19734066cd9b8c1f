/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llm

import (
	"context"
	"fmt"
)

// Completer sends a single user prompt to a model and returns its text reply.
type Completer interface {
	// Complete returns the model's text response to prompt.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into an embedding vector.
type Embedder interface {
	// Embed returns the embedding of text.
	Embed(ctx context.Context, text string) ([]float64, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete implements Completer.
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// EmbedderFunc adapts a function to the Embedder interface.
type EmbedderFunc func(ctx context.Context, text string) ([]float64, error)

// Embed implements Embedder.
func (f EmbedderFunc) Embed(ctx context.Context, text string) ([]float64, error) {
	return f(ctx, text)
}

// GenerationError reports a failed call to the model under test.
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generating with %s: %v", e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// JudgeError reports a failed call to the judge model.
type JudgeError struct {
	Model string
	Err   error
}

func (e *JudgeError) Error() string {
	return fmt.Sprintf("judging with %s: %v", e.Model, e.Err)
}

func (e *JudgeError) Unwrap() error { return e.Err }

// EmbeddingError reports a failed call to the embedding model.
type EmbeddingError struct {
	Model string
	Err   error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding with %s: %v", e.Model, e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }
