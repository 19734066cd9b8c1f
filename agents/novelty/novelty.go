/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package novelty measures how different a new answer is from the answers
// already accepted for the same prompt.
//
// Novelty is 1 minus the highest cosine similarity between the new answer's
// embedding and the embedding of any previous answer, clamped to [0, 1].
// The most similar previous answer decides the score, so a near-duplicate of
// any single earlier answer is penalized even if it differs from the rest.
package novelty

import (
	"context"
	"fmt"
	"math"

	"chainguard.dev/noveltybench/agents/llm"
	"github.com/chainguard-dev/clog"
)

// Scorer computes novelty scores using an embedder, typically an
// *embedcache.Cache so that history embeddings are computed once.
type Scorer struct {
	embedder llm.Embedder
	model    string
}

// New returns a scorer backed by embedder. model names the embedding model in
// returned errors.
func New(embedder llm.Embedder, model string) *Scorer {
	return &Scorer{embedder: embedder, model: model}
}

// Score returns the novelty of answer relative to history.
//
// An empty history yields exactly 1.0 without calling the embedder. Any
// embedding failure is returned as an *llm.EmbeddingError, including vectors
// with non-finite components or a dimension that differs from the answer's.
func (s *Scorer) Score(ctx context.Context, answer string, history []string) (float64, error) {
	if len(history) == 0 {
		return 1.0, nil
	}

	target, err := s.embed(ctx, answer)
	if err != nil {
		return 0, err
	}

	maxSim := math.Inf(-1)
	for _, prev := range history {
		vec, err := s.embed(ctx, prev)
		if err != nil {
			return 0, err
		}
		if len(vec) != len(target) {
			return 0, &llm.EmbeddingError{
				Model: s.model,
				Err:   fmt.Errorf("embedding dimension mismatch: answer has %d, history has %d", len(target), len(vec)),
			}
		}
		maxSim = max(maxSim, CosineSimilarity(target, vec))
	}

	novelty := FromSimilarity(maxSim)
	clog.FromContext(ctx).With("history", len(history)).
		With("max_similarity", maxSim).
		With("novelty", novelty).
		Debug("Scored novelty")
	return novelty, nil
}

func (s *Scorer) embed(ctx context.Context, text string) ([]float64, error) {
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, &llm.EmbeddingError{Model: s.model, Err: err}
	}
	for i, v := range vec {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &llm.EmbeddingError{
				Model: s.model,
				Err:   fmt.Errorf("embedding component %d is not finite: %v", i, v),
			}
		}
	}
	return vec, nil
}

// FromSimilarity converts a maximum similarity into a novelty in [0, 1].
// A NaN similarity yields 0.
func FromSimilarity(similarity float64) float64 {
	if math.IsNaN(similarity) {
		return 0
	}
	return min(max(1-similarity, 0), 1)
}

// CosineSimilarity computes dot(a,b) / (|a| * |b|).
// Returns 0 when either vector has zero norm or the lengths differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}
