/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// MeterName is shared by every executor; the model is a dimension on the
// recorded metrics rather than part of the meter name.
const MeterName = "chainguard.ai.noveltybench"

// GenAI provides OpenTelemetry metrics for generative AI operations.
// It includes counters for token usage (prompt and completion) and embedding
// requests, with support for graceful degradation if metric creation fails.
type GenAI struct {
	meter            metric.Meter
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	embeddingCalls   metric.Int64Counter
	attrEnricher     AttributeEnricher
}

// NewGenAI creates a new GenAI metrics instance with the specified meter name.
// Uses graceful degradation: if any metric counter fails to initialize, logs a warning
// and uses a no-op counter instead of failing entirely.
func NewGenAI(meterName string) *GenAI {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		completionTokens = noop.Int64Counter{}
	}

	embeddingCalls, err := meter.Int64Counter("genai.embedding.calls",
		metric.WithDescription("The number of embedding requests sent to the provider"),
		metric.WithUnit("{calls}"))
	if err != nil {
		slog.Warn("Failed to create embedding call counter, metrics will be disabled", "error", err, "meter", meterName)
		embeddingCalls = noop.Int64Counter{}
	}

	return &GenAI{
		meter:            meter,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		embeddingCalls:   embeddingCalls,
	}
}

// SetAttributeEnricher sets the attribute enricher for this metrics instance.
// The enricher is called before recording each metric to add contextual attributes
// (e.g., run_id, item kind).
func (m *GenAI) SetAttributeEnricher(enricher AttributeEnricher) {
	m.attrEnricher = enricher
}

func (m *GenAI) attributes(ctx context.Context, base []attribute.KeyValue, extra []attribute.KeyValue) []attribute.KeyValue {
	if m.attrEnricher != nil {
		base = m.attrEnricher(ctx, base)
	}
	return append(base, extra...)
}

// RecordTokens records prompt and completion token usage with optional enrichment.
func (m *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64, attrs ...attribute.KeyValue) {
	all := m.attributes(ctx, []attribute.KeyValue{
		attribute.String("model", model),
	}, attrs)

	m.promptTokens.Add(ctx, promptTokens, metric.WithAttributes(all...))
	m.completionTokens.Add(ctx, completionTokens, metric.WithAttributes(all...))
}

// RecordEmbedding records one embedding request and the prompt tokens it consumed.
func (m *GenAI) RecordEmbedding(ctx context.Context, model string, promptTokens int64, attrs ...attribute.KeyValue) {
	all := m.attributes(ctx, []attribute.KeyValue{
		attribute.String("model", model),
		attribute.String("operation", "embedding"),
	}, attrs)

	m.embeddingCalls.Add(ctx, 1, metric.WithAttributes(all...))
	if promptTokens > 0 {
		m.promptTokens.Add(ctx, promptTokens, metric.WithAttributes(all...))
	}
}
