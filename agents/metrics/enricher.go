/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// AttributeEnricher enriches metric attributes with additional context.
// The benchmark uses it to stamp every measurement with the run it belongs to
// without coupling executors to the benchmark.
type AttributeEnricher func(ctx context.Context, baseAttrs []attribute.KeyValue) []attribute.KeyValue

// WithStaticAttributes returns an enricher that appends the given attributes.
func WithStaticAttributes(attrs ...attribute.KeyValue) AttributeEnricher {
	return func(_ context.Context, baseAttrs []attribute.KeyValue) []attribute.KeyValue {
		return append(baseAttrs, attrs...)
	}
}
