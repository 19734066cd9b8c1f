/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package embedcache memoizes embedding vectors by exact input text.
//
// A Cache wraps an llm.Embedder and is itself an llm.Embedder, so it can be
// injected wherever an embedder is expected. It is safe for concurrent use:
// lookups share a read lock and concurrent misses for the same text are
// collapsed into a single upstream call with singleflight.
//
// Entries never change once stored. When the cache holds Capacity entries,
// further misses are computed and returned without being stored.
package embedcache

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"chainguard.dev/noveltybench/agents/llm"
	"golang.org/x/sync/singleflight"
)

// DefaultCapacity is the number of entries kept when no capacity is given.
const DefaultCapacity = 10000

// Cache is a concurrency-safe, bounded embedding memo.
type Cache struct {
	embedder llm.Embedder
	capacity int

	mu      sync.RWMutex
	entries map[string][]float64
	group   singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

var _ llm.Embedder = (*Cache)(nil)

// New returns a cache in front of embedder. A capacity of zero or less
// selects DefaultCapacity.
func New(embedder llm.Embedder, capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		embedder: embedder,
		capacity: capacity,
		entries:  make(map[string][]float64),
	}
}

// Embed returns the cached vector for text, computing it on a miss.
// Failures are not cached. The returned slice is a copy owned by the caller.
// Canceling ctx abandons only this caller's wait; concurrent callers of the
// same text still receive the result.
func (c *Cache) Embed(ctx context.Context, text string) ([]float64, error) {
	c.mu.RLock()
	vec, ok := c.entries[text]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return slices.Clone(vec), nil
	}

	// The shared call outlives any one caller's cancellation; each caller
	// stops waiting on its own context instead.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(text, func() (any, error) {
		// Another flight may have stored it between our lookup and now.
		c.mu.RLock()
		vec, ok := c.entries[text]
		c.mu.RUnlock()
		if ok {
			return vec, nil
		}

		c.misses.Add(1)
		vec, err := c.embedder.Embed(flightCtx, text)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if len(c.entries) < c.capacity {
			c.entries[text] = vec
		}
		c.mu.Unlock()
		return vec, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]float64)), nil
	}
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats reports how many lookups were served from the cache and how many
// required an upstream call.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
