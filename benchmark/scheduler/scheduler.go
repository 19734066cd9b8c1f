/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package scheduler runs every selected item through a processor and sums
// the per-item novelty totals.
//
// Items are independent, so the run is a map followed by a sum. In
// sequential mode items run one after another in catalog order. In
// concurrent mode every item gets its own goroutine and results are
// collected in completion order; the sum is the same either way.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"chainguard.dev/noveltybench/benchmark/catalog"
	"chainguard.dev/noveltybench/benchmark/processor"
	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"
)

// ItemProcessor is the single contract the scheduler needs from the per-item
// loop.
type ItemProcessor interface {
	Process(ctx context.Context, item catalog.Item) processor.Result
}

// Summary is the outcome of a run.
type Summary struct {
	// Total is the sum of every item's novelty total.
	Total float64
	// Results holds one entry per item, in completion order.
	Results []processor.Result
	// Duration is the wall time of the run.
	Duration time.Duration
}

// Accepted returns the number of accepted answers across all items.
func (s Summary) Accepted() int {
	n := 0
	for _, r := range s.Results {
		n += r.Accepted
	}
	return n
}

// Scheduler fans items out to an ItemProcessor.
type Scheduler struct {
	processor      ItemProcessor
	sequential     bool
	maxConcurrency int
}

// Option is a functional option for configuring a Scheduler
type Option func(*Scheduler) error

// WithSequential runs items one at a time in catalog order.
func WithSequential(sequential bool) Option {
	return func(s *Scheduler) error {
		s.sequential = sequential
		return nil
	}
}

// WithMaxConcurrency bounds the number of items processed at once in
// concurrent mode. Zero means one goroutine per item.
func WithMaxConcurrency(n int) Option {
	return func(s *Scheduler) error {
		if n < 0 {
			return fmt.Errorf("max concurrency cannot be negative, got %d", n)
		}
		s.maxConcurrency = n
		return nil
	}
}

// New creates a Scheduler. Concurrent mode is the default.
func New(p ItemProcessor, opts ...Option) (*Scheduler, error) {
	if p == nil {
		return nil, errors.New("processor cannot be nil")
	}
	s := &Scheduler{processor: p}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return s, nil
}

// Run processes every item and returns the summed result. Item failures are
// carried in the per-item results and never abort the run.
func (s *Scheduler) Run(ctx context.Context, items []catalog.Item) Summary {
	start := time.Now()
	mode := "concurrent"
	if s.sequential {
		mode = "sequential"
	}
	log := clog.FromContext(ctx).With("mode", mode).With("items", len(items))
	log.Info("Starting benchmark run")

	var summary Summary
	if s.sequential {
		summary = s.runSequential(ctx, items)
	} else {
		summary = s.runConcurrent(ctx, items)
	}
	summary.Duration = time.Since(start)

	recordRun(mode, summary)
	log.With("total", summary.Total).
		With("accepted", summary.Accepted()).
		With("duration", summary.Duration).
		Info("Benchmark run finished")
	return summary
}

func (s *Scheduler) runSequential(ctx context.Context, items []catalog.Item) Summary {
	summary := Summary{Results: make([]processor.Result, 0, len(items))}
	for _, item := range items {
		itemsInFlight.Inc()
		res := s.processor.Process(ctx, item)
		itemsInFlight.Dec()

		summary.Total += res.Total
		summary.Results = append(summary.Results, res)
	}
	return summary
}

func (s *Scheduler) runConcurrent(ctx context.Context, items []catalog.Item) Summary {
	var (
		mu      sync.Mutex
		summary = Summary{Results: make([]processor.Result, 0, len(items))}
	)

	g := new(errgroup.Group)
	if s.maxConcurrency > 0 {
		g.SetLimit(s.maxConcurrency)
	}

	for _, item := range items {
		g.Go(func() error {
			itemsInFlight.Inc()
			defer itemsInFlight.Dec()

			res := s.processor.Process(ctx, item)

			mu.Lock()
			defer mu.Unlock()
			summary.Total += res.Total
			summary.Results = append(summary.Results, res)
			return nil
		})
	}

	// Items report failures in their results, so the group never errors.
	_ = g.Wait()
	return summary
}
