/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package embedcache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"chainguard.dev/noveltybench/agents/embedcache"
	"chainguard.dev/noveltybench/agents/llm"
	"github.com/google/go-cmp/cmp"
)

func lengthEmbedder(calls *atomic.Int32) llm.Embedder {
	return llm.EmbedderFunc(func(_ context.Context, text string) ([]float64, error) {
		calls.Add(1)
		return []float64{float64(len(text)), 1}, nil
	})
}

func TestEmbed_Memoizes(t *testing.T) {
	var calls atomic.Int32
	c := embedcache.New(lengthEmbedder(&calls), 0)
	ctx := context.Background()

	for range 3 {
		got, err := c.Embed(ctx, "Because of X.")
		if err != nil {
			t.Fatalf("Embed: %v", err)
		}
		if diff := cmp.Diff([]float64{13, 1}, got); diff != "" {
			t.Errorf("Embed: (-want, +got) = %s", diff)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("upstream calls: got = %d, wanted = 1", got)
	}
	if hits, misses := c.Stats(); hits != 2 || misses != 1 {
		t.Errorf("Stats: got = (%d, %d), wanted = (2, 1)", hits, misses)
	}
}

func TestEmbed_ReturnsCopies(t *testing.T) {
	var calls atomic.Int32
	c := embedcache.New(lengthEmbedder(&calls), 0)
	ctx := context.Background()

	first, err := c.Embed(ctx, "abc")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	first[0] = 99

	second, err := c.Embed(ctx, "abc")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if second[0] != 3 {
		t.Errorf("cached entry was mutated through a returned slice: got = %v", second)
	}
}

func TestEmbed_CapacityBound(t *testing.T) {
	var calls atomic.Int32
	c := embedcache.New(lengthEmbedder(&calls), 2)
	ctx := context.Background()

	for _, text := range []string{"a", "bb", "ccc", "ccc"} {
		if _, err := c.Embed(ctx, text); err != nil {
			t.Fatalf("Embed(%q): %v", text, err)
		}
	}
	if got := c.Len(); got != 2 {
		t.Errorf("Len: got = %d, wanted = 2", got)
	}
	// "ccc" did not fit, so both lookups went upstream.
	if got := calls.Load(); got != 4 {
		t.Errorf("upstream calls: got = %d, wanted = 4", got)
	}
}

func TestEmbed_ErrorsAreNotCached(t *testing.T) {
	var calls atomic.Int32
	c := embedcache.New(llm.EmbedderFunc(func(context.Context, string) ([]float64, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("transient")
		}
		return []float64{1}, nil
	}), 0)
	ctx := context.Background()

	if _, err := c.Embed(ctx, "x"); err == nil {
		t.Fatal("Embed: expected first call to fail")
	}
	if _, err := c.Embed(ctx, "x"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if got := c.Len(); got != 1 {
		t.Errorf("Len: got = %d, wanted = 1", got)
	}
}

func TestEmbed_ConcurrentMissesCollapse(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	c := embedcache.New(llm.EmbedderFunc(func(context.Context, string) ([]float64, error) {
		calls.Add(1)
		<-release
		return []float64{1, 2, 3}, nil
	}), 0)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Embed(context.Background(), "same text"); err != nil {
				errs <- err
			}
		}()
	}

	// Let the goroutines pile up behind the first flight.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Embed: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("upstream calls: got = %d, wanted = 1", got)
	}
}

func TestEmbed_CanceledCallerDoesNotFailOthers(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	upstreamErr := make(chan error, 1)
	c := embedcache.New(llm.EmbedderFunc(func(ctx context.Context, _ string) ([]float64, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		upstreamErr <- ctx.Err()
		return []float64{4, 5}, nil
	}), 0)

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Embed(first, "shared")
		firstErr <- err
	}()
	<-started

	type result struct {
		vec []float64
		err error
	}
	second := make(chan result, 1)
	go func() {
		vec, err := c.Embed(context.Background(), "shared")
		second <- result{vec, err}
	}()

	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Errorf("canceled caller: got = %v, wanted = %v", err, context.Canceled)
	}

	close(release)
	got := <-second
	if got.err != nil {
		t.Fatalf("other caller: %v", got.err)
	}
	if diff := cmp.Diff([]float64{4, 5}, got.vec); diff != "" {
		t.Errorf("other caller (-want, +got): %s", diff)
	}
	if err := <-upstreamErr; err != nil {
		t.Errorf("upstream context: got = %v, wanted = nil", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("upstream calls: got = %d, wanted = 1", got)
	}
}
