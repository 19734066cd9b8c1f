/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package console prints the human-readable trace of a benchmark run.
//
// Each event is rendered into a complete block and written with a single
// call while holding a lock, so blocks from concurrently running items never
// interleave. Color is applied only when requested, typically when stdout is
// a terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"chainguard.dev/noveltybench/benchmark/catalog"
	"chainguard.dev/noveltybench/benchmark/processor"
	"golang.org/x/term"
)

const (
	red    = "\x1b[31m"
	green  = "\x1b[32m"
	yellow = "\x1b[33m"
	blue   = "\x1b[34m"
	reset  = "\x1b[0m"
)

// Console writes synchronized, optionally colored, progress blocks.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

var _ processor.Observer = (*Console)(nil)

// Option is a functional option for configuring a Console
type Option func(*Console)

// WithColor turns ANSI colors on or off.
func WithColor(color bool) Option {
	return func(c *Console) {
		c.color = color
	}
}

// New returns a console writing to w. Colors are off unless WithColor is given.
func New(w io.Writer, opts ...Option) *Console {
	c := &Console{w: w}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// block accumulates one message so it can be written atomically.
type block struct {
	strings.Builder
	color bool
}

func (b *block) line(color, format string, args ...any) {
	if b.color && color != "" {
		b.WriteString(color)
	}
	fmt.Fprintf(b, format, args...)
	if b.color && color != "" {
		b.WriteString(reset)
	}
	b.WriteByte('\n')
}

func (c *Console) write(fn func(b *block)) {
	b := &block{color: c.color}
	fn(b)

	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.w, b.String())
}

// Started implements processor.Observer
func (c *Console) Started(item catalog.Item) {
	c.write(func(b *block) {
		b.line(red, "[%s] %s", item.ID, item.Prompt)
	})
}

// Accepted implements processor.Observer
func (c *Console) Accepted(item catalog.Item, answer string, score int, novelty float64) {
	c.write(func(b *block) {
		b.line("", "[%s] New Answer:\n%s", item.ID, answer)
		b.line(green, "Score: %d", score)
		b.line(green, "Novelty Score: %v", novelty)
	})
}

// Rejected implements processor.Observer
func (c *Console) Rejected(item catalog.Item, answer string, reason processor.StopReason) {
	msg := "Output is redundant. Moving to next item."
	if reason == processor.ReasonLowQuality {
		msg = "Output is incoherent or incorrect. Moving to next item."
	}
	c.write(func(b *block) {
		b.line("", "[%s] Output: %s", item.ID, answer)
		b.line(yellow, "%s", msg)
	})
}

// Failed implements processor.Observer
func (c *Console) Failed(item catalog.Item, reason processor.StopReason, err error) {
	c.write(func(b *block) {
		b.line(red, "[%s] %s: %v", item.ID, failureMessage(reason), err)
	})
}

func failureMessage(reason processor.StopReason) string {
	switch reason {
	case processor.ReasonGenerationError:
		return "Error generating answer"
	case processor.ReasonJudgeError:
		return "Error getting judge response"
	case processor.ReasonParseError:
		return "Error parsing judge response"
	case processor.ReasonEmbeddingError:
		return "Error computing novelty"
	case processor.ReasonCanceled:
		return "Canceled"
	default:
		return "Unexpected error processing item"
	}
}

// Finished implements processor.Observer
func (c *Console) Finished(r processor.Result) {
	c.write(func(b *block) {
		b.line(blue, "[%s] Total novelty score for this item: %v", r.Item.ID, r.Total)
		b.line(blue, "Time taken: %v seconds", r.Duration.Seconds())
		b.WriteByte('\n')
	})
}

// RunFinished prints the total across all items.
func (c *Console) RunFinished(total float64) {
	c.write(func(b *block) {
		b.line(yellow, "Total novelty score across all items: %v", total)
	})
}
