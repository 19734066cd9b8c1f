/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chainguard.dev/noveltybench/agents/judge"
	"chainguard.dev/noveltybench/agents/llm"
	"chainguard.dev/noveltybench/benchmark/catalog"
	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the OpenTelemetry tracer used for item spans.
const TracerName = "chainguard.ai.noveltybench/processor"

// NoveltyScorer scores an answer against the accepted history.
type NoveltyScorer interface {
	Score(ctx context.Context, answer string, history []string) (float64, error)
}

// Result is the outcome of one item. It is immutable once returned.
type Result struct {
	Item     catalog.Item
	Total    float64
	Accepted int
	Reason   StopReason
	Err      error
	Duration time.Duration
}

// Processor runs items through the generate, judge, score loop.
// A Processor holds no per-item state and may process items concurrently.
type Processor struct {
	generator  llm.Completer
	model      string
	judge      judge.Interface
	scorer     NoveltyScorer
	thresholds Thresholds
	observer   Observer
	tracer     trace.Tracer
}

// Option is a functional option for configuring a Processor
type Option func(*Processor) error

// WithThresholds overrides the default quality and novelty gates.
func WithThresholds(t Thresholds) Option {
	return func(p *Processor) error {
		if err := t.Validate(); err != nil {
			return err
		}
		p.thresholds = t
		return nil
	}
}

// WithObserver registers an observer for item progress.
func WithObserver(o Observer) Option {
	return func(p *Processor) error {
		if o == nil {
			return errors.New("observer cannot be nil")
		}
		p.observer = o
		return nil
	}
}

// WithTracerProvider sets the provider for item spans. The global provider
// is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(p *Processor) error {
		if tp == nil {
			return errors.New("tracer provider cannot be nil")
		}
		p.tracer = tp.Tracer(TracerName)
		return nil
	}
}

// New creates a Processor. model names the model under test in errors.
func New(generator llm.Completer, model string, j judge.Interface, scorer NoveltyScorer, opts ...Option) (*Processor, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if j == nil {
		return nil, errors.New("judge cannot be nil")
	}
	if scorer == nil {
		return nil, errors.New("novelty scorer cannot be nil")
	}

	p := &Processor{
		generator:  generator,
		model:      model,
		judge:      j,
		scorer:     scorer,
		thresholds: DefaultThresholds(),
		observer:   Observers(nil),
		tracer:     otel.Tracer(TracerName),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return p, nil
}

// Process runs item until it stops and returns its result. Failures never
// escape: they end the item and are reported in Result.Reason and Result.Err.
func (p *Processor) Process(ctx context.Context, item catalog.Item) (result Result) {
	start := time.Now()
	result = Result{Item: item}

	ctx, span := p.tracer.Start(ctx, "process_item", trace.WithAttributes(
		attribute.String("item.id", item.ID),
		attribute.String("item.kind", string(item.Kind)),
	))
	log := clog.FromContext(ctx).With("item", item.ID).With("kind", string(item.Kind))

	p.observer.Started(item)

	defer func() {
		if r := recover(); r != nil {
			result.Reason = ReasonInternalError
			result.Err = fmt.Errorf("panic processing item: %v", r)
			p.observer.Failed(item, result.Reason, result.Err)
		}
		result.Duration = time.Since(start)

		span.SetAttributes(
			attribute.Float64("item.total", result.Total),
			attribute.Int("item.accepted", result.Accepted),
			attribute.String("item.stop_reason", string(result.Reason)),
		)
		if result.Err != nil {
			span.RecordError(result.Err)
			span.SetStatus(codes.Error, string(result.Reason))
		}
		span.End()

		l := log.With("reason", string(result.Reason)).
			With("accepted", result.Accepted).
			With("total", result.Total).
			With("duration", result.Duration)
		if result.Err != nil {
			l.With("error", result.Err).Warn("Item stopped on error")
		} else {
			l.Info("Item finished")
		}
		p.observer.Finished(result)
	}()

	var (
		history []string
		answer  string
		score   int
		nov     float64
	)

	for state := Generating; state != Stopped; {
		var step Step
		switch state {
		case Generating:
			answer, step.Err = p.generate(ctx, item, history)

		case Judging:
			score, step.Err = p.grade(ctx, item, answer)
			step.Score = score

		case Scoring:
			nov, step.Err = p.scorer.Score(ctx, answer, history)
			step.Novelty = nov

		case Accepted:
			history = append(history, answer)
			result.Total += nov
			result.Accepted++
			step.Accepted = len(history)
			span.AddEvent("accepted", trace.WithAttributes(
				attribute.Int("score", score),
				attribute.Float64("novelty", nov),
			))
			p.observer.Accepted(item, answer, score, nov)
		}

		next, reason := Next(state, step, p.thresholds)
		if next == Stopped {
			result.Reason = reason
			result.Err = step.Err
			switch {
			case reason.Rejected():
				p.observer.Rejected(item, answer, reason)
			case step.Err != nil:
				p.observer.Failed(item, reason, step.Err)
			}
		}
		state = next
	}
	return result
}

func (p *Processor) generate(ctx context.Context, item catalog.Item, history []string) (string, error) {
	prompt, err := buildGenerationPrompt(item, history)
	if err != nil {
		return "", fmt.Errorf("building generation prompt: %w", err)
	}

	answer, err := p.generator.Complete(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &llm.GenerationError{Model: p.model, Err: err}
	}
	if strings.TrimSpace(answer) == "" {
		return "", &llm.GenerationError{Model: p.model, Err: errors.New("empty response")}
	}
	return answer, nil
}

func (p *Processor) grade(ctx context.Context, item catalog.Item, answer string) (int, error) {
	mode := judge.LanguageMode
	if item.Kind == catalog.Code {
		mode = judge.CodeMode
	}

	verdict, err := p.judge.Judge(ctx, &judge.Request{
		Mode:   mode,
		Prompt: item.Prompt,
		Answer: answer,
	})
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, err
	}
	return verdict.Score, nil
}
