/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package processor

import (
	"context"
	"errors"

	"chainguard.dev/noveltybench/agents/judge"
	"chainguard.dev/noveltybench/agents/llm"
)

// State is a position in the per-item loop.
type State int

const (
	Generating State = iota
	Judging
	Scoring
	Accepted
	Stopped
)

func (s State) String() string {
	switch s {
	case Generating:
		return "generating"
	case Judging:
		return "judging"
	case Scoring:
		return "scoring"
	case Accepted:
		return "accepted"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StopReason explains why an item left the loop.
type StopReason string

const (
	ReasonNone            StopReason = ""
	ReasonGenerationError StopReason = "generation_error"
	ReasonJudgeError      StopReason = "judge_error"
	ReasonParseError      StopReason = "parse_error"
	ReasonLowQuality      StopReason = "low_quality"
	ReasonEmbeddingError  StopReason = "embedding_error"
	ReasonRedundant       StopReason = "redundant"
	ReasonMaxAccepted     StopReason = "max_accepted"
	ReasonCanceled        StopReason = "canceled"
	ReasonInternalError   StopReason = "internal_error"
)

// Rejected reports whether the item stopped because an answer failed a gate
// rather than because something went wrong.
func (r StopReason) Rejected() bool {
	return r == ReasonLowQuality || r == ReasonRedundant
}

// Thresholds are the gates applied to every answer.
type Thresholds struct {
	// Quality stops the item when the judge score is at or below it.
	Quality int
	// Novelty stops the item when the novelty score is strictly below it.
	Novelty float64
	// MaxAccepted stops the item after this many accepted answers.
	// Zero means unbounded.
	MaxAccepted int
}

// DefaultThresholds returns the standard gates: scores of 3 or less and
// novelty under 0.1 stop the item, with no cap on accepted answers.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Quality: 3,
		Novelty: 0.1,
	}
}

// Validate checks that the thresholds are usable.
func (t Thresholds) Validate() error {
	if t.Novelty < 0 || t.Novelty > 1 {
		return errors.New("novelty threshold must be between 0 and 1")
	}
	if t.MaxAccepted < 0 {
		return errors.New("max accepted cannot be negative")
	}
	return nil
}

// Step is the outcome of the work done in one state.
type Step struct {
	// Err is the failure, if any, of the call made in this state.
	Err error
	// Score is the judge's score, set when leaving Judging.
	Score int
	// Novelty is the novelty score, set when leaving Scoring.
	Novelty float64
	// Accepted is the history length, set when leaving Accepted.
	Accepted int
}

// Next returns the state that follows state given the outcome of its step.
// The StopReason is set only when the returned state is Stopped.
func Next(state State, step Step, t Thresholds) (State, StopReason) {
	switch state {
	case Generating:
		if step.Err != nil {
			return Stopped, classify(step.Err, ReasonGenerationError)
		}
		return Judging, ReasonNone

	case Judging:
		if step.Err != nil {
			return Stopped, classify(step.Err, ReasonJudgeError)
		}
		if step.Score <= t.Quality {
			return Stopped, ReasonLowQuality
		}
		return Scoring, ReasonNone

	case Scoring:
		if step.Err != nil {
			return Stopped, classify(step.Err, ReasonEmbeddingError)
		}
		// Written as a negated >= so a NaN novelty also stops the item.
		if !(step.Novelty >= t.Novelty) {
			return Stopped, ReasonRedundant
		}
		return Accepted, ReasonNone

	case Accepted:
		if t.MaxAccepted > 0 && step.Accepted >= t.MaxAccepted {
			return Stopped, ReasonMaxAccepted
		}
		return Generating, ReasonNone

	case Stopped:
		return Stopped, ReasonNone

	default:
		return Stopped, ReasonInternalError
	}
}

// classify maps an error to a stop reason, using fallback when the error
// carries no more specific type.
func classify(err error, fallback StopReason) StopReason {
	var (
		parseErr *judge.ParseError
		genErr   *llm.GenerationError
		judgeErr *llm.JudgeError
		embErr   *llm.EmbeddingError
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ReasonCanceled
	case errors.As(err, &parseErr):
		return ReasonParseError
	case errors.As(err, &genErr):
		return ReasonGenerationError
	case errors.As(err, &judgeErr):
		return ReasonJudgeError
	case errors.As(err, &embErr):
		return ReasonEmbeddingError
	default:
		return fallback
	}
}
