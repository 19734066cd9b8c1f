/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package processor runs the per-item benchmark loop.
//
// Each item moves through a small state machine:
//
//	Generating -> Judging -> Scoring -> Accepted -> Generating ...
//	     |           |          |           |
//	     +-----------+----------+-----------+--> Stopped
//
// Generating asks the model under test for a new answer, with every
// previously accepted answer listed as context. Judging asks the judge model
// to grade it. Scoring compares the answer's embedding with the accepted
// history. An accepted answer joins the history and its novelty is added to
// the item's total; anything else stops the item.
//
// The transitions live in the pure function Next, so every gate can be tested
// without a model. Processor.Process drives Next with real calls.
//
// # Stopping
//
// An item stops when:
//   - generation fails or returns nothing (generation_error)
//   - the judge call fails (judge_error) or its reply has no score (parse_error)
//   - the score is at or below the quality threshold (low_quality)
//   - embedding fails (embedding_error)
//   - novelty is below the novelty threshold (redundant)
//   - the optional accepted-answer cap is reached (max_accepted)
//   - the context is cancelled (canceled)
//   - the loop panics (internal_error)
//
// None of these abort a run. The partial total is kept and the reason is
// reported in the Result.
package processor
