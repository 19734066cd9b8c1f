/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"fmt"
)

// JudgmentMode selects which rubric and score tag the judge uses.
type JudgmentMode string

const (
	// LanguageMode grades the coherence and plausibility of an answer to an open-ended question.
	LanguageMode JudgmentMode = "language"
	// CodeMode grades the correctness, creativity, and efficiency of a coding solution.
	CodeMode JudgmentMode = "code"
)

// ScoreTag returns the XML tag the judge must wrap its score in for this mode.
func (m JudgmentMode) ScoreTag() string {
	if m == CodeMode {
		return "score"
	}
	return "coherence_score"
}

// Request contains the context for judgment
type Request struct {
	// Mode specifies the judgment mode.
	Mode JudgmentMode `json:"mode"`

	// Prompt is the question or coding instruction the answer responds to.
	Prompt string `json:"prompt"`

	// Answer is the response to evaluate.
	Answer string `json:"answer"`
}

// Judgement contains the judgment result
type Judgement struct {
	// Mode is the judgment mode used.
	Mode JudgmentMode `json:"mode"`

	// Score is the integer the judge placed inside the score tag.
	Score int `json:"score"`

	// Response is the judge's full reply, reasoning included.
	Response string `json:"response"`
}

// String returns a one-line summary of the judgment
func (j *Judgement) String() string {
	return fmt.Sprintf("%s score: %d", j.Mode, j.Score)
}

// Interface defines the contract for judge implementations
type Interface interface {
	// Judge grades request.Answer as a response to request.Prompt.
	Judge(ctx context.Context, request *Request) (*Judgement, error)
}
