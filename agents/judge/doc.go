/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package judge grades benchmark answers with a second model.
//
// # Overview
//
// Every answer the model under test produces is shown to a fixed judge model
// together with the question (or coding instruction) it answers. The judge
// reasons step by step and must end its response with an integer score from
// 1 to 10 inside an XML tag:
//
//	<coherence_score>7</coherence_score>   language items
//	<score>7</score>                       code items
//
// # Usage
//
//	j := judge.New(judgeCompleter, "openai/gpt-4o-mini")
//
//	verdict, err := j.Judge(ctx, &judge.Request{
//		Mode:   judge.LanguageMode,
//		Prompt: "What is a cause of World War 1?",
//		Answer: "The assassination of Archduke Franz Ferdinand.",
//	})
//
// # Scoring
//
// ParseScore extracts the text between the first opening tag and the next
// closing tag and converts it to an integer. The range is not enforced here;
// the quality gate in the processor decides what a score means.
//
// Failures are typed: a failed call to the judge model is an *llm.JudgeError,
// a response without a well-formed score is a *ParseError.
//
// # Thread Safety
//
// The judge is stateless and safe for concurrent use provided the underlying
// Completer is.
package judge
