/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"chainguard.dev/noveltybench/agents/judge"
	"chainguard.dev/noveltybench/agents/llm"
)

func staticCompleter(response string, err error, calls *atomic.Int32, seen *string) llm.Completer {
	return llm.CompleterFunc(func(_ context.Context, prompt string) (string, error) {
		calls.Add(1)
		if seen != nil {
			*seen = prompt
		}
		return response, err
	})
}

func TestJudge_Language(t *testing.T) {
	var calls atomic.Int32
	var prompt string
	j := judge.New(staticCompleter("Looks fine.\n<coherence_score>8</coherence_score>", nil, &calls, &prompt), "judge-model")

	got, err := j.Judge(context.Background(), &judge.Request{
		Mode:   judge.LanguageMode,
		Prompt: "What is a cause of World War 1?",
		Answer: "Because of X.",
	})
	if err != nil {
		t.Fatalf("Judge: %v", err)
	}
	if got.Score != 8 {
		t.Errorf("Score: got = %d, wanted = 8", got.Score)
	}
	if got.Mode != judge.LanguageMode {
		t.Errorf("Mode: got = %q, wanted = %q", got.Mode, judge.LanguageMode)
	}
	if calls.Load() != 1 {
		t.Errorf("calls: got = %d, wanted = 1", calls.Load())
	}
	for _, want := range []string{
		"<question><![CDATA[What is a cause of World War 1?]]></question>",
		"<answer><![CDATA[Because of X.]]></answer>",
		"<coherence_score>7</coherence_score>",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestJudge_Code(t *testing.T) {
	var calls atomic.Int32
	var prompt string
	j := judge.New(staticCompleter("<score>6</score>", nil, &calls, &prompt), "judge-model")

	got, err := j.Judge(context.Background(), &judge.Request{
		Mode:   judge.CodeMode,
		Prompt: "Write a function that reverses a string.",
		Answer: "func reverse(s string) string { return s }",
	})
	if err != nil {
		t.Fatalf("Judge: %v", err)
	}
	if got.Score != 6 {
		t.Errorf("Score: got = %d, wanted = 6", got.Score)
	}
	if !strings.Contains(prompt, "<instruction><![CDATA[Write a function that reverses a string.]]></instruction>") {
		t.Errorf("prompt missing instruction element:\n%s", prompt)
	}
	if !strings.Contains(prompt, "<solution>") {
		t.Errorf("prompt missing solution element:\n%s", prompt)
	}
}

func TestJudge_Errors(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		err       error
		req       *judge.Request
		wantJudge bool
		wantParse bool
		wantCalls int32
	}{{
		name:      "completer failure",
		err:       errors.New("connection reset"),
		req:       &judge.Request{Mode: judge.LanguageMode, Prompt: "q", Answer: "a"},
		wantJudge: true,
		wantCalls: 1,
	}, {
		name:      "empty response",
		response:  "  \n",
		req:       &judge.Request{Mode: judge.LanguageMode, Prompt: "q", Answer: "a"},
		wantJudge: true,
		wantCalls: 1,
	}, {
		name:      "missing tag",
		response:  "I think it is a 7.",
		req:       &judge.Request{Mode: judge.LanguageMode, Prompt: "q", Answer: "a"},
		wantParse: true,
		wantCalls: 1,
	}, {
		name:      "wrong tag for mode",
		response:  "<coherence_score>7</coherence_score>",
		req:       &judge.Request{Mode: judge.CodeMode, Prompt: "q", Answer: "a"},
		wantParse: true,
		wantCalls: 1,
	}, {
		name: "unknown mode",
		req:  &judge.Request{Mode: "poetry", Prompt: "q", Answer: "a"},
	}, {
		name: "missing answer",
		req:  &judge.Request{Mode: judge.LanguageMode, Prompt: "q"},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var calls atomic.Int32
			j := judge.New(staticCompleter(tt.response, tt.err, &calls, nil), "judge-model")

			_, err := j.Judge(context.Background(), tt.req)
			if err == nil {
				t.Fatal("Judge: expected error")
			}
			var je *llm.JudgeError
			if got := errors.As(err, &je); got != tt.wantJudge {
				t.Errorf("JudgeError: got = %v, wanted = %v (%v)", got, tt.wantJudge, err)
			}
			var pe *judge.ParseError
			if got := errors.As(err, &pe); got != tt.wantParse {
				t.Errorf("ParseError: got = %v, wanted = %v (%v)", got, tt.wantParse, err)
			}
			if calls.Load() != tt.wantCalls {
				t.Errorf("calls: got = %d, wanted = %d", calls.Load(), tt.wantCalls)
			}
		})
	}
}
