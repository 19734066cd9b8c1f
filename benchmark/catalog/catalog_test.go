/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chainguard.dev/noveltybench/benchmark/catalog"
	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if got := len(c.Questions); got != 25 {
		t.Errorf("questions: got = %d, wanted = 25", got)
	}
	if got := len(c.Instructions); got != 25 {
		t.Errorf("instructions: got = %d, wanted = 25", got)
	}
	if c.Questions[1] != "What is a cause of World War 1?" {
		t.Errorf("question 2: got = %q", c.Questions[1])
	}
}

func TestSelect(t *testing.T) {
	c := &catalog.Catalog{
		Questions:    []string{"q1", "q2"},
		Instructions: []string{"i1"},
	}

	tests := []struct {
		typ  catalog.BenchmarkType
		want []catalog.Item
	}{{
		typ: catalog.LanguageOnly,
		want: []catalog.Item{
			{ID: "language-01", Kind: catalog.Language, Prompt: "q1"},
			{ID: "language-02", Kind: catalog.Language, Prompt: "q2"},
		},
	}, {
		typ: catalog.CodeOnly,
		want: []catalog.Item{
			{ID: "code-01", Kind: catalog.Code, Prompt: "i1"},
		},
	}, {
		typ: catalog.Both,
		want: []catalog.Item{
			{ID: "language-01", Kind: catalog.Language, Prompt: "q1"},
			{ID: "language-02", Kind: catalog.Language, Prompt: "q2"},
			{ID: "code-01", Kind: catalog.Code, Prompt: "i1"},
		},
	}}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, c.Select(tt.typ)); diff != "" {
				t.Errorf("Select: (-want, +got) = %s", diff)
			}
		})
	}
}

func TestParseBenchmarkType(t *testing.T) {
	for _, s := range []string{"language", "code", "both", " Both "} {
		if _, err := catalog.ParseBenchmarkType(s); err != nil {
			t.Errorf("ParseBenchmarkType(%q): %v", s, err)
		}
	}
	if _, err := catalog.ParseBenchmarkType("poetry"); err == nil {
		t.Error("ParseBenchmarkType(poetry): expected error")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "empty", yaml: ""},
		{name: "no prompts", yaml: "questions: []\n"},
		{name: "blank question", yaml: "questions:\n  - \"  \"\n"},
		{name: "unknown field", yaml: "prompts:\n  - hi\n"},
		{name: "wrong shape", yaml: "questions: hello\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := catalog.Load(strings.NewReader(tt.yaml)); err == nil {
				t.Error("Load: expected error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("instructions:\n  - Reverse a string.\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := catalog.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if diff := cmp.Diff([]string{"Reverse a string."}, c.Instructions); diff != "" {
		t.Errorf("Instructions: (-want, +got) = %s", diff)
	}
	if len(c.Select(catalog.LanguageOnly)) != 0 {
		t.Error("Select(language): expected no items")
	}

	if _, err := catalog.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile(missing): expected error")
	}
}
