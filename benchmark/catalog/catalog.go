/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package catalog holds the benchmark prompts: open-ended questions graded
// for coherence and coding instructions graded for correctness.
//
// The default catalog is embedded in the binary. An alternative YAML file
// with the same shape can be loaded with LoadFile:
//
//	questions:
//	  - "Why did Rome fall?"
//	instructions:
//	  - "Develop a unique hashing function for strings."
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Kind selects the generation and judging variant for an item.
type Kind string

const (
	// Language items are open-ended questions answered in one sentence.
	Language Kind = "language"
	// Code items are coding instructions answered with a short function.
	Code Kind = "code"
)

// Item is one benchmark prompt. Items are immutable once selected.
type Item struct {
	// ID is stable within a catalog, e.g. "language-02".
	ID string
	// Kind selects the language or code variant.
	Kind Kind
	// Prompt is the question or instruction text.
	Prompt string
}

// Catalog is the full set of prompts available to a run.
type Catalog struct {
	Questions    []string `yaml:"questions"`
	Instructions []string `yaml:"instructions"`
}

// BenchmarkType selects which part of the catalog a run covers.
type BenchmarkType string

const (
	LanguageOnly BenchmarkType = "language"
	CodeOnly     BenchmarkType = "code"
	Both         BenchmarkType = "both"
)

// ParseBenchmarkType validates a benchmark type name.
func ParseBenchmarkType(s string) (BenchmarkType, error) {
	switch t := BenchmarkType(strings.ToLower(strings.TrimSpace(s))); t {
	case LanguageOnly, CodeOnly, Both:
		return t, nil
	default:
		return "", fmt.Errorf("unknown benchmark type %q (expected language, code, or both)", s)
	}
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a catalog from YAML. Unknown fields are rejected and every
// prompt must be non-empty.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog is empty")
		}
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that the catalog has at least one prompt and no blank ones.
func (c *Catalog) Validate() error {
	if len(c.Questions) == 0 && len(c.Instructions) == 0 {
		return errors.New("catalog has no questions or instructions")
	}
	for i, q := range c.Questions {
		if strings.TrimSpace(q) == "" {
			return fmt.Errorf("question %d is blank", i+1)
		}
	}
	for i, in := range c.Instructions {
		if strings.TrimSpace(in) == "" {
			return fmt.Errorf("instruction %d is blank", i+1)
		}
	}
	return nil
}

// Select returns the items covered by t: questions first, then instructions,
// each in catalog order.
func (c *Catalog) Select(t BenchmarkType) []Item {
	var items []Item
	if t == LanguageOnly || t == Both {
		for i, q := range c.Questions {
			items = append(items, Item{ID: fmt.Sprintf("%s-%02d", Language, i+1), Kind: Language, Prompt: q})
		}
	}
	if t == CodeOnly || t == Both {
		for i, in := range c.Instructions {
			items = append(items, Item{ID: fmt.Sprintf("%s-%02d", Code, i+1), Kind: Code, Prompt: in})
		}
	}
	return items
}
