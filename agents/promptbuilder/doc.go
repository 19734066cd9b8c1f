/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package promptbuilder constructs benchmark prompts from developer-owned
templates and untrusted model output without letting the latter rewrite the
former.

# Overview

Answers produced by the model under test are fed back into later prompts (as
"previous answers") and into judge prompts. Those answers are arbitrary text,
frequently code, and may contain anything: template braces, XML, closing tags.
The package keeps them inert by:

  - accepting templates only as string literals (compile-time check)
  - wrapping untrusted text in CDATA elements instead of splicing it raw
  - tokenizing templates in a single pass so substituted text is never
    re-scanned for placeholders
  - returning a new Prompt from every binding call

# Basic Usage

	p := promptbuilder.MustNewPrompt(`Answer the following question:
	{{question}}
	Your response should be a single brief sentence.`)

	p, err := p.BindElement("question", "question", item.Text)
	if err != nil {
		return err
	}

	prompt, err := p.Build()

# Binding Methods

	// BindElement - one untrusted string as <tag><![CDATA[...]]></tag>
	p, err = p.BindElement("answer", "answer", answer)

	// BindList - untrusted strings as a numbered list of CDATA elements
	p, err = p.BindList("history", "previous_answers", "answer", history)

BindElement has a MustBindElement variant that panics on error. Templates
themselves are fixed string literals; only model-facing data is bound.

# Template Syntax

Templates use {{name}} placeholders. Names start with a letter and contain
only letters, digits, and underscores. The same placeholder may appear more
than once and every occurrence receives the same value.

# Bindable Interface

Request types implement Bindable so callers can hand a request and a template
to a single Build step:

	type Bindable interface {
		Bind(prompt *Prompt) (*Prompt, error)
	}

# Thread Safety

Prompt instances are immutable after creation and safe to share across
goroutines; the package-level templates in the judge and processor packages
rely on this.
*/
package promptbuilder
