/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"fmt"
	"maps"
)

// stringLiteral is a private type alias that only accepts literal strings
type stringLiteral string

// Prompt represents a template with bindable placeholders
type Prompt struct {
	template string
	bindings map[string]binding
}

// NewPrompt creates a new prompt from a template literal and parses bindings
func NewPrompt(template stringLiteral) (*Prompt, error) {
	bindings := make(map[string]binding)

	// Parsing echoes every placeholder back, so tmpl equals the input.
	tmpl, err := walkTemplate(string(template), func(name string) (string, error) {
		if _, exists := bindings[name]; !exists {
			bindings[name] = &unboundBinding{name: name}
		}
		return "{{" + name + "}}", nil
	})
	if err != nil {
		return nil, err
	}

	return &Prompt{
		template: tmpl,
		bindings: bindings,
	}, nil
}

// GetBindings returns the names of all bindings found in the template as a set
func (p *Prompt) GetBindings() map[string]struct{} {
	names := make(map[string]struct{}, len(p.bindings))
	for name := range p.bindings {
		names[name] = struct{}{}
	}
	return names
}

// bind returns a copy of p with name bound to b.
func (p *Prompt) bind(name string, b binding) (*Prompt, error) {
	if err := existsAndUnbound(p.bindings, name); err != nil {
		return nil, err
	}
	newPrompt := &Prompt{
		template: p.template,
		bindings: maps.Clone(p.bindings),
	}
	newPrompt.bindings[name] = b
	return newPrompt, nil
}

// BindElement binds untrusted text to a placeholder as a single XML element
// named tag whose content is carried in a CDATA section.
func (p *Prompt) BindElement(name, tag, text string) (*Prompt, error) {
	if !isValidIdentifier(tag) {
		return nil, fmt.Errorf("invalid element name %q", tag)
	}
	return p.bind(name, &elementBinding{tag: tag, text: text})
}

// BindList binds untrusted texts to a placeholder as an XML element named tag
// holding one itemTag child per entry. Children carry a 1-based index attribute
// in the order given.
func (p *Prompt) BindList(name, tag, itemTag string, items []string) (*Prompt, error) {
	if !isValidIdentifier(tag) {
		return nil, fmt.Errorf("invalid element name %q", tag)
	}
	if !isValidIdentifier(itemTag) {
		return nil, fmt.Errorf("invalid element name %q", itemTag)
	}
	return p.bind(name, &listBinding{tag: tag, itemTag: itemTag, items: append([]string(nil), items...)})
}

// Build constructs the final prompt, returning an error if any bindings are unbound
func (p *Prompt) Build() (string, error) {
	values := make(map[string]string, len(p.bindings))
	for name, binding := range p.bindings {
		val, err := binding.value()
		if err != nil {
			return "", err
		}
		values[name] = val
	}

	return walkTemplate(p.template, func(name string) (string, error) {
		if val, exists := values[name]; exists {
			return val, nil
		}
		// Unreachable: NewPrompt and Build share walkTemplate.
		return "", fmt.Errorf("internal error: binding %q not found in values map", name)
	})
}
