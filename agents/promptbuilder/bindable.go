/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Bindable represents a type that can bind values to a Prompt.
// Generation and judge requests implement this interface so that a shared
// template can be bound to the data of one item.
type Bindable interface {
	// Bind takes a prompt and returns a new prompt with bound values.
	Bind(prompt *Prompt) (*Prompt, error)
}

// Render binds b to the template and builds the final prompt string.
func Render(template *Prompt, b Bindable) (string, error) {
	bound, err := b.Bind(template)
	if err != nil {
		return "", err
	}
	return bound.Build()
}
