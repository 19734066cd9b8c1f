/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Must is a helper that wraps a call to a function returning (*Prompt, error)
// and panics if the error is non-nil. It is intended for use in variable
// initializations such as:
//
//	var p = promptbuilder.Must(promptbuilder.NewPrompt(`Hello {{name}}`))
func Must(p *Prompt, err error) *Prompt {
	if err != nil {
		panic(err)
	}
	return p
}

// MustNewPrompt creates a new prompt from a template literal and panics on error.
func MustNewPrompt(template stringLiteral) *Prompt {
	return Must(NewPrompt(template))
}

// MustBindElement binds untrusted text as a CDATA element and panics on error.
func (p *Prompt) MustBindElement(name, tag, text string) *Prompt {
	return Must(p.BindElement(name, tag, text))
}
