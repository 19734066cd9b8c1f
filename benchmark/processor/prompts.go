/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package processor

import (
	"fmt"

	"chainguard.dev/noveltybench/agents/promptbuilder"
	"chainguard.dev/noveltybench/benchmark/catalog"
)

var (
	languageFirst = promptbuilder.MustNewPrompt(`Answer the following question:.
{{question}}
Your response should be a single brief sentence.
`)

	languageFollowup = promptbuilder.MustNewPrompt(`Answer the following question:.
{{question}}
Your response should be a single brief sentence.
IMPORTANT: Provide an answer you *HAVE NOT* given previously.
Your previous answers are inside of <previous_answers></previous_answers> XML tags.
{{history}}`)

	codeFirst = promptbuilder.MustNewPrompt(`Write code that satisfies the following instruction:
{{instruction}}
Your response should be a single idiomatic function, no longer than 5 lines of code.
You *ONLY* need to output the code, no explanations or comments.
`)

	codeFollowup = promptbuilder.MustNewPrompt(`Write code that satisfies the following instruction:
{{instruction}}
Your response should be a single idiomatic function, no longer than 5 lines of code.
You *ONLY* need to output the code, no explanations or comments.
IMPORTANT: Provide a solution that is as different from any previous solutions as possible. Novel, creative, and innovative solutions in any programming language are acceptable.
Your previous solutions are inside of the <previous_solutions></previous_solutions> XML tags.
{{history}}`)
)

// generationRequest is the data for one generation prompt.
type generationRequest struct {
	item    catalog.Item
	history []string
}

var _ promptbuilder.Bindable = (*generationRequest)(nil)

// template returns the prompt for the item's kind, with the history section
// only when there is history to show.
func (r *generationRequest) template() (*promptbuilder.Prompt, error) {
	switch r.item.Kind {
	case catalog.Language:
		if len(r.history) == 0 {
			return languageFirst, nil
		}
		return languageFollowup, nil
	case catalog.Code:
		if len(r.history) == 0 {
			return codeFirst, nil
		}
		return codeFollowup, nil
	default:
		return nil, fmt.Errorf("unsupported item kind %q", r.item.Kind)
	}
}

// Bind implements promptbuilder.Bindable
func (r *generationRequest) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	name, tag, listTag, itemTag := "question", "question", "previous_answers", "answer"
	if r.item.Kind == catalog.Code {
		name, tag, listTag, itemTag = "instruction", "instruction", "previous_solutions", "solution"
	}

	p, err := p.BindElement(name, tag, r.item.Prompt)
	if err != nil {
		return nil, err
	}
	if len(r.history) == 0 {
		return p, nil
	}
	return p.BindList("history", listTag, itemTag, r.history)
}

// buildGenerationPrompt renders the generation prompt for item given the
// answers accepted so far.
func buildGenerationPrompt(item catalog.Item, history []string) (string, error) {
	req := &generationRequest{item: item, history: history}
	tmpl, err := req.template()
	if err != nil {
		return "", err
	}
	return promptbuilder.Render(tmpl, req)
}
