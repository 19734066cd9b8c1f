/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"fmt"

	"chainguard.dev/noveltybench/agents/promptbuilder"
)

// languagePrompt grades answers to open-ended questions.
var languagePrompt = promptbuilder.MustNewPrompt(`Your task is to evaluate the coherence and plausibility of an answer to a given question. This involves assessing whether the answer makes sense and isn't nonsensical or implausible.

Question: {{prompt}}
Answer: {{answer}}

Evaluation process:
1. Understand the question: Analyze what the question is asking.
2. Assess the answer: Determine if the answer is coherent and plausible.
3. Check for nonsensical elements: Identify any aspects that are completely unrelated or absurd.

Please think through each step carefully and show your reasoning:

1. Question analysis:
[Your brief analysis of the question here]

2. Answer assessment:
[Evaluate if the answer is coherent and plausible]

3. Nonsensical check:
[Identify any completely unrelated or absurd elements]

Based on your analysis, provide a final Coherence and Plausibility Score on a scale of 1 - 10, where:
1-3: Incoherent, implausible, or nonsensical
4-6: Partially coherent and plausible, but with some issues
7-8: Mostly coherent and plausible with minor issues
9-10: Highly coherent and plausible

Ensure that nonsensical or completely implausible answers receive very low scores (1-3).

IMPORTANT: After your reasoning, you must provide your final Coherence and Plausibility Score as a single integer between 1 and 10, enclosed in <coherence_score></coherence_score> XML tags. For example:
<coherence_score>7</coherence_score>

Your response must end with this score in the specified format.
`)

// codePrompt grades solutions to coding instructions.
var codePrompt = promptbuilder.MustNewPrompt(`Your task is to evaluate the correctness, creativity, and efficiency of a coding solution to a given instruction. This involves assessing whether the solution is correct, innovative, and meets the requirements of the instruction.

Instruction: {{prompt}}
Solution: {{answer}}

Evaluation process:
1. Understand the instruction: Analyze what the instruction is asking.
2. Assess the solution: Determine if the solution is correct, creative, efficient, and meets the requirements of the instruction.
3. Check for innovation: Identify any novel or unexpected approaches in the solution.

Please think through each step carefully and show your reasoning:

1. Instruction analysis:
[Your brief analysis of the instruction]

2. Solution assessment:
[Your assessment of the solution's correctness and efficiency]

3. Innovation check:
[Identify any creative or novel aspects of the solution]

Based on your analysis, provide a final score on a scale of 1-10, where:
1-3: Incorrect, inefficient, or lacks creativity
4-6: Partially correct and somewhat creative, but with some issues
7-8: Correct and creative, but with minor issues
9-10: Highly correct, efficient, and innovative

Ensure that incorrect or entirely uncreative answers receive very low scores (1-3).

IMPORTANT: After your reasoning, you must provide your final score as a single integer between 1 and 10, enclosed in <score></score> XML tags. For example:
<score>7</score>

Your response must end with this score in the specified format.
`)

// Bind implements promptbuilder.Bindable, wrapping the prompt and answer in
// the element names each rubric refers to.
func (r *Request) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	promptTag, answerTag := "question", "answer"
	if r.Mode == CodeMode {
		promptTag, answerTag = "instruction", "solution"
	}
	p, err := p.BindElement("prompt", promptTag, r.Prompt)
	if err != nil {
		return nil, fmt.Errorf("binding prompt: %w", err)
	}
	p, err = p.BindElement("answer", answerTag, r.Answer)
	if err != nil {
		return nil, fmt.Errorf("binding answer: %w", err)
	}
	return p, nil
}

func templateFor(mode JudgmentMode) (*promptbuilder.Prompt, error) {
	switch mode {
	case LanguageMode:
		return languagePrompt, nil
	case CodeMode:
		return codePrompt, nil
	default:
		return nil, fmt.Errorf("unsupported mode: %q", mode)
	}
}
