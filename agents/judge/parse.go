/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a judge response whose score could not be extracted.
type ParseError struct {
	// Tag is the score tag that was searched for.
	Tag string
	// Content is the text found between the tags, if any.
	Content string
	// Reason describes what was wrong.
	Reason string
}

func (e *ParseError) Error() string {
	if e.Content == "" {
		return fmt.Sprintf("parsing <%s>: %s", e.Tag, e.Reason)
	}
	return fmt.Sprintf("parsing <%s>: %s: %q", e.Tag, e.Reason, e.Content)
}

// ParseScore extracts the integer between the first <tag> and the following
// </tag> in response. Surrounding whitespace inside the tag is ignored.
func ParseScore(response, tag string) (int, error) {
	open, closing := "<"+tag+">", "</"+tag+">"

	_, rest, found := strings.Cut(response, open)
	if !found {
		return 0, &ParseError{Tag: tag, Reason: "opening tag not found"}
	}
	content, _, found := strings.Cut(rest, closing)
	if !found {
		return 0, &ParseError{Tag: tag, Reason: "closing tag not found"}
	}

	score, err := strconv.Atoi(strings.TrimSpace(content))
	if err != nil {
		return 0, &ParseError{Tag: tag, Content: content, Reason: "not an integer"}
	}
	return score, nil
}
