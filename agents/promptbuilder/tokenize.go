/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// resolveFunc is a callback that provides a replacement for a binding name
type resolveFunc func(name string) (string, error)

// walkTemplate tokenizes the template and calls resolve for each binding.
// Replacement text is written straight to the output and never rescanned.
func walkTemplate(template string, resolve resolveFunc) (string, error) {
	var result strings.Builder

	for {
		before, rest, found := strings.Cut(template, "{{")
		result.WriteString(before)
		if !found {
			break
		}

		inner, after, closed := strings.Cut(rest, "}}")
		if !closed {
			return "", errors.New("unclosed binding: missing '}}'")
		}

		name := strings.TrimSpace(inner)
		if !isValidIdentifier(name) {
			return "", fmt.Errorf("invalid binding identifier %q", name)
		}
		replacement, err := resolve(name)
		if err != nil {
			return "", err
		}
		result.WriteString(replacement)

		template = after
	}

	return result.String(), nil
}

// isValidIdentifier checks if a string is a valid binding identifier.
// Valid identifiers start with a letter and contain only letters, digits, and underscores.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '_'):
		default:
			return false
		}
	}
	return true
}
