/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiexecutor

import (
	"context"
	"errors"
	"net/http"

	"github.com/openai/openai-go"
)

// isRetryableOpenAIError reports whether a failed call is worth repeating.
// API errors are retried for timeouts, conflicts, rate limits, and server
// errors. Errors without a status (transport failures, empty responses) are
// retried unless the context was cancelled.
func isRetryableOpenAIError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusRequestTimeout,
			apiErr.StatusCode == http.StatusConflict,
			apiErr.StatusCode == http.StatusTooManyRequests,
			apiErr.StatusCode >= http.StatusInternalServerError:
			return true
		}
		return false
	}
	return true
}
