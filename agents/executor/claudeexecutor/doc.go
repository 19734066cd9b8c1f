/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package claudeexecutor sends single-turn prompts to Claude models through
// the Anthropic Messages API.
//
// # Basic Usage
//
//	client := anthropic.NewClient(
//	    option.WithAPIKey(cfg.AnthropicKey),
//	    option.WithMaxRetries(0),
//	)
//
//	exec, err := claudeexecutor.New(client,
//	    claudeexecutor.WithModel("claude-sonnet-4-5"),
//	    claudeexecutor.WithMaxTokens(4000),
//	)
//	if err != nil {
//	    return nil, err
//	}
//
//	answer, err := exec.Complete(ctx, prompt)
//
// Only text content blocks are returned; when the model replies with several
// they are concatenated in order.
//
// # Retries
//
// Calls are wrapped with retry.Wrap and retried on rate limiting (429),
// overload (529), gateway errors (503, 504), and transport failures.
package claudeexecutor
