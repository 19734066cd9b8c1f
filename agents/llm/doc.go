/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package llm defines the contracts the benchmark uses to reach external
// model services, and the typed errors those services fail with.
//
// # Overview
//
// Three kinds of calls leave the process during a benchmark run:
//   - generation: the model under test answers a prompt
//   - judging: a fixed judge model grades an answer
//   - embedding: an embedding model turns an answer into a vector
//
// Generation and judging share the Completer contract; embedding uses
// Embedder. The executor packages (openaiexecutor, claudeexecutor,
// googleexecutor) provide implementations backed by provider SDKs.
//
// # Errors
//
// Failures surface as *GenerationError, *JudgeError or *EmbeddingError so
// callers can tell which service gave up with errors.As. Each wraps the
// provider's own error.
package llm
