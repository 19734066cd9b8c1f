/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main runs the novelty benchmark against a model from the command
// line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/urfave/cli/v2"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := newApp(os.Stdout, nil).RunContext(ctx, os.Args)
	var exit cli.ExitCoder
	switch {
	case err == nil:
	case errors.As(err, &exit):
		fmt.Fprintln(os.Stderr, "noveltybench:", exit.Error())
		cancel()
		os.Exit(exit.ExitCode())
	default:
		clog.FatalContextf(ctx, "noveltybench: %v", err)
	}
}
