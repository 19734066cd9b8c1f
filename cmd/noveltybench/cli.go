/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"chainguard.dev/noveltybench/agents/embedcache"
	"chainguard.dev/noveltybench/agents/judge"
	"chainguard.dev/noveltybench/agents/metrics"
	"chainguard.dev/noveltybench/agents/novelty"
	"chainguard.dev/noveltybench/benchmark/catalog"
	"chainguard.dev/noveltybench/benchmark/console"
	"chainguard.dev/noveltybench/benchmark/processor"
	"chainguard.dev/noveltybench/benchmark/report"
	"chainguard.dev/noveltybench/benchmark/scheduler"
	"github.com/chainguard-dev/clog"
	"github.com/google/uuid"
	"github.com/sethvargo/go-envconfig"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel/attribute"
)

// Exit codes for usage and configuration failures and for interrupted runs.
const (
	exitUsage       = 2
	exitInterrupted = 130
)

// newApp creates the CLI application. The console trace and report go to
// out; configuration is read through l, or the environment when l is nil.
func newApp(out io.Writer, l envconfig.Lookuper) *cli.App {
	app := &cli.App{
		Name:      "noveltybench",
		Usage:     "Measure how many distinct, good answers a model can give",
		Version:   Version,
		ArgsUsage: "<model>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "benchmark-type", Aliases: []string{"t"}, Value: string(catalog.Both), Usage: "Items to run: language|code|both"},
			&cli.BoolFlag{Name: "single-threaded", Usage: "Process items one at a time in catalog order"},
			&cli.StringFlag{Name: "generator-provider", Value: providerOpenRouter, Usage: "Provider of the benchmarked model: openrouter|anthropic|google"},
			&cli.StringFlag{Name: "judge-provider", Value: providerOpenRouter, Usage: "Provider of the judge model: openrouter|anthropic|google"},
			&cli.StringFlag{Name: "embedding-provider", Value: providerOpenAI, Usage: "Provider of embeddings: openai|google"},
			&cli.StringFlag{Name: "catalog", Usage: "YAML catalog to use instead of the built-in items"},
			&cli.StringFlag{Name: "metrics-addr", Usage: "Serve Prometheus metrics on this address (e.g. :2112)"},
			&cli.BoolFlag{Name: "no-color", Usage: "Disable colored console output"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "Log level: debug|info|warn|error"},
		},
		Action: func(c *cli.Context) error {
			return run(c, out, l)
		},
	}
	// Errors are returned to main, which decides the exit code.
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// benchmark holds everything a run needs once flags and config are resolved.
type benchmark struct {
	runID     string
	model     string
	items     []catalog.Item
	cache     *embedcache.Cache
	scheduler *scheduler.Scheduler
	console   *console.Console
}

func run(c *cli.Context, out io.Writer, l envconfig.Lookuper) error {
	ctx := c.Context

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return cli.Exit(fmt.Sprintf("invalid --log-level: %v", err), exitUsage)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	b, err := setup(c, out, l)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	shutdown, err := setupMetrics(ctx, c.String("metrics-addr"))
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			clog.FromContext(ctx).With("error", err).Warn("shutting down metrics")
		}
	}()

	log := clog.FromContext(ctx).With("run_id", b.runID, "model", b.model)
	log.With("items", len(b.items)).Info("starting benchmark run")

	summary := b.scheduler.Run(ctx, b.items)
	b.console.RunFinished(summary.Total)
	if err := report.Write(out, summary); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	hits, misses := b.cache.Stats()
	log.With("total", summary.Total,
		"accepted", summary.Accepted(),
		"duration", summary.Duration,
		"embedding_cache_hits", hits,
		"embedding_cache_misses", misses,
	).Info("benchmark run finished")

	if ctx.Err() != nil {
		return cli.Exit("benchmark run interrupted", exitInterrupted)
	}
	return nil
}

// setup resolves flags and configuration into a ready-to-run benchmark.
// It makes no network calls.
func setup(c *cli.Context, out io.Writer, l envconfig.Lookuper) (*benchmark, error) {
	ctx := c.Context

	model := c.Args().First()
	if model == "" {
		return nil, errors.New("a model name is required")
	}
	if c.NArg() > 1 {
		return nil, fmt.Errorf("expected one model name, got %d arguments", c.NArg())
	}

	bt, err := catalog.ParseBenchmarkType(c.String("benchmark-type"))
	if err != nil {
		return nil, err
	}
	cat, err := loadCatalog(c.String("catalog"))
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(ctx, l)
	if err != nil {
		return nil, err
	}
	thresholds, err := cfg.thresholds()
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	enricher := metrics.WithStaticAttributes(
		attribute.String("run_id", runID),
		attribute.String("benchmarked_model", model),
	)
	factory, err := newProviderFactory(cfg, enricher)
	if err != nil {
		return nil, err
	}

	generator, err := factory.completer(ctx, c.String("generator-provider"), model)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	judgeCompleter, err := factory.completer(ctx, c.String("judge-provider"), cfg.JudgeModel)
	if err != nil {
		return nil, fmt.Errorf("judge: %w", err)
	}
	embedder, embeddingModel, err := factory.embedder(ctx, c.String("embedding-provider"))
	if err != nil {
		return nil, fmt.Errorf("embeddings: %w", err)
	}

	con := console.New(out, console.WithColor(!c.Bool("no-color") && isTerminal(out)))
	cache := embedcache.New(embedder, cfg.EmbeddingCacheSize)

	p, err := processor.New(generator, model,
		judge.New(judgeCompleter, cfg.JudgeModel),
		novelty.New(cache, embeddingModel),
		processor.WithThresholds(thresholds),
		processor.WithObserver(processor.Observers{con, scheduler.NewMetricsObserver()}),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processor: %w", err)
	}
	sched, err := scheduler.New(p,
		scheduler.WithSequential(c.Bool("single-threaded")),
		scheduler.WithMaxConcurrency(cfg.MaxConcurrency),
	)
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}

	return &benchmark{
		runID:     runID,
		model:     model,
		items:     cat.Select(bt),
		cache:     cache,
		scheduler: sched,
		console:   con,
	}, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && console.IsTerminal(f)
}
