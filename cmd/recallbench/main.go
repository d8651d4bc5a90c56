// Package main provides the CLI entry point for recallbench, a synthetic
// corpus generator and latency benchmark for the recall search tool.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/weiihann/recallbench/corpus"
	"github.com/weiihann/recallbench/fault"
	"github.com/weiihann/recallbench/harness"
	"github.com/weiihann/recallbench/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	root := newRootCmd(logger, level)

	err := root.ExecuteContext(ctx)
	stop()

	if err != nil {
		logger.Error("recallbench failed", slog.String("error", err.Error()))
		os.Exit(fault.ExitCode(err))
	}
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "recallbench",
		Short: "Synthetic corpus generator and benchmark harness for recall",
		Long: `Recallbench generates reproducible, seed-controlled text corpora and
measures ingest throughput and query latency of the recall CLI by timing
whole process invocations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("%w: log level %q", fault.ErrInvalidArgument, logLevel)
			}

			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level: debug, info, warn, error")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", fault.ErrInvalidArgument, err)
	})

	root.AddCommand(newGenerateCmd(logger))
	root.AddCommand(newRunCmd(logger))

	return root
}

func newGenerateCmd(logger *slog.Logger) *cobra.Command {
	cfg := corpus.DefaultConfig("")

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a deterministic sharded text corpus",
		Long: `Write --docs text files under --out, grouped into shard directories of
--shard-size documents. Output is byte-identical for identical arguments.
Every document whose id is a multiple of 100 contains the token "needle".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := corpus.NewGenerator(cfg, logger).Generate(cmd.Context())

			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.OutDir, "out", "",
		"Output directory (required)")
	flags.IntVar(&cfg.Docs, "docs", cfg.Docs,
		"Number of documents, must be > 0")
	flags.IntVar(&cfg.Tokens, "tokens", cfg.Tokens,
		"Approximate total tokens across all documents, must be > 0")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed,
		"Base PRNG seed; document id is seeded with seed+id")
	flags.IntVar(&cfg.ShardSize, "shard-size", cfg.ShardSize,
		"Documents per shard directory")
	flags.IntVar(&cfg.Topics, "topics", cfg.Topics,
		"Number of rotating topic labels")

	_ = cmd.MarkFlagRequired("out")

	return cmd
}

type runOptions struct {
	format   string
	buildSrc string
	release  bool
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	cfg := harness.DefaultConfig()

	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark recall against a corpus",
		Long: `Initialise a fresh recall store in a temporary directory, ingest --dataset,
then time --runs sequential invocations each of search, query and context.
Prints ingest throughput and p50/p95/mean latency per operation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd, logger, cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.BinaryPath, "recall-bin", cfg.BinaryPath,
		"Path to the recall binary")
	flags.StringVar(&cfg.Dataset, "dataset", "",
		"Dataset directory (required)")
	flags.IntVar(&cfg.Docs, "docs", cfg.Docs,
		"Declared document count, used only for throughput")
	flags.IntVar(&cfg.Runs, "runs", cfg.Runs,
		"Invocations per operation kind")
	flags.IntVar(&cfg.K, "k", cfg.K,
		"Search breadth")
	flags.StringVar(&cfg.Snapshot, "snapshot", cfg.Snapshot,
		"Snapshot token (RFC3339) passed to every timed operation")
	flags.StringVar(&cfg.Term, "term", cfg.Term,
		"Search and context term")
	flags.StringVar(&cfg.RQL, "rql", cfg.RQL,
		"Query string for the query operation")
	flags.IntVar(&cfg.BudgetTokens, "budget-tokens", cfg.BudgetTokens,
		"Token budget for the context operation")
	flags.StringVar(&cfg.Tag, "tag", cfg.Tag,
		"Tag attached to ingested documents")
	flags.StringVar(&cfg.Glob, "glob", cfg.Glob,
		"Glob selecting dataset files")
	flags.StringVar(&cfg.TempRoot, "tmp-dir", "",
		"Parent directory for the run's working directory (default: system temp)")
	flags.StringVar(&opts.format, "format", "json",
		"Report format: json, table")
	flags.StringVar(&opts.buildSrc, "build-src", "",
		"Build recall with cargo from this source tree before benchmarking")
	flags.BoolVar(&opts.release, "release", false,
		"With --build-src, build and use the release profile")

	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func runBenchmark(
	cmd *cobra.Command,
	logger *slog.Logger,
	cfg harness.Config,
	opts runOptions,
) error {
	ctx := cmd.Context()

	render := report.GenerateJSON
	switch opts.format {
	case "json":
	case "table":
		render = report.Generate
	default:
		return fmt.Errorf("%w: unknown format %q", fault.ErrInvalidArgument, opts.format)
	}

	if opts.buildSrc != "" {
		binPath, err := harness.Build(ctx, logger, opts.buildSrc, opts.release)
		if err != nil {
			return fmt.Errorf("build recall: %w", err)
		}

		cfg.BinaryPath = binPath
	}

	result, err := harness.NewRunner(cfg, logger).Run(ctx)
	if err != nil {
		return err
	}

	if err := render(cmd.OutOrStdout(), report.Build(*result)); err != nil {
		return fmt.Errorf("%w: write report: %v", fault.ErrIO, err)
	}

	logger.InfoContext(ctx, "benchmark complete", slog.String("run_id", result.RunID))

	return nil
}
