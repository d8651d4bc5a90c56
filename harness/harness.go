package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/weiihann/recallbench/fault"
)

// Runner launches the recall binary for one benchmark run.
type Runner struct {
	Config Config
	Logger *slog.Logger

	binary  string
	workDir string
	log     *slog.Logger
}

// NewRunner creates a Runner. Each call to Run gets its own run id and
// working directory.
func NewRunner(cfg Config, logger *slog.Logger) *Runner {
	return &Runner{
		Config: cfg,
		Logger: logger,
	}
}

// Run executes the full command sequence and returns the raw timings.
// The working directory is removed on every exit path. Any invocation
// that exits non-zero aborts the run and no Result is returned.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	cfg := r.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	binary, err := filepath.Abs(cfg.BinaryPath)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve binary: %v", fault.ErrIO, err)
	}

	dataset, err := filepath.Abs(cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve dataset: %v", fault.ErrIO, err)
	}

	runID := uuid.NewString()
	logger := r.Logger.With(slog.String("run_id", runID))

	workDir, err := os.MkdirTemp(cfg.TempRoot, "recallbench-")
	if err != nil {
		return nil, fmt.Errorf("%w: create work dir: %v", fault.ErrIO, err)
	}

	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			logger.Warn("failed to remove work dir",
				slog.String("dir", workDir),
				slog.String("error", err.Error()),
			)
		}
	}()

	r.binary = binary
	r.workDir = workDir
	r.log = logger

	logger.InfoContext(ctx, "starting benchmark",
		slog.String("binary", binary),
		slog.String("dataset", dataset),
		slog.String("work_dir", workDir),
		slog.Int("runs", cfg.Runs),
	)

	if _, err := r.invoke(ctx, InitArgs()); err != nil {
		return nil, err
	}

	ingest, err := r.invoke(ctx, IngestArgs(cfg, dataset))
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:    runID,
		Docs:     cfg.Docs,
		IngestMs: millis(ingest),
	}

	logger.InfoContext(ctx, "ingest finished",
		slog.Duration("wall_time", ingest),
	)

	for _, op := range Ops() {
		args := OperationArgs(cfg, op)

		for i := 0; i < cfg.Runs; i++ {
			elapsed, err := r.invoke(ctx, args)
			if err != nil {
				return nil, err
			}

			result.record(op, millis(elapsed))
		}

		logger.InfoContext(ctx, "operation finished",
			slog.String("op", string(op)),
			slog.Int("runs", cfg.Runs),
		)
	}

	size, err := dirSize(workDir)
	if err != nil {
		logger.Warn("failed to measure index size",
			slog.String("error", err.Error()),
		)
	}

	result.IndexBytes = size

	return result, nil
}

// invoke runs one command to completion and returns its wall time.
// The child's stdout and stderr go to the null device.
func (r *Runner) invoke(ctx context.Context, args []string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = r.workDir

	r.log.DebugContext(ctx, "invoking", slog.Any("args", args))

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return elapsed, fmt.Errorf("%s interrupted: %w", args[0], ctxErr)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return elapsed, fmt.Errorf("%w: %s exited with status %d",
				fault.ErrExternalProcess, args[0], exitErr.ExitCode())
		}

		return elapsed, fmt.Errorf("%w: %s: %v", fault.ErrExternalProcess, args[0], err)
	}

	return elapsed, nil
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func dirSize(path string) (uint64, error) {
	var size uint64

	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += uint64(info.Size())
		}

		return nil
	})

	return size, err
}
