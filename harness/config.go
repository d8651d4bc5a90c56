package harness

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/weiihann/recallbench/fault"
)

// Defaults for Config.
const (
	DefaultBinaryPath   = "target/debug/recall"
	DefaultDocs         = 10000
	DefaultRuns         = 20
	DefaultK            = 8
	DefaultSnapshot     = "2100-01-01T00:00:00Z"
	DefaultTerm         = "needle"
	DefaultRQL          = "FROM chunk USING semantic('needle') LIMIT 8 SELECT chunk.text, doc.path;"
	DefaultBudgetTokens = 512
	DefaultTag          = "bench"
	DefaultGlob         = "**/*.txt"
)

// Config holds parameters for a benchmark run.
type Config struct {
	// BinaryPath is the recall executable.
	BinaryPath string
	// Dataset is the corpus directory passed to "add".
	Dataset string
	// Docs is the declared document count, used only for throughput.
	// It is not checked against what the tool ingested.
	Docs int
	// Runs is the number of timed invocations per operation kind.
	Runs int
	// K is the search breadth.
	K int
	// Snapshot pins every timed operation to a point-in-time view.
	Snapshot string
	// Term is the search and context term.
	Term string
	// RQL is the structured query string.
	RQL string
	// BudgetTokens is the context window budget.
	BudgetTokens int
	// Tag is attached to ingested documents.
	Tag string
	// Glob selects files under Dataset.
	Glob string
	// TempRoot is the parent of the run's working directory.
	// Empty means os.TempDir.
	TempRoot string
}

// DefaultConfig returns a Config with the documented defaults and no
// dataset.
func DefaultConfig() Config {
	return Config{
		BinaryPath:   DefaultBinaryPath,
		Docs:         DefaultDocs,
		Runs:         DefaultRuns,
		K:            DefaultK,
		Snapshot:     DefaultSnapshot,
		Term:         DefaultTerm,
		RQL:          DefaultRQL,
		BudgetTokens: DefaultBudgetTokens,
		Tag:          DefaultTag,
		Glob:         DefaultGlob,
	}
}

// Validate checks numeric parameters and that the binary and dataset
// exist. It runs before any process is started.
func (c Config) Validate() error {
	if c.Runs < 0 {
		return fmt.Errorf("%w: runs must be >= 0, got %d", fault.ErrInvalidArgument, c.Runs)
	}
	if c.Docs < 0 {
		return fmt.Errorf("%w: docs must be >= 0, got %d", fault.ErrInvalidArgument, c.Docs)
	}
	if c.K <= 0 {
		return fmt.Errorf("%w: k must be > 0, got %d", fault.ErrInvalidArgument, c.K)
	}
	if c.BudgetTokens <= 0 {
		return fmt.Errorf("%w: budget tokens must be > 0, got %d", fault.ErrInvalidArgument, c.BudgetTokens)
	}

	info, err := os.Stat(c.BinaryPath)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: recall binary %s", fault.ErrNotFound, c.BinaryPath)
	}

	if c.Dataset == "" {
		return fmt.Errorf("%w: dataset path is empty", fault.ErrNotFound)
	}

	if _, err := os.Stat(c.Dataset); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: dataset %s", fault.ErrNotFound, c.Dataset)
		}

		return fmt.Errorf("%w: stat dataset %s: %v", fault.ErrIO, c.Dataset, err)
	}

	return nil
}

// InitArgs returns the arguments that initialise a store in the
// current working directory.
func InitArgs() []string {
	return []string{"init", "."}
}

// IngestArgs returns the arguments that ingest dataset.
func IngestArgs(cfg Config, dataset string) []string {
	return []string{
		"add", dataset,
		"--glob", cfg.Glob,
		"--tag", cfg.Tag,
		"--json",
	}
}

// OperationArgs returns the arguments for one timed invocation of op.
func OperationArgs(cfg Config, op Op) []string {
	switch op {
	case OpSearch:
		return []string{
			"search", cfg.Term,
			"--k", strconv.Itoa(cfg.K),
			"--snapshot", cfg.Snapshot,
			"--json",
		}
	case OpQuery:
		return []string{
			"query",
			"--rql", cfg.RQL,
			"--snapshot", cfg.Snapshot,
			"--json",
		}
	case OpContext:
		return []string{
			"context", cfg.Term,
			"--budget-tokens", strconv.Itoa(cfg.BudgetTokens),
			"--snapshot", cfg.Snapshot,
			"--json",
		}
	default:
		return nil
	}
}
