package harness

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/weiihann/recallbench/fault"
)

// BinaryName is the name of the recall executable under target/.
const BinaryName = "recall"

// ResolveBinary returns the expected binary path for a recall source
// tree built with or without --release.
func ResolveBinary(srcDir string, release bool) string {
	profile := "debug"
	if release {
		profile = "release"
	}

	return filepath.Join(srcDir, "target", profile, BinaryName)
}

// Build compiles recall from srcDir with cargo and returns the binary
// path. Build output is forwarded to stderr so it never mixes with the
// report on stdout.
func Build(
	ctx context.Context,
	logger *slog.Logger,
	srcDir string,
	release bool,
) (string, error) {
	binPath := ResolveBinary(srcDir, release)

	logger.InfoContext(ctx, "building recall",
		slog.String("source_dir", srcDir),
		slog.Bool("release", release),
	)

	args := []string{"build"}
	if release {
		args = append(args, "--release")
	}

	cmd := exec.CommandContext(ctx, "cargo", args...)
	cmd.Dir = srcDir
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: cargo build in %s: %v", fault.ErrExternalProcess, srcDir, err)
	}

	if _, err := os.Stat(binPath); err != nil {
		return "", fmt.Errorf("%w: binary not found at %s after build", fault.ErrNotFound, binPath)
	}

	logger.InfoContext(ctx, "recall built",
		slog.String("binary", binPath),
	)

	return binPath, nil
}
