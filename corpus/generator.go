package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/weiihann/recallbench/fault"
)

// Config controls corpus generation.
type Config struct {
	// OutDir is the corpus root. Required.
	OutDir string
	// Docs is the number of documents. Must be > 0.
	Docs int
	// Tokens is the approximate corpus size in tokens. Must be > 0.
	Tokens int
	// Seed is the base seed; document id uses Seed+id.
	Seed int64
	// ShardSize bounds documents per shard directory.
	ShardSize int
	// Topics is the number of rotating topic labels.
	Topics int
}

// DefaultConfig returns the documented defaults for outDir.
func DefaultConfig(outDir string) Config {
	return Config{
		OutDir:    outDir,
		Docs:      10000,
		Tokens:    1000000,
		Seed:      42,
		ShardSize: 1000,
		Topics:    50,
	}
}

// Validate checks that the numeric parameters are usable.
func (c Config) Validate() error {
	if c.OutDir == "" {
		return fmt.Errorf("%w: output directory is required", fault.ErrInvalidArgument)
	}
	if c.Docs <= 0 {
		return fmt.Errorf("%w: docs must be > 0, got %d", fault.ErrInvalidArgument, c.Docs)
	}
	if c.Tokens <= 0 {
		return fmt.Errorf("%w: tokens must be > 0, got %d", fault.ErrInvalidArgument, c.Tokens)
	}
	if c.ShardSize <= 0 {
		return fmt.Errorf("%w: shard size must be > 0, got %d", fault.ErrInvalidArgument, c.ShardSize)
	}
	if c.Topics <= 0 {
		return fmt.Errorf("%w: topics must be > 0, got %d", fault.ErrInvalidArgument, c.Topics)
	}

	return nil
}

// Summary describes a generated corpus.
type Summary struct {
	OutDir       string
	Docs         int
	TokensPerDoc int
	Shards       int
	NeedleDocs   int
	Bytes        int64
}

// Generator writes a sharded corpus to disk.
type Generator struct {
	cfg    Config
	logger *slog.Logger
}

// NewGenerator creates a Generator from the given Config.
func NewGenerator(cfg Config, logger *slog.Logger) *Generator {
	return &Generator{
		cfg:    cfg,
		logger: logger,
	}
}

// Generate writes every document under cfg.OutDir. Existing files are
// overwritten. On failure the documents already written are left in place.
func (g *Generator) Generate(ctx context.Context) (Summary, error) {
	if err := g.cfg.Validate(); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		OutDir:       g.cfg.OutDir,
		Docs:         g.cfg.Docs,
		TokensPerDoc: TokensPerDoc(g.cfg.Docs, g.cfg.Tokens),
	}

	if err := os.MkdirAll(g.cfg.OutDir, 0o755); err != nil {
		return summary, fmt.Errorf("%w: create output dir: %v", fault.ErrIO, err)
	}

	lastShard := -1

	for id := 0; id < g.cfg.Docs; id++ {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("generate doc %d: %w", id, err)
		}

		shard := ShardIndex(id, g.cfg.ShardSize)
		shardDir := filepath.Join(g.cfg.OutDir, ShardName(shard))

		if shard != lastShard {
			if err := os.MkdirAll(shardDir, 0o755); err != nil {
				return summary, fmt.Errorf("%w: create shard %s: %v", fault.ErrIO, shardDir, err)
			}

			lastShard = shard
			summary.Shards++

			g.logger.DebugContext(ctx, "shard started",
				slog.Int("shard", shard),
				slog.String("dir", shardDir),
			)
		}

		doc := NewDocument(g.cfg.Seed, id, g.cfg.Topics, summary.TokensPerDoc)
		data := []byte(doc.Text() + "\n")

		path := filepath.Join(shardDir, FileName(id))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return summary, fmt.Errorf("%w: write %s: %v", fault.ErrIO, path, err)
		}

		summary.Bytes += int64(len(data))
		if IsNeedle(id) {
			summary.NeedleDocs++
		}
	}

	g.logger.InfoContext(ctx, fmt.Sprintf(
		"generated %d docs with ~%d tokens per doc in %s",
		summary.Docs, summary.TokensPerDoc, summary.OutDir),
		slog.Int("shards", summary.Shards),
		slog.Int("needle_docs", summary.NeedleDocs),
		slog.Int64("bytes", summary.Bytes),
	)

	return summary, nil
}
