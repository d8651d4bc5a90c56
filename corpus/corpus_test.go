package corpus

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/weiihann/recallbench/fault"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func generate(t *testing.T, cfg Config) Summary {
	t.Helper()

	sum, err := NewGenerator(cfg, discardLogger()).Generate(context.Background())
	require.NoError(t, err)

	return sum
}

func readDoc(t *testing.T, root string, id, shardSize int) string {
	t.Helper()

	data, err := os.ReadFile(DocPath(root, id, shardSize))
	require.NoError(t, err)

	return string(data)
}

func TestGenerateLayout(t *testing.T) {
	out := t.TempDir()
	sum := generate(t, Config{
		OutDir:    out,
		Docs:      100,
		Tokens:    1000,
		Seed:      1,
		ShardSize: 10,
		Topics:    5,
	})

	require.Equal(t, 100, sum.Docs)
	require.Equal(t, 10, sum.TokensPerDoc)
	require.Equal(t, 10, sum.Shards)
	require.Equal(t, 1, sum.NeedleDocs)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 10)

	for i, e := range entries {
		require.True(t, e.IsDir())
		require.Equal(t, ShardName(i), e.Name())

		files, err := os.ReadDir(filepath.Join(out, e.Name()))
		require.NoError(t, err)
		require.Len(t, files, 10)
	}

	first := readDoc(t, out, 0, 10)
	require.Contains(t, strings.Fields(first), Needle)
	require.True(t, strings.HasSuffix(first, "\n"))
	require.Len(t, strings.Fields(first), 10)

	second := readDoc(t, out, 1, 10)
	require.NotContains(t, strings.Fields(second), Needle)
	require.Len(t, strings.Fields(second), 10)

	_, err = os.Stat(filepath.Join(out, "shard-0000", "doc-00000.txt"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "shard-0009", "doc-00099.txt"))
	require.NoError(t, err)
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{Docs: 57, Tokens: 2000, Seed: 42, ShardSize: 7, Topics: 3}

	a, b := t.TempDir(), t.TempDir()

	cfg.OutDir = a
	generate(t, cfg)
	cfg.OutDir = b
	generate(t, cfg)

	for id := 0; id < cfg.Docs; id++ {
		require.Equal(t, readDoc(t, a, id, cfg.ShardSize), readDoc(t, b, id, cfg.ShardSize),
			"doc %d differs", id)
	}

	// Regenerating in place must reproduce the same bytes.
	cfg.OutDir = a
	generate(t, cfg)
	require.Equal(t, readDoc(t, a, 13, cfg.ShardSize), readDoc(t, b, 13, cfg.ShardSize))
}

func TestDocumentIndependentOfOrder(t *testing.T) {
	forward := make([]string, 20)
	for id := 0; id < 20; id++ {
		forward[id] = NewDocument(7, id, 4, 30).Text()
	}

	for id := 19; id >= 0; id-- {
		require.Equal(t, forward[id], NewDocument(7, id, 4, 30).Text())
	}

	require.NotEqual(t, NewDocument(7, 3, 4, 30).Body, NewDocument(8, 3, 4, 30).Body)
}

func TestDocumentSeedFormula(t *testing.T) {
	// Seed+id means (seed 10, id 5) and (seed 12, id 3) share a body.
	a := NewDocument(10, 5, 50, 40)
	b := NewDocument(12, 3, 50, 40)

	require.Equal(t, a.Body, b.Body)
	require.NotEqual(t, a.Keywords, b.Keywords)
}

func TestKeywords(t *testing.T) {
	require.Equal(t,
		[]string{"recall", "benchmark", "topic-00", "doc-00000", "needle"},
		Keywords(0, 5))
	require.Equal(t,
		[]string{"recall", "benchmark", "topic-02", "doc-00007"},
		Keywords(7, 5))
	require.Equal(t,
		[]string{"recall", "benchmark", "topic-00", "doc-00200", "needle"},
		Keywords(200, 50))
}

func TestBodyLengthClamp(t *testing.T) {
	tests := []struct {
		name         string
		id           int
		tokensPerDoc int
		wantBody     int
	}{
		{"regular", 1, 10, 6},
		{"needle", 0, 10, 5},
		{"clamped", 1, 2, 1},
		{"clamped needle", 100, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument(1, tt.id, 5, tt.tokensPerDoc)
			require.Len(t, doc.Body, tt.wantBody)

			vocab := make(map[string]bool)
			for _, w := range Vocabulary() {
				vocab[w] = true
			}
			for _, w := range doc.Body {
				require.True(t, vocab[w], "token %q not in vocabulary", w)
			}
		})
	}
}

func TestTokensPerDoc(t *testing.T) {
	require.Equal(t, 100, TokensPerDoc(10000, 1000000))
	require.Equal(t, 1, TokensPerDoc(100, 5))
	require.Equal(t, 3, TokensPerDoc(3, 10))
}

func TestShardPlacement(t *testing.T) {
	for _, shardSize := range []int{1, 3, 10, 1000} {
		for id := 0; id < 50; id++ {
			want := filepath.Join("root", ShardName(id/shardSize), FileName(id))
			require.Equal(t, want, DocPath("root", id, shardSize))
		}
	}

	require.Equal(t, "shard-0012", ShardName(12))
	require.Equal(t, "doc-00042.txt", FileName(42))
}

func TestNeedleCount(t *testing.T) {
	for _, docs := range []int{1, 99, 100, 101, 250, 1000} {
		t.Run(DocLabel(docs), func(t *testing.T) {
			sum := generate(t, Config{
				OutDir:    t.TempDir(),
				Docs:      docs,
				Tokens:    docs * 8,
				Seed:      3,
				ShardSize: 64,
				Topics:    7,
			})

			want := 0
			for id := 0; id < docs; id++ {
				if id%100 == 0 {
					want++
				}
			}
			require.Equal(t, want, sum.NeedleDocs)
		})
	}
}

func TestValidate(t *testing.T) {
	base := DefaultConfig("out")
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero docs", func(c *Config) { c.Docs = 0 }},
		{"negative docs", func(c *Config) { c.Docs = -1 }},
		{"zero tokens", func(c *Config) { c.Tokens = 0 }},
		{"zero shard size", func(c *Config) { c.ShardSize = 0 }},
		{"zero topics", func(c *Config) { c.Topics = 0 }},
		{"no output", func(c *Config) { c.OutDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, fault.ErrInvalidArgument)
		})
	}
}

func TestGenerateInvalidWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "corpus")

	_, err := NewGenerator(Config{OutDir: out, Docs: 10, Tokens: 0, ShardSize: 1, Topics: 1},
		discardLogger()).Generate(context.Background())
	require.ErrorIs(t, err, fault.ErrInvalidArgument)

	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr))
}

func TestGenerateIOFailure(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewGenerator(Config{
		OutDir: filepath.Join(blocker, "corpus"), Docs: 1, Tokens: 1, ShardSize: 1, Topics: 1,
	}, discardLogger()).Generate(context.Background())
	require.ErrorIs(t, err, fault.ErrIO)
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator(Config{
		OutDir: t.TempDir(), Docs: 5, Tokens: 50, ShardSize: 2, Topics: 2,
	}, discardLogger()).Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
