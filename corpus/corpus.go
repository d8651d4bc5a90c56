// Package corpus generates deterministic synthetic text corpora for search
// benchmarking. Documents are sharded into fixed-size directories and every
// hundredth document carries a needle token for recall testing.
package corpus

import (
	"fmt"
	mrand "math/rand"
	"path/filepath"
	"strings"
)

// Needle is injected into every document whose id is a multiple of
// NeedleStride.
const (
	Needle       = "needle"
	NeedleStride = 100
)

// Tags are the fixed keywords leading every document.
var Tags = []string{"recall", "benchmark"}

var vocabulary = []string{
	"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta",
	"lambda", "omega", "sigma", "kappa", "tau", "pi", "rho", "mu",
	"vector", "matrix", "query", "search", "context", "chunk", "doc",
	"index", "token", "filter", "schema", "snapshot", "migrate", "store",
	"deterministic", "semantic", "lexical", "hybrid", "budget", "provenance",
	"ingest", "export", "import", "fts5", "sqlite",
	"memory", "latency", "throughput", "benchmark", "dataset", "baseline",
	"window", "offset", "order", "score", "ranking", "weight", "config",
}

// Vocabulary returns a copy of the closed vocabulary bodies are drawn from.
func Vocabulary() []string {
	out := make([]string, len(vocabulary))
	copy(out, vocabulary)

	return out
}

// Document is a single generated text unit.
type Document struct {
	ID       int
	Topic    string
	Keywords []string
	Body     []string
}

// Text joins keywords and body with single spaces.
func (d Document) Text() string {
	tokens := make([]string, 0, len(d.Keywords)+len(d.Body))
	tokens = append(tokens, d.Keywords...)
	tokens = append(tokens, d.Body...)

	return strings.Join(tokens, " ")
}

// NewDocument builds document id. Its body comes from a private source
// seeded with seed+id, so output does not depend on generation order.
func NewDocument(seed int64, id, topics, tokensPerDoc int) Document {
	rng := mrand.New(mrand.NewSource(seed + int64(id)))
	keywords := Keywords(id, topics)

	bodyLen := max(1, tokensPerDoc-len(keywords))
	body := make([]string, bodyLen)

	for i := range body {
		body[i] = vocabulary[rng.Intn(len(vocabulary))]
	}

	return Document{
		ID:       id,
		Topic:    Topic(id, topics),
		Keywords: keywords,
		Body:     body,
	}
}

// TokensPerDoc spreads the total token budget evenly over docs.
func TokensPerDoc(docs, tokens int) int {
	return max(1, tokens/docs)
}

// Topic returns the rotating topic label for id.
func Topic(id, topics int) string {
	return fmt.Sprintf("topic-%02d", id%topics)
}

// DocLabel returns the per-document id keyword.
func DocLabel(id int) string {
	return fmt.Sprintf("doc-%05d", id)
}

// IsNeedle reports whether document id carries the needle token.
func IsNeedle(id int) bool {
	return id%NeedleStride == 0
}

// Keywords returns the marker tokens for id in order: tags, topic,
// document label and, on the needle stride, the needle.
func Keywords(id, topics int) []string {
	kw := make([]string, 0, len(Tags)+3)
	kw = append(kw, Tags...)
	kw = append(kw, Topic(id, topics), DocLabel(id))

	if IsNeedle(id) {
		kw = append(kw, Needle)
	}

	return kw
}

// ShardIndex returns the shard holding document id.
func ShardIndex(id, shardSize int) int {
	return id / shardSize
}

// ShardName returns the directory name of shard idx.
func ShardName(idx int) string {
	return fmt.Sprintf("shard-%04d", idx)
}

// FileName returns the file name of document id.
func FileName(id int) string {
	return DocLabel(id) + ".txt"
}

// DocPath returns where document id lives under root.
func DocPath(root string, id, shardSize int) string {
	return filepath.Join(root, ShardName(ShardIndex(id, shardSize)), FileName(id))
}
