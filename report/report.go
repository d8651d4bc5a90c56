// Package report aggregates benchmark timings and renders them as JSON or
// a markdown table.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/weiihann/recallbench/harness"
)

// Ingest holds ingest metrics.
type Ingest struct {
	TimeMs     float64 `json:"time_ms"`
	DocsPerMin float64 `json:"docs_per_min"`
	IndexBytes uint64  `json:"index_bytes"`
}

// Summary holds latency statistics for one operation kind. MeanMs is nil
// when there were no samples.
type Summary struct {
	P50Ms  float64  `json:"p50_ms"`
	P95Ms  float64  `json:"p95_ms"`
	MeanMs *float64 `json:"mean_ms"`
	Runs   int      `json:"runs"`
}

// Report is the structured output of one benchmark run.
type Report struct {
	Ingest  Ingest  `json:"ingest"`
	Search  Summary `json:"search"`
	Query   Summary `json:"query"`
	Context Summary `json:"context"`
}

// Build aggregates raw harness timings into a Report.
func Build(res harness.Result) Report {
	return Report{
		Ingest: Ingest{
			TimeMs:     res.IngestMs,
			DocsPerMin: DocsPerMinute(res.Docs, res.IngestMs),
			IndexBytes: res.IndexBytes,
		},
		Search:  Summarize(res.Search),
		Query:   Summarize(res.Query),
		Context: Summarize(res.Context),
	}
}

// GenerateJSON writes rep as indented JSON to w.
func GenerateJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rep)
}

// Generate writes rep as markdown tables to w.
func Generate(w io.Writer, rep Report) error {
	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Ingest | Docs/min | Index Size |")
	fmt.Fprintln(w, "|--------|----------|------------|")
	fmt.Fprintf(w, "| %s | %.0f | %s |\n",
		formatMs(rep.Ingest.TimeMs),
		rep.Ingest.DocsPerMin,
		formatBytes(rep.Ingest.IndexBytes),
	)

	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Operation | p50 | p95 | Mean | Runs |")
	fmt.Fprintln(w, "|-----------|-----|-----|------|------|")

	rows := []struct {
		name string
		s    Summary
	}{
		{string(harness.OpSearch), rep.Search},
		{string(harness.OpQuery), rep.Query},
		{string(harness.OpContext), rep.Context},
	}

	for _, row := range rows {
		mean := "-"
		if row.s.MeanMs != nil {
			mean = formatMs(*row.s.MeanMs)
		}

		_, err := fmt.Fprintf(w, "| %s | %s | %s | %s | %d |\n",
			row.name,
			formatMs(row.s.P50Ms),
			formatMs(row.s.P95Ms),
			mean,
			row.s.Runs,
		)
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	return nil
}

func formatMs(ms float64) string {
	if ms < 1000 {
		return fmt.Sprintf("%.1fms", ms)
	}

	return fmt.Sprintf("%.2fs", ms/1000)
}

func formatBytes(b uint64) string {
	if b == 0 {
		return "-"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(b)
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	formatted := fmt.Sprintf("%.1f", size)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimRight(formatted, ".")

	return formatted + " " + units[unit]
}
