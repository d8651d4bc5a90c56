package report

import (
	"math"
	"slices"
)

// Percentile returns the nearest-rank percentile of values: the element
// at index round(pct/100*(n-1)) of the sorted values, with ties rounded
// to even. It returns 0 for an empty slice. values is not modified.
func Percentile(values []float64, pct float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	idx := int(math.RoundToEven(pct / 100 * float64(len(sorted)-1)))
	idx = max(0, min(idx, len(sorted)-1))

	return sorted[idx]
}

// Mean returns the arithmetic mean of values, or false if there are none.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values)), true
}

// DocsPerMinute converts an ingest duration to throughput.
func DocsPerMinute(docs int, ingestMs float64) float64 {
	if ingestMs <= 0 {
		return 0
	}

	return float64(docs) / (ingestMs / 1000) * 60
}

// Summarize reduces a sample sequence to p50, p95, mean and count.
func Summarize(values []float64) Summary {
	s := Summary{
		P50Ms: Percentile(values, 50),
		P95Ms: Percentile(values, 95),
		Runs:  len(values),
	}

	if mean, ok := Mean(values); ok {
		s.MeanMs = &mean
	}

	return s
}
