// Package harness drives an external recall binary through a fixed command
// sequence and times each process invocation.
package harness

// Op names a timed operation kind.
type Op string

// Timed operation kinds, in execution order.
const (
	OpSearch  Op = "search"
	OpQuery   Op = "query"
	OpContext Op = "context"
)

// Ops returns the timed operation kinds in execution order.
func Ops() []Op {
	return []Op{OpSearch, OpQuery, OpContext}
}

// Result holds the raw timings from one benchmark run. Samples are in
// milliseconds, in execution order.
type Result struct {
	RunID      string
	Docs       int
	IngestMs   float64
	IndexBytes uint64
	Search     []float64
	Query      []float64
	Context    []float64
}

// Samples returns the sample sequence for op.
func (r *Result) Samples(op Op) []float64 {
	switch op {
	case OpSearch:
		return r.Search
	case OpQuery:
		return r.Query
	case OpContext:
		return r.Context
	default:
		return nil
	}
}

func (r *Result) record(op Op, ms float64) {
	switch op {
	case OpSearch:
		r.Search = append(r.Search, ms)
	case OpQuery:
		r.Query = append(r.Query, ms)
	case OpContext:
		r.Context = append(r.Context, ms)
	}
}
