package main

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/olekukonko/tablewriter"
)

// SyntheticProgram builds the benchmark input described by shape.
func SyntheticProgram(shape BenchShape) Program[int] {
	p := Program[int]{
		Arguments:  make([]int, shape.Arguments),
		Statements: make([]int, shape.Statements),
	}
	for i := range p.Arguments {
		p.Arguments[i] = shape.Value
	}
	for i := range p.Statements {
		p.Statements[i] = shape.Value
	}
	return p
}

// chainFactory returns a function building a fresh chain for names. The
// names are checked once up front so the returned function cannot fail.
func chainFactory(names []string, opts PassOptions) (func() []Folder[int], error) {
	if _, err := NewChain[int](names, opts); err != nil {
		return nil, err
	}
	return func() []Folder[int] {
		chain, _ := NewChain[int](names, opts)
		return chain
	}, nil
}

// runIteration is one benchmark iteration: a fresh program and fresh passes,
// folded once.
func runIteration(shape BenchShape, newChain func() []Folder[int], strategy Strategy) Program[int] {
	return Apply(strategy, SyntheticProgram(shape), newChain()...)
}

// BenchResult is the outcome of benchmarking one strategy.
type BenchResult struct {
	Strategy Strategy
	Passes   []string
	testing.BenchmarkResult

	// Statements is how many statements survived the last iteration.
	Statements int
}

// RunBenchmarks benchmarks each strategy on cfg's synthetic input.
func RunBenchmarks(cfg *Config, strategies []Strategy) ([]BenchResult, error) {
	newChain, err := chainFactory(cfg.Passes, cfg.PassOptions())
	if err != nil {
		return nil, err
	}

	var results []BenchResult
	for _, strategy := range strategies {
		var last Program[int]
		r := testing.Benchmark(func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				last = runIteration(cfg.Bench, newChain, strategy)
			}
		})
		results = append(results, BenchResult{
			Strategy:        strategy,
			Passes:          cfg.Passes,
			BenchmarkResult: r,
			Statements:      len(last.Statements),
		})
	}
	return results, nil
}

// WriteBenchTable renders results as a table.
func WriteBenchTable(w io.Writer, results []BenchResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"strategy", "passes", "iterations", "ns/op", "B/op", "allocs/op", "statements"})
	for _, r := range results {
		table.Append([]string{
			string(r.Strategy),
			strings.Join(r.Passes, ","),
			strconv.Itoa(r.N),
			strconv.FormatInt(r.NsPerOp(), 10),
			strconv.FormatInt(r.AllocedBytesPerOp(), 10),
			strconv.FormatInt(r.AllocsPerOp(), 10),
			strconv.Itoa(r.Statements),
		})
	}
	table.Render()
}

// benchPkg is the package path WriteBenchLines reports results under.
const benchPkg = "github.com/strager/foldbench"

// WriteBenchLines writes results in the format "go test -bench" prints, so
// the output can be fed to benchstat.
func WriteBenchLines(w io.Writer, results []BenchResult) error {
	if _, err := fmt.Fprintf(w, "goos: %s\ngoarch: %s\npkg: %s\n", runtime.GOOS, runtime.GOARCH, benchPkg); err != nil {
		return err
	}
	for _, r := range results {
		_, err := fmt.Fprintf(w, "BenchmarkFold/strategy=%s/passes=%s\t%s\t%s\n",
			r.Strategy, strings.Join(r.Passes, "+"), r.BenchmarkResult.String(), r.MemString())
		if err != nil {
			return err
		}
	}
	return nil
}
