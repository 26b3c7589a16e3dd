package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"sync"
	"time"

	examples2pdf "github.com/alnah/go-examples2pdf"
	"github.com/alnah/go-examples2pdf/internal/config"
	"github.com/alnah/go-examples2pdf/internal/hints"
)

// Generator is the part of the library generator used by the batch.
type Generator interface {
	Generate(ctx context.Context, in examples2pdf.Input) (*examples2pdf.Result, error)
	Toolchain() examples2pdf.Toolchain
}

// Compile-time interface implementation check.
var _ Generator = (*examples2pdf.Generator)(nil)

// GenerationResult holds the outcome of a single source.
type GenerationResult struct {
	Source   string
	Result   *examples2pdf.Result // nil when generation failed before writing
	Err      error
	Duration time.Duration
}

// compileError attaches the toolchain command and output path to a
// toolchain failure so hints can name them.
type compileError struct {
	command string
	output  string
	err     error
}

func (e *compileError) Error() string { return e.err.Error() }
func (e *compileError) Unwrap() error { return e.err }

// batchError reports a partially failed batch. It unwraps to the first
// failure so the exit code follows it.
type batchError struct {
	failed int
	total  int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d generation(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error { return e.first }

// resolveWorkers returns the worker count for n sources: requested, or
// GOMAXPROCS when 0, capped by config.MaxWorkers and by n.
func resolveWorkers(requested, n int) int {
	workers := requested
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, config.MaxWorkers, n)
	return max(workers, 1)
}

// generateBatch processes inputs concurrently. Results keep input order.
func generateBatch(ctx context.Context, gen Generator, inputs []examples2pdf.Input, workers int) []GenerationResult {
	if len(inputs) == 0 {
		return nil
	}

	concurrency := max(min(workers, len(inputs)), 1)

	results := make([]GenerationResult, len(inputs))
	var wg sync.WaitGroup
	jobs := make(chan int, len(inputs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = GenerationResult{
						Source: inputs[idx].Source,
						Err:    err,
					}
					continue
				}
				results[idx] = generateOne(ctx, gen, inputs[idx])
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// generateOne processes a single source and returns the result.
func generateOne(ctx context.Context, gen Generator, in examples2pdf.Input) GenerationResult {
	start := time.Now()
	res, err := gen.Generate(ctx, in)
	if err != nil && examples2pdf.IsCompileError(err) {
		ce := &compileError{command: gen.Toolchain().Command, err: err}
		if res != nil {
			ce.output = res.Output
		}
		err = ce
	}
	return GenerationResult{
		Source:   in.Source,
		Result:   res,
		Err:      err,
		Duration: time.Since(start),
	}
}

// ResultSummary holds the count of succeeded and failed generations.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed generations.
func countResults(results []GenerationResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// summarize prints the results and turns failures into the command error.
// A single failed source returns its own error; a batch returns batchError.
func summarize(results []GenerationResult, common commonFlags, env *Environment) error {
	summary := printResults(results, common.quiet, common.verbose, env)
	if summary.Failed == 0 {
		return nil
	}
	if len(results) == 1 {
		return fmt.Errorf("%s: %w", results[0].Source, results[0].Err)
	}
	var first error
	for _, r := range results {
		if r.Err != nil {
			first = r.Err
			break
		}
	}
	return &batchError{failed: summary.Failed, total: len(results), first: first}
}

// printResults outputs generation results using the provided writers.
// Failures of a single source are left to the caller.
func printResults(results []GenerationResult, quiet, verbose bool, env *Environment) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.Source, r.Err, hintFor(r.Err))
			}
			continue
		}

		if quiet {
			continue
		}
		warnNoPDF(env.Stderr, r)

		res := r.Result
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Source, res.Output, r.Duration.Round(time.Millisecond))
			fmt.Fprintf(env.Stdout, "  %d sections, %d subsections, %d examples\n",
				res.Stats.Sections, res.Stats.Subsections, res.Stats.Examples)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", res.Output)
		}
		if res.PDF != "" {
			fmt.Fprintf(env.Stdout, "Created %s\n", res.PDF)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary
}

// warnNoPDF explains a LaTeX build that ran without producing a PDF.
// The library has already logged the failure; this adds the hint.
func warnNoPDF(w io.Writer, r GenerationResult) {
	res := r.Result
	if res == nil || res.Format != examples2pdf.FormatLaTeX || res.Build == nil || res.PDF != "" {
		return
	}

	var hint string
	switch err := res.Build.Err; {
	case err == nil:
	case errors.Is(err, exec.ErrNotFound):
		hint = hints.ForCompilerNotFound(res.Build.Args[0])
	case errors.Is(err, context.DeadlineExceeded):
		hint = hints.ForTimeout()
	default:
		hint = hints.ForCompileFailed(res.Output)
	}
	fmt.Fprintf(w, "warning: no PDF for %s%s\n", r.Source, hint)
}
