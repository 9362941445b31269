package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-paperscan"
	"github.com/alnah/go-paperscan/internal/hints"
)

// Renderer is the part of a session used to render one document.
type Renderer interface {
	Generate(ctx context.Context, input paperscan.Input) (paperscan.Result, error)
	WritePDF(w io.Writer) error
	WritePNGs(dir, prefix string) ([]string, error)
	Collection() *paperscan.Collection
}

// Compile-time interface implementation check.
var _ Renderer = (*paperscan.Session)(nil)

// Pool abstracts session pool operations for testability.
type Pool interface {
	Acquire() (Renderer, error)
	Release(Renderer)
	Size() int
}

// poolAdapter exposes a SessionPool as a Pool.
type poolAdapter struct {
	pool *paperscan.SessionPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

func newPoolAdapter(pool *paperscan.SessionPool) *poolAdapter {
	return &poolAdapter{pool: pool}
}

func (a *poolAdapter) Acquire() (Renderer, error) {
	return a.pool.Acquire()
}

// Release returns a session to the pool. Panics on a foreign Renderer
// (programmer error).
func (a *poolAdapter) Release(r Renderer) {
	s, ok := r.(*paperscan.Session)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", r))
	}
	a.pool.Release(s)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}

// RenderResult holds the outcome of a single document.
type RenderResult struct {
	InputPath  string
	OutputPath string // empty when the PDF is skipped
	PNGs       []string
	Pages      int
	Warnings   []string
	Err        error
	Duration   time.Duration
}

// renderBatch processes files concurrently using the session pool.
// Results keep the order of files.
func renderBatch(ctx context.Context, pool Pool, files []FileToRender, params *renderParams) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]RenderResult, len(files))
	jobs := make(chan int, len(files))
	for i := range files {
		jobs <- i
	}
	close(jobs)

	// Workers record failures in results and never return an error, so one
	// bad document does not stop the others.
	var g errgroup.Group
	for range concurrency {
		g.Go(func() error {
			r, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: err}
				}
				return nil
			}
			defer pool.Release(r)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = renderFile(ctx, r, files[idx], params)
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// renderFile renders one document and writes its outputs.
// The gallery is cleared first so outputs hold this document only.
func renderFile(ctx context.Context, r Renderer, f FileToRender, params *renderParams) RenderResult {
	r.Collection().RemoveAll()

	start := time.Now()
	result := RenderResult{InputPath: f.InputPath}
	fail := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadInput, err))
	}

	input, err := documentInput(params, f.InputPath, string(content))
	if err != nil {
		return fail(err)
	}

	gen, err := r.Generate(ctx, input)
	if err != nil {
		return fail(err)
	}
	result.Pages = gen.Pages
	result.Warnings = gen.Warnings

	if !params.noPDF {
		var buf bytes.Buffer
		if err := r.WritePDF(&buf); err != nil {
			return fail(err)
		}
		if err := writeOutput(f.OutputPath, buf.Bytes()); err != nil {
			return fail(err)
		}
		result.OutputPath = f.OutputPath
	}

	if params.png {
		paths, err := r.WritePNGs(filepath.Dir(f.OutputPath), pngPrefixFor(f, params.pngPrefix))
		result.PNGs = paths
		if err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
	}

	result.Duration = time.Since(start)
	return result
}

// documentInput fills the input template for one document.
func documentInput(params *renderParams, path, content string) (paperscan.Input, error) {
	input := params.input
	input.Content = content
	input.Format = params.format
	if input.Format == "" {
		format, err := formatForPath(path)
		if err != nil {
			return input, err
		}
		input.Format = format
	}
	if abs, err := filepath.Abs(filepath.Dir(path)); err == nil {
		input.SourceDir = abs
	}
	return input, nil
}

// ResultSummary holds the count of succeeded and failed renderings.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Pages     int
}

// countResults tallies succeeded and failed renderings.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Pages += r.Pages
	}
	return summary
}

// printResults outputs rendering results and returns the failure count.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		for _, w := range r.Warnings {
			hint := ""
			if w == paperscan.WarnSplitImages {
				hint = hints.ForSplitImages()
			}
			fmt.Fprintf(env.Stderr, "warning: %s: %s%s\n", r.InputPath, w, hint)
		}

		outputs := r.PNGs
		if r.OutputPath != "" {
			outputs = append([]string{r.OutputPath}, r.PNGs...)
		}
		for _, out := range outputs {
			if verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s (%d page(s), %v)\n", r.InputPath, out, r.Pages, r.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stdout, "Created %s\n", out)
			}
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed, %d page(s)\n", summary.Succeeded, summary.Failed, summary.Pages)
	}

	return summary.Failed
}
