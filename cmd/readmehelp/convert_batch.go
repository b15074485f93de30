package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	readmehelp "github.com/alnah/go-readmehelp"
	"github.com/alnah/go-readmehelp/internal/fileutil"
	"github.com/alnah/go-readmehelp/internal/hints"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input readmehelp.Input) (*readmehelp.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*readmehelp.Converter)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Module     string
	Snippets   int
	Dropped    int
	RawHTML    int
	Err        error
	Duration   time.Duration
}

// convertBatch converts files concurrently. A Converter is safe for
// concurrent use, so every worker shares conv.
func convertBatch(ctx context.Context, conv CLIConverter, workers int, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency > len(files) {
		concurrency = len(files)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	now := params.now
	if now == nil {
		now = time.Now
	}
	start := now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
		Module:     inferModule(f.InputPath, params.module, params.registry),
	}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = now().Sub(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return done(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return done(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	markdown := string(content)
	input := readmehelp.Input{
		Markdown:   markdown,
		Module:     result.Module,
		Standalone: params.standalone,
	}
	if params.standalone {
		input.Title = documentTitle(markdown, f.InputPath)
	}

	res, err := conv.Convert(ctx, input)
	if err != nil {
		return done(err)
	}
	result.Snippets = res.Snippets
	result.Dropped = res.DroppedSnippets
	result.RawHTML = res.RawHTML

	if err := fileutil.WriteFileAtomic(f.OutputPath, res.HTML); err != nil {
		return done(fmt.Errorf("%w: %v", ErrWriteHTML, err))
	}
	return done(nil)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Dropped   int // Snippet directives removed across succeeded files
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Dropped += r.Dropped
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
// Returns the number of failed conversions.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if r.RawHTML > 0 {
			fmt.Fprintf(env.Stderr, "warning: %s contains %d raw HTML element(s)\n", r.OutputPath, r.RawHTML)
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v, %d snippets, %d dropped)\n",
				r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond), r.Snippets, r.Dropped)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
