package pdfoutline

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ProcessFunc produces the outline for a single document. Implementations
// must be safe for concurrent use by multiple workers.
type ProcessFunc func(ctx context.Context, path string) (*Outline, error)

// BatchOptions configures a batch run over a directory of documents.
type BatchOptions struct {
	// Workers is the number of documents processed concurrently.
	// 0 selects min(NumCPU, number of files, 4).
	Workers int

	// Timeout is the per-document processing deadline. 0 disables it.
	Timeout time.Duration

	// OutputDir is where outline artifacts are written, one JSON file per
	// input document. Empty disables artifact writing.
	OutputDir string
}

// DocumentResult records the outcome for one document in a batch.
type DocumentResult struct {
	Path       string
	OutputPath string // artifact location, empty when none was written
	Entries    int
	Duration   time.Duration
	Code       ErrorCode // empty for a clean result
	Err        error     // set only when the document failed
}

// Failed reports whether the document produced no outline artifact.
func (r DocumentResult) Failed() bool {
	return r.Err != nil
}

// BatchSummary aggregates the outcomes of one batch run.
type BatchSummary struct {
	RunID     string
	Total     int
	Succeeded int
	Failed    int
	Duration  time.Duration
	Results   []DocumentResult
}

// BatchProcessor runs outline inference over every PDF in a directory,
// fanning documents out to a bounded worker pool. One failing document never
// stops the batch; its failure is recorded and the remaining documents keep
// processing.
type BatchProcessor struct {
	process ProcessFunc
	options BatchOptions
}

// NewBatchProcessor creates a batch processor around a per-document
// processing function.
func NewBatchProcessor(process ProcessFunc, options BatchOptions) *BatchProcessor {
	return &BatchProcessor{
		process: process,
		options: options,
	}
}

// Process discovers the PDF files in inputDir and processes them
// concurrently. It returns a summary of every document's outcome; the error
// is only non-nil when the input directory itself cannot be read.
func (b *BatchProcessor) Process(ctx context.Context, inputDir string) (*BatchSummary, error) {
	files, err := listPDFFiles(inputDir)
	if err != nil {
		return nil, err
	}

	summary := &BatchSummary{
		RunID: uuid.New().String(),
		Total: len(files),
	}
	if len(files) == 0 {
		log.Printf("No PDF files found in %s", inputDir)
		return summary, nil
	}

	workers := b.options.Workers
	if workers <= 0 {
		workers = defaultWorkerCount(len(files))
	}
	if workers > len(files) {
		workers = len(files)
	}

	log.Printf("Processing %d documents with %d workers (run %s)", len(files), workers, summary.RunID)
	startTime := time.Now()

	jobs := make(chan string)
	results := make(chan DocumentResult)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- b.processOne(ctx, path, summary.RunID)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for result := range results {
		if result.Failed() {
			summary.Failed++
			log.Printf("Failed to process %s: %v", result.Path, result.Err)
		} else {
			summary.Succeeded++
		}
		summary.Results = append(summary.Results, result)
	}

	// Worker completion order is nondeterministic
	sort.Slice(summary.Results, func(i, j int) bool {
		return summary.Results[i].Path < summary.Results[j].Path
	})

	summary.Duration = time.Since(startTime)
	log.Printf("Batch %s complete: %d/%d succeeded in %v", summary.RunID, summary.Succeeded, summary.Total, summary.Duration.Round(time.Millisecond))

	return summary, nil
}

// processOne processes a single document under the per-document deadline and
// writes its artifact.
func (b *BatchProcessor) processOne(ctx context.Context, path, runID string) DocumentResult {
	start := time.Now()
	result := DocumentResult{Path: path}

	runCtx := ctx
	if b.options.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, b.options.Timeout)
		defer cancel()
	}

	type outcome struct {
		outline *Outline
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		outline, err := b.process(runCtx, path)
		done <- outcome{outline: outline, err: err}
	}()

	var outline *Outline
	select {
	case <-runCtx.Done():
		result.Duration = time.Since(start)
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			perr := NewProcessingTimeoutError(path, b.options.Timeout)
			perr.RunID = runID
			result.Code = perr.Code
			result.Err = perr
		} else {
			result.Err = runCtx.Err()
		}
		return result
	case out := <-done:
		if out.err != nil {
			result.Duration = time.Since(start)
			var perr *ProcessingError
			if errors.As(out.err, &perr) {
				perr.RunID = runID
				result.Code = perr.Code
			}
			result.Err = out.err
			return result
		}
		outline = out.outline
	}

	result.Entries = len(outline.Entries)

	// A document that yields no entries is still a clean result with a valid
	// empty outline; record whether anything was extracted at all.
	if len(outline.Entries) == 0 {
		if outline.Title == "" {
			result.Code = CodeEmptyDocument
		} else {
			result.Code = CodeClassificationAmbiguous
		}
	}

	if b.options.OutputDir != "" {
		outPath := OutputPath(path, b.options.OutputDir)
		if err := WriteOutlineFile(outPath, outline); err != nil {
			perr := NewOutputFailedError(path, err)
			perr.RunID = runID
			result.Duration = time.Since(start)
			result.Code = perr.Code
			result.Err = perr
			return result
		}
		result.OutputPath = outPath
	}

	result.Duration = time.Since(start)
	return result
}

// defaultWorkerCount picks a conservative pool size for a batch of the given
// number of files.
func defaultWorkerCount(files int) int {
	workers := runtime.NumCPU()
	if workers > files {
		workers = files
	}
	if workers > 4 {
		workers = 4
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// listPDFFiles returns the PDF files directly inside dir, sorted by name.
func listPDFFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read input directory %s", dir)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
