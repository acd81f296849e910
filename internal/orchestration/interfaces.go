package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/seqcalc/internal/composer"
)

// CalculationResult encapsulates the outcome of a single operation.
// It serves as the shared domain type between orchestration and presentation layers.
type CalculationResult struct {
	// Name is the operation that was evaluated (e.g., "aimless").
	Name string
	// Result is the computed value. It is the zero Result if an error occurred.
	Result composer.Result
	// Duration is the time taken to complete the evaluation.
	Duration time.Duration
	// Err contains any error that occurred during the evaluation.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	N       int
	Verbose bool
	Quiet   bool
}

// ProgressUpdate is sent once per finished evaluation.
type ProgressUpdate struct {
	// Index is the position of the operation in the evaluated list.
	Index int
	// Name is the operation that finished.
	Name string
	// Failed is true when the evaluation returned an error.
	Failed bool
}

// ProgressReporter defines the interface for displaying evaluation progress.
// It keeps the orchestration layer free of UI concerns.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving one update per finished operation.
	//   - numOperations: The number of operations being evaluated.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numOperations int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numOperations int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numOperations int, out io.Writer) {
	f(wg, progressChan, numOperations, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// ResultPresenter defines the interface for presenting evaluation results,
// allowing different output formats without modifying the orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the summary table of all evaluations.
	PresentComparisonTable(results []CalculationResult, out io.Writer)

	// PresentResult displays one successful result.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler handles evaluation errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
