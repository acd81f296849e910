package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/seqcalc/internal/composer"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/metrics"
)

const tracerName = "github.com/agbru/seqcalc/internal/orchestration"

// EvaluateFunc evaluates one operation for n and should return once ctx is
// done. composer.EvaluateContext is the production implementation.
type EvaluateFunc func(ctx context.Context, op composer.Operation, n int) (composer.Result, error)

// Executor runs operations concurrently and reports each evaluation to the
// logger, the metrics recorder and an OpenTelemetry span.
type Executor struct {
	evaluate EvaluateFunc
	recorder *metrics.Recorder
	logger   logging.Logger
	tracer   trace.Tracer
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithEvaluateFunc replaces the evaluation function.
func WithEvaluateFunc(fn EvaluateFunc) ExecutorOption {
	return func(e *Executor) { e.evaluate = fn }
}

// WithRecorder records every evaluation in r.
func WithRecorder(r *metrics.Recorder) ExecutorOption {
	return func(e *Executor) { e.recorder = r }
}

// WithLogger sets the logger used for per-evaluation debug entries.
func WithLogger(l logging.Logger) ExecutorOption {
	return func(e *Executor) { e.logger = l }
}

// WithTracer sets the tracer; the global otel tracer is used otherwise.
func WithTracer(t trace.Tracer) ExecutorOption {
	return func(e *Executor) { e.tracer = t }
}

// NewExecutor creates an executor evaluating with composer.EvaluateContext.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{evaluate: composer.EvaluateContext}
	for _, opt := range opts {
		opt(e)
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(tracerName)
	}
	return e
}

// SelectOperations resolves a command name to the operations it runs:
// "all" selects every operation in sorted order.
func SelectOperations(name string) ([]composer.Operation, error) {
	if name == "all" {
		return composer.Operations(), nil
	}
	op, err := composer.ParseOperation(name)
	if err != nil {
		return nil, err
	}
	return []composer.Operation{op}, nil
}

// ExecuteOperations evaluates ops for the same n, one goroutine each.
//
// Evaluations that outlive ctx are reported as failed: a passed deadline
// gives an apperrors.TimeoutError and a cancellation gives ctx.Err(). The
// returned slice is in the order of ops.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - ops: The operations to evaluate.
//   - n: The argument shared by every operation.
//   - progressReporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for progress output.
//
// Returns:
//   - []CalculationResult: One result per operation.
func (e *Executor) ExecuteOperations(ctx context.Context, ops []composer.Operation, n int, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(ops))
	progressChan := make(chan ProgressUpdate, len(ops))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(ops), out)

	for i, op := range ops {
		g.Go(func() error {
			results[i] = e.evaluateOne(ctx, op, n)
			progressChan <- ProgressUpdate{Index: i, Name: string(op), Failed: results[i].Err != nil}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func (e *Executor) evaluateOne(ctx context.Context, op composer.Operation, n int) CalculationResult {
	ctx, span := e.tracer.Start(ctx, "seqcalc.evaluate", trace.WithAttributes(
		attribute.String("seqcalc.operation", string(op)),
		attribute.Int("seqcalc.n", n),
	))
	defer span.End()

	start := time.Now()
	res, err := e.run(ctx, op, n, start)
	elapsed := time.Since(start)

	status := metrics.StatusSuccess
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		status = metrics.StatusTimeout
	case err != nil:
		status = metrics.StatusError
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if e.logger != nil {
			e.logger.Debug("evaluation failed",
				logging.String("operation", string(op)), logging.Int("n", n), logging.Err(err))
		}
	} else {
		span.SetAttributes(attribute.Int("seqcalc.terms", len(res.Terms)))
		if e.logger != nil {
			e.logger.Debug("evaluation finished",
				logging.String("operation", string(op)), logging.Int("n", n),
				logging.Duration("elapsed", elapsed))
		}
	}
	if e.recorder != nil {
		e.recorder.ObserveEvaluation(string(op), status, elapsed, len(res.Terms))
	}

	return CalculationResult{Name: string(op), Result: res, Duration: elapsed, Err: err}
}

// run evaluates op in its own goroutine so that ctx bounds the wait even
// for an EvaluateFunc that ignores ctx. The composer operations check ctx
// while they iterate, so the goroutine exits shortly after a timeout.
func (e *Executor) run(ctx context.Context, op composer.Operation, n int, start time.Time) (composer.Result, error) {
	type outcome struct {
		res composer.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := e.evaluate(ctx, op, n)
		done <- outcome{res, err}
	}()

	select {
	case o := <-done:
		if o.err != nil && apperrors.IsContextError(o.err) && ctx.Err() != nil {
			return composer.Result{}, contextFailure(ctx, op, start)
		}
		return o.res, o.err
	case <-ctx.Done():
		return composer.Result{}, contextFailure(ctx, op, start)
	}
}

// contextFailure reports a done ctx: a deadline becomes a TimeoutError,
// anything else is returned as is.
func contextFailure(ctx context.Context, op composer.Operation, start time.Time) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.TimeoutError{
			Operation: string(op),
			Limit:     time.Since(start).Round(time.Millisecond),
		}
	}
	return ctx.Err()
}

// AnalyzeComparisonResults sorts results (successes first, then by
// duration), presents the comparison table and every successful result,
// and returns the run's exit code.
//
// Parameters:
//   - results: The slice of results to analyze. It is sorted in place.
//   - opts: Presentation options.
//   - presenter: The result presenter for display formatting.
//   - errHandler: The handler reporting the first failure.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: ExitSuccess, or the exit code of the first failure.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstError error
	var firstErrorDuration time.Duration
	successCount := 0
	for _, res := range results {
		if res.Err != nil {
			if firstError == nil {
				firstError = res.Err
				firstErrorDuration = res.Duration
			}
			continue
		}
		successCount++
	}

	if !opts.Quiet {
		presenter.PresentComparisonTable(results, out)
	}

	if successCount == 0 {
		if !opts.Quiet {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No operation could be evaluated.\n")
		}
		return errHandler.HandleError(firstError, firstErrorDuration, out)
	}

	for _, res := range results {
		if res.Err == nil {
			presenter.PresentResult(res, opts, out)
		}
	}

	if firstError != nil {
		if !opts.Quiet {
			fmt.Fprintf(out, "\nGlobal Status: Partial failure. %d of %d operations succeeded.\n", successCount, len(results))
		}
		return errHandler.HandleError(firstError, firstErrorDuration, out)
	}

	if !opts.Quiet {
		fmt.Fprintf(out, "\nGlobal Status: Success. All operations were evaluated.\n")
	}
	return apperrors.ExitSuccess
}
