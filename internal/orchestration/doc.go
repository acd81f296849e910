// Package orchestration coordinates concurrent evaluation of the composed
// sequence operations and aggregates their results for comparison. It
// decouples the evaluation from presentation via the ProgressReporter,
// ResultPresenter and ErrorHandler interfaces.
package orchestration
