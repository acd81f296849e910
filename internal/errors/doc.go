// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// invalid arguments, timeouts) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Every precondition violation raised by the sequence core unwraps to
// ErrInvalidArgument, and ExitCodeFor maps any error to a process exit code.
package apperrors
