// Package logging provides a unified logging interface for seqcalc.
// It abstracts the underlying logging implementation (zerolog, or the
// standard library logger) so the application layers log through Logger
// and Field values without depending on a backend.
package logging
