package composer

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/sequence"
)

// Operation names one of the composed functions.
type Operation string

const (
	OpAimless     Operation = "aimless"
	OpMeaningless Operation = "meaningless"
	OpWorthless   Operation = "worthless"
)

// Operations returns every operation in alphabetical order.
func Operations() []Operation {
	return []Operation{OpAimless, OpMeaningless, OpWorthless}
}

// ParseOperation resolves a case-insensitive operation name.
func ParseOperation(name string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Operations() {
		if op == known {
			return op, nil
		}
	}
	return "", apperrors.NewValidationError("operation", "unknown operation %q (want one of %v)", name, Operations())
}

// Result is the outcome of one operation. Meaningless and Aimless produce a
// single fraction; Worthless produces a list of terms.
type Result struct {
	Operation Operation
	N         int
	// Value holds the single fraction for scalar operations.
	Value sequence.Fraction
	// Terms holds the prefix returned by Worthless; nil otherwise.
	Terms []sequence.Fraction
}

// IsSequence reports whether the result is a list of terms.
func (r Result) IsSequence() bool { return r.Operation == OpWorthless }

// Values returns the result as a list: the terms for Worthless, or a
// single-element list otherwise.
func (r Result) Values() []sequence.Fraction {
	if r.IsSequence() {
		return r.Terms
	}
	return []sequence.Fraction{r.Value}
}

// Summary renders the result on one line.
func (r Result) Summary() string {
	if r.IsSequence() {
		return fmt.Sprintf("%d terms, sum %s", len(r.Terms), sequence.SumFractions(r.Terms))
	}
	return r.Value.String()
}

// Evaluate runs op for n.
func Evaluate(op Operation, n int) (Result, error) {
	return EvaluateContext(context.Background(), op, n)
}

// EvaluateContext runs op for n and gives up with ctx's error once ctx is
// done.
func EvaluateContext(ctx context.Context, op Operation, n int) (Result, error) {
	res := Result{Operation: op, N: n}
	var err error
	switch op {
	case OpMeaningless:
		res.Value, err = MeaninglessContext(ctx, n)
	case OpAimless:
		res.Value, err = AimlessContext(ctx, n)
	case OpWorthless:
		res.Terms, err = WorthlessContext(ctx, n)
	default:
		err = apperrors.NewValidationError("operation", "unknown operation %q", string(op))
	}
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
