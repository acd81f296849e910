package sequence

import (
	"iter"

	apperrors "github.com/agbru/seqcalc/internal/errors"
)

// RationalCursor walks the positive rationals along the anti-diagonals of
// the (numerator, denominator) grid and yields each value exactly once.
//
// Diagonal n holds the n candidate pairs (p, n-p+1). Odd diagonals are read
// with p ascending from 1 to n, even diagonals with p descending from n to 1.
// A candidate is yielded only when gcd(p, q) == 1; any other pair is a
// duplicate of a value reached in lowest terms and is skipped.
//
// The order is part of the contract:
//
//	1/1, 2/1, 1/2, 1/3, 3/1, 4/1, 3/2, 2/3, 1/4, 1/5, 5/1, ...
type RationalCursor struct {
	diagonal uint64 // diagonal of the next candidate
	position uint64 // index of the next candidate within diagonal
	emitted  uint64 // diagonal of the last yielded term
}

// NewRationalCursor returns a cursor positioned before 1/1.
func NewRationalCursor() *RationalCursor {
	return &RationalCursor{diagonal: 1}
}

// Next returns the next rational in diagonal order. The sequence is
// infinite, so Next always succeeds.
func (c *RationalCursor) Next() Fraction {
	for {
		n := c.diagonal
		var p uint64
		if n%2 == 1 {
			p = c.position + 1
		} else {
			p = n - c.position
		}
		q := n - p + 1

		c.position++
		if c.position == n {
			c.diagonal++
			c.position = 0
		}

		if gcd(p, q) == 1 {
			c.emitted = n
			return fractionFromParts(p, q)
		}
	}
}

// Diagonal returns the diagonal index of the term most recently returned by
// Next, or 0 before the first call.
func (c *RationalCursor) Diagonal() uint64 { return c.emitted }

// All returns an iterator that keeps pulling from c until the consumer stops.
func (c *RationalCursor) All() iter.Seq[Fraction] {
	return func(yield func(Fraction) bool) {
		for {
			if !yield(c.Next()) {
				return
			}
		}
	}
}

// Rationals returns the first limit rationals in diagonal order.
// A negative limit yields ErrInvalidArgument; zero yields an empty slice.
func Rationals(limit int) ([]Fraction, error) {
	if limit < 0 {
		return nil, apperrors.NewValidationError("limit", "must be non-negative, got %d", limit)
	}
	out := make([]Fraction, 0, limit)
	c := NewRationalCursor()
	for len(out) < limit {
		out = append(out, c.Next())
	}
	return out, nil
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
