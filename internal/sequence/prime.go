package sequence

import (
	"iter"

	apperrors "github.com/agbru/seqcalc/internal/errors"
)

// IsPrime reports whether k is prime, using trial division by 2 and then by
// odd divisors up to floor(sqrt(k)). Values below 2 are not prime.
func IsPrime(k uint64) bool {
	switch {
	case k < 2:
		return false
	case k < 4:
		return true
	case k%2 == 0:
		return false
	}
	// d <= k/d instead of d*d <= k keeps the bound free of overflow.
	for d := uint64(3); d <= k/d; d += 2 {
		if k%d == 0 {
			return false
		}
	}
	return true
}

// PrimeCursor yields the primes in ascending order starting at 2.
type PrimeCursor struct {
	candidate uint64
}

// NewPrimeCursor returns a cursor positioned before 2.
func NewPrimeCursor() *PrimeCursor {
	return &PrimeCursor{candidate: 2}
}

// Next returns the next prime.
func (c *PrimeCursor) Next() uint64 {
	for !IsPrime(c.candidate) {
		c.candidate++
	}
	p := c.candidate
	c.candidate++
	return p
}

// All returns an iterator that keeps pulling from c until the consumer stops.
func (c *PrimeCursor) All() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for {
			if !yield(c.Next()) {
				return
			}
		}
	}
}

// Primes returns the first limit primes.
// A negative limit yields ErrInvalidArgument; zero yields an empty slice.
func Primes(limit int) ([]uint64, error) {
	if limit < 0 {
		return nil, apperrors.NewValidationError("limit", "must be non-negative, got %d", limit)
	}
	out := make([]uint64, 0, limit)
	c := NewPrimeCursor()
	for len(out) < limit {
		out = append(out, c.Next())
	}
	return out, nil
}
