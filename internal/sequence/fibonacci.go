package sequence

import (
	"math/big"
	"math/bits"

	apperrors "github.com/agbru/seqcalc/internal/errors"
)

// FibonacciCursor yields the terms of the recurrence next = current + previous
// starting from two seed values. The seeds themselves are the first two terms.
type FibonacciCursor struct {
	previous *big.Int
	current  *big.Int
}

// NewFibonacciCursor returns a cursor over first, second, first+second, ...
// The seeds are copied; later changes to the arguments do not affect it.
func NewFibonacciCursor(first, second *big.Int) *FibonacciCursor {
	return &FibonacciCursor{
		previous: new(big.Int).Set(first),
		current:  new(big.Int).Set(second),
	}
}

// Next returns the next term as a freshly allocated *big.Int.
func (c *FibonacciCursor) Next() *big.Int {
	term := new(big.Int).Set(c.previous)
	c.previous, c.current = c.current, new(big.Int).Add(c.previous, c.current)
	return term
}

type fibonacciSeeds struct {
	first  *big.Int
	second *big.Int
}

// FibonacciOption configures the seeds used by Fibonacci.
type FibonacciOption func(*fibonacciSeeds)

// WithSeeds sets the first two terms of the sequence.
func WithSeeds(first, second *big.Int) FibonacciOption {
	return func(s *fibonacciSeeds) {
		s.first, s.second = first, second
	}
}

// WithInt64Seeds is WithSeeds for small seeds.
func WithInt64Seeds(first, second int64) FibonacciOption {
	return WithSeeds(big.NewInt(first), big.NewInt(second))
}

// Fibonacci returns the first limit terms of the recurrence. Without options
// the seeds are 1 and 1. A negative limit or a nil seed yields
// ErrInvalidArgument; zero yields an empty slice.
func Fibonacci(limit int, opts ...FibonacciOption) ([]*big.Int, error) {
	if limit < 0 {
		return nil, apperrors.NewValidationError("limit", "must be non-negative, got %d", limit)
	}
	seeds := fibonacciSeeds{first: big.NewInt(1), second: big.NewInt(1)}
	for _, opt := range opts {
		opt(&seeds)
	}
	if seeds.first == nil || seeds.second == nil {
		return nil, apperrors.NewValidationError("seed", "must not be nil")
	}

	out := make([]*big.Int, 0, limit)
	c := NewFibonacciCursor(seeds.first, seeds.second)
	for len(out) < limit {
		out = append(out, c.Next())
	}
	return out, nil
}

// FibonacciAt returns the n-th term (1-based) of the sequence seeded with 1
// and 1, i.e. the classical F(n). n must be at least 1.
//
// It uses fast doubling, so the cost is O(log n) big multiplications:
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k+1)² + F(k)²
func FibonacciAt(n uint64) (*big.Int, error) {
	if n == 0 {
		return nil, apperrors.NewValidationError("n", "must be at least 1")
	}

	fk := big.NewInt(0)  // F(k)
	fk1 := big.NewInt(1) // F(k+1)
	t1 := new(big.Int)
	t2 := new(big.Int)

	for i := bits.Len64(n) - 1; i >= 0; i-- {
		// F(2k) = F(k) * (2*F(k+1) - F(k))
		t1.Lsh(fk1, 1)
		t1.Sub(t1, fk)
		t1.Mul(t1, fk)

		// F(2k+1) = F(k+1)² + F(k)²
		t2.Mul(fk1, fk1)
		fk.Mul(fk, fk)
		t2.Add(t2, fk)

		fk.Set(t1)
		fk1.Set(t2)

		if (n>>uint(i))&1 == 1 {
			t1.Add(fk, fk1)
			fk.Set(fk1)
			fk1.Set(t1)
		}
	}
	return fk, nil
}
