package composer

import (
	"context"
	"math/big"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/sequence"
)

// cancelCheckInterval is the number of terms consumed between two context
// checks.
const cancelCheckInterval = 256

// checkCanceled returns ctx.Err() on every cancelCheckInterval-th term.
func checkCanceled(ctx context.Context, i int) error {
	if i%cancelCheckInterval != 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return apperrors.WrapError(err, "after %d terms", i)
	}
	return nil
}

func checkN(n int) error {
	if n < 1 {
		return apperrors.NewValidationError("n", "must be at least 1, got %d", n)
	}
	return nil
}

// Meaningless splits the first n rationals into those whose numerator or
// denominator is prime and the rest, and returns the product of the first
// group divided by the product of the second. Empty products are 1.
func Meaningless(n int) (sequence.Fraction, error) {
	return MeaninglessContext(context.Background(), n)
}

// MeaninglessContext is Meaningless, stopping with ctx's error once ctx is
// done.
func MeaninglessContext(ctx context.Context, n int) (sequence.Fraction, error) {
	if err := checkN(n); err != nil {
		return sequence.Fraction{}, err
	}
	primeish := big.NewRat(1, 1)
	rest := big.NewRat(1, 1)

	c := sequence.NewRationalCursor()
	for i := 0; i < n; i++ {
		if err := checkCanceled(ctx, i); err != nil {
			return sequence.Fraction{}, err
		}
		f := c.Next()
		num, den := f.Num(), f.Denom()
		if sequence.IsPrime(num.Uint64()) || sequence.IsPrime(den.Uint64()) {
			primeish.Mul(primeish, f.Rat())
		} else {
			rest.Mul(rest, f.Rat())
		}
	}
	// rest is a product of positive terms, never zero.
	return sequence.FractionFromRat(primeish.Quo(primeish, rest)), nil
}

// Aimless pairs the first n primes as (p1, p2), (p3, p4), ... and returns the
// sum of the fractions p1/p2 + p3/p4 + .... When n is odd the last prime has
// no partner and contributes p/1.
func Aimless(n int) (sequence.Fraction, error) {
	return AimlessContext(context.Background(), n)
}

// AimlessContext is Aimless, stopping with ctx's error once ctx is done.
func AimlessContext(ctx context.Context, n int) (sequence.Fraction, error) {
	if err := checkN(n); err != nil {
		return sequence.Fraction{}, err
	}
	sum := new(big.Rat)
	term := new(big.Rat)

	c := sequence.NewPrimeCursor()
	for i := 0; i < n; i += 2 {
		if err := checkCanceled(ctx, i/2); err != nil {
			return sequence.Fraction{}, err
		}
		num := new(big.Int).SetUint64(c.Next())
		den := big.NewInt(1)
		if i+1 < n {
			den.SetUint64(c.Next())
		}
		sum.Add(sum, term.SetFrac(num, den))
	}
	return sequence.FractionFromRat(sum), nil
}

// Worthless returns the longest prefix of the rational enumeration whose sum
// does not exceed the n-th Fibonacci number (seeds 1, 1).
//
// Terms are pulled one at a time from a single cursor while an exact running
// sum is kept. All terms are positive, so the sum grows with every term and
// the first term that pushes it past the threshold ends the prefix.
func Worthless(n int) ([]sequence.Fraction, error) {
	return WorthlessContext(context.Background(), n)
}

// WorthlessContext is Worthless, stopping with ctx's error once ctx is done.
// The prefix grows quickly with n (F(90) needs billions of terms), so
// callers with a deadline should use this form.
func WorthlessContext(ctx context.Context, n int) ([]sequence.Fraction, error) {
	if err := checkN(n); err != nil {
		return nil, err
	}
	fib, err := sequence.FibonacciAt(uint64(n))
	if err != nil {
		return nil, err
	}
	threshold := new(big.Rat).SetInt(fib)

	var prefix []sequence.Fraction
	sum := new(big.Rat)
	c := sequence.NewRationalCursor()
	for i := 0; ; i++ {
		if err := checkCanceled(ctx, i); err != nil {
			return nil, err
		}
		f := c.Next()
		sum.Add(sum, f.Rat())
		if sum.Cmp(threshold) > 0 {
			return prefix, nil
		}
		prefix = append(prefix, f)
	}
}
