package composer

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/seqcalc/internal/sequence"
)

// TestAimless_PropertyBased checks Aimless against a direct construction
// from the prime list: every two extra primes add exactly one fraction.
func TestAimless_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Aimless(n+2) - Aimless(n) is the next pair for even n", prop.ForAll(
		func(k int) bool {
			n := 2 * k
			base := sequence.Zero()
			if n > 0 {
				var err error
				if base, err = Aimless(n); err != nil {
					return false
				}
			}
			next, err := Aimless(n + 2)
			if err != nil {
				return false
			}
			primes, _ := sequence.Primes(n + 2)
			pair := new(big.Rat).SetFrac(
				new(big.Int).SetUint64(primes[n]),
				new(big.Int).SetUint64(primes[n+1]))
			diff := new(big.Rat).Sub(next.Rat(), base.Rat())
			return diff.Cmp(pair) == 0
		},
		gen.IntRange(0, 100),
	))

	properties.Property("odd n pads the last prime over one", prop.ForAll(
		func(k int) bool {
			n := 2*k + 1
			odd, err := Aimless(n)
			if err != nil {
				return false
			}
			even := sequence.Zero()
			if n > 1 {
				if even, err = Aimless(n - 1); err != nil {
					return false
				}
			}
			primes, _ := sequence.Primes(n)
			last := new(big.Rat).SetInt(new(big.Int).SetUint64(primes[n-1]))
			return new(big.Rat).Sub(odd.Rat(), even.Rat()).Cmp(last) == 0
		},
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

// TestMeaningless_PropertyBased checks that the result is positive and equal
// to a recomputation from the partitioned enumeration prefix.
func TestMeaningless_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("matches partition of the prefix", prop.ForAll(
		func(n int) bool {
			got, err := Meaningless(n)
			if err != nil || got.Sign() <= 0 {
				return false
			}
			rationals, _ := sequence.Rationals(n)
			var a, b []sequence.Fraction
			for _, f := range rationals {
				if sequence.IsPrime(f.Num().Uint64()) || sequence.IsPrime(f.Denom().Uint64()) {
					a = append(a, f)
				} else {
					b = append(b, f)
				}
			}
			want, err := sequence.ProductFractions(a).Quo(sequence.ProductFractions(b))
			return err == nil && want.Equal(got)
		},
		gen.IntRange(1, 500),
	))

	properties.TestingRun(t)
}

// TestWorthless_PropertyBased verifies the defining inequality
//
//	sum(first i) <= F(n) < sum(first i+1)
func TestWorthless_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("prefix is maximal under F(n)", prop.ForAll(
		func(n int) bool {
			prefix, err := Worthless(n)
			if err != nil || len(prefix) == 0 {
				return false
			}
			fib, _ := sequence.FibonacciAt(uint64(n))
			threshold := sequence.FractionFromInt(fib)
			longer, _ := sequence.Rationals(len(prefix) + 1)
			return sequence.SumFractions(prefix).Cmp(threshold) <= 0 &&
				sequence.SumFractions(longer).Cmp(threshold) > 0
		},
		gen.IntRange(1, 18),
	))

	properties.TestingRun(t)
}
