package sequence

import (
	"math/big"

	apperrors "github.com/agbru/seqcalc/internal/errors"
)

// Fraction is an immutable exact rational number kept in lowest terms.
//
// The wrapped *big.Rat is never mutated after construction; every operation
// allocates its result. The zero value is 0/1.
type Fraction struct {
	r *big.Rat
}

// NewFraction returns num/den reduced to lowest terms.
// A zero denominator is rejected with ErrInvalidArgument.
func NewFraction(num, den uint64) (Fraction, error) {
	if den == 0 {
		return Fraction{}, apperrors.NewValidationError("denominator", "must be non-zero")
	}
	r := new(big.Rat).SetFrac(new(big.Int).SetUint64(num), new(big.Int).SetUint64(den))
	return Fraction{r: r}, nil
}

// FractionFromRat copies r into a Fraction. A nil r yields zero.
func FractionFromRat(r *big.Rat) Fraction {
	if r == nil {
		return Fraction{}
	}
	return Fraction{r: new(big.Rat).Set(r)}
}

// FractionFromInt returns the integer v as v/1.
func FractionFromInt(v *big.Int) Fraction {
	return Fraction{r: new(big.Rat).SetInt(v)}
}

// fractionFromParts builds p/q for values already known to be coprime and q > 0.
func fractionFromParts(p, q uint64) Fraction {
	return Fraction{r: new(big.Rat).SetFrac(new(big.Int).SetUint64(p), new(big.Int).SetUint64(q))}
}

// Zero returns 0/1, the identity for Add.
func Zero() Fraction { return Fraction{} }

// One returns 1/1, the identity for Mul.
func One() Fraction { return Fraction{r: big.NewRat(1, 1)} }

func (f Fraction) rat() *big.Rat {
	if f.r == nil {
		return new(big.Rat)
	}
	return f.r
}

// Num returns a copy of the numerator.
func (f Fraction) Num() *big.Int { return new(big.Int).Set(f.rat().Num()) }

// Denom returns a copy of the denominator (always positive).
func (f Fraction) Denom() *big.Int { return new(big.Int).Set(f.rat().Denom()) }

// Rat returns a copy of the value as a *big.Rat.
func (f Fraction) Rat() *big.Rat { return new(big.Rat).Set(f.rat()) }

// Add returns f + g.
func (f Fraction) Add(g Fraction) Fraction {
	return Fraction{r: new(big.Rat).Add(f.rat(), g.rat())}
}

// Mul returns f * g.
func (f Fraction) Mul(g Fraction) Fraction {
	return Fraction{r: new(big.Rat).Mul(f.rat(), g.rat())}
}

// Quo returns f / g. Dividing by zero yields ErrInvalidArgument.
func (f Fraction) Quo(g Fraction) (Fraction, error) {
	if g.Sign() == 0 {
		return Fraction{}, apperrors.NewValidationError("divisor", "must be non-zero")
	}
	return Fraction{r: new(big.Rat).Quo(f.rat(), g.rat())}, nil
}

// Cmp compares f and g by numeric value and returns -1, 0 or +1.
func (f Fraction) Cmp(g Fraction) int { return f.rat().Cmp(g.rat()) }

// Equal reports whether f and g have the same numeric value.
func (f Fraction) Equal(g Fraction) bool { return f.Cmp(g) == 0 }

// Sign returns -1, 0 or +1 depending on the sign of f.
func (f Fraction) Sign() int { return f.rat().Sign() }

// IsInt reports whether the denominator is 1.
func (f Fraction) IsInt() bool { return f.rat().IsInt() }

// String formats f as "num/den"; the denominator is always written.
func (f Fraction) String() string { return f.rat().String() }

// MarshalText implements encoding.TextMarshaler using the String form.
func (f Fraction) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// SumFractions returns the exact sum of fs; the empty sum is 0.
func SumFractions(fs []Fraction) Fraction {
	acc := new(big.Rat)
	for _, f := range fs {
		acc.Add(acc, f.rat())
	}
	return Fraction{r: acc}
}

// ProductFractions returns the exact product of fs; the empty product is 1.
func ProductFractions(fs []Fraction) Fraction {
	acc := big.NewRat(1, 1)
	for _, f := range fs {
		acc.Mul(acc, f.rat())
	}
	return Fraction{r: acc}
}
