// Package composer combines the sequences of package sequence into three
// derived results:
//
//   - Meaningless(n): product of the "prime-ish" rationals among the first n
//     divided by the product of the others.
//   - Aimless(n): sum of consecutive prime pairs p1/p2 + p3/p4 + ...; an odd
//     trailing prime counts as p/1.
//   - Worthless(n): the longest prefix of the rationals whose sum stays at or
//     below the n-th Fibonacci number.
//
// The functions are pure and deterministic. Each rejects n < 1 with an error
// matching apperrors.ErrInvalidArgument.
package composer
