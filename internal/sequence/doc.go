// Package sequence produces the lazily evaluated number sequences the rest of
// the module composes: positive rationals in lowest terms in diagonal order,
// primes in ascending order, and two-term recurrences seeded like Fibonacci.
//
// Every infinite sequence is exposed as a pull cursor (a small struct with a
// Next method) that holds only the state needed for the next term. Cursors
// are cheap to create, deterministic, and never share state, so a fresh
// cursor always replays the same sequence. Each cursor also offers an All
// method returning an iter.Seq for use with range.
//
// All arithmetic is exact. Fractions are backed by math/big and Fibonacci
// terms by *big.Int, so no result depends on a fixed-width integer type.
package sequence
