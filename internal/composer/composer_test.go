package composer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/sequence"
)

func TestMeaningless_KnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int
		want string
	}{
		{1, "1/1"},
		{2, "2/1"},
		{3, "1/1"},
		{4, "1/3"},
		{5, "1/1"},
		{6, "1/4"}, // 1 is not prime; counting it as prime would give 4/1
		{7, "3/8"},
		{8, "1/4"},
		{9, "1/1"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			t.Parallel()
			got, err := Meaningless(tt.n)
			if err != nil {
				t.Fatalf("Meaningless(%d): %v", tt.n, err)
			}
			if got.String() != tt.want {
				t.Errorf("Meaningless(%d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}
}

func TestAimless_KnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		n    int
		want string
	}{
		{"single prime padded over one", 1, "2/1"},
		{"one pair", 2, "2/3"},
		{"odd count pads last prime", 3, "17/3"},
		{"two pairs", 4, "29/21"},
		{"odd count with two pairs", 5, "260/21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Aimless(tt.n)
			if err != nil {
				t.Fatalf("Aimless(%d): %v", tt.n, err)
			}
			if got.String() != tt.want {
				t.Errorf("Aimless(%d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}
}

func TestWorthless_KnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int
		want string
	}{
		{1, "[1/1]"},
		{2, "[1/1]"},
		{3, "[1/1]"},
		{4, "[1/1 2/1]"},
		{5, "[1/1 2/1 1/2 1/3]"},
		{6, "[1/1 2/1 1/2 1/3 3/1]"},
		// The sum of the first eight terms is exactly F(7) = 13.
		{7, "[1/1 2/1 1/2 1/3 3/1 4/1 3/2 2/3]"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			t.Parallel()
			got, err := Worthless(tt.n)
			if err != nil {
				t.Fatalf("Worthless(%d): %v", tt.n, err)
			}
			if s := fmt.Sprint(got); s != tt.want {
				t.Errorf("Worthless(%d) = %s, want %s", tt.n, s, tt.want)
			}
		})
	}
}

func TestWorthless_PrefixBoundary(t *testing.T) {
	t.Parallel()
	for n := 1; n <= 22; n++ {
		prefix, err := Worthless(n)
		if err != nil {
			t.Fatalf("Worthless(%d): %v", n, err)
		}
		fib, _ := sequence.FibonacciAt(uint64(n))
		threshold := sequence.FractionFromInt(fib)

		rationals, _ := sequence.Rationals(len(prefix) + 1)
		for i := range prefix {
			if !prefix[i].Equal(rationals[i]) {
				t.Fatalf("Worthless(%d)[%d] = %s is not the enumeration prefix (%s)", n, i, prefix[i], rationals[i])
			}
		}
		if sum := sequence.SumFractions(prefix); sum.Cmp(threshold) > 0 {
			t.Errorf("Worthless(%d): prefix sum %s exceeds F(%d) = %s", n, sum, n, fib)
		}
		if sum := sequence.SumFractions(rationals); sum.Cmp(threshold) <= 0 {
			t.Errorf("Worthless(%d): one more term still fits (%s <= %s)", n, sum, fib)
		}
	}
}

func TestComposers_RejectNonPositive(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, -1, -100} {
		if _, err := Meaningless(n); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Errorf("Meaningless(%d) error = %v, want ErrInvalidArgument", n, err)
		}
		if _, err := Aimless(n); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Errorf("Aimless(%d) error = %v, want ErrInvalidArgument", n, err)
		}
		if got, err := Worthless(n); !errors.Is(err, apperrors.ErrInvalidArgument) || got != nil {
			t.Errorf("Worthless(%d) = %v, %v; want nil, ErrInvalidArgument", n, got, err)
		}
	}
}

func TestComposers_Deterministic(t *testing.T) {
	t.Parallel()
	for _, op := range Operations() {
		a, err := Evaluate(op, 12)
		if err != nil {
			t.Fatalf("Evaluate(%s): %v", op, err)
		}
		b, _ := Evaluate(op, 12)
		if fmt.Sprint(a.Values()) != fmt.Sprint(b.Values()) {
			t.Errorf("%s(12) differs between calls: %v vs %v", op, a.Values(), b.Values())
		}
	}
}

func TestParseOperation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Operation
		wantErr bool
	}{
		{"meaningless", OpMeaningless, false},
		{"  Aimless ", OpAimless, false},
		{"WORTHLESS", OpWorthless, false},
		{"pointless", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOperation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOperation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseOperation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	t.Run("scalar result", func(t *testing.T) {
		t.Parallel()
		res, err := Evaluate(OpAimless, 2)
		if err != nil {
			t.Fatal(err)
		}
		if res.IsSequence() || res.Summary() != "2/3" || len(res.Values()) != 1 {
			t.Errorf("unexpected result: %+v (summary %q)", res, res.Summary())
		}
	})

	t.Run("sequence result", func(t *testing.T) {
		t.Parallel()
		res, err := Evaluate(OpWorthless, 4)
		if err != nil {
			t.Fatal(err)
		}
		if !res.IsSequence() || res.Summary() != "2 terms, sum 3/1" {
			t.Errorf("unexpected result: %+v (summary %q)", res, res.Summary())
		}
	})

	t.Run("unknown operation", func(t *testing.T) {
		t.Parallel()
		if _, err := Evaluate(Operation("Aimless"), 2); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Errorf("error = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("invalid n", func(t *testing.T) {
		t.Parallel()
		if _, err := Evaluate(OpMeaningless, 0); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Errorf("error = %v, want ErrInvalidArgument", err)
		}
	})
}

func BenchmarkWorthless(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Worthless(20); err != nil {
			b.Fatal(err)
		}
	}
}

func TestComposers_StopOnCanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, op := range Operations() {
		t.Run(string(op), func(t *testing.T) {
			t.Parallel()
			if _, err := EvaluateContext(ctx, op, 5); !errors.Is(err, context.Canceled) {
				t.Errorf("EvaluateContext(%s) error = %v, want context.Canceled", op, err)
			}
		})
	}
}

func TestWorthlessContext_DeadlineEndsLongRun(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	terms, err := WorthlessContext(ctx, 90)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("WorthlessContext(90) error = %v, want context.DeadlineExceeded", err)
	}
	if terms != nil {
		t.Errorf("expected no partial prefix, got %d terms", len(terms))
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("WorthlessContext took %s to notice the deadline", elapsed)
	}
}

func TestEvaluateContext_MatchesEvaluate(t *testing.T) {
	t.Parallel()
	for _, op := range Operations() {
		want, _ := Evaluate(op, 8)
		got, err := EvaluateContext(context.Background(), op, 8)
		if err != nil {
			t.Fatalf("EvaluateContext(%s): %v", op, err)
		}
		if got.Summary() != want.Summary() {
			t.Errorf("%s: EvaluateContext = %s, Evaluate = %s", op, got.Summary(), want.Summary())
		}
	}
}
