package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/seqcalc/internal/composer"
	"github.com/agbru/seqcalc/internal/config"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/metrics"
	"github.com/agbru/seqcalc/internal/orchestration"
	"github.com/agbru/seqcalc/internal/ui"
)

func noColors(t *testing.T) {
	t.Helper()
	prev := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(prev) })
}

func evaluated(t *testing.T, op composer.Operation, n int) orchestration.CalculationResult {
	t.Helper()
	res, err := composer.Evaluate(op, n)
	if err != nil {
		t.Fatal(err)
	}
	return orchestration.CalculationResult{Name: string(op), Result: res, Duration: 2 * time.Millisecond}
}

func TestPresentComparisonTable(t *testing.T) {
	noColors(t)
	results := []orchestration.CalculationResult{
		evaluated(t, composer.OpAimless, 6),
		evaluated(t, composer.OpWorthless, 6),
		{Name: "meaningless", Err: errors.New("boom")},
	}

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	output := buf.String()

	for _, want := range []string{
		"Comparison Summary",
		"Operation     Duration   Result",
		"aimless       2ms        608/273",
		"worthless     2ms        5 terms, sum 41/6",
		"meaningless   < 1µs     Failure (boom)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("table should contain %q, got:\n%s", want, output)
		}
	}
}

func TestPresentResult(t *testing.T) {
	noColors(t)
	dir := t.TempDir()
	p := CLIResultPresenter{Output: OutputConfig{OutputFile: filepath.Join(dir, "out.txt")}}

	var buf bytes.Buffer
	p.PresentResult(evaluated(t, composer.OpMeaningless, 6), orchestration.PresentationOptions{N: 6}, &buf)

	if !strings.Contains(buf.String(), "meaningless (n = 6)") || !strings.Contains(buf.String(), "1/4") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "out.meaningless.txt")); err != nil {
		t.Errorf("per-operation file not written: %v", err)
	}
}

func TestPresentResult_Quiet(t *testing.T) {
	noColors(t)
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentResult(evaluated(t, composer.OpAimless, 2), orchestration.PresentationOptions{Quiet: true}, &buf)
	if buf.String() != "2/3\n" {
		t.Errorf("quiet output = %q", buf.String())
	}
}

func TestHandleError(t *testing.T) {
	noColors(t)
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"timeout", apperrors.TimeoutError{Operation: "aimless", Limit: time.Second}, apperrors.ExitErrorTimeout, "Timeout"},
		{"invalid", apperrors.NewValidationError("n", "must be at least 1"), apperrors.ExitErrorConfig, "Invalid argument"},
		{"generic", errors.New("boom"), apperrors.ExitErrorGeneric, "Failure"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if code := (CLIResultPresenter{}).HandleError(tt.err, time.Second, &buf); code != tt.code {
			t.Errorf("%s: code = %d, want %d", tt.name, code, tt.code)
		}
		if !strings.Contains(buf.String(), tt.msg) {
			t.Errorf("%s: output = %q, want %q", tt.name, buf.String(), tt.msg)
		}
	}
}

func TestCLIColorProvider(t *testing.T) {
	prev := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.DarkTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(prev) })

	c := CLIColorProvider{}
	if c.Red() != ui.DarkTheme.Error || c.Yellow() != ui.DarkTheme.Warning || c.Reset() != ui.DarkTheme.Reset {
		t.Error("CLIColorProvider should follow the current theme")
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemorySnapshot{HeapAlloc: 2 << 20, NumGC: 4, PauseTotalNs: 1500000}, &buf)
	for _, want := range []string{"2.00 MiB", "GC cycles:       4", "1.50ms"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("memory stats should contain %q, got:\n%s", want, buf.String())
		}
	}
}

func TestPrintExecutionConfig(t *testing.T) {
	noColors(t)
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.N = 12
	PrintExecutionConfig(cfg, &buf)
	if !strings.Contains(buf.String(), "n = 12") || !strings.Contains(buf.String(), "1m0s") {
		t.Errorf("unexpected configuration output:\n%s", buf.String())
	}
}

func TestPrintExecutionMode(t *testing.T) {
	noColors(t)
	tests := []struct {
		name string
		ops  []composer.Operation
		want string
	}{
		{"single", []composer.Operation{composer.OpAimless}, "Single evaluation of aimless"},
		{"all", composer.Operations(), "Concurrent evaluation of aimless, meaningless, worthless"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		PrintExecutionMode(tt.ops, &buf)
		if !strings.Contains(buf.String(), tt.want) {
			t.Errorf("%s: output = %q, want %q", tt.name, buf.String(), tt.want)
		}
	}
}

func TestOutputPathFor(t *testing.T) {
	t.Parallel()
	tests := []struct{ path, op, want string }{
		{"out.txt", "aimless", "out.aimless.txt"},
		{"dir/result", "worthless", "dir/result.worthless"},
		{"a.b.json", "meaningless", "a.b.meaningless.json"},
	}
	for _, tt := range tests {
		if got := outputPathFor(tt.path, tt.op); got != tt.want {
			t.Errorf("outputPathFor(%q, %q) = %q, want %q", tt.path, tt.op, got, tt.want)
		}
	}
}
