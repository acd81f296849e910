package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/agbru/seqcalc/internal/composer"
	"github.com/agbru/seqcalc/internal/config"
	"github.com/agbru/seqcalc/internal/ui"
)

// PrintExecutionConfig displays the parameters of a composed-operation run.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating with %sn = %d%s and a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.N, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays whether one operation or a concurrent
// comparison is about to run.
//
// Parameters:
//   - ops: The operations that will be evaluated.
//   - out: The writer for standard output.
func PrintExecutionMode(ops []composer.Operation, out io.Writer) {
	var modeDesc string
	if len(ops) > 1 {
		names := make([]string, len(ops))
		for i, op := range ops {
			names[i] = string(op)
		}
		modeDesc = fmt.Sprintf("Concurrent evaluation of %s%s%s",
			ui.ColorGreen(), strings.Join(names, ", "), ui.ColorReset())
	} else {
		modeDesc = fmt.Sprintf("Single evaluation of %s%s%s",
			ui.ColorGreen(), ops[0], ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

// outputPathFor derives a per-operation file name when several results
// share one --output path: "out.txt" becomes "out.aimless.txt".
func outputPathFor(path, operation string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + operation + ext
}
