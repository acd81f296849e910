// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files or encoders.
//     Examples: [WriteResultToFile], [WriteJSON].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/seqcalc/internal/composer"
	"github.com/agbru/seqcalc/internal/format"
	"github.com/agbru/seqcalc/internal/sequence"
	"github.com/agbru/seqcalc/internal/ui"
)

// MaxDisplayedValues is the number of values shown on screen before the
// middle of a list is elided. --verbose shows everything.
const MaxDisplayedValues = 20

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints only the values, one per line.
	Quiet bool
	// Verbose shows every value untruncated.
	Verbose bool
	// JSON replaces the human-readable output with a JSON document.
	JSON bool
}

// Listing is the printable outcome of a command: the values it produced and
// how they were obtained.
type Listing struct {
	// Command is the command or operation name (e.g., "primes").
	Command string
	// Parameter names the argument: "n" or "limit".
	Parameter string
	// Argument is the value of Parameter.
	Argument int
	// Duration is the time taken to produce the values.
	Duration time.Duration
	// Values holds the decimal or "a/b" renderings.
	Values []string
	// Sum is set for worthless, whose values are summed.
	Sum string
}

// ListingFromResult converts an operation result.
func ListingFromResult(res composer.Result, d time.Duration) Listing {
	l := Listing{
		Command:   string(res.Operation),
		Parameter: "n",
		Argument:  res.N,
		Duration:  d,
		Values:    fractionStrings(res.Values()),
	}
	if res.IsSequence() {
		l.Sum = sequence.SumFractions(res.Terms).String()
	}
	return l
}

// ListingFromFractions converts an enumerated prefix of rationals.
func ListingFromFractions(command string, limit int, fs []sequence.Fraction, d time.Duration) Listing {
	return Listing{Command: command, Parameter: "limit", Argument: limit, Duration: d, Values: fractionStrings(fs)}
}

// ListingFromPrimes converts an enumerated prefix of primes.
func ListingFromPrimes(command string, limit int, ps []uint64, d time.Duration) Listing {
	values := make([]string, len(ps))
	for i, p := range ps {
		values[i] = fmt.Sprint(p)
	}
	return Listing{Command: command, Parameter: "limit", Argument: limit, Duration: d, Values: values}
}

// ListingFromInts converts an enumerated prefix of big integers.
func ListingFromInts(command string, limit int, xs []*big.Int, d time.Duration) Listing {
	values := make([]string, len(xs))
	for i, x := range xs {
		values[i] = x.String()
	}
	return Listing{Command: command, Parameter: "limit", Argument: limit, Duration: d, Values: values}
}

func fractionStrings(fs []sequence.Fraction) []string {
	values := make([]string, len(fs))
	for i, f := range fs {
		values[i] = f.String()
	}
	return values
}

// WriteResultToFile writes a listing to config.OutputFile: a commented
// header followed by one value per line. It does nothing when no file is
// configured.
//
// Parameters:
//   - l: The listing to save.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(l Listing, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Sequence Calculation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Operation: %s\n", l.Command)
	fmt.Fprintf(file, "# %s: %d\n", l.Parameter, l.Argument)
	fmt.Fprintf(file, "# Duration: %s\n", l.Duration)
	fmt.Fprintf(file, "# Terms: %d\n", len(l.Values))
	if l.Sum != "" {
		fmt.Fprintf(file, "# Sum: %s\n", l.Sum)
	}
	fmt.Fprintf(file, "\n")

	for _, v := range l.Values {
		if _, err := fmt.Fprintln(file, v); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}
	return file.Close()
}

// jsonListing is the JSON shape of a Listing.
type jsonListing struct {
	Operation  string   `json:"operation"`
	N          *int     `json:"n,omitempty"`
	Limit      *int     `json:"limit,omitempty"`
	DurationNs int64    `json:"duration_ns"`
	Values     []string `json:"values"`
	Sum        string   `json:"sum,omitempty"`
}

// WriteJSON writes l as an indented JSON document.
func WriteJSON(out io.Writer, l Listing) error {
	doc := jsonListing{
		Operation:  l.Command,
		DurationNs: l.Duration.Nanoseconds(),
		Values:     l.Values,
		Sum:        l.Sum,
	}
	if doc.Values == nil {
		doc.Values = []string{}
	}
	arg := l.Argument
	if l.Parameter == "n" {
		doc.N = &arg
	} else {
		doc.Limit = &arg
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// FormatQuietResult formats a listing for quiet mode output: one value per
// line, suitable for scripting.
func FormatQuietResult(l Listing) string {
	return strings.Join(l.Values, "\n")
}

// DisplayQuietResult outputs a listing in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, l Listing) {
	if len(l.Values) == 0 {
		return
	}
	fmt.Fprintln(out, FormatQuietResult(l))
}

// DisplayResult prints a listing for humans: a title, the values and the
// elapsed time. Long values and long lists are shortened unless verbose.
func DisplayResult(l Listing, verbose bool, out io.Writer) {
	styles := ui.CurrentStyles()
	fmt.Fprintf(out, "\n%s\n", styles.Title.Render(fmt.Sprintf("%s (%s = %d)", l.Command, l.Parameter, l.Argument)))

	values := l.Values
	limit := MaxDisplayedValues
	if verbose {
		limit = 0
	} else {
		values = make([]string, len(l.Values))
		for i, v := range l.Values {
			values[i] = format.TruncateValue(v)
		}
	}
	if len(values) == 0 {
		fmt.Fprintf(out, "  %s\n", styles.Label.Render("(no terms)"))
	} else {
		fmt.Fprintf(out, "  %s%s%s\n", ui.ColorGreen(), format.JoinValues(values, limit), ui.ColorReset())
	}
	if l.Sum != "" {
		fmt.Fprintf(out, "  %s %s\n", styles.Label.Render("Sum:"), l.Sum)
	}
	fmt.Fprintf(out, "  %s %s\n", styles.Label.Render("Time:"), format.FormatExecutionDuration(l.Duration))
	if !verbose && len(l.Values) > MaxDisplayedValues {
		fmt.Fprintf(out, "  %sTip: use --verbose or --output to see every value.%s\n", ui.ColorGrey(), ui.ColorReset())
	}
}

// DisplayResultWithConfig displays a listing with the given output
// configuration and saves it to a file if requested.
//
// Parameters:
//   - out: The output writer.
//   - l: The listing.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if JSON encoding or file output fails.
func DisplayResultWithConfig(out io.Writer, l Listing, config OutputConfig) error {
	switch {
	case config.JSON:
		if err := WriteJSON(out, l); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case config.Quiet:
		DisplayQuietResult(out, l)
	default:
		DisplayResult(l, config.Verbose, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(l, config); err != nil {
			return err
		}
		if !config.Quiet && !config.JSON {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
