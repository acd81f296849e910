// Package cli provides the presentation layer of seqcalc: result and table
// presenters, progress display, file and JSON output, and the interactive
// REPL.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/seqcalc/internal/composer"
	"github.com/agbru/seqcalc/internal/orchestration"
	"github.com/agbru/seqcalc/internal/sequence"
	"github.com/agbru/seqcalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout is the maximum duration for each composed operation.
	Timeout time.Duration
	// Verbose displays every value untruncated.
	Verbose bool
}

// REPL represents an interactive session over the sequences and the
// composed operations.
type REPL struct {
	config   REPLConfig
	executor *orchestration.Executor
	in       io.Reader
	out      io.Writer
}

// NewREPL creates a new REPL instance. Composed operations run through
// executor so that they are timed, logged and recorded like the one-shot
// commands.
func NewREPL(executor *orchestration.Executor, config REPLConfig) *REPL {
	if executor == nil {
		executor = orchestration.NewExecutor()
	}
	return &REPL{
		config:   config,
		executor: executor,
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It reads commands until the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"seq> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sSequence Calculator - Interactive Mode%s               %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	y, rs := ui.ColorYellow(), ui.ColorReset()
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), rs)
	fmt.Fprintf(r.out, "  %srationals <limit>%s       - First terms of the diagonal enumeration of the rationals\n", y, rs)
	fmt.Fprintf(r.out, "  %sprimes <limit>%s          - First primes\n", y, rs)
	fmt.Fprintf(r.out, "  %sfib <limit> [a b]%s       - First Fibonacci terms, optionally seeded with a, b\n", y, rs)
	fmt.Fprintf(r.out, "  %sisprime <k>%s             - Primality test\n", y, rs)
	fmt.Fprintf(r.out, "  %smeaningless <n>%s         - Product ratio over the first n rationals\n", y, rs)
	fmt.Fprintf(r.out, "  %saimless <n>%s             - Sum of prime-pair fractions over the first n primes\n", y, rs)
	fmt.Fprintf(r.out, "  %sworthless <n>%s           - Longest rational prefix whose sum stays <= F(n)\n", y, rs)
	fmt.Fprintf(r.out, "  %sall <n>%s                 - Evaluate the three operations concurrently\n", y, rs)
	fmt.Fprintf(r.out, "  %sverbose%s                 - Toggle full value display\n", y, rs)
	fmt.Fprintf(r.out, "  %sstatus%s                  - Display current configuration\n", y, rs)
	fmt.Fprintf(r.out, "  %shelp%s                    - Display this help\n", y, rs)
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s             - Exit interactive mode\n", y, rs, y, rs)
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "rationals", "r":
		r.cmdRationals(args)
	case "primes", "p":
		r.cmdPrimes(args)
	case "fib", "fibonacci", "f":
		r.cmdFibonacci(args)
	case "isprime":
		r.cmdIsPrime(args)
	case "all":
		r.cmdAll(args)
	case "verbose":
		r.config.Verbose = !r.config.Verbose
		fmt.Fprintf(r.out, "Full value display: %s%v%s\n", ui.ColorGreen(), r.config.Verbose, ui.ColorReset())
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if op, err := composer.ParseOperation(cmd); err == nil {
			r.cmdOperation(op, args)
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}

	return true
}

// intArg parses the single integer argument of a command.
func (r *REPL) intArg(usage string, args []string) (int, bool) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s%s\n", ui.ColorRed(), usage, ui.ColorReset())
		return 0, false
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return 0, false
	}
	return v, true
}

func (r *REPL) printError(err error) {
	fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
}

func (r *REPL) cmdRationals(args []string) {
	limit, ok := r.intArg("rationals <limit>", args)
	if !ok {
		return
	}
	start := time.Now()
	fs, err := sequence.Rationals(limit)
	if err != nil {
		r.printError(err)
		return
	}
	DisplayResult(ListingFromFractions("rationals", limit, fs, time.Since(start)), r.config.Verbose, r.out)
}

func (r *REPL) cmdPrimes(args []string) {
	limit, ok := r.intArg("primes <limit>", args)
	if !ok {
		return
	}
	start := time.Now()
	ps, err := sequence.Primes(limit)
	if err != nil {
		r.printError(err)
		return
	}
	DisplayResult(ListingFromPrimes("primes", limit, ps, time.Since(start)), r.config.Verbose, r.out)
}

func (r *REPL) cmdFibonacci(args []string) {
	limit, ok := r.intArg("fib <limit> [a b]", args)
	if !ok {
		return
	}
	var opts []sequence.FibonacciOption
	switch len(args) {
	case 1:
	case 3:
		first, ok1 := new(big.Int).SetString(args[1], 10)
		second, ok2 := new(big.Int).SetString(args[2], 10)
		if !ok1 || !ok2 {
			fmt.Fprintf(r.out, "%sInvalid seeds: %s %s%s\n", ui.ColorRed(), args[1], args[2], ui.ColorReset())
			return
		}
		opts = append(opts, sequence.WithSeeds(first, second))
	default:
		fmt.Fprintf(r.out, "%sUsage: fib <limit> [a b]%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	start := time.Now()
	xs, err := sequence.Fibonacci(limit, opts...)
	if err != nil {
		r.printError(err)
		return
	}
	DisplayResult(ListingFromInts("fibonacci", limit, xs, time.Since(start)), r.config.Verbose, r.out)
}

func (r *REPL) cmdIsPrime(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: isprime <k>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	k, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	verdict := ui.ColorRed() + "not prime" + ui.ColorReset()
	if sequence.IsPrime(k) {
		verdict = ui.ColorGreen() + "prime" + ui.ColorReset()
	}
	fmt.Fprintf(r.out, "%d is %s\n", k, verdict)
}

// cmdOperation evaluates a single composed operation under the timeout.
func (r *REPL) cmdOperation(op composer.Operation, args []string) {
	n, ok := r.intArg(string(op)+" <n>", args)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	res := r.executor.ExecuteOperations(ctx, []composer.Operation{op}, n, orchestration.NullProgressReporter{}, r.out)[0]
	if res.Err != nil {
		r.printError(res.Err)
		return
	}
	DisplayResult(ListingFromResult(res.Result, res.Duration), r.config.Verbose, r.out)
}

// cmdAll evaluates every composed operation concurrently and prints the
// comparison table.
func (r *REPL) cmdAll(args []string) {
	n, ok := r.intArg("all <n>", args)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	results := r.executor.ExecuteOperations(ctx, composer.Operations(), n, orchestration.NullProgressReporter{}, r.out)
	CLIResultPresenter{}.PresentComparisonTable(results, r.out)
	fmt.Fprintln(r.out)
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Full values:    %s%v%s\n", ui.ColorCyan(), r.config.Verbose, ui.ColorReset())
	fmt.Fprintln(r.out)
}
