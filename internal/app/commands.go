package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agbru/seqcalc/internal/cli"
	"github.com/agbru/seqcalc/internal/composer"
	"github.com/agbru/seqcalc/internal/config"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/metrics"
	"github.com/agbru/seqcalc/internal/orchestration"
	"github.com/agbru/seqcalc/internal/sequence"
	"github.com/agbru/seqcalc/internal/ui"
)

// rootCommand builds the command tree bound to a.Config.
func (a *Application) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "seqcalc",
		Short: "Exact arithmetic over the rationals, the primes and the Fibonacci numbers",
		Long: `seqcalc enumerates the positive rationals (diagonal order, reduced
fractions only), the primes and the Fibonacci numbers, and evaluates three
operations composed from them with exact fractions:

  meaningless  product ratio over the first n rationals
  aimless      sum of prime-pair fractions over the first n primes
  worthless    longest rational prefix whose sum stays <= F(n)`,
		Example: `  seqcalc rationals -l 5
  seqcalc aimless -n 10
  seqcalc all -n 12 --json`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.finish(cmd)
		},
	}
	root.SetVersionTemplate("seqcalc {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.Config.Quiet, "quiet", "q", false, "print only the values, one per line")
	pf.BoolVarP(&a.Config.Verbose, "verbose", "v", false, "print every value in full, memory statistics and debug logs")
	pf.BoolVar(&a.Config.JSON, "json", false, "print an indented JSON document")
	pf.StringVarP(&a.Config.OutputFile, "output", "o", "", "also write the values to `file`")
	pf.DurationVar(&a.Config.Timeout, "timeout", config.DefaultTimeout, "maximum duration of the command")
	pf.BoolVar(&a.Config.NoColor, "no-color", false, "disable colors (NO_COLOR is honored too)")
	pf.StringVar(&a.Config.Theme, "theme", "", fmt.Sprintf("color theme: %s (default %s)", strings.Join(ui.ThemeNames(), ", "), ui.DefaultThemeName))
	pf.StringVar(&a.Config.LogLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn, error, disabled")
	pf.BoolVar(&a.Config.Metrics, "metrics", false, "dump Prometheus metrics of the run to stderr")
	pf.StringVar(&a.Config.ConfigFile, "config", "", "read settings from a YAML, JSON or TOML `file`")

	root.AddCommand(
		a.rationalsCommand(),
		a.primesCommand(),
		a.fibonacciCommand(),
	)
	for _, op := range composer.Operations() {
		root.AddCommand(a.operationCommand(op))
	}
	root.AddCommand(a.allCommand(), a.replCommand(), a.versionCommand())
	return root
}

func (a *Application) addLimitFlag(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&a.Config.Limit, "limit", "l", config.DefaultLimit, "number of terms")
}

func (a *Application) addNFlag(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&a.Config.N, "n", "n", config.DefaultN, "argument of the operation (>= 1)")
}

func (a *Application) rationalsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rationals",
		Short: "List the first terms of the diagonal enumeration of the positive rationals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.runEnumeration(cmd, func(ctx context.Context, limit int) (cli.Listing, error) {
				c := sequence.NewRationalCursor()
				start := time.Now()
				fs, err := collect(ctx, limit, c.Next)
				return cli.ListingFromFractions("rationals", limit, fs, time.Since(start)), err
			})
			return nil
		},
	}
	a.addLimitFlag(cmd)
	return cmd
}

func (a *Application) primesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "primes",
		Short: "List the first primes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.runEnumeration(cmd, func(ctx context.Context, limit int) (cli.Listing, error) {
				c := sequence.NewPrimeCursor()
				start := time.Now()
				ps, err := collect(ctx, limit, c.Next)
				return cli.ListingFromPrimes("primes", limit, ps, time.Since(start)), err
			})
			return nil
		},
	}
	a.addLimitFlag(cmd)
	return cmd
}

func (a *Application) fibonacciCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fibonacci",
		Aliases: []string{"fib"},
		Short:   "List the first Fibonacci terms, optionally from custom seeds",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			first, second, err := a.Config.Seeds()
			if err != nil {
				return err
			}
			a.runEnumeration(cmd, func(ctx context.Context, limit int) (cli.Listing, error) {
				c := sequence.NewFibonacciCursor(first, second)
				start := time.Now()
				xs, err := collect(ctx, limit, c.Next)
				return cli.ListingFromInts("fibonacci", limit, xs, time.Since(start)), err
			})
			return nil
		},
	}
	a.addLimitFlag(cmd)
	cmd.Flags().StringVar(&a.Config.First, "first", "1", "first seed (decimal integer)")
	cmd.Flags().StringVar(&a.Config.Second, "second", "1", "second seed (decimal integer)")
	return cmd
}

// runEnumeration runs produce under the configured timeout, records it and
// prints the listing.
func (a *Application) runEnumeration(cmd *cobra.Command, produce func(ctx context.Context, limit int) (cli.Listing, error)) {
	ctx, cancel := context.WithTimeout(cmd.Context(), a.Config.Timeout)
	defer cancel()
	out := cmd.OutOrStdout()

	start := time.Now()
	listing, err := produce(ctx, a.Config.Limit)
	elapsed := time.Since(start)
	if err != nil {
		status := metrics.StatusError
		if apperrors.IsContextError(err) {
			a.logger.Debug("enumeration stopped", logging.Int("limit", a.Config.Limit), logging.Err(err))
			if errors.Is(err, context.DeadlineExceeded) {
				status = metrics.StatusTimeout
				err = apperrors.TimeoutError{Operation: cmd.Name(), Limit: a.Config.Timeout}
			}
		}
		a.recorder.ObserveEvaluation(cmd.Name(), status, elapsed, 0)
		a.fail(err, elapsed, out)
		return
	}
	a.recorder.ObserveEvaluation(cmd.Name(), metrics.StatusSuccess, elapsed, len(listing.Values))
	a.display(listing, out)
}

func (a *Application) display(l cli.Listing, out io.Writer) {
	if err := cli.DisplayResultWithConfig(out, l, a.outputConfig()); err != nil {
		a.fail(err, 0, out)
	}
}

func (a *Application) operationCommand(op composer.Operation) *cobra.Command {
	short := map[composer.Operation]string{
		composer.OpMeaningless: "Ratio of products over the first n rationals, split by primality",
		composer.OpAimless:     "Sum of the fractions p1/p2 + p3/p4 + ... over the first n primes",
		composer.OpWorthless:   "Longest prefix of the rationals whose sum does not exceed F(n)",
	}
	cmd := &cobra.Command{
		Use:   string(op),
		Short: short[op],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.Config.Timeout)
			defer cancel()
			out := cmd.OutOrStdout()

			res := a.executor.ExecuteOperations(ctx, []composer.Operation{op}, a.Config.N,
				orchestration.NullProgressReporter{}, out)[0]
			if res.Err != nil {
				a.fail(res.Err, res.Duration, out)
				return nil
			}
			a.display(cli.ListingFromResult(res.Result, res.Duration), out)
			return nil
		},
	}
	a.addNFlag(cmd)
	return cmd
}

func (a *Application) allCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Evaluate meaningless, aimless and worthless concurrently and compare them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.Config.Timeout)
			defer cancel()
			out := cmd.OutOrStdout()

			ops, err := orchestration.SelectOperations("all")
			if err != nil {
				return err
			}
			quiet := a.Config.Quiet || a.Config.JSON

			var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
			if quiet {
				reporter = orchestration.NullProgressReporter{}
			} else {
				cli.PrintExecutionConfig(a.Config, out)
				cli.PrintExecutionMode(ops, out)
			}

			results := a.executor.ExecuteOperations(ctx, ops, a.Config.N, reporter, cmd.ErrOrStderr())
			presenter := cli.CLIResultPresenter{Output: a.outputConfig()}
			a.exitCode = orchestration.AnalyzeComparisonResults(results, orchestration.PresentationOptions{
				N:       a.Config.N,
				Verbose: a.Config.Verbose,
				Quiet:   quiet,
			}, presenter, presenter, out)
			return nil
		},
	}
	a.addNFlag(cmd)
	return cmd
}

func (a *Application) replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := cli.NewREPL(a.executor, cli.REPLConfig{Timeout: a.Config.Timeout, Verbose: a.Config.Verbose})
			r.SetInput(cmd.InOrStdin())
			r.SetOutput(cmd.OutOrStdout())
			r.Start()
			return nil
		},
	}
}

func (a *Application) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			PrintVersion(cmd.OutOrStdout())
		},
	}
}

// cancelCheckInterval is the number of terms pulled between two context
// checks.
const cancelCheckInterval = 256

// collect pulls limit terms from next, stopping early with ctx.Err() once
// ctx is done.
func collect[T any](ctx context.Context, limit int, next func() T) ([]T, error) {
	terms := make([]T, 0, limit)
	for i := 0; i < limit; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, apperrors.WrapError(err, "after %d terms", i)
			}
		}
		terms = append(terms, next())
	}
	return terms, nil
}
