// Package app wires configuration, logging, metrics and the command tree of
// seqcalc together and maps every outcome to a process exit code.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agbru/seqcalc/internal/cli"
	"github.com/agbru/seqcalc/internal/config"
	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/metrics"
	"github.com/agbru/seqcalc/internal/orchestration"
	"github.com/agbru/seqcalc/internal/ui"
)

// Application represents the seqcalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	In        io.Reader

	logger   *logging.ZerologAdapter
	memory   *metrics.MemoryCollector
	recorder *metrics.Recorder
	executor *orchestration.Executor
	runID    string
	exitCode int
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader used by the repl command.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// WithRunID fixes the run identifier attached to every log entry.
func WithRunID(id string) AppOption {
	return func(a *Application) { a.runID = id }
}

// New creates an Application with the default configuration. Flags and
// SEQCALC_ variables are applied when Run parses the command line.
func New(errWriter io.Writer, opts ...AppOption) *Application {
	a := &Application{
		Config:    config.Default(),
		ErrWriter: errWriter,
		In:        os.Stdin,
		memory:    metrics.NewMemoryCollector(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.runID == "" {
		a.runID = uuid.NewString()
	}
	return a
}

// Run parses args (without the program name), executes the selected command
// and returns the exit code. SIGINT and SIGTERM cancel the run.
func (a *Application) Run(ctx context.Context, args []string, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(a.ErrWriter)
	root.SetIn(a.In)

	a.exitCode = apperrors.ExitSuccess
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		if a.logger != nil {
			a.logger.Error("command failed", err)
		}
		return apperrors.ExitCodeFor(err)
	}
	return a.exitCode
}

// setup applies environment overrides, validates the configuration and
// builds the run's logger, metrics recorder and executor. It runs before
// every command.
func (a *Application) setup(cmd *cobra.Command) error {
	a.Config.Command = cmd.Name()
	if err := config.ApplyConfigFile(&a.Config, cmd.Flags()); err != nil {
		return err
	}
	config.ApplyEnvOverrides(&a.Config, cmd.Flags())
	if err := a.Config.Validate(); err != nil {
		return err
	}

	if err := ui.SelectTheme(a.Config.Theme, a.Config.NoColor); err != nil {
		return apperrors.NewConfigError("%v", err)
	}

	level, _ := logging.ParseLevel(a.Config.EffectiveLogLevel())
	zl := zerolog.New(zerolog.ConsoleWriter{
		Out:        a.ErrWriter,
		NoColor:    ui.GetCurrentTheme().Name == "none",
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Logger()
	a.logger = logging.NewZerologAdapter(zl).With(
		logging.String("run_id", a.runID),
		logging.String("command", a.Config.Command),
	)

	a.recorder = metrics.NewRecorder(a.memory)
	a.executor = orchestration.NewExecutor(
		orchestration.WithRecorder(a.recorder),
		orchestration.WithLogger(a.logger),
	)
	a.logger.Debug("configuration loaded",
		logging.Int("n", a.Config.N),
		logging.Int("limit", a.Config.Limit),
		logging.Duration("timeout", a.Config.Timeout),
		logging.String("config_file", a.Config.ConfigFile))
	return nil
}

// finish prints the optional memory report and metrics dump.
func (a *Application) finish(cmd *cobra.Command) {
	if a.recorder == nil {
		return
	}
	if a.Config.Verbose && !a.Config.Quiet && !a.Config.JSON {
		cli.DisplayMemoryStats(a.memory.Snapshot(), cmd.OutOrStdout())
	}
	if a.Config.Metrics {
		if err := a.recorder.WriteText(a.ErrWriter); err != nil {
			a.logger.Error("writing metrics", err)
		}
	}
	a.logger.Debug("run finished", logging.Int("exit_code", a.exitCode))
}

// outputConfig derives the CLI output options from the configuration.
func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		JSON:       a.Config.JSON,
	}
}

// fail reports err on out and records the matching exit code.
func (a *Application) fail(err error, duration time.Duration, out io.Writer) {
	a.logger.Debug("command failed", logging.Err(err))
	a.exitCode = cli.CLIResultPresenter{}.HandleError(err, duration, out)
}
