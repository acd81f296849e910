// Package config defines the application configuration, its defaults and
// validation, and the config file and SEQCALC_ environment overrides applied
// underneath command-line flags.
package config

import (
	"math/big"
	"time"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/logging"
	"github.com/agbru/seqcalc/internal/ui"
)

// EnvPrefix is prepended to every environment variable read by the
// application.
const EnvPrefix = "SEQCALC_"

const (
	// DefaultN is the default argument for the composed operations.
	DefaultN = 10
	// DefaultLimit is the default number of terms listed by the
	// enumeration commands.
	DefaultLimit = 10
	// DefaultTimeout bounds a single command run.
	DefaultTimeout = 1 * time.Minute
	// DefaultLogLevel keeps the console quiet unless something goes wrong.
	DefaultLogLevel = "warn"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Command is the name of the command being run (e.g., "primes").
	Command string
	// N is the argument of meaningless, aimless and worthless.
	N int
	// Limit is the number of terms produced by rationals, primes and fibonacci.
	Limit int
	// First and Second are the decimal seeds of the fibonacci command.
	First  string
	Second string
	// Timeout is the maximum duration of a command.
	Timeout time.Duration
	// Quiet prints only the values.
	Quiet bool
	// Verbose adds timing and memory details and enables debug logging.
	Verbose bool
	// JSON switches the output to an indented JSON document.
	JSON bool
	// OutputFile, when set, receives a copy of the result.
	OutputFile string
	// NoColor disables ANSI colors.
	NoColor bool
	// Theme names the color theme; empty selects the default.
	Theme string
	// LogLevel is a zerolog level name.
	LogLevel string
	// Metrics dumps the Prometheus metrics of the run to stderr on exit.
	Metrics bool
	// ConfigFile is an optional YAML, JSON or TOML file read before the
	// environment.
	ConfigFile string
}

// Default returns the configuration used when no flag or variable is set.
func Default() AppConfig {
	return AppConfig{
		N:        DefaultN,
		Limit:    DefaultLimit,
		First:    "1",
		Second:   "1",
		Timeout:  DefaultTimeout,
		LogLevel: DefaultLogLevel,
	}
}

// Validate checks the configuration and returns an apperrors.ConfigError
// describing the first problem found.
func (c AppConfig) Validate() error {
	if c.UsesN() && c.N < 1 {
		return apperrors.NewConfigError("n must be at least 1, got %d", c.N)
	}
	if c.Limit < 0 {
		return apperrors.NewConfigError("limit must be non-negative, got %d", c.Limit)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if _, _, err := c.Seeds(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}
	if c.Theme != "" {
		if _, ok := ui.LookupTheme(c.Theme); !ok {
			return apperrors.NewConfigError("unknown theme %q (want one of %v)", c.Theme, ui.ThemeNames())
		}
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	return nil
}

// UsesN reports whether Command takes the n argument.
func (c AppConfig) UsesN() bool {
	switch c.Command {
	case "meaningless", "aimless", "worthless", "all":
		return true
	}
	return false
}

// Seeds parses First and Second as arbitrary-precision integers.
func (c AppConfig) Seeds() (*big.Int, *big.Int, error) {
	first, ok := new(big.Int).SetString(c.First, 10)
	if !ok {
		return nil, nil, apperrors.NewConfigError("invalid first seed %q", c.First)
	}
	second, ok := new(big.Int).SetString(c.Second, 10)
	if !ok {
		return nil, nil, apperrors.NewConfigError("invalid second seed %q", c.Second)
	}
	return first, second, nil
}

// EffectiveLogLevel returns the log level after applying Verbose.
func (c AppConfig) EffectiveLogLevel() string {
	if c.Verbose {
		return "debug"
	}
	return c.LogLevel
}
