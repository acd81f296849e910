package config

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	apperrors "github.com/agbru/seqcalc/internal/errors"
)

// ConfigFileEnv names the variable consulted when --config is not given.
const ConfigFileEnv = EnvPrefix + "CONFIG"

// ApplyConfigFile reads cfg.ConfigFile (or $SEQCALC_CONFIG) and applies its
// keys to every setting whose flag was not set explicitly. Keys are the
// lower-case environment names without prefix: n, limit, timeout, output,
// log_level, theme, first, second, quiet, verbose, json, no_color, metrics.
//
// Call it before ApplyEnvOverrides so that the environment wins over the
// file. Without a configured path it does nothing.
func ApplyConfigFile(config *AppConfig, fs *pflag.FlagSet) error {
	path := config.ConfigFile
	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return apperrors.NewConfigError("reading config file %s: %v", path, err)
	}

	for _, o := range envOverrides {
		key := strings.ToLower(o.envKey)
		if !v.IsSet(key) || isFlagSetAny(fs, o.flags...) {
			continue
		}
		o.apply(config, v.GetString(key))
	}
	config.ConfigFile = path
	return nil
}
