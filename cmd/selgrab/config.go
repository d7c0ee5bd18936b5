package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/selgrab/selgrab"
	"github.com/selgrab/selgrab/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and SELGRAB_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → SELGRAB_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("selgrab")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/selgrab/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(fmt.Sprintf("%s/.config/selgrab", home))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("SELGRAB")
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command. The default
// level is warn: grab output goes to stdout and must stay pipe-clean.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "warn", "log level: debug|info|warn|error")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// setupLogging reads logging flags from viper and configures slog.
func setupLogging(v *viper.Viper) {
	logging.Setup(logging.ParseFormat(v.GetString("log-format")), logging.ParseLevel(v.GetString("log-level")))
}

// applyOptions forwards capture tuning flags into the engine.
func applyOptions(v *viper.Viper) {
	opts := selgrab.Options{
		Timeout:       v.GetDuration("timeout"),
		ContextBefore: v.GetInt("before"),
		ContextAfter:  v.GetInt("after"),
	}
	if roles := v.GetStringSlice("web-roles"); len(roles) > 0 {
		opts.WebContentRoles = roles
	}
	selgrab.SetOptions(opts)
}
