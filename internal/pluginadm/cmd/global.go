package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kiosk404/pluginadm/internal/pluginadm/options"
	"github.com/kiosk404/pluginadm/pkg/logger"
)

var globalConfigFile string

func addGlobalFlags(flags *pflag.FlagSet, opts *options.Options) {
	flags.StringVarP(&globalConfigFile, options.FlagConfig, "c", "",
		"Read configuration from this file (default: ./pluginadm.yaml or ~/.pluginadm/pluginadm.yaml)")

	fss := opts.Flags()
	fss.AddTo(flags)
}

// GetConfigFile returns the configuration file given on the command line.
func GetConfigFile() string {
	return globalConfigFile
}

// completeOptions merges config file and environment into opts, validates the
// result and applies the log settings.
func completeOptions(v *viper.Viper, opts *options.Options) error {
	if err := options.LoadConfig(v, globalConfigFile, "pluginadm"); err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}
	if err := opts.Load(v); err != nil {
		return err
	}
	if err := opts.Complete(); err != nil {
		return err
	}
	if errs := opts.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %v", errs)
	}

	if err := logger.InitLog(opts.LogOptions.File); err != nil {
		return err
	}
	if err := logger.SetLevel(opts.LogOptions.Level); err != nil {
		return err
	}
	if err := logger.SetFormat(opts.LogOptions.Format); err != nil {
		return err
	}
	logger.Debug("[Config] options: %s", opts.String())
	return nil
}
