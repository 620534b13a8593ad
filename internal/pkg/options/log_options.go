package options

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// LogOptions configures the process logger.
type LogOptions struct {
	Level  string `json:"level"  mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
	// File receives the log output; empty means stderr. The terminal page
	// always needs a file since stderr belongs to the UI.
	File string `json:"file" mapstructure:"file"`
}

// NewLogOptions creates a LogOptions with default parameters.
func NewLogOptions() *LogOptions {
	return &LogOptions{
		Level:  "info",
		Format: "text",
	}
}

// Validate checks LogOptions fields.
func (o *LogOptions) Validate() []error {
	var errs []error
	if _, err := logrus.ParseLevel(o.Level); err != nil {
		errs = append(errs, fmt.Errorf("--log.level: %w", err))
	}
	if o.Format != "text" && o.Format != "json" {
		errs = append(errs, fmt.Errorf("--log.format must be 'text' or 'json', got %q", o.Format))
	}
	return errs
}

// AddFlags adds flags for the log options.
func (o *LogOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Level, "log.level", o.Level, "Minimum log level: debug, info, warn or error.")
	fs.StringVar(&o.Format, "log.format", o.Format, "Log format: 'text' or 'json'.")
	fs.StringVar(&o.File, "log.file", o.File, "Write logs to this file instead of stderr.")
}
