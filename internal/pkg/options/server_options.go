package options

import (
	"fmt"
	"net"

	"github.com/spf13/pflag"
)

// ServerOptions configures the web page server.
type ServerOptions struct {
	BindAddress string `json:"bind-address" mapstructure:"bind-address"`
	Mode        string `json:"mode"         mapstructure:"mode"`
	// Profiling mounts the pprof handlers under /debug/pprof.
	Profiling bool `json:"profiling" mapstructure:"profiling"`
}

// NewServerOptions creates a ServerOptions with default parameters.
func NewServerOptions() *ServerOptions {
	return &ServerOptions{
		BindAddress: "127.0.0.1:8010",
		Mode:        "release",
		Profiling:   false,
	}
}

// Validate checks ServerOptions fields.
func (o *ServerOptions) Validate() []error {
	var errs []error
	if _, _, err := net.SplitHostPort(o.BindAddress); err != nil {
		errs = append(errs, fmt.Errorf("--server.bind-address %q: %w", o.BindAddress, err))
	}
	switch o.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("--server.mode must be one of debug, release or test, got %q", o.Mode))
	}
	return errs
}

// AddFlags adds flags for the server options.
func (o *ServerOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.BindAddress, "server.bind-address", o.BindAddress, "Address (host:port) the web page listens on.")
	fs.StringVar(&o.Mode, "server.mode", o.Mode, "Gin mode: debug, release or test.")
	fs.BoolVar(&o.Profiling, "server.profiling", o.Profiling, "Enable profiling via web interface host:port/debug/pprof/.")
}
