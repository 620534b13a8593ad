package serve

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiosk404/pluginadm/internal/pluginadm/cmd/util"
	"github.com/kiosk404/pluginadm/internal/pluginadm/options"
	"github.com/kiosk404/pluginadm/internal/pluginadm/web"
	"github.com/kiosk404/pluginadm/pkg/cli/genericclioptions"
	"github.com/kiosk404/pluginadm/pkg/http/shutdown"
	"github.com/kiosk404/pluginadm/pkg/http/shutdown/posixsignal"
	"github.com/kiosk404/pluginadm/pkg/logger"
	"github.com/kiosk404/pluginadm/pkg/utils/templates"
)

var serveExample = templates.Examples(`
		# Serve plugin pages on the default address
		pluginadm serve

		# Listen on all interfaces with pprof enabled
		pluginadm serve --server.bind-address 0.0.0.0:8010 --server.profiling`)

// ServeOptions is an options struct to support 'serve' sub command.
type ServeOptions struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	factory util.Factory
	genericclioptions.IOStreams
}

// NewServeOptions returns an initialized ServeOptions instance.
func NewServeOptions(f util.Factory, ioStreams genericclioptions.IOStreams) *ServeOptions {
	return &ServeOptions{
		RequestTimeout:  time.Minute,
		ShutdownTimeout: 10 * time.Second,
		factory:         f,
		IOStreams:       ioStreams,
	}
}

// NewCmdServe returns new initialized instance of 'serve' sub command.
func NewCmdServe(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewServeOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "serve",
		DisableFlagsInUseLine: true,
		Short:                 "Serve plugin pages over HTTP",
		Long: templates.LongDesc(`
		Serve plugin pages over HTTP.

		Every plugin has a page at /plugins/NAME with its readme, an install or
		uninstall button and an options form. The server stops gracefully on SIGINT
		or SIGTERM. Changes to log.level in the configuration file apply without a
		restart.`),
		Example: serveExample,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Validate())
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().DurationVar(&o.RequestTimeout, "request-timeout", o.RequestTimeout, "Upper bound of the work done for one request.")
	cmd.Flags().DurationVar(&o.ShutdownTimeout, "shutdown-timeout", o.ShutdownTimeout, "How long to wait for in-flight requests when stopping.")

	return cmd
}

// Validate checks the timeouts.
func (o *ServeOptions) Validate() error {
	if o.RequestTimeout <= 0 {
		return fmt.Errorf("--request-timeout must be positive, got %s", o.RequestTimeout)
	}
	if o.ShutdownTimeout <= 0 {
		return fmt.Errorf("--shutdown-timeout must be positive, got %s", o.ShutdownTimeout)
	}
	return nil
}

// Run executes a serve sub command using the specified options.
func (o *ServeOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := &web.Config{
		ServerOptions:  o.factory.Options().ServerOptions,
		Deps:           o.factory,
		RequestTimeout: o.RequestTimeout,
	}
	server, err := cfg.Complete().New()
	if err != nil {
		return err
	}

	stop := func(string) error {
		ctx, cancel := context.WithTimeout(context.Background(), o.ShutdownTimeout)
		defer cancel()
		return server.Close(ctx)
	}

	gs := shutdown.New()
	gs.AddShutdownManager(posixsignal.NewPosixSignalManager())
	gs.AddShutdownCallback(shutdown.Func(func(manager string) error {
		logger.Info("[Serve] %s requested shutdown", manager)
		return stop(manager)
	}))
	gs.SetErrorHandler(shutdown.ErrorFunc(func(err error) {
		logger.Error("[Serve] shutdown: %v", err)
	}))
	if err := gs.Start(); err != nil {
		return fmt.Errorf("start shutdown manager failed: %w", err)
	}

	go func() {
		<-ctx.Done()
		_ = stop("context")
	}()

	options.WatchLogLevel(viper.GetViper())

	fmt.Fprintf(o.Out, "Serving plugin pages on http://%s\n", cfg.ServerOptions.BindAddress)
	return server.Run()
}
