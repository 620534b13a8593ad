package configure

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kiosk404/pluginadm/internal/pluginadm/cmd/util"
	"github.com/kiosk404/pluginadm/internal/pluginadm/page"
	"github.com/kiosk404/pluginadm/internal/pluginadm/pkg/errno"
	"github.com/kiosk404/pluginadm/pkg/cli/genericclioptions"
	"github.com/kiosk404/pluginadm/pkg/utils/templates"
)

var configureExample = templates.Examples(`
		# Set options with relaxed object syntax
		pluginadm configure gatsby-plugin-sass --data '{ implementation: "sass", precision: 6 }'

		# Read the options from a file
		pluginadm configure gatsby-plugin-sass --file options.json

		# Read the options from stdin
		cat options.json | pluginadm configure gatsby-plugin-sass --file -`)

// ConfigureOptions is an options struct to support 'configure' sub command.
type ConfigureOptions struct {
	Data string
	File string

	name    string
	factory util.Factory
	genericclioptions.IOStreams
}

// NewConfigureOptions returns an initialized ConfigureOptions instance.
func NewConfigureOptions(f util.Factory, ioStreams genericclioptions.IOStreams) *ConfigureOptions {
	return &ConfigureOptions{factory: f, IOStreams: ioStreams}
}

// NewCmdConfigure returns new initialized instance of 'configure' sub command.
func NewCmdConfigure(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewConfigureOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "configure PLUGIN (--data OPTIONS | --file FILE)",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"config", "set-options"},
		Short:                 "Replace the options of an installed plugin",
		Long: templates.LongDesc(`
		Replace the options of an installed plugin.

		Options are an object written as JSON or in relaxed object syntax: keys may be
		unquoted and trailing commas are allowed. Anything that is not plain data, such
		as variables or function calls, is rejected.`),
		Example: configureExample,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Complete(cmd, args))
			util.CheckErr(o.Validate(cmd))
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&o.Data, "data", "d", o.Data, "The new options.")
	cmd.Flags().StringVarP(&o.File, "file", "f", o.File, "Read the new options from this file, '-' for stdin.")

	return cmd
}

// Complete completes all the required options.
func (o *ConfigureOptions) Complete(cmd *cobra.Command, args []string) error {
	name, err := util.PluginName(args)
	if err != nil {
		return err
	}
	o.name = name

	if o.File == "" {
		return nil
	}
	var data []byte
	if o.File == "-" {
		data, err = io.ReadAll(o.In)
	} else {
		data, err = os.ReadFile(o.File)
	}
	if err != nil {
		return fmt.Errorf("failed to read options: %w", err)
	}
	o.Data = string(data)
	return nil
}

// Validate makes sure exactly one source of options was given.
func (o *ConfigureOptions) Validate(cmd *cobra.Command) error {
	dataSet := cmd != nil && cmd.Flags().Changed("data")
	if dataSet && o.File != "" {
		return util.UsageErrorf(cmd.CommandPath(), "--data and --file are mutually exclusive")
	}
	if !dataSet && o.File == "" {
		path := "pluginadm configure"
		if cmd != nil {
			path = cmd.CommandPath()
		}
		return util.UsageErrorf(path, "one of --data or --file is required")
	}
	return nil
}

// Run executes a configure sub command using the specified options.
func (o *ConfigureOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p, err := util.LoadPage(ctx, o.factory, o.name, nil, nil)
	if err != nil {
		return err
	}
	if !p.IsInstalled() {
		return fmt.Errorf("%s: %w", o.name, errno.ErrNotInstalled)
	}

	p.EditDraft(o.Data)
	if err := page.Run(ctx, p, p.Submit()...); err != nil {
		return err
	}
	if v := p.View(); v.ValidationError != "" {
		return fmt.Errorf("invalid JSON: %s", v.ValidationError)
	}

	draft, _ := p.Draft()
	fmt.Fprintln(o.Out, draft)
	return nil
}
