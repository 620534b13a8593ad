package version

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kiosk404/pluginadm/internal/pluginadm/cmd/util"
	"github.com/kiosk404/pluginadm/pkg/cli/genericclioptions"
	"github.com/kiosk404/pluginadm/pkg/utils/json"
	"github.com/kiosk404/pluginadm/pkg/utils/templates"
	"github.com/kiosk404/pluginadm/pkg/version"
)

var versionExample = templates.Examples(`
		# Print the version
		pluginadm version

		# Print the version as JSON
		pluginadm version --output=json`)

// Options is an options struct to support 'version' sub command.
type Options struct {
	Short  bool
	Output string

	genericclioptions.IOStreams
}

// NewOptions returns an initialized Options instance.
func NewOptions(ioStreams genericclioptions.IOStreams) *Options {
	return &Options{IOStreams: ioStreams}
}

// NewCmdVersion returns new initialized instance of 'version' sub command.
func NewCmdVersion(_ util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewOptions(ioStreams)

	cmd := &cobra.Command{
		Use:                   "version",
		DisableFlagsInUseLine: true,
		Short:                 "Print the version information",
		Long:                  "Print the version information.",
		Example:               versionExample,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Validate())
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&o.Short, "short", o.Short, "Print just the version number.")
	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "One of '' or 'json'.")

	return cmd
}

// Validate validates the provided options.
func (o *Options) Validate() error {
	if o.Output != "" && o.Output != "json" {
		return fmt.Errorf("--output must be '' or 'json'")
	}
	return nil
}

// Run executes a version sub command using the specified options.
func (o *Options) Run(_ context.Context) error {
	info := version.Get()

	switch {
	case o.Output == "json":
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(o.Out, string(data))
	case o.Short:
		fmt.Fprintln(o.Out, info.GitVersion)
	default:
		fmt.Fprintln(o.Out, info.String())
	}
	return nil
}
