package install

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kiosk404/pluginadm/internal/pluginadm/cmd/util"
	"github.com/kiosk404/pluginadm/internal/pluginadm/page"
	"github.com/kiosk404/pluginadm/pkg/cli/genericclioptions"
	"github.com/kiosk404/pluginadm/pkg/utils/templates"
)

var installExample = templates.Examples(`
		# Add a plugin to the site
		pluginadm install gatsby-plugin-sass`)

// InstallOptions is an options struct to support 'install' sub command.
type InstallOptions struct {
	name    string
	factory util.Factory
	genericclioptions.IOStreams
}

// NewInstallOptions returns an initialized InstallOptions instance.
func NewInstallOptions(f util.Factory, ioStreams genericclioptions.IOStreams) *InstallOptions {
	return &InstallOptions{factory: f, IOStreams: ioStreams}
}

// NewCmdInstall returns new initialized instance of 'install' sub command.
func NewCmdInstall(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewInstallOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "install PLUGIN",
		DisableFlagsInUseLine: true,
		Short:                 "Install a plugin",
		Long: templates.LongDesc(`
		Install a plugin: the package is added as a dependency of the site and a plugin
		record with empty options is created. Installing an installed plugin does nothing.`),
		Example: installExample,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Complete(args))
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	return cmd
}

// Complete completes all the required options.
func (o *InstallOptions) Complete(args []string) error {
	name, err := util.PluginName(args)
	if err != nil {
		return err
	}
	o.name = name
	return nil
}

// Run executes an install sub command using the specified options.
func (o *InstallOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p, err := util.LoadPage(ctx, o.factory, o.name, nil, nil)
	if err != nil {
		return err
	}
	if p.IsInstalled() {
		fmt.Fprintf(o.Out, "%s is already installed\n", o.name)
		return nil
	}

	if err := page.Run(ctx, p, p.Install()...); err != nil {
		return err
	}
	// Install failures are only logged by the page; the re-fetched state tells.
	if !p.IsInstalled() {
		if v := p.View(); v.Error != "" {
			return fmt.Errorf("%s", v.Error)
		}
		return fmt.Errorf("%s could not be installed, see the log for details", o.name)
	}

	fmt.Fprintf(o.Out, "%s %s\n", o.name, color.GreenString("installed"))
	return nil
}
