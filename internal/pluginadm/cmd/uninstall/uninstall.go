package uninstall

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/moby/term"
	"github.com/spf13/cobra"

	"github.com/kiosk404/pluginadm/internal/pluginadm/cmd/util"
	"github.com/kiosk404/pluginadm/internal/pluginadm/page"
	"github.com/kiosk404/pluginadm/internal/pluginadm/pkg/errno"
	"github.com/kiosk404/pluginadm/pkg/cli/genericclioptions"
	"github.com/kiosk404/pluginadm/pkg/utils/templates"
)

var uninstallExample = templates.Examples(`
		# Uninstall a plugin, asking for confirmation
		pluginadm uninstall gatsby-plugin-sass

		# Uninstall without asking
		pluginadm uninstall gatsby-plugin-sass --yes`)

// UninstallOptions is an options struct to support 'uninstall' sub command.
type UninstallOptions struct {
	Yes bool

	name    string
	factory util.Factory
	genericclioptions.IOStreams
}

// NewUninstallOptions returns an initialized UninstallOptions instance.
func NewUninstallOptions(f util.Factory, ioStreams genericclioptions.IOStreams) *UninstallOptions {
	return &UninstallOptions{factory: f, IOStreams: ioStreams}
}

// NewCmdUninstall returns new initialized instance of 'uninstall' sub command.
func NewCmdUninstall(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewUninstallOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "uninstall PLUGIN",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"remove", "rm"},
		Short:                 "Uninstall a plugin",
		Long: templates.LongDesc(`
		Uninstall a plugin: the plugin record and the package dependency are removed in
		one request.

		You are asked for confirmation unless --yes is given. When stdin is not a
		terminal and --yes is missing, nothing is removed.`),
		Example: uninstallExample,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Complete(args))
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", o.Yes, "Do not ask for confirmation.")

	return cmd
}

// Complete completes all the required options.
func (o *UninstallOptions) Complete(args []string) error {
	name, err := util.PluginName(args)
	if err != nil {
		return err
	}
	o.name = name
	return nil
}

// Run executes an uninstall sub command using the specified options.
func (o *UninstallOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var navigated bool
	p, err := util.LoadPage(ctx, o.factory, o.name, o.confirm, func(string) { navigated = true })
	if err != nil {
		return err
	}
	if !p.IsInstalled() {
		return fmt.Errorf("%s: %w", o.name, errno.ErrNotInstalled)
	}

	if err := page.Run(ctx, p, p.Uninstall()...); err != nil {
		return err
	}
	if !navigated {
		return errno.ErrDeclined
	}

	// The page moves on whether or not the removal worked; ask again to know.
	if err := page.Run(ctx, p, p.Refresh()...); err != nil {
		return err
	}
	if p.IsInstalled() {
		return fmt.Errorf("%s is still installed, see the log for details", o.name)
	}

	fmt.Fprintf(o.Out, "%s %s\n", o.name, color.GreenString("uninstalled"))
	return nil
}

// confirm implements page.Confirmer on top of the command's streams.
func (o *UninstallOptions) confirm(_ context.Context, prompt string) bool {
	if o.Yes {
		return true
	}
	if _, isTerm := term.GetFdInfo(o.In); !isTerm {
		fmt.Fprintf(o.ErrOut, "%s\nRefusing to uninstall without a terminal, pass --yes to confirm.\n", prompt)
		return false
	}
	return Ask(o.In, o.Out, prompt)
}

// Ask prints prompt and reads a yes/no answer from in. Anything but y or yes
// is a no.
func Ask(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
