package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdconfigure "github.com/kiosk404/pluginadm/internal/pluginadm/cmd/configure"
	cmdinstall "github.com/kiosk404/pluginadm/internal/pluginadm/cmd/install"
	cmdserve "github.com/kiosk404/pluginadm/internal/pluginadm/cmd/serve"
	cmdshow "github.com/kiosk404/pluginadm/internal/pluginadm/cmd/show"
	cmduninstall "github.com/kiosk404/pluginadm/internal/pluginadm/cmd/uninstall"
	cmdutil "github.com/kiosk404/pluginadm/internal/pluginadm/cmd/util"
	cmdversion "github.com/kiosk404/pluginadm/internal/pluginadm/cmd/version"
	cmdview "github.com/kiosk404/pluginadm/internal/pluginadm/cmd/view"
	"github.com/kiosk404/pluginadm/internal/pluginadm/options"
	"github.com/kiosk404/pluginadm/pkg/cli/genericclioptions"
	"github.com/kiosk404/pluginadm/pkg/logger"
	"github.com/kiosk404/pluginadm/pkg/utils/cliflag"
	"github.com/kiosk404/pluginadm/pkg/utils/templates"
)

// NewDefaultPluginAdmCommand creates the `pluginadm` command with default arguments.
func NewDefaultPluginAdmCommand() *cobra.Command {
	return NewPluginAdmCommand(os.Stdin, os.Stdout, os.Stderr)
}

func NewPluginAdmCommand(in io.Reader, out, err io.Writer) *cobra.Command {
	opts := options.NewOptions()
	f := cmdutil.NewFactory(opts)

	// Parent command to which all subcommands are added.
	cmds := &cobra.Command{
		Use:   "pluginadm",
		Short: "pluginadm views, installs, configures and uninstalls site plugins",
		Long: templates.LongDesc(fmt.Sprintf(`%s
		pluginadm is the administration tool for the plugins of a static site.

		It talks to the site's local GraphQL API to read and change plugin records, and
		to the npm registry to show what a plugin is about. Use "view" for the interactive
		terminal page, "serve" for the web page, or the scripting commands to do one thing
		and exit.`, Banner())),
		Run:           runHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Hook before and after Run initialize and write profiles to disk,
		// respectively.
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			if err := completeOptions(viper.GetViper(), opts); err != nil {
				return err
			}
			return initProfiling()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if err := f.Close(); err != nil {
				logger.Warn("[Cmd] failed to close: %v", err)
			}
			logger.FlushLog()
			return flushProfiling()
		},
	}
	flags := cmds.PersistentFlags()
	flags.SetNormalizeFunc(cliflag.WarnWordSepNormalizeFunc) // Warn for "_" flags

	// Normalize all flags that are coming from other packages or pre-configurations
	flags.SetNormalizeFunc(cliflag.WordSepNormalizeFunc)

	addProfilingFlags(flags)
	addGlobalFlags(flags, opts)

	_ = viper.BindPFlags(cmds.PersistentFlags())

	// From this point and forward we get warnings on flags that contain "_" separators
	cmds.SetGlobalNormalizationFunc(cliflag.WarnWordSepNormalizeFunc)

	ioStreams := genericclioptions.IOStreams{In: in, Out: out, ErrOut: err}
	cmds.SetIn(in)
	cmds.SetOut(out)
	cmds.SetErr(err)

	groups := templates.CommandGroups{
		{
			Message: "Page Commands:",
			Commands: []*cobra.Command{
				cmdview.NewCmdView(f, ioStreams),
				cmdserve.NewCmdServe(f, ioStreams),
			},
		},
		{
			Message: "Scripting Commands:",
			Commands: []*cobra.Command{
				cmdshow.NewCmdShow(f, ioStreams),
				cmdinstall.NewCmdInstall(f, ioStreams),
				cmdconfigure.NewCmdConfigure(f, ioStreams),
				cmduninstall.NewCmdUninstall(f, ioStreams),
			},
		},
		{
			Message: "Other Commands:",
			Commands: []*cobra.Command{
				cmdversion.NewCmdVersion(f, ioStreams),
			},
		},
	}
	groups.Add(cmds)

	filters := []string{"profile-output"}
	templates.ActsAsRootCommand(cmds, filters, groups...)

	return cmds
}

func runHelp(cmd *cobra.Command, args []string) {
	_ = cmd.Help()
}
