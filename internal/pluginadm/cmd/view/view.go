package view

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/moby/term"
	"github.com/spf13/cobra"

	"github.com/kiosk404/pluginadm/internal/pluginadm/cmd/util"
	"github.com/kiosk404/pluginadm/internal/pluginadm/options"
	"github.com/kiosk404/pluginadm/internal/pluginadm/page"
	"github.com/kiosk404/pluginadm/pkg/cli/genericclioptions"
	"github.com/kiosk404/pluginadm/pkg/logger"
	"github.com/kiosk404/pluginadm/pkg/utils/homedir"
	"github.com/kiosk404/pluginadm/pkg/utils/templates"
)

var viewExample = templates.Examples(`
		# Open the page of a plugin
		pluginadm view gatsby-plugin-sass

		# Page paths are accepted too
		pluginadm view /plugins/gatsby-plugin-sass`)

// ViewOptions is an options struct to support 'view' sub command.
type ViewOptions struct {
	AltScreen bool

	name    string
	factory util.Factory
	genericclioptions.IOStreams
}

// NewViewOptions returns an initialized ViewOptions instance.
func NewViewOptions(f util.Factory, ioStreams genericclioptions.IOStreams) *ViewOptions {
	return &ViewOptions{AltScreen: true, factory: f, IOStreams: ioStreams}
}

// NewCmdView returns new initialized instance of 'view' sub command.
func NewCmdView(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewViewOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "view PLUGIN",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"open"},
		Short:                 "Open the interactive page of a plugin",
		Long: templates.LongDesc(`
		Open the interactive page of a plugin in the terminal.

		The page shows the plugin's description, repository link and readme, lets you
		install or uninstall it, and edit its options.

		Keys:
		  tab      move between the readme and the options editor
		  i        install the plugin
		  u        uninstall the plugin
		  r        reload the plugin
		  ctrl+s   save the options
		  q        quit (ctrl+c from the editor)`),
		Example: viewExample,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Complete(args))
			util.CheckErr(o.Validate())
			util.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&o.AltScreen, "alt-screen", o.AltScreen, "Draw the page on the alternate screen.")

	return cmd
}

// Complete completes all the required options.
func (o *ViewOptions) Complete(args []string) error {
	name, err := util.PluginName(args)
	if err != nil {
		return err
	}
	o.name = name
	return nil
}

// Validate makes sure the page can be drawn.
func (o *ViewOptions) Validate() error {
	if _, isTerm := term.GetFdInfo(o.Out); !isTerm {
		return fmt.Errorf("view needs a terminal, use 'pluginadm show %s' instead", o.name)
	}
	return nil
}

// Run executes a view sub command using the specified options.
func (o *ViewOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := o.redirectLog(); err != nil {
		return err
	}

	m, err := newModel(ctx, o.factory, o.name)
	if err != nil {
		return err
	}

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(o.In),
		tea.WithOutput(o.Out),
	}
	if o.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	logger.Info("[View] opening the page of %s", o.name)
	if _, err := tea.NewProgram(m, programOpts...).Run(); err != nil {
		return fmt.Errorf("page failed: %w", err)
	}
	if m.navigated == page.RootPath {
		logger.Info("[View] left the page of %s", o.name)
	}
	return nil
}

// redirectLog keeps log lines off the screen: without a configured log file
// they go to ~/.pluginadm/view.log.
func (o *ViewOptions) redirectLog() error {
	if o.factory.Options().LogOptions.File != "" {
		return nil
	}
	return logger.InitLog(filepath.Join(homedir.HomeDir(), options.RecommendedHomeDir, "view.log"))
}
