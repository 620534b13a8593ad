package show

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"

	"github.com/kiosk404/pluginadm/internal/pluginadm/cmd/util"
	"github.com/kiosk404/pluginadm/internal/pluginadm/page"
	"github.com/kiosk404/pluginadm/pkg/cli/genericclioptions"
	"github.com/kiosk404/pluginadm/pkg/utils/templates"
)

var showExample = templates.Examples(`
		# Show the state of a plugin
		pluginadm show gatsby-plugin-sass

		# Include the package readme
		pluginadm show gatsby-plugin-sass --readme

		# Scoped packages work as well
		pluginadm show @scope/gatsby-plugin-foo`)

// ShowOptions is an options struct to support 'show' sub command.
type ShowOptions struct {
	Readme bool
	Width  int

	name    string
	factory util.Factory
	genericclioptions.IOStreams
}

// NewShowOptions returns an initialized ShowOptions instance.
func NewShowOptions(f util.Factory, ioStreams genericclioptions.IOStreams) *ShowOptions {
	return &ShowOptions{
		Width:     100,
		factory:   f,
		IOStreams: ioStreams,
	}
}

// NewCmdShow returns new initialized instance of 'show' sub command.
func NewCmdShow(f util.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewShowOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "show PLUGIN",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"get", "info"},
		Short:                 "Print the state, links and options of a plugin",
		Long:                  "Print whether a plugin is installed, where its repository lives and its current options.",
		Example:               showExample,
		Run: func(cmd *cobra.Command, args []string) {
			util.CheckErr(o.Complete(args))
			util.CheckErr(o.Run(cmd.Context()))
		},
		SuggestFor: []string{},
	}

	cmd.Flags().BoolVar(&o.Readme, "readme", o.Readme, "Also render the package readme.")
	cmd.Flags().IntVar(&o.Width, "width", o.Width, "Wrap long text at this column.")

	return cmd
}

// Complete completes all the required options.
func (o *ShowOptions) Complete(args []string) error {
	name, err := util.PluginName(args)
	if err != nil {
		return err
	}
	o.name = name
	if o.Width <= 20 {
		o.Width = 100
	}
	return nil
}

// Run executes a show sub command using the specified options.
func (o *ShowOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p, err := util.LoadPage(ctx, o.factory, o.name, nil, nil)
	if err != nil {
		return err
	}
	v := p.View()

	status := color.YellowString("not installed")
	if v.Control == page.ControlUninstall {
		status = color.GreenString("installed")
	}

	table := uitable.New()
	table.MaxColWidth = uint(o.Width)
	table.Wrap = true
	table.AddRow("NAME:", v.Name)
	table.AddRow("STATUS:", status)
	if v.Description != "" {
		table.AddRow("DESCRIPTION:", v.Description)
	}
	table.AddRow("REPOSITORY:", v.RepositoryURL)
	fmt.Fprintln(o.Out, table)

	fmt.Fprintln(o.Out)
	fmt.Fprintln(o.Out, color.New(color.Bold).Sprint("Configuration options"))
	fmt.Fprintln(o.Out, wordwrap.WrapString(page.OptionsHelp, uint(o.Width)))
	fmt.Fprintln(o.Out, v.Draft)
	if v.SaveHint != "" {
		fmt.Fprintln(o.Out, color.HiBlackString(v.SaveHint))
	}

	if o.Readme {
		fmt.Fprintln(o.Out)
		fmt.Fprintln(o.Out, util.RenderMarkdown(v.Readme, o.Width))
	}
	return nil
}
