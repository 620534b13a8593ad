package templates

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
	"github.com/moby/term"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ActsAsRootCommand installs a usage function on cmd that lists subcommands by
// group and hides the flags named in filters from the flag listing.
func ActsAsRootCommand(cmd *cobra.Command, filters []string, groups ...CommandGroup) {
	t := &templater{RootCmd: cmd, CommandGroups: groups, Filtered: filters}
	cmd.SetUsageFunc(t.usageFunc)
	cmd.SetHelpFunc(t.helpFunc)
}

type templater struct {
	RootCmd       *cobra.Command
	CommandGroups CommandGroups
	Filtered      []string
}

func (t *templater) helpFunc(c *cobra.Command, _ []string) {
	out := c.OutOrStdout()
	desc := c.Long
	if desc == "" {
		desc = c.Short
	}
	if desc != "" {
		fmt.Fprintln(out, wrap(desc, out))
		fmt.Fprintln(out)
	}
	_ = t.usageFunc(c)
}

func (t *templater) usageFunc(c *cobra.Command) error {
	out := c.OutOrStderr()
	heading := color.New(color.Bold)

	if c.Runnable() {
		heading.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s\n\n", c.UseLine())
	}

	if c.HasExample() {
		heading.Fprintln(out, "Examples:")
		fmt.Fprintf(out, "%s\n\n", c.Example)
	}

	if c == t.RootCmd && len(t.CommandGroups) > 0 {
		for _, group := range t.CommandGroups {
			heading.Fprintln(out, group.Message)
			for _, sub := range group.Commands {
				if sub.IsAvailableCommand() {
					fmt.Fprintf(out, "  %-*s %s\n", c.NamePadding(), sub.Name(), sub.Short)
				}
			}
			fmt.Fprintln(out)
		}
	} else if c.HasAvailableSubCommands() {
		heading.Fprintln(out, "Available Commands:")
		for _, sub := range c.Commands() {
			if sub.IsAvailableCommand() {
				fmt.Fprintf(out, "  %-*s %s\n", c.NamePadding(), sub.Name(), sub.Short)
			}
		}
		fmt.Fprintln(out)
	}

	if flags := t.flagUsages(c.LocalFlags()); flags != "" {
		heading.Fprintln(out, "Options:")
		fmt.Fprintln(out, flags)
	}
	if flags := t.flagUsages(c.InheritedFlags()); flags != "" {
		heading.Fprintln(out, "Global Options:")
		fmt.Fprintln(out, flags)
	}

	if c.HasAvailableSubCommands() {
		fmt.Fprintf(out, "Use \"%s <command> --help\" for more information about a given command.\n", c.CommandPath())
	}
	return nil
}

func (t *templater) flagUsages(fs *pflag.FlagSet) string {
	visible := pflag.NewFlagSet("visible", pflag.ContinueOnError)
	fs.VisitAll(func(f *pflag.Flag) {
		for _, name := range t.Filtered {
			if f.Name == name {
				return
			}
		}
		visible.AddFlag(f)
	})
	return strings.TrimRight(visible.FlagUsagesWrapped(terminalWidth(os.Stdout)), "\n")
}

func wrap(s string, out io.Writer) string {
	width := terminalWidth(out)
	if width <= 0 {
		return s
	}
	return wordwrap.WrapString(s, uint(width))
}

// terminalWidth returns the width of out when it is a terminal, or 0.
func terminalWidth(out io.Writer) int {
	fd, isTerm := term.GetFdInfo(out)
	if !isTerm {
		return 0
	}
	ws, err := term.GetWinsize(fd)
	if err != nil || ws.Width == 0 {
		return 0
	}
	return int(ws.Width)
}
