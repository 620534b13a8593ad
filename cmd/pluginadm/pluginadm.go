package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/kiosk404/pluginadm/internal/pluginadm/cmd"
	cmdutil "github.com/kiosk404/pluginadm/internal/pluginadm/cmd/util"
)

func main() {
	command := cmd.NewDefaultPluginAdmCommand()
	cmdutil.CheckErr(command.Execute())
}
