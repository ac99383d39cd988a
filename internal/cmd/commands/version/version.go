package version

import (
	"github.com/doctorq/doctorq-sdk/internal/cmd/base"
	"github.com/doctorq/doctorq-sdk/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: doctorq version

  Prints the version of the doctorq CLI.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("doctorq " + version.Full())
	return 0
}
