package upload

import (
	"context"
	"flag"
	"fmt"

	"github.com/spf13/afero"

	"github.com/doctorq/doctorq-sdk/internal/cmd/base"
)

type Command struct {
	*base.Command

	// FS is the filesystem files are read from. Defaults to the OS.
	FS afero.Fs

	client base.ClientFlags

	flagFields base.StringMapValue
}

func (c *Command) Synopsis() string {
	return "Upload a document"
}

func (c *Command) Help() string {
	return `Usage: doctorq upload [options] FILE

  Uploads FILE to DoctorQ. Extra form fields are passed with -field.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("upload", flag.ContinueOnError))

	c.client.Register(f)
	if c.flagFields == nil {
		c.flagFields = base.StringMapValue{}
	}
	f.Var(c.flagFields, "field", "Form field as key=value. May be repeated.")

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if flags.NArg() != 1 {
		ui.Error("exactly one file is required")
		return 1
	}
	path := flags.Arg(0)

	fs := c.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}

	ctx := context.Background()
	client, err := c.NewClient(ctx, c.client)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	result, err := client.UploadDocument(ctx, fs, path, c.flagFields)
	if err != nil {
		ui.Error(fmt.Sprintf("error uploading %s: %v", path, err))
		return 1
	}

	if err := c.Output(c.client.Format, result); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
