package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/doctorq/doctorq-sdk/internal/cmd/base"
	"github.com/doctorq/doctorq-sdk/internal/cmd/commands/agendamentos"
	"github.com/doctorq/doctorq-sdk/internal/cmd/commands/chat"
	"github.com/doctorq/doctorq-sdk/internal/cmd/commands/empresas"
	"github.com/doctorq/doctorq-sdk/internal/cmd/commands/leads"
	"github.com/doctorq/doctorq-sdk/internal/cmd/commands/upload"
	"github.com/doctorq/doctorq-sdk/internal/cmd/commands/version"
)

// Commands is the mapping of all available doctorq commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)

	Commands = map[string]cli.CommandFactory{
		"agendamentos": func() (cli.Command, error) {
			return &agendamentos.Command{Command: b}, nil
		},
		"chat": func() (cli.Command, error) {
			return &chat.Command{Command: b}, nil
		},
		"empresas": func() (cli.Command, error) {
			return &empresas.Command{Command: b}, nil
		},
		"leads": func() (cli.Command, error) {
			return &leads.Command{Command: b}, nil
		},
		"upload": func() (cli.Command, error) {
			return &upload.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
