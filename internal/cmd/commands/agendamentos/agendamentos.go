package agendamentos

import (
	"context"
	"flag"
	"fmt"

	"github.com/araddon/dateparse"

	"github.com/doctorq/doctorq-sdk/internal/cmd/base"
	"github.com/doctorq/doctorq-sdk/pkg/doctorq"
	"github.com/doctorq/doctorq-sdk/pkg/models"
)

const dateLayout = "2006-01-02"

type Command struct {
	*base.Command

	client base.ClientFlags
	page   base.PageFlags

	flagID           string
	flagEmpresa      string
	flagProfissional string
	flagStatus       string
	flagFrom         string
	flagTo           string
}

func (c *Command) Synopsis() string {
	return "List or show appointments"
}

func (c *Command) Help() string {
	return `Usage: doctorq agendamentos [options]

  Lists appointments, or shows one with -id. Dates accept most common
  formats, for example 2026-03-01, 03/01/2026 or "March 1, 2026".` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("agendamentos", flag.ContinueOnError))

	c.client.Register(f)
	c.page.Register(f)
	f.StringVar(&c.flagID, "id", "", "Show a single appointment.")
	f.StringVar(&c.flagEmpresa, "empresa", "", "Filter by company ID.")
	f.StringVar(&c.flagProfissional, "profissional", "", "Filter by practitioner ID.")
	f.StringVar(&c.flagStatus, "status", "",
		"Filter by status (agendado, confirmado, concluido, cancelado, faltou).")
	f.StringVar(&c.flagFrom, "from", "", "Only appointments on or after this date.")
	f.StringVar(&c.flagTo, "to", "", "Only appointments on or before this date.")

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	filters := doctorq.AgendamentoFilters{
		EmpresaID:      c.flagEmpresa,
		ProfissionalID: c.flagProfissional,
		Pagination:     c.page.Pagination(),
	}

	if c.flagStatus != "" {
		status := models.AgendamentoStatus(c.flagStatus)
		if !status.Valid() {
			ui.Error(fmt.Sprintf("invalid status %q", c.flagStatus))
			return 1
		}
		filters.Status = status
	}

	var err error
	if filters.DataInicio, err = parseDate(c.flagFrom); err != nil {
		ui.Error(fmt.Sprintf("invalid -from: %v", err))
		return 1
	}
	if filters.DataFim, err = parseDate(c.flagTo); err != nil {
		ui.Error(fmt.Sprintf("invalid -to: %v", err))
		return 1
	}

	ctx := context.Background()
	client, err := c.NewClient(ctx, c.client)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	if c.flagID != "" {
		res := client.Agendamento(c.flagID).Load(ctx)
		if res.IsError() {
			ui.Error(fmt.Sprintf("error fetching appointment: %v", res.Error))
			return 1
		}
		return c.output(res.Data)
	}

	q, err := client.Agendamentos(filters)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	res := q.Load(ctx)
	if res.IsError() {
		ui.Error(fmt.Sprintf("error listing appointments: %v", res.Error))
		return 1
	}
	return c.output(map[string]any{"items": res.Data, "meta": res.Meta})
}

func (c *Command) output(v any) int {
	if err := c.Output(c.client.Format, v); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

// parseDate normalizes a free-form date to YYYY-MM-DD.
func parseDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return "", err
	}
	return t.Format(dateLayout), nil
}
