package empresas

import (
	"context"
	"flag"
	"fmt"

	"github.com/doctorq/doctorq-sdk/internal/cmd/base"
	"github.com/doctorq/doctorq-sdk/pkg/doctorq"
)

type Command struct {
	*base.Command

	client base.ClientFlags
	page   base.PageFlags

	flagID     string
	flagSearch string
}

func (c *Command) Synopsis() string {
	return "List or show companies"
}

func (c *Command) Help() string {
	return `Usage: doctorq empresas [options]

  Lists companies registered on DoctorQ, or shows one with -id.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("empresas", flag.ContinueOnError))

	c.client.Register(f)
	c.page.Register(f)
	f.StringVar(&c.flagID, "id", "", "Show a single company.")
	f.StringVar(&c.flagSearch, "search", "", "Filter by name or CNPJ.")

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	ctx := context.Background()
	client, err := c.NewClient(ctx, c.client)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	if c.flagID != "" {
		res := client.Empresa(c.flagID).Load(ctx)
		if res.IsError() {
			ui.Error(fmt.Sprintf("error fetching company: %v", res.Error))
			return 1
		}
		return c.output(res.Data)
	}

	q, err := client.Empresas(doctorq.EmpresaFilters{
		Busca:      c.flagSearch,
		Pagination: c.page.Pagination(),
	})
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	res := q.Load(ctx)
	if res.IsError() {
		ui.Error(fmt.Sprintf("error listing companies: %v", res.Error))
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
