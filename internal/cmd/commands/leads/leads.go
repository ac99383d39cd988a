package leads

import (
	"context"
	"flag"
	"fmt"

	"github.com/doctorq/doctorq-sdk/internal/cmd/base"
	"github.com/doctorq/doctorq-sdk/pkg/doctorq"
	"github.com/doctorq/doctorq-sdk/pkg/models"
)

type Command struct {
	*base.Command

	client base.ClientFlags
	page   base.PageFlags

	flagStatus  string
	flagApprove string
	flagReject  string
	flagReason  string
}

func (c *Command) Synopsis() string {
	return "Review partner leads"
}

func (c *Command) Help() string {
	return `Usage: doctorq leads [options]

  Lists partner leads. With -approve or -reject, decides a single lead
  instead.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("leads", flag.ContinueOnError))

	c.client.Register(f)
	c.page.Register(f)
	f.StringVar(&c.flagStatus, "status", "", "Filter by status (pending, approved, rejected).")
	f.StringVar(&c.flagApprove, "approve", "", "Approve the lead with this ID.")
	f.StringVar(&c.flagReject, "reject", "", "Reject the lead with this ID.")
	f.StringVar(&c.flagReason, "reason", "", "Reason recorded with the decision.")

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if c.flagApprove != "" && c.flagReject != "" {
		ui.Error("only one of -approve and -reject may be set")
		return 1
	}

	ctx := context.Background()
	client, err := c.NewClient(ctx, c.client)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	action := doctorq.LeadAction{LeadDecision: models.LeadDecision{Motivo: c.flagReason}}
	switch {
	case c.flagApprove != "":
		action.ID = c.flagApprove
		lead, err := client.ApproveLead().Trigger(ctx, action)
		if err != nil {
			ui.Error(fmt.Sprintf("error approving lead: %v", err))
			return 1
		}
		return c.output(lead)

	case c.flagReject != "":
		action.ID = c.flagReject
		lead, err := client.RejectLead().Trigger(ctx, action)
		if err != nil {
			ui.Error(fmt.Sprintf("error rejecting lead: %v", err))
			return 1
		}
		return c.output(lead)
	}

	q, err := client.Leads(doctorq.LeadFilters{
		Status:     models.LeadStatus(c.flagStatus),
		Pagination: c.page.Pagination(),
	})
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	res := q.Load(ctx)
	if res.IsError() {
		ui.Error(fmt.Sprintf("error listing leads: %v", res.Error))
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
