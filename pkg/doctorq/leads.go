package doctorq

import (
	"net/http"

	"github.com/doctorq/doctorq-sdk/pkg/models"
	"github.com/doctorq/doctorq-sdk/pkg/swr"
)

// LeadAction approves or rejects lead ID.
type LeadAction struct {
	ID string `json:"-"`
	models.LeadDecision
}

// Leads lists partner leads.
func (c *Client) Leads(filters LeadFilters, opts ...swr.Option) (*swr.Query[models.PartnerLead], error) {
	params, err := toParams(filters)
	if err != nil {
		return nil, err
	}
	return swr.NewQuery[models.PartnerLead](c.Cache, c.API, EndpointLeads, params, opts...), nil
}

// Lead reads one partner lead.
func (c *Client) Lead(id string, opts ...swr.Option) *swr.Single[models.PartnerLead] {
	return swr.NewSingle[models.PartnerLead](c.Cache, c.API, Expand(EndpointLead, id), nil, withID(id, opts)...)
}

// ApproveLead approves the lead named by the payload.
func (c *Client) ApproveLead(opts ...swr.MutationOption[LeadAction, models.PartnerLead]) *swr.Mutation[LeadAction, models.PartnerLead] {
	return swr.NewMutation(c.API, http.MethodPost, leadPath(EndpointLeadApprove), opts...)
}

// RejectLead rejects the lead named by the payload.
func (c *Client) RejectLead(opts ...swr.MutationOption[LeadAction, models.PartnerLead]) *swr.Mutation[LeadAction, models.PartnerLead] {
	return swr.NewMutation(c.API, http.MethodPost, leadPath(EndpointLeadReject), opts...)
}

func leadPath(template string) swr.Path[LeadAction] {
	return swr.PathFunc(func(a LeadAction) string {
		if a.ID == "" {
			return ""
		}
		return Expand(template, a.ID)
	})
}
