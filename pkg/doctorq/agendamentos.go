package doctorq

import (
	"net/http"

	"github.com/doctorq/doctorq-sdk/pkg/models"
	"github.com/doctorq/doctorq-sdk/pkg/swr"
)

// StatusChange moves appointment ID to a new status.
type StatusChange struct {
	ID string `json:"-"`
	models.AgendamentoStatusUpdate
}

// Agendamentos lists appointments.
func (c *Client) Agendamentos(filters AgendamentoFilters, opts ...swr.Option) (*swr.Query[models.Agendamento], error) {
	params, err := toParams(filters)
	if err != nil {
		return nil, err
	}
	return swr.NewQuery[models.Agendamento](c.Cache, c.API, EndpointAgendamentos, params, opts...), nil
}

// Agendamento reads one appointment. An empty id yields a disabled query.
func (c *Client) Agendamento(id string, opts ...swr.Option) *swr.Single[models.Agendamento] {
	return swr.NewSingle[models.Agendamento](c.Cache, c.API, Expand(EndpointAgendamento, id), nil, withID(id, opts)...)
}

// CreateAgendamento books an appointment.
func (c *Client) CreateAgendamento(opts ...swr.MutationOption[models.AgendamentoCreate, models.Agendamento]) *swr.Mutation[models.AgendamentoCreate, models.Agendamento] {
	return swr.NewMutation(c.API, http.MethodPost, swr.StaticPath[models.AgendamentoCreate](EndpointAgendamentos), opts...)
}

// UpdateAgendamentoStatus changes the status of the appointment named by
// the payload.
func (c *Client) UpdateAgendamentoStatus(opts ...swr.MutationOption[StatusChange, models.Agendamento]) *swr.Mutation[StatusChange, models.Agendamento] {
	path := swr.PathFunc(func(p StatusChange) string {
		if p.ID == "" {
			return ""
		}
		return Expand(EndpointAgendamentoStatus, p.ID)
	})
	return swr.NewMutation(c.API, http.MethodPatch, path, opts...)
}
