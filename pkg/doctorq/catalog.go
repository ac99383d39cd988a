package doctorq

import (
	"github.com/doctorq/doctorq-sdk/pkg/models"
	"github.com/doctorq/doctorq-sdk/pkg/swr"
)

// Profissionais lists practitioners.
func (c *Client) Profissionais(filters CatalogFilters, opts ...swr.Option) (*swr.Query[models.Profissional], error) {
	params, err := toParams(filters)
	if err != nil {
		return nil, err
	}
	return swr.NewQuery[models.Profissional](c.Cache, c.API, EndpointProfissionais, params, opts...), nil
}

// Profissional reads one practitioner.
func (c *Client) Profissional(id string, opts ...swr.Option) *swr.Single[models.Profissional] {
	return swr.NewSingle[models.Profissional](c.Cache, c.API, Expand(EndpointProfissional, id), nil, withID(id, opts)...)
}

// Procedimentos lists procedures.
func (c *Client) Procedimentos(filters CatalogFilters, opts ...swr.Option) (*swr.Query[models.Procedimento], error) {
	params, err := toParams(filters)
	if err != nil {
		return nil, err
	}
	return swr.NewQuery[models.Procedimento](c.Cache, c.API, EndpointProcedimentos, params, opts...), nil
}

// Procedimento reads one procedure.
func (c *Client) Procedimento(id string, opts ...swr.Option) *swr.Single[models.Procedimento] {
	return swr.NewSingle[models.Procedimento](c.Cache, c.API, Expand(EndpointProcedimento, id), nil, withID(id, opts)...)
}
