package doctorq

import (
	"net/http"

	"github.com/doctorq/doctorq-sdk/pkg/models"
	"github.com/doctorq/doctorq-sdk/pkg/swr"
)

// Empresas lists companies.
func (c *Client) Empresas(filters EmpresaFilters, opts ...swr.Option) (*swr.Query[models.Empresa], error) {
	params, err := toParams(filters)
	if err != nil {
		return nil, err
	}
	return swr.NewQuery[models.Empresa](c.Cache, c.API, EndpointEmpresas, params, opts...), nil
}

// Empresa reads one company. An empty id yields a disabled query.
func (c *Client) Empresa(id string, opts ...swr.Option) *swr.Single[models.Empresa] {
	return swr.NewSingle[models.Empresa](c.Cache, c.API, Expand(EndpointEmpresa, id), nil, withID(id, opts)...)
}

// CreateEmpresa registers a company.
func (c *Client) CreateEmpresa(opts ...swr.MutationOption[models.EmpresaCreate, models.Empresa]) *swr.Mutation[models.EmpresaCreate, models.Empresa] {
	return swr.NewMutation(c.API, http.MethodPost, swr.StaticPath[models.EmpresaCreate](EndpointEmpresas), opts...)
}

// UpdateEmpresa changes the company id.
func (c *Client) UpdateEmpresa(id string, opts ...swr.MutationOption[models.EmpresaUpdate, models.Empresa]) *swr.Mutation[models.EmpresaUpdate, models.Empresa] {
	return swr.NewMutation(c.API, http.MethodPut, swr.StaticPath[models.EmpresaUpdate](Expand(EndpointEmpresa, id)), opts...)
}

// DeleteEmpresa removes the company whose id is passed to Trigger.
func (c *Client) DeleteEmpresa(opts ...swr.MutationOption[string, struct{}]) *swr.Mutation[string, struct{}] {
	return swr.NewMutation(c.API, http.MethodDelete, idPath(EndpointEmpresa), opts...)
}

// withID disables a single-item query when id is empty.
func withID(id string, opts []swr.Option) []swr.Option {
	if id != "" {
		return opts
	}
	return append(append([]swr.Option{}, opts...), swr.WithEnabled(false))
}

// idPath builds a Path that expands template with the payload.
func idPath(template string) swr.Path[string] {
	return swr.PathFunc(func(id string) string {
		if id == "" {
			return ""
		}
		return Expand(template, id)
	})
}
