package doctorq

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/doctorq/doctorq-sdk/pkg/apiclient"
	"github.com/doctorq/doctorq-sdk/pkg/models"
)

// Pagination selects a page of a list endpoint. Zero values let the
// backend apply its defaults.
type Pagination struct {
	Page int `mapstructure:"page,omitempty"`
	Size int `mapstructure:"size,omitempty"`
}

// EmpresaFilters narrows the Empresa listing.
type EmpresaFilters struct {
	Busca      string `mapstructure:"busca,omitempty"`
	Ativo      *bool  `mapstructure:"ativo,omitempty"`
	Pagination `mapstructure:",squash"`
}

// AgendamentoFilters narrows the Agendamento listing. Dates are
// YYYY-MM-DD.
type AgendamentoFilters struct {
	EmpresaID      string                   `mapstructure:"empresa,omitempty"`
	ProfissionalID string                   `mapstructure:"profissional,omitempty"`
	Status         models.AgendamentoStatus `mapstructure:"status,omitempty"`
	DataInicio     string                   `mapstructure:"data_inicio,omitempty"`
	DataFim        string                   `mapstructure:"data_fim,omitempty"`
	Pagination     `mapstructure:",squash"`
}

// CatalogFilters narrows the Profissional and Procedimento listings.
type CatalogFilters struct {
	EmpresaID  string `mapstructure:"empresa,omitempty"`
	Busca      string `mapstructure:"busca,omitempty"`
	Ativo      *bool  `mapstructure:"ativo,omitempty"`
	Pagination `mapstructure:",squash"`
}

// LeadFilters narrows the partner lead listing.
type LeadFilters struct {
	Status     models.LeadStatus `mapstructure:"status,omitempty"`
	Busca      string            `mapstructure:"busca,omitempty"`
	Pagination `mapstructure:",squash"`
}

// AgenteFilters narrows the Agente listing.
type AgenteFilters struct {
	EmpresaID  string `mapstructure:"empresa,omitempty"`
	Pagination `mapstructure:",squash"`
}

// toParams converts a filter struct into query parameters.
func toParams(filters any) (apiclient.Params, error) {
	out := map[string]any{}
	if err := mapstructure.Decode(filters, &out); err != nil {
		return nil, fmt.Errorf("failed to convert filters: %w", err)
	}
	return apiclient.Params(out), nil
}
