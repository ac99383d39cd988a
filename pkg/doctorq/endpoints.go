package doctorq

import (
	"net/url"
	"strings"
)

// Path templates for the REST backend. Trailing slashes are significant:
// the backend redirects requests that omit them.
const (
	EndpointEmpresas          = "/empresas/"
	EndpointEmpresa           = "/empresas/{id}/"
	EndpointAgendamentos      = "/agendamentos/"
	EndpointAgendamento       = "/agendamentos/{id}"
	EndpointAgendamentoStatus = "/agendamentos/{id}/status"
	EndpointProfissionais     = "/profissionais/"
	EndpointProfissional      = "/profissionais/{id}/"
	EndpointProcedimentos     = "/procedimentos/"
	EndpointProcedimento      = "/procedimentos/{id}/"
	EndpointLeads             = "/partner/leads/"
	EndpointLead              = "/partner/leads/{id}/"
	EndpointLeadApprove       = "/partner/leads/{id}/approve/"
	EndpointLeadReject        = "/partner/leads/{id}/reject/"
	EndpointAgentes           = "/agentes/"
	EndpointAgente            = "/agentes/{id}/"
	EndpointUpload            = "/upload/"
)

// Path templates for the AI service.
const (
	EndpointChatStream       = "/chat/stream"
	EndpointAgenteChatStream = "/agentes/{id}/chat/stream"
)

// Expand fills the {id} placeholder of template with the escaped id.
func Expand(template, id string) string {
	return strings.ReplaceAll(template, "{id}", url.PathEscape(id))
}
