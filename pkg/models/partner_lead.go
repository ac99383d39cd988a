package models

import "time"

// LeadStatus is the review state of a partner lead.
type LeadStatus string

const (
	LeadPending  LeadStatus = "pending"
	LeadApproved LeadStatus = "approved"
	LeadRejected LeadStatus = "rejected"
)

// PartnerLead is a partner sign-up awaiting review.
type PartnerLead struct {
	ID           string     `json:"id_lead"`
	Nome         string     `json:"nm_contato"`
	Email        string     `json:"ds_email"`
	Telefone     string     `json:"nr_telefone,omitempty"`
	Empresa      string     `json:"nm_empresa,omitempty"`
	CNPJ         string     `json:"nr_cnpj,omitempty"`
	TipoParceiro string     `json:"tp_parceiro,omitempty"`
	Plano        string     `json:"nm_plano,omitempty"`
	Status       LeadStatus `json:"ds_status"`
	Motivo       string     `json:"ds_motivo,omitempty"`
	CreatedAt    *time.Time `json:"dt_criacao,omitempty"`
}

// LeadDecision is the optional body of an approve or reject call.
type LeadDecision struct {
	Motivo string `json:"ds_motivo,omitempty"`
}
