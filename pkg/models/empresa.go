package models

import "time"

// Empresa is a clinic or company registered on the platform.
type Empresa struct {
	ID        string     `json:"id_empresa"`
	Nome      string     `json:"nm_empresa"`
	CNPJ      string     `json:"nr_cnpj,omitempty"`
	Email     string     `json:"ds_email,omitempty"`
	Telefone  string     `json:"nr_telefone,omitempty"`
	Cidade    string     `json:"nm_cidade,omitempty"`
	UF        string     `json:"sg_uf,omitempty"`
	Ativo     bool       `json:"st_ativo"`
	CreatedAt *time.Time `json:"dt_criacao,omitempty"`
	UpdatedAt *time.Time `json:"dt_atualizacao,omitempty"`
}

// EmpresaCreate is the payload for creating an Empresa.
type EmpresaCreate struct {
	Nome     string `json:"nm_empresa"`
	CNPJ     string `json:"nr_cnpj,omitempty"`
	Email    string `json:"ds_email,omitempty"`
	Telefone string `json:"nr_telefone,omitempty"`
	Cidade   string `json:"nm_cidade,omitempty"`
	UF       string `json:"sg_uf,omitempty"`
}

// EmpresaUpdate is the payload for updating an Empresa. Nil fields are left
// unchanged.
type EmpresaUpdate struct {
	Nome     *string `json:"nm_empresa,omitempty"`
	Email    *string `json:"ds_email,omitempty"`
	Telefone *string `json:"nr_telefone,omitempty"`
	Cidade   *string `json:"nm_cidade,omitempty"`
	UF       *string `json:"sg_uf,omitempty"`
	Ativo    *bool   `json:"st_ativo,omitempty"`
}
