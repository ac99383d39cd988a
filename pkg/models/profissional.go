package models

// Profissional is a practitioner working for an Empresa.
type Profissional struct {
	ID            string `json:"id_profissional"`
	EmpresaID     string `json:"id_empresa"`
	Nome          string `json:"nm_profissional"`
	Especialidade string `json:"ds_especialidade,omitempty"`
	Registro      string `json:"nr_registro,omitempty"`
	Email         string `json:"ds_email,omitempty"`
	Ativo         bool   `json:"st_ativo"`
}

// Procedimento is a service offered by an Empresa.
type Procedimento struct {
	ID             string  `json:"id_procedimento"`
	EmpresaID      string  `json:"id_empresa"`
	Nome           string  `json:"nm_procedimento"`
	Descricao      string  `json:"ds_procedimento,omitempty"`
	Categoria      string  `json:"ds_categoria,omitempty"`
	Preco          float64 `json:"vl_preco"`
	DuracaoMinutos int     `json:"nr_duracao_minutos,omitempty"`
	Ativo          bool    `json:"st_ativo"`
}
