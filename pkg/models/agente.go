package models

// Agente is a configured AI agent.
type Agente struct {
	ID          string   `json:"id_agente"`
	EmpresaID   string   `json:"id_empresa,omitempty"`
	Nome        string   `json:"nm_agente"`
	Descricao   string   `json:"ds_descricao,omitempty"`
	Prompt      string   `json:"ds_prompt,omitempty"`
	Modelo      string   `json:"nm_modelo,omitempty"`
	Temperatura *float64 `json:"nr_temperatura,omitempty"`
	MaxTokens   *int     `json:"nr_max_tokens,omitempty"`
	Config      JSON     `json:"ds_config,omitempty"`
	Ativo       bool     `json:"st_ativo"`
}

// AgenteCreate is the payload for creating an Agente.
type AgenteCreate struct {
	EmpresaID   string   `json:"id_empresa,omitempty"`
	Nome        string   `json:"nm_agente"`
	Descricao   string   `json:"ds_descricao,omitempty"`
	Prompt      string   `json:"ds_prompt,omitempty"`
	Modelo      string   `json:"nm_modelo,omitempty"`
	Temperatura *float64 `json:"nr_temperatura,omitempty"`
	MaxTokens   *int     `json:"nr_max_tokens,omitempty"`
	Config      JSON     `json:"ds_config,omitempty"`
}

// AgenteUpdate is the payload for updating an Agente. Nil fields are left
// unchanged.
type AgenteUpdate struct {
	Nome        *string  `json:"nm_agente,omitempty"`
	Descricao   *string  `json:"ds_descricao,omitempty"`
	Prompt      *string  `json:"ds_prompt,omitempty"`
	Modelo      *string  `json:"nm_modelo,omitempty"`
	Temperatura *float64 `json:"nr_temperatura,omitempty"`
	MaxTokens   *int     `json:"nr_max_tokens,omitempty"`
	Config      JSON     `json:"ds_config,omitempty"`
	Ativo       *bool    `json:"st_ativo,omitempty"`
}

// ChatRequest is the body sent to a chat stream endpoint.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// UploadResult describes a stored document.
type UploadResult struct {
	ID          string `json:"id_arquivo"`
	FileName    string `json:"nm_arquivo"`
	URL         string `json:"ds_url,omitempty"`
	ContentType string `json:"ds_content_type,omitempty"`
	Size        int64  `json:"nr_tamanho,omitempty"`
}
