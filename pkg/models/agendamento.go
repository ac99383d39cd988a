package models

import "time"

// AgendamentoStatus is the lifecycle state of an appointment.
type AgendamentoStatus string

const (
	AgendamentoAgendado   AgendamentoStatus = "agendado"
	AgendamentoConfirmado AgendamentoStatus = "confirmado"
	AgendamentoConcluido  AgendamentoStatus = "concluido"
	AgendamentoCancelado  AgendamentoStatus = "cancelado"
	AgendamentoFaltou     AgendamentoStatus = "faltou"
)

// Valid reports whether s is a known status.
func (s AgendamentoStatus) Valid() bool {
	switch s {
	case AgendamentoAgendado, AgendamentoConfirmado, AgendamentoConcluido,
		AgendamentoCancelado, AgendamentoFaltou:
		return true
	}
	return false
}

// Agendamento is a scheduled appointment.
type Agendamento struct {
	ID             string            `json:"id_agendamento"`
	EmpresaID      string            `json:"id_empresa"`
	ProfissionalID string            `json:"id_profissional"`
	ProcedimentoID string            `json:"id_procedimento,omitempty"`
	PacienteID     string            `json:"id_paciente,omitempty"`
	DataHora       time.Time         `json:"dt_agendamento"`
	DuracaoMinutos int               `json:"nr_duracao_minutos,omitempty"`
	Status         AgendamentoStatus `json:"ds_status"`
	Observacoes    string            `json:"ds_observacoes,omitempty"`
	CreatedAt      *time.Time        `json:"dt_criacao,omitempty"`
}

// AgendamentoCreate is the payload for booking an appointment.
type AgendamentoCreate struct {
	EmpresaID      string    `json:"id_empresa"`
	ProfissionalID string    `json:"id_profissional"`
	ProcedimentoID string    `json:"id_procedimento,omitempty"`
	PacienteID     string    `json:"id_paciente,omitempty"`
	DataHora       time.Time `json:"dt_agendamento"`
	DuracaoMinutos int       `json:"nr_duracao_minutos,omitempty"`
	Observacoes    string    `json:"ds_observacoes,omitempty"`
}

// AgendamentoStatusUpdate is the payload for changing an appointment's
// status.
type AgendamentoStatusUpdate struct {
	Status AgendamentoStatus `json:"ds_status"`
	Motivo string            `json:"ds_motivo,omitempty"`
}
