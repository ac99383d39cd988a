package doctorq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctorq/doctorq-sdk/pkg/apiclient"
	"github.com/doctorq/doctorq-sdk/pkg/auth"
	"github.com/doctorq/doctorq-sdk/pkg/models"
	"github.com/doctorq/doctorq-sdk/pkg/swr"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Options{
		APIURL:      server.URL,
		Credentials: auth.Static("test-key"),
		Logger:      hclog.NewNullLogger(),
	})
	require.NoError(t, err)
	return client
}

func TestNew(t *testing.T) {
	client, err := New(Options{APIURL: "https://api.doctorq.app/api/v1"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.doctorq.app/api/v1", client.API.BaseURL())
	assert.Equal(t, "https://api.doctorq.app/api/v1", client.AI.BaseURL())
	assert.Equal(t, "api", client.API.Name())
	assert.Equal(t, "ai", client.AI.Name())
	assert.NotNil(t, client.Cache)

	client, err = New(Options{
		APIURL: "https://api.doctorq.app/api/v1",
		AIURL:  "https://ai.doctorq.app",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://ai.doctorq.app", client.AI.BaseURL())

	_, err = New(Options{})
	assert.Error(t, err)
}

func TestExpand(t *testing.T) {
	assert.Equal(t, "/empresas/emp-1/", Expand(EndpointEmpresa, "emp-1"))
	assert.Equal(t, "/agendamentos/ag%2F1", Expand(EndpointAgendamento, "ag/1"))
	assert.Equal(t, "/partner/leads/l1/approve/", Expand(EndpointLeadApprove, "l1"))
}

func TestToParams(t *testing.T) {
	ativo := false
	params, err := toParams(EmpresaFilters{
		Busca:      "sol",
		Ativo:      &ativo,
		Pagination: Pagination{Page: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "ativo=false&busca=sol&page=2", params.Encode())

	params, err = toParams(AgendamentoFilters{})
	require.NoError(t, err)
	assert.Empty(t, params.Encode())
}

func TestEmpresasList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/empresas/", r.URL.Path)
		assert.Equal(t, "busca=clinica&page=1&size=20", r.URL.RawQuery)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"items":[{"id_empresa":"e1","nm_empresa":"Clinica Sol"}],"meta":{"totalItems":1,"totalPages":1,"currentPage":1,"pageSize":20}}`)
	})

	q, err := client.Empresas(EmpresaFilters{Busca: "clinica", Pagination: Pagination{Page: 1, Size: 20}})
	require.NoError(t, err)

	res := q.Load(context.Background())
	require.NoError(t, res.Error)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Clinica Sol", res.Data[0].Nome)
	assert.Equal(t, 20, res.Meta.PageSize)
}

func TestAgendamentosFilters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "emp-1", q.Get("empresa"))
		assert.Equal(t, "confirmado", q.Get("status"))
		assert.Equal(t, "2026-03-01", q.Get("data_inicio"))
		assert.Equal(t, "2026-03-31", q.Get("data_fim"))
		assert.False(t, q.Has("profissional"))
		fmt.Fprint(w, `{"items":[],"meta":{"totalItems":0}}`)
	})

	q, err := client.Agendamentos(AgendamentoFilters{
		EmpresaID:  "emp-1",
		Status:     models.AgendamentoConfirmado,
		DataInicio: "2026-03-01",
		DataFim:    "2026-03-31",
	})
	require.NoError(t, err)

	res := q.Load(context.Background())
	require.NoError(t, res.Error)
	assert.Equal(t, []models.Agendamento{}, res.Data)
}

func TestSingleEntityEmptyID(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	res := client.Empresa("").Load(context.Background())
	assert.Nil(t, res.Data)
	assert.False(t, res.IsLoading)
	assert.Nil(t, client.Agente("").Key())
	assert.Equal(t, int32(0), hits.Load())
}

func TestSingleEntities(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/agendamentos/ag-1":
			fmt.Fprint(w, `{"id_agendamento":"ag-1","ds_status":"agendado"}`)
		case "/profissionais/p-1/":
			fmt.Fprint(w, `{"id_profissional":"p-1","nm_profissional":"Dra. Ana"}`)
		case "/procedimentos/pr-1/":
			fmt.Fprint(w, `{"id_procedimento":"pr-1","vl_preco":350.5}`)
		case "/partner/leads/l-1/":
			fmt.Fprint(w, `{"id_lead":"l-1","ds_status":"pending"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	ag := client.Agendamento("ag-1").Load(ctx)
	require.NoError(t, ag.Error)
	assert.Equal(t, models.AgendamentoAgendado, ag.Data.Status)

	prof := client.Profissional("p-1").Load(ctx)
	require.NoError(t, prof.Error)
	assert.Equal(t, "Dra. Ana", prof.Data.Nome)

	proc := client.Procedimento("pr-1").Load(ctx)
	require.NoError(t, proc.Error)
	assert.Equal(t, 350.5, proc.Data.Preco)

	lead := client.Lead("l-1").Load(ctx)
	require.NoError(t, lead.Error)
	assert.Equal(t, models.LeadPending, lead.Data.Status)
}

func TestCreateThenRevalidate(t *testing.T) {
	var (
		mu       sync.Mutex
		empresas = []string{`{"id_empresa":"e1","nm_empresa":"A"}`}
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			fmt.Fprintf(w, `{"items":[%s],"meta":{"totalItems":%d}}`, strings.Join(empresas, ","), len(empresas))
		case http.MethodPost:
			var body models.EmpresaCreate
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			created := fmt.Sprintf(`{"id_empresa":"e%d","nm_empresa":%q}`, len(empresas)+1, body.Nome)
			empresas = append(empresas, created)
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, created)
		}
	})
	ctx := context.Background()

	list, err := client.Empresas(EmpresaFilters{})
	require.NoError(t, err)
	require.Len(t, list.Load(ctx).Data, 1)

	create := client.CreateEmpresa(swr.OnSuccess(func(*models.Empresa, models.EmpresaCreate) {
		_, _ = list.Mutate(ctx)
	}))
	created, err := create.Trigger(ctx, models.EmpresaCreate{Nome: "B"})
	require.NoError(t, err)
	assert.Equal(t, "e2", created.ID)

	res := list.Result()
	require.Len(t, res.Data, 2)
	assert.Equal(t, "B", res.Data[1].Nome)
	assert.Equal(t, 2, res.Meta.TotalItems)
}

func TestUpdateAndDeleteEmpresa(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			assert.Equal(t, "/empresas/e1/", r.URL.Path)
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"nm_empresa":"Novo Nome"}`, string(body))
			fmt.Fprint(w, `{"id_empresa":"e1","nm_empresa":"Novo Nome"}`)
		case http.MethodDelete:
			assert.Equal(t, "/empresas/e1/", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}
	})
	ctx := context.Background()

	nome := "Novo Nome"
	updated, err := client.UpdateEmpresa("e1").Trigger(ctx, models.EmpresaUpdate{Nome: &nome})
	require.NoError(t, err)
	assert.Equal(t, "Novo Nome", updated.Nome)

	del := client.DeleteEmpresa()
	data, err := del.Trigger(ctx, "e1")
	require.NoError(t, err)
	assert.Nil(t, data)

	_, err = del.Trigger(ctx, "")
	assert.Error(t, err)
}

func TestUpdateAgendamentoStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/agendamentos/ag-1/status", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"ds_status":"cancelado","ds_motivo":"paciente desistiu"}`, string(body))
		fmt.Fprint(w, `{"id_agendamento":"ag-1","ds_status":"cancelado"}`)
	})

	m := client.UpdateAgendamentoStatus()
	data, err := m.Trigger(context.Background(), StatusChange{
		ID: "ag-1",
		AgendamentoStatusUpdate: models.AgendamentoStatusUpdate{
			Status: models.AgendamentoCancelado,
			Motivo: "paciente desistiu",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.AgendamentoCancelado, data.Status)
}

func TestLeadDecisions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		switch r.URL.Path {
		case "/partner/leads/l-1/approve/":
			fmt.Fprint(w, `{"id_lead":"l-1","ds_status":"approved"}`)
		case "/partner/leads/l-2/reject/":
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"ds_motivo":"CNPJ inválido"}`, string(body))
			fmt.Fprint(w, `{"id_lead":"l-2","ds_status":"rejected"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"detail":"Lead não encontrado"}`)
		}
	})
	ctx := context.Background()

	approved, err := client.ApproveLead().Trigger(ctx, LeadAction{ID: "l-1"})
	require.NoError(t, err)
	assert.Equal(t, models.LeadApproved, approved.Status)

	rejected, err := client.RejectLead().Trigger(ctx, LeadAction{
		ID:           "l-2",
		LeadDecision: models.LeadDecision{Motivo: "CNPJ inválido"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.LeadRejected, rejected.Status)

	_, err = client.ApproveLead().Trigger(ctx, LeadAction{ID: "l-9"})
	assert.True(t, apiclient.IsNotFound(err))
}

func TestAgentes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			assert.Equal(t, "/agentes/", r.URL.Path)
			assert.Equal(t, "empresa=emp-1", r.URL.RawQuery)
			fmt.Fprint(w, `{"items":[{"id_agente":"a1","nm_agente":"Recepção","ds_config":{"tools":["agenda"]}}]}`)
		case r.Method == http.MethodPost:
			assert.Equal(t, "/agentes/", r.URL.Path)
			fmt.Fprint(w, `{"id_agente":"a2","nm_agente":"Vendas"}`)
		case r.Method == http.MethodPut:
			assert.Equal(t, "/agentes/a2/", r.URL.Path)
			fmt.Fprint(w, `{"id_agente":"a2","nm_agente":"Vendas","st_ativo":true}`)
		}
	})
	ctx := context.Background()

	q, err := client.Agentes(AgenteFilters{EmpresaID: "emp-1"})
	require.NoError(t, err)
	res := q.Load(ctx)
	require.NoError(t, res.Error)
	require.Len(t, res.Data, 1)
	assert.False(t, res.Data[0].Config.IsNull())

	created, err := client.CreateAgente().Trigger(ctx, models.AgenteCreate{Nome: "Vendas"})
	require.NoError(t, err)
	assert.Equal(t, "a2", created.ID)

	ativo := true
	updated, err := client.UpdateAgente("a2").Trigger(ctx, models.AgenteUpdate{Ativo: &ativo})
	require.NoError(t, err)
	assert.True(t, updated.Ativo)
}

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/agentes/a1/chat/stream", r.URL.Path)
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))

		var req models.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Quais horários livres amanhã?", req.Message)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"content\":\"Temos \"}\n\n")
		fmt.Fprint(w, "data: {\"content\":\"14h e 16h.\"}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client, err := New(Options{
		APIURL: "https://api.doctorq.app/api/v1",
		AIURL:  server.URL,
	})
	require.NoError(t, err)

	var (
		reply    string
		complete bool
	)
	client.Chat(context.Background(), "a1", models.ChatRequest{Message: "Quais horários livres amanhã?"}, apiclient.StreamHandlers{
		OnMessage:  func(m string) { reply += m },
		OnError:    func(err error) { t.Errorf("unexpected error: %v", err) },
		OnComplete: func() { complete = true },
	})

	assert.Equal(t, "Temos 14h e 16h.", reply)
	assert.True(t, complete)
}

func TestStartChatDefaultAssistant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/stream", r.URL.Path)
		fmt.Fprint(w, "data: olá\n\n")
	}))
	defer server.Close()

	client, err := New(Options{APIURL: server.URL})
	require.NoError(t, err)

	var messages []string
	handle := client.StartChat(context.Background(), "", models.ChatRequest{Message: "oi"}, apiclient.StreamHandlers{
		OnMessage: func(m string) { messages = append(messages, m) },
	})
	handle.Wait()

	assert.Equal(t, []string{"olá"}, messages)
}

func TestUploadDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "contrato", r.FormValue("tipo"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "%PDF-1.4", string(content))

		fmt.Fprintf(w, `{"id_arquivo":"f1","nm_arquivo":%q,"nr_tamanho":%d}`, header.Filename, len(content))
	})

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/contrato.pdf", []byte("%PDF-1.4"), 0o644))

	result, err := client.UploadDocument(context.Background(), fs, "/docs/contrato.pdf", map[string]string{"tipo": "contrato"})
	require.NoError(t, err)
	assert.Equal(t, "f1", result.ID)
	assert.Equal(t, "contrato.pdf", result.FileName)
	assert.Equal(t, int64(8), result.Size)
}
