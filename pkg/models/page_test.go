package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantItems []string
		wantMeta  Meta
	}{
		{
			name:      "full envelope",
			input:     `{"items":["a","b"],"meta":{"totalItems":2,"totalPages":1,"currentPage":1,"pageSize":10}}`,
			wantItems: []string{"a", "b"},
			wantMeta:  Meta{TotalItems: 2, TotalPages: 1, CurrentPage: 1, PageSize: 10},
		},
		{
			name:      "missing items",
			input:     `{"meta":{"totalItems":0}}`,
			wantItems: []string{},
		},
		{
			name:      "null items",
			input:     `{"items":null}`,
			wantItems: []string{},
		},
		{
			name:      "empty object",
			input:     `{}`,
			wantItems: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var page Page[string]
			require.NoError(t, json.Unmarshal([]byte(tt.input), &page))

			assert.NotNil(t, page.Items)
			assert.Equal(t, tt.wantItems, page.Items)
			assert.Equal(t, tt.wantMeta, page.Meta)
		})
	}
}

func TestPageUnmarshalJSONInvalid(t *testing.T) {
	var page Page[Empresa]
	err := json.Unmarshal([]byte(`{"items":"nope"}`), &page)
	assert.Error(t, err)
}

func TestPageHasNext(t *testing.T) {
	var nilPage *Page[int]
	assert.False(t, nilPage.HasNext())
	assert.Equal(t, 0, nilPage.Len())

	page := &Page[int]{Items: []int{1, 2}, Meta: Meta{CurrentPage: 1, TotalPages: 3}}
	assert.True(t, page.HasNext())
	assert.Equal(t, 2, page.Len())

	page.Meta.CurrentPage = 3
	assert.False(t, page.HasNext())
}

func TestEntityDecoding(t *testing.T) {
	body := `{
		"items": [{
			"id_agendamento": "ag-1",
			"id_empresa": "emp-1",
			"id_profissional": "prof-1",
			"dt_agendamento": "2026-03-10T14:00:00Z",
			"ds_status": "confirmado"
		}],
		"meta": {"totalItems": 1, "totalPages": 1, "currentPage": 1, "pageSize": 20}
	}`

	var page Page[Agendamento]
	require.NoError(t, json.Unmarshal([]byte(body), &page))
	require.Len(t, page.Items, 1)

	ag := page.Items[0]
	assert.Equal(t, "ag-1", ag.ID)
	assert.Equal(t, AgendamentoConfirmado, ag.Status)
	assert.True(t, ag.Status.Valid())
	assert.Equal(t, 14, ag.DataHora.Hour())
}

func TestAgendamentoStatusValid(t *testing.T) {
	assert.True(t, AgendamentoCancelado.Valid())
	assert.False(t, AgendamentoStatus("pendente").Valid())
}

func TestJSON(t *testing.T) {
	agente := Agente{ID: "a1", Nome: "Recepção"}
	assert.True(t, agente.Config.IsNull())

	out, err := json.Marshal(agente)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "ds_config")

	var decoded Agente
	require.NoError(t, json.Unmarshal([]byte(`{"id_agente":"a1","ds_config":{"tools":["agenda"]}}`), &decoded))
	assert.False(t, decoded.Config.IsNull())

	var cfg struct {
		Tools []string `json:"tools"`
	}
	require.NoError(t, decoded.Config.Decode(&cfg))
	assert.Equal(t, []string{"agenda"}, cfg.Tools)
}
