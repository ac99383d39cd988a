package doctorq

import (
	"context"
	"net/http"

	"github.com/doctorq/doctorq-sdk/pkg/apiclient"
	"github.com/doctorq/doctorq-sdk/pkg/models"
	"github.com/doctorq/doctorq-sdk/pkg/swr"
)

// Agentes lists AI agents.
func (c *Client) Agentes(filters AgenteFilters, opts ...swr.Option) (*swr.Query[models.Agente], error) {
	params, err := toParams(filters)
	if err != nil {
		return nil, err
	}
	return swr.NewQuery[models.Agente](c.Cache, c.API, EndpointAgentes, params, opts...), nil
}

// Agente reads one AI agent.
func (c *Client) Agente(id string, opts ...swr.Option) *swr.Single[models.Agente] {
	return swr.NewSingle[models.Agente](c.Cache, c.API, Expand(EndpointAgente, id), nil, withID(id, opts)...)
}

// CreateAgente creates an AI agent.
func (c *Client) CreateAgente(opts ...swr.MutationOption[models.AgenteCreate, models.Agente]) *swr.Mutation[models.AgenteCreate, models.Agente] {
	return swr.NewMutation(c.API, http.MethodPost, swr.StaticPath[models.AgenteCreate](EndpointAgentes), opts...)
}

// UpdateAgente changes the AI agent id.
func (c *Client) UpdateAgente(id string, opts ...swr.MutationOption[models.AgenteUpdate, models.Agente]) *swr.Mutation[models.AgenteUpdate, models.Agente] {
	return swr.NewMutation(c.API, http.MethodPut, swr.StaticPath[models.AgenteUpdate](Expand(EndpointAgente, id)), opts...)
}

// Chat streams the reply to req from agent agentID, or from the default
// assistant when agentID is empty. It blocks until the stream ends and
// reports failures through h.OnError.
func (c *Client) Chat(ctx context.Context, agentID string, req models.ChatRequest, h apiclient.StreamHandlers) {
	c.AI.Stream(ctx, chatEndpoint(agentID), req, h)
}

// StartChat runs Chat in the background.
func (c *Client) StartChat(ctx context.Context, agentID string, req models.ChatRequest, h apiclient.StreamHandlers) *apiclient.StreamHandle {
	return c.AI.StartStream(ctx, chatEndpoint(agentID), req, h)
}

func chatEndpoint(agentID string) string {
	if agentID == "" {
		return EndpointChatStream
	}
	return Expand(EndpointAgenteChatStream, agentID)
}
