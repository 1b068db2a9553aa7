package openai

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hupe1980/foundryrelay/foundry"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"
)

type conversationItem struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

type conversationItemsParams struct {
	Items []conversationItem `json:"items"`
}

type conversation struct {
	ID     string `json:"id"`
	Object string `json:"object"`
}

type conversationItemList struct {
	Object string `json:"object"`
	Data   []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"data"`
}

type createResponseParams struct {
	Conversation string                 `json:"conversation"`
	Agent        foundry.AgentReference `json:"agent"`
}

// Client implements foundry.Conversations with the OpenAI SDK's generic
// request methods, since the conversation and agent fields are not part of
// the SDK's typed params.
type Client struct {
	client *openai.Client
}

var _ foundry.Conversations = (*Client)(nil)

// NewClient wraps an existing SDK client.
func NewClient(client *openai.Client) *Client {
	return &Client{client: client}
}

// CreateConversation creates an empty conversation.
func (c *Client) CreateConversation(ctx context.Context) (string, error) {
	var conv conversation
	params := conversationItemsParams{Items: []conversationItem{}}
	if err := c.client.Post(ctx, "conversations", params, &conv); err != nil {
		return "", fmt.Errorf("openai create conversation: %w", err)
	}
	return conv.ID, nil
}

// AppendUserMessage adds text as a user message item.
func (c *Client) AppendUserMessage(ctx context.Context, conversationID, text string) error {
	var items conversationItemList
	params := conversationItemsParams{Items: []conversationItem{{Type: "message", Role: "user", Content: text}}}
	path := "conversations/" + url.PathEscape(conversationID) + "/items"
	if err := c.client.Post(ctx, path, params, &items); err != nil {
		return fmt.Errorf("openai append conversation item: %w", err)
	}
	return nil
}

// CreateResponse asks agent to answer the conversation and returns the
// concatenated output text (empty when the agent produced none).
func (c *Client) CreateResponse(ctx context.Context, conversationID string, agent foundry.AgentReference) (string, error) {
	var resp responses.Response
	params := createResponseParams{Conversation: conversationID, Agent: agent}
	if err := c.client.Post(ctx, "responses", params, &resp); err != nil {
		return "", fmt.Errorf("openai create response: %w", err)
	}
	return resp.OutputText(), nil
}
