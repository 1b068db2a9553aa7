package foundry

import "context"

// AgentReferenceType is the type tag the service expects on agent references.
const AgentReferenceType = "agent_reference"

// AgentReference names the server-managed agent that should generate a response.
type AgentReference struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// NewAgentReference returns a reference to the named agent.
func NewAgentReference(name string) AgentReference {
	return AgentReference{Name: name, Type: AgentReferenceType}
}

// Connector creates a client for a Foundry project and hands back its
// conversation operations.
type Connector interface {
	Connect(ctx context.Context, endpoint string) (Conversations, error)
}

// ConnectorFunc adapts a plain function to the Connector interface.
type ConnectorFunc func(ctx context.Context, endpoint string) (Conversations, error)

// Connect implements Connector.
func (f ConnectorFunc) Connect(ctx context.Context, endpoint string) (Conversations, error) {
	return f(ctx, endpoint)
}

// Conversations is the subset of the remote conversation API used by TaskAgent.
type Conversations interface {
	// CreateConversation creates an empty conversation and returns its id.
	CreateConversation(ctx context.Context) (string, error)
	// AppendUserMessage adds a user message item to the conversation.
	AppendUserMessage(ctx context.Context, conversationID, text string) error
	// CreateResponse asks agent to respond to the conversation and returns the
	// generated text, which may be empty.
	CreateResponse(ctx context.Context, conversationID string, agent AgentReference) (string, error)
}
