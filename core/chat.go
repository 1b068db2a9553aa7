package core

import "context"

// Role identifies the author of a ChatMessage.
type Role string

const (
	// RoleUser marks messages typed by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks replies produced by an agent.
	RoleAssistant Role = "assistant"
)

// ChatMessage is a single turn exchanged between the host application and a
// chat agent. Values are immutable once constructed.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// AssistantMessage builds an assistant ChatMessage with the given content.
func AssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleAssistant, Content: content}
}

// ChatAgent is the contract shared by all chat adapters of the host
// application.
//
// ProcessMessage never fails: adapters translate every error into an
// assistant reply the user can read. Cleanup releases whatever the adapter
// holds; adapters without local resources return nil.
type ChatAgent interface {
	ProcessMessage(ctx context.Context, message string) ChatMessage
	Cleanup(ctx context.Context) error
}
