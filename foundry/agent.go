package foundry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/foundryrelay/core"
	"github.com/hupe1980/foundryrelay/logging"
	"golang.org/x/sync/singleflight"
)

// Replies returned instead of an error when a message cannot be relayed.
const (
	FallbackNotConfigured = "Foundry agent is not properly configured. Please check your environment variables."
	FallbackNoResponse    = "I received your message but couldn't generate a response."
	FallbackError         = "Sorry, I encountered an error processing your request."
)

// state tracks the session lifecycle. Transitions only move forward:
// uninitialized -> initializing -> ready | failed.
type state int

const (
	stateUninitialized state = iota
	stateInitializing
	stateReady
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateInitializing:
		return "initializing"
	case stateReady:
		return "ready"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const setupKey = "setup"

// Options configures a TaskAgent.
type Options struct {
	// Logger receives lifecycle and failure logs (defaults to NoOpLogger).
	Logger logging.Logger
}

// TaskAgent relays chat messages to an agent hosted by the Foundry Agent
// Service.
//
// The remote session (client, agent name, conversation) is created lazily on
// the first ProcessMessage call. Concurrent first calls share one setup
// attempt. A failed setup is not retried for the lifetime of the TaskAgent;
// every later call answers with FallbackNotConfigured.
//
// All ready calls share one remote conversation, so the order of turns inside
// it is decided by the service when calls overlap.
type TaskAgent struct {
	cfg       Config
	tasks     core.TaskService
	connector Connector
	logger    logging.Logger

	setupGroup singleflight.Group

	mu             sync.RWMutex
	state          state
	conversations  Conversations
	agentName      string
	conversationID string
}

var _ core.ChatAgent = (*TaskAgent)(nil)

// NewTaskAgent creates a TaskAgent. No network call is made until the first
// message is processed.
func NewTaskAgent(cfg Config, tasks core.TaskService, connector Connector, optFns ...func(o *Options)) *TaskAgent {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &TaskAgent{
		cfg:       cfg,
		tasks:     tasks,
		connector: connector,
		logger:    opts.Logger,
	}
}

// Tasks returns the task service the agent was constructed with.
func (a *TaskAgent) Tasks() core.TaskService { return a.tasks }

// Ready reports whether the remote session is established. It never triggers setup.
func (a *TaskAgent) Ready() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.readyLocked()
}

// readyLocked requires all session fields; partial state counts as not ready.
func (a *TaskAgent) readyLocked() bool {
	return a.state == stateReady &&
		a.conversations != nil &&
		a.agentName != "" &&
		a.conversationID != ""
}

func (a *TaskAgent) currentState() state {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// ensureReady runs setup at most once and reports whether the session is usable.
func (a *TaskAgent) ensureReady(ctx context.Context) bool {
	switch a.currentState() {
	case stateReady:
		return a.Ready()
	case stateFailed:
		return false
	}

	// Setup outlives any single caller: a cancelled request must not leave
	// the shared session permanently failed.
	setupCtx := context.WithoutCancel(ctx)
	_, _, _ = a.setupGroup.Do(setupKey, func() (any, error) {
		a.mu.Lock()
		if a.state != stateUninitialized {
			a.mu.Unlock()
			return nil, nil
		}
		a.state = stateInitializing
		a.mu.Unlock()

		a.setup(setupCtx)
		return nil, nil
	})

	return a.Ready()
}

// setup connects to the project and opens the conversation used by all later
// messages. Failures are logged and leave the agent permanently not ready.
func (a *TaskAgent) setup(ctx context.Context) {
	if missing := a.cfg.Missing(); len(missing) > 0 {
		a.logger.Warn("foundry agent configuration missing", "missing", missing)
		a.fail()
		return
	}

	conversations, conversationID, err := a.openSession(ctx)
	if err != nil {
		a.logger.Error("error initializing foundry agent", "endpoint", a.cfg.Endpoint, "agent", a.cfg.AgentName, "error", err)
		a.fail()
		return
	}

	a.mu.Lock()
	a.conversations = conversations
	a.agentName = a.cfg.AgentName
	a.conversationID = conversationID
	a.state = stateReady
	a.mu.Unlock()

	a.logger.Info("foundry agent initialized", "agent", a.cfg.AgentName, "conversation_id", conversationID)
}

func (a *TaskAgent) openSession(ctx context.Context) (Conversations, string, error) {
	if a.connector == nil {
		return nil, "", errors.New("no connector configured")
	}
	conversations, err := a.connector.Connect(ctx, a.cfg.Endpoint)
	if err != nil {
		return nil, "", fmt.Errorf("connect: %w", err)
	}
	if conversations == nil {
		return nil, "", errors.New("connect: connector returned no client")
	}
	conversationID, err := conversations.CreateConversation(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("create conversation: %w", err)
	}
	if conversationID == "" {
		return nil, "", errors.New("create conversation: empty conversation id")
	}
	return conversations, conversationID, nil
}

func (a *TaskAgent) fail() {
	a.mu.Lock()
	a.state = stateFailed
	a.mu.Unlock()
}

func (a *TaskAgent) session() (Conversations, string, string) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.conversations, a.agentName, a.conversationID
}

// ProcessMessage sends message to the remote agent and returns its reply.
//
// It never returns an error: configuration problems, relay failures and empty
// generations each map to a fixed assistant reply (FallbackNotConfigured,
// FallbackError, FallbackNoResponse).
func (a *TaskAgent) ProcessMessage(ctx context.Context, message string) core.ChatMessage {
	if !a.ensureReady(ctx) {
		return core.AssistantMessage(FallbackNotConfigured)
	}
	conversations, agentName, conversationID := a.session()

	if err := conversations.AppendUserMessage(ctx, conversationID, message); err != nil {
		a.logger.Error("error processing message with foundry agent", "conversation_id", conversationID, "step", "append", "error", err)
		return core.AssistantMessage(FallbackError)
	}

	text, err := conversations.CreateResponse(ctx, conversationID, NewAgentReference(agentName))
	if err != nil {
		a.logger.Error("error processing message with foundry agent", "conversation_id", conversationID, "step", "respond", "error", err)
		return core.AssistantMessage(FallbackError)
	}
	if text == "" {
		a.logger.Debug("foundry agent returned no text", "conversation_id", conversationID)
		return core.AssistantMessage(FallbackNoResponse)
	}
	return core.AssistantMessage(text)
}

// Cleanup is a no-op: agents and conversations are managed in the Foundry
// portal, and the client holds no local resources.
func (a *TaskAgent) Cleanup(_ context.Context) error {
	a.logger.Info("foundry agent cleanup completed", "state", a.currentState().String())
	return nil
}
