package proofai

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// Message is one entry of the conversation history the platform provides.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Context is the runtime state the platform injects into an agent process.
type Context struct {
	EnvVars     map[string]string `json:"env_vars"`
	UserVars    map[string]any    `json:"user_vars"`
	ChatHistory []Message         `json:"chat_history"`
}

var (
	mu      sync.RWMutex
	current Context
	output  io.Writer = os.Stdout
)

// Init installs the platform-provided runtime context. The platform calls
// it once before the agent's entry point; calling it again replaces the
// context wholesale.
func Init(ctx Context) {
	mu.Lock()
	defer mu.Unlock()
	current = ctx
}

// InitFromJSON decodes a JSON-encoded context and installs it.
func InitFromJSON(data []byte) error {
	var ctx Context
	if err := json.Unmarshal(data, &ctx); err != nil {
		return fmt.Errorf("decoding runtime context: %w", err)
	}
	Init(ctx)
	return nil
}

// SetOutput redirects envelope emission, which defaults to os.Stdout.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// EnvVars returns the environment variables of the runtime context. The
// returned map is a copy and never nil.
func EnvVars() map[string]string {
	mu.RLock()
	defer mu.RUnlock()

	vars := make(map[string]string, len(current.EnvVars))
	for k, v := range current.EnvVars {
		vars[k] = v
	}
	return vars
}

// UserVars returns the user-defined variables of the runtime context. The
// returned map is a copy and never nil.
func UserVars() map[string]any {
	mu.RLock()
	defer mu.RUnlock()

	vars := make(map[string]any, len(current.UserVars))
	for k, v := range current.UserVars {
		vars[k] = v
	}
	return vars
}

// ChatHistory returns the conversation so far, oldest first. The returned
// slice is a copy and never nil.
func ChatHistory() []Message {
	mu.RLock()
	defer mu.RUnlock()

	history := make([]Message, len(current.ChatHistory))
	copy(history, current.ChatHistory)
	return history
}

// SendMessage emits a message envelope for the platform to deliver to the
// user.
func SendMessage(content string) error {
	return emit(struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	}{"message", content})
}

// CallAgent emits an invocation envelope for another agent. The call is
// fire-and-forget: the reply surfaces through the chat history on a later
// turn, not as a return value.
func CallAgent(agentID string, input any) error {
	return emit(struct {
		Type    string `json:"type"`
		AgentID string `json:"agent_id"`
		Input   any    `json:"input"`
	}{"call_agent", agentID, input})
}

// emit writes one JSON line under the package lock so concurrent goroutines
// interleave whole lines only.
func emit(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	_, err = output.Write(append(data, '\n'))
	return err
}
