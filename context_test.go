package proofai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessorsWithoutContext(t *testing.T) {
	Init(Context{})

	assert.NotNil(t, EnvVars())
	assert.Empty(t, EnvVars())
	assert.NotNil(t, UserVars())
	assert.Empty(t, UserVars())
	assert.NotNil(t, ChatHistory())
	assert.Empty(t, ChatHistory())
}

func TestInitAndAccessors(t *testing.T) {
	Init(Context{
		EnvVars:  map[string]string{"MODEL": "gpt"},
		UserVars: map[string]any{"threshold": 0.5},
		ChatHistory: []Message{
			{Role: "user", Content: "hello"},
			{Role: "assistant", Content: "hi"},
		},
	})

	assert.Equal(t, map[string]string{"MODEL": "gpt"}, EnvVars())
	assert.Equal(t, map[string]any{"threshold": 0.5}, UserVars())

	history := ChatHistory()
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "hi", history[1].Content)
}

func TestAccessorsReturnCopies(t *testing.T) {
	Init(Context{
		EnvVars:     map[string]string{"KEY": "original"},
		ChatHistory: []Message{{Role: "user", Content: "original"}},
	})

	EnvVars()["KEY"] = "mutated"
	ChatHistory()[0].Content = "mutated"

	assert.Equal(t, "original", EnvVars()["KEY"])
	assert.Equal(t, "original", ChatHistory()[0].Content)
}

func TestInitFromJSON(t *testing.T) {
	payload := `{
		"env_vars": {"REGION": "eu"},
		"user_vars": {"debug": true},
		"chat_history": [{"role": "user", "content": "ping"}]
	}`
	require.NoError(t, InitFromJSON([]byte(payload)))

	assert.Equal(t, "eu", EnvVars()["REGION"])
	assert.Equal(t, true, UserVars()["debug"])
	require.Len(t, ChatHistory(), 1)
	assert.Equal(t, "ping", ChatHistory()[0].Content)
}

func TestInitFromJSONRejectsGarbage(t *testing.T) {
	err := InitFromJSON([]byte("not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding runtime context")
}

func TestSendMessageEnvelope(t *testing.T) {
	var out bytes.Buffer
	SetOutput(&out)
	defer SetOutput(os.Stdout)

	require.NoError(t, SendMessage("hello there"))
	assert.Equal(t, `{"type":"message","content":"hello there"}`+"\n", out.String())
}

func TestCallAgentEnvelope(t *testing.T) {
	var out bytes.Buffer
	SetOutput(&out)
	defer SetOutput(os.Stdout)

	require.NoError(t, CallAgent("agent-7", map[string]any{"query": "weather"}))
	assert.Equal(t,
		`{"type":"call_agent","agent_id":"agent-7","input":{"query":"weather"}}`+"\n",
		out.String())
}

func TestConcurrentEmitKeepsLinesWhole(t *testing.T) {
	var out bytes.Buffer
	SetOutput(&out)
	defer SetOutput(os.Stdout)
	Init(Context{EnvVars: map[string]string{"A": "1"}})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = SendMessage(fmt.Sprintf("message %d", n))
			_ = EnvVars()["A"]
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 20)
	for _, line := range lines {
		var envelope struct {
			Type    string `json:"type"`
			Content string `json:"content"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &envelope))
		assert.Equal(t, "message", envelope.Type)
	}
}
