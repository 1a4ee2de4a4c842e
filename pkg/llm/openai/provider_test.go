package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-ragchat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionBody = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "gpt-3.5-turbo",
	"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Aglio e Olio"}}]
}`

func newTestServer(t *testing.T, bodies chan<- map[string]interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies <- body
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChatForwardsSessionIDAsUser(t *testing.T) {
	bodies := make(chan map[string]interface{}, 1)
	srv := newTestServer(t, bodies)
	p := NewOpenAIProvider("test-key", srv.URL+"/", "")

	ctx := llm.WithSessionID(context.Background(), "u1:s1")
	out, err := p.Chat(ctx, []llm.Message{
		llm.SystemMessage("answer from context"),
		llm.UserMessage("pasta?"),
	}, llm.WithTemperature(0.1))

	require.NoError(t, err)
	assert.Equal(t, "Aglio e Olio", out)

	body := <-bodies
	assert.Equal(t, "u1:s1", body["user"])
	assert.Equal(t, DefaultModel, body["model"])
	assert.InDelta(t, 0.1, body["temperature"], 1e-9)
	messages, ok := body["messages"].([]interface{})
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestChatWithoutSessionOmitsUser(t *testing.T) {
	bodies := make(chan map[string]interface{}, 1)
	srv := newTestServer(t, bodies)
	p := NewOpenAIProvider("test-key", srv.URL+"/", "gpt-4o-mini")

	_, err := p.Generate(context.Background(), "hi")

	require.NoError(t, err)
	body := <-bodies
	assert.NotContains(t, body, "user")
	assert.NotContains(t, body, "temperature")
	assert.Equal(t, "gpt-4o-mini", body["model"])
}
