package nats

import (
	"encoding/json"
	"testing"
	"time"

	"ai-ragchat-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "ragchat.events.chat.turn_completed", Subject(events.TypeTurnCompleted))
}

func TestEncodeDecodeKeepsTypeAndTime(t *testing.T) {
	event := events.TurnCompleted("s1", "pasta recipe", 4, 1500*time.Millisecond)

	data, err := encode(event)
	require.NoError(t, err)

	got, err := decode(Subject(event.EventType()), data)
	require.NoError(t, err)

	assert.Equal(t, events.TypeTurnCompleted, got.EventType())
	assert.True(t, event.Timestamp().Equal(got.Timestamp()))
	assert.Equal(t, "s1", got.Payload()["session_id"])
	assert.Equal(t, "pasta recipe", got.Payload()["question"])
}

func TestDecodeFallsBackToSubject(t *testing.T) {
	data, _ := json.Marshal(map[string]interface{}{"data": map[string]interface{}{"k": "v"}})

	got, err := decode("ragchat.events.document.indexed", data)

	require.NoError(t, err)
	assert.Equal(t, "document.indexed", got.EventType())
	assert.False(t, got.Timestamp().IsZero())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := decode("ragchat.events.x", []byte("not json"))
	assert.Error(t, err)
}
