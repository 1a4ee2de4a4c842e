package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-ragchat-be/internal/dto"
	"ai-ragchat-be/internal/pkg/logger"
	"ai-ragchat-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func newClient(t *testing.T, hub *Hub, userID string) *Client {
	t.Helper()
	c := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 4), logger: logger.NewNop()}
	hub.register <- c
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return hub.clients[c]
	}, time.Second, time.Millisecond)
	return c
}

func receive(t *testing.T, c *Client) dto.WsChatResponse {
	t.Helper()
	select {
	case data := <-c.Send:
		var frame dto.WsChatResponse
		require.NoError(t, json.Unmarshal(data, &frame))
		return frame
	case <-time.After(time.Second):
		t.Fatal("no frame received")
		return dto.WsChatResponse{}
	}
}

func TestPublishReachesWatchers(t *testing.T) {
	hub := startHub(t)
	watcher := newClient(t, hub, "u1")
	bystander := newClient(t, hub, "u2")

	hub.Watch(watcher, "u1:s1", "s1")
	require.Equal(t, 1, hub.WatcherCount("u1:s1"))

	err := hub.Publish(context.Background(), events.TurnCompleted("u1:s1", "pasta recipe", 4, time.Second))
	require.NoError(t, err)

	frame := receive(t, watcher)
	assert.Equal(t, dto.WsTypeTurn, frame.Type)
	assert.Equal(t, "s1", frame.SessionId)
	assert.Equal(t, "pasta recipe", frame.Question)
	assert.Equal(t, 4, frame.HistoryLen)
	assert.Empty(t, bystander.Send)
}

func TestPublishIgnoresOtherEvents(t *testing.T) {
	hub := startHub(t)
	watcher := newClient(t, hub, "")
	hub.Watch(watcher, "s1", "s1")

	require.NoError(t, hub.Publish(context.Background(), events.DocumentIndexed("doc", 3)))

	assert.Empty(t, watcher.Send)
}

func TestPublishDecodedNumbers(t *testing.T) {
	hub := startHub(t)
	watcher := newClient(t, hub, "")
	hub.Watch(watcher, "s1", "s1")

	event := events.BaseEvent{
		Type: events.TypeTurnCompleted,
		Data: map[string]interface{}{"session_id": "s1", "history_len": float64(6)},
	}
	require.NoError(t, hub.Publish(context.Background(), event))

	assert.Equal(t, 6, receive(t, watcher).HistoryLen)
}

func TestUnregisterDropsWatches(t *testing.T) {
	hub := startHub(t)
	watcher := newClient(t, hub, "")
	hub.Watch(watcher, "s1", "s1")

	hub.unregister <- watcher

	assert.Eventually(t, func() bool { return hub.WatcherCount("s1") == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-watcher.Send
	assert.False(t, open)

	// Sending to a gone client is a no-op.
	hub.SendTo(watcher, []byte("x"))
}

func TestFullBufferDropsFrames(t *testing.T) {
	hub := startHub(t)
	watcher := newClient(t, hub, "")
	hub.Watch(watcher, "s1", "s1")

	for i := 0; i < 10; i++ {
		require.NoError(t, hub.Publish(context.Background(), events.TurnCompleted("s1", "q", 2, 0)))
	}

	assert.Len(t, watcher.Send, cap(watcher.Send))
}
