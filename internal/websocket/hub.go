package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"ai-ragchat-be/internal/dto"
	"ai-ragchat-be/internal/pkg/logger"
	"ai-ragchat-be/pkg/events"
)

const hubModule = "Hub"

// Hub tracks connected chat clients and the sessions they watch. It is an
// events.Publisher so turn events, local or from the bus, reach watchers.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Watchers map: session key -> client -> the session id the client used
	watchers map[string]map[*Client]string

	register   chan *Client
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	logger logger.ILogger
}

var _ events.Publisher = (*Hub)(nil)

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		watchers:   make(map[string]map[*Client]string),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     log,
	}
}

// Run serves register and unregister requests until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info(hubModule, "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if h.clients[client] {
				delete(h.clients, client)
				for key, set := range h.watchers {
					delete(set, client)
					if len(set) == 0 {
						delete(h.watchers, key)
					}
				}
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Info(hubModule, "Client unregistered", map[string]interface{}{"user_id": client.UserID})
		}
	}
}

// Watch subscribes client to turns on the session stored under key.
func (h *Hub) Watch(client *Client, key, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[client] {
		return
	}
	set, ok := h.watchers[key]
	if !ok {
		set = make(map[*Client]string)
		h.watchers[key] = set
	}
	set[client] = sessionID
}

// SendTo delivers a frame to one client if it is still registered.
func (h *Hub) SendTo(client *Client, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.clients[client] {
		client.trySend(data)
	}
}

// WatcherCount reports how many clients watch key.
func (h *Hub) WatcherCount(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers[key])
}

// Publish delivers turn-completed events to the session's watchers. Other
// event types are ignored.
func (h *Hub) Publish(_ context.Context, event events.Event) error {
	if event.EventType() != events.TypeTurnCompleted {
		return nil
	}
	key, _ := event.Payload()["session_id"].(string)
	if key == "" {
		return nil
	}
	question, _ := event.Payload()["question"].(string)
	historyLen := toInt(event.Payload()["history_len"])

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client, sessionID := range h.watchers[key] {
		data, err := json.Marshal(dto.WsChatResponse{
			Type:       dto.WsTypeTurn,
			SessionId:  sessionID,
			Question:   question,
			HistoryLen: historyLen,
		})
		if err != nil {
			return err
		}
		client.trySend(data)
	}
	return nil
}

// JSON decoding turns numbers into float64.
func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
