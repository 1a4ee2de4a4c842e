package events

import (
	"context"
	"time"
)

const TypeTurnCompleted = "chat.turn_completed"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "chat.turn_completed").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher delivers events to a bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// BaseEvent is a plain Event value.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// TurnCompleted is emitted after a turn has been recorded in history.
func TurnCompleted(sessionID, question string, historyLen int, elapsed time.Duration) BaseEvent {
	return BaseEvent{
		Type: TypeTurnCompleted,
		Data: map[string]interface{}{
			"session_id":  sessionID,
			"question":    question,
			"history_len": historyLen,
			"elapsed_ms":  elapsed.Milliseconds(),
		},
		OccurredAt: time.Now().UTC(),
	}
}

const TypeDocumentIndexed = "document.indexed"

// DocumentIndexed is emitted after a document's passages were replaced.
func DocumentIndexed(source string, chunks int) BaseEvent {
	return BaseEvent{
		Type: TypeDocumentIndexed,
		Data: map[string]interface{}{
			"source": source,
			"chunks": chunks,
		},
		OccurredAt: time.Now().UTC(),
	}
}
