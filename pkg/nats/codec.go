package nats

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-ragchat-be/pkg/events"
)

const (
	StreamName    = "RAGCHAT_EVENTS"
	SubjectPrefix = "ragchat.events"
)

// Subject returns the subject an event type is published on.
func Subject(eventType string) string {
	return SubjectPrefix + "." + eventType
}

type envelope struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data"`
}

func encode(event events.Event) ([]byte, error) {
	return json.Marshal(envelope{
		Type:       event.EventType(),
		OccurredAt: event.Timestamp(),
		Data:       event.Payload(),
	})
}

// decode falls back to the subject for the type when the envelope lacks one.
func decode(subject string, data []byte) (events.BaseEvent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return events.BaseEvent{}, fmt.Errorf("decode event on %s: %w", subject, err)
	}
	if env.Type == "" {
		env.Type = strings.TrimPrefix(subject, SubjectPrefix+".")
	}
	if env.OccurredAt.IsZero() {
		env.OccurredAt = time.Now().UTC()
	}
	return events.BaseEvent{Type: env.Type, Data: env.Data, OccurredAt: env.OccurredAt}, nil
}
