// Package history defines the session history contract used by the pipeline,
// the per-session lock that serializes turns, and prompt-time windowing.
package history

import (
	"context"

	"ai-ragchat-be/pkg/rag"
)

// Store maps a session id to its ordered message log.
//
// GetOrCreate returns a snapshot of the log, creating an empty one for an
// unseen id. Append writes all messages or none. Implementations must be safe
// for concurrent use across sessions; turns within one session are serialized
// by the caller.
type Store interface {
	GetOrCreate(ctx context.Context, sessionID string) ([]rag.Message, error)
	Append(ctx context.Context, sessionID string, messages ...rag.Message) error
}

// Clearer is implemented by stores that can drop a session on request.
type Clearer interface {
	Clear(ctx context.Context, sessionID string) error
}

// Clone returns an independent copy of a log.
func Clone(messages []rag.Message) []rag.Message {
	if messages == nil {
		return []rag.Message{}
	}
	out := make([]rag.Message, len(messages))
	copy(out, messages)
	return out
}
