package llm

import "context"

type contextKey string

const sessionIDKey contextKey = "sessionID"

// WithSessionID tags ctx with the conversation a call belongs to. Providers
// that support end-user attribution forward it.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionID returns the id set by WithSessionID, or "".
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}
