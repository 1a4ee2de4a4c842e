package dto

type ChatRequest struct {
	Input string `json:"input" validate:"required,max=8000"`
}

type ChatResponse struct {
	Reply    string `json:"reply"`
	Question string `json:"question"` // Standalone query the answer was retrieved for
}

type HistoryMessageResponse struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	WsTypeChat  = "chat"
	WsTypeWatch = "watch"
	WsTypeReply = "reply"
	WsTypeTurn  = "turn"
	WsTypeError = "error"
)

// WsChatRequest is one inbound WebSocket frame. Type "chat" (the default)
// runs a turn; "watch" subscribes to turns completed on the session by any
// connection.
type WsChatRequest struct {
	Type      string `json:"type" validate:"omitempty,oneof=chat watch"`
	SessionId string `json:"session_id" validate:"required,max=200"`
	Input     string `json:"input" validate:"required_unless=Type watch,max=8000"`
}

// WsChatResponse is one outbound WebSocket frame.
type WsChatResponse struct {
	Type       string `json:"type"`
	SessionId  string `json:"session_id,omitempty"`
	Reply      string `json:"reply,omitempty"`
	Question   string `json:"question,omitempty"`
	HistoryLen int    `json:"history_len,omitempty"`
	Error      string `json:"error,omitempty"`
}
