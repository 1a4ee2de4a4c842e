package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage rows are append-only; Seq orders them within a session.
type ChatMessage struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_messages_session_seq,priority:1"`
	Seq           int       `gorm:"not null;uniqueIndex:idx_chat_messages_session_seq,priority:2"`
	Role          string    `gorm:"type:varchar(50);not null"`
	Content       string    `gorm:"type:text;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
