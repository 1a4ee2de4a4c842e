package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Seq           int
	Role          string
	Content       string
	CreatedAt     time.Time
}
