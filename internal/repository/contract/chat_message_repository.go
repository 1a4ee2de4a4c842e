package contract

import (
	"context"

	"ai-ragchat-be/internal/entity"
	"ai-ragchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	CreateBulk(ctx context.Context, messages []*entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	// NextSeq returns the sequence number the next appended message must use.
	NextSeq(ctx context.Context, chatSessionId uuid.UUID) (int, error)
	DeleteByChatSessionId(ctx context.Context, chatSessionId uuid.UUID) error
}
