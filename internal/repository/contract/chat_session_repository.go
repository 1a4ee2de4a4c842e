package contract

import (
	"context"

	"ai-ragchat-be/internal/entity"
	"ai-ragchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	// FirstOrCreateByKey returns the live session for key, inserting it if absent.
	FirstOrCreateByKey(ctx context.Context, key string) (*entity.ChatSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
