package unitofwork

import (
	"context"

	"ai-ragchat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	PassageRepository() contract.PassageRepository
	PromptTemplateRepository() contract.PromptTemplateRepository
}
