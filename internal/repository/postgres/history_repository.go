// Package postgres adapts the gorm repositories to the pipeline's
// collaborator contracts: session history, the vector index and prompt
// template overrides.
package postgres

import (
	"context"
	"fmt"

	"ai-ragchat-be/internal/mapper"
	"ai-ragchat-be/internal/repository/specification"
	"ai-ragchat-be/internal/repository/unitofwork"
	"ai-ragchat-be/pkg/rag"
	"ai-ragchat-be/pkg/rag/history"
)

// HistoryRepository stores session logs in chat_sessions and chat_messages.
type HistoryRepository struct {
	uowFactory unitofwork.RepositoryFactory
	mapper     *mapper.ChatMapper
}

var (
	_ history.Store   = (*HistoryRepository)(nil)
	_ history.Clearer = (*HistoryRepository)(nil)
)

func NewHistoryRepository(uowFactory unitofwork.RepositoryFactory) *HistoryRepository {
	return &HistoryRepository{
		uowFactory: uowFactory,
		mapper:     mapper.NewChatMapper(),
	}
}

func (r *HistoryRepository) GetOrCreate(ctx context.Context, sessionID string) ([]rag.Message, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FirstOrCreateByKey(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	rows, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: session.Id},
		specification.InSequence{},
	)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	return r.mapper.ChatMessagesToHistory(rows), nil
}

// Append inserts all messages in one transaction. The session row is locked
// for the duration so concurrent writers from other processes queue up
// instead of colliding on seq.
func (r *HistoryRepository) Append(ctx context.Context, sessionID string, messages ...rag.Message) (err error) {
	if len(messages) == 0 {
		return nil
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = uow.Rollback()
		}
	}()

	session, err := uow.ChatSessionRepository().FirstOrCreateByKey(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if _, err = uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: session.Id},
		specification.LockForUpdate{},
	); err != nil {
		return fmt.Errorf("lock session: %w", err)
	}

	next, err := uow.ChatMessageRepository().NextSeq(ctx, session.Id)
	if err != nil {
		return fmt.Errorf("next seq: %w", err)
	}

	rows := r.mapper.HistoryToChatMessages(session.Id, next, messages)
	if err = uow.ChatMessageRepository().CreateBulk(ctx, rows); err != nil {
		return fmt.Errorf("insert messages: %w", err)
	}

	return uow.Commit()
}

func (r *HistoryRepository) Clear(ctx context.Context, sessionID string) (err error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionKey{SessionKey: sessionID})
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = uow.Rollback()
		}
	}()

	if err = uow.ChatMessageRepository().DeleteByChatSessionId(ctx, session.Id); err != nil {
		return err
	}
	if err = uow.ChatSessionRepository().Delete(ctx, session.Id); err != nil {
		return err
	}
	return uow.Commit()
}
