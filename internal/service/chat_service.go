package service

import (
	"context"
	"errors"

	"ai-ragchat-be/internal/dto"
	"ai-ragchat-be/pkg/rag/executor"
	"ai-ragchat-be/pkg/rag/history"
)

var ErrClearUnsupported = errors.New("history backend cannot clear sessions")

type IChatService interface {
	Chat(ctx context.Context, userID, sessionID string, request *dto.ChatRequest) (*dto.ChatResponse, error)
	History(ctx context.Context, userID, sessionID string) ([]*dto.HistoryMessageResponse, error)
	Clear(ctx context.Context, userID, sessionID string) error
}

type chatService struct {
	pipeline *executor.Pipeline
	store    history.Store
	locks    *history.Locker
}

// NewChatService expects locks to be the same Locker the pipeline was built with.
func NewChatService(pipeline *executor.Pipeline, store history.Store, locks *history.Locker) IChatService {
	return &chatService{
		pipeline: pipeline,
		store:    store,
		locks:    locks,
	}
}

// SessionKey namespaces a caller's session id by user so ids cannot collide
// across users. Anonymous callers use the id as is.
func SessionKey(userID, sessionID string) string {
	if userID == "" {
		return sessionID
	}
	return userID + ":" + sessionID
}

func (c *chatService) Chat(ctx context.Context, userID, sessionID string, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	res, err := c.pipeline.Execute(ctx, SessionKey(userID, sessionID), request.Input)
	if err != nil {
		return nil, err
	}
	return &dto.ChatResponse{
		Reply:    res.Reply,
		Question: res.Question,
	}, nil
}

func (c *chatService) History(ctx context.Context, userID, sessionID string) ([]*dto.HistoryMessageResponse, error) {
	if sessionID == "" {
		return nil, executor.ErrEmptySession
	}
	messages, err := c.store.GetOrCreate(ctx, SessionKey(userID, sessionID))
	if err != nil {
		return nil, err
	}

	res := make([]*dto.HistoryMessageResponse, len(messages))
	for i, m := range messages {
		res[i] = &dto.HistoryMessageResponse{Role: m.Role, Content: m.Content}
	}
	return res, nil
}

// Clear waits for any in-flight turn on the session before dropping it.
func (c *chatService) Clear(ctx context.Context, userID, sessionID string) error {
	if sessionID == "" {
		return executor.ErrEmptySession
	}
	clearer, ok := c.store.(history.Clearer)
	if !ok {
		return ErrClearUnsupported
	}

	key := SessionKey(userID, sessionID)
	unlock, err := c.locks.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()

	return clearer.Clear(ctx, key)
}
