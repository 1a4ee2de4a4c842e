// Package redis stores session history as one Redis list per session.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-ragchat-be/pkg/rag"
	"ai-ragchat-be/pkg/rag/history"

	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "ragchat:history:"

// HistoryRepository keeps each log as a list of JSON encoded messages. An
// unseen session is simply an absent key. With a positive TTL every append
// pushes the expiry forward.
type HistoryRepository struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

var (
	_ history.Store   = (*HistoryRepository)(nil)
	_ history.Clearer = (*HistoryRepository)(nil)
)

func NewHistoryRepository(rdb *redis.Client, ttl time.Duration) *HistoryRepository {
	return &HistoryRepository{rdb: rdb, prefix: DefaultKeyPrefix, ttl: ttl}
}

// WithPrefix returns a copy writing under a different key namespace.
func (r *HistoryRepository) WithPrefix(prefix string) *HistoryRepository {
	cp := *r
	cp.prefix = prefix
	return &cp
}

func (r *HistoryRepository) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *HistoryRepository) GetOrCreate(ctx context.Context, sessionID string) ([]rag.Message, error) {
	raw, err := r.rdb.LRange(ctx, r.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}

	out := make([]rag.Message, len(raw))
	for i, item := range raw {
		if err := json.Unmarshal([]byte(item), &out[i]); err != nil {
			return nil, fmt.Errorf("decode message %d of %s: %w", i, sessionID, err)
		}
	}
	return out, nil
}

// Append pushes all messages inside MULTI/EXEC so readers never see half a turn.
func (r *HistoryRepository) Append(ctx context.Context, sessionID string, messages ...rag.Message) error {
	if len(messages) == 0 {
		return nil
	}

	values := make([]interface{}, len(messages))
	for i, m := range messages {
		b, err := json.Marshal(m)
		if err != nil {
			return err
		}
		values[i] = b
	}

	key := r.key(sessionID)
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, values...)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis append: %w", err)
	}
	return nil
}

func (r *HistoryRepository) Clear(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, r.key(sessionID)).Err()
}
