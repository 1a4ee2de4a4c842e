package memory

import (
	"context"
	"sync"
	"time"

	"ai-ragchat-be/pkg/rag"
	"ai-ragchat-be/pkg/rag/history"

	"github.com/patrickmn/go-cache"
)

// HistoryRepository keeps session logs in process memory. With a zero TTL
// logs live as long as the process; otherwise a log expires ttl after its
// last write.
type HistoryRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

var (
	_ history.Store   = (*HistoryRepository)(nil)
	_ history.Clearer = (*HistoryRepository)(nil)
)

func NewHistoryRepository(ttl time.Duration) *HistoryRepository {
	expiration := cache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = 10 * time.Minute
		if ttl < cleanup {
			cleanup = ttl
		}
	}
	return &HistoryRepository{
		cache: cache.New(expiration, cleanup),
	}
}

func (r *HistoryRepository) load(sessionID string) ([]rag.Message, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.([]rag.Message), true
	}
	return nil, false
}

func (r *HistoryRepository) GetOrCreate(_ context.Context, sessionID string) ([]rag.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages, found := r.load(sessionID)
	if !found {
		messages = []rag.Message{}
		r.cache.Set(sessionID, messages, cache.DefaultExpiration)
	}
	return history.Clone(messages), nil
}

func (r *HistoryRepository) Append(ctx context.Context, sessionID string, messages ...rag.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, _ := r.load(sessionID)
	next := make([]rag.Message, 0, len(current)+len(messages))
	next = append(next, current...)
	next = append(next, messages...)
	r.cache.Set(sessionID, next, cache.DefaultExpiration)
	return nil
}

func (r *HistoryRepository) Clear(_ context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}

// SessionCount reports how many sessions are held, expired ones included
// until the janitor runs.
func (r *HistoryRepository) SessionCount() int {
	return r.cache.ItemCount()
}
