package history

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ai-ragchat-be/pkg/rag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockerSerializesSameSession(t *testing.T) {
	l := NewLocker()
	ctx := context.Background()

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "s1")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
	assert.Equal(t, 0, l.Len())
}

func TestLockerIndependentSessions(t *testing.T) {
	l := NewLocker()
	ctx := context.Background()

	unlock1, err := l.Lock(ctx, "s1")
	require.NoError(t, err)
	defer unlock1()

	done := make(chan struct{})
	go func() {
		unlock2, err := l.Lock(ctx, "s2")
		if err == nil {
			unlock2()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on s2 blocked behind s1")
	}
}

func TestLockerHonoursCancellation(t *testing.T) {
	l := NewLocker()

	unlock, err := l.Lock(context.Background(), "s1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "s1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock() // second call is a no-op
	assert.Equal(t, 0, l.Len())
}

func conversation(turns int) []rag.Message {
	var out []rag.Message
	for i := 0; i < turns; i++ {
		out = append(out, rag.UserMessage("q"), rag.AssistantMessage("a"))
	}
	return out
}

func TestLastTurns(t *testing.T) {
	log := conversation(5)
	log[6] = rag.UserMessage("q4")

	assert.Len(t, LastTurns(0).Apply(log), 10)
	assert.Len(t, LastTurns(10).Apply(log), 10)

	windowed := LastTurns(2).Apply(log)
	require.Len(t, windowed, 4)
	assert.Equal(t, rag.UserMessage("q4"), windowed[0])
	assert.Len(t, log, 10, "window must not change the log")
}

func TestClone(t *testing.T) {
	assert.NotNil(t, Clone(nil))

	orig := conversation(1)
	c := Clone(orig)
	c[0] = rag.UserMessage("changed")
	assert.Equal(t, "q", orig[0].Content)
}
