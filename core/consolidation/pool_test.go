package consolidation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/echocore/cogkernel/domain"
	"github.com/echocore/cogkernel/store"
	"github.com/echocore/cogkernel/store/memstore"
)

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()
	logger, err := zap.NewDevelopment()
	if err != nil {
		t.Fatalf("zap.NewDevelopment: %v", err)
	}
	return logger.Sugar()
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestDispatchUpsertsIntoVectorStore(t *testing.T) {
	vs := memstore.New()
	embedder := memstore.NewFakeEmbedder(8)
	pool := New(Config{Concurrency: 2}, embedder, vs, testLogger(t))

	thought := domain.Thought{ID: domain.NewThoughtId(), Content: domain.Raw([]byte("hello"))}
	pool.Dispatch(thought)

	waitFor(t, time.Second, func() bool {
		count, _ := vs.Count(context.Background(), store.CollectionMemories)
		return count == 1
	})
}

func TestDispatchDeduplicatesInFlightThought(t *testing.T) {
	vs := memstore.New()
	embedder := memstore.NewFakeEmbedder(8)
	pool := New(Config{Concurrency: 1}, embedder, vs, testLogger(t))

	thought := domain.Thought{ID: domain.NewThoughtId(), Content: domain.Raw([]byte("dup"))}
	pool.Dispatch(thought)
	pool.Dispatch(thought) // should be a no-op while the first is in flight

	waitFor(t, time.Second, func() bool {
		count, _ := vs.Count(context.Background(), store.CollectionMemories)
		return count == 1
	})
}

type flakyOnceEmbedder struct {
	calls atomic.Int32
	mu    sync.Mutex
}

func (f *flakyOnceEmbedder) Embed(context.Context, string) ([]float32, error) {
	n := f.calls.Add(1)
	if n == 1 {
		return nil, errors.New("transient embedding failure")
	}
	return []float32{0.1, 0.2}, nil
}

func (f *flakyOnceEmbedder) Dimension() int { return 2 }

func TestDispatchRetriesOnceAfterFailure(t *testing.T) {
	vs := memstore.New()
	embedder := &flakyOnceEmbedder{}
	pool := New(Config{Concurrency: 1, RetryDelay: time.Millisecond}, embedder, vs, testLogger(t))

	thought := domain.Thought{ID: domain.NewThoughtId(), Content: domain.Raw([]byte("retry me"))}
	pool.Dispatch(thought)

	waitFor(t, time.Second, func() bool {
		count, _ := vs.Count(context.Background(), store.CollectionMemories)
		return count == 1
	})
	if embedder.calls.Load() != 2 {
		t.Fatalf("Embed calls = %d, want 2 (one failure, one retry)", embedder.calls.Load())
	}
}
