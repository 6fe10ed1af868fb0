// Package consolidation dispatches fire-and-forget anchoring tasks —
// embed the thought's content, then upsert a Memory record to the vector
// store — without ever blocking or surfacing errors to the Cognitive Loop
// (spec.md §5, §9 "Asynchronous consolidation").
package consolidation

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/echocore/cogkernel/domain"
	"github.com/echocore/cogkernel/store"
)

// Config bounds the pool's concurrency and retry policy.
type Config struct {
	Concurrency int
	RetryDelay  time.Duration
}

// Pool is a bounded-concurrency worker pool. Tasks are deduplicated by
// thought id: a thought already in flight is not dispatched again. There
// is no queue: when every slot is busy, a new task is dropped with a
// warning rather than waiting or replacing an earlier one.
type Pool struct {
	cfg       Config
	sem       *semaphore.Weighted
	embedder  store.EmbeddingProvider
	vector    store.VectorStore
	log       *zap.SugaredLogger
	inflight  sync.Map // domain.ThoughtId -> struct{}
	baseCtx   context.Context
}

// New constructs a Pool bounded to cfg.Concurrency concurrent tasks.
func New(cfg Config, embedder store.EmbeddingProvider, vector store.VectorStore, log *zap.SugaredLogger) *Pool {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	return &Pool{
		cfg:      cfg,
		sem:      semaphore.NewWeighted(int64(cfg.Concurrency)),
		embedder: embedder,
		vector:   vector,
		log:      log.With("component", "consolidation"),
		baseCtx:  context.Background(),
	}
}

// Dispatch starts the fire-and-forget embed+upsert pair for thought in its
// own goroutine, or drops it when the pool is saturated. It never blocks
// the caller and never returns an error; failures are logged.
func (p *Pool) Dispatch(thought domain.Thought) {
	if _, loaded := p.inflight.LoadOrStore(thought.ID, struct{}{}); loaded {
		return
	}
	if !p.sem.TryAcquire(1) {
		// At capacity: drop the oldest-style backpressure signal by simply
		// not queuing; the thought remains anchored via Continuity even
		// though consolidation to the vector store is skipped this round.
		p.inflight.Delete(thought.ID)
		p.log.Warnw("consolidation pool saturated, dropping task", "thought_id", thought.ID)
		return
	}

	go func() {
		defer p.sem.Release(1)
		defer p.inflight.Delete(thought.ID)
		p.run(thought)
	}()
}

// run performs the embed+upsert pair with a single retry on failure,
// fanning the two calls' error handling through an errgroup.
func (p *Pool) run(thought domain.Thought) {
	ctx, cancel := context.WithTimeout(p.baseCtx, 30*time.Second)
	defer cancel()

	if err := p.attempt(ctx, thought); err != nil {
		p.log.Warnw("consolidation attempt failed, retrying once", "thought_id", thought.ID, "error", err)
		time.Sleep(p.retryDelay())
		if err := p.attempt(ctx, thought); err != nil {
			p.log.Errorw("consolidation failed after retry", "thought_id", thought.ID, "error", err)
		}
	}
}

func (p *Pool) retryDelay() time.Duration {
	if p.cfg.RetryDelay > 0 {
		return p.cfg.RetryDelay
	}
	return 250 * time.Millisecond
}

func (p *Pool) attempt(ctx context.Context, thought domain.Thought) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vector, err := p.embedder.Embed(gctx, string(thought.Content.Representation()))
		if err != nil {
			return err
		}
		payload := store.ThoughtPayload(thought, nil)
		return p.vector.Upsert(gctx, store.CollectionMemories, string(thought.ID), vector, payload)
	})
	return g.Wait()
}
