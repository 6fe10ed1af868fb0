// Package thoughtassembly assembles rated Content into Thoughts, chaining
// them to a bounded parent depth and caching recent Thoughts for lookup
// (spec.md §4.3).
package thoughtassembly

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/echocore/cogkernel/domain"
)

// Engine owns the cache of recently assembled Thoughts.
type Engine struct {
	mu               sync.RWMutex
	cache            *lru.Cache[domain.ThoughtId, domain.Thought]
	maxChainDepth    int
	validateSalience bool
}

// NewEngine constructs an Engine with the given cache size and maximum
// chain depth (spec.md §4.3: thought chains are acyclic and bounded).
// When validateSalience is set, Assemble rejects any request whose
// SalienceScore has a field outside its declared range.
func NewEngine(cacheSize, maxChainDepth int, validateSalience bool) (*Engine, error) {
	cache, err := lru.New[domain.ThoughtId, domain.Thought](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Engine{cache: cache, maxChainDepth: maxChainDepth, validateSalience: validateSalience}, nil
}

// AssembleRequest parameters.
type AssembleRequest struct {
	Content          domain.Content
	Salience         domain.SalienceScore
	ParentID         domain.ThoughtId
	HasParent        bool
	SourceStream     string
	HasSourceStream  bool
	Strategy         domain.AssemblyStrategy
}

// Assemble builds a new Thought from Content, optionally chaining it to a
// parent Thought already present in the cache.
func (e *Engine) Assemble(req AssembleRequest) (domain.Thought, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.assembleLocked(req)
}

func (e *Engine) assembleLocked(req AssembleRequest) (domain.Thought, error) {
	if req.Content.IsEmpty() {
		return domain.Thought{}, &domain.EmptyContentError{}
	}

	salience := req.Salience
	if e.validateSalience && !salience.InRange() {
		return domain.Thought{}, &domain.InvalidSalienceError{Reason: "field outside declared range"}
	}

	var parent domain.Thought
	if req.HasParent {
		p, ok := e.cache.Get(req.ParentID)
		if !ok {
			return domain.Thought{}, &domain.ThoughtNotFoundError{ID: req.ParentID}
		}
		parent = p
		depth, err := e.chainDepthLocked(parent.ID)
		if err != nil {
			return domain.Thought{}, err
		}
		if depth+1 > e.maxChainDepth {
			return domain.Thought{}, &domain.ChainTooDeepError{MaxDepth: e.maxChainDepth}
		}
	}

	compositeFlagged := req.Content.IsEmptyComposite()
	urgent := false

	switch req.Strategy {
	case domain.StrategyChain:
		if req.HasParent {
			decayed := parent.Salience.ConnectionRelevance * 0.5
			if decayed > salience.ConnectionRelevance {
				salience.ConnectionRelevance = decayed
			}
		}
	case domain.StrategyUrgent:
		urgent = true
	case domain.StrategyComposite:
		if req.Content.Kind() != domain.KindComposite {
			compositeFlagged = true
		}
	case domain.StrategyDefault:
		// no adjustment
	}

	t := domain.Thought{
		ID:               domain.NewThoughtId(),
		Content:          req.Content,
		Salience:         salience,
		ParentID:         req.ParentID,
		HasParent:        req.HasParent,
		SourceStream:     req.SourceStream,
		HasSourceStream:  req.HasSourceStream,
		AssembledAt:      time.Now(),
		Strategy:         req.Strategy,
		CompositeFlagged: compositeFlagged,
		Urgent:           urgent,
	}
	e.cache.Add(t.ID, t)
	return t, nil
}

// AssembleBatch assembles each request in order, stopping at the first
// error. On failure no partial results are returned (spec.md §4.3:
// "ordered, fail-fast at the first error; partial results are not
// returned").
func (e *Engine) AssembleBatch(reqs []AssembleRequest) ([]domain.Thought, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Thought, 0, len(reqs))
	for _, req := range reqs {
		t, err := e.assembleLocked(req)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// GetThought looks up a cached Thought by id.
func (e *Engine) GetThought(id domain.ThoughtId) (domain.Thought, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, ok := e.cache.Get(id)
	if !ok {
		return domain.Thought{}, &domain.ThoughtNotFoundError{ID: id}
	}
	return t, nil
}

// GetThoughtChain walks from id up through ParentID links, stopping at the
// root or after depth ancestors, whichever comes first. It fails with
// ChainTooDeep if depth exceeds maxChainDepth, and with ThoughtNotFound if
// any intermediate id is absent (spec.md §4.3). The returned chain has at
// most depth+1 elements, ordered leaf-first; depth=0 returns [id] alone.
func (e *Engine) GetThoughtChain(id domain.ThoughtId, depth int) ([]domain.Thought, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if depth > e.maxChainDepth {
		return nil, &domain.ChainTooDeepError{MaxDepth: e.maxChainDepth}
	}

	t, ok := e.cache.Get(id)
	if !ok {
		return nil, &domain.ThoughtNotFoundError{ID: id}
	}
	chain := []domain.Thought{t}
	for t.HasParent && len(chain) <= depth {
		parent, ok := e.cache.Get(t.ParentID)
		if !ok {
			return nil, &domain.ThoughtNotFoundError{ID: t.ParentID}
		}
		chain = append(chain, parent)
		t = parent
	}
	return chain, nil
}

// chainDepthLocked returns how many ancestors id has, assuming e.mu is held.
func (e *Engine) chainDepthLocked(id domain.ThoughtId) (int, error) {
	depth := 0
	cur := id
	for {
		t, ok := e.cache.Get(cur)
		if !ok {
			return 0, &domain.ThoughtNotFoundError{ID: cur}
		}
		if !t.HasParent {
			return depth, nil
		}
		depth++
		if depth > e.maxChainDepth {
			return 0, &domain.ChainTooDeepError{MaxDepth: e.maxChainDepth}
		}
		cur = t.ParentID
	}
}
