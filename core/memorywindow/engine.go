// Package memorywindow maintains up to MAX_WINDOWS open Memory windows,
// each annotated with a SalienceScore, plus open/close/deposit/list and a
// lightweight Recall fallback (spec.md §4.2).
package memorywindow

import (
	"sort"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/dlclark/regexp2"
	"github.com/emirpasic/gods/v2/lists/arraylist"

	"github.com/echocore/cogkernel/domain"
)

// Engine owns the set of open windows. Single owner, no shared mutable state.
type Engine struct {
	mu         sync.RWMutex
	maxWindows int
	order      *arraylist.List[domain.WindowId] // insertion order, for oldest-tie-break eviction
	windows    map[domain.WindowId]domain.Window
}

// NewEngine constructs an Engine bounded to maxWindows open windows.
func NewEngine(maxWindows int) *Engine {
	return &Engine{
		maxWindows: maxWindows,
		order:      arraylist.New[domain.WindowId](),
		windows:    make(map[domain.WindowId]domain.Window),
	}
}

// OpenWindowRequest parameters.
type OpenWindowRequest struct {
	Label            string
	InitialSalience  domain.SalienceScore
	InitialContents  []domain.Content
}

// OpenWindow opens a new window, evicting the lowest-salience (oldest on
// tie) window first if at capacity. It returns WindowLimitExceededError
// only when maxWindows is 0, where there is no window to evict.
func (e *Engine) OpenWindow(req OpenWindowRequest) (domain.Window, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.openWindowLocked(req)
}

// openWindowLocked assumes the caller holds e.mu.
func (e *Engine) openWindowLocked(req OpenWindowRequest) (domain.Window, error) {
	if e.order.Size() >= e.maxWindows {
		if e.maxWindows == 0 {
			return domain.Window{}, &domain.WindowLimitExceededError{Max: e.maxWindows}
		}
		e.evictLocked()
	}

	w := domain.Window{
		ID:       domain.NewWindowId(),
		Label:    req.Label,
		Contents: append([]domain.Content{}, req.InitialContents...),
		Salience: req.InitialSalience,
		OpenedAt: time.Now(),
	}
	e.windows[w.ID] = w
	e.order.Add(w.ID)
	return w.Clone(), nil
}

// evictLocked closes the lowest-composite-salience window, oldest first on
// tie. Caller must hold e.mu.
func (e *Engine) evictLocked() {
	ids := e.order.Values()
	if len(ids) == 0 {
		return
	}
	victim := ids[0]
	victimScore := compositeMagnitude(e.windows[victim].Salience)
	for _, id := range ids[1:] {
		s := compositeMagnitude(e.windows[id].Salience)
		if s < victimScore {
			victim = id
			victimScore = s
		}
		// On tie, the earlier (older) id already seen wins: do nothing.
	}
	e.closeLocked(victim)
}

// compositeMagnitude is an unweighted proxy for "how salient" a window is
// purely for eviction ranking, since eviction must work even before a
// SalienceWeights-aware caller has rated the window.
func compositeMagnitude(s domain.SalienceScore) float64 {
	valence := s.Valence
	if valence < 0 {
		valence = -valence
	}
	return s.Importance + s.Novelty + s.Relevance + valence + s.ConnectionRelevance
}

// CloseWindow finalizes and removes a window.
func (e *Engine) CloseWindow(id domain.WindowId) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.windows[id]; !ok {
		return &domain.WindowNotFoundError{ID: id}
	}
	e.closeLocked(id)
	return nil
}

func (e *Engine) closeLocked(id domain.WindowId) {
	delete(e.windows, id)
	idx := e.order.IndexOf(id)
	if idx >= 0 {
		e.order.Remove(idx)
	}
}

// ListActiveWindows returns every open window and the configured MAX_WINDOWS.
func (e *Engine) ListActiveWindows() ([]domain.Window, int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]domain.Window, 0, len(e.windows))
	for _, id := range e.order.Values() {
		out = append(out, e.windows[id].Clone())
	}
	return out, e.maxWindows
}

// ActiveWindowCount reports how many windows are currently open, for the
// loop's invariant check (active_windows <= MAX_WINDOWS).
func (e *Engine) ActiveWindowCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.order.Size()
}

// StoreRequest parameters.
type StoreRequest struct {
	Content       domain.Content
	TargetWindow  domain.WindowId
	HasTarget     bool
	Salience      domain.SalienceScore
}

// Store deposits Content into target_window, or the lowest-salience open
// window when target is omitted; if none are open, a window is opened
// (respecting the bound).
func (e *Engine) Store(req StoreRequest) (domain.WindowId, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	target := req.TargetWindow
	if !req.HasTarget {
		id, ok := e.lowestSalienceWindowLocked()
		if !ok {
			w, err := e.openWindowLocked(OpenWindowRequest{})
			if err != nil {
				return "", err
			}
			target = w.ID
		} else {
			target = id
		}
	}

	w, ok := e.windows[target]
	if !ok {
		return "", &domain.WindowNotFoundError{ID: target}
	}
	w.Contents = append(w.Contents, req.Content)
	if req.Salience != (domain.SalienceScore{}) {
		w.Salience = req.Salience
	}
	e.windows[target] = w
	return target, nil
}

func (e *Engine) lowestSalienceWindowLocked() (domain.WindowId, bool) {
	ids := e.order.Values()
	if len(ids) == 0 {
		return "", false
	}
	best := ids[0]
	bestScore := compositeMagnitude(e.windows[best].Salience)
	for _, id := range ids[1:] {
		s := compositeMagnitude(e.windows[id].Salience)
		if s < bestScore {
			best = id
			bestScore = s
		}
	}
	return best, true
}

// UpdateWindowSalience replaces a window's salience annotation, used by the
// loop after Salience rating.
func (e *Engine) UpdateWindowSalience(id domain.WindowId, score domain.SalienceScore) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, ok := e.windows[id]
	if !ok {
		return &domain.WindowNotFoundError{ID: id}
	}
	w.Salience = score
	e.windows[id] = w
	return nil
}

// RecallMatch is one hit from Recall, ordered best match first.
type RecallMatch struct {
	WindowID domain.WindowId
	Score    float64
}

// Recall scores every open window's most recent content against query,
// returning matches ordered best-first. This is spec.md §9 Open Question
// (b) resolved concretely: Engine holds no embedding provider and always
// does the linear-scan fallback over stored Contents described in
// spec.md §4.2; no caller in this repository routes Recall through an
// embedding provider.
//
// A query wrapped in slashes ("/pattern/") is treated as a regexp2
// pattern; anything else is scored by normalized Levenshtein distance
// against each window's content representation.
func (e *Engine) Recall(query string) ([]RecallMatch, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if pattern, ok := asRegexPattern(query); ok {
		return e.recallByPattern(pattern)
	}
	return e.recallByLevenshtein(query)
}

func asRegexPattern(query string) (string, bool) {
	if len(query) >= 2 && query[0] == '/' && query[len(query)-1] == '/' {
		return query[1 : len(query)-1], true
	}
	return "", false
}

func (e *Engine) recallByPattern(pattern string) ([]RecallMatch, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	var matches []RecallMatch
	for _, id := range e.order.Values() {
		w := e.windows[id]
		text := string(latestRepresentation(w))
		ok, err := re.MatchString(text)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, RecallMatch{WindowID: id, Score: 1.0})
		}
	}
	return matches, nil
}

func (e *Engine) recallByLevenshtein(query string) ([]RecallMatch, error) {
	matches := make([]RecallMatch, 0, len(e.windows))
	for _, id := range e.order.Values() {
		w := e.windows[id]
		text := string(latestRepresentation(w))
		dist := levenshtein.ComputeDistance(query, text)
		maxLen := len(query)
		if len(text) > maxLen {
			maxLen = len(text)
		}
		score := 1.0
		if maxLen > 0 {
			score = 1.0 - float64(dist)/float64(maxLen)
		}
		matches = append(matches, RecallMatch{WindowID: id, Score: score})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	return matches, nil
}

func latestRepresentation(w domain.Window) []byte {
	if len(w.Contents) == 0 {
		return nil
	}
	return w.Contents[len(w.Contents)-1].Representation()
}
