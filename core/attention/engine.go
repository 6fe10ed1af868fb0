// Package attention implements one-winner competitive selection over open
// Memory windows, with hysteresis to suppress thrash and a connection
// boost (spec.md §4.4).
package attention

import (
	"sort"
	"sync"
	"time"

	"github.com/echocore/cogkernel/domain"
)

// Config bounds the competition.
type Config struct {
	MinFocusDuration time.Duration
	ForgetThreshold  float64
	ConnectionBoost  float64
}

// FocusState is the current winner, if any, and how long it has held focus.
type FocusState struct {
	WindowID      domain.WindowId
	HasFocus      bool
	EnteredAt     time.Time
	DurationSoFar time.Duration
}

// CycleResult is the outcome of one round of competition.
type CycleResult struct {
	WindowID domain.WindowId
	HasFocus bool
	Salience float64
}

// ShiftResult records a forced focus change.
type ShiftResult struct {
	From    domain.WindowId
	HasFrom bool
	To      domain.WindowId
}

// Engine owns the attention map and focus state machine.
type Engine struct {
	mu           sync.RWMutex
	cfg          Config
	attentionMap map[domain.WindowId]float64
	focus        FocusState
	lastCycleAt  time.Time
	hasLastCycle bool
	cycleCount   uint64
}

// NewEngine constructs an Engine with cfg.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg, attentionMap: make(map[domain.WindowId]float64)}
}

// UpdateWindowSalience applies the connection boost formula and records the
// result in the attention map, returning the boosted value. Called by the
// loop after Salience rates a window's most recent content.
func (e *Engine) UpdateWindowSalience(window domain.WindowId, base, connectionRelevance float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	boost := 1.0
	if connectionRelevance > 0.5 {
		boost += (connectionRelevance - 0.5) * e.cfg.ConnectionBoost
	}
	s := base * boost
	if s > 1.0 {
		s = 1.0
	}
	e.attentionMap[window] = s
	return s
}

// Cycle runs one round of competition: windows above ForgetThreshold
// compete, the argmax wins (ties broken by smallest WindowId), and a shift
// away from the current focus only happens once hysteresis is satisfied.
func (e *Engine) Cycle() CycleResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()
	var elapsed time.Duration
	if e.hasLastCycle {
		elapsed = now.Sub(e.lastCycleAt)
	}
	e.lastCycleAt = now
	e.hasLastCycle = true
	e.cycleCount++

	if e.focus.HasFocus {
		e.focus.DurationSoFar += elapsed
	}

	candidate, candidateScore, ok := e.argmaxLocked()
	if !ok {
		return CycleResult{}
	}

	if !e.focus.HasFocus {
		e.setFocusLocked(candidate, now)
		return CycleResult{WindowID: candidate, HasFocus: true, Salience: candidateScore}
	}

	if candidate == e.focus.WindowID {
		return CycleResult{WindowID: candidate, HasFocus: true, Salience: candidateScore}
	}

	if e.focus.DurationSoFar >= e.cfg.MinFocusDuration {
		e.setFocusLocked(candidate, now)
		return CycleResult{WindowID: candidate, HasFocus: true, Salience: candidateScore}
	}

	// Hysteresis blocks the shift; the current focus holds.
	return CycleResult{WindowID: e.focus.WindowID, HasFocus: true, Salience: e.attentionMap[e.focus.WindowID]}
}

func (e *Engine) argmaxLocked() (domain.WindowId, float64, bool) {
	var candidates []domain.WindowId
	for id, s := range e.attentionMap {
		if s > e.cfg.ForgetThreshold {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return "", 0, false
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	best := candidates[0]
	bestScore := e.attentionMap[best]
	for _, id := range candidates[1:] {
		s := e.attentionMap[id]
		if s > bestScore {
			best = id
			bestScore = s
		}
		// Equal score: the lexicographically smaller id (already sorted
		// first) keeps precedence, so skip.
	}
	return best, bestScore, true
}

func (e *Engine) setFocusLocked(id domain.WindowId, at time.Time) {
	e.focus = FocusState{WindowID: id, HasFocus: true, EnteredAt: at, DurationSoFar: 0}
}

// Focus forces the window into focus immediately, bypassing hysteresis.
func (e *Engine) Focus(id domain.WindowId) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.attentionMap[id]; !ok {
		return &domain.WindowNotFoundError{ID: id}
	}
	e.setFocusLocked(id, time.Now())
	return nil
}

// Shift forces a focus change, recording the prior focus, if any.
func (e *Engine) Shift(to domain.WindowId) (ShiftResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.attentionMap[to]; !ok {
		return ShiftResult{}, &domain.WindowNotFoundError{ID: to}
	}
	result := ShiftResult{To: to}
	if e.focus.HasFocus {
		result.From = e.focus.WindowID
		result.HasFrom = true
	}
	e.setFocusLocked(to, time.Now())
	return result, nil
}

// GetFocus reports the current focus, if any.
func (e *Engine) GetFocus() FocusState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.focus
}

// GetAttentionMap returns a copy of the current window→salience map.
func (e *Engine) GetAttentionMap() map[domain.WindowId]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[domain.WindowId]float64, len(e.attentionMap))
	for k, v := range e.attentionMap {
		out[k] = v
	}
	return out
}
