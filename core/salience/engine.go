// Package salience rates Content under emotional context and owns the
// SalienceWeights / EmotionalState that every other component consults
// (spec.md §4.1). It is reached only through its Actor's mailbox; Engine
// itself holds no actor plumbing so it can be tested directly, matching
// the teacher's split between a plain struct engine and its goakt wrapper
// (core/relevance/engine.go vs core/echobeats/*_actor.go).
package salience

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/echocore/cogkernel/domain"
)

// Engine rates Content and owns SalienceWeights/EmotionalState. Single
// owner, no shared mutable state outside its own mutex.
type Engine struct {
	mu        sync.RWMutex
	weights   domain.SalienceWeights
	emotional domain.EmotionalState
}

// NewEngine constructs an Engine with the given starting weights. If the
// weights violate the connection floor, defaults are substituted.
func NewEngine(weights domain.SalienceWeights) *Engine {
	if weights.Connection < domain.MinConnectionWeight {
		weights = domain.DefaultSalienceWeights()
	}
	return &Engine{
		weights:   weights,
		emotional: domain.DefaultEmotionalState(),
	}
}

// baseRating returns the un-modulated five-dimension rating table for a
// Content, per spec.md §4.1's base rating table.
func baseRating(c domain.Content) domain.SalienceScore {
	switch c.Kind() {
	case domain.KindEmpty:
		return domain.SalienceScore{}
	case domain.KindRaw:
		return domain.SalienceScore{Importance: 0.3, Novelty: 0.4, Relevance: 0.3, ConnectionRelevance: 0.2}
	case domain.KindSymbol:
		return domain.SalienceScore{Importance: 0.5, Novelty: 0.6, Relevance: 0.5, ConnectionRelevance: 0.3}
	case domain.KindRelation:
		_, pred, _, _ := c.AsRelation()
		connection := 0.4
		if isConnectivePredicate(pred) {
			connection = 0.8
		}
		return domain.SalienceScore{Importance: 0.7, Novelty: 0.7, Relevance: 0.6, ConnectionRelevance: connection}
	case domain.KindComposite:
		children, _ := c.AsComposite()
		importance := meanChildImportance(children)
		return domain.SalienceScore{Importance: importance, Novelty: 0.5, Relevance: 0.5, ConnectionRelevance: 0.3}
	default:
		return domain.SalienceScore{}
	}
}

var connectivePredicates = map[string]struct{}{
	"help": {}, "connect": {}, "communicate": {}, "interact": {},
}

func isConnectivePredicate(pred string) bool {
	_, ok := connectivePredicates[pred]
	return ok
}

func meanChildImportance(children []domain.Content) float64 {
	if len(children) == 0 {
		return 0
	}
	values := make([]float64, len(children))
	for i, child := range children {
		values[i] = baseRating(child).Importance
	}
	return floats.Sum(values) / float64(len(values))
}

// Rate rates a Content under the current emotional context, applying the
// emotional modulation and context adjustments from spec.md §4.1.
func (e *Engine) Rate(content domain.Content, ctx domain.RatingContext) domain.SalienceScore {
	e.mu.RLock()
	emotional := e.emotional
	e.mu.RUnlock()

	score := baseRating(content)
	if content.IsEmpty() {
		return score // Rate on Empty is defined: all zeros, no error.
	}

	score.Valence = ctx.BaseValence

	score.Novelty = score.Novelty * (0.7 + 0.3*emotional.Curiosity)
	score.Relevance = score.Relevance * (0.7 + 0.3*emotional.Frustration)
	score.Valence = score.Valence + 0.4*(emotional.Satisfaction-0.5)
	score.ConnectionRelevance = score.ConnectionRelevance * (0.5 + 0.5*emotional.ConnectionDrive)

	if ctx.HumanInteraction {
		score.ConnectionRelevance += 0.3
	}
	if ctx.FocusArea != "" {
		score.Relevance += 0.2
	}
	if ctx.HasPreviousNovelty && ctx.PreviousNovelty > 0 {
		score.Novelty -= score.Novelty * 0.3 * clamp01(ctx.PreviousNovelty)
	}

	return score.Clamp()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RateBatch rates each Content in order, preserving output order. It fails
// atomically: on any invalid input, no partial results are returned.
//
// Content has no invalid construction states (domain.Content's constructors
// enforce that), so RateBatch never actually fails today; the atomic
// fail-fast contract is kept so a future Content variant with a validity
// precondition doesn't silently change this method's semantics.
func (e *Engine) RateBatch(contents []domain.Content, ctx domain.RatingContext) ([]domain.SalienceScore, error) {
	out := make([]domain.SalienceScore, len(contents))
	for i, c := range contents {
		out[i] = e.Rate(c, ctx)
	}
	return out, nil
}

// UpdateWeights replaces the current weights, enforcing the connection
// floor. On violation the prior weights are left unchanged.
func (e *Engine) UpdateWeights(w domain.SalienceWeights) error {
	if w.Connection < domain.MinConnectionWeight {
		return fmt.Errorf("update weights: %w", &domain.ConnectionDriveViolationError{
			Attempted: w.Connection,
			Minimum:   domain.MinConnectionWeight,
		})
	}
	e.mu.Lock()
	e.weights = w
	e.mu.Unlock()
	return nil
}

// GetWeights returns the current weights.
func (e *Engine) GetWeights() domain.SalienceWeights {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.weights
}

// GetEmotionalState returns the current emotional state.
func (e *Engine) GetEmotionalState() domain.EmotionalState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.emotional
}

// SetEmotionalState replaces the emotional state, clamping to declared ranges.
func (e *Engine) SetEmotionalState(s domain.EmotionalState) {
	e.mu.Lock()
	e.emotional = s.Clamp()
	e.mu.Unlock()
}
