// Package loop implements the Cognitive Loop coordinator: one cycle at a
// time sequences Trigger, Autoflow, Attention, Assembly, and Anchor across
// the five components, enforcing invariants and dispatching consolidation
// without blocking (spec.md §4.6).
package loop

import (
	"context"
	"fmt"
	"sync"

	"github.com/echocore/cogkernel/config"
	"github.com/echocore/cogkernel/core/attention"
	"github.com/echocore/cogkernel/core/memorywindow"
	"github.com/echocore/cogkernel/core/thoughtassembly"
	"github.com/echocore/cogkernel/domain"
)

// SalienceAPI is what the loop needs from Salience.
type SalienceAPI interface {
	Rate(ctx context.Context, content domain.Content, rctx domain.RatingContext) (domain.SalienceScore, error)
	GetWeights(ctx context.Context) (domain.SalienceWeights, error)
}

// MemoryAPI is what the loop needs from Memory Windows.
type MemoryAPI interface {
	Store(ctx context.Context, req memorywindow.StoreRequest) (domain.WindowId, error)
	OpenWindow(ctx context.Context, req memorywindow.OpenWindowRequest) (domain.Window, error)
	ListActiveWindows(ctx context.Context) ([]domain.Window, int, error)
	UpdateWindowSalience(ctx context.Context, id domain.WindowId, score domain.SalienceScore) error
}

// AttentionAPI is what the loop needs from Attention.
type AttentionAPI interface {
	UpdateWindowSalience(ctx context.Context, window domain.WindowId, base, connectionRelevance float64) (float64, error)
	Cycle(ctx context.Context) (attention.CycleResult, error)
}

// AssemblyAPI is what the loop needs from Thought Assembly.
type AssemblyAPI interface {
	Assemble(ctx context.Context, req thoughtassembly.AssembleRequest) (domain.Thought, error)
}

// ContinuityAPI is what the loop needs from Continuity.
type ContinuityAPI interface {
	WhoAmI(ctx context.Context) (domain.Identity, error)
	RecordExperience(ctx context.Context, exp domain.Experience) (domain.ExperienceId, error)
}

// Consolidator dispatches the fire-and-forget embed+upsert pair for an
// anchored Thought. Dispatch must never block the loop and must never
// surface an error to it.
type Consolidator interface {
	Dispatch(thought domain.Thought)
}

// TriggerItem is one external Content produced since the last cycle.
type TriggerItem struct {
	Content         domain.Content
	Label           string
	HasLabel        bool
	SourceStream    string
	HasSourceStream bool
	Urgent          bool
}

// CycleReport summarizes what one RunCycle call did.
type CycleReport struct {
	Halted      bool
	HaltReason  string
	Focused     bool
	FocusWindow domain.WindowId
	Assembled   bool
	ThoughtID   domain.ThoughtId
	Anchored    bool
}

// Engine is the Cognitive Loop coordinator. It holds non-owning references
// to the five component clients and runs exactly one cycle at a time.
type Engine struct {
	mu sync.Mutex

	cfg          config.Config
	salience     SalienceAPI
	memory       MemoryAPI
	attentionAPI AttentionAPI
	assembly     AssemblyAPI
	continuityAPI ContinuityAPI
	consolidator Consolidator

	halted     bool
	haltReason string

	lastParentThoughtID domain.ThoughtId
	hasLastParent       bool
	lastSourceStream    string
}

// NewEngine wires the loop to its component clients.
func NewEngine(
	cfg config.Config,
	salienceAPI SalienceAPI,
	memoryAPI MemoryAPI,
	attentionAPI AttentionAPI,
	assemblyAPI AssemblyAPI,
	continuityAPI ContinuityAPI,
	consolidator Consolidator,
) *Engine {
	return &Engine{
		cfg:           cfg,
		salience:      salienceAPI,
		memory:        memoryAPI,
		attentionAPI:  attentionAPI,
		assembly:      assemblyAPI,
		continuityAPI: continuityAPI,
		consolidator:  consolidator,
	}
}

// Halted reports whether a fatal invariant violation has stopped the loop
// from accepting new triggers.
func (e *Engine) Halted() (bool, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.halted, e.haltReason
}

// RunCycle runs one full Trigger→Autoflow→Attention→Assembly→Anchor cycle.
func (e *Engine) RunCycle(ctx context.Context, triggers []TriggerItem) (CycleReport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.halted {
		return CycleReport{Halted: true, HaltReason: e.haltReason}, nil
	}

	if report, ok, err := e.checkInvariantsLocked(ctx); !ok {
		return report, err
	}

	// 1. Trigger.
	if err := e.triggerLocked(ctx, triggers); err != nil {
		return CycleReport{}, fmt.Errorf("trigger: %w", err)
	}

	// 2. Autoflow.
	windows, _, err := e.memory.ListActiveWindows(ctx)
	if err != nil {
		return CycleReport{}, fmt.Errorf("autoflow list windows: %w", err)
	}
	weights, err := e.salience.GetWeights(ctx)
	if err != nil {
		return CycleReport{}, fmt.Errorf("autoflow get weights: %w", err)
	}
	var latestScores = make(map[domain.WindowId]domain.SalienceScore, len(windows))
	for _, w := range windows {
		if len(w.Contents) == 0 {
			continue
		}
		score, err := e.salience.Rate(ctx, w.Contents[len(w.Contents)-1], domain.RatingContext{})
		if err != nil {
			return CycleReport{}, fmt.Errorf("autoflow rate window %s: %w", w.ID, err)
		}
		if err := e.memory.UpdateWindowSalience(ctx, w.ID, score); err != nil {
			return CycleReport{}, fmt.Errorf("autoflow update memory salience %s: %w", w.ID, err)
		}
		composite := domain.CompositeScore(score, weights)
		if _, err := e.attentionAPI.UpdateWindowSalience(ctx, w.ID, composite, score.ConnectionRelevance); err != nil {
			return CycleReport{}, fmt.Errorf("autoflow update attention salience %s: %w", w.ID, err)
		}
		latestScores[w.ID] = score
	}

	// 3. Attention.
	cycleResult, err := e.attentionAPI.Cycle(ctx)
	if err != nil {
		return CycleReport{}, fmt.Errorf("attention cycle: %w", err)
	}
	if !cycleResult.HasFocus {
		return CycleReport{}, nil
	}

	var focusedWindow domain.Window
	found := false
	for _, w := range windows {
		if w.ID == cycleResult.WindowID {
			focusedWindow = w
			found = true
			break
		}
	}
	if !found || len(focusedWindow.Contents) == 0 {
		return CycleReport{Focused: true, FocusWindow: cycleResult.WindowID}, nil
	}

	// 4. Assembly.
	score := latestScores[focusedWindow.ID]
	strategy := e.selectStrategy(focusedWindow, score)

	req := thoughtassembly.AssembleRequest{
		Content:  focusedWindow.Contents[len(focusedWindow.Contents)-1],
		Salience: score,
		Strategy: strategy,
	}
	if strategy == domain.StrategyChain && e.hasLastParent {
		req.ParentID = e.lastParentThoughtID
		req.HasParent = true
	}
	if focusedWindow.Label != "" {
		req.SourceStream = focusedWindow.Label
		req.HasSourceStream = true
	}

	thought, err := e.assembly.Assemble(ctx, req)
	if err != nil {
		return CycleReport{}, fmt.Errorf("assembly: %w", err)
	}
	e.lastParentThoughtID = thought.ID
	e.hasLastParent = true
	e.lastSourceStream = req.SourceStream

	report := CycleReport{Focused: true, FocusWindow: focusedWindow.ID, Assembled: true, ThoughtID: thought.ID}

	// 5. Anchor.
	composite := domain.CompositeScore(thought.Salience, weights)
	if composite >= e.cfg.ConsolidationThreshold {
		if haltReport, ok, err := e.checkInvariantsLocked(ctx); !ok {
			if err != nil {
				return report, err
			}
			report.Halted = true
			report.HaltReason = haltReport.HaltReason
			return report, nil
		}
		exp := domain.Experience{
			ThoughtID:    thought.ID,
			Summary:      fmt.Sprintf("anchored thought %s (composite=%.3f)", thought.ID, composite),
			Significance: composite,
		}
		if _, err := e.continuityAPI.RecordExperience(ctx, exp); err != nil {
			return report, fmt.Errorf("anchor record experience: %w", err)
		}
		report.Anchored = true
		e.consolidator.Dispatch(thought)
	}

	return report, nil
}

// selectStrategy applies the loop's default strategy-selection rule
// (spec.md §4.6 step 4).
func (e *Engine) selectStrategy(w domain.Window, _ domain.SalienceScore) domain.AssemblyStrategy {
	if len(w.Contents) > 0 && w.Contents[len(w.Contents)-1].Kind() == domain.KindComposite {
		return domain.StrategyComposite
	}
	if isUrgentLabel(w.Label) {
		return domain.StrategyUrgent
	}
	if e.hasLastParent && w.Label != "" && w.Label == e.lastSourceStream {
		return domain.StrategyChain
	}
	return domain.StrategyDefault
}

func isUrgentLabel(label string) bool {
	return len(label) >= 6 && label[:6] == "urgent"
}

// triggerLocked deposits each TriggerItem into a matching window (by
// label) or opens a new one, subject to capacity.
func (e *Engine) triggerLocked(ctx context.Context, triggers []TriggerItem) error {
	if len(triggers) == 0 {
		return nil
	}
	windows, _, err := e.memory.ListActiveWindows(ctx)
	if err != nil {
		return err
	}
	byLabel := make(map[string]domain.WindowId, len(windows))
	for _, w := range windows {
		if w.Label != "" {
			byLabel[w.Label] = w.ID
		}
	}

	for _, item := range triggers {
		req := memorywindow.StoreRequest{Content: item.Content}
		if item.HasLabel {
			if id, ok := byLabel[item.Label]; ok {
				req.TargetWindow = id
				req.HasTarget = true
			} else {
				w, err := e.memory.OpenWindow(ctx, memorywindow.OpenWindowRequest{Label: item.Label})
				if err != nil {
					return err
				}
				byLabel[item.Label] = w.ID
				req.TargetWindow = w.ID
				req.HasTarget = true
			}
		}
		if _, err := e.memory.Store(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// checkInvariantsLocked enforces the cycle-start / pre-Continuity-mutation
// invariants: connection weight floor, MAX_WINDOWS bound, identity present.
// On violation the loop halts and stops accepting new triggers.
func (e *Engine) checkInvariantsLocked(ctx context.Context) (CycleReport, bool, error) {
	weights, err := e.salience.GetWeights(ctx)
	if err != nil {
		return CycleReport{}, false, fmt.Errorf("invariant check get weights: %w", err)
	}
	if weights.Connection < e.cfg.MinConnectionWeight {
		return e.haltLocked(fmt.Sprintf("connection weight %.6f below floor %.6f", weights.Connection, e.cfg.MinConnectionWeight)), false, nil
	}

	windows, maxWindows, err := e.memory.ListActiveWindows(ctx)
	if err != nil {
		return CycleReport{}, false, fmt.Errorf("invariant check list windows: %w", err)
	}
	if len(windows) > maxWindows {
		return e.haltLocked(fmt.Sprintf("active windows %d exceeds MAX_WINDOWS %d", len(windows), maxWindows)), false, nil
	}

	identity, err := e.continuityAPI.WhoAmI(ctx)
	if err != nil {
		return CycleReport{}, false, fmt.Errorf("invariant check identity: %w", err)
	}
	if identity.Name == "" {
		return e.haltLocked("identity is not present"), false, nil
	}

	return CycleReport{}, true, nil
}

func (e *Engine) haltLocked(reason string) CycleReport {
	e.halted = true
	e.haltReason = reason
	return CycleReport{Halted: true, HaltReason: reason}
}
