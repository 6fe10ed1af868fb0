package loop

import (
	"context"
	"testing"

	"github.com/echocore/cogkernel/config"
	"github.com/echocore/cogkernel/core/attention"
	"github.com/echocore/cogkernel/core/memorywindow"
	"github.com/echocore/cogkernel/core/thoughtassembly"
	"github.com/echocore/cogkernel/domain"
)

// fakeSalience is a direct in-process stand-in for the Salience actor,
// used so the loop's sequencing can be tested without spinning up goakt.
type fakeSalience struct {
	weights domain.SalienceWeights
}

func (f *fakeSalience) Rate(context.Context, domain.Content, domain.RatingContext) (domain.SalienceScore, error) {
	return domain.SalienceScore{Importance: 0.9, Novelty: 0.9, Relevance: 0.9, ConnectionRelevance: 0.9}, nil
}

func (f *fakeSalience) GetWeights(context.Context) (domain.SalienceWeights, error) {
	return f.weights, nil
}

type fakeMemory struct {
	windows []domain.Window
	max     int
}

func (f *fakeMemory) Store(_ context.Context, req memorywindow.StoreRequest) (domain.WindowId, error) {
	if req.HasTarget {
		for i, w := range f.windows {
			if w.ID == req.TargetWindow {
				f.windows[i].Contents = append(f.windows[i].Contents, req.Content)
				return w.ID, nil
			}
		}
	}
	return "", &domain.WindowNotFoundError{ID: req.TargetWindow}
}

func (f *fakeMemory) OpenWindow(_ context.Context, req memorywindow.OpenWindowRequest) (domain.Window, error) {
	w := domain.Window{ID: domain.NewWindowId(), Label: req.Label}
	f.windows = append(f.windows, w)
	return w, nil
}

func (f *fakeMemory) ListActiveWindows(context.Context) ([]domain.Window, int, error) {
	return f.windows, f.max, nil
}

func (f *fakeMemory) UpdateWindowSalience(_ context.Context, id domain.WindowId, score domain.SalienceScore) error {
	for i, w := range f.windows {
		if w.ID == id {
			f.windows[i].Salience = score
			return nil
		}
	}
	return &domain.WindowNotFoundError{ID: id}
}

type fakeAttention struct {
	focus domain.WindowId
}

func (f *fakeAttention) UpdateWindowSalience(context.Context, domain.WindowId, float64, float64) (float64, error) {
	return 0, nil
}

func (f *fakeAttention) Cycle(context.Context) (attention.CycleResult, error) {
	if f.focus == "" {
		return attention.CycleResult{}, nil
	}
	return attention.CycleResult{WindowID: f.focus, HasFocus: true, Salience: 0.9}, nil
}

type fakeAssembly struct{}

func (f *fakeAssembly) Assemble(_ context.Context, req thoughtassembly.AssembleRequest) (domain.Thought, error) {
	return domain.Thought{ID: domain.NewThoughtId(), Content: req.Content, Salience: req.Salience, Strategy: req.Strategy}, nil
}

type fakeContinuity struct {
	identity domain.Identity
	recorded []domain.Experience
}

func (f *fakeContinuity) WhoAmI(context.Context) (domain.Identity, error) { return f.identity, nil }

func (f *fakeContinuity) RecordExperience(_ context.Context, exp domain.Experience) (domain.ExperienceId, error) {
	f.recorded = append(f.recorded, exp)
	return domain.NewExperienceId(), nil
}

type fakeConsolidator struct {
	dispatched []domain.Thought
}

func (f *fakeConsolidator) Dispatch(t domain.Thought) { f.dispatched = append(f.dispatched, t) }

func newTestEngine(cfg config.Config, mem *fakeMemory, att *fakeAttention, cont *fakeContinuity, cons *fakeConsolidator) *Engine {
	sal := &fakeSalience{weights: domain.DefaultSalienceWeights()}
	return NewEngine(cfg, sal, mem, att, &fakeAssembly{}, cont, cons)
}

func TestRunCycleAssemblesAndAnchorsAboveThreshold(t *testing.T) {
	cfg := config.NewDefaultConfig()
	w := domain.Window{ID: "w1", Label: "stream", Contents: []domain.Content{domain.Raw([]byte("hi"))}}
	mem := &fakeMemory{windows: []domain.Window{w}, max: cfg.MaxWindows}
	att := &fakeAttention{focus: "w1"}
	cont := &fakeContinuity{identity: domain.Identity{Name: "echo"}}
	cons := &fakeConsolidator{}

	e := newTestEngine(cfg, mem, att, cont, cons)
	report, err := e.RunCycle(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if !report.Focused || !report.Assembled {
		t.Fatalf("report = %+v, want Focused and Assembled", report)
	}
	if !report.Anchored {
		t.Fatalf("report = %+v, want Anchored (composite should exceed threshold)", report)
	}
	if len(cont.recorded) != 1 {
		t.Fatalf("RecordExperience calls = %d, want 1", len(cont.recorded))
	}
	if len(cons.dispatched) != 1 {
		t.Fatalf("Dispatch calls = %d, want 1", len(cons.dispatched))
	}
}

func TestRunCycleNoFocusEndsWithoutThought(t *testing.T) {
	cfg := config.NewDefaultConfig()
	mem := &fakeMemory{max: cfg.MaxWindows}
	att := &fakeAttention{}
	cont := &fakeContinuity{identity: domain.Identity{Name: "echo"}}
	cons := &fakeConsolidator{}

	e := newTestEngine(cfg, mem, att, cont, cons)
	report, err := e.RunCycle(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if report.Focused || report.Assembled {
		t.Fatalf("report = %+v, want no focus and no assembly", report)
	}
}

func TestRunCycleHaltsOnConnectionWeightViolation(t *testing.T) {
	cfg := config.NewDefaultConfig()
	mem := &fakeMemory{max: cfg.MaxWindows}
	att := &fakeAttention{}
	cont := &fakeContinuity{identity: domain.Identity{Name: "echo"}}
	cons := &fakeConsolidator{}

	sal := &fakeSalience{weights: domain.SalienceWeights{Connection: 0.0}}
	e := NewEngine(cfg, sal, mem, att, &fakeAssembly{}, cont, cons)

	report, err := e.RunCycle(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if !report.Halted {
		t.Fatalf("report = %+v, want Halted", report)
	}
	halted, reason := e.Halted()
	if !halted || reason == "" {
		t.Fatalf("Halted() = (%v, %q), want (true, non-empty)", halted, reason)
	}

	// Once halted, further cycles short-circuit without touching components.
	report2, err := e.RunCycle(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunCycle after halt: %v", err)
	}
	if !report2.Halted {
		t.Fatalf("report2 = %+v, want still Halted", report2)
	}
}

func TestRunCycleHaltsWhenIdentityMissing(t *testing.T) {
	cfg := config.NewDefaultConfig()
	mem := &fakeMemory{max: cfg.MaxWindows}
	att := &fakeAttention{}
	cont := &fakeContinuity{identity: domain.Identity{}} // no name
	cons := &fakeConsolidator{}

	e := newTestEngine(cfg, mem, att, cont, cons)
	report, err := e.RunCycle(context.Background(), nil)
	if err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if !report.Halted {
		t.Fatalf("report = %+v, want Halted on missing identity", report)
	}
}

func TestRunCycleTriggerOpensWindowForNewLabel(t *testing.T) {
	cfg := config.NewDefaultConfig()
	mem := &fakeMemory{max: cfg.MaxWindows}
	att := &fakeAttention{}
	cont := &fakeContinuity{identity: domain.Identity{Name: "echo"}}
	cons := &fakeConsolidator{}

	e := newTestEngine(cfg, mem, att, cont, cons)
	_, err := e.RunCycle(context.Background(), []TriggerItem{
		{Content: domain.Raw([]byte("first")), Label: "new-stream", HasLabel: true},
	})
	if err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if len(mem.windows) != 1 || mem.windows[0].Label != "new-stream" {
		t.Fatalf("mem.windows = %+v, want one window labeled new-stream", mem.windows)
	}
	if len(mem.windows[0].Contents) != 1 {
		t.Fatalf("mem.windows[0].Contents = %+v, want 1 deposited content", mem.windows[0].Contents)
	}
}
