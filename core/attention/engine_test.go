package attention

import (
	"testing"
	"time"

	"github.com/echocore/cogkernel/domain"
)

func defaultConfig() Config {
	return Config{MinFocusDuration: 100 * time.Millisecond, ForgetThreshold: 0.1, ConnectionBoost: 1.5}
}

func TestUpdateWindowSalienceAppliesConnectionBoost(t *testing.T) {
	e := NewEngine(defaultConfig())
	s := e.UpdateWindowSalience("w1", 0.5, 0.9)
	// boost = 1 + (0.9-0.5)*1.5 = 1.6; 0.5*1.6 = 0.8
	if want := 0.8; s != want {
		t.Fatalf("UpdateWindowSalience = %v, want %v", s, want)
	}
}

func TestUpdateWindowSalienceClampsToOne(t *testing.T) {
	e := NewEngine(defaultConfig())
	s := e.UpdateWindowSalience("w1", 0.9, 1.0)
	if s != 1.0 {
		t.Fatalf("UpdateWindowSalience = %v, want clamped 1.0", s)
	}
}

func TestCycleSelectsArgmaxAboveThreshold(t *testing.T) {
	e := NewEngine(defaultConfig())
	e.UpdateWindowSalience("low", 0.05, 0)
	e.UpdateWindowSalience("mid", 0.5, 0)
	e.UpdateWindowSalience("high", 0.9, 0)

	result := e.Cycle()
	if !result.HasFocus || result.WindowID != "high" {
		t.Fatalf("Cycle() = %+v, want focus on \"high\"", result)
	}
}

func TestCycleNoCandidateAboveThresholdYieldsNoFocus(t *testing.T) {
	e := NewEngine(defaultConfig())
	e.UpdateWindowSalience("w1", 0.05, 0)

	result := e.Cycle()
	if result.HasFocus {
		t.Fatalf("Cycle() = %+v, want no focus", result)
	}
}

func TestCycleTieBreaksOnSmallestWindowId(t *testing.T) {
	e := NewEngine(defaultConfig())
	e.UpdateWindowSalience("zzz", 0.8, 0)
	e.UpdateWindowSalience("aaa", 0.8, 0)

	result := e.Cycle()
	if result.WindowID != "aaa" {
		t.Fatalf("Cycle() focus = %v, want lexicographically smallest \"aaa\"", result.WindowID)
	}
}

func TestCycleHysteresisBlocksEarlyShift(t *testing.T) {
	cfg := defaultConfig()
	cfg.MinFocusDuration = time.Hour // effectively never satisfied within this test
	e := NewEngine(cfg)

	e.UpdateWindowSalience("first", 0.9, 0)
	first := e.Cycle()
	if first.WindowID != "first" {
		t.Fatalf("initial Cycle() = %+v, want \"first\"", first)
	}

	e.UpdateWindowSalience("second", 0.95, 0)
	second := e.Cycle()
	if second.WindowID != "first" {
		t.Fatalf("hysteresis should keep focus on \"first\", got %+v", second)
	}
}

func TestFocusBypassesHysteresisButRequiresKnownWindow(t *testing.T) {
	e := NewEngine(defaultConfig())
	if err := e.Focus("unknown"); err == nil {
		t.Fatal("Focus(unknown) should fail with WindowNotFoundError")
	}
	e.UpdateWindowSalience("known", 0.2, 0)
	if err := e.Focus("known"); err != nil {
		t.Fatalf("Focus(known): %v", err)
	}
	focus := e.GetFocus()
	if !focus.HasFocus || focus.WindowID != "known" {
		t.Fatalf("GetFocus() = %+v, want focus on \"known\"", focus)
	}
}

func TestShiftRecordsFromAndTo(t *testing.T) {
	e := NewEngine(defaultConfig())
	e.UpdateWindowSalience("a", 0.5, 0)
	e.UpdateWindowSalience("b", 0.5, 0)

	if err := e.Focus("a"); err != nil {
		t.Fatalf("Focus: %v", err)
	}
	result, err := e.Shift("b")
	if err != nil {
		t.Fatalf("Shift: %v", err)
	}
	if !result.HasFrom || result.From != domain.WindowId("a") || result.To != domain.WindowId("b") {
		t.Fatalf("Shift() = %+v, want {From: a, To: b}", result)
	}
}
