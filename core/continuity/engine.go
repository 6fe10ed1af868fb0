// Package continuity anchors significant thoughts as experiences, tracks
// milestones, and exposes checkpoint/restore over the whole state
// (spec.md §4.5).
package continuity

import (
	"sort"
	"sync"
	"time"

	"github.com/echocore/cogkernel/domain"
)

// Engine owns identity, experiences, milestones, and checkpoints.
type Engine struct {
	mu          sync.RWMutex
	identity    domain.Identity
	experiences map[domain.ExperienceId]domain.Experience
	milestones  []domain.Milestone
	checkpoints map[domain.CheckpointId]domain.Checkpoint
	version     uint64
}

// NewEngine constructs an Engine whose identity.name is fixed at
// construction and never changes thereafter.
func NewEngine(name string) *Engine {
	return &Engine{
		identity: domain.Identity{
			Name:      name,
			CreatedAt: time.Now(),
		},
		experiences: make(map[domain.ExperienceId]domain.Experience),
		checkpoints: make(map[domain.CheckpointId]domain.Checkpoint),
	}
}

// WhoAmI reports identity. Uptime is not stored on it; callers derive it
// from the wall clock with Identity.Uptime(time.Now()).
func (e *Engine) WhoAmI() domain.Identity {
	e.mu.RLock()
	defer e.mu.RUnlock()
	id := e.identity
	return id
}

// RecordExperience stores an Experience and mints its id, incrementing
// experience_count monotonically.
func (e *Engine) RecordExperience(exp domain.Experience) (domain.ExperienceId, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if exp.ID == "" {
		exp.ID = domain.NewExperienceId()
	}
	if exp.RecordedAt.IsZero() {
		exp.RecordedAt = time.Now()
	}
	e.experiences[exp.ID] = exp
	e.identity.ExperienceCount++
	return exp.ID, nil
}

// GetExperience looks up a recorded Experience by id.
func (e *Engine) GetExperience(id domain.ExperienceId) (domain.Experience, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	exp, ok := e.experiences[id]
	if !ok {
		return domain.Experience{}, &domain.ExperienceNotFoundError{ID: id}
	}
	return exp, nil
}

// GetTimeline returns experiences recorded within [start, end], inclusive,
// ordered chronologically.
func (e *Engine) GetTimeline(start, end time.Time) []domain.Experience {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]domain.Experience, 0, len(e.experiences))
	for _, exp := range e.experiences {
		if !exp.RecordedAt.Before(start) && !exp.RecordedAt.After(end) {
			out = append(out, exp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.Before(out[j].RecordedAt) })
	return out
}

// AddMilestone stores a Milestone and mints its id.
func (e *Engine) AddMilestone(m domain.Milestone) (domain.MilestoneId, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if m.ID == "" {
		m.ID = domain.NewMilestoneId()
	}
	if m.AchievedAt.IsZero() {
		m.AchievedAt = time.Now()
	}
	e.milestones = append(e.milestones, m)
	sort.Slice(e.milestones, func(i, j int) bool { return e.milestones[i].AchievedAt.Before(e.milestones[j].AchievedAt) })
	e.identity.MilestoneCount++
	return m.ID, nil
}

// GetMilestones returns every milestone, chronological.
func (e *Engine) GetMilestones() []domain.Milestone {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]domain.Milestone, len(e.milestones))
	copy(out, e.milestones)
	return out
}

// Checkpoint takes a full deep snapshot of identity, experiences, and
// milestones, O(n) in the number of experiences.
func (e *Engine) Checkpoint() (domain.CheckpointId, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.version++
	expCopy := make(map[domain.ExperienceId]domain.Experience, len(e.experiences))
	for id, exp := range e.experiences {
		expCopy[id] = domain.Experience{
			ID:           exp.ID,
			ThoughtID:    exp.ThoughtID,
			Summary:      exp.Summary,
			Significance: exp.Significance,
			RecordedAt:   exp.RecordedAt,
			Tags:         exp.CloneTags(),
		}
	}
	milestonesCopy := make([]domain.Milestone, len(e.milestones))
	copy(milestonesCopy, e.milestones)
	for i, m := range milestonesCopy {
		if m.RelatedExperiences == nil {
			continue
		}
		related := make(map[domain.ExperienceId]struct{}, len(m.RelatedExperiences))
		for id := range m.RelatedExperiences {
			related[id] = struct{}{}
		}
		milestonesCopy[i].RelatedExperiences = related
	}

	cp := domain.Checkpoint{
		ID:          domain.NewCheckpointId(),
		Version:     e.version,
		TakenAt:     time.Now(),
		Identity:    e.identity,
		Experiences: expCopy,
		Milestones:  milestonesCopy,
	}
	e.checkpoints[cp.ID] = cp
	return cp.ID, nil
}

// Restore replaces identity, experiences, and milestones atomically from a
// prior Checkpoint. Destructive; there is no undo.
func (e *Engine) Restore(id domain.CheckpointId) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cp, ok := e.checkpoints[id]
	if !ok {
		return &domain.CheckpointNotFoundError{ID: id}
	}

	expCopy := make(map[domain.ExperienceId]domain.Experience, len(cp.Experiences))
	for eid, exp := range cp.Experiences {
		expCopy[eid] = domain.Experience{
			ID:           exp.ID,
			ThoughtID:    exp.ThoughtID,
			Summary:      exp.Summary,
			Significance: exp.Significance,
			RecordedAt:   exp.RecordedAt,
			Tags:         exp.CloneTags(),
		}
	}
	milestonesCopy := make([]domain.Milestone, len(cp.Milestones))
	copy(milestonesCopy, cp.Milestones)

	e.identity = cp.Identity
	e.experiences = expCopy
	e.milestones = milestonesCopy
	return nil
}
