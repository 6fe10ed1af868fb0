package domain

import "time"

// Experience is a durably recorded Thought considered significant.
type Experience struct {
	ID          ExperienceId
	ThoughtID   ThoughtId
	Summary     string
	Significance float64
	RecordedAt  time.Time
	Tags        map[string]struct{}
}

// CloneTags returns a fresh copy of the Tags set.
func (e Experience) CloneTags() map[string]struct{} {
	out := make(map[string]struct{}, len(e.Tags))
	for t := range e.Tags {
		out[t] = struct{}{}
	}
	return out
}

// Milestone names a marker grouping related Experiences at a timestamp.
type Milestone struct {
	ID                 MilestoneId
	Name               string
	Description        string
	AchievedAt         time.Time
	RelatedExperiences map[ExperienceId]struct{}
}

// Identity anchors a persistent name across time. Name is fixed at init.
type Identity struct {
	Name            string
	CreatedAt       time.Time
	ExperienceCount uint64
	MilestoneCount  uint64
}

// Uptime derives elapsed time since CreatedAt.
func (id Identity) Uptime(now time.Time) time.Duration {
	return now.Sub(id.CreatedAt)
}

// Checkpoint is an immutable deep snapshot of Continuity state taken at a
// timestamp, versioned by a single monotonically increasing integer
// (spec.md §6 "Persisted state layout").
type Checkpoint struct {
	ID          CheckpointId
	Version     uint64
	TakenAt     time.Time
	Identity    Identity
	Experiences map[ExperienceId]Experience
	Milestones  []Milestone
}
