// Package domain holds the value types shared across every cognitive
// pipeline component: Content, salience, windows, thoughts, experiences,
// identity and the opaque ids that thread through all of them.
package domain

import "github.com/google/uuid"

// WindowId identifies a Memory window. Opaque, globally unique, order-free.
type WindowId string

// ThoughtId identifies a Thought.
type ThoughtId string

// ExperienceId identifies an Experience.
type ExperienceId string

// MilestoneId identifies a Milestone.
type MilestoneId string

// CheckpointId identifies a Continuity checkpoint.
type CheckpointId string

// NewWindowId mints a fresh, globally unique WindowId.
func NewWindowId() WindowId { return WindowId(uuid.New().String()) }

// NewThoughtId mints a fresh, globally unique ThoughtId.
func NewThoughtId() ThoughtId { return ThoughtId(uuid.New().String()) }

// NewExperienceId mints a fresh, globally unique ExperienceId.
func NewExperienceId() ExperienceId { return ExperienceId(uuid.New().String()) }

// NewMilestoneId mints a fresh, globally unique MilestoneId.
func NewMilestoneId() MilestoneId { return MilestoneId(uuid.New().String()) }

// NewCheckpointId mints a fresh, globally unique CheckpointId.
func NewCheckpointId() CheckpointId { return CheckpointId(uuid.New().String()) }
