package continuity

import (
	"time"

	"github.com/echocore/cogkernel/domain"
)

// WhoAmIMsg asks for the current Identity.
type WhoAmIMsg struct{}

// WhoAmIReply carries the Identity.
type WhoAmIReply struct {
	Identity domain.Identity
}

// RecordExperienceMsg asks the actor to record an Experience.
type RecordExperienceMsg struct {
	Experience domain.Experience
}

// RecordExperienceReply carries the minted ExperienceId.
type RecordExperienceReply struct {
	ID  domain.ExperienceId
	Err error
}

// GetExperienceMsg asks for one recorded Experience.
type GetExperienceMsg struct {
	ID domain.ExperienceId
}

// GetExperienceReply carries the Experience or ExperienceNotFoundError.
type GetExperienceReply struct {
	Experience domain.Experience
	Err        error
}

// GetTimelineMsg asks for experiences within [Start, End], inclusive.
type GetTimelineMsg struct {
	Start time.Time
	End   time.Time
}

// GetTimelineReply carries the chronological slice.
type GetTimelineReply struct {
	Experiences []domain.Experience
}

// AddMilestoneMsg asks the actor to record a Milestone.
type AddMilestoneMsg struct {
	Milestone domain.Milestone
}

// AddMilestoneReply carries the minted MilestoneId.
type AddMilestoneReply struct {
	ID  domain.MilestoneId
	Err error
}

// GetMilestonesMsg asks for every milestone, chronological.
type GetMilestonesMsg struct{}

// GetMilestonesReply carries the milestones.
type GetMilestonesReply struct {
	Milestones []domain.Milestone
}

// CheckpointMsg asks the actor to take a full snapshot.
type CheckpointMsg struct{}

// CheckpointReply carries the minted CheckpointId.
type CheckpointReply struct {
	ID  domain.CheckpointId
	Err error
}

// RestoreMsg asks the actor to replace state from a prior Checkpoint.
type RestoreMsg struct {
	ID domain.CheckpointId
}

// RestoreReply acknowledges the restore or carries CheckpointNotFoundError.
type RestoreReply struct {
	Err error
}
