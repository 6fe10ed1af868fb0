package continuity

import (
	"context"

	"github.com/tochemey/goakt/v2/actors"
	"go.uber.org/zap"
)

// Actor is the goakt mailbox wrapper around Engine. Checkpoints are taken
// under this actor's own mailbox: any RecordExperience arriving while a
// Checkpoint message is being processed is serialized after it.
type Actor struct {
	engine *Engine
	log    *zap.SugaredLogger
}

// NewActor constructs a Continuity actor anchored to name.
func NewActor(name string, log *zap.SugaredLogger) *Actor {
	return &Actor{engine: NewEngine(name), log: log.With("component", "continuity")}
}

func (a *Actor) PreStart(context.Context) error { return nil }
func (a *Actor) PostStop(context.Context) error { return nil }

// Receive dispatches each request type to the underlying Engine.
func (a *Actor) Receive(ctx actors.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *WhoAmIMsg:
		ctx.Response(&WhoAmIReply{Identity: a.engine.WhoAmI()})
	case *RecordExperienceMsg:
		id, err := a.engine.RecordExperience(msg.Experience)
		ctx.Response(&RecordExperienceReply{ID: id, Err: err})
	case *GetExperienceMsg:
		exp, err := a.engine.GetExperience(msg.ID)
		ctx.Response(&GetExperienceReply{Experience: exp, Err: err})
	case *GetTimelineMsg:
		ctx.Response(&GetTimelineReply{Experiences: a.engine.GetTimeline(msg.Start, msg.End)})
	case *AddMilestoneMsg:
		id, err := a.engine.AddMilestone(msg.Milestone)
		ctx.Response(&AddMilestoneReply{ID: id, Err: err})
	case *GetMilestonesMsg:
		ctx.Response(&GetMilestonesReply{Milestones: a.engine.GetMilestones()})
	case *CheckpointMsg:
		id, err := a.engine.Checkpoint()
		if err != nil {
			a.log.Errorw("checkpoint failed", "error", err)
		}
		ctx.Response(&CheckpointReply{ID: id, Err: err})
	case *RestoreMsg:
		err := a.engine.Restore(msg.ID)
		if err != nil {
			a.log.Warnw("restore failed", "error", err)
		}
		ctx.Response(&RestoreReply{Err: err})
	default:
		ctx.Unhandled()
	}
}
