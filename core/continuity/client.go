package continuity

import (
	"context"
	"time"

	"github.com/tochemey/goakt/v2/actors"
	"github.com/tochemey/goakt/v2/goakt"

	"github.com/echocore/cogkernel/actorutil"
	"github.com/echocore/cogkernel/domain"
)

// Client is a typed handle to a spawned Continuity actor.
type Client struct {
	system  goakt.ActorSystem
	pid     actors.PID
	timeout time.Duration
}

// NewClient wraps a spawned Continuity actor's PID.
func NewClient(system goakt.ActorSystem, pid actors.PID) *Client {
	return &Client{system: system, pid: pid, timeout: actorutil.DefaultTimeout}
}

// WhoAmI returns the current Identity.
func (c *Client) WhoAmI(ctx context.Context) (domain.Identity, error) {
	reply, err := actorutil.Ask[*WhoAmIReply](ctx, c.system, c.pid, &WhoAmIMsg{}, c.timeout)
	if err != nil {
		return domain.Identity{}, err
	}
	return reply.Identity, nil
}

// RecordExperience records an Experience, returning its minted id.
func (c *Client) RecordExperience(ctx context.Context, exp domain.Experience) (domain.ExperienceId, error) {
	reply, err := actorutil.Ask[*RecordExperienceReply](ctx, c.system, c.pid, &RecordExperienceMsg{Experience: exp}, c.timeout)
	if err != nil {
		return "", err
	}
	return reply.ID, reply.Err
}

// GetExperience looks up a recorded Experience by id.
func (c *Client) GetExperience(ctx context.Context, id domain.ExperienceId) (domain.Experience, error) {
	reply, err := actorutil.Ask[*GetExperienceReply](ctx, c.system, c.pid, &GetExperienceMsg{ID: id}, c.timeout)
	if err != nil {
		return domain.Experience{}, err
	}
	return reply.Experience, reply.Err
}

// GetTimeline returns experiences recorded within [start, end], inclusive.
func (c *Client) GetTimeline(ctx context.Context, start, end time.Time) ([]domain.Experience, error) {
	reply, err := actorutil.Ask[*GetTimelineReply](ctx, c.system, c.pid, &GetTimelineMsg{Start: start, End: end}, c.timeout)
	if err != nil {
		return nil, err
	}
	return reply.Experiences, nil
}

// AddMilestone records a Milestone, returning its minted id.
func (c *Client) AddMilestone(ctx context.Context, m domain.Milestone) (domain.MilestoneId, error) {
	reply, err := actorutil.Ask[*AddMilestoneReply](ctx, c.system, c.pid, &AddMilestoneMsg{Milestone: m}, c.timeout)
	if err != nil {
		return "", err
	}
	return reply.ID, reply.Err
}

// GetMilestones returns every milestone, chronological.
func (c *Client) GetMilestones(ctx context.Context) ([]domain.Milestone, error) {
	reply, err := actorutil.Ask[*GetMilestonesReply](ctx, c.system, c.pid, &GetMilestonesMsg{}, c.timeout)
	if err != nil {
		return nil, err
	}
	return reply.Milestones, nil
}

// Checkpoint takes a full snapshot, returning its minted id.
func (c *Client) Checkpoint(ctx context.Context) (domain.CheckpointId, error) {
	reply, err := actorutil.Ask[*CheckpointReply](ctx, c.system, c.pid, &CheckpointMsg{}, c.timeout)
	if err != nil {
		return "", err
	}
	return reply.ID, reply.Err
}

// Restore replaces state from a prior Checkpoint. Destructive; no undo.
func (c *Client) Restore(ctx context.Context, id domain.CheckpointId) error {
	reply, err := actorutil.Ask[*RestoreReply](ctx, c.system, c.pid, &RestoreMsg{ID: id}, c.timeout)
	if err != nil {
		return err
	}
	return reply.Err
}
