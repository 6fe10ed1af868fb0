package salience

import (
	"context"
	"time"

	"github.com/tochemey/goakt/v2/actors"
	"github.com/tochemey/goakt/v2/goakt"

	"github.com/echocore/cogkernel/actorutil"
	"github.com/echocore/cogkernel/domain"
)

// Client is a typed handle to a spawned Salience actor. The coordinator
// and tests hold a Client rather than a raw PID, matching the non-owning
// reference pattern spec.md §9 describes for the coordinator.
type Client struct {
	system  goakt.ActorSystem
	pid     actors.PID
	timeout time.Duration
}

// NewClient wraps a spawned Salience actor's PID.
func NewClient(system goakt.ActorSystem, pid actors.PID) *Client {
	return &Client{system: system, pid: pid, timeout: actorutil.DefaultTimeout}
}

// WithTimeout returns a Client whose requests use the given deadline.
func (c *Client) WithTimeout(d time.Duration) *Client {
	cp := *c
	cp.timeout = d
	return &cp
}

// Rate rates a single Content under the given context.
func (c *Client) Rate(ctx context.Context, content domain.Content, rctx domain.RatingContext) (domain.SalienceScore, error) {
	reply, err := actorutil.Ask[*RateReply](ctx, c.system, c.pid, &RateRequest{Content: content, Context: rctx}, c.timeout)
	if err != nil {
		return domain.SalienceScore{}, err
	}
	return reply.Score, nil
}

// RateBatch rates several Content in order, failing atomically.
func (c *Client) RateBatch(ctx context.Context, contents []domain.Content, rctx domain.RatingContext) ([]domain.SalienceScore, error) {
	reply, err := actorutil.Ask[*RateBatchReply](ctx, c.system, c.pid, &RateBatchRequest{Contents: contents, Context: rctx}, c.timeout)
	if err != nil {
		return nil, err
	}
	return reply.Scores, reply.Err
}

// UpdateWeights replaces the current weights.
func (c *Client) UpdateWeights(ctx context.Context, w domain.SalienceWeights) error {
	reply, err := actorutil.Ask[*UpdateWeightsReply](ctx, c.system, c.pid, &UpdateWeightsRequest{Weights: w}, c.timeout)
	if err != nil {
		return err
	}
	return reply.Err
}

// GetWeights returns the current weights.
func (c *Client) GetWeights(ctx context.Context) (domain.SalienceWeights, error) {
	reply, err := actorutil.Ask[*GetWeightsReply](ctx, c.system, c.pid, &GetWeightsRequest{}, c.timeout)
	if err != nil {
		return domain.SalienceWeights{}, err
	}
	return reply.Weights, nil
}

// GetEmotionalState returns the current emotional state.
func (c *Client) GetEmotionalState(ctx context.Context) (domain.EmotionalState, error) {
	reply, err := actorutil.Ask[*GetEmotionalStateReply](ctx, c.system, c.pid, &GetEmotionalStateRequest{}, c.timeout)
	if err != nil {
		return domain.EmotionalState{}, err
	}
	return reply.State, nil
}

// SetEmotionalState replaces the current emotional state.
func (c *Client) SetEmotionalState(ctx context.Context, s domain.EmotionalState) error {
	_, err := actorutil.Ask[*SetEmotionalStateReply](ctx, c.system, c.pid, &SetEmotionalStateRequest{State: s}, c.timeout)
	return err
}
