package attention

import (
	"context"
	"time"

	"github.com/tochemey/goakt/v2/actors"
	"github.com/tochemey/goakt/v2/goakt"

	"github.com/echocore/cogkernel/actorutil"
	"github.com/echocore/cogkernel/domain"
)

// Client is a typed handle to a spawned Attention actor.
type Client struct {
	system  goakt.ActorSystem
	pid     actors.PID
	timeout time.Duration
}

// NewClient wraps a spawned Attention actor's PID.
func NewClient(system goakt.ActorSystem, pid actors.PID) *Client {
	return &Client{system: system, pid: pid, timeout: actorutil.DefaultTimeout}
}

// UpdateWindowSalience applies the connection boost and records it.
func (c *Client) UpdateWindowSalience(ctx context.Context, window domain.WindowId, base, connectionRelevance float64) (float64, error) {
	reply, err := actorutil.Ask[*UpdateWindowSalienceReply](ctx, c.system, c.pid,
		&UpdateWindowSalienceMsg{Window: window, Base: base, ConnectionRelevance: connectionRelevance}, c.timeout)
	if err != nil {
		return 0, err
	}
	return reply.Salience, nil
}

// Cycle runs one round of competition.
func (c *Client) Cycle(ctx context.Context) (CycleResult, error) {
	reply, err := actorutil.Ask[*CycleReply](ctx, c.system, c.pid, &CycleMsg{}, c.timeout)
	if err != nil {
		return CycleResult{}, err
	}
	return reply.Result, nil
}

// Focus forces a window into focus.
func (c *Client) Focus(ctx context.Context, id domain.WindowId) error {
	reply, err := actorutil.Ask[*FocusReply](ctx, c.system, c.pid, &FocusMsg{ID: id}, c.timeout)
	if err != nil {
		return err
	}
	return reply.Err
}

// Shift forces a focus change.
func (c *Client) Shift(ctx context.Context, to domain.WindowId) (ShiftResult, error) {
	reply, err := actorutil.Ask[*ShiftReply](ctx, c.system, c.pid, &ShiftMsg{To: to}, c.timeout)
	if err != nil {
		return ShiftResult{}, err
	}
	return reply.Result, reply.Err
}

// GetFocus reports the current focus state.
func (c *Client) GetFocus(ctx context.Context) (FocusState, error) {
	reply, err := actorutil.Ask[*GetFocusReply](ctx, c.system, c.pid, &GetFocusMsg{}, c.timeout)
	if err != nil {
		return FocusState{}, err
	}
	return reply.Focus, nil
}

// GetAttentionMap returns the current window→salience map.
func (c *Client) GetAttentionMap(ctx context.Context) (map[domain.WindowId]float64, error) {
	reply, err := actorutil.Ask[*GetAttentionMapReply](ctx, c.system, c.pid, &GetAttentionMapMsg{}, c.timeout)
	if err != nil {
		return nil, err
	}
	return reply.Map, nil
}
