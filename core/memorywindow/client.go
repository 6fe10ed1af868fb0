package memorywindow

import (
	"context"
	"time"

	"github.com/tochemey/goakt/v2/actors"
	"github.com/tochemey/goakt/v2/goakt"

	"github.com/echocore/cogkernel/actorutil"
	"github.com/echocore/cogkernel/domain"
)

// Client is a typed handle to a spawned Memory Windows actor.
type Client struct {
	system  goakt.ActorSystem
	pid     actors.PID
	timeout time.Duration
}

// NewClient wraps a spawned Memory Windows actor's PID.
func NewClient(system goakt.ActorSystem, pid actors.PID) *Client {
	return &Client{system: system, pid: pid, timeout: actorutil.DefaultTimeout}
}

// OpenWindow opens a new window.
func (c *Client) OpenWindow(ctx context.Context, req OpenWindowRequest) (domain.Window, error) {
	reply, err := actorutil.Ask[*OpenWindowReply](ctx, c.system, c.pid, &OpenWindowMsg{Request: req}, c.timeout)
	if err != nil {
		return domain.Window{}, err
	}
	return reply.Window, reply.Err
}

// CloseWindow closes a window.
func (c *Client) CloseWindow(ctx context.Context, id domain.WindowId) error {
	reply, err := actorutil.Ask[*CloseWindowReply](ctx, c.system, c.pid, &CloseWindowMsg{ID: id}, c.timeout)
	if err != nil {
		return err
	}
	return reply.Err
}

// ListActiveWindows returns every open window and MAX_WINDOWS.
func (c *Client) ListActiveWindows(ctx context.Context) ([]domain.Window, int, error) {
	reply, err := actorutil.Ask[*ListActiveWindowsReply](ctx, c.system, c.pid, &ListActiveWindowsMsg{}, c.timeout)
	if err != nil {
		return nil, 0, err
	}
	return reply.Windows, reply.MaxWindows, nil
}

// ActiveWindowCount reports how many windows are open.
func (c *Client) ActiveWindowCount(ctx context.Context) (int, error) {
	reply, err := actorutil.Ask[*ActiveWindowCountReply](ctx, c.system, c.pid, &ActiveWindowCountMsg{}, c.timeout)
	if err != nil {
		return 0, err
	}
	return reply.Count, nil
}

// Store deposits Content per req.
func (c *Client) Store(ctx context.Context, req StoreRequest) (domain.WindowId, error) {
	reply, err := actorutil.Ask[*StoreReply](ctx, c.system, c.pid, &StoreMsg{Request: req}, c.timeout)
	if err != nil {
		return "", err
	}
	return reply.WindowID, reply.Err
}

// UpdateWindowSalience replaces a window's salience.
func (c *Client) UpdateWindowSalience(ctx context.Context, id domain.WindowId, score domain.SalienceScore) error {
	reply, err := actorutil.Ask[*UpdateWindowSalienceReply](ctx, c.system, c.pid, &UpdateWindowSalienceMsg{ID: id, Score: score}, c.timeout)
	if err != nil {
		return err
	}
	return reply.Err
}

// Recall scores open windows against query.
func (c *Client) Recall(ctx context.Context, query string) ([]RecallMatch, error) {
	reply, err := actorutil.Ask[*RecallReply](ctx, c.system, c.pid, &RecallMsg{Query: query}, c.timeout)
	if err != nil {
		return nil, err
	}
	return reply.Matches, reply.Err
}
