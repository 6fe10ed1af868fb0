package thoughtassembly

import (
	"context"
	"time"

	"github.com/tochemey/goakt/v2/actors"
	"github.com/tochemey/goakt/v2/goakt"

	"github.com/echocore/cogkernel/actorutil"
	"github.com/echocore/cogkernel/domain"
)

// Client is a typed handle to a spawned Thought Assembly actor.
type Client struct {
	system  goakt.ActorSystem
	pid     actors.PID
	timeout time.Duration
}

// NewClient wraps a spawned Thought Assembly actor's PID.
func NewClient(system goakt.ActorSystem, pid actors.PID) *Client {
	return &Client{system: system, pid: pid, timeout: actorutil.DefaultTimeout}
}

// Assemble assembles one Thought.
func (c *Client) Assemble(ctx context.Context, req AssembleRequest) (domain.Thought, error) {
	reply, err := actorutil.Ask[*AssembleReply](ctx, c.system, c.pid, &AssembleMsg{Request: req}, c.timeout)
	if err != nil {
		return domain.Thought{}, err
	}
	return reply.Thought, reply.Err
}

// AssembleBatch assembles several Thoughts in order, failing fast at the
// first error; on failure no partial results are returned.
func (c *Client) AssembleBatch(ctx context.Context, reqs []AssembleRequest) ([]domain.Thought, error) {
	reply, err := actorutil.Ask[*AssembleBatchReply](ctx, c.system, c.pid, &AssembleBatchMsg{Requests: reqs}, c.timeout)
	if err != nil {
		return nil, err
	}
	return reply.Thoughts, reply.Err
}

// GetThought looks up a cached Thought by id.
func (c *Client) GetThought(ctx context.Context, id domain.ThoughtId) (domain.Thought, error) {
	reply, err := actorutil.Ask[*GetThoughtReply](ctx, c.system, c.pid, &GetThoughtMsg{ID: id}, c.timeout)
	if err != nil {
		return domain.Thought{}, err
	}
	return reply.Thought, reply.Err
}

// GetThoughtChain returns a Thought's ancestor chain, leaf-first, bounded
// to at most depth ancestors.
func (c *Client) GetThoughtChain(ctx context.Context, id domain.ThoughtId, depth int) ([]domain.Thought, error) {
	reply, err := actorutil.Ask[*GetThoughtChainReply](ctx, c.system, c.pid, &GetThoughtChainMsg{ID: id, Depth: depth}, c.timeout)
	if err != nil {
		return nil, err
	}
	return reply.Chain, reply.Err
}
