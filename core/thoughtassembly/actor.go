package thoughtassembly

import (
	"context"

	"github.com/tochemey/goakt/v2/actors"
	"go.uber.org/zap"
)

// Actor is the goakt mailbox wrapper around Engine.
type Actor struct {
	engine *Engine
	log    *zap.SugaredLogger
}

// NewActor constructs a Thought Assembly actor. cacheSize bounds how many
// recent Thoughts stay addressable; maxChainDepth bounds parent chains;
// validateSalience enables per-field range checking in Assemble.
func NewActor(cacheSize, maxChainDepth int, validateSalience bool, log *zap.SugaredLogger) (*Actor, error) {
	engine, err := NewEngine(cacheSize, maxChainDepth, validateSalience)
	if err != nil {
		return nil, err
	}
	return &Actor{engine: engine, log: log.With("component", "thought_assembly")}, nil
}

func (a *Actor) PreStart(context.Context) error { return nil }
func (a *Actor) PostStop(context.Context) error { return nil }

// Receive dispatches each request type to the underlying Engine.
func (a *Actor) Receive(ctx actors.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *AssembleMsg:
		t, err := a.engine.Assemble(msg.Request)
		if err != nil {
			a.log.Debugw("assemble rejected", "error", err)
		}
		ctx.Response(&AssembleReply{Thought: t, Err: err})
	case *AssembleBatchMsg:
		thoughts, err := a.engine.AssembleBatch(msg.Requests)
		ctx.Response(&AssembleBatchReply{Thoughts: thoughts, Err: err})
	case *GetThoughtMsg:
		t, err := a.engine.GetThought(msg.ID)
		ctx.Response(&GetThoughtReply{Thought: t, Err: err})
	case *GetThoughtChainMsg:
		chain, err := a.engine.GetThoughtChain(msg.ID, msg.Depth)
		ctx.Response(&GetThoughtChainReply{Chain: chain, Err: err})
	default:
		ctx.Unhandled()
	}
}
