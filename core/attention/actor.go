package attention

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

// NewActor constructs an Attention actor.
func NewActor(cfg Config, log *zap.SugaredLogger) *Actor {
	return &Actor{engine: NewEngine(cfg), log: log.With("component", "attention")}
}

func (a *Actor) PreStart(context.Context) error { return nil }
func (a *Actor) PostStop(context.Context) error { return nil }

// Receive dispatches each request type to the underlying Engine.
func (a *Actor) Receive(ctx actors.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *UpdateWindowSalienceMsg:
		s := a.engine.UpdateWindowSalience(msg.Window, msg.Base, msg.ConnectionRelevance)
		ctx.Response(&UpdateWindowSalienceReply{Salience: s})
	case *CycleMsg:
		ctx.Response(&CycleReply{Result: a.engine.Cycle()})
	case *FocusMsg:
		ctx.Response(&FocusReply{Err: a.engine.Focus(msg.ID)})
	case *ShiftMsg:
		result, err := a.engine.Shift(msg.To)
		ctx.Response(&ShiftReply{Result: result, Err: err})
	case *GetFocusMsg:
		ctx.Response(&GetFocusReply{Focus: a.engine.GetFocus()})
	case *GetAttentionMapMsg:
		ctx.Response(&GetAttentionMapReply{Map: a.engine.GetAttentionMap()})
	default:
		ctx.Unhandled()
	}
}
