package salience

import (
	"context"

	"github.com/tochemey/goakt/v2/actors"
	"go.uber.org/zap"

	"github.com/echocore/cogkernel/domain"
)

// Actor is the goakt mailbox wrapper around Engine. One actor, one owner,
// reached only by request/reply messages — no shared mutable state
// (spec.md §5).
type Actor struct {
	engine *Engine
	log    *zap.SugaredLogger
}

// NewActor constructs a Salience actor around a fresh Engine.
func NewActor(weights domain.SalienceWeights, log *zap.SugaredLogger) *Actor {
	return &Actor{engine: NewEngine(weights), log: log.With("component", "salience")}
}

// PreStart is a no-op; Engine is ready as soon as it is constructed.
func (a *Actor) PreStart(context.Context) error { return nil }

// PostStop is a no-op; Engine holds no external resources to release.
func (a *Actor) PostStop(context.Context) error { return nil }

// Receive dispatches each request type to the underlying Engine.
func (a *Actor) Receive(ctx actors.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *RateRequest:
		ctx.Response(&RateReply{Score: a.engine.Rate(msg.Content, msg.Context)})
	case *RateBatchRequest:
		scores, err := a.engine.RateBatch(msg.Contents, msg.Context)
		ctx.Response(&RateBatchReply{Scores: scores, Err: err})
	case *UpdateWeightsRequest:
		err := a.engine.UpdateWeights(msg.Weights)
		if err != nil {
			a.log.Warnw("rejected weight update", "error", err)
		}
		ctx.Response(&UpdateWeightsReply{Err: err})
	case *GetWeightsRequest:
		ctx.Response(&GetWeightsReply{Weights: a.engine.GetWeights()})
	case *GetEmotionalStateRequest:
		ctx.Response(&GetEmotionalStateReply{State: a.engine.GetEmotionalState()})
	case *SetEmotionalStateRequest:
		a.engine.SetEmotionalState(msg.State)
		ctx.Response(&SetEmotionalStateReply{})
	default:
		ctx.Unhandled()
	}
}
