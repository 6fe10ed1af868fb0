package memorywindow

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

// NewActor constructs a Memory Windows actor bounded to maxWindows.
func NewActor(maxWindows int, log *zap.SugaredLogger) *Actor {
	return &Actor{engine: NewEngine(maxWindows), log: log.With("component", "memory")}
}

func (a *Actor) PreStart(context.Context) error { return nil }
func (a *Actor) PostStop(context.Context) error { return nil }

// Receive dispatches each request type to the underlying Engine.
func (a *Actor) Receive(ctx actors.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *OpenWindowMsg:
		w, err := a.engine.OpenWindow(msg.Request)
		ctx.Response(&OpenWindowReply{Window: w, Err: err})
	case *CloseWindowMsg:
		ctx.Response(&CloseWindowReply{Err: a.engine.CloseWindow(msg.ID)})
	case *ListActiveWindowsMsg:
		windows, max := a.engine.ListActiveWindows()
		ctx.Response(&ListActiveWindowsReply{Windows: windows, MaxWindows: max})
	case *ActiveWindowCountMsg:
		ctx.Response(&ActiveWindowCountReply{Count: a.engine.ActiveWindowCount()})
	case *StoreMsg:
		id, err := a.engine.Store(msg.Request)
		ctx.Response(&StoreReply{WindowID: id, Err: err})
	case *UpdateWindowSalienceMsg:
		ctx.Response(&UpdateWindowSalienceReply{Err: a.engine.UpdateWindowSalience(msg.ID, msg.Score)})
	case *RecallMsg:
		matches, err := a.engine.Recall(msg.Query)
		ctx.Response(&RecallReply{Matches: matches, Err: err})
	default:
		ctx.Unhandled()
	}
}
