// Package actorutil provides a small generic helper around goakt's
// request/reply primitive so each component's Client type doesn't repeat
// the same type assertion boilerplate.
package actorutil

import (
	"context"
	"fmt"
	"time"

	"github.com/tochemey/goakt/v2/actors"
	"github.com/tochemey/goakt/v2/goakt"
)

// DefaultTimeout bounds a single request/reply round trip when the caller
// does not supply its own deadline (spec.md §5 "every request carries an
// optional deadline").
const DefaultTimeout = 5 * time.Second

// Ask sends msg to pid via system.Ask and type-asserts the reply to R,
// giving every component Client a uniform, typed request/reply call.
func Ask[R any](ctx context.Context, system goakt.ActorSystem, pid actors.PID, msg interface{}, timeout time.Duration) (R, error) {
	var zero R
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	reply, err := system.Ask(ctx, pid, msg, timeout)
	if err != nil {
		return zero, fmt.Errorf("ask %T: %w", msg, err)
	}
	typed, ok := reply.(R)
	if !ok {
		return zero, fmt.Errorf("ask %T: unexpected reply type %T", msg, reply)
	}
	return typed, nil
}
