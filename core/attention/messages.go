package attention

import "github.com/echocore/cogkernel/domain"

// UpdateWindowSalienceMsg asks the actor to apply the connection-boost
// formula and record the result in the attention map.
type UpdateWindowSalienceMsg struct {
	Window              domain.WindowId
	Base                float64
	ConnectionRelevance float64
}

// UpdateWindowSalienceReply carries the boosted value.
type UpdateWindowSalienceReply struct {
	Salience float64
}

// CycleMsg asks the actor to run one round of competition.
type CycleMsg struct{}

// CycleReply carries the cycle's outcome.
type CycleReply struct {
	Result CycleResult
}

// FocusMsg asks the actor to force a window into focus.
type FocusMsg struct {
	ID domain.WindowId
}

// FocusReply acknowledges the forced focus or carries WindowNotFoundError.
type FocusReply struct {
	Err error
}

// ShiftMsg asks the actor to force a focus change.
type ShiftMsg struct {
	To domain.WindowId
}

// ShiftReply carries the shift outcome or an error.
type ShiftReply struct {
	Result ShiftResult
	Err    error
}

// GetFocusMsg asks for the current focus state.
type GetFocusMsg struct{}

// GetFocusReply carries the current focus state.
type GetFocusReply struct {
	Focus FocusState
}

// GetAttentionMapMsg asks for the current attention map.
type GetAttentionMapMsg struct{}

// GetAttentionMapReply carries a copy of the attention map.
type GetAttentionMapReply struct {
	Map map[domain.WindowId]float64
}
