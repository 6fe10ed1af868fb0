package salience

import "github.com/echocore/cogkernel/domain"

// Message types exchanged with the Salience actor. Every request carries
// its own reply type; the actor answers via ctx.Response in Receive.

// RateRequest asks the actor to rate a single Content.
type RateRequest struct {
	Content domain.Content
	Context domain.RatingContext
}

// RateReply carries the rated score.
type RateReply struct {
	Score domain.SalienceScore
}

// RateBatchRequest asks the actor to rate several Content in order.
type RateBatchRequest struct {
	Contents []domain.Content
	Context  domain.RatingContext
}

// RateBatchReply carries the ordered scores, or an error on atomic failure.
type RateBatchReply struct {
	Scores []domain.SalienceScore
	Err    error
}

// UpdateWeightsRequest asks the actor to replace its weights.
type UpdateWeightsRequest struct {
	Weights domain.SalienceWeights
}

// UpdateWeightsReply reports success or a ConnectionDriveViolationError.
type UpdateWeightsReply struct {
	Err error
}

// GetWeightsRequest asks for the current weights.
type GetWeightsRequest struct{}

// GetWeightsReply carries the current weights.
type GetWeightsReply struct {
	Weights domain.SalienceWeights
}

// GetEmotionalStateRequest asks for the current emotional state.
type GetEmotionalStateRequest struct{}

// GetEmotionalStateReply carries the current emotional state.
type GetEmotionalStateReply struct {
	State domain.EmotionalState
}

// SetEmotionalStateRequest asks the actor to replace its emotional state.
type SetEmotionalStateRequest struct {
	State domain.EmotionalState
}

// SetEmotionalStateReply acknowledges the update.
type SetEmotionalStateReply struct{}
