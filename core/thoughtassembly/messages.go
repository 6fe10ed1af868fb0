package thoughtassembly

import "github.com/echocore/cogkernel/domain"

// AssembleMsg asks the actor to assemble one Thought.
type AssembleMsg struct {
	Request AssembleRequest
}

// AssembleReply carries the assembled Thought or an error.
type AssembleReply struct {
	Thought domain.Thought
	Err     error
}

// AssembleBatchMsg asks the actor to assemble several Thoughts in order.
type AssembleBatchMsg struct {
	Requests []AssembleRequest
}

// AssembleBatchReply carries the assembled Thoughts, or an error if any
// request failed (in which case Thoughts is empty).
type AssembleBatchReply struct {
	Thoughts []domain.Thought
	Err      error
}

// GetThoughtMsg asks the actor for a cached Thought.
type GetThoughtMsg struct {
	ID domain.ThoughtId
}

// GetThoughtReply carries the Thought or ThoughtNotFoundError.
type GetThoughtReply struct {
	Thought domain.Thought
	Err     error
}

// GetThoughtChainMsg asks for a Thought's ancestor chain, leaf-first,
// bounded to at most Depth ancestors.
type GetThoughtChainMsg struct {
	ID    domain.ThoughtId
	Depth int
}

// GetThoughtChainReply carries the chain or an error.
type GetThoughtChainReply struct {
	Chain []domain.Thought
	Err   error
}
