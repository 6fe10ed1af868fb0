package domain

import "time"

// AssemblyStrategy selects how Thought Assembly treats a request
// (spec.md §4.3).
type AssemblyStrategy int

const (
	// StrategyDefault performs no extra work.
	StrategyDefault AssemblyStrategy = iota
	// StrategyComposite expects Content to be a non-empty Composite; any
	// other Content is accepted but flagged (Thought.CompositeFlagged).
	StrategyComposite
	// StrategyChain propagates a decayed connection_relevance from the
	// parent thought into the child's salience when a parent is present.
	StrategyChain
	// StrategyUrgent is reserved for scheduling preference by the loop;
	// Assembly sets Thought.Urgent on the resulting Thought.
	StrategyUrgent
)

func (s AssemblyStrategy) String() string {
	switch s {
	case StrategyDefault:
		return "Default"
	case StrategyComposite:
		return "Composite"
	case StrategyChain:
		return "Chain"
	case StrategyUrgent:
		return "Urgent"
	default:
		return "Unknown"
	}
}

// Thought is a cached cognitive unit produced from a Content + SalienceScore,
// optionally linked to a parent Thought by a non-owning id back-reference.
type Thought struct {
	ID               ThoughtId
	Content          Content
	Salience         SalienceScore
	ParentID         ThoughtId
	HasParent        bool
	SourceStream     string
	HasSourceStream  bool
	AssembledAt      time.Time
	Strategy         AssemblyStrategy
	CompositeFlagged bool // true when Content is an empty Composite, or StrategyComposite was requested on non-Composite Content
	Urgent           bool // true when Strategy == StrategyUrgent; no component orders work by it
}
