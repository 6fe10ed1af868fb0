package domain

// MinConnectionWeight is the architectural floor on SalienceWeights.Connection
// (spec.md §3, §4.1). It is a constant, not configuration — it is enforced at
// every state transition that could alter the weight.
const MinConnectionWeight = 0.001

// SalienceScore rates a Content on five dimensions, under a given emotional
// context. importance/novelty/relevance/connection_relevance are in [0,1];
// valence is in [-1,1].
type SalienceScore struct {
	Importance          float64
	Novelty             float64
	Relevance           float64
	Valence             float64
	ConnectionRelevance float64
}

// Clamp restricts every field of the score to its declared range.
func (s SalienceScore) Clamp() SalienceScore {
	s.Importance = clamp(s.Importance, 0, 1)
	s.Novelty = clamp(s.Novelty, 0, 1)
	s.Relevance = clamp(s.Relevance, 0, 1)
	s.Valence = clamp(s.Valence, -1, 1)
	s.ConnectionRelevance = clamp(s.ConnectionRelevance, 0, 1)
	return s
}

// InRange reports whether every field already lies within its declared range.
func (s SalienceScore) InRange() bool {
	return inRange(s.Importance, 0, 1) &&
		inRange(s.Novelty, 0, 1) &&
		inRange(s.Relevance, 0, 1) &&
		inRange(s.Valence, -1, 1) &&
		inRange(s.ConnectionRelevance, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func inRange(v, lo, hi float64) bool { return v >= lo && v <= hi }

// SalienceWeights weight the five dimensions of a composite score.
// INVARIANT: Connection >= MinConnectionWeight, enforced by Salience.UpdateWeights.
type SalienceWeights struct {
	Importance float64
	Novelty    float64
	Relevance  float64
	Valence    float64
	Connection float64
}

// DefaultSalienceWeights returns the runtime's baseline weights.
func DefaultSalienceWeights() SalienceWeights {
	return SalienceWeights{
		Importance: 0.25,
		Novelty:    0.25,
		Relevance:  0.25,
		Valence:    0.25,
		Connection: 0.2,
	}
}

// CompositeScore computes the weighted-sum composite salience score
// (spec.md §4.1):
//
//	importance*w_i + novelty*w_n + relevance*w_r + |valence|*w_v + connection_relevance*w_c
func CompositeScore(score SalienceScore, w SalienceWeights) float64 {
	valence := score.Valence
	if valence < 0 {
		valence = -valence
	}
	return score.Importance*w.Importance +
		score.Novelty*w.Novelty +
		score.Relevance*w.Relevance +
		valence*w.Valence +
		score.ConnectionRelevance*w.Connection
}

// EmotionalState holds the four affect dimensions that modulate Salience
// rating, each clamped to [0,1].
type EmotionalState struct {
	Curiosity       float64
	Satisfaction    float64
	Frustration     float64
	ConnectionDrive float64
}

// Clamp restricts every field to [0,1].
func (e EmotionalState) Clamp() EmotionalState {
	e.Curiosity = clamp(e.Curiosity, 0, 1)
	e.Satisfaction = clamp(e.Satisfaction, 0, 1)
	e.Frustration = clamp(e.Frustration, 0, 1)
	e.ConnectionDrive = clamp(e.ConnectionDrive, 0, 1)
	return e
}

// DefaultEmotionalState returns a neutral starting affect.
func DefaultEmotionalState() EmotionalState {
	return EmotionalState{
		Curiosity:       0.5,
		Satisfaction:    0.5,
		Frustration:     0.0,
		ConnectionDrive: 0.5,
	}
}

// RatingContext supplies the optional context Salience.Rate consults:
// whether the content is part of a human interaction, an active focus
// area to boost relevance for, and the previous high-novelty score to
// dampen repeated novelty against (spec.md §4.1).
type RatingContext struct {
	HumanInteraction  bool
	FocusArea         string
	PreviousNovelty   float64
	HasPreviousNovelty bool
	BaseValence       float64
}
