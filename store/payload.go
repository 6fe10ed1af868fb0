package store

import (
	"time"

	"github.com/x448/float16"

	"github.com/echocore/cogkernel/domain"
)

// SaliencePayload narrows a SalienceScore's fields to float16 before they
// enter a Payload, keeping stored payload vectors compact the way the
// teacher's tensor paths narrow precision before persisting.
func SaliencePayload(score domain.SalienceScore) map[string]uint16 {
	return map[string]uint16{
		"importance":           float16.Fromfloat32(float32(score.Importance)).Bits(),
		"novelty":              float16.Fromfloat32(float32(score.Novelty)).Bits(),
		"relevance":            float16.Fromfloat32(float32(score.Relevance)).Bits(),
		"valence":              float16.Fromfloat32(float32(score.Valence)).Bits(),
		"connection_relevance": float16.Fromfloat32(float32(score.ConnectionRelevance)).Bits(),
	}
}

// ThoughtPayload builds the minimum payload spec.md §6 requires for a
// consolidated Thought: {thought_id, salience_fields…, recorded_at, tags}.
func ThoughtPayload(thought domain.Thought, tags []string) Payload {
	return Payload{
		"thought_id":   string(thought.ID),
		"salience":     SaliencePayload(thought.Salience),
		"recorded_at":  thought.AssembledAt.Format(time.RFC3339Nano),
		"tags":         tags,
		"strategy":     thought.Strategy.String(),
	}
}
