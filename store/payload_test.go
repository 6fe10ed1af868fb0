package store

import (
	"testing"
	"time"

	"github.com/x448/float16"

	"github.com/echocore/cogkernel/domain"
)

func TestSaliencePayloadRoundTripsThroughFloat16(t *testing.T) {
	score := domain.SalienceScore{Importance: 0.5, Novelty: 0.25, Relevance: 0.75, Valence: -0.5, ConnectionRelevance: 0.9}
	payload := SaliencePayload(score)

	got := float16.Frombits(payload["importance"]).Float32()
	if diff := float64(got) - score.Importance; diff > 0.01 || diff < -0.01 {
		t.Fatalf("importance round-trip = %v, want ~%v", got, score.Importance)
	}
}

func TestThoughtPayloadIncludesIdentifyingFields(t *testing.T) {
	thought := domain.Thought{
		ID:          "t1",
		Salience:    domain.SalienceScore{Importance: 0.5},
		AssembledAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Strategy:    domain.StrategyDefault,
	}
	payload := ThoughtPayload(thought, []string{"tag1"})

	if payload["thought_id"] != "t1" {
		t.Fatalf("thought_id = %v, want t1", payload["thought_id"])
	}
	if payload["recorded_at"] != "2026-01-01T00:00:00Z" {
		t.Fatalf("recorded_at = %v", payload["recorded_at"])
	}
	tags, ok := payload["tags"].([]string)
	if !ok || len(tags) != 1 || tags[0] != "tag1" {
		t.Fatalf("tags = %v", payload["tags"])
	}
}
