package memstore

import (
	"context"
	"testing"

	"github.com/echocore/cogkernel/store"
)

func TestUpsertAndCount(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Upsert(ctx, "memories", "a", []float32{1, 0}, store.Payload{"k": "v"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	count, err := s.Count(ctx, "memories")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("Count = %d, want 1", count)
	}

	// Re-upserting the same id replaces rather than duplicating.
	if err := s.Upsert(ctx, "memories", "a", []float32{0, 1}, store.Payload{"k": "v2"}); err != nil {
		t.Fatalf("Upsert replace: %v", err)
	}
	count, _ = s.Count(ctx, "memories")
	if count != 1 {
		t.Fatalf("Count after replace = %d, want 1", count)
	}
}

func TestQueryTopKOrdersByCosineSimilarity(t *testing.T) {
	s := New()
	ctx := context.Background()

	_ = s.Upsert(ctx, "memories", "close", []float32{1, 0}, nil)
	_ = s.Upsert(ctx, "memories", "orthogonal", []float32{0, 1}, nil)
	_ = s.Upsert(ctx, "memories", "opposite", []float32{-1, 0}, nil)

	results, err := s.QueryTopK(ctx, "memories", []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("QueryTopK: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].ID != "close" {
		t.Fatalf("results[0].ID = %q, want %q", results[0].ID, "close")
	}
	if results[0].Score < results[1].Score {
		t.Fatalf("results not ordered by descending score: %v", results)
	}
}

func TestQueryTopKEmptyCollection(t *testing.T) {
	s := New()
	results, err := s.QueryTopK(context.Background(), "nothing-here", []float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("QueryTopK: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("len(results) = %d, want 0", len(results))
	}
}

func TestFakeEmbedderIsDeterministic(t *testing.T) {
	e := NewFakeEmbedder(16)
	v1, err := e.Embed(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	v2, err := e.Embed(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(v1) != 16 || len(v2) != 16 {
		t.Fatalf("unexpected vector length: %d, %d", len(v1), len(v2))
	}
	for i := range v1 {
		if v1[i] != v2[i] {
			t.Fatalf("Embed not deterministic at index %d: %v != %v", i, v1[i], v2[i])
		}
	}
}
