// Package memstore is an in-process fake VectorStore, the zero-config
// default when no external store is wired. It lets the core package build
// and be exercised in tests without any network collaborator.
package memstore

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/echocore/cogkernel/store"
)

type record struct {
	vector  []float32
	payload store.Payload
}

// Store is an in-memory VectorStore keyed by collection then id.
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]record
}

// New constructs an empty Store.
func New() *Store {
	return &Store{data: make(map[string]map[string]record)}
}

// Upsert inserts or replaces one vector+payload record.
func (s *Store) Upsert(_ context.Context, collection, id string, vector []float32, payload store.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.data[collection]
	if !ok {
		coll = make(map[string]record)
		s.data[collection] = coll
	}
	cp := make([]float32, len(vector))
	copy(cp, vector)
	coll[id] = record{vector: cp, payload: payload}
	return nil
}

// Count reports how many records a collection holds.
func (s *Store) Count(_ context.Context, collection string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[collection]), nil
}

// QueryTopK returns the k closest records to vector by cosine similarity.
func (s *Store) QueryTopK(_ context.Context, collection string, vector []float32, k int) ([]store.ScoredID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll := s.data[collection]
	out := make([]store.ScoredID, 0, len(coll))
	for id, rec := range coll {
		out = append(out, store.ScoredID{ID: id, Score: cosineSimilarity(vector, rec.vector)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if k >= 0 && len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
