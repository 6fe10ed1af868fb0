// Package supabasestore implements store.VectorStore against a
// Postgres/pgvector-backed Supabase project, adapted from the teacher's
// table layout (core/memory/supabase_impl.go) to the one-table-per-collection
// model spec.md §6 requires, using the Supabase and PostgREST Go clients
// instead of the teacher's hand-rolled net/http calls.
package supabasestore

import (
	"context"
	"encoding/json"
	"fmt"

	supabase "github.com/supabase-community/supabase-go"

	"github.com/echocore/cogkernel/store"
)

// Store is a Supabase-backed store.VectorStore. Each collection maps to a
// table of the same name with columns (id text primary key, vector
// vector(D), payload jsonb).
type Store struct {
	client *supabase.Client
}

// New wraps a Supabase project's REST endpoint and service-role key.
func New(projectURL, apiKey string) (*Store, error) {
	client, err := supabase.NewClient(projectURL, apiKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("new supabase client: %w", err)
	}
	return &Store{client: client}, nil
}

type memoryRow struct {
	ID      string          `json:"id"`
	Vector  []float32       `json:"vector"`
	Payload json.RawMessage `json:"payload"`
}

// Upsert writes one row to collection, keyed by id, replacing on conflict.
func (s *Store) Upsert(ctx context.Context, collection, id string, vector []float32, payload store.Payload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	row := memoryRow{ID: id, Vector: vector, Payload: payloadJSON}

	_, _, err = s.client.From(collection).Upsert(row, "id", "", "").Execute()
	if err != nil {
		return fmt.Errorf("upsert %s/%s: %w", collection, id, err)
	}
	return nil
}

// Count returns the row count for collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	_, count, err := s.client.From(collection).
		Select("id", "exact", false).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return int(count), nil
}

// QueryTopK calls the project's match_<collection> RPC function, which is
// expected to run a pgvector similarity search and return up to k rows
// ordered by similarity, mirroring the teacher's RPC-based search pattern
// (core/memory/supabase_impl.go's ExecuteSQL/RPC helpers).
func (s *Store) QueryTopK(ctx context.Context, collection string, vector []float32, k int) ([]store.ScoredID, error) {
	raw := s.client.Rpc("match_"+collection, "", map[string]any{
		"query_vector": vector,
		"match_count":  k,
	})

	var rows []struct {
		ID    string  `json:"id"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, fmt.Errorf("query top-k %s: decode rpc response: %w", collection, err)
	}

	out := make([]store.ScoredID, 0, len(rows))
	for _, r := range rows {
		out = append(out, store.ScoredID{ID: r.ID, Score: r.Score})
	}
	return out, nil
}
