// Package dgraphstore implements store.VectorStore over Dgraph, adapted
// from the teacher's graph-shaped thought storage
// (core/memory/dgraph_hypergraph.go, core/persistence/dgraph_client.go).
// It is exercised for the "episodes" collection, since Experiences and
// their Thought backlinks form a natural graph.
package dgraphstore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/dgo/v230"
	"github.com/dgraph-io/dgo/v230/protos/api"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/echocore/cogkernel/store"
)

// Config holds connection parameters for the Dgraph cluster.
type Config struct {
	Endpoint   string
	RetryCount int
	RetryDelay time.Duration
}

// DefaultConfig returns the teacher's documented defaults.
func DefaultConfig() Config {
	return Config{Endpoint: "localhost:9080", RetryCount: 3, RetryDelay: 2 * time.Second}
}

// Store is a Dgraph-backed store.VectorStore.
type Store struct {
	mu     sync.RWMutex
	conn   *grpc.ClientConn
	client *dgo.Dgraph
	cfg    Config
}

// memoryRecord is the Dgraph predicate shape for one upserted record.
type memoryRecord struct {
	UID        string    `json:"uid,omitempty"`
	DType      []string  `json:"dgraph.type,omitempty"`
	RecordID   string    `json:"record_id,omitempty"`
	Collection string    `json:"collection,omitempty"`
	Vector     []float32 `json:"vector,omitempty"`
	Payload    string    `json:"payload,omitempty"`
	StoredAt   time.Time `json:"stored_at,omitempty"`
}

// Connect dials the Dgraph cluster, retrying up to cfg.RetryCount times.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	var lastErr error
	for i := 0; i < cfg.RetryCount; i++ {
		conn, err := grpc.DialContext(ctx, cfg.Endpoint,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithBlock(),
		)
		if err != nil {
			lastErr = err
			time.Sleep(cfg.RetryDelay)
			continue
		}
		return &Store{
			conn:   conn,
			client: dgo.NewDgraphClient(api.NewDgraphClient(conn)),
			cfg:    cfg,
		}, nil
	}
	return nil, fmt.Errorf("connect to dgraph after %d attempts: %w", cfg.RetryCount, lastErr)
}

// Close releases the underlying gRPC connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Upsert mutates a memoryRecord node keyed by collection+id.
func (s *Store) Upsert(ctx context.Context, collection, id string, vector []float32, payload store.Payload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	rec := memoryRecord{
		UID:        "uid(v)",
		DType:      []string{"MemoryRecord"},
		RecordID:   collection + ":" + id,
		Collection: collection,
		Vector:     vector,
		Payload:    string(payloadJSON),
		StoredAt:   time.Now(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal node: %w", err)
	}

	query := fmt.Sprintf(`{ q(func: eq(record_id, %q)) { v as uid } }`, rec.RecordID)
	txn := s.client.NewTxn()
	defer txn.Discard(ctx)

	_, err = txn.Do(ctx, &api.Request{
		Query:     query,
		Mutations: []*api.Mutation{{SetJson: data}},
		CommitNow: true,
	})
	if err != nil {
		return fmt.Errorf("upsert memory record %s: %w", rec.RecordID, err)
	}
	return nil
}

// Count runs a Dgraph count query scoped to collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	query := fmt.Sprintf(`{ q(func: eq(collection, %q)) { count(uid) } }`, collection)
	resp, err := s.client.NewReadOnlyTxn().Query(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("count collection %s: %w", collection, err)
	}

	var decoded struct {
		Q []struct {
			Count int `json:"count"`
		} `json:"q"`
	}
	if err := json.Unmarshal(resp.GetJson(), &decoded); err != nil {
		return 0, fmt.Errorf("decode count response: %w", err)
	}
	if len(decoded.Q) == 0 {
		return 0, nil
	}
	return decoded.Q[0].Count, nil
}

// QueryTopK fetches every record in collection and ranks by cosine
// similarity in-process; Dgraph's native vector index predicates vary by
// deployment, so this keeps the contract stable across clusters.
func (s *Store) QueryTopK(ctx context.Context, collection string, vector []float32, k int) ([]store.ScoredID, error) {
	query := fmt.Sprintf(`{ q(func: eq(collection, %q)) { record_id vector } }`, collection)
	resp, err := s.client.NewReadOnlyTxn().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query top-k collection %s: %w", collection, err)
	}

	var decoded struct {
		Q []struct {
			RecordID string    `json:"record_id"`
			Vector   []float32 `json:"vector"`
		} `json:"q"`
	}
	if err := json.Unmarshal(resp.GetJson(), &decoded); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}

	out := make([]store.ScoredID, 0, len(decoded.Q))
	for _, row := range decoded.Q {
		out = append(out, store.ScoredID{ID: row.RecordID, Score: cosineSimilarity(vector, row.Vector)})
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
