// +build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/echocore/cogkernel/store"
	"github.com/echocore/cogkernel/store/dgraphstore"
)

func getDgraphStore(t *testing.T) *dgraphstore.Store {
	endpoint := os.Getenv("DGRAPH_ENDPOINT")
	if endpoint == "" {
		t.Skip("DGRAPH_ENDPOINT not set, skipping Dgraph integration tests")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := dgraphstore.DefaultConfig()
	cfg.Endpoint = endpoint
	s, err := dgraphstore.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDgraphUpsertAndQueryTopK(t *testing.T) {
	s := getDgraphStore(t)
	ctx := context.Background()

	id := uuid.New().String()
	vector := []float32{1, 0, 0}

	require.NoError(t, s.Upsert(ctx, "episodes", id, vector, store.Payload{"experience_id": id}))

	results, err := s.QueryTopK(ctx, "episodes", vector, 5)
	require.NoError(t, err)
	require.NotEmpty(t, results)
}

func TestDgraphCount(t *testing.T) {
	s := getDgraphStore(t)
	ctx := context.Background()

	id := uuid.New().String()
	require.NoError(t, s.Upsert(ctx, "episodes", id, []float32{1, 0, 0}, nil))

	count, err := s.Count(ctx, "episodes")
	require.NoError(t, err)
	require.GreaterOrEqual(t, count, 1)
}
