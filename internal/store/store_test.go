package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardrobeapp/wardrobe-server/internal/store"
)

func setupTestStore(t *testing.T) (*store.Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "wardrobe-test-*")
	require.NoError(t, err)

	s, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

// flakyBlobs fails every Put while failPuts is set.
type flakyBlobs struct {
	store.Blobs
	failPuts atomic.Bool
}

var errDiskFull = errors.New("disk full")

func (f *flakyBlobs) Put(ctx context.Context, key string, data []byte) error {
	if f.failPuts.Load() {
		return errDiskFull
	}
	return f.Blobs.Put(ctx, key, data)
}

func TestStore_GetMissingKey(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.Get(context.Background(), store.KeyItems)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_PutGet(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, store.KeyPlans, []byte(`[]`)))
	require.NoError(t, s.Put(ctx, store.KeyPlans, []byte(`[{"id":"p"}]`)))

	data, err := s.Get(ctx, store.KeyPlans)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p"}]`, string(data))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{store.KeyPlans}, keys)
}

func TestStore_Ping(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	assert.NoError(t, s.Ping(context.Background()))
}

func TestStore_CancelledContext(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Put(ctx, store.KeyItems, []byte(`[]`)), context.Canceled)
}
