package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wardrobeapp/wardrobe-server/internal/search"
	"github.com/wardrobeapp/wardrobe-server/internal/sse"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
)

// recordingEmitter keeps every emitted event.
type recordingEmitter struct {
	mu     sync.Mutex
	events []sse.Event
}

func (r *recordingEmitter) Emit(event sse.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingEmitter) types() []sse.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sse.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type testServices struct {
	blobs    *store.Store
	items    *store.ItemStore
	plans    *store.PlanStore
	search   *SearchService
	wardrobe *WardrobeService
	planner  *PlannerService
	backup   *BackupService
	events   *recordingEmitter
}

// setupTestServices wires the services over a temp badger database and an
// in-memory search index.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "wardrobe-service-test-*")
	require.NoError(t, err)

	blobs, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	index, err := search.NewSearchIndex(search.Options{})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = index.Close()        //nolint:errcheck // Test cleanup
		_ = blobs.Close()        //nolint:errcheck // Test cleanup
		_ = os.RemoveAll(tmpDir) //nolint:errcheck // Test cleanup
	})

	ts := &testServices{blobs: blobs, events: &recordingEmitter{}}
	ts.plans = store.NewPlanStore(blobs, time.UTC, nil)
	ts.items = store.NewItemStore(blobs, ts.plans, nil)
	require.NoError(t, ts.plans.Load(context.Background()))
	require.NoError(t, ts.items.Load(context.Background()))

	ts.search = NewSearchService(index, ts.items, nil)
	ts.wardrobe = NewWardrobeService(ts.items, ts.search, ts.events, nil)
	ts.planner = NewPlannerService(ts.plans, ts.items, ts.events, nil)
	ts.backup = NewBackupService(ts.items, ts.plans, ts.search, ts.events, nil)
	return ts
}

func (ts *testServices) addItem(t *testing.T, name, category string, tags ...string) string {
	t.Helper()
	item, err := ts.wardrobe.AddItem(context.Background(), AddItemRequest{
		Name:     name,
		Image:    "https://img.example.com/" + name + ".jpg",
		Category: category,
		Tags:     tags,
	})
	require.NoError(t, err)
	return item.ID
}

// pngDataURI returns a small gradient PNG as a data URI.
func pngDataURI(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := range 16 {
		for x := range 16 {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func day(s string) time.Time {
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}
