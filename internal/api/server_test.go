package api

import (
	"context"
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardrobeapp/wardrobe-server/internal/search"
	"github.com/wardrobeapp/wardrobe-server/internal/service"
	"github.com/wardrobeapp/wardrobe-server/internal/sse"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
	"github.com/wardrobeapp/wardrobe-server/internal/suggest"
)

// testEnvelope decodes a successful response.
type testEnvelope[T any] struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// testErrorEnvelope decodes an error response with a code.
type testErrorEnvelope struct {
	Version int            `json:"v"`
	Success bool           `json:"success"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// testServer wraps the API server with a humatest client.
type testServer struct {
	*Server
	api        humatest.TestAPI
	blobs      *store.Store
	sseManager *sse.Manager
}

// setupTestServer creates a server over a temp badger database, an
// in-memory search index and a running SSE manager.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	return setupTestServerWithOptions(t, Options{})
}

func setupTestServerWithOptions(t *testing.T, opts Options) *testServer {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "wardrobe-api-test-*")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	blobs, err := store.New(filepath.Join(tmpDir, "test.db"), logger)
	require.NoError(t, err)

	index, err := search.NewSearchIndex(search.Options{Logger: logger})
	require.NoError(t, err)

	sseManager := sse.NewManager(logger)
	ctx, cancel := context.WithCancel(context.Background())
	go sseManager.Start(ctx)

	t.Cleanup(func() {
		cancel()
		_ = index.Close()        //nolint:errcheck // Test cleanup
		_ = blobs.Close()        //nolint:errcheck // Test cleanup
		_ = os.RemoveAll(tmpDir) //nolint:errcheck // Test cleanup
	})

	plans := store.NewPlanStore(blobs, time.UTC, logger)
	items := store.NewItemStore(blobs, plans, logger)
	require.NoError(t, plans.Load(ctx))
	require.NoError(t, items.Load(ctx))

	searchService := service.NewSearchService(index, items, logger)
	suggestions := service.NewSuggestionService(items, suggest.NewEngine(), 10*time.Millisecond, sseManager, logger)
	t.Cleanup(suggestions.Close)

	services := &Services{
		Wardrobe:    service.NewWardrobeService(items, searchService, sseManager, logger),
		Planner:     service.NewPlannerService(plans, items, sseManager, logger),
		Suggestions: suggestions,
		Search:      searchService,
		Backup:      service.NewBackupService(items, plans, searchService, sseManager, logger),
	}

	s := NewServer(blobs, services, sse.NewHandler(sseManager, logger), sseManager, opts, logger)

	return &testServer{
		Server:     s,
		api:        humatest.Wrap(t, s.API()),
		blobs:      blobs,
		sseManager: sseManager,
	}
}

// decode unmarshals a response body into an envelope.
func decode[T any](t *testing.T, body []byte) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	return env
}

func decodeError(t *testing.T, body []byte) testErrorEnvelope {
	t.Helper()
	var env testErrorEnvelope
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	return env
}

func TestHealthCheck_Healthy(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[HealthResponse](t, resp.Body.Bytes())
	assert.True(t, env.Success)
	assert.Equal(t, 1, env.Version)
	assert.Equal(t, statusHealthy, env.Data.Status)
	assert.Equal(t, statusHealthy, env.Data.Components["storage"].Status)
	assert.Equal(t, "0 items indexed", env.Data.Components["search"].Message)
}

func TestHealthCheck_DegradedAfterSSEShutdown(t *testing.T) {
	ts := setupTestServer(t)

	require.NoError(t, ts.sseManager.Shutdown(context.Background()))

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[HealthResponse](t, resp.Body.Bytes())
	assert.Equal(t, statusDegraded, env.Data.Status)
	assert.Equal(t, statusDegraded, env.Data.Components["sse"].Status)
}

func TestUnknownRoute_ReturnsEnvelope(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/nope")
	require.Equal(t, http.StatusNotFound, resp.Code)

	env := decodeError(t, resp.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestOpenAPI_ListsOperations(t *testing.T) {
	ts := setupTestServer(t)

	spec := ts.API().OpenAPI()
	for _, path := range []string{
		"/api/v1/items",
		"/api/v1/items/{id}",
		"/api/v1/plans",
		"/api/v1/days/{date}",
		"/api/v1/weeks/{date}",
		"/api/v1/suggestions",
		"/api/v1/search",
		"/api/v1/vocabulary",
		"/api/v1/export",
		"/api/v1/import",
	} {
		assert.Contains(t, spec.Paths, path)
	}
}
