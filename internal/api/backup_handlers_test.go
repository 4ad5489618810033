package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardrobeapp/wardrobe-server/internal/service"
)

func TestExportImport_RoundTrip(t *testing.T) {
	ts := setupTestServer(t)

	shirt := ts.createItem(t, "Oxford shirt", "top", "office")
	ts.createItem(t, "Chinos", "bottom")
	resp := ts.api.Put("/api/v1/days/2026-03-04", map[string]any{"items": []string{shirt.ID}})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/export")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "wardrobe-")

	snap := decode[service.Snapshot](t, resp.Body.Bytes()).Data
	assert.Equal(t, service.SnapshotVersion, snap.Version)
	require.Len(t, snap.Items, 2)
	require.Len(t, snap.Plans, 1)

	// Wipe the wardrobe, then restore it.
	for _, item := range snap.Items {
		require.Equal(t, http.StatusNoContent, ts.api.Delete("/api/v1/items/"+item.ID).Code)
	}

	resp = ts.api.Post("/api/v1/import", snap)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	summary := decode[service.ImportSummary](t, resp.Body.Bytes()).Data
	assert.Equal(t, service.ImportSummary{Items: 2, Plans: 1}, summary)

	resp = ts.api.Get("/api/v1/days/2026-03-04")
	require.Equal(t, http.StatusOK, resp.Code)
	view := decode[service.DayView](t, resp.Body.Bytes()).Data
	require.Len(t, view.Items, 1)
	assert.Equal(t, shirt.ID, view.Items[0].ID)
}

func TestImport_ItemsOnly(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/import", map[string]any{
		"items": []map[string]any{{
			"id":        "item-1",
			"name":      "Áo sơ mi",
			"image":     "https://img.example.com/shirt.jpg",
			"category":  "top",
			"tags":      []string{"Công sở"},
			"createdAt": "2025-11-02T08:00:00Z",
		}},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/items/item-1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"office"`)
}

func TestImport_ExportWithLargePhotos(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/import", map[string]any{
		"items": []map[string]any{
			{"id": "item-1", "name": "Coat", "image": photoDataURI(1 << 20), "category": "outerwear"},
			{"id": "item-2", "name": "Dress", "image": photoDataURI(1 << 20), "category": "dress"},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code, "status %d", resp.Code)

	summary := decode[service.ImportSummary](t, resp.Body.Bytes()).Data
	assert.Equal(t, 2, summary.Items)
}
