package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/service"
)

func TestSaveDay_ReplacesPlanForDate(t *testing.T) {
	ts := setupTestServer(t)

	shirt := ts.createItem(t, "Oxford shirt", "top", "office")
	trousers := ts.createItem(t, "Wool trousers", "bottom", "office")
	loafers := ts.createItem(t, "Loafers", "shoes")

	resp := ts.api.Put("/api/v1/days/2026-03-04", map[string]any{
		"items": []string{shirt.ID, trousers.ID},
		"notes": "board meeting",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	first := decode[domain.OutfitPlan](t, resp.Body.Bytes()).Data
	assert.Equal(t, "board meeting", first.Notes)

	resp = ts.api.Put("/api/v1/days/2026-03-04T18:30:00Z", map[string]any{
		"items": []string{loafers.ID, loafers.ID, shirt.ID},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	second := decode[domain.OutfitPlan](t, resp.Body.Bytes()).Data
	assert.Equal(t, []string{loafers.ID, shirt.ID}, second.Items)

	resp = ts.api.Get("/api/v1/plans")
	require.Equal(t, http.StatusOK, resp.Code)
	plans := decode[ListPlansResponse](t, resp.Body.Bytes()).Data.Plans
	require.Len(t, plans, 1)
	assert.Equal(t, second.ID, plans[0].ID)
}

func TestSaveDay_Validation(t *testing.T) {
	ts := setupTestServer(t)

	shirt := ts.createItem(t, "Oxford shirt", "top")

	tests := []struct {
		name  string
		path  string
		items []string
	}{
		{"empty outfit", "/api/v1/days/2026-03-04", []string{}},
		{"unknown item", "/api/v1/days/2026-03-04", []string{shirt.ID, "ghost"}},
		{"bad date", "/api/v1/days/tomorrow", []string{shirt.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Put(tt.path, map[string]any{"items": tt.items})
			require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
			assert.Equal(t, "VALIDATION", decodeError(t, resp.Body.Bytes()).Code)
		})
	}

	resp := ts.api.Get("/api/v1/plans")
	assert.Empty(t, decode[ListPlansResponse](t, resp.Body.Bytes()).Data.Plans)
}

func TestGetDay_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/days/2026-03-04")
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body.Bytes()).Code)
}

func TestDeleteDay(t *testing.T) {
	ts := setupTestServer(t)

	shirt := ts.createItem(t, "Oxford shirt", "top")
	resp := ts.api.Put("/api/v1/days/2026-03-04", map[string]any{"items": []string{shirt.ID}})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/days/2026-03-04")
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/days/2026-03-04")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Delete("/api/v1/days/2026-03-04")
	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestDeletePlan_ByID(t *testing.T) {
	ts := setupTestServer(t)

	shirt := ts.createItem(t, "Oxford shirt", "top")
	resp := ts.api.Put("/api/v1/days/2026-03-04", map[string]any{"items": []string{shirt.ID}})
	require.Equal(t, http.StatusOK, resp.Code)
	plan := decode[domain.OutfitPlan](t, resp.Body.Bytes()).Data

	resp = ts.api.Delete("/api/v1/plans/" + plan.ID)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/plans")
	assert.Empty(t, decode[ListPlansResponse](t, resp.Body.Bytes()).Data.Plans)
}

func TestGetWeek(t *testing.T) {
	ts := setupTestServer(t)

	shirt := ts.createItem(t, "Oxford shirt", "top")
	resp := ts.api.Put("/api/v1/days/2026-03-06", map[string]any{"items": []string{shirt.ID}})
	require.Equal(t, http.StatusOK, resp.Code)

	// 2026-03-08 is a Sunday; the week starts on Monday the 2nd.
	resp = ts.api.Get("/api/v1/weeks/2026-03-08")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	week := decode[service.WeekView](t, resp.Body.Bytes()).Data
	assert.Equal(t, "2026-03-02", week.Start)
	assert.Equal(t, "2026-03-08", week.End)
	require.Len(t, week.Days, 7)

	for _, d := range week.Days {
		if d.Date == "2026-03-06" {
			require.NotNil(t, d.Plan)
			require.Len(t, d.Items, 1)
			assert.Equal(t, shirt.ID, d.Items[0].ID)
			continue
		}
		assert.Nil(t, d.Plan, d.Date)
		assert.Empty(t, d.Items, d.Date)
	}
}
