package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	domainerrors "github.com/wardrobeapp/wardrobe-server/internal/errors"
	"github.com/wardrobeapp/wardrobe-server/internal/search"
	"github.com/wardrobeapp/wardrobe-server/internal/sse"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
)

func TestExportImport_RoundTrip(t *testing.T) {
	src := setupTestServices(t)
	ctx := context.Background()

	shirt := src.addItem(t, "Linen shirt", "top", "office", "white")
	jeans := src.addItem(t, "Jeans", "bottom", "street")
	_, err := src.planner.SavePlan(ctx, SavePlanRequest{
		Date:    day("2024-06-03"),
		ItemIDs: []string{shirt, jeans},
		Notes:   "interview",
	})
	require.NoError(t, err)

	snap := src.backup.Export()
	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.Len(t, snap.ID, 36)
	assert.Len(t, snap.Items, 2)
	assert.Len(t, snap.Plans, 1)

	dst := setupTestServices(t)
	summary, err := dst.backup.Import(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Items: 2, Plans: 1}, summary)

	got := dst.items.List()
	require.Len(t, got, 2)
	for i := range got {
		assert.Equal(t, snap.Items[i].ID, got[i].ID)
		assert.Equal(t, snap.Items[i].Name, got[i].Name)
		assert.Equal(t, snap.Items[i].Tags, got[i].Tags)
		assert.True(t, snap.Items[i].CreatedAt.Equal(got[i].CreatedAt))
	}

	view, err := dst.planner.PlanForDate(day("2024-06-03"))
	require.NoError(t, err)
	assert.Equal(t, "interview", view.Plan.Notes)
	assert.Len(t, view.Items, 2)

	res, err := dst.search.Search(ctx, search.SearchParams{Query: "linen"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, shirt, res.Items[0].ID)

	assert.Equal(t, []sse.EventType{sse.EventWardrobeImported}, dst.events.types())
}

func TestImport_CleansPlans(t *testing.T) {
	ts := setupTestServices(t)
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	snap := Snapshot{
		Items: []domain.ClothingItem{
			{ID: "a", Name: "Áo sơ mi", Category: "top", Tags: []string{"Công sở"}, CreatedAt: created},
			{ID: "b", Name: "Quần tây", Category: "bottom"},
		},
		Plans: []domain.OutfitPlan{
			{ID: "p1", Date: day("2024-06-03"), Items: []string{"a", "ghost"}},
			{ID: "p2", Date: day("2024-06-04"), Items: []string{"ghost"}},
			{ID: "p3", Date: day("2024-06-05"), Items: []string{"a"}},
			{Date: day("2024-06-05").Add(18 * time.Hour), Items: []string{"b", "b"}},
		},
	}

	summary, err := ts.backup.Import(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Items: 2, Plans: 2, DroppedPlans: 2}, summary)

	items := ts.items.List()
	assert.Equal(t, []string{"office"}, items[0].Tags)
	assert.Equal(t, []string{}, items[1].Tags)
	assert.False(t, items[1].CreatedAt.IsZero())

	plans := ts.planner.Plans()
	require.Len(t, plans, 2)
	assert.Equal(t, "p1", plans[0].ID)
	assert.Equal(t, []string{"a"}, plans[0].Items)
	assert.NotEmpty(t, plans[1].ID)
	assert.NotEqual(t, "p3", plans[1].ID)
	assert.Equal(t, []string{"b"}, plans[1].Items)
}

func TestImport_InvalidItemsLeaveWardrobeUntouched(t *testing.T) {
	ts := setupTestServices(t)
	existing := ts.addItem(t, "shirt", "top")

	_, err := ts.backup.Import(context.Background(), Snapshot{
		Items: []domain.ClothingItem{
			{ID: "a", Name: "ok"},
			{ID: "", Name: "no id"},
			{ID: "a", Name: "duplicate"},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, map[string]string{
		"items[1].id": "is required",
		"items[2].id": "duplicates an earlier item",
	}, domainErr.Details)

	items := ts.items.List()
	require.Len(t, items, 1)
	assert.Equal(t, existing, items[0].ID)
}

// failingPlanWrites fails every Put of the plans collection while fail is set.
type failingPlanWrites struct {
	store.Blobs
	fail atomic.Bool
}

var errPlansUnwritable = errors.New("plans unwritable")

func (f *failingPlanWrites) Put(ctx context.Context, key string, data []byte) error {
	if key == store.KeyPlans && f.fail.Load() {
		return errPlansUnwritable
	}
	return f.Blobs.Put(ctx, key, data)
}

func TestImport_PlanWriteFailureRestoresItems(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	blobs := &failingPlanWrites{Blobs: ts.blobs}
	plans := store.NewPlanStore(blobs, time.UTC, nil)
	items := store.NewItemStore(blobs, plans, nil)
	backup := NewBackupService(items, plans, nil, nil, nil)

	shirt, err := items.Add(ctx, domain.ClothingItem{Name: "shirt", Category: domain.CategoryTop})
	require.NoError(t, err)
	_, err = plans.Upsert(ctx, day("2024-06-03"), []string{shirt.ID}, "")
	require.NoError(t, err)

	blobs.fail.Store(true)
	_, err = backup.Import(ctx, Snapshot{
		Items: []domain.ClothingItem{{ID: "item-new", Name: "coat", Category: domain.CategoryOuterwear}},
		Plans: []domain.OutfitPlan{{ID: "plan-new", Date: day("2024-06-04"), Items: []string{"item-new"}}},
	})
	require.ErrorIs(t, err, errPlansUnwritable)

	list := items.List()
	require.Len(t, list, 1)
	assert.Equal(t, shirt.ID, list[0].ID)

	reloaded := store.NewItemStore(ts.blobs, nil, nil)
	require.NoError(t, reloaded.Load(ctx))
	assert.True(t, reloaded.Has(shirt.ID), "restored items are persisted")

	require.Len(t, plans.List(), 1)
	assert.Equal(t, []string{shirt.ID}, plans.List()[0].Items)
}
