package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/sse"
	"github.com/wardrobeapp/wardrobe-server/internal/suggest"
)

func TestSuggestionService_RequestCompletesAndEmits(t *testing.T) {
	ts := setupTestServices(t)
	ts.addItem(t, "shirt", "top", "office")
	ts.addItem(t, "trousers", "bottom", "office")
	ts.addItem(t, "loafers", "shoes", "office")

	engine := suggest.NewEngine(suggest.WithClock(func() time.Time {
		return time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)
	}))
	svc := NewSuggestionService(ts.items, engine, 20*time.Millisecond, ts.events, nil)
	t.Cleanup(svc.Close)

	assert.False(t, svc.Status().Pending)
	assert.Nil(t, svc.Status().Latest)

	require.True(t, svc.Request())
	assert.False(t, svc.Request(), "second request while pending is a no-op")
	assert.True(t, svc.Status().Pending)

	require.Eventually(t, func() bool {
		return !svc.Status().Pending
	}, 2*time.Second, 5*time.Millisecond)

	status := svc.Status()
	require.NotNil(t, status.Latest)
	assert.Equal(t, 3, status.Latest.ItemCount)
	require.NotEmpty(t, status.Latest.Suggestions)
	assert.Equal(t, domain.OccasionOffice, status.Latest.Suggestions[0].Occasion)

	require.Eventually(t, func() bool {
		types := ts.events.types()
		return len(types) > 0 && types[len(types)-1] == sse.EventSuggestionsReady
	}, time.Second, 5*time.Millisecond)

	assert.True(t, svc.Request(), "a new run may start once the last one finished")
}

func TestSuggestionService_EmptyWardrobe(t *testing.T) {
	ts := setupTestServices(t)

	svc := NewSuggestionService(ts.items, suggest.NewEngine(), 0, nil, nil)
	t.Cleanup(svc.Close)

	require.True(t, svc.Request())
	require.Eventually(t, func() bool {
		return svc.Status().Latest != nil
	}, 2*time.Second, 5*time.Millisecond)

	assert.Empty(t, svc.Status().Latest.Suggestions)
}

func TestSuggestionService_CloseCancelsPendingRun(t *testing.T) {
	ts := setupTestServices(t)
	ts.addItem(t, "shirt", "top")
	ts.addItem(t, "jeans", "bottom")

	svc := NewSuggestionService(ts.items, suggest.NewEngine(), time.Hour, ts.events, nil)
	require.True(t, svc.Request())

	svc.Close()

	assert.False(t, svc.Status().Pending)
	assert.False(t, svc.Request())
	assert.NotContains(t, ts.events.types(), sse.EventSuggestionsReady)
}
