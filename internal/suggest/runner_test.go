package suggest

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
)

func officeWardrobe() []domain.ClothingItem {
	return []domain.ClothingItem{
		item("shirt", domain.CategoryTop, domain.TagOffice),
		item("trousers", domain.CategoryBottom, domain.TagOffice),
	}
}

func TestRunner_RequestCompletes(t *testing.T) {
	var calls atomic.Int32
	done := make(chan Result, 1)

	r := NewRunner(NewEngine(WithClock(fixedClock(time.June))), 10*time.Millisecond, func(res Result) {
		calls.Add(1)
		done <- res
	})
	defer r.Close()

	require.True(t, r.Request(officeWardrobe()))
	assert.True(t, r.Pending())

	select {
	case res := <-done:
		require.Len(t, res.Suggestions, 1)
		assert.Equal(t, domain.OccasionOffice, res.Suggestions[0].Occasion)
		assert.Equal(t, 2, res.ItemCount)
		assert.False(t, res.GeneratedAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("run did not complete")
	}

	assert.False(t, r.Pending())
	latest, ok := r.Latest()
	require.True(t, ok)
	assert.Len(t, latest.Suggestions, 1)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRunner_SecondRequestWhilePendingIsNoop(t *testing.T) {
	var calls atomic.Int32
	r := NewRunner(NewEngine(), 50*time.Millisecond, func(Result) {
		calls.Add(1)
	})
	defer r.Close()

	require.True(t, r.Request(officeWardrobe()))
	assert.False(t, r.Request(officeWardrobe()))
	assert.False(t, r.Request(nil))

	require.Eventually(t, func() bool { return !r.Pending() }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	// A new request is accepted once the previous run finished.
	assert.True(t, r.Request(officeWardrobe()))
}

func TestRunner_SnapshotsItems(t *testing.T) {
	done := make(chan Result, 1)
	r := NewRunner(NewEngine(WithClock(fixedClock(time.June))), 20*time.Millisecond, func(res Result) {
		done <- res
	})
	defer r.Close()

	items := officeWardrobe()
	require.True(t, r.Request(items))
	items[0].Tags[0] = "mutated"

	select {
	case res := <-done:
		require.Len(t, res.Suggestions, 1)
		assert.Equal(t, domain.OccasionOffice, res.Suggestions[0].Occasion)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not complete")
	}
}

func TestRunner_LatestBeforeAnyRun(t *testing.T) {
	r := NewRunner(NewEngine(), time.Second, nil)
	defer r.Close()

	_, ok := r.Latest()
	assert.False(t, ok)
	assert.False(t, r.Pending())
}

func TestRunner_CloseStopsPendingTimer(t *testing.T) {
	var calls atomic.Int32
	r := NewRunner(NewEngine(), 50*time.Millisecond, func(Result) {
		calls.Add(1)
	})

	require.True(t, r.Request(officeWardrobe()))
	r.Close()

	assert.False(t, r.Pending())
	assert.False(t, r.Request(officeWardrobe()))

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
