package store

import (
	"errors"

	domainerrors "github.com/wardrobeapp/wardrobe-server/internal/errors"
)

// Sentinel errors.
var (
	// ErrNotFound is returned by Blobs.Get for a key that was never written.
	ErrNotFound = errors.New("key not found")

	ErrItemNotFound = domainerrors.NotFound("item not found")
	ErrPlanNotFound = domainerrors.NotFound("no outfit planned for this date")
	ErrEmptyPlan    = domainerrors.Validation("an outfit plan needs at least one item")
)
