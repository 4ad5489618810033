package store

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/id"
)

// ItemPruner removes a deleted item from everything that references it.
type ItemPruner interface {
	PruneItem(ctx context.Context, itemID string) error
}

// ItemStore holds the wardrobe items, newest first, and persists the whole
// collection under KeyItems on every change.
type ItemStore struct {
	mu     sync.RWMutex
	items  []domain.ClothingItem
	coll   collection[domain.ClothingItem]
	pruner ItemPruner
	now    func() time.Time
	logger *slog.Logger
}

// NewItemStore creates an empty item store. Call Load before serving.
// pruner may be nil.
func NewItemStore(blobs Blobs, pruner ItemPruner, logger *slog.Logger) *ItemStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ItemStore{
		items:  []domain.ClothingItem{},
		coll:   newCollection[domain.ClothingItem](blobs, KeyItems, logger),
		pruner: pruner,
		now:    time.Now,
		logger: logger,
	}
}

// Load replaces the in-memory collection with the persisted one.
func (s *ItemStore) Load(ctx context.Context) error {
	items, err := s.coll.load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.logger.Info("items loaded", "count", len(items))
	return nil
}

// Add assigns a new ID and creation time to item and puts it at the front of
// the collection. The caller validates the fields.
func (s *ItemStore) Add(ctx context.Context, item domain.ClothingItem) (domain.ClothingItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.ClothingItem{}, err
	}

	itemID, err := id.Generate(id.PrefixItem)
	if err != nil {
		return domain.ClothingItem{}, err
	}

	item = item.Clone()
	item.ID = itemID
	// Millisecond precision matches timestamps written by the browser app.
	item.CreatedAt = s.now().UTC().Truncate(time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.ClothingItem, 0, len(s.items)+1)
	next = append(next, item)
	next = append(next, s.items...)

	if err := s.coll.save(ctx, next); err != nil {
		return domain.ClothingItem{}, err
	}
	s.items = next

	return item.Clone(), nil
}

// Delete removes the item and prunes it from every plan. It reports whether
// the item existed; deleting an unknown ID is not an error.
func (s *ItemStore) Delete(ctx context.Context, itemID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	idx := s.indexOf(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}

	next := slices.Delete(slices.Clone(s.items), idx, idx+1)
	if err := s.coll.save(ctx, next); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.items = next
	s.mu.Unlock()

	// Plans live in a separate blob, so the cascade is its own write.
	if s.pruner != nil {
		if err := s.pruner.PruneItem(ctx, itemID); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Get returns the item with the given ID, or ErrItemNotFound.
func (s *ItemStore) Get(itemID string) (domain.ClothingItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(itemID)
	if idx < 0 {
		return domain.ClothingItem{}, ErrItemNotFound
	}
	return s.items[idx].Clone(), nil
}

// Has reports whether an item with the given ID exists.
func (s *ItemStore) Has(itemID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(itemID) >= 0
}

// List returns a copy of every item, most recently added first.
func (s *ItemStore) List() []domain.ClothingItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ClothingItem, len(s.items))
	for i := range s.items {
		out[i] = s.items[i].Clone()
	}
	return out
}

// Len returns the number of items.
func (s *ItemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Replace swaps the whole collection. The order of items is kept as given.
func (s *ItemStore) Replace(ctx context.Context, items []domain.ClothingItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	next := make([]domain.ClothingItem, len(items))
	for i := range items {
		next[i] = items[i].Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.coll.save(ctx, next); err != nil {
		return err
	}
	s.items = next
	return nil
}

// indexOf must be called with s.mu held.
func (s *ItemStore) indexOf(itemID string) int {
	return slices.IndexFunc(s.items, func(item domain.ClothingItem) bool {
		return item.ID == itemID
	})
}
