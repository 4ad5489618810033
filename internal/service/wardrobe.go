// Package service implements the wardrobe use cases on top of the item and
// plan stores: cataloguing, planning, suggestions, search and backups.
package service

import (
	"context"
	"log/slog"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/media/images"
	"github.com/wardrobeapp/wardrobe-server/internal/normalize"
	"github.com/wardrobeapp/wardrobe-server/internal/sse"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
	"github.com/wardrobeapp/wardrobe-server/internal/validation"
)

// AddItemRequest is the input for cataloguing a new item.
type AddItemRequest struct {
	Name     string   `json:"name" validate:"notblank,max=200"`
	Image    string   `json:"image" validate:"notblank,imageuri"`
	Category string   `json:"category" validate:"notblank,max=50"`
	Tags     []string `json:"tags" validate:"max=50,dive,max=50"`
}

// ItemFilter selects items for the gallery. Zero values match everything.
type ItemFilter struct {
	Query    string   // case-insensitive name substring
	Category string   // exact category; "" or "all" disables the filter
	Tags     []string // any-of
}

// VocabularyView lists the categories and suggested tags offered when adding
// an item.
type VocabularyView struct {
	Categories []domain.Category `json:"categories"`
	Colors     []string          `json:"colors"`
	Seasons    []string          `json:"seasons"`
	Styles     []string          `json:"styles"`
}

// WardrobeService catalogues clothing items.
type WardrobeService struct {
	items     *store.ItemStore
	search    *SearchService
	events    EventEmitter
	validator *validation.Validator
	logger    *slog.Logger
}

// NewWardrobeService creates a wardrobe service. search and events may be nil.
func NewWardrobeService(
	items *store.ItemStore,
	search *SearchService,
	events EventEmitter,
	logger *slog.Logger,
) *WardrobeService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &WardrobeService{
		items:     items,
		search:    search,
		events:    emitterOrNoop(events),
		validator: validation.New(),
		logger:    logger,
	}
}

// AddItem validates req and stores a new item at the front of the wardrobe.
func (s *WardrobeService) AddItem(ctx context.Context, req AddItemRequest) (domain.ClothingItem, error) {
	if err := s.validator.Validate(req); err != nil {
		return domain.ClothingItem{}, err
	}

	item := domain.ClothingItem{
		Name:     normalize.Text(req.Name),
		Image:    req.Image,
		Category: domain.Category(normalize.Fold(req.Category)),
		Tags:     domain.CanonicalTags(req.Tags),
	}

	if images.IsDataURI(item.Image) {
		hash, err := images.BlurHashFromURI(item.Image)
		if err != nil {
			s.logger.Debug("no placeholder for item image", "name", item.Name, "error", err)
		} else {
			item.BlurHash = hash
		}
	}

	created, err := s.items.Add(ctx, item)
	if err != nil {
		return domain.ClothingItem{}, err
	}

	if !created.Category.Valid() {
		s.logger.Warn("item stored with unrecognized category",
			"item_id", created.ID,
			"category", created.Category,
		)
	}

	if s.search != nil {
		if err := s.search.IndexItem(&created); err != nil {
			s.logger.Warn("failed to index item", "item_id", created.ID, "error", err)
		}
	}

	s.events.Emit(sse.NewItemCreatedEvent(created))
	s.logger.Info("item added",
		"item_id", created.ID,
		"category", created.Category,
		"tags", len(created.Tags),
	)

	return created, nil
}

// GetItem returns one item, or store.ErrItemNotFound.
func (s *WardrobeService) GetItem(itemID string) (domain.ClothingItem, error) {
	return s.items.Get(itemID)
}

// ListItems returns the items matching filter, newest first.
func (s *WardrobeService) ListItems(filter ItemFilter) []domain.ClothingItem {
	category := domain.Category(normalize.Fold(filter.Category))
	tags := domain.CanonicalTags(filter.Tags)

	all := s.items.List()
	out := make([]domain.ClothingItem, 0, len(all))
	for i := range all {
		item := &all[i]
		if !normalize.Contains(item.Name, filter.Query) {
			continue
		}
		if category != "" && category != domain.CategoryAll && item.Category != category {
			continue
		}
		if len(tags) > 0 && !item.HasAnyTag(tags...) {
			continue
		}
		out = append(out, *item)
	}
	return out
}

// DeleteItem removes an item and prunes it from every plan. Unknown IDs are
// ignored.
func (s *WardrobeService) DeleteItem(ctx context.Context, itemID string) error {
	existed, err := s.items.Delete(ctx, itemID)
	if !existed {
		return err
	}

	if s.search != nil {
		if err := s.search.DeleteItem(itemID); err != nil {
			s.logger.Warn("failed to unindex item", "item_id", itemID, "error", err)
		}
	}

	s.events.Emit(sse.NewItemDeletedEvent(itemID))

	if err != nil {
		// The item is gone; only the plan cascade failed.
		s.logger.Error("failed to prune deleted item from plans", "item_id", itemID, "error", err)
		return err
	}

	s.logger.Info("item deleted", "item_id", itemID)
	return nil
}

// Vocabulary returns the categories and the built-in tag vocabulary.
func (s *WardrobeService) Vocabulary() VocabularyView {
	vocab := domain.DefaultVocabulary()
	return VocabularyView{
		Categories: domain.Categories(),
		Colors:     vocab.Colors,
		Seasons:    vocab.Seasons,
		Styles:     vocab.Styles,
	}
}
