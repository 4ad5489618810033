package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/search"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
)

// SearchResponse pairs the raw index result with the matching items, in hit
// order.
type SearchResponse struct {
	Result *search.SearchResult  `json:"result"`
	Items  []domain.ClothingItem `json:"items"`
}

// SearchService bridges the bleve index with the item store.
type SearchService struct {
	index  *search.SearchIndex
	items  *store.ItemStore
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, items *store.ItemStore, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SearchService{
		index:  index,
		items:  items,
		logger: logger,
	}
}

// Search runs params against the index and resolves hits to items. Hits for
// items deleted since indexing are skipped.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*SearchResponse, error) {
	res, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	items := make([]domain.ClothingItem, 0, len(res.Hits))
	for _, hit := range res.Hits {
		item, err := s.items.Get(hit.ID)
		if err != nil {
			continue
		}
		items = append(items, item)
	}

	return &SearchResponse{Result: res, Items: items}, nil
}

// IndexItem adds or refreshes one item.
func (s *SearchService) IndexItem(item *domain.ClothingItem) error {
	if err := s.index.IndexDocument(search.NewItemDocument(item)); err != nil {
		return fmt.Errorf("index item: %w", err)
	}
	s.logger.Debug("indexed item", "id", item.ID, "name", item.Name)
	return nil
}

// DeleteItem removes one item from the index.
func (s *SearchService) DeleteItem(itemID string) error {
	if err := s.index.DeleteDocument(itemID); err != nil {
		return fmt.Errorf("delete item from index: %w", err)
	}
	return nil
}

// Reindex clears the index and indexes every stored item.
func (s *SearchService) Reindex(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	items := s.items.List()
	docs := make([]*search.ItemDocument, 0, len(items))
	for i := range items {
		docs = append(docs, search.NewItemDocument(&items[i]))
	}
	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index items: %w", err)
	}

	s.logger.Info("search index rebuilt", "items", len(docs))
	return nil
}

// ReindexIfStale rebuilds the index when its document count disagrees with
// the store, as after a crash or a mapping change.
func (s *SearchService) ReindexIfStale(ctx context.Context) error {
	count, err := s.index.DocumentCount()
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	if count == uint64(s.items.Len()) {
		return nil
	}
	s.logger.Info("search index out of date", "indexed", count, "stored", s.items.Len())
	return s.Reindex(ctx)
}

// DocumentCount returns the number of indexed items.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}
