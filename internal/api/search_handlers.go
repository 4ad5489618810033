package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search wardrobe",
		Description: "Full-text search over item names and tags with category and tag facets",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// === DTOs ===

// SearchInput contains parameters for searching the wardrobe.
type SearchInput struct {
	Query    string `query:"q" maxLength:"200" doc:"Search query; empty matches every item"`
	Category string `query:"category" maxLength:"50" doc:"Category filter"`
	Tags     string `query:"tags" maxLength:"500" doc:"Comma-separated tags; matches items with any of them"`
	Limit    int    `query:"limit" minimum:"0" maximum:"100" doc:"Max results (default 20)"`
	Offset   int    `query:"offset" minimum:"0" doc:"Pagination offset (default 0)"`
	Sort     string `query:"sort" enum:"relevance,name,recent" default:"relevance" doc:"Sort order"`
	Facets   bool   `query:"facets" default:"true" doc:"Include facets in response"`
}

// SearchHitResult contains a single search result.
type SearchHitResult struct {
	ID         string              `json:"id" doc:"Item ID"`
	Score      float64             `json:"score" doc:"Search relevance score"`
	Item       domain.ClothingItem `json:"item" doc:"Matching item"`
	Highlights map[string]string   `json:"highlights,omitempty" doc:"Highlighted matches"`
}

// SearchResponse contains search results.
type SearchResponse struct {
	Query  string               `json:"query" doc:"Original search query"`
	Total  uint64               `json:"total" doc:"Total matches"`
	TookMs int64                `json:"took_ms" doc:"Search duration in milliseconds"`
	Hits   []SearchHitResult    `json:"hits" doc:"Search results"`
	Facets *search.SearchFacets `json:"facets,omitempty" doc:"Facet counts for filtering"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body SearchResponse
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	params := search.DefaultSearchParams()
	params.Query = strings.TrimSpace(input.Query)
	params.Category = input.Category
	params.Tags = splitList(input.Tags)
	params.Offset = input.Offset
	params.IncludeFacets = input.Facets
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	if input.Sort != "" {
		params.SortBy = input.Sort
	}

	s.logger.Debug("search request received",
		"query", params.Query,
		"category", params.Category,
		"limit", params.Limit,
	)

	res, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, s.fail(ctx, "search", err)
	}

	byID := make(map[string]domain.ClothingItem, len(res.Items))
	for _, item := range res.Items {
		byID[item.ID] = item
	}

	hits := make([]SearchHitResult, 0, len(res.Result.Hits))
	for _, hit := range res.Result.Hits {
		item, ok := byID[hit.ID]
		if !ok {
			continue
		}
		hits = append(hits, SearchHitResult{
			ID:         hit.ID,
			Score:      hit.Score,
			Item:       item,
			Highlights: hit.Highlights,
		})
	}

	resp := SearchResponse{
		Query:  res.Result.Query,
		Total:  res.Result.Total,
		TookMs: res.Result.TookMs,
		Hits:   hits,
	}
	if params.IncludeFacets {
		resp.Facets = &res.Result.Facets
	}
	return &SearchOutput{Body: resp}, nil
}

// splitList parses a comma-separated query value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
