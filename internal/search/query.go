package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/normalize"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query    string   // Free text matched against name and tags
	Category string   // Exact category filter (empty = all)
	Tags     []string // Any-of tag filter

	Limit  int
	Offset int

	SortBy        string // "relevance", "name", "recent"
	IncludeFacets bool
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:         20,
		SortBy:        "relevance",
		IncludeFacets: true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"took_ms"`
	Hits   []SearchHit  `json:"hits"`
	Facets SearchFacets `json:"facets"`
}

// SearchHit is one matching item.
type SearchHit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Name       string            `json:"name"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// SearchFacets contains facet counts over the matching items.
type SearchFacets struct {
	Categories []FacetCount `json:"categories,omitempty"`
	Tags       []FacetCount `json:"tags,omitempty"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a search query.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = DefaultSearchParams().Limit
	}

	req := bleve.NewSearchRequestOptions(buildSearchQuery(params), params.Limit, params.Offset, false)
	addSorting(req, params.SortBy)

	if params.IncludeFacets {
		req.AddFacet("category", bleve.NewFacetRequest("category", 10))
		req.AddFacet("tags", bleve.NewFacetRequest("tags", 20))
	}

	req.Highlight = bleve.NewHighlight()
	req.Highlight.AddField("name")
	req.Fields = []string{"id", "name"}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(res.Hits)),
	}

	for _, hit := range res.Hits {
		h := SearchHit{ID: hit.ID, Score: hit.Score}
		if n, ok := hit.Fields["name"].(string); ok {
			h.Name = n
		}
		if len(hit.Fragments) > 0 {
			h.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					h.Highlights[field] = fragments[0]
				}
			}
		}
		result.Hits = append(result.Hits, h)
	}

	if params.IncludeFacets {
		result.Facets = SearchFacets{
			Categories: facetCounts(res, "category"),
			Tags:       facetCounts(res, "tags"),
		}
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params. Text matches any
// of name, name prefix or tag; filters are ANDed on top.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	if text := normalize.Text(params.Query); text != "" {
		folded := normalize.Fold(text)

		nameMatch := bleve.NewMatchQuery(text)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)

		tagTerm := bleve.NewTermQuery(normalize.Fold(domain.CanonicalTag(text)))
		tagTerm.SetField("tags")
		tagTerm.SetBoost(2.0)

		textQueries := []query.Query{nameMatch, tagTerm}

		if slug := normalize.Slug(text); slug != "" {
			slugMatch := bleve.NewMatchQuery(slug)
			slugMatch.SetField("slug")
			slugMatch.Analyzer = standard.Name
			slugMatch.SetBoost(1.5)
			textQueries = append(textQueries, slugMatch)
		}

		// Typo tolerance only makes sense for a single word.
		if !strings.Contains(folded, " ") {
			fuzzy := bleve.NewFuzzyQuery(folded)
			fuzzy.SetFuzziness(1)
			fuzzy.SetField("name")
			fuzzy.SetBoost(0.8)
			textQueries = append(textQueries, fuzzy)
		}

		if len([]rune(folded)) >= 2 {
			prefix := bleve.NewPrefixQuery(folded)
			prefix.SetField("name")
			prefix.SetBoost(0.5)
			textQueries = append(textQueries, prefix)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if params.Category != "" && params.Category != string(domain.CategoryAll) {
		cq := bleve.NewTermQuery(params.Category)
		cq.SetField("category")
		queries = append(queries, cq)
	}

	if len(params.Tags) > 0 {
		tagQueries := make([]query.Query, len(params.Tags))
		for i, tag := range params.Tags {
			tq := bleve.NewTermQuery(normalize.Fold(domain.CanonicalTag(tag)))
			tq.SetField("tags")
			tagQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(tagQueries...))
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}

func addSorting(req *bleve.SearchRequest, sortBy string) {
	switch sortBy {
	case "name":
		req.SortBy([]string{"name", "-created_at"})
	case "recent":
		req.SortBy([]string{"-created_at"})
	default:
		req.SortBy([]string{"-_score", "-created_at"})
	}
}

func facetCounts(res *bleve.SearchResult, field string) []FacetCount {
	facet, ok := res.Facets[field]
	if !ok || facet.Terms == nil {
		return nil
	}
	var out []FacetCount
	for _, term := range facet.Terms.Terms() {
		out = append(out, FacetCount{Value: term.Term, Count: term.Count})
	}
	return out
}
