// Package search provides full-text search over wardrobe items using Bleve.
package search

import (
	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/normalize"
)

// ItemDocument is the indexed form of a clothing item.
type ItemDocument struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Slug      string   `json:"slug"` // Name without diacritics, for accent-free queries
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`       // Case-folded
	CreatedAt int64    `json:"created_at"` // Unix millis
}

// NewItemDocument builds the document for item.
func NewItemDocument(item *domain.ClothingItem) *ItemDocument {
	tags := make([]string, 0, len(item.Tags))
	for _, t := range item.Tags {
		tags = append(tags, normalize.Fold(domain.CanonicalTag(t)))
	}
	return &ItemDocument{
		ID:        item.ID,
		Name:      normalize.Text(item.Name),
		Slug:      normalize.Slug(item.Name),
		Category:  string(item.Category),
		Tags:      normalize.Unique(tags),
		CreatedAt: item.CreatedAt.UnixMilli(),
	}
}

// ToMap converts the document to a map keyed by the mapping's field names.
func (d *ItemDocument) ToMap() map[string]any {
	return map[string]any{
		"id":         d.ID,
		"name":       d.Name,
		"slug":       d.Slug,
		"category":   d.Category,
		"tags":       d.Tags,
		"created_at": d.CreatedAt,
	}
}
