// Package domain contains the wardrobe entities: clothing items, outfit plans and suggestions.
package domain

import (
	"slices"
	"time"
)

// ClothingItem is a single catalogued piece of clothing.
// JSON field names match the browser app's persisted layout so exported
// wardrobes load unchanged.
type ClothingItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"` // Remote URI or base64 data URI
	Category  Category  `json:"category"`
	Tags      []string  `json:"tags"`
	BlurHash  string    `json:"blurhash,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasTag reports whether the item carries tag.
func (i *ClothingItem) HasTag(tag string) bool {
	return slices.Contains(i.Tags, tag)
}

// HasAnyTag reports whether the item carries at least one of tags.
func (i *ClothingItem) HasAnyTag(tags ...string) bool {
	for _, t := range tags {
		if i.HasTag(t) {
			return true
		}
	}
	return false
}

// Untagged reports whether the item has no tags at all.
func (i *ClothingItem) Untagged() bool {
	return len(i.Tags) == 0
}

// Clone returns a deep copy so callers can't mutate store-owned tag slices.
func (i ClothingItem) Clone() ClothingItem {
	i.Tags = slices.Clone(i.Tags)
	if i.Tags == nil {
		i.Tags = []string{}
	}
	return i
}
