package domain

// Category classifies a clothing item by the slot it fills in an outfit.
type Category string

// Recognized categories. Items with any other value are kept but never match
// a category-specific rule or filter.
const (
	CategoryTop         Category = "top"
	CategoryBottom      Category = "bottom"
	CategoryDress       Category = "dress"
	CategoryOuterwear   Category = "outerwear"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
)

// CategoryAll is the gallery filter value that matches every category.
const CategoryAll Category = "all"

// Categories lists the recognized categories in display order.
func Categories() []Category {
	return []Category{
		CategoryTop,
		CategoryBottom,
		CategoryDress,
		CategoryOuterwear,
		CategoryShoes,
		CategoryAccessories,
	}
}

// Valid reports whether c is a recognized category.
func (c Category) Valid() bool {
	switch c {
	case CategoryTop, CategoryBottom, CategoryDress, CategoryOuterwear, CategoryShoes, CategoryAccessories:
		return true
	default:
		return false
	}
}

// Is reports whether c equals any of the given categories.
func (c Category) Is(categories ...Category) bool {
	for _, other := range categories {
		if c == other {
			return true
		}
	}
	return false
}
