package domain

import (
	"fmt"
	"slices"
	"time"
)

// OutfitPlan assigns an ordered set of items to one calendar date.
// Date keeps the full timestamp it was saved with; lookups compare civil
// dates only.
type OutfitPlan struct {
	ID    string    `json:"id"`
	Date  time.Time `json:"date"`
	Items []string  `json:"items"`
	Notes string    `json:"notes,omitempty"`
}

// Clone returns a deep copy of the plan.
func (p OutfitPlan) Clone() OutfitPlan {
	p.Items = slices.Clone(p.Items)
	return p
}

// Without returns the plan's item IDs with itemID removed, and whether
// anything was removed.
func (p *OutfitPlan) Without(itemID string) ([]string, bool) {
	if !slices.Contains(p.Items, itemID) {
		return p.Items, false
	}
	kept := make([]string, 0, len(p.Items))
	for _, id := range p.Items {
		if id != itemID {
			kept = append(kept, id)
		}
	}
	return kept, true
}

// DateLayout is the civil date format used in URLs and week views.
const DateLayout = time.DateOnly

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// StartOfWeek returns midnight of the Monday on or before t in loc.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	// Weekday: Sunday=0 ... Saturday=6; shift so Monday=0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// ParseDate parses a civil date ("2006-01-02") in loc, or a full RFC 3339
// timestamp.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}
