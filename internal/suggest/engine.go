// Package suggest builds outfit suggestions from the wardrobe using a fixed
// set of occasion rules.
package suggest

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
)

const (
	// minOutfitItems is the smallest outfit any rule will emit.
	minOutfitItems = 2
	// minSeasonalPool is how many season-eligible items the seasonal rule needs.
	minSeasonalPool = 3
	// maxFallbackItems caps the size of a mix-and-match outfit.
	maxFallbackItems = 4
)

// Shuffler permutes n elements by calling swap, like rand.Shuffle.
type Shuffler func(n int, swap func(i, j int))

// Engine generates suggestions. It holds no state between calls.
type Engine struct {
	now     func() time.Time
	shuffle Shuffler
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to pick the current season.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithShuffler sets the permutation used by the fallback rule.
func WithShuffler(s Shuffler) Option {
	return func(e *Engine) { e.shuffle = s }
}

// NewEngine creates an engine using the wall clock and math/rand/v2.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:     time.Now,
		shuffle: rand.Shuffle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate applies every occasion rule to items, which must be in store
// order (newest first). Each qualifying rule contributes one suggestion in
// the order office, casual, party, seasonal. When none qualifies and there
// are at least two items, a single shuffled mix-and-match outfit is
// returned instead.
func (e *Engine) Generate(items []domain.ClothingItem) []domain.Suggestion {
	season := domain.SeasonFor(e.now().Month())

	var out []domain.Suggestion
	for _, rule := range []func([]domain.ClothingItem) (domain.Suggestion, bool){
		officeLook,
		casualLook,
		partyLook,
		func(items []domain.ClothingItem) (domain.Suggestion, bool) {
			return seasonalLook(items, season)
		},
	} {
		if s, ok := rule(items); ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 && len(items) >= minOutfitItems {
		out = append(out, e.mixAndMatch(items))
	}
	if out == nil {
		out = []domain.Suggestion{}
	}
	return out
}

func officeLook(items []domain.ClothingItem) (domain.Suggestion, bool) {
	pool := tagged(items, domain.TagOffice)

	var o outfit
	o.pick(pool, domain.CategoryTop, domain.CategoryDress)
	o.pick(pool, domain.CategoryBottom)
	o.pick(pool, domain.CategoryShoes)

	return o.suggestion(domain.Suggestion{
		Title:       "Polished office look",
		Description: "Sharp enough for an important workday, a client meeting or a presentation.",
		Occasion:    domain.OccasionOffice,
	})
}

func casualLook(items []domain.ClothingItem) (domain.Suggestion, bool) {
	pool := tagged(items, domain.TagStreet, domain.TagOuting)

	var o outfit
	o.pick(pool, domain.CategoryTop)
	o.pick(pool, domain.CategoryBottom, domain.CategoryDress)
	o.pick(pool, domain.CategoryAccessories)

	return o.suggestion(domain.Suggestion{
		Title:       "Easygoing street look",
		Description: "Relaxed and energetic, made for weekends or catching up with friends.",
		Occasion:    domain.OccasionCasual,
	})
}

// partyLook takes its shoes from the whole wardrobe, not only party items.
func partyLook(items []domain.ClothingItem) (domain.Suggestion, bool) {
	pool := tagged(items, domain.TagParty)

	var o outfit
	if !o.pick(pool, domain.CategoryDress) {
		o.pick(pool, domain.CategoryTop)
	}
	o.pick(pool, domain.CategoryBottom)
	o.pick(items, domain.CategoryShoes)

	return o.suggestion(domain.Suggestion{
		Title:       "Standout party look",
		Description: "Elegant and eye-catching for parties and special events.",
		Occasion:    domain.OccasionParty,
	})
}

// seasonalLook draws from items tagged with the season plus untagged items,
// which are treated as wearable all year.
func seasonalLook(items []domain.ClothingItem, season domain.Season) (domain.Suggestion, bool) {
	var pool []domain.ClothingItem
	for i := range items {
		if items[i].HasTag(string(season)) || items[i].Untagged() {
			pool = append(pool, items[i])
		}
	}
	if len(pool) < minSeasonalPool {
		return domain.Suggestion{}, false
	}

	var o outfit
	o.pick(pool, domain.CategoryTop)
	o.pick(pool, domain.CategoryBottom, domain.CategoryDress)
	o.pick(pool, domain.CategoryOuterwear)
	o.pick(pool, domain.CategoryShoes)

	return o.suggestion(domain.Suggestion{
		Title:       fmt.Sprintf("%s look", seasonTitle(season)),
		Description: fmt.Sprintf("Suited to the weather and trends of %s, comfortable and stylish.", season),
		Occasion:    domain.OccasionSeasonal,
		Season:      season,
	})
}

func (e *Engine) mixAndMatch(items []domain.ClothingItem) domain.Suggestion {
	shuffled := make([]domain.ClothingItem, len(items))
	for i := range items {
		shuffled[i] = items[i].Clone()
	}
	e.shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return domain.Suggestion{
		Title:       "Creative mix & match",
		Description: "Try a new style with pieces already in your wardrobe!",
		Occasion:    domain.OccasionFallback,
		Items:       shuffled[:min(maxFallbackItems, len(shuffled))],
	}
}

func seasonTitle(s domain.Season) string {
	switch s {
	case domain.SeasonSpring:
		return "Spring"
	case domain.SeasonSummer:
		return "Summer"
	case domain.SeasonAutumn:
		return "Autumn"
	default:
		return "Winter"
	}
}

// tagged returns the items carrying any of tags, in their original order.
func tagged(items []domain.ClothingItem, tags ...string) []domain.ClothingItem {
	var out []domain.ClothingItem
	for i := range items {
		if items[i].HasAnyTag(tags...) {
			out = append(out, items[i])
		}
	}
	return out
}

// outfit collects one item per filled slot.
type outfit struct {
	items []domain.ClothingItem
}

// pick fills a slot with the first item in pool whose category is one of
// categories, and reports whether one was found.
func (o *outfit) pick(pool []domain.ClothingItem, categories ...domain.Category) bool {
	for i := range pool {
		if pool[i].Category.Is(categories...) {
			o.items = append(o.items, pool[i].Clone())
			return true
		}
	}
	return false
}

func (o *outfit) suggestion(s domain.Suggestion) (domain.Suggestion, bool) {
	if len(o.items) < minOutfitItems {
		return domain.Suggestion{}, false
	}
	s.Items = o.items
	return s, true
}
