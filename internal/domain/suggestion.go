package domain

import "time"

// Occasion labels the rule that produced a suggestion.
type Occasion string

// Occasion taxonomy.
const (
	OccasionOffice   Occasion = "office"
	OccasionCasual   Occasion = "casual"
	OccasionParty    Occasion = "party"
	OccasionSeasonal Occasion = "seasonal"
	OccasionFallback Occasion = "fallback"
)

// Season is one of four calendar buckets. Values double as season tags.
type Season string

// Seasons.
const (
	SeasonSpring Season = TagSpring
	SeasonSummer Season = TagSummer
	SeasonAutumn Season = TagAutumn
	SeasonWinter Season = TagWinter
)

// SeasonFor maps a month to its season: March through May is spring,
// September through November autumn, December through February winter, and
// the rest summer.
func SeasonFor(m time.Month) Season {
	switch {
	case m >= time.March && m <= time.May:
		return SeasonSpring
	case m >= time.September && m <= time.November:
		return SeasonAutumn
	case m == time.December || m <= time.February:
		return SeasonWinter
	default:
		return SeasonSummer
	}
}

// Suggestion is a derived outfit proposal. It is never persisted.
type Suggestion struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Occasion    Occasion       `json:"occasion"`
	Season      Season         `json:"season,omitempty"`
	Items       []ClothingItem `json:"items"`
}
