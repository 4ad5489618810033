package domain

import "github.com/wardrobeapp/wardrobe-server/internal/normalize"

// Style tags drive the occasion rules of the suggestion engine.
const (
	TagOffice = "office"
	TagStreet = "street"
	TagSport  = "sport"
	TagParty  = "party"
	TagOuting = "outing"
)

// Season tags. Their values match the Season constants.
const (
	TagSpring = "spring"
	TagSummer = "summer"
	TagAutumn = "autumn"
	TagWinter = "winter"
)

// Vocabulary groups the suggested tags shown when cataloguing an item.
type Vocabulary struct {
	Colors  []string `json:"colors"`
	Seasons []string `json:"seasons"`
	Styles  []string `json:"styles"`
}

// DefaultVocabulary returns the built-in tag vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Colors: []string{
			"red", "orange", "yellow", "green", "blue", "purple",
			"pink", "brown", "black", "white", "gray", "beige",
		},
		Seasons: []string{TagSpring, TagSummer, TagAutumn, TagWinter},
		Styles:  []string{TagOffice, TagStreet, TagSport, TagParty, TagOuting},
	}
}

// tagAliases maps folded spellings to canonical vocabulary tags. It covers the
// canonical names themselves and the Vietnamese labels used by wardrobes
// exported from the browser app.
//
//nolint:gochecknoglobals // Static lookup table.
var tagAliases = buildTagAliases(map[string][]string{
	TagOffice: {"Công sở", "work"},
	TagStreet: {"Dạo phố", "casual"},
	TagSport:  {"Thể thao"},
	TagParty:  {"Dự tiệc"},
	TagOuting: {"Đi chơi"},
	TagSpring: {"Xuân"},
	TagSummer: {"Hạ", "Hè"},
	TagAutumn: {"Thu", "fall"},
	TagWinter: {"Đông"},
	"red":     {"Đỏ"},
	"orange":  {"Cam"},
	"yellow":  {"Vàng"},
	"green":   {"Xanh lá"},
	"blue":    {"Xanh dương"},
	"purple":  {"Tím"},
	"pink":    {"Hồng"},
	"brown":   {"Nâu"},
	"black":   {"Đen"},
	"white":   {"Trắng"},
	"gray":    {"Xám", "grey"},
	"beige":   {"Be"},
})

func buildTagAliases(aliases map[string][]string) map[string]string {
	out := make(map[string]string)
	for canonical, spellings := range aliases {
		out[normalize.Fold(canonical)] = canonical
		for _, s := range spellings {
			out[normalize.Fold(s)] = canonical
		}
	}
	return out
}

// CanonicalTag normalizes a raw tag. Vocabulary tags and their aliases map to
// the canonical lowercase name; any other tag is kept as typed, NFC-normalized
// and trimmed.
func CanonicalTag(raw string) string {
	text := normalize.Text(raw)
	if canonical, ok := tagAliases[normalize.Fold(text)]; ok {
		return canonical
	}
	return text
}

// CanonicalTags canonicalizes every tag, dropping empties and duplicates.
// The result is never nil.
func CanonicalTags(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		out = append(out, CanonicalTag(r))
	}
	return normalize.Unique(out)
}
