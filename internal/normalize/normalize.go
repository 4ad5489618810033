// Package normalize provides utilities for normalizing user-entered text.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

//nolint:gochecknoglobals // Caser is safe to reuse for String.
var folder = cases.Fold()

// Text returns s in Unicode NFC with surrounding whitespace trimmed and
// inner whitespace runs collapsed to a single space.
// "  Công   sở " (decomposed) -> "Công sở" (composed).
func Text(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// Fold returns a case-folded form of s suitable for case-insensitive
// comparison. The input is normalized with Text first.
func Fold(s string) string {
	return folder.String(Text(s))
}

// Contains reports whether needle occurs in haystack, ignoring case and
// Unicode composition differences. An empty needle always matches.
func Contains(haystack, needle string) bool {
	needle = Fold(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), needle)
}

// Unique normalizes each value with Text and drops empty values and
// duplicates, keeping the first occurrence order.
func Unique(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = Text(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

var (
	// Matches spaces, underscores, and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Matches non-alphanumeric characters (except dashes).
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)

	stripMarks = runes.Remove(runes.In(unicode.Mn))
)

// Slug converts a display name to a lowercase ASCII slug for file names and
// URLs. Diacritics are stripped, so "Áo sơ mi" becomes "ao-so-mi".
//
//	"Slow Burn"      → "slow-burn"
//	"Đầm dạ hội"     → "dam-da-hoi"
//	"🐉 Dragons!"    → "dragons"
//	"--leading--"    → "leading"
func Slug(input string) string {
	s, _, err := transform.String(transform.Chain(norm.NFD, stripMarks, norm.NFC), input)
	if err != nil {
		s = input
	}
	s = strings.NewReplacer("đ", "d", "Đ", "d").Replace(s)
	s = strings.ToLower(strings.TrimSpace(s))

	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
