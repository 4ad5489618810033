package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeasonFor(t *testing.T) {
	want := map[time.Month]Season{
		time.January:   SeasonWinter,
		time.February:  SeasonWinter,
		time.March:     SeasonSpring,
		time.April:     SeasonSpring,
		time.May:       SeasonSpring,
		time.June:      SeasonSummer,
		time.July:      SeasonSummer,
		time.August:    SeasonSummer,
		time.September: SeasonAutumn,
		time.October:   SeasonAutumn,
		time.November:  SeasonAutumn,
		time.December:  SeasonWinter,
	}

	for month, season := range want {
		t.Run(month.String(), func(t *testing.T) {
			assert.Equal(t, season, SeasonFor(month))
		})
	}
}

func TestClothingItem_Tags(t *testing.T) {
	item := ClothingItem{Tags: []string{TagOffice, "black"}}

	assert.True(t, item.HasTag(TagOffice))
	assert.False(t, item.HasTag(TagParty))
	assert.True(t, item.HasAnyTag(TagParty, "black"))
	assert.False(t, item.Untagged())
	assert.True(t, (&ClothingItem{}).Untagged())
}

func TestClothingItem_CloneIsDeep(t *testing.T) {
	item := ClothingItem{ID: "item-1", Tags: []string{"red"}}
	clone := item.Clone()
	clone.Tags[0] = "blue"

	assert.Equal(t, "red", item.Tags[0])
	assert.Equal(t, []string{}, ClothingItem{}.Clone().Tags)
}
