package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidIntent(t *testing.T) {
	for _, s := range []string{"stock", "news", "chart", "casual", "expand_news", "clarify", "greeting"} {
		assert.True(t, ValidIntent(s), s)
	}
	for _, s := range []string{"", "weather", "STOCK", "price"} {
		assert.False(t, ValidIntent(s), s)
	}
}

func TestIntentSetNormalizeClarifyWins(t *testing.T) {
	set := NewIntentSet(IntentClarify, IntentStock, IntentNews).Normalize()
	assert.True(t, set.Equal(NewIntentSet(IntentClarify)))
}

func TestIntentSetNormalizeGreetingDropsDataIntents(t *testing.T) {
	set := NewIntentSet(IntentGreeting, IntentStock).Normalize()
	assert.True(t, set.Equal(NewIntentSet(IntentGreeting)))
}

func TestIntentSetNormalizeLeavesDataSetsAlone(t *testing.T) {
	set := NewIntentSet(IntentStock, IntentNews, IntentChart)
	assert.True(t, set.Normalize().Equal(set))

	// Greeting without data intents survives alongside casual.
	mixed := NewIntentSet(IntentGreeting, IntentCasual)
	assert.True(t, mixed.Normalize().Equal(mixed))
}

func TestIntentSetNeedsEntity(t *testing.T) {
	assert.True(t, NewIntentSet(IntentStock).NeedsEntity())
	assert.True(t, NewIntentSet(IntentChart).NeedsEntity())
	assert.False(t, NewIntentSet(IntentCasual).NeedsEntity())
	assert.False(t, NewIntentSet(IntentExpandNews).NeedsEntity())
}

func TestIntentSetStringsSorted(t *testing.T) {
	set := NewIntentSet(IntentStock, IntentChart, IntentNews)
	assert.Equal(t, []string{"chart", "news", "stock"}, set.Strings())
}
