package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinTalk/internal/domain/models"
)

func TestExtractJSONPlainObject(t *testing.T) {
	var p classifyPayload
	require.NoError(t, extractJSON(`{"intents": ["stock"], "entity": "TCS", "timeframe": ""}`, &p))
	assert.Equal(t, []string{"stock"}, p.Intents)
	assert.Equal(t, "TCS", p.Entity)
}

func TestExtractJSONCodeFence(t *testing.T) {
	raw := "Here you go:\n```json\n{\"intents\": [\"news\"], \"entity\": \"Infosys\"}\n```\nLet me know if you need more."
	var p classifyPayload
	require.NoError(t, extractJSON(raw, &p))
	assert.Equal(t, []string{"news"}, p.Intents)
	assert.Equal(t, "Infosys", p.Entity)
}

func TestExtractJSONBareFence(t *testing.T) {
	raw := "```\n{\"intents\": [\"chart\"], \"timeframe\": \"1mo\"}\n```"
	var p classifyPayload
	require.NoError(t, extractJSON(raw, &p))
	assert.Equal(t, []string{"chart"}, p.Intents)
	assert.Equal(t, "1mo", p.Timeframe)
}

func TestExtractJSONSurroundingProse(t *testing.T) {
	raw := `The classification is {"intents": ["stock", "news"], "entity": "Reliance"} as requested.`
	var p classifyPayload
	require.NoError(t, extractJSON(raw, &p))
	assert.Equal(t, []string{"stock", "news"}, p.Intents)
}

func TestExtractJSONSingleQuotes(t *testing.T) {
	var p classifyPayload
	require.NoError(t, extractJSON(`{'intents': ['stock'], 'entity': 'Wipro'}`, &p))
	assert.Equal(t, []string{"stock"}, p.Intents)
	assert.Equal(t, "Wipro", p.Entity)
}

func TestExtractJSONGarbage(t *testing.T) {
	var p classifyPayload
	for _, raw := range []string{"", "   ", "no json here", "{broken", "{]"} {
		err := extractJSON(raw, &p)
		assert.ErrorIs(t, err, models.ErrMalformedModelOutput, "raw=%q", raw)
	}
}
