package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCandidatesPreposition(t *testing.T) {
	frags := ExtractCandidates("what is the price of TCS")
	assert.Contains(t, frags, "TCS")
}

func TestExtractCandidatesQuoted(t *testing.T) {
	frags := ExtractCandidates(`show me news about "Tata Motors"`)
	assert.Contains(t, frags, "Tata Motors")
}

func TestExtractCandidatesSplitsConjunctions(t *testing.T) {
	frags := ExtractCandidates("compare tata motors and infosys")
	assert.Contains(t, frags, "tata motors")
	assert.Contains(t, frags, "infosys")
}

func TestExtractCandidatesDeduplicates(t *testing.T) {
	frags := ExtractCandidates("infosys news about infosys")
	count := 0
	for _, f := range frags {
		if f == "infosys" || f == "Infosys" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtractCandidatesDropsPronouns(t *testing.T) {
	assert.Empty(t, ExtractCandidates("how is it doing"))
}

func TestTagSpans(t *testing.T) {
	spans := TagSpans("show me Tata Motors news today")
	assert.Equal(t, []string{"Tata Motors"}, spans)

	assert.Empty(t, TagSpans("nothing capitalized here"))
}
