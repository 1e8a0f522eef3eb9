package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreExactMatch(t *testing.T) {
	assert.Equal(t, 100, Score("infosys", "infosys", true, true))
}

func TestScoreEmptyInputs(t *testing.T) {
	assert.Equal(t, 0, Score("", "infosys", true, false))
	assert.Equal(t, 0, Score("infosys", "", true, false))
}

func TestScorePrefixBeatsContainment(t *testing.T) {
	prefix := Score("tata motors", "tata motors finance", true, false)
	contains := Score("motors finance", "tata motors finance", true, false)
	assert.Greater(t, prefix, contains)
}

func TestScoreExtraTokensDilute(t *testing.T) {
	tight := Score("tata motors", "tata motors", true, false)
	loose := Score("tata motors", "tata motors finance holdings", true, false)
	assert.Greater(t, tight, loose)
}

func TestScoreSingleTokenParentAdjustments(t *testing.T) {
	parent := Score("reliance", "reliance industries", true, true)
	subsidiary := Score("reliance", "reliance power", true, true)
	assert.Greater(t, parent, subsidiary)
}

func TestScoreBareGroupTokenStaysBelowThreshold(t *testing.T) {
	for _, c := range []string{"tata motors", "tata steel", "tata consultancy services"} {
		assert.Less(t, Score("tata", c, true, true), 70, "candidate %q", c)
	}
}

func TestScoreUnrelatedStaysLow(t *testing.T) {
	assert.Less(t, Score("infosys", "tata steel", true, false), 70)
}

func TestScoreBounds(t *testing.T) {
	for _, q := range []string{"a", "reliance", "tata motors ltd xyz"} {
		for _, c := range []string{"reliance industries", "tata motors", "adani green energy"} {
			s := Score(q, c, true, true)
			assert.GreaterOrEqual(t, s, 0)
			assert.LessOrEqual(t, s, 100)
		}
	}
}
