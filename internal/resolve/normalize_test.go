package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Reliance Industries Ltd.":       "reliance industries",
		"Tata Consultancy Services Ltd":  "tata consultancy services",
		"M&M":                            "m and m",
		"Larsen & Toubro Limited":        "larsen and toubro",
		"  HDFC   Bank  ":                "hdfc bank",
		"Infosys":                        "infosys",
		"ABC Private Limited Co.":        "abc",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestCanonicalAlias(t *testing.T) {
	full, ok := CanonicalAlias("tcs")
	assert.True(t, ok)
	assert.Equal(t, "Tata Consultancy Services", full)

	full, ok = CanonicalAlias("mukesh ambani")
	assert.True(t, ok)
	assert.Equal(t, "Reliance Industries", full)

	_, ok = CanonicalAlias("unknown name")
	assert.False(t, ok)
}

func TestIndexSymbol(t *testing.T) {
	sym, ok := IndexSymbol("nifty")
	assert.True(t, ok)
	assert.Equal(t, "^NSEI", sym)

	sym, ok = IndexSymbol("sensex")
	assert.True(t, ok)
	assert.Equal(t, "^BSESN", sym)

	_, ok = IndexSymbol("dow jones")
	assert.False(t, ok)
}
