package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeframe(t *testing.T) {
	cases := []struct {
		hint string
		want Timeframe
	}{
		{"5y 1mo", Timeframe{Range: "5y", Interval: "1mo"}},
		{"1d 5m", Timeframe{Range: "1d", Interval: "5m"}},
		{"1w 30m", Timeframe{Range: "1wk", Interval: "30m"}},
		{"6m 1d", Timeframe{Range: "6mo", Interval: "1d"}},
		{"2y 1wk", Timeframe{Range: "2y", Interval: "1wk"}},
		{"  1d 5m  ", Timeframe{Range: "1d", Interval: "5m"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseTimeframe(tc.hint), tc.hint)
	}
}

func TestParseTimeframeFallsBackToDefault(t *testing.T) {
	for _, hint := range []string{"", "5y", "tomorrow", "1x 5m", "5y1mo", "last month"} {
		assert.Equal(t, DefaultTimeframe(), ParseTimeframe(hint), hint)
	}
}
