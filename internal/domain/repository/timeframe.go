package repository

import "regexp"

// Timeframe is a chart window: a range (how far back) and a candle
// interval. Both use provider notation ("5y", "1mo", "5m", ...).
type Timeframe struct {
	Range    string
	Interval string
}

// DefaultTimeframe is the window used when no hint is present.
func DefaultTimeframe() Timeframe { return Timeframe{Range: "1d", Interval: "5m"} }

// Hint pattern: "<n><d|w|m|y> <n><m|d|wk|mo>", e.g. "5y 1mo" or "1d 5m".
var timeframeRe = regexp.MustCompile(`^\s*(\d+(?:d|w|m|y))\s+(\d+(?:mo|wk|m|d))\s*$`)

var validRanges = map[string]string{
	"d": "d", "w": "wk", "m": "mo", "y": "y",
}

// ParseTimeframe turns a raw hint into a Timeframe, falling back to the
// default when the hint is absent or unparsable.
func ParseTimeframe(hint string) Timeframe {
	m := timeframeRe.FindStringSubmatch(hint)
	if m == nil {
		return DefaultTimeframe()
	}
	r := normalizeRange(m[1])
	if r == "" {
		return DefaultTimeframe()
	}
	return Timeframe{Range: r, Interval: m[2]}
}

// normalizeRange maps hint units to provider range units: w becomes wk,
// m becomes mo. Provider ranges never use bare "m" (that is an interval).
func normalizeRange(s string) string {
	unit := s[len(s)-1:]
	mapped, ok := validRanges[unit]
	if !ok {
		return ""
	}
	return s[:len(s)-1] + mapped
}
