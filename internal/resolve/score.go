package resolve

import "strings"

// Subsidiary-flavored words that penalize a candidate when the user typed
// a single bare group name ("tata" should prefer the parent listing).
var subsidiaryWords = map[string]struct{}{
	"power": {}, "green": {}, "ports": {}, "capital": {},
	"transmission": {}, "energy": {},
}

// Score rates how well a normalized candidate name matches a normalized
// query fragment on a 0-100 scale. Pure function: token-set overlap
// weighted by coverage of the query, containment and prefix bonuses for
// multi-word fragments, a minor exchange-presence bonus, and
// parent/subsidiary adjustments for single-token queries. A lone group
// token ("tata") dilutes hard against multi-word listings so it stays
// below the acceptance threshold instead of latching onto one of many.
func Score(query, candidate string, hasExchange, singleToken bool) int {
	if query == "" || candidate == "" {
		return 0
	}
	if query == candidate {
		return 100
	}

	qTokens := strings.Fields(query)
	cTokens := strings.Fields(candidate)

	cSet := make(map[string]struct{}, len(cTokens))
	for _, t := range cTokens {
		cSet[t] = struct{}{}
	}

	matched := 0
	for _, t := range qTokens {
		if _, ok := cSet[t]; ok {
			matched++
		}
	}

	// Coverage of the query drives the base score; extra candidate tokens
	// dilute it mildly so "tata motors" beats "tata motors finance", and
	// steeply for single-token queries.
	dilution := 4
	if singleToken {
		dilution = 15
	}
	base := 0
	if len(qTokens) > 0 {
		base = matched * 80 / len(qTokens)
		if extra := len(cTokens) - matched; extra > 0 {
			base -= extra * dilution
		}
	}

	score := base
	if !singleToken {
		switch {
		case strings.HasPrefix(candidate, query):
			score += 20
		case strings.Contains(candidate, query):
			score += 12
		case strings.Contains(query, candidate):
			score += 10
		}
	}

	if hasExchange {
		score += 3
	}

	if singleToken {
		if strings.Contains(candidate, "industries") {
			score += 8
		}
		for _, t := range cTokens {
			if _, sub := subsidiaryWords[t]; sub {
				score -= 10
				break
			}
		}
	}

	return clamp(score, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
