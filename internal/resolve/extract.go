package resolve

import (
	"regexp"
	"strings"
)

var (
	quotedRe      = regexp.MustCompile(`["']([^"']{2,})["']`)
	prepositionRe = regexp.MustCompile(`(?i)\b(?:for|of|about)\s+([a-zA-Z0-9&.\- ]{2,}?)(?:\s+(?:stock|share|price|news|chart|graph)s?\b|$|[?.!,])`)
	splitRe       = regexp.MustCompile(`(?i)\s+(?:and|or|vs\.?|versus)\s+|,`)
	capSpanRe     = regexp.MustCompile(`\b([A-Z][a-zA-Z&]+(?:\s+[A-Z][a-zA-Z&]+)+)\b`)
)

// Words removed when cleaning the query remainder into a name fragment.
var stopwords = map[string]struct{}{
	"stock": {}, "stocks": {}, "share": {}, "shares": {}, "price": {},
	"prices": {}, "quote": {}, "news": {}, "chart": {}, "graph": {},
	"latest": {}, "today": {}, "current": {}, "show": {}, "me": {},
	"get": {}, "give": {}, "tell": {}, "what": {}, "whats": {}, "is": {},
	"the": {}, "a": {}, "an": {}, "please": {}, "about": {}, "how": {},
	"doing": {}, "performing": {}, "market": {}, "value": {}, "rate": {},
	"compare": {}, "between": {}, "trend": {}, "update": {}, "on": {},
	"for": {}, "of": {}, "in": {}, "it": {}, "its": {}, "this": {},
	"that": {}, "they": {}, "them": {},
}

// ExtractCandidates pulls candidate name fragments out of a query:
// quoted phrases, the objects of "for"/"of"/"about", and the cleaned
// remainder with intent keywords stripped. Fragments joined by
// "and"/"or"/commas are split to support multi-company queries.
func ExtractCandidates(query string) []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(frag string) {
		for _, part := range splitRe.Split(frag, -1) {
			part = strings.TrimSpace(part)
			if len(part) < 2 {
				continue
			}
			key := strings.ToLower(part)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, part)
		}
	}

	for _, m := range quotedRe.FindAllStringSubmatch(query, -1) {
		add(m[1])
	}
	for _, m := range prepositionRe.FindAllStringSubmatch(query, -1) {
		add(m[1])
	}
	if cleaned := cleanRemainder(query); cleaned != "" {
		add(cleaned)
	}

	return out
}

// TagSpans finds capitalized multi-word spans, a heuristic stand-in for a
// named-entity tagger.
func TagSpans(query string) []string {
	var out []string
	for _, m := range capSpanRe.FindAllStringSubmatch(query, -1) {
		out = append(out, m[1])
	}
	return out
}

func cleanRemainder(query string) string {
	var b strings.Builder
	for _, r := range query {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '&', r == ' ':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, skip := stopwords[strings.ToLower(f)]; skip {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
