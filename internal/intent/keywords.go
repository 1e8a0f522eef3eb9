package intent

import (
	"regexp"
	"strings"
)

// Deterministic keyword sets per intent, used as the fallback path and for
// explicit-keyword overrides.
var (
	stockWords = []string{
		"price", "stock", "share", "quote", "ltp", "market cap",
		"valuation", "trading at", "how much is", "current value",
	}
	newsWords = []string{
		"news", "headline", "headlines", "article", "announcement",
		"update", "updates", "happening", "development",
	}
	chartWords = []string{
		"chart", "graph", "plot", "candlestick", "trend", "historical",
		"performance over", "movement",
	}
	expandWords = []string{
		"tell me more", "more about that", "elaborate", "expand",
		"more detail", "go deeper", "full story",
	}
	greetingWords = []string{
		"hi", "hello", "hey", "good morning", "good afternoon",
		"good evening", "namaste", "yo",
	}

	// Words that signal the user changed subject; they block session
	// memory reuse in the orchestrator.
	newSubjectWords = []string{"different", "change", "new", "switch", "another"}

	pronounRe = regexp.MustCompile(`(?i)\b(it|its|it's|they|them|this|that|the company)\b`)

	nonWordRe = regexp.MustCompile(`[^a-z0-9]+`)
)

func containsAny(q string, words []string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// containsAnyWord matches on word boundaries, so short tokens like "hi" or
// "new" cannot fire inside "anything" or "news".
func containsAnyWord(q string, words []string) bool {
	padded := " " + nonWordRe.ReplaceAllString(strings.ToLower(q), " ") + " "
	for _, w := range words {
		if strings.Contains(padded, " "+w+" ") {
			return true
		}
	}
	return false
}

func isGreetingOnly(q string) bool {
	trimmed := strings.TrimRight(strings.TrimSpace(q), "!. ")
	for _, w := range greetingWords {
		if trimmed == w {
			return true
		}
	}
	return false
}

// SignalsNewSubject reports whether the query explicitly moves to a new
// company, overriding memory reuse.
func SignalsNewSubject(query string) bool {
	return containsAnyWord(query, newSubjectWords)
}

// HasPronounReference reports whether the query leans on prior context.
func HasPronounReference(query string) bool {
	return pronounRe.MatchString(query)
}
