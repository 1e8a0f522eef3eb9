package models

import "sort"

// Intent labels what the user wants from one conversational turn.
type Intent string

const (
	IntentStock      Intent = "stock"
	IntentNews       Intent = "news"
	IntentChart      Intent = "chart"
	IntentCasual     Intent = "casual"
	IntentExpandNews Intent = "expand_news"
	IntentClarify    Intent = "clarify"
	IntentGreeting   Intent = "greeting"
)

// ValidIntent reports whether s is part of the fixed intent vocabulary.
func ValidIntent(s string) bool {
	switch Intent(s) {
	case IntentStock, IntentNews, IntentChart, IntentCasual,
		IntentExpandNews, IntentClarify, IntentGreeting:
		return true
	}
	return false
}

// IntentSet is a set over the intent vocabulary.
type IntentSet map[Intent]struct{}

// NewIntentSet builds a set from the given intents.
func NewIntentSet(intents ...Intent) IntentSet {
	s := make(IntentSet, len(intents))
	for _, in := range intents {
		s[in] = struct{}{}
	}
	return s
}

// Has reports set membership.
func (s IntentSet) Has(in Intent) bool {
	_, ok := s[in]
	return ok
}

// Add inserts an intent.
func (s IntentSet) Add(in Intent) {
	s[in] = struct{}{}
}

// HasAny reports whether any of the given intents is present.
func (s IntentSet) HasAny(intents ...Intent) bool {
	for _, in := range intents {
		if s.Has(in) {
			return true
		}
	}
	return false
}

// NeedsEntity reports whether the set requires entity resolution.
func (s IntentSet) NeedsEntity() bool {
	return s.HasAny(IntentStock, IntentNews, IntentChart)
}

// List returns the intents in stable (sorted) order.
func (s IntentSet) List() []Intent {
	out := make([]Intent, 0, len(s))
	for in := range s {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the intents as sorted strings.
func (s IntentSet) Strings() []string {
	list := s.List()
	out := make([]string, len(list))
	for i, in := range list {
		out[i] = string(in)
	}
	return out
}

// Normalize enforces the terminal-intent invariant: clarify and greeting
// never co-occur with data-fetch intents. Terminal intents win.
func (s IntentSet) Normalize() IntentSet {
	if s.Has(IntentClarify) {
		return NewIntentSet(IntentClarify)
	}
	if s.Has(IntentGreeting) && s.NeedsEntity() {
		return NewIntentSet(IntentGreeting)
	}
	return s
}

// Equal reports whether two sets hold the same intents.
func (s IntentSet) Equal(o IntentSet) bool {
	if len(s) != len(o) {
		return false
	}
	for in := range s {
		if !o.Has(in) {
			return false
		}
	}
	return true
}
