package models

// ResolutionSource identifies which pipeline stage produced a candidate.
type ResolutionSource string

const (
	SourceRegex ResolutionSource = "regex"
	SourceNER   ResolutionSource = "ner"
	SourceFuzzy ResolutionSource = "fuzzy"
	SourceLLM   ResolutionSource = "llm"
)

// EntityRef points at one tradable company. A company may be listed on
// either or both national exchanges.
type EntityRef struct {
	Name      string `json:"name"`
	NSESymbol string `json:"nse_symbol,omitempty"`
	BSESymbol string `json:"bse_symbol,omitempty"`
	Sector    string `json:"sector,omitempty"`
	Industry  string `json:"industry,omitempty"`
}

// Resolved reports whether the ref identifies anything at all.
func (e EntityRef) Resolved() bool {
	return e.Name != "" || e.NSESymbol != "" || e.BSESymbol != ""
}

// PreferredSymbol returns the symbol and exchange to use for data fetches.
// NSE wins when both listings exist.
func (e EntityRef) PreferredSymbol() (symbol, exchange string) {
	if e.NSESymbol != "" {
		return e.NSESymbol, "NSE"
	}
	if e.BSESymbol != "" {
		return e.BSESymbol, "BSE"
	}
	return "", ""
}

// QuoteSymbol returns the provider-facing symbol: NSE listings carry a
// .NS suffix, BSE listings .BO. Index symbols (^NSEI, ^BSESN) pass through.
func (e EntityRef) QuoteSymbol() string {
	if e.NSESymbol != "" {
		if e.NSESymbol[0] == '^' {
			return e.NSESymbol
		}
		return e.NSESymbol + ".NS"
	}
	if e.BSESymbol != "" {
		if e.BSESymbol[0] == '^' {
			return e.BSESymbol
		}
		return e.BSESymbol + ".BO"
	}
	return ""
}

// ResolutionCandidate is one scored match out of the resolution pipeline.
// Confidence sits on a 0-100 scale.
type ResolutionCandidate struct {
	Entity     EntityRef        `json:"entity"`
	Confidence int              `json:"confidence"`
	Source     ResolutionSource `json:"source"`
}

// Suggestion is one row of a clarify prompt.
type Suggestion struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol,omitempty"`
	Exchange string `json:"exchange,omitempty"`
	Sector   string `json:"sector,omitempty"`
	Industry string `json:"industry,omitempty"`
}
