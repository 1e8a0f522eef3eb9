package resolve

import "strings"

// Corporate suffixes stripped before any comparison.
var companySuffixes = map[string]struct{}{
	"ltd": {}, "limited": {}, "pvt": {}, "private": {}, "inc": {},
	"co": {}, "company": {}, "corp": {}, "corporation": {},
}

// Normalize lowers case, strips corporate suffixes and punctuation, and
// collapses whitespace. Two names compare equal iff their normal forms do.
func Normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '&':
			b.WriteString(" and ")
		default:
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, skip := companySuffixes[f]; skip {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

// Well-known shorthand for listed companies. Applied before fuzzy scoring
// so "tcs" redirects to the canonical name instead of scoring literally.
var abbreviations = map[string]string{
	"tcs":       "Tata Consultancy Services",
	"infy":      "Infosys",
	"ril":       "Reliance Industries",
	"hdfc":      "HDFC Bank",
	"sbi":       "State Bank of India",
	"icici":     "ICICI Bank",
	"itc":       "ITC",
	"hul":       "Hindustan Unilever",
	"l and t":   "Larsen and Toubro",
	"lt":        "Larsen and Toubro",
	"m and m":   "Mahindra and Mahindra",
	"maruti":    "Maruti Suzuki India",
	"airtel":    "Bharti Airtel",
	"jio":       "Reliance Industries",
	"ongc":      "Oil and Natural Gas Corporation",
	"bajaj":     "Bajaj Finance",
	"wipro":     "Wipro",
	"ultratech": "UltraTech Cement",
}

// Controlling-person names redirected to the company people mean.
var ownerToCompany = map[string]string{
	"mukesh ambani":   "Reliance Industries",
	"ambani":          "Reliance Industries",
	"gautam adani":    "Adani Enterprises",
	"anand mahindra":  "Mahindra and Mahindra",
	"narayana murthy": "Infosys",
	"azim premji":     "Wipro",
	"ratan tata":      "Tata Motors",
	"kumar birla":     "Grasim Industries",
}

// Index shortcuts: common index names map straight to index symbols.
var indexSymbols = map[string]string{
	"nifty":      "^NSEI",
	"nifty 50":   "^NSEI",
	"sensex":     "^BSESN",
	"bse sensex": "^BSESN",
}

// CanonicalAlias resolves a normalized fragment through the abbreviation
// and owner tables. The boolean reports whether a redirect happened.
func CanonicalAlias(fragment string) (string, bool) {
	if full, ok := abbreviations[fragment]; ok {
		return full, true
	}
	if full, ok := ownerToCompany[fragment]; ok {
		return full, true
	}
	return fragment, false
}

// IndexSymbol reports whether the fragment names a market index.
func IndexSymbol(fragment string) (string, bool) {
	sym, ok := indexSymbols[fragment]
	return sym, ok
}
