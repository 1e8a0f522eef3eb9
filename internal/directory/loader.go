package directory

import (
	"encoding/json"
	"fmt"
	"os"

	"FinTalk/internal/domain/models"
)

type instrumentRow struct {
	Name      string `json:"name"`
	NSESymbol string `json:"nse_symbol"`
	BSESymbol string `json:"bse_symbol"`
	ISIN      string `json:"isin"`
	Sector    string `json:"sector"`
	Industry  string `json:"industry"`
}

// LoadInstruments reads the bundled NSE/BSE instrument list. Rows without
// a name or any symbol are dropped.
func LoadInstruments(path string) ([]models.EntityRef, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instrument list: %w", err)
	}

	var raw []instrumentRow
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse instrument list: %w", err)
	}

	out := make([]models.EntityRef, 0, len(raw))
	for _, r := range raw {
		if r.Name == "" || (r.NSESymbol == "" && r.BSESymbol == "") {
			continue
		}
		out = append(out, models.EntityRef{
			Name:      r.Name,
			NSESymbol: r.NSESymbol,
			BSESymbol: r.BSESymbol,
			Sector:    r.Sector,
			Industry:  r.Industry,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("instrument list %s is empty", path)
	}
	return out, nil
}
