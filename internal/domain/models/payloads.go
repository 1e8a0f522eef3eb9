package models

import "strings"

// StockSnapshot is one market-data reading for a company.
type StockSnapshot struct {
	Symbol        string  `json:"symbol"`
	Exchange      string  `json:"exchange"`
	CurrentPrice  float64 `json:"current_price"`
	PercentChange float64 `json:"percent_change"`
	DailyHigh     float64 `json:"daily_high"`
	DailyLow      float64 `json:"daily_low"`
	MarketCap     int64   `json:"market_cap"`
	Volume        int64   `json:"volume"`
}

// NewsItem is one article returned by the news provider.
type NewsItem struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary,omitempty"`
	Source  string `json:"source,omitempty"`
}

// ChartSeries is the side-channel chart payload. It is never rendered as
// text; the boundary forwards it to the client as structured data.
type ChartSeries struct {
	Symbol     string    `json:"symbol"`
	Range      string    `json:"range"`
	Interval   string    `json:"interval"`
	Timestamps []int64   `json:"timestamps"`
	Closes     []float64 `json:"closes"`
}

// EntityData groups per-entity fetch results, aligned by entity.
type EntityData struct {
	Entity EntityRef      `json:"entity"`
	Stock  *StockSnapshot `json:"stock,omitempty"`
	News   []NewsItem     `json:"news,omitempty"`
}

// Reply is the final product of one turn.
type Reply struct {
	Text  string       `json:"text"`
	Chart *ChartSeries `json:"chart,omitempty"`
}

// DetailLevel governs how much news body a reply carries.
type DetailLevel string

const (
	DetailShort  DetailLevel = "short"
	DetailMedium DetailLevel = "medium"
	DetailLong   DetailLevel = "long"
)

// ArticleCount returns how many articles the level renders.
func (d DetailLevel) ArticleCount() int {
	switch d {
	case DetailShort:
		return 1
	case DetailLong:
		return 5
	default:
		return 3
	}
}

// WordLimit returns the per-article summary cap in words.
func (d DetailLevel) WordLimit() int {
	switch d {
	case DetailShort:
		return 30
	case DetailLong:
		return 150
	default:
		return 80
	}
}

// DetailLevelFromQuery reads an explicit detail request out of the query.
func DetailLevelFromQuery(query string) DetailLevel {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "detail"), strings.Contains(q, "in depth"),
		strings.Contains(q, "everything"), strings.Contains(q, "full"):
		return DetailLong
	case strings.Contains(q, "brief"), strings.Contains(q, "short"),
		strings.Contains(q, "quick"), strings.Contains(q, "one line"):
		return DetailShort
	}
	return DetailMedium
}
