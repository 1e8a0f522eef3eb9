package merge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinTalk/internal/domain/models"
)

func stockState(snap *models.StockSnapshot, news ...models.NewsItem) *models.WorkflowState {
	st := models.NewWorkflowState("q", "chat-1", nil)
	st.Intents = models.NewIntentSet(models.IntentStock)
	st.Entities = []models.EntityRef{{Name: "Infosys", NSESymbol: "INFY"}}
	st.Data = []models.EntityData{{Entity: st.Entities[0], Stock: snap, News: news}}
	return st
}

func TestRenderStockSection(t *testing.T) {
	st := stockState(&models.StockSnapshot{
		Symbol: "INFY", Exchange: "NSE",
		CurrentPrice: 1520.45, PercentChange: 1.25,
		DailyHigh: 1534.00, DailyLow: 1502.10,
		Volume: 3_500_000, MarketCap: 6_300_000_000_000,
	})

	reply := New().Render(st)

	assert.Contains(t, reply.Text, "Infosys")
	assert.Contains(t, reply.Text, "\U0001F4C8 INFY (NSE): ₹1520.45 (+1.25%)")
	assert.Contains(t, reply.Text, "Day range: ₹1502.10 - ₹1534.00")
	assert.Contains(t, reply.Text, "Volume: 35.00 L")
	assert.Contains(t, reply.Text, "Mkt cap: ₹6.30L Cr")
	assert.Nil(t, reply.Chart)
}

func TestRenderNegativeMoveUsesDownArrow(t *testing.T) {
	st := stockState(&models.StockSnapshot{
		Symbol: "INFY", Exchange: "NSE", CurrentPrice: 1480, PercentChange: -2.4,
	})

	reply := New().Render(st)

	assert.Contains(t, reply.Text, "\U0001F4C9")
	assert.Contains(t, reply.Text, "(-2.40%)")
}

func TestRenderNewsRespectsDetailLevel(t *testing.T) {
	news := []models.NewsItem{
		{Title: "Q1 results beat estimates", Source: "Example Wire", Summary: strings.Repeat("word ", 60)},
		{Title: "New campus announced", Source: "Example Wire"},
		{Title: "Third story"},
		{Title: "Fourth story"},
	}
	st := stockState(nil, news...)
	st.Intents = models.NewIntentSet(models.IntentNews)
	st.Detail = models.DetailShort

	reply := New().Render(st)

	assert.Contains(t, reply.Text, "Latest news:")
	assert.Contains(t, reply.Text, "1. Q1 results beat estimates (Example Wire)")
	assert.NotContains(t, reply.Text, "New campus announced")
	// Short detail caps the summary at 30 words.
	summaryLine := ""
	for _, line := range strings.Split(reply.Text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "word") {
			summaryLine = strings.TrimSpace(line)
		}
	}
	require.NotEmpty(t, summaryLine)
	assert.Len(t, strings.Fields(summaryLine), 30)
	assert.True(t, strings.HasSuffix(summaryLine, "..."))
}

func TestRenderNoData(t *testing.T) {
	st := stockState(nil)

	reply := New().Render(st)

	assert.Equal(t, noDataText, reply.Text)
	assert.Nil(t, reply.Chart)
}

func TestRenderChartOnly(t *testing.T) {
	st := stockState(nil)
	st.Chart = &models.ChartSeries{Symbol: "INFY.NS", Range: "1mo", Interval: "1d"}

	reply := New().Render(st)

	assert.Equal(t, "Here is the 1mo chart for INFY.NS.", reply.Text)
	assert.Same(t, st.Chart, reply.Chart)
}

func TestRenderMemoryContinuationPrefix(t *testing.T) {
	st := stockState(&models.StockSnapshot{Symbol: "INFY", Exchange: "NSE", CurrentPrice: 1500, PercentChange: 0.5})
	st.FromMemory = true

	reply := New().Render(st)

	assert.True(t, strings.HasPrefix(reply.Text, "Continuing with Infosys.\n\n"))
}

func TestRenderMultipleEntities(t *testing.T) {
	st := models.NewWorkflowState("q", "chat-1", nil)
	st.Intents = models.NewIntentSet(models.IntentStock)
	st.Entities = []models.EntityRef{
		{Name: "Infosys", NSESymbol: "INFY"},
		{Name: "Wipro", NSESymbol: "WIPRO"},
	}
	st.Data = []models.EntityData{
		{Entity: st.Entities[0], Stock: &models.StockSnapshot{Symbol: "INFY", Exchange: "NSE", CurrentPrice: 1500, PercentChange: 1}},
		{Entity: st.Entities[1], Stock: &models.StockSnapshot{Symbol: "WIPRO", Exchange: "NSE", CurrentPrice: 250, PercentChange: -1}},
	}

	reply := New().Render(st)

	infy := strings.Index(reply.Text, "Infosys")
	wipro := strings.Index(reply.Text, "Wipro")
	assert.True(t, infy >= 0 && wipro > infy)
}

func TestRenderGreeting(t *testing.T) {
	reply := New().RenderGreeting()
	assert.Contains(t, reply.Text, "NSE or BSE")
}

func TestRenderClarifyWithSuggestions(t *testing.T) {
	reply := New().RenderClarify([]models.Suggestion{
		{Name: "Tata Motors", Symbol: "TATAMOTORS", Exchange: "NSE", Sector: "Automobile", Industry: "Passenger Vehicles"},
		{Name: "Tata Steel", Symbol: "TATASTEEL", Exchange: "NSE", Sector: "Metals"},
	})

	assert.Contains(t, reply.Text, "Which one did you mean?")
	assert.Contains(t, reply.Text, "1. Tata Motors (NSE: TATAMOTORS) - Automobile, Passenger Vehicles")
	assert.Contains(t, reply.Text, "2. Tata Steel (NSE: TATASTEEL) - Metals")
}

func TestRenderClarifyWithoutSuggestions(t *testing.T) {
	reply := New().RenderClarify(nil)
	assert.Contains(t, reply.Text, "NSE/BSE symbol")
}

func TestRenderExpanded(t *testing.T) {
	reply := New().RenderExpanded("Q1 results beat estimates", "The company reported strong growth.")
	assert.Equal(t, "Q1 results beat estimates\n\nThe company reported strong growth.", reply.Text)

	reply = New().RenderExpanded("", "Just the summary.")
	assert.Equal(t, "Just the summary.", reply.Text)
}

func TestFormatCount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{950, "950"},
		{350_000, "3.50 L"},
		{25_000_000, "2.50 Cr"},
		{6_300_000_000_000, "6.30L Cr"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatCount(tc.in), tc.in)
	}
}
