package merge

import (
	"fmt"
	"strings"

	"FinTalk/internal/domain/models"
	"FinTalk/pkg/util"
)

// Merger renders one turn's gathered data into the final reply text.
// Rendering is pure: identical state always yields identical text, and
// the chart rides along as structured data, never as prose.
type Merger struct{}

func New() *Merger { return &Merger{} }

const noDataText = "Sorry, no data found for that right now. Please try again in a bit."

// Render builds st.Reply from st.Data, st.Chart and st.Intents.
func (m *Merger) Render(st *models.WorkflowState) *models.Reply {
	var b strings.Builder

	if st.FromMemory {
		if p := st.Primary(); p != nil {
			fmt.Fprintf(&b, "Continuing with %s.\n\n", p.Name)
		}
	}

	wroteAny := false
	for _, d := range st.Data {
		section := m.renderEntity(d, st)
		if section == "" {
			continue
		}
		if wroteAny {
			b.WriteString("\n")
		}
		b.WriteString(section)
		wroteAny = true
	}

	if !wroteAny && st.Chart == nil {
		return &models.Reply{Text: noDataText}
	}
	if !wroteAny && st.Chart != nil {
		fmt.Fprintf(&b, "Here is the %s chart for %s.", st.Chart.Range, st.Chart.Symbol)
	}

	return &models.Reply{Text: strings.TrimRight(b.String(), "\n"), Chart: st.Chart}
}

func (m *Merger) renderEntity(d models.EntityData, st *models.WorkflowState) string {
	if d.Stock == nil && len(d.News) == 0 {
		return ""
	}
	var b strings.Builder

	if d.Entity.Name != "" {
		fmt.Fprintf(&b, "%s\n", d.Entity.Name)
	}

	if d.Stock != nil {
		arrow := "\U0001F4C8"
		if d.Stock.PercentChange < 0 {
			arrow = "\U0001F4C9"
		}
		fmt.Fprintf(&b, "%s %s (%s): ₹%.2f (%+.2f%%)\n",
			arrow, d.Stock.Symbol, d.Stock.Exchange, d.Stock.CurrentPrice, d.Stock.PercentChange)
		fmt.Fprintf(&b, "Day range: ₹%.2f - ₹%.2f", d.Stock.DailyLow, d.Stock.DailyHigh)
		if d.Stock.Volume > 0 {
			fmt.Fprintf(&b, " | Volume: %s", formatCount(d.Stock.Volume))
		}
		if d.Stock.MarketCap > 0 {
			fmt.Fprintf(&b, " | Mkt cap: ₹%s", formatCount(d.Stock.MarketCap))
		}
		b.WriteString("\n")
	}

	if len(d.News) > 0 {
		if d.Stock != nil {
			b.WriteString("\n")
		}
		b.WriteString("Latest news:\n")
		limit := st.Detail.ArticleCount()
		words := st.Detail.WordLimit()
		for i, item := range d.News {
			if i >= limit {
				break
			}
			fmt.Fprintf(&b, "%d. %s", i+1, item.Title)
			if item.Source != "" {
				fmt.Fprintf(&b, " (%s)", item.Source)
			}
			b.WriteString("\n")
			if item.Summary != "" {
				fmt.Fprintf(&b, "   %s\n", util.TruncateWords(item.Summary, words))
			}
		}
	}

	return b.String()
}

// RenderGreeting is the terminal greeting reply.
func (m *Merger) RenderGreeting() *models.Reply {
	return &models.Reply{Text: "Hello! Ask me about any NSE or BSE listed company, for example \"TCS stock price\" or \"latest news on Reliance\"."}
}

// RenderClarify asks the user to pick a company, listing the closest
// directory matches when any exist.
func (m *Merger) RenderClarify(suggestions []models.Suggestion) *models.Reply {
	if len(suggestions) == 0 {
		return &models.Reply{Text: "I couldn't tell which company you mean. Could you name it, or give its NSE/BSE symbol?"}
	}

	var b strings.Builder
	b.WriteString("I found a few possible matches. Which one did you mean?\n")
	for i, s := range suggestions {
		fmt.Fprintf(&b, "%d. %s", i+1, s.Name)
		if s.Symbol != "" {
			fmt.Fprintf(&b, " (%s: %s)", s.Exchange, s.Symbol)
		}
		if s.Sector != "" {
			fmt.Fprintf(&b, " - %s", s.Sector)
		}
		if s.Industry != "" && s.Industry != s.Sector {
			fmt.Fprintf(&b, ", %s", s.Industry)
		}
		b.WriteString("\n")
	}
	return &models.Reply{Text: strings.TrimRight(b.String(), "\n")}
}

// RenderExpanded wraps an article summary produced by the expand path.
func (m *Merger) RenderExpanded(title, summary string) *models.Reply {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "%s\n\n", title)
	}
	b.WriteString(summary)
	return &models.Reply{Text: b.String()}
}

// formatCount renders large counts in Indian market shorthand.
func formatCount(v int64) string {
	f := float64(v)
	switch {
	case f >= 1e12:
		return fmt.Sprintf("%.2fL Cr", f/1e12)
	case f >= 1e7:
		return fmt.Sprintf("%.2f Cr", f/1e7)
	case f >= 1e5:
		return fmt.Sprintf("%.2f L", f/1e5)
	}
	return fmt.Sprintf("%d", v)
}
