// Package report renders an analysis report as a terminal panel.
package report

import (
	"fmt"
	"io"
	"strings"

	"stock-analyzer/internal/types"
)

const (
	divider    = "═══════════════════════════════════════════════════════════════"
	subDivider = "─────────────────────────────────────────────────────────────"
)

// Render writes a full report panel, showing at most topNews headlines.
func Render(w io.Writer, r *types.Report, topNews int) {
	name := r.Snapshot.Symbol
	if r.Snapshot.LongName != nil && *r.Snapshot.LongName != "" {
		name = *r.Snapshot.LongName
	}

	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "   %s (%s)\n", name, r.Snapshot.Symbol)
	fmt.Fprintln(w, divider)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  💰 Current Price:    ₹%.2f\n", orZero(r.Snapshot.CurrentPrice))
	fmt.Fprintf(w, "  %s Day Change:       ₹%.2f (%.2f%%)\n",
		changeEmoji(r.Metrics.PriceChange), r.Metrics.PriceChange, r.Metrics.PercentChange)
	fmt.Fprintf(w, "  📊 %d-Day High:      ₹%.2f\n", r.WindowDays, r.Metrics.PeriodHigh)
	fmt.Fprintf(w, "  📉 From High:        %.2f%% Drop\n", r.Metrics.DrawdownPct)
	if r.Snapshot.MarketCap != nil {
		fmt.Fprintf(w, "  💼 Market Cap:       ₹%.0f Cr\n", *r.Snapshot.MarketCap/1e7)
	} else {
		fmt.Fprintln(w, "  💼 Market Cap:       N/A")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, subDivider)
	fmt.Fprintln(w, "  🏢 About")
	fmt.Fprintln(w, subDivider)
	if r.Snapshot.BusinessSummary != nil && *r.Snapshot.BusinessSummary != "" {
		fmt.Fprintf(w, "  %s\n", *r.Snapshot.BusinessSummary)
	} else {
		fmt.Fprintln(w, "  No business summary available.")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, divider)
	fmt.Fprintln(w, "                         RECENT NEWS")
	fmt.Fprintln(w, divider)
	fmt.Fprintln(w)
	renderHeadlines(w, r.Headlines, topNews)
	fmt.Fprintln(w)

	base := baseSymbol(r.Snapshot.Symbol)
	fmt.Fprintln(w, subDivider)
	fmt.Fprintf(w, "  🔗 NSE Bulk Deals:   https://www.nseindia.com/get-quotes/equity?symbol=%s#security-information-bulk-deals\n", base)
	fmt.Fprintf(w, "  🔗 NSE Block Deals:  https://www.nseindia.com/get-quotes/equity?symbol=%s#security-information-block-deals\n", base)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Generated at %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
}

func renderHeadlines(w io.Writer, headlines []types.Headline, topNews int) {
	if len(headlines) == 0 {
		fmt.Fprintln(w, "  No recent news found.")
		return
	}
	if topNews > 0 && len(headlines) > topNews {
		headlines = headlines[:topNews]
	}

	for i, h := range headlines {
		fmt.Fprintf(w, "  %d. %s\n", i+1, h.Title)

		line := fmt.Sprintf("%s (Score: %.2f)", sentimentLabel(h.Sentiment.Label), h.Sentiment.Score)
		if h.Publisher != nil && *h.Publisher != "" {
			line += fmt.Sprintf(" [%s]", *h.Publisher)
		}
		fmt.Fprintf(w, "     %s\n", line)

		if i < len(headlines)-1 {
			fmt.Fprintln(w)
		}
	}
}

func sentimentLabel(label types.SentimentLabel) string {
	switch label {
	case types.Positive:
		return "Positive 😊"
	case types.Negative:
		return "Negative 😟"
	default:
		return "Neutral 😐"
	}
}

func changeEmoji(priceChange float64) string {
	switch {
	case priceChange > 0:
		return "📈"
	case priceChange < 0:
		return "📉"
	default:
		return "➖"
	}
}

// baseSymbol strips the venue suffix; NSE quote pages key on the plain
// tradingsymbol.
func baseSymbol(symbol string) string {
	if i := strings.IndexByte(symbol, '.'); i > 0 {
		return symbol[:i]
	}
	return symbol
}

func orZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
