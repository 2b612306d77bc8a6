package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"stock-analyzer/internal/types"
)

func fp(v float64) *float64 { return &v }

func sp(s string) *string { return &s }

func sampleReport() *types.Report {
	return &types.Report{
		Snapshot: types.QuoteSnapshot{
			Symbol:          "RELIANCE.NS",
			LongName:        sp("Reliance Industries Limited"),
			CurrentPrice:    fp(2500),
			PreviousClose:   fp(2400),
			MarketCap:       fp(1.69e12),
			BusinessSummary: sp("Reliance Industries operates energy and retail businesses."),
		},
		Metrics: types.PriceMetrics{
			PriceChange:   100,
			PercentChange: 4.17,
			PeriodHigh:    2600,
			DrawdownPct:   -3.85,
		},
		Headlines: []types.Headline{
			{
				NewsItem:  types.NewsItem{Title: "Reliance beats quarterly profit estimates", Publisher: sp("Reuters")},
				Sentiment: types.SentimentResult{Label: types.Positive, Score: 0.6},
			},
			{
				NewsItem:  types.NewsItem{Title: "Shares plunge after regulator opens probe"},
				Sentiment: types.SentimentResult{Label: types.Negative, Score: -0.52},
			},
			{
				NewsItem:  types.NewsItem{Title: "Annual general meeting scheduled for June", Publisher: sp("Mint")},
				Sentiment: types.SentimentResult{Label: types.Neutral, Score: 0.0},
			},
		},
		WindowDays:  60,
		GeneratedAt: time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
	}
}

func TestRenderShowsPricePanel(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleReport(), 5)
	out := buf.String()

	for _, want := range []string{
		"Reliance Industries Limited (RELIANCE.NS)",
		"Current Price:    ₹2500.00",
		"Day Change:       ₹100.00 (4.17%)",
		"60-Day High:      ₹2600.00",
		"From High:        -3.85% Drop",
		"Market Cap:       ₹169000 Cr",
		"Reliance Industries operates energy and retail businesses.",
		"Generated at 2024-01-02 15:04:05",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderLabelsHeadlines(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleReport(), 5)
	out := buf.String()

	for _, want := range []string{
		"1. Reliance beats quarterly profit estimates",
		"Positive 😊 (Score: 0.60) [Reuters]",
		"2. Shares plunge after regulator opens probe",
		"Negative 😟 (Score: -0.52)",
		"3. Annual general meeting scheduled for June",
		"Neutral 😐 (Score: 0.00) [Mint]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderCapsHeadlines(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleReport(), 2)
	out := buf.String()

	if !strings.Contains(out, "2. Shares plunge") {
		t.Errorf("second headline should render:\n%s", out)
	}
	if strings.Contains(out, "Annual general meeting") {
		t.Errorf("third headline should be cut at topNews=2:\n%s", out)
	}
}

func TestRenderFallbacks(t *testing.T) {
	r := sampleReport()
	r.Snapshot.MarketCap = nil
	r.Snapshot.BusinessSummary = nil
	r.Headlines = nil

	var buf bytes.Buffer
	Render(&buf, r, 5)
	out := buf.String()

	for _, want := range []string{
		"Market Cap:       N/A",
		"No business summary available.",
		"No recent news found.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderExchangeLinksUseBaseSymbol(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleReport(), 5)
	out := buf.String()

	if !strings.Contains(out, "https://www.nseindia.com/get-quotes/equity?symbol=RELIANCE#security-information-bulk-deals") {
		t.Errorf("bulk deals link should use the base symbol:\n%s", out)
	}
	if !strings.Contains(out, "https://www.nseindia.com/get-quotes/equity?symbol=RELIANCE#security-information-block-deals") {
		t.Errorf("block deals link should use the base symbol:\n%s", out)
	}
	if strings.Contains(out, "symbol=RELIANCE.NS#") {
		t.Errorf("links must not carry the venue suffix:\n%s", out)
	}
}

func TestRenderNegativeDayChangeEmoji(t *testing.T) {
	r := sampleReport()
	r.Metrics.PriceChange = -50
	r.Metrics.PercentChange = -2.0

	var buf bytes.Buffer
	Render(&buf, r, 5)

	if !strings.Contains(buf.String(), "📉 Day Change:       ₹-50.00 (-2.00%)") {
		t.Errorf("negative change should render with the down marker:\n%s", buf.String())
	}
}
