// Package mock serves fixed market data for offline runs and tests.
// Quotes always show 2500 against a previous close of 2400, and every
// history window tops out at 2600.
package mock

import (
	"context"
	"strings"
	"time"

	"stock-analyzer/internal/interfaces"
	"stock-analyzer/internal/types"
)

var companyNames = map[string]string{
	"RELIANCE": "Reliance Industries Limited",
	"TCS":      "Tata Consultancy Services Limited",
	"INFY":     "Infosys Limited",
	"HDFCBANK": "HDFC Bank Limited",
	"ITC":      "ITC Limited",
	"SBIN":     "State Bank of India",
}

// highPattern cycles to produce a wavy but deterministic series whose
// maximum is 2600.
var highPattern = []float64{2520, 2560, 2600, 2580, 2540, 2500, 2470, 2450, 2480, 2510}

type Provider struct{}

var _ interfaces.MarketDataProvider = (*Provider)(nil)

func New() *Provider { return &Provider{} }

func (p *Provider) Name() string { return "mock" }

// Quote returns fixed prices for the known demo symbols. Anything else
// yields a bare snapshot, so the unknown-ticker path stays reachable
// without a live data source.
func (p *Provider) Quote(ctx context.Context, symbol string) (types.QuoteSnapshot, error) {
	base := symbol
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}

	name, known := companyNames[base]
	if !known {
		return types.QuoteSnapshot{Symbol: symbol}, nil
	}

	current := 2500.0
	prevClose := 2400.0
	marketCap := 1.69e12
	summary := name + " is a demo company served by the offline data source."

	return types.QuoteSnapshot{
		Symbol:          symbol,
		LongName:        &name,
		CurrentPrice:    &current,
		PreviousClose:   &prevClose,
		MarketCap:       &marketCap,
		BusinessSummary: &summary,
	}, nil
}

// History generates one bar per calendar day ending yesterday.
func (p *Provider) History(ctx context.Context, symbol string, days int) (types.PriceHistoryWindow, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -days)

	bars := make([]types.Bar, 0, days)
	for i := 0; i < days; i++ {
		high := highPattern[i%len(highPattern)]
		bars = append(bars, types.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   high - 30,
			High:   high,
			Low:    high - 45,
			Close:  high - 20,
			Volume: 1_000_000 + float64(i)*10_000,
		})
	}

	return types.PriceHistoryWindow{Days: days, Bars: bars}, nil
}
