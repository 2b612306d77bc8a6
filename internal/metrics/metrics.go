// Package metrics derives price-change and drawdown figures from a quote
// snapshot and a trailing price history window. Everything here is a pure
// function of its inputs: no I/O, no logging, no shared state.
package metrics

import (
	"errors"

	"stock-analyzer/internal/types"
)

var (
	// ErrInvalidSnapshot is returned when the fetched record does not
	// identify a valid instrument (missing symbol or display name).
	ErrInvalidSnapshot = errors.New("snapshot does not identify a valid instrument")

	// ErrMissingHistory is returned when the history window is empty.
	// Substituting a zero period high would fabricate a 100% drawdown,
	// so this is a hard failure instead of a default.
	ErrMissingHistory = errors.New("price history window is empty")
)

// ValidateSnapshot reports whether snap identifies a tradable
// instrument: a symbol plus a human display name. Data sources answer
// queries for unknown tickers with records missing the display name.
func ValidateSnapshot(snap types.QuoteSnapshot) error {
	if snap.Symbol == "" || snap.LongName == nil || *snap.LongName == "" {
		return ErrInvalidSnapshot
	}
	return nil
}

// Compute derives PriceMetrics from a snapshot and its history window.
//
// Missing CurrentPrice or PreviousClose are treated as 0 for the price
// change. Percent change and drawdown are guarded by an explicit branch
// on "denominator present and non-zero"; when the guard fails the figure
// is 0, never an error.
func Compute(snap types.QuoteSnapshot, history types.PriceHistoryWindow) (types.PriceMetrics, error) {
	if err := ValidateSnapshot(snap); err != nil {
		return types.PriceMetrics{}, err
	}
	if len(history.Bars) == 0 {
		return types.PriceMetrics{}, ErrMissingHistory
	}

	current := orZero(snap.CurrentPrice)
	prevClose := orZero(snap.PreviousClose)

	m := types.PriceMetrics{
		PriceChange: current - prevClose,
	}
	if snap.PreviousClose != nil && prevClose != 0 {
		m.PercentChange = m.PriceChange / prevClose * 100
	}

	m.PeriodHigh = periodHigh(history.Bars)
	if m.PeriodHigh != 0 {
		m.DrawdownPct = (current - m.PeriodHigh) / m.PeriodHigh * 100
	}

	return m, nil
}

// periodHigh scans for the maximum bar high. Callers guarantee at least
// one bar.
func periodHigh(bars []types.Bar) float64 {
	high := bars[0].High
	for _, b := range bars[1:] {
		if b.High > high {
			high = b.High
		}
	}
	return high
}

func orZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
