package types

import "time"

// QuoteSnapshot is a point-in-time quote record for one instrument.
// Optional fields are nil when the provider omitted them; nothing here
// substitutes zeros for missing values.
type QuoteSnapshot struct {
	Symbol          string   `json:"symbol"`
	LongName        *string  `json:"long_name,omitempty"`
	CurrentPrice    *float64 `json:"current_price,omitempty"`
	PreviousClose   *float64 `json:"previous_close,omitempty"`
	MarketCap       *float64 `json:"market_cap,omitempty"`
	BusinessSummary *string  `json:"business_summary,omitempty"`
}

// Bar is one daily OHLCV record.
type Bar struct {
	Date                           time.Time
	Open, High, Low, Close, Volume float64
}

// PriceHistoryWindow holds daily bars over a trailing window, oldest first.
// Bars may be empty when the provider returned nothing.
type PriceHistoryWindow struct {
	Days int
	Bars []Bar
}

type NewsItem struct {
	Title     string  `json:"title"`
	Publisher *string `json:"publisher,omitempty"`
}

type SentimentLabel string

const (
	Positive SentimentLabel = "POSITIVE"
	Negative SentimentLabel = "NEGATIVE"
	Neutral  SentimentLabel = "NEUTRAL"
)

// SentimentResult carries the label and the compound polarity score
// ([-1, 1]) for a single headline.
type SentimentResult struct {
	Label SentimentLabel `json:"label"`
	Score float64        `json:"score"`
}

// Headline pairs a news item with its per-request sentiment.
type Headline struct {
	NewsItem
	Sentiment SentimentResult `json:"sentiment"`
}

// PriceMetrics are the derived price figures for one analysis request.
type PriceMetrics struct {
	PriceChange   float64 `json:"price_change"`
	PercentChange float64 `json:"percent_change"`
	PeriodHigh    float64 `json:"period_high"`
	DrawdownPct   float64 `json:"drawdown_pct"`
}

// Report is the assembled result of one analysis request.
type Report struct {
	Snapshot    QuoteSnapshot `json:"snapshot"`
	Metrics     PriceMetrics  `json:"metrics"`
	Headlines   []Headline    `json:"headlines"`
	WindowDays  int           `json:"window_days"`
	GeneratedAt time.Time     `json:"generated_at"`
}
