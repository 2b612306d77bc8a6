// Package yahoo serves quotes and daily price history from the public
// Yahoo Finance endpoints. NSE and BSE symbols work with their usual
// suffix (RELIANCE.NS, TCS.BO).
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"time"

	"stock-analyzer/internal/api"
	"stock-analyzer/internal/config"
	"stock-analyzer/internal/interfaces"
	"stock-analyzer/internal/logger"
	"stock-analyzer/internal/types"
)

type Provider struct {
	client *api.Client
}

var _ interfaces.MarketDataProvider = (*Provider)(nil)

func New(cfg *config.Config) *Provider {
	opts := []api.ClientOption{
		api.WithBaseURL(cfg.Yahoo.BaseURL),
		api.WithTimeout(cfg.YahooTimeout()),
		api.WithRateLimit(cfg.Yahoo.RatePerSecond, 1),
		api.WithLogging(true),
	}
	for key, value := range api.YahooFinanceHeaders() {
		opts = append(opts, api.WithHeader(key, value))
	}
	return &Provider{client: api.NewClient(opts...)}
}

func (p *Provider) Name() string { return "yahoo" }

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteRecord `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"quoteResponse"`
}

type quoteRecord struct {
	Symbol                     string   `json:"symbol"`
	LongName                   *string  `json:"longName"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
	MarketCap                  *float64 `json:"marketCap"`
}

type summaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				LongBusinessSummary *string `json:"longBusinessSummary"`
			} `json:"assetProfile"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// Quote fetches the current quote plus the company profile. Unknown
// tickers come back from Yahoo as an empty result set, not an error;
// those yield a bare snapshot that fails downstream validation.
func (p *Provider) Quote(ctx context.Context, symbol string) (types.QuoteSnapshot, error) {
	var qr quoteResponse
	path := fmt.Sprintf("/v7/finance/quote?symbols=%s", url.QueryEscape(symbol))
	if err := p.client.GetJSON(ctx, path, &qr); err != nil {
		return types.QuoteSnapshot{}, fmt.Errorf("yahoo quote %s: %w", symbol, err)
	}
	if qr.QuoteResponse.Error != nil {
		return types.QuoteSnapshot{}, fmt.Errorf("yahoo quote %s: %s", symbol, qr.QuoteResponse.Error.Description)
	}
	if len(qr.QuoteResponse.Result) == 0 {
		return types.QuoteSnapshot{Symbol: symbol}, nil
	}

	rec := qr.QuoteResponse.Result[0]
	snap := types.QuoteSnapshot{
		Symbol:        symbol,
		LongName:      rec.LongName,
		CurrentPrice:  rec.RegularMarketPrice,
		PreviousClose: rec.RegularMarketPreviousClose,
		MarketCap:     rec.MarketCap,
	}

	// The profile is cosmetic; a report without it is still useful.
	summary, err := p.fetchBusinessSummary(ctx, symbol)
	if err != nil {
		logger.Warn(ctx, "business summary unavailable", "symbol", symbol, "error", err)
	} else {
		snap.BusinessSummary = summary
	}

	return snap, nil
}

func (p *Provider) fetchBusinessSummary(ctx context.Context, symbol string) (*string, error) {
	var sr summaryResponse
	path := fmt.Sprintf("/v10/finance/quoteSummary/%s?modules=assetProfile", url.PathEscape(symbol))
	if err := p.client.GetJSON(ctx, path, &sr); err != nil {
		return nil, err
	}
	if len(sr.QuoteSummary.Result) == 0 {
		return nil, nil
	}
	return sr.QuoteSummary.Result[0].AssetProfile.LongBusinessSummary, nil
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

// History fetches roughly the last `days` daily bars. Yahoo only takes
// coarse range values, so the fetch over-shoots and trims to the
// trailing days.
func (p *Provider) History(ctx context.Context, symbol string, days int) (types.PriceHistoryWindow, error) {
	var cr chartResponse
	path := fmt.Sprintf("/v8/finance/chart/%s?interval=1d&range=%s", url.PathEscape(symbol), rangeForDays(days))
	if err := p.client.GetJSON(ctx, path, &cr); err != nil {
		return types.PriceHistoryWindow{}, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}

	bars, err := barsFromChart(&cr)
	if err != nil {
		return types.PriceHistoryWindow{}, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}

	return types.PriceHistoryWindow{Days: days, Bars: bars}, nil
}

func rangeForDays(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	default:
		return "2y"
	}
}

func barsFromChart(cr *chartResponse) ([]types.Bar, error) {
	if cr.Chart.Error != nil {
		return nil, fmt.Errorf("chart error %s: %s", cr.Chart.Error.Code, cr.Chart.Error.Description)
	}
	if len(cr.Chart.Result) == 0 || len(cr.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, errors.New("chart response has no result")
	}

	result := cr.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]types.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		bar := types.Bar{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   at(quote.Open, i),
			High:   at(quote.High, i),
			Low:    at(quote.Low, i),
			Close:  at(quote.Close, i),
			Volume: at(quote.Volume, i),
		}
		// Holidays and halts come through as null rows; a bar without a
		// positive high is unusable for the drawdown scan.
		if bar.High <= 0 {
			continue
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func at(vals []*float64, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return *vals[i]
}
