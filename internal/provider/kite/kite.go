// Package kite serves market data from the Zerodha Kite Connect API.
// Kite covers quotes and candles only; market cap and company profiles
// are not available from it.
package kite

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"stock-analyzer/internal/interfaces"
	"stock-analyzer/internal/logger"
	"stock-analyzer/internal/types"
)

type Params struct {
	APIKey      string
	AccessToken string
	Exchange    string
}

type Provider struct {
	kc       *kiteconnect.Client
	exchange string

	mu          sync.RWMutex
	instruments map[string]instrument
}

type instrument struct {
	token int
	name  string
}

var _ interfaces.MarketDataProvider = (*Provider)(nil)

func New(p Params) *Provider {
	kc := kiteconnect.New(p.APIKey)
	kc.SetAccessToken(p.AccessToken)

	return &Provider{
		kc:          kc,
		exchange:    p.Exchange,
		instruments: make(map[string]instrument),
	}
}

func (p *Provider) Name() string { return "kite" }

// Quote returns the last traded price and previous close. Symbols the
// exchange dump does not list yield a bare snapshot that fails
// downstream validation.
func (p *Provider) Quote(ctx context.Context, symbol string) (types.QuoteSnapshot, error) {
	base := baseSymbol(symbol)

	inst, known, err := p.lookup(ctx, base)
	if err != nil {
		return types.QuoteSnapshot{}, err
	}
	snap := types.QuoteSnapshot{Symbol: symbol}
	if !known {
		return snap, nil
	}
	if inst.name != "" {
		name := inst.name
		snap.LongName = &name
	}

	key := p.exchange + ":" + base
	quotes, err := p.kc.GetQuote(key)
	if err != nil {
		return types.QuoteSnapshot{}, fmt.Errorf("kite quote %s: %w", key, err)
	}
	q, ok := quotes[key]
	if !ok {
		return snap, nil
	}

	last := q.LastPrice
	prev := q.OHLC.Close
	snap.CurrentPrice = &last
	snap.PreviousClose = &prev
	return snap, nil
}

// History fetches daily candles for the trailing window via the
// historical data endpoint.
func (p *Provider) History(ctx context.Context, symbol string, days int) (types.PriceHistoryWindow, error) {
	base := baseSymbol(symbol)

	inst, known, err := p.lookup(ctx, base)
	if err != nil {
		return types.PriceHistoryWindow{}, err
	}
	if !known {
		return types.PriceHistoryWindow{Days: days}, nil
	}

	to := time.Now()
	from := to.AddDate(0, 0, -days)
	candles, err := p.kc.GetHistoricalData(inst.token, "day", from, to, false, false)
	if err != nil {
		return types.PriceHistoryWindow{}, fmt.Errorf("kite historical %s: %w", symbol, err)
	}

	bars := make([]types.Bar, 0, len(candles))
	for _, c := range candles {
		if c.High <= 0 {
			continue
		}
		bars = append(bars, types.Bar{
			Date:   c.Date.Time,
			Open:   c.Open,
			High:   c.High,
			Low:    c.Low,
			Close:  c.Close,
			Volume: float64(c.Volume),
		})
	}

	return types.PriceHistoryWindow{Days: days, Bars: bars}, nil
}

// lookup resolves a tradingsymbol against the instrument dump, loading
// the dump on first use.
func (p *Provider) lookup(ctx context.Context, symbol string) (instrument, bool, error) {
	p.mu.RLock()
	loaded := len(p.instruments) > 0
	inst, ok := p.instruments[symbol]
	p.mu.RUnlock()
	if loaded {
		return inst, ok, nil
	}

	if err := p.loadInstruments(ctx); err != nil {
		return instrument{}, false, err
	}

	p.mu.RLock()
	inst, ok = p.instruments[symbol]
	p.mu.RUnlock()
	return inst, ok, nil
}

func (p *Provider) loadInstruments(ctx context.Context) error {
	all, err := p.kc.GetInstrumentsByExchange(p.exchange)
	if err != nil {
		return fmt.Errorf("load instruments for %s: %w", p.exchange, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, in := range all {
		if in.InstrumentType != "EQ" {
			continue
		}
		p.instruments[in.Tradingsymbol] = instrument{token: in.InstrumentToken, name: in.Name}
	}
	count := len(p.instruments)

	logger.Info(ctx, "instrument dump loaded", "exchange", p.exchange, "instruments", count)
	return nil
}

// baseSymbol strips a venue suffix like .NS; Kite tradingsymbols do not
// carry one.
func baseSymbol(symbol string) string {
	if i := strings.IndexByte(symbol, '.'); i > 0 {
		return symbol[:i]
	}
	return symbol
}
