// Package analyzer assembles the full picture for one symbol: the live
// quote, the trailing price window, derived metrics, and classified
// headlines.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"stock-analyzer/internal/config"
	"stock-analyzer/internal/interfaces"
	"stock-analyzer/internal/logger"
	"stock-analyzer/internal/metrics"
	"stock-analyzer/internal/sentiment"
	"stock-analyzer/internal/types"
)

// Analyzer fetches raw market data and derives a Report from it. Only
// the raw fetch triple is cached; metrics and sentiment are recomputed
// on every request.
type Analyzer struct {
	provider   interfaces.MarketDataProvider
	news       interfaces.NewsSource
	classifier *sentiment.Classifier
	cache      *cache.Cache
	cfg        *config.Config
}

var _ interfaces.Analyzer = (*Analyzer)(nil)

func New(cfg *config.Config, provider interfaces.MarketDataProvider, news interfaces.NewsSource, classifier *sentiment.Classifier) *Analyzer {
	ttl := cfg.CacheTTL()
	return &Analyzer{
		provider:   provider,
		news:       news,
		classifier: classifier,
		cache:      cache.New(ttl, 2*ttl),
		cfg:        cfg,
	}
}

// fetchBundle is the cacheable raw material for one symbol.
type fetchBundle struct {
	snapshot types.QuoteSnapshot
	history  types.PriceHistoryWindow
	items    []types.NewsItem
}

func (a *Analyzer) Analyze(ctx context.Context, symbol string) (*types.Report, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol: %w", metrics.ErrInvalidSnapshot)
	}

	bundle, err := a.fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}

	m, err := metrics.Compute(bundle.snapshot, bundle.history)
	if err != nil {
		return nil, fmt.Errorf("compute metrics for %s: %w", symbol, err)
	}

	// Every fetched headline gets classified; consumers decide how
	// many to show.
	headlines := make([]types.Headline, 0, len(bundle.items))
	for _, item := range bundle.items {
		headlines = append(headlines, types.Headline{
			NewsItem:  item,
			Sentiment: a.classifier.Classify(item.Title),
		})
	}

	return &types.Report{
		Snapshot:    bundle.snapshot,
		Metrics:     m,
		Headlines:   headlines,
		WindowDays:  bundle.history.Days,
		GeneratedAt: time.Now(),
	}, nil
}

// fetch returns the raw triple for symbol, from cache when fresh.
// Failed fetches are never cached.
func (a *Analyzer) fetch(ctx context.Context, symbol string) (*fetchBundle, error) {
	if cached, found := a.cache.Get(symbol); found {
		logger.Debug(ctx, "cache hit", "symbol", symbol)
		return cached.(*fetchBundle), nil
	}

	timer := logger.StartOperation(ctx, "analyzer.fetch", "symbol", symbol)
	bundle, err := a.fetchUpstream(timer.GetContext(), symbol)
	if err != nil {
		timer.EndWithError(err)
		return nil, err
	}
	timer.End("bars", len(bundle.history.Bars), "headlines", len(bundle.items))

	a.cache.Set(symbol, bundle, cache.DefaultExpiration)
	return bundle, nil
}

// fetchUpstream pulls the triple from the provider and news source.
// Unknown symbols fail after the quote, before any further fetches.
func (a *Analyzer) fetchUpstream(ctx context.Context, symbol string) (*fetchBundle, error) {
	snapshot, err := a.provider.Quote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}
	if err := metrics.ValidateSnapshot(snapshot); err != nil {
		return nil, fmt.Errorf("validate %s: %w", symbol, err)
	}

	history, err := a.provider.History(ctx, symbol, a.cfg.HistoryDays)
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", symbol, err)
	}

	// Headlines are decoration; losing them never blocks the report.
	items, err := a.news.Headlines(ctx, symbol, a.cfg.News.MaxItems)
	if err != nil {
		logger.Warn(ctx, "headline fetch failed", "symbol", symbol, "source", a.news.Name(), "error", err)
		items = nil
	}

	return &fetchBundle{snapshot: snapshot, history: history, items: items}, nil
}
