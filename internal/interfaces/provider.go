package interfaces

import (
	"context"

	"stock-analyzer/internal/types"
)

// MarketDataProvider supplies the raw quote and price history for a symbol.
// Implementations may return partially populated snapshots; validation of
// what arrived is the caller's concern.
type MarketDataProvider interface {
	Quote(ctx context.Context, symbol string) (types.QuoteSnapshot, error)
	History(ctx context.Context, symbol string, days int) (types.PriceHistoryWindow, error)
	Name() string
}
