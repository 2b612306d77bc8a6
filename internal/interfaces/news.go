package interfaces

import (
	"context"

	"stock-analyzer/internal/types"
)

// NewsSource fetches recent headlines for a symbol. limit bounds how many
// items are fetched, not how many are displayed. An empty result is valid.
type NewsSource interface {
	Headlines(ctx context.Context, symbol string, limit int) ([]types.NewsItem, error)
	Name() string
}
