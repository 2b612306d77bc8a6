package interfaces

import (
	"context"

	"stock-analyzer/internal/types"
)

type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*types.Report, error)
}
