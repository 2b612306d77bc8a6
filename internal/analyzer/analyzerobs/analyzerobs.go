package analyzerobs

import (
	"context"
	"time"

	"stock-analyzer/internal/interfaces"
	"stock-analyzer/internal/logger"
	"stock-analyzer/internal/trace"
	"stock-analyzer/internal/types"
)

type observableAnalyzer struct {
	analyzer interfaces.Analyzer
}

var _ interfaces.Analyzer = (*observableAnalyzer)(nil)

func Wrap(a interfaces.Analyzer) interfaces.Analyzer {
	return &observableAnalyzer{
		analyzer: a,
	}
}

func (oa *observableAnalyzer) Analyze(ctx context.Context, symbol string) (*types.Report, error) {
	ctx, span := trace.StartSpan(ctx, "analyzer.Analyze")
	defer span.End()

	start := time.Now()

	logger.Info(ctx, "Starting analysis",
		"symbol", symbol,
	)

	report, err := oa.analyzer.Analyze(ctx, symbol)
	if err != nil {
		logger.ErrorWithErr(ctx, "Analysis failed", err,
			"symbol", symbol,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.Info(ctx, "Analysis completed",
		"symbol", symbol,
		"headlines", len(report.Headlines),
		"percent_change", report.Metrics.PercentChange,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return report, nil
}
