// Package sentiment scores headline text against a financial-news
// lexicon and maps compound scores onto discrete labels.
package sentiment

import (
	"strings"

	"stock-analyzer/internal/interfaces"
	"stock-analyzer/internal/types"
)

// Threshold band for the neutral zone. Both boundaries are inclusive
// toward their label: exactly 0.05 is positive, exactly -0.05 negative.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// LabelFor maps a compound score onto a discrete sentiment label.
func LabelFor(score float64) types.SentimentLabel {
	switch {
	case score >= positiveThreshold:
		return types.Positive
	case score <= negativeThreshold:
		return types.Negative
	default:
		return types.Neutral
	}
}

// Classifier attaches sentiment labels to headline text using an
// injected scorer.
type Classifier struct {
	scorer interfaces.SentimentScorer
}

func NewClassifier(scorer interfaces.SentimentScorer) *Classifier {
	return &Classifier{scorer: scorer}
}

// Classify scores title and labels the result. Blank titles never reach
// the scorer: they are neutral with score 0.
func (c *Classifier) Classify(title string) types.SentimentResult {
	if strings.TrimSpace(title) == "" {
		return types.SentimentResult{Label: types.Neutral}
	}
	score := c.scorer.Score(title)
	return types.SentimentResult{Label: LabelFor(score), Score: score}
}
