package interfaces

// SentimentScorer maps a piece of text to a compound polarity score in
// [-1, 1]. Implementations are expected to be safe for concurrent use.
type SentimentScorer interface {
	Score(text string) float64
}
