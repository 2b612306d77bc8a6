package sentiment

import (
	"math"
	"strings"
	"unicode"

	"stock-analyzer/internal/interfaces"
)

const (
	// negationFactor flips and dampens a valence when a negator appears
	// within negationScope tokens before it ("not a good quarter").
	negationFactor = -0.74
	negationScope  = 3

	// normalization is the alpha in score = sum / sqrt(sum^2 + alpha),
	// which squashes the raw valence sum into (-1, 1).
	normalization = 15.0
)

// Engine is a lexicon-based scorer for short financial headlines. Word
// valences follow financial sentiment dictionaries, with intensity
// modifiers and negation handling tuned for headline-length text.
type Engine struct {
	valences map[string]float64
	boosters map[string]float64
	negators map[string]bool
}

var _ interfaces.SentimentScorer = (*Engine)(nil)

// NewEngine creates a scorer with the built-in lexicon.
func NewEngine() *Engine {
	return &Engine{
		valences: loadValences(),
		boosters: loadBoosters(),
		negators: loadNegators(),
	}
}

// Score computes the compound sentiment of text in [-1, 1]. Text with
// no lexicon hits, including empty text, scores 0.
func (e *Engine) Score(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var sum float64
	for i, token := range tokens {
		valence, ok := e.valences[token]
		if !ok {
			continue
		}

		// Intensity modifiers push the valence further from zero
		// (or toward it, for dampeners like "slightly").
		if i > 0 {
			if boost, ok := e.boosters[tokens[i-1]]; ok {
				if valence > 0 {
					valence += boost
				} else {
					valence -= boost
				}
			}
		}

		for j := i - negationScope; j < i; j++ {
			if j >= 0 && e.negators[tokens[j]] {
				valence *= negationFactor
				break
			}
		}

		sum += valence
	}

	if sum == 0 {
		return 0
	}
	return clamp(sum/math.Sqrt(sum*sum+normalization), -1, 1)
}

// tokenize lowercases and splits text into word tokens, keeping
// apostrophes so contractions like "isn't" survive as negators.
func tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '\'' {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Word valences based on financial sentiment dictionaries, scaled
// roughly -4 to 4 like general-purpose social media lexicons.

func loadValences() map[string]float64 {
	return map[string]float64{
		// positive
		"advance": 1.3, "advances": 1.3, "approval": 1.5, "beat": 1.9,
		"beats": 2.0, "benefit": 1.4, "boost": 1.6, "boosts": 1.6,
		"breakout": 1.7, "bullish": 2.3, "buyback": 1.1, "climb": 1.5,
		"climbs": 1.5, "dividend": 0.8, "expansion": 1.3, "gain": 1.6,
		"gains": 1.6, "good": 1.9, "great": 2.4, "grew": 1.6,
		"growth": 1.8, "high": 1.0, "higher": 1.2, "improve": 1.5,
		"improved": 1.5, "jump": 1.8, "jumps": 1.8, "outperform": 2.0,
		"positive": 1.8, "profit": 1.7, "profits": 1.7, "rally": 1.9,
		"rallies": 1.9, "rebound": 1.5, "rebounds": 1.5, "record": 1.5,
		"recovery": 1.4, "rise": 1.4, "rises": 1.4, "robust": 1.6,
		"soar": 2.4, "soars": 2.4, "solid": 1.4, "strong": 1.7,
		"surge": 2.1, "surges": 2.1, "top": 1.2, "tops": 1.5,
		"up": 0.9, "upbeat": 1.8, "upgrade": 1.9, "upgraded": 1.9,
		"upside": 1.4, "win": 1.9, "wins": 1.9,

		// negative
		"bad": -2.5, "bankruptcy": -3.2, "bearish": -2.3, "concern": -1.3,
		"concerns": -1.3, "crash": -2.9, "crisis": -2.6, "cut": -1.3,
		"cuts": -1.3, "debt": -1.1, "decline": -1.5, "declines": -1.5,
		"default": -2.2, "deficit": -1.6, "down": -0.9, "downgrade": -1.9,
		"downgraded": -1.9, "downturn": -1.8, "drop": -1.5, "drops": -1.5,
		"fall": -1.4, "falls": -1.4, "fear": -1.9, "fears": -1.9,
		"fine": -1.4, "fined": -1.6, "fraud": -3.1, "lawsuit": -1.8,
		"layoffs": -2.0, "loss": -1.7, "losses": -1.7, "lower": -1.2,
		"miss": -1.8, "misses": -1.8, "negative": -1.8, "penalty": -1.7,
		"plunge": -2.4, "plunges": -2.4, "poor": -1.9, "probe": -1.6,
		"recall": -1.5, "recession": -2.3, "risk": -1.1, "risks": -1.1,
		"selloff": -2.0, "sink": -1.8, "sinks": -1.8, "slide": -1.4,
		"slides": -1.4, "slowdown": -1.6, "slump": -2.1, "slumps": -2.1,
		"tumble": -1.9, "tumbles": -1.9, "underperform": -2.0, "volatile": -1.2,
		"warning": -1.6, "warns": -1.7, "weak": -1.6, "worst": -2.9,
	}
}

func loadBoosters() map[string]float64 {
	return map[string]float64{
		"extremely":     0.293,
		"hugely":        0.293,
		"really":        0.293,
		"sharply":       0.293,
		"significantly": 0.293,
		"very":          0.293,

		"barely":     -0.293,
		"marginally": -0.293,
		"slightly":   -0.293,
		"somewhat":   -0.293,
	}
}

func loadNegators() map[string]bool {
	words := []string{
		"not", "no", "never", "none", "neither", "nor", "cannot",
		"can't", "won't", "isn't", "aren't", "wasn't", "weren't",
		"don't", "doesn't", "didn't", "without",
	}
	m := make(map[string]bool)
	for _, w := range words {
		m[w] = true
	}
	return m
}
