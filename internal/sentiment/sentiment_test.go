package sentiment

import (
	"testing"

	"stock-analyzer/internal/types"
)

type fixedScorer struct {
	score float64
}

func (f fixedScorer) Score(string) float64 { return f.score }

func TestLabelForThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  types.SentimentLabel
	}{
		{0.6, types.Positive},
		{0.05, types.Positive},
		{0.049999, types.Neutral},
		{0.0, types.Neutral},
		{-0.049999, types.Neutral},
		{-0.05, types.Negative},
		{-0.6, types.Negative},
	}
	for _, tc := range cases {
		if got := LabelFor(tc.score); got != tc.want {
			t.Errorf("LabelFor(%v) = %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestClassifyUsesInjectedScorer(t *testing.T) {
	c := NewClassifier(fixedScorer{score: 0.6})

	got := c.Classify("Company X beats quarterly estimates")
	if got.Label != types.Positive {
		t.Errorf("Label = %v, want %v", got.Label, types.Positive)
	}
	if got.Score != 0.6 {
		t.Errorf("Score = %v, want 0.6", got.Score)
	}
}

func TestClassifyBlankTitleIsNeutral(t *testing.T) {
	// A blank title must be neutral no matter what the scorer would say.
	c := NewClassifier(fixedScorer{score: 0.9})

	for _, title := range []string{"", "   ", "\t\n"} {
		got := c.Classify(title)
		if got.Label != types.Neutral {
			t.Errorf("Classify(%q).Label = %v, want %v", title, got.Label, types.Neutral)
		}
		if got.Score != 0 {
			t.Errorf("Classify(%q).Score = %v, want 0", title, got.Score)
		}
	}
}

func TestEngineScoresPositiveHeadline(t *testing.T) {
	e := NewEngine()

	score := e.Score("Reliance beats quarterly profit estimates")
	if score < positiveThreshold {
		t.Errorf("Score = %v, want >= %v for a clearly positive headline", score, positiveThreshold)
	}
}

func TestEngineScoresNegativeHeadline(t *testing.T) {
	e := NewEngine()

	score := e.Score("Shares plunge after regulator opens fraud probe")
	if score > negativeThreshold {
		t.Errorf("Score = %v, want <= %v for a clearly negative headline", score, negativeThreshold)
	}
}

func TestEngineNegationFlipsValence(t *testing.T) {
	e := NewEngine()

	plain := e.Score("a good quarter")
	negated := e.Score("not a good quarter")
	if plain <= 0 {
		t.Fatalf("Score(\"a good quarter\") = %v, want > 0", plain)
	}
	if negated >= 0 {
		t.Errorf("Score(\"not a good quarter\") = %v, want < 0", negated)
	}
}

func TestEngineBoosterIntensifies(t *testing.T) {
	e := NewEngine()

	plain := e.Score("strong results")
	boosted := e.Score("very strong results")
	if boosted <= plain {
		t.Errorf("boosted score %v not greater than plain score %v", boosted, plain)
	}

	damped := e.Score("slightly weak results")
	weak := e.Score("weak results")
	if damped <= weak {
		t.Errorf("dampened score %v not closer to zero than plain score %v", damped, weak)
	}
}

func TestEngineNeutralInputs(t *testing.T) {
	e := NewEngine()

	for _, text := range []string{"", "   ", "board meeting scheduled for Tuesday"} {
		if score := e.Score(text); score != 0 {
			t.Errorf("Score(%q) = %v, want 0", text, score)
		}
	}
}

func TestEngineScoreStaysInRange(t *testing.T) {
	e := NewEngine()

	headlines := []string{
		"record profit surge beats upbeat bullish estimates strong gains rally",
		"fraud crisis bankruptcy crash worst losses plunge selloff",
		"quarterly results announced",
	}
	for _, h := range headlines {
		score := e.Score(h)
		if score < -1 || score > 1 {
			t.Errorf("Score(%q) = %v, outside [-1, 1]", h, score)
		}
	}
}

func TestEngineIsDeterministic(t *testing.T) {
	e := NewEngine()

	const headline = "profit beats estimates, shares rally"
	first := e.Score(headline)
	second := e.Score(headline)
	if first != second {
		t.Errorf("repeated Score differs: %v vs %v", first, second)
	}
}
