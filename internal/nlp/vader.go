package nlp

import "github.com/jonreiter/govader"

// VaderAnalyzer scores text with the VADER lexicon.
type VaderAnalyzer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderAnalyzer builds an analyzer with the bundled VADER lexicon.
func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns VADER's normalized compound polarity score.
func (v *VaderAnalyzer) Compound(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}
