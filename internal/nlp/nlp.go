// Package nlp wraps the language models the corpus tools depend on behind
// small interfaces, so the extraction and scoring logic can run against fakes.
package nlp

import "context"

// LabelOrg is the entity label for organizations.
const LabelOrg = "ORG"

// Entity is a recognized span of text with its category label.
type Entity struct {
	Text  string
	Label string
}

// EntityRecognizer finds named entities in raw text.
type EntityRecognizer interface {
	Entities(ctx context.Context, text string) ([]Entity, error)
}

// SentimentAnalyzer scores text polarity with a compound score in [-1, 1].
type SentimentAnalyzer interface {
	Compound(text string) float64
}

// RecognizerFunc adapts a function to EntityRecognizer.
type RecognizerFunc func(ctx context.Context, text string) ([]Entity, error)

// Entities calls f.
func (f RecognizerFunc) Entities(ctx context.Context, text string) ([]Entity, error) {
	return f(ctx, text)
}

// AnalyzerFunc adapts a function to SentimentAnalyzer.
type AnalyzerFunc func(text string) float64

// Compound calls f.
func (f AnalyzerFunc) Compound(text string) float64 {
	return f(text)
}
