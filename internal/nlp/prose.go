package nlp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jdkato/prose/v2"
)

// DefaultModel selects prose's built-in entity model.
const DefaultModel = "default"

// proseOrgLabel is the label prose's entity models give organizations.
const proseOrgLabel = "ORGANIZATION"

// modelFiles are the files prose.ModelFromDisk reads under a model directory.
var modelFiles = []string{"mapping.gob", "weights.gob", "labels.gob"}

// ProseRecognizer runs prose's averaged-perceptron entity extractor.
type ProseRecognizer struct {
	model *prose.Model
}

// NewProseRecognizer loads the entity model named by modelID. An empty id or
// "default" uses the built-in model; anything else is a model directory
// previously written with prose's Model.Write.
func NewProseRecognizer(modelID string) (*ProseRecognizer, error) {
	if modelID == "" || modelID == DefaultModel {
		return &ProseRecognizer{}, nil
	}

	for _, name := range modelFiles {
		path := filepath.Join(modelID, "Maxent", name)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("entity model %q: %w", modelID, err)
		}
	}

	model, err := loadModel(modelID)
	if err != nil {
		return nil, err
	}
	return &ProseRecognizer{model: model}, nil
}

// loadModel turns the panics prose raises on unreadable model files into errors.
func loadModel(dir string) (model *prose.Model, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("failed to load entity model %q: %v", dir, p)
		}
	}()

	model = prose.ModelFromDisk(dir)
	if model == nil {
		return nil, fmt.Errorf("failed to load entity model %q", dir)
	}
	return model, nil
}

// Entities returns the entities prose tags in text. Organizations are
// reported under LabelOrg.
func (p *ProseRecognizer) Entities(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := []prose.DocOpt{prose.WithSegmentation(false)}
	if p.model != nil {
		opts = append(opts, prose.UsingModel(p.model))
	}

	doc, err := prose.NewDocument(text, opts...)
	if err != nil {
		return nil, fmt.Errorf("entity extraction failed: %w", err)
	}

	ents := doc.Entities()
	out := make([]Entity, 0, len(ents))
	for _, e := range ents {
		label := e.Label
		if label == proseOrgLabel {
			label = LabelOrg
		}
		out = append(out, Entity{Text: e.Text, Label: label})
	}
	return out, nil
}
