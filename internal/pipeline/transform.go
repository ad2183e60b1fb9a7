package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"go-quote-pipeline/internal/domain"
	"go-quote-pipeline/internal/model"
	"go-quote-pipeline/internal/nlp"
	"go-quote-pipeline/pkg/utils"
)

// Sentiment categories.
const (
	SentimentNegative = -1
	SentimentNeutral  = 0
	SentimentPositive = 1
)

// orgColumns are carried from a quote onto each organization row.
var orgColumns = []string{
	model.ColOrg,
	model.ColDate,
	model.ColNumOccurrences,
	model.ColQuotation,
	model.ColQuoteID,
	model.ColProbas,
}

// ------------------- Organization Extraction -------------------

// ExtractOrganizations runs the recognizer over every quotation and emits one
// row per ORG entity. Exact-duplicate rows (the same organization named twice
// in one quote) are collapsed.
func (c *Corpus) ExtractOrganizations(ctx context.Context, recognizer nlp.EntityRecognizer, t *model.Table, opts ...Option) (*model.Table, error) {
	o := applyOptions(opts)
	sw := StartStopwatch(c.Clock)

	out := model.NewTable(orgColumns...)
	if t.HasColumn(model.ColYear) {
		out.AddColumn(model.ColYear)
	}

	for i, rec := range t.Records {
		ents, err := recognizer.Entities(ctx, rec[model.ColQuotation])
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i, rec[model.ColQuoteID], err)
		}

		for _, e := range ents {
			if e.Label != nlp.LabelOrg {
				continue
			}
			row := model.Record{model.ColOrg: e.Text}
			for _, col := range out.Columns[1:] {
				row[col] = rec[col]
			}
			out.Append(row)
		}
	}

	deduped := out.DropDuplicates()
	logElapsed(c.Logger, o.timing, "organizations extracted", sw,
		slog.Int("quotes", t.Len()),
		slog.Int("mentions", out.Len()),
		slog.Int("rows", deduped.Len()),
	)
	return deduped, nil
}

// ------------------- Sentiment -------------------

// ScoreSentiment returns a copy of t with the analyzer's compound score for
// each quotation in a sentiment column.
func ScoreSentiment(analyzer nlp.SentimentAnalyzer, t *model.Table) *model.Table {
	out := t.Clone()
	out.AddColumn(model.ColSentiment)
	for _, rec := range out.Records {
		score := analyzer.Compound(rec[model.ColQuotation])
		rec[model.ColSentiment] = formatScore(score)
	}
	return out
}

// CategorizeSentiment returns a copy of t with a sentiment_category column:
// -1 for scores at or below neg, 1 for scores at or above pos, 0 otherwise.
func CategorizeSentiment(t *model.Table, neg, pos float64) (*model.Table, error) {
	if neg > pos {
		return nil, domain.NewValidationErrorWithValue("thresholds",
			fmt.Sprintf("negative threshold %v exceeds positive threshold %v", neg, pos), [2]float64{neg, pos})
	}
	if !t.HasColumn(model.ColSentiment) {
		return nil, domain.NewValidationError(model.ColSentiment, "column is missing")
	}

	out := t.Clone()
	out.AddColumn(model.ColSentimentCategory)
	for i, rec := range out.Records {
		score, ok := utils.ParseFloat(rec[model.ColSentiment])
		if !ok {
			return nil, domain.NewValidationErrorWithValue(model.ColSentiment,
				fmt.Sprintf("row %d holds no numeric score", i), rec[model.ColSentiment])
		}
		rec[model.ColSentimentCategory] = strconv.Itoa(Categorize(score, neg, pos))
	}
	return out, nil
}

// Categorize maps a compound score onto {-1, 0, 1}. Both thresholds are inclusive.
func Categorize(score, neg, pos float64) int {
	switch {
	case score <= neg:
		return SentimentNegative
	case score >= pos:
		return SentimentPositive
	default:
		return SentimentNeutral
	}
}
