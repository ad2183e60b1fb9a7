package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-quote-pipeline/internal/domain"
	"go-quote-pipeline/internal/model"
	"go-quote-pipeline/internal/nlp"
)

// wordRecognizer labels capitalized words from orgs as ORG and anything else
// capitalized as PERSON.
func wordRecognizer(orgs ...string) nlp.EntityRecognizer {
	known := make(map[string]bool, len(orgs))
	for _, o := range orgs {
		known[o] = true
	}
	return nlp.RecognizerFunc(func(_ context.Context, text string) ([]nlp.Entity, error) {
		var ents []nlp.Entity
		for _, w := range strings.Fields(text) {
			w = strings.Trim(w, ".,!?")
			switch {
			case known[w]:
				ents = append(ents, nlp.Entity{Text: w, Label: nlp.LabelOrg})
			case w != "" && w[0] >= 'A' && w[0] <= 'Z':
				ents = append(ents, nlp.Entity{Text: w, Label: "PERSON"})
			}
		}
		return ents, nil
	})
}

func quotesTable(quotes ...string) *model.Table {
	tbl := model.NewTable(model.ColQuoteID, model.ColQuotation, model.ColSpeaker, model.ColDate,
		model.ColNumOccurrences, model.ColProbas)
	for i, q := range quotes {
		tbl.Append(model.Record{
			model.ColQuoteID:        "Q" + string(rune('1'+i)),
			model.ColQuotation:      q,
			model.ColSpeaker:        "Elon Musk",
			model.ColDate:           "2020-03-01 00:00:00",
			model.ColNumOccurrences: "1",
			model.ColProbas:         `[["Elon Musk","0.9"]]`,
		})
	}
	return tbl
}

func TestExtractOrganizations(t *testing.T) {
	c := NewCorpus(t.TempDir(), nil, nil)
	in := quotesTable(
		"Tesla Tesla is great",
		"SpaceX and Tesla, said Bob",
		"nothing here",
	)

	out, err := c.ExtractOrganizations(context.Background(), wordRecognizer("Tesla", "SpaceX"), in, WithTiming())
	require.NoError(t, err)

	assert.Equal(t, orgColumns, out.Columns)
	require.Equal(t, 3, out.Len())

	assert.Equal(t, "Tesla", out.Records[0][model.ColOrg])
	assert.Equal(t, "Q1", out.Records[0][model.ColQuoteID])
	assert.Equal(t, "SpaceX", out.Records[1][model.ColOrg])
	assert.Equal(t, "Tesla", out.Records[2][model.ColOrg])
	assert.Equal(t, "Q2", out.Records[2][model.ColQuoteID])
	for _, rec := range out.Records {
		assert.Equal(t, "2020-03-01 00:00:00", rec[model.ColDate])
		_, hasSpeaker := rec[model.ColSpeaker]
		assert.False(t, hasSpeaker)
	}
}

func TestExtractOrganizations_CarriesYear(t *testing.T) {
	in := quotesTable("Tesla")
	in.AddColumn(model.ColYear)
	in.Records[0][model.ColYear] = "2020"

	out, err := NewCorpus("", nil, nil).ExtractOrganizations(context.Background(), wordRecognizer("Tesla"), in)
	require.NoError(t, err)
	assert.True(t, out.HasColumn(model.ColYear))
	assert.Equal(t, "2020", out.Records[0][model.ColYear])
}

func TestExtractOrganizations_ProseModel(t *testing.T) {
	recognizer, err := nlp.NewProseRecognizer("")
	require.NoError(t, err)

	c := NewCorpus(t.TempDir(), nil, nil)
	out, err := c.ExtractOrganizations(context.Background(), recognizer,
		quotesTable("NASA and Boeing signed a contract with General Motors."))
	require.NoError(t, err)

	var orgs []string
	for _, rec := range out.Records {
		orgs = append(orgs, rec[model.ColOrg])
		assert.Equal(t, "Q1", rec[model.ColQuoteID])
	}
	assert.Contains(t, orgs, "General Motors")
}

func TestExtractOrganizations_RecognizerError(t *testing.T) {
	boom := errors.New("model exploded")
	failing := nlp.RecognizerFunc(func(context.Context, string) ([]nlp.Entity, error) { return nil, boom })

	_, err := NewCorpus("", nil, nil).ExtractOrganizations(context.Background(), failing, quotesTable("x"))
	assert.ErrorIs(t, err, boom)
}

func TestScoreSentiment(t *testing.T) {
	in := quotesTable("good", "bad", "meh")
	scores := map[string]float64{"good": 0.6249, "bad": -0.5423, "meh": 0}

	out := ScoreSentiment(nlp.AnalyzerFunc(func(s string) float64 { return scores[s] }), in)

	require.Equal(t, 3, out.Len())
	assert.Equal(t, "0.6249", out.Records[0][model.ColSentiment])
	assert.Equal(t, "-0.5423", out.Records[1][model.ColSentiment])
	assert.Equal(t, "0", out.Records[2][model.ColSentiment])
	assert.False(t, in.HasColumn(model.ColSentiment))
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{-0.2, SentimentNegative},
		{-0.05, SentimentNegative},
		{0, SentimentNeutral},
		{0.049, SentimentNeutral},
		{0.05, SentimentPositive},
		{0.2, SentimentPositive},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.score, -0.05, 0.05), "score %v", tt.score)
	}
}

func TestCategorizeSentiment(t *testing.T) {
	in := model.NewTable(model.ColQuoteID, model.ColSentiment)
	for _, s := range []string{"-0.2", "-0.05", "0", "0.05", "0.2"} {
		in.Append(model.Record{model.ColQuoteID: "Q", model.ColSentiment: s})
	}

	out, err := CategorizeSentiment(in, -0.05, 0.05)
	require.NoError(t, err)

	var got []string
	for _, rec := range out.Records {
		got = append(got, rec[model.ColSentimentCategory])
	}
	assert.Equal(t, []string{"-1", "-1", "0", "1", "1"}, got)
	assert.False(t, in.HasColumn(model.ColSentimentCategory))
}

func TestCategorizeSentiment_Errors(t *testing.T) {
	in := model.NewTable(model.ColSentiment)
	in.Append(model.Record{model.ColSentiment: "0.1"})

	_, err := CategorizeSentiment(in, 0.5, -0.5)
	assert.True(t, domain.IsValidation(err))

	_, err = CategorizeSentiment(model.NewTable(model.ColQuoteID), -0.05, 0.05)
	assert.True(t, domain.IsValidation(err))

	bad := model.NewTable(model.ColSentiment)
	bad.Append(model.Record{model.ColSentiment: "positive"})
	_, err = CategorizeSentiment(bad, -0.05, 0.05)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 0")
}

func TestCountByYear(t *testing.T) {
	in := model.NewTable(model.ColOrg, model.ColDate, model.ColYear)
	in.Append(model.Record{model.ColOrg: "Tesla", model.ColDate: "2021-01-01"})
	in.Append(model.Record{model.ColOrg: "Tesla", model.ColDate: "2019-05-05"})
	in.Append(model.Record{model.ColOrg: "Tesla", model.ColYear: "2021", model.ColDate: "2020-01-01"})
	in.Append(model.Record{model.ColOrg: "SpaceX", model.ColDate: "2019-01-01"})
	in.Append(model.Record{model.ColOrg: "Tesla"})

	got := CountByYear(in, "Tesla")
	assert.Equal(t, []YearCount{{Year: "2019", Count: 1}, {Year: "2021", Count: 2}}, got)

	assert.Empty(t, CountByYear(in, "Boeing"))
}
