package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-quote-pipeline/internal/model"
)

func TestFilterByConfidence(t *testing.T) {
	in := model.NewTable(model.ColQuoteID, model.ColProbas)
	in.Append(model.Record{model.ColQuoteID: "Q1", model.ColProbas: "[('A', 0.85)]"})
	in.Append(model.Record{model.ColQuoteID: "Q2", model.ColProbas: "[('B', 0.5)]"})
	in.Append(model.Record{model.ColQuoteID: "Q3", model.ColProbas: "no probability here"})
	in.Append(model.Record{model.ColQuoteID: "Q4", model.ColProbas: `[["C","0.8"],["None","0.2"]]`})

	out := FilterByConfidence(in, 0.8)

	assert.Equal(t, []string{model.ColQuoteID, model.ColProbas, model.ColProbasE}, out.Columns)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "Q1", out.Records[0][model.ColQuoteID])
	assert.Equal(t, "0.85", out.Records[0][model.ColProbasE])
	assert.Equal(t, "Q4", out.Records[1][model.ColQuoteID])
	assert.Equal(t, "0.8", out.Records[1][model.ColProbasE])

	// The input is left untouched.
	assert.False(t, in.HasColumn(model.ColProbasE))
	assert.Equal(t, 4, in.Len())
}

func TestFilterByConfidence_CutoffBounds(t *testing.T) {
	in := model.NewTable(model.ColProbas)
	in.Append(model.Record{model.ColProbas: `[["A","0.1"]]`})
	in.Append(model.Record{model.ColProbas: `[["A","1.0"]]`})
	in.Append(model.Record{model.ColProbas: `[]`})

	assert.Equal(t, 2, FilterByConfidence(in, 0).Len())
	assert.Equal(t, 1, FilterByConfidence(in, 1).Len())
	assert.Equal(t, 0, FilterByConfidence(in, 1.5).Len())
}

func TestLeadingProbability(t *testing.T) {
	p, ok := leadingProbability(`[["Agent 2.0","0.61"]]`)
	require.True(t, ok)
	assert.InDelta(t, 2.0, p, 1e-9, "first digit-dot match wins even inside the name")

	p, ok = leadingProbability("3.")
	require.True(t, ok)
	assert.InDelta(t, 3.0, p, 1e-9)

	_, ok = leadingProbability("")
	assert.False(t, ok)
}
