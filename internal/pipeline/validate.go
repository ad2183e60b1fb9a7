package pipeline

import (
	"regexp"
	"strconv"

	"go-quote-pipeline/internal/model"
)

// probaPattern matches the first decimal number of a probas cell, e.g. the
// 0.8512 in [["Elon Musk","0.8512"],["None","0.1488"]].
var probaPattern = regexp.MustCompile(`\d\.\d*`)

// FilterByConfidence returns a copy of t holding the rows whose leading
// attribution probability is at least cutoff, with the parsed value in a
// probasE column. Rows without a parseable probability are dropped.
func FilterByConfidence(t *model.Table, cutoff float64) *model.Table {
	out := model.NewTable(t.Columns...)
	out.AddColumn(model.ColProbasE)

	for _, rec := range t.Records {
		p, ok := leadingProbability(rec[model.ColProbas])
		if !ok || p < cutoff {
			continue
		}
		kept := rec.Clone()
		kept[model.ColProbasE] = formatScore(p)
		out.Append(kept)
	}
	return out
}

func leadingProbability(probas string) (float64, bool) {
	m := probaPattern.FindString(probas)
	if m == "" {
		return 0, false
	}
	p, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return p, true
}
