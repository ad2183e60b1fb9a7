package pipeline

import (
	"sort"

	"go-quote-pipeline/internal/model"
)

// YearCount is the number of rows for one year.
type YearCount struct {
	Year  string `json:"year"`
	Count int    `json:"count"`
}

// CountByYear counts the rows tagged with org, grouped by year and sorted by
// year. The year comes from the year column, or from the date's first four
// characters when the table has none.
func CountByYear(t *model.Table, org string) []YearCount {
	counts := make(map[string]int)
	for _, rec := range t.Records {
		if rec[model.ColOrg] != org {
			continue
		}
		if y := recordYear(rec); y != "" {
			counts[y]++
		}
	}

	out := make([]YearCount, 0, len(counts))
	for y, n := range counts {
		out = append(out, YearCount{Year: y, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

func recordYear(rec model.Record) string {
	if y := rec[model.ColYear]; y != "" {
		return y
	}
	if d := rec[model.ColDate]; len(d) >= 4 {
		return d[:4]
	}
	return ""
}
