package model

// Quotebank column names.
const (
	ColQuoteID           = "quoteID"
	ColQuotation         = "quotation"
	ColSpeaker           = "speaker"
	ColQIDs              = "qids"
	ColDate              = "date"
	ColNumOccurrences    = "numOccurrences"
	ColProbas            = "probas"
	ColURLs              = "urls"
	ColPhase             = "phase"
	ColProbasE           = "probasE"
	ColOrg               = "ORG"
	ColYear              = "year"
	ColSentiment         = "sentiment"
	ColSentimentCategory = "sentiment_category"
)

// CanonicalColumns is the order source columns are written in when present.
var CanonicalColumns = []string{
	ColQuoteID,
	ColQuotation,
	ColSpeaker,
	ColQIDs,
	ColDate,
	ColNumOccurrences,
	ColProbas,
	ColURLs,
	ColPhase,
}

// Record is a schema-agnostic row keyed by column name; cells hold CSV text.
type Record map[string]string

// Clone returns a copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Equal reports whether two records hold the same cells for the given columns.
func (r Record) Equal(other Record, columns []string) bool {
	for _, c := range columns {
		if r[c] != other[c] {
			return false
		}
	}
	return true
}
