// Package pipeline implements the quote-corpus operations: chunking the raw
// dump, per-speaker extraction and recombination, confidence filtering,
// organization extraction, sentiment scoring, and the job runner that drives
// them.
package pipeline

import (
	"io"
	"log/slog"

	"github.com/jonboulle/clockwork"
)

// Corpus is a data directory holding chunk files and per-speaker files.
// File names under Dir follow fixed conventions:
//
//	<outputName>-<n>.csv.bz2        chunk n of a split source
//	<speaker>-quotes-<year>.csv.<c> one speaker's quotes for a year
//	all-<speaker>-quotes.csv.bz2    one speaker's quotes across years
type Corpus struct {
	Dir    string
	Logger *slog.Logger
	Clock  clockwork.Clock
}

// NewCorpus creates a corpus rooted at dir. A nil logger discards output and
// a nil clock uses wall-clock time.
func NewCorpus(dir string, logger *slog.Logger, clock clockwork.Clock) *Corpus {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Corpus{Dir: dir, Logger: logger, Clock: clock}
}
