package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"go-quote-pipeline/internal/codec"
	"go-quote-pipeline/internal/domain"
	"go-quote-pipeline/internal/model"
)

// SpeakerQuotes loads every chunk file of year and keeps the rows whose
// speaker matches exactly, concatenated in scanner order.
func (c *Corpus) SpeakerQuotes(ctx context.Context, speaker, year string, opts ...Option) (*model.Table, error) {
	o := applyOptions(opts)
	sw := StartStopwatch(c.Clock)

	names, err := FindYearFiles(c.Dir, year)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s in %s", domain.ErrNoYearFiles, year, c.Dir)
	}

	parts := make([]*model.Table, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chunk, err := ReadTable(filepath.Join(c.Dir, name))
		if err != nil {
			return nil, err
		}
		matched := chunk.Filter(func(r model.Record) bool {
			return r[model.ColSpeaker] == speaker
		})
		c.Logger.Debug("filtered chunk",
			slog.String("file", name),
			slog.Int("rows", chunk.Len()),
			slog.Int("matched", matched.Len()),
		)
		parts = append(parts, matched)
	}

	out := model.Concat(parts...)
	logElapsed(c.Logger, o.timing, "speaker quotes extracted", sw,
		slog.String("speaker", speaker),
		slog.String("year", year),
		slog.Int("files", len(names)),
		slog.Int("rows", out.Len()),
	)
	return out, nil
}

// SpeakerYearPath returns <dir>/<speaker>-quotes-<year>.csv.<compression>.
func (c *Corpus) SpeakerYearPath(speaker, year, compression string) string {
	return filepath.Join(c.Dir, speaker+"-quotes-"+year+".csv."+compression)
}

// CombinedPath returns <dir>/all-<speaker>-quotes.csv.bz2.
func (c *Corpus) CombinedPath(speaker string) string {
	return filepath.Join(c.Dir, "all-"+speaker+"-quotes.csv"+codec.Bz2.Suffix())
}

// WriteSpeakerYear writes one speaker's quotes for a year. An empty
// compression defaults to bz2; the name is used verbatim as the file suffix.
func (c *Corpus) WriteSpeakerYear(t *model.Table, speaker, year, compression string) (string, error) {
	if compression == "" {
		compression = string(codec.Default)
	}
	scheme, err := codec.Parse(compression)
	if err != nil {
		return "", domain.NewValidationErrorWithValue("compression", err.Error(), compression)
	}

	path := c.SpeakerYearPath(speaker, year, compression)
	if err := WriteTable(path, t, scheme); err != nil {
		return "", err
	}

	c.Logger.Info("speaker file written",
		slog.String("path", path),
		slog.Int("rows", t.Len()),
	)
	return path, nil
}

// CombineYearly concatenates every <speaker>*.bz2 file in glob order into
// all-<speaker>-quotes.csv.bz2 and returns the combined table and its path.
func (c *Corpus) CombineYearly(ctx context.Context, speaker string) (*model.Table, string, error) {
	matches, err := filepath.Glob(filepath.Join(c.Dir, speaker+"*.bz2"))
	if err != nil {
		return nil, "", fmt.Errorf("failed to glob speaker files: %w", err)
	}

	output := c.CombinedPath(speaker)
	parts := make([]*model.Table, 0, len(matches))
	for _, path := range matches {
		if path == output {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		t, err := ReadTable(path)
		if err != nil {
			return nil, "", err
		}
		parts = append(parts, t)
	}
	if len(parts) == 0 {
		return nil, "", fmt.Errorf("%w: %s in %s", domain.ErrNoSpeakerFiles, speaker, c.Dir)
	}

	combined := model.Concat(parts...)
	if err := WriteTable(output, combined, codec.Bz2); err != nil {
		return nil, "", err
	}

	c.Logger.Info("yearly files combined",
		slog.String("speaker", speaker),
		slog.Int("files", len(parts)),
		slog.Int("rows", combined.Len()),
		slog.String("path", output),
	)
	return combined, output, nil
}
