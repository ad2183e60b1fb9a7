package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"go-quote-pipeline/internal/codec"
	"go-quote-pipeline/internal/domain"
	"go-quote-pipeline/internal/model"
)

// ChunkFile is one written chunk.
type ChunkFile struct {
	Path string `json:"path"`
	Rows int    `json:"rows"`
}

// ChunkResult lists the chunk files written by Chunkify in batch order.
type ChunkResult struct {
	Files []ChunkFile `json:"files"`
	Rows  int         `json:"rows"`
}

// Chunkify splits a compressed JSON-lines source into bz2-compressed CSV
// chunks of chunkSize rows named <outputName>-<n>.csv.bz2, n starting at 1.
// Each chunk passes through an uncompressed .csv that is always removed.
func (c *Corpus) Chunkify(ctx context.Context, source string, chunkSize int, outputName string, opts ...Option) (*ChunkResult, error) {
	if chunkSize <= 0 {
		return nil, domain.NewValidationErrorWithValue("chunk_size", "must be positive", chunkSize)
	}
	if outputName == "" {
		return nil, domain.NewValidationError("output_name", "is required")
	}
	o := applyOptions(opts)

	c.Logger.Info("chunking source",
		slog.String("source", source),
		slog.Int("chunk_size", chunkSize),
		slog.String("output_name", outputName),
	)

	result := &ChunkResult{}
	err := StreamJSONLines(ctx, source, chunkSize, func(batchNo int, batch *model.Table) error {
		sw := StartStopwatch(c.Clock)

		path, err := c.writeChunk(batch, outputName, batchNo)
		if err != nil {
			return fmt.Errorf("chunk %d: %w", batchNo, err)
		}
		result.Files = append(result.Files, ChunkFile{Path: path, Rows: batch.Len()})
		result.Rows += batch.Len()

		logElapsed(c.Logger, o.timing, "chunk written", sw,
			slog.Int("batch", batchNo),
			slog.Int("rows", batch.Len()),
			slog.String("path", path),
		)
		if o.progress != nil {
			o.progress(batchNo, batch.Len())
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	c.Logger.Info("chunking complete",
		slog.Int("chunks", len(result.Files)),
		slog.Int("rows", result.Rows),
	)
	return result, nil
}

func (c *Corpus) writeChunk(batch *model.Table, outputName string, batchNo int) (path string, err error) {
	plain := filepath.Join(c.Dir, fmt.Sprintf("%s-%d.csv", outputName, batchNo))
	defer func() {
		rmErr := os.Remove(plain)
		if rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
			err = fmt.Errorf("failed to remove intermediate %s: %w", plain, rmErr)
		}
	}()

	if err := WriteTable(plain, batch, codec.None); err != nil {
		return "", err
	}

	path = plain + codec.Bz2.Suffix()
	if err := compressFile(plain, path, codec.Bz2); err != nil {
		return "", err
	}
	return path, nil
}
