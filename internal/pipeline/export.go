package pipeline

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go-quote-pipeline/internal/codec"
	"go-quote-pipeline/internal/model"
)

// WriteTable writes t as CSV with a header row and no index column,
// compressed with scheme. Parent directories are created as needed.
func WriteTable(path string, t *model.Table, scheme codec.Scheme) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	buffered := bufio.NewWriter(file)
	encoder, err := codec.NewWriter(buffered, scheme)
	if err != nil {
		return fmt.Errorf("failed to open encoder for %s: %w", path, err)
	}

	if err := writeCSV(encoder, t); err != nil {
		encoder.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finish compressed stream for %s: %w", path, err)
	}
	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

func writeCSV(w io.Writer, t *model.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range t.Records {
		if err := writer.Write(t.Row(i)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// compressFile copies src into dst through the scheme's encoder.
func compressFile(src, dst string, scheme codec.Scheme) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", dst, closeErr)
		}
	}()

	buffered := bufio.NewWriter(out)
	encoder, err := codec.NewWriter(buffered, scheme)
	if err != nil {
		return fmt.Errorf("failed to open encoder for %s: %w", dst, err)
	}
	if _, err := io.Copy(encoder, in); err != nil {
		encoder.Close()
		return fmt.Errorf("failed to compress %s: %w", src, err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finish compressed stream for %s: %w", dst, err)
	}
	return buffered.Flush()
}
