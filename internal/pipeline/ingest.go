package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"go-quote-pipeline/internal/codec"
	"go-quote-pipeline/internal/model"
)

// ------------------- CSV Ingestion -------------------

// ReadTable loads a CSV file with a header row. The compression scheme is
// taken from the file extension.
func ReadTable(path string) (*model.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", path, err)
	}
	defer file.Close()

	reader, err := codec.NewReader(bufio.NewReader(file), codec.FromPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open decoder for %s: %w", path, err)
	}
	defer reader.Close()

	t, err := readCSV(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", path, err)
	}
	return t, nil
}

func readCSV(r io.Reader) (*model.Table, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return model.NewTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make([]string, len(headers))
	for i, h := range headers {
		columns[i] = strings.ReplaceAll(strings.TrimSpace(h), `"`, "")
	}
	t := model.NewTable(columns...)

	for line := 2; ; line++ {
		row, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}
		if len(row) != len(columns) {
			return nil, fmt.Errorf("CSV row %d has %d fields, header has %d", line, len(row), len(columns))
		}

		rec := make(model.Record, len(columns))
		for i, c := range columns {
			rec[c] = row[i]
		}
		t.Append(rec)
	}
}

// ------------------- JSON Lines Ingestion -------------------

// BatchFunc receives each batch of a streamed source, numbered from 1.
type BatchFunc func(batchNo int, batch *model.Table) error

// StreamJSONLines reads a compressed JSON-lines file lazily, handing fn one
// table of at most batchSize rows at a time. A malformed line aborts the
// stream with an error naming the line.
func StreamJSONLines(ctx context.Context, path string, batchSize int, fn BatchFunc) error {
	if batchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open JSON lines source %s: %w", path, err)
	}
	defer file.Close()

	reader, err := codec.NewReader(bufio.NewReader(file), codec.FromPath(path))
	if err != nil {
		return fmt.Errorf("failed to open decoder for %s: %w", path, err)
	}
	defer reader.Close()

	lines := bufio.NewReaderSize(reader, 1<<20)
	batchNo := 1
	pending := make([]map[string]any, 0, batchSize)

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		if err := fn(batchNo, toTable(pending)); err != nil {
			return err
		}
		batchNo++
		pending = pending[:0]
		return nil
	}

	for lineNo := 1; ; lineNo++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, readErr := lines.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("failed to read line %d of %s: %w", lineNo, path, readErr)
		}

		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			obj, err := decodeObject(trimmed)
			if err != nil {
				return fmt.Errorf("malformed JSON on line %d of %s: %w", lineNo, path, err)
			}
			pending = append(pending, obj)
			if len(pending) == batchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}

		if errors.Is(readErr, io.EOF) {
			return flush()
		}
	}
}

func decodeObject(line []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("line is not a JSON object")
	}
	return obj, nil
}

// toTable builds a table from decoded objects. Canonical Quotebank columns
// come first, any other keys follow in name order.
func toTable(objs []map[string]any) *model.Table {
	keys := make(map[string]struct{})
	for _, obj := range objs {
		for k := range obj {
			keys[k] = struct{}{}
		}
	}

	var columns []string
	for _, c := range model.CanonicalColumns {
		if _, ok := keys[c]; ok {
			columns = append(columns, c)
			delete(keys, c)
		}
	}
	extra := make([]string, 0, len(keys))
	for k := range keys {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	columns = append(columns, extra...)

	t := model.NewTable(columns...)
	for _, obj := range objs {
		rec := make(model.Record, len(columns))
		for _, c := range columns {
			rec[c] = cellString(obj[c])
		}
		t.Append(rec)
	}
	return t
}

// cellString renders a decoded JSON value as CSV cell text.
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(val); err != nil {
			return fmt.Sprintf("%v", val)
		}
		return strings.TrimRight(buf.String(), "\n")
	}
}
