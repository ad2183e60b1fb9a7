package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"go-quote-pipeline/internal/codec"
	"go-quote-pipeline/internal/model"
)

// writeJSONLines writes one JSON object per line, compressed by the path's extension.
func writeJSONLines(t *testing.T, path string, objs []map[string]any) {
	t.Helper()

	var plain bytes.Buffer
	for _, obj := range objs {
		line, err := json.Marshal(obj)
		require.NoError(t, err)
		plain.Write(line)
		plain.WriteByte('\n')
	}
	writeCompressed(t, path, plain.Bytes())
}

func writeCompressed(t *testing.T, path string, data []byte) {
	t.Helper()

	var buf bytes.Buffer
	w, err := codec.NewWriter(&buf, codec.FromPath(path))
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// quoteRows builds n Quotebank-shaped objects.
func quoteRows(n int, speaker string) []map[string]any {
	rows := make([]map[string]any, n)
	for i := range rows {
		rows[i] = map[string]any{
			"quoteID":        fmt.Sprintf("2020-01-01-%06d", i),
			"quotation":      fmt.Sprintf("quote number %d, with a comma", i),
			"speaker":        speaker,
			"qids":           []string{"Q317521"},
			"date":           "2020-01-01 10:00:00",
			"numOccurrences": i + 1,
			"probas":         [][]string{{speaker, "0.8512"}, {"None", "0.1488"}},
			"urls":           []string{"http://example.com/a?x=1&y=2"},
			"phase":          "E",
		}
	}
	return rows
}

func writeTableFile(t *testing.T, dir, name string, tbl *model.Table) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, WriteTable(path, tbl, codec.FromPath(path)))
	return path
}

func speakerTable(rows ...[2]string) *model.Table {
	tbl := model.NewTable(model.ColQuoteID, model.ColSpeaker)
	for _, r := range rows {
		tbl.Append(model.Record{model.ColQuoteID: r[0], model.ColSpeaker: r[1]})
	}
	return tbl
}
