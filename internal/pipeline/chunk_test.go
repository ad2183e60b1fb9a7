package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-quote-pipeline/internal/domain"
	"go-quote-pipeline/internal/model"
)

func TestChunkify_SplitsIntoBatches(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "quotes-2020.json.bz2")
	writeJSONLines(t, source, quoteRows(5, "Elon Musk"))

	c := NewCorpus(dir, nil, nil)
	var progress []int
	res, err := c.Chunkify(context.Background(), source, 2, "quotes-2020",
		WithTiming(),
		WithProgress(func(_, rows int) { progress = append(progress, rows) }),
	)
	require.NoError(t, err)

	require.Len(t, res.Files, 3)
	assert.Equal(t, 5, res.Rows)
	assert.Equal(t, []int{2, 2, 1}, progress)
	for i, f := range res.Files {
		assert.Equal(t, filepath.Join(dir, fmt.Sprintf("quotes-2020-%d.csv.bz2", i+1)), f.Path)
	}

	// Reading the chunks back in batch order reproduces the source rows.
	var parts []*model.Table
	for _, f := range res.Files {
		tbl, err := ReadTable(f.Path)
		require.NoError(t, err)
		parts = append(parts, tbl)
	}
	all := model.Concat(parts...)
	require.Equal(t, 5, all.Len())
	for i, rec := range all.Records {
		assert.Equal(t, quoteRows(5, "Elon Musk")[i]["quoteID"], rec[model.ColQuoteID])
	}
	assert.Equal(t, model.CanonicalColumns, all.Columns)
}

func TestChunkify_RemovesIntermediateFiles(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "src.json.bz2")
	writeJSONLines(t, source, quoteRows(4, "A"))

	_, err := NewCorpus(dir, nil, nil).Chunkify(context.Background(), source, 3, "out", WithTiming())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".csv"), "leftover %s", e.Name())
	}
}

func TestChunkify_MalformedRowAborts(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "src.json.bz2")
	writeCompressed(t, source, []byte("{\"quoteID\":\"Q1\"}\n{\"quoteID\":\"Q2\"}\n{oops\n"))

	res, err := NewCorpus(dir, nil, nil).Chunkify(context.Background(), source, 2, "out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	require.NotNil(t, res)
	assert.Len(t, res.Files, 1)

	_, statErr := os.Stat(filepath.Join(dir, "out-2.csv"))
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestChunkify_InvalidArguments(t *testing.T) {
	c := NewCorpus(t.TempDir(), nil, nil)

	_, err := c.Chunkify(context.Background(), "src.json.bz2", 0, "out")
	assert.True(t, domain.IsValidation(err))

	_, err = c.Chunkify(context.Background(), "src.json.bz2", 10, "")
	assert.True(t, domain.IsValidation(err))
}

func TestFindYearFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"quotes-2020-1", "quotes-2021-1", "other-2020-1", "quotes-2020-2.csv.bz2"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "quotes-2020-dir"), 0o755))

	names, err := FindYearFiles(dir, "2020")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"quotes-2020-1", "quotes-2020-2.csv.bz2"}, names)

	names, err = FindYearFiles(dir, "2019")
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = FindYearFiles(filepath.Join(dir, "missing"), "2020")
	assert.Error(t, err)
}
