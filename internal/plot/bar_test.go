package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveBarChart_WritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tesla.png")

	err := SaveBarChart(path, "Tesla", "Years", YLabel("Tesla"), []Bar{
		{Label: "2015", Value: 3},
		{Label: "2016", Value: 7},
	})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSaveBarChart_NoBars(t *testing.T) {
	err := SaveBarChart(filepath.Join(t.TempDir(), "x.png"), "", "", "", nil)
	assert.ErrorIs(t, err, ErrNoBars)
}

func TestYLabel(t *testing.T) {
	assert.Equal(t, "Number of quotes about SpaceX", YLabel("SpaceX"))
}
