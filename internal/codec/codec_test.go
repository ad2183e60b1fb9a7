package codec

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Scheme
		wantErr bool
	}{
		{name: "bz2", input: "bz2", want: Bz2},
		{name: "bzip2 alias", input: "bzip2", want: Bz2},
		{name: "gzip alias", input: "gzip", want: Gzip},
		{name: "dotted extension", input: ".zst", want: Zstd},
		{name: "upper case", input: "XZ", want: Xz},
		{name: "lz4", input: "lz4", want: Lz4},
		{name: "none", input: "none", want: None},
		{name: "empty", input: "", want: None},
		{name: "unknown", input: "rar", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownScheme)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromPath(t *testing.T) {
	assert.Equal(t, Bz2, FromPath("Data/quotes-2020-1.csv.bz2"))
	assert.Equal(t, Gzip, FromPath("out.csv.gz"))
	assert.Equal(t, None, FromPath("out.csv"))
	assert.Equal(t, None, FromPath("noext"))
}

func TestSuffix(t *testing.T) {
	assert.Equal(t, ".bz2", Bz2.Suffix())
	assert.Equal(t, "", None.Suffix())
}

func TestRoundTrip(t *testing.T) {
	payload := strings.Repeat("quoteID,quotation\nQ1,\"hello, world\"\n", 200)

	for _, scheme := range []Scheme{Bz2, Gzip, Zstd, Xz, Lz4, None} {
		t.Run(string(scheme)+"_scheme", func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, scheme)
			require.NoError(t, err)
			_, err = io.WriteString(w, payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			r, err := NewReader(&buf, scheme)
			require.NoError(t, err)
			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, string(got))
		})
	}
}

func TestUnknownScheme(t *testing.T) {
	_, err := NewWriter(io.Discard, Scheme("rar"))
	assert.ErrorIs(t, err, ErrUnknownScheme)

	_, err = NewReader(strings.NewReader(""), Scheme("rar"))
	assert.ErrorIs(t, err, ErrUnknownScheme)
}
