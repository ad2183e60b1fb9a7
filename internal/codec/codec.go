// Package codec maps compression scheme names to stream encoders and decoders.
package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// Scheme names a compression scheme. The value doubles as the file suffix.
type Scheme string

const (
	Bz2  Scheme = "bz2"
	Gzip Scheme = "gz"
	Zstd Scheme = "zst"
	Xz   Scheme = "xz"
	Lz4  Scheme = "lz4"
	None Scheme = ""
)

// Default is the scheme used for every file the corpus tools write unless told otherwise.
const Default = Bz2

// bz2Level matches the level the chunk files have always been written with.
const bz2Level = 9

// ErrUnknownScheme is returned for scheme names outside the supported set.
var ErrUnknownScheme = errors.New("unknown compression scheme")

// Parse converts a user-supplied name ("bz2", "gzip", "zstd", "none", ...) to a Scheme.
func Parse(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "bz2", "bzip2":
		return Bz2, nil
	case "gz", "gzip":
		return Gzip, nil
	case "zst", "zstd":
		return Zstd, nil
	case "xz":
		return Xz, nil
	case "lz4":
		return Lz4, nil
	case "", "none":
		return None, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}

// FromPath infers the scheme from a file name's last extension.
func FromPath(path string) Scheme {
	s, err := Parse(filepath.Ext(path))
	if err != nil {
		return None
	}
	return s
}

// Suffix returns the file suffix for the scheme including the dot, or "" for None.
func (s Scheme) Suffix() string {
	if s == None {
		return ""
	}
	return "." + string(s)
}

// NewWriter wraps w so that bytes written are compressed with scheme.
// Closing the returned writer flushes the stream but does not close w.
func NewWriter(w io.Writer, scheme Scheme) (io.WriteCloser, error) {
	switch scheme {
	case Bz2:
		return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bz2Level})
	case Gzip:
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	case Zstd:
		return zstd.NewWriter(w)
	case Xz:
		return xz.NewWriter(w)
	case Lz4:
		return lz4.NewWriter(w), nil
	case None:
		return nopWriteCloser{w}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, string(scheme))
	}
}

// NewReader wraps r so that reads return decompressed bytes.
func NewReader(r io.Reader, scheme Scheme) (io.ReadCloser, error) {
	switch scheme {
	case Bz2:
		return bzip2.NewReader(r, nil)
	case Gzip:
		return gzip.NewReader(r)
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case Xz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(xr), nil
	case Lz4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case None:
		return io.NopCloser(r), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, string(scheme))
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
