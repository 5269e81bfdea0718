// Package compress implements the compression collaborator used by the
// render envelope.
//
// Compressed plots are gzip members whose header Name carries the label
// they were compressed under (usually the plot file name), so stored
// blobs stay self-describing:
//
//	blob, err := compress.Gzip{}.Compress([]byte(svg), "lightcurve.svg")
//	text, err := compress.Gzip{}.Decompress(blob)
//	name, err := compress.Label(blob) // "lightcurve.svg"
package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/matzehuels/svgstack/pkg/errors"
)

// Compressor compresses plot text and restores it.
type Compressor interface {
	Compress(data []byte, label string) ([]byte, error)
	Decompress(data []byte) (string, error)
}

// Gzip is the default [Compressor].
type Gzip struct {
	// Level is a gzip compression level; zero means gzip.BestCompression,
	// so gzip.NoCompression cannot be selected. Use gzip.HuffmanOnly for
	// the cheapest encoding.
	Level int
}

var _ Compressor = Gzip{}

// Compress gzips data and records label in the member header.
func (g Gzip) Compress(data []byte, label string) ([]byte, error) {
	level := g.Level
	if level == 0 {
		level = gzip.BestCompression
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "gzip level %d", level)
	}
	zw.Name = label
	if _, err := zw.Write(data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "compress %s", label)
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "compress %s", label)
	}
	return buf.Bytes(), nil
}

// Decompress gunzips data and returns it as text.
func (Gzip) Decompress(data []byte) (string, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "decompress")
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "decompress")
	}
	return string(out), nil
}

// Label returns the name a blob was compressed under.
func Label(data []byte) (string, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read gzip header")
	}
	defer zr.Close()
	return zr.Name, nil
}
