package record

import (
	"strconv"

	"github.com/matzehuels/svgstack/pkg/errors"
)

// Compression selects what [FromFigure] stores in a record.
type Compression int

const (
	// NoCompression stores the SVG as Text.
	NoCompression Compression = iota
	// Compress stores only the compressed SVG.
	Compress
	// CompressKeepText stores the compressed SVG and the original text.
	CompressKeepText
)

// ParseCompression maps a numeric mode (0, 1 or 2) to a policy.
func ParseCompression(mode int) (Compression, error) {
	c := Compression(mode)
	if !c.Valid() {
		return 0, errors.New(errors.ErrCodeInvalidArgument, "unknown compression mode %d (must be 0, 1 or 2)", mode)
	}
	return c, nil
}

// Valid reports whether c is one of the three policies.
func (c Compression) Valid() bool {
	return c >= NoCompression && c <= CompressKeepText
}

func (c Compression) String() string {
	switch c {
	case NoCompression:
		return "none"
	case Compress:
		return "compress"
	case CompressKeepText:
		return "compress+text"
	}
	return "Compression(" + strconv.Itoa(int(c)) + ")"
}
