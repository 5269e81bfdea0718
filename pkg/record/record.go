package record

import (
	"slices"

	"github.com/matzehuels/svgstack/pkg/compress"
	"github.com/matzehuels/svgstack/pkg/errors"
)

// Payload is the SVG carried by a record: either [Text] or [Compressed].
type Payload interface {
	isPayload()
}

// Text is an uncompressed SVG payload.
type Text string

// Compressed is a compressed SVG payload.
type Compressed []byte

func (Text) isPayload()       {}
func (Compressed) isPayload() {}

// Record is one rendered plot.
type Record struct {
	Name  string
	SVG   Payload
	Tags  []string
	Title string

	// SVGText holds the uncompressed SVG under CompressKeepText only.
	SVGText string
}

// IsCompressed reports whether the payload is compressed.
func (r Record) IsCompressed() bool {
	_, ok := r.SVG.(Compressed)
	return ok
}

// Text returns the SVG text when the payload is uncompressed.
func (r Record) Text() (string, bool) {
	t, ok := r.SVG.(Text)
	return string(t), ok
}

// Clone returns a copy that shares no slices with r.
func (r Record) Clone() Record {
	r.Tags = slices.Clone(r.Tags)
	if b, ok := r.SVG.(Compressed); ok {
		r.SVG = Compressed(slices.Clone(b))
	}
	return r
}

// Decompressed returns a copy of r with a compressed payload replaced by
// its text. Uncompressed records are returned unchanged, so applying it
// twice equals applying it once. A nil c means gzip.
func Decompressed(r Record, c compress.Compressor) (Record, error) {
	b, ok := r.SVG.(Compressed)
	if !ok {
		return r.Clone(), nil
	}
	if c == nil {
		c = compress.Gzip{}
	}
	text, err := c.Decompress(b)
	if err != nil {
		return Record{}, err
	}
	out := r.Clone()
	out.SVG = Text(text)
	return out, nil
}

// Decompress replaces a compressed payload with its text in place.
// Callers must not decompress the same record from several goroutines.
func (r *Record) Decompress(c compress.Compressor) error {
	d, err := Decompressed(*r, c)
	if err != nil {
		return err
	}
	*r = d
	return nil
}

// DecompressValue decompresses loosely typed input.
//
// A *Record or a wire map is decompressed in place and also returned; a
// Record value is copied. Any other value, including nil, is an
// INVALID_ARGUMENT error.
func DecompressValue(v any, c compress.Compressor) (*Record, error) {
	switch x := v.(type) {
	case *Record:
		if x == nil {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "record must not be nil")
		}
		if err := x.Decompress(c); err != nil {
			return nil, err
		}
		return x, nil
	case Record:
		d, err := Decompressed(x, c)
		if err != nil {
			return nil, err
		}
		return &d, nil
	case map[string]any:
		r, err := FromMap(x)
		if err != nil {
			return nil, err
		}
		if err := r.Decompress(c); err != nil {
			return nil, err
		}
		if text, ok := r.Text(); ok {
			x[keySVG] = text
		}
		return &r, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidArgument, "record must be a Record or a map, got %T", v)
}
