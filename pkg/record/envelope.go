package record

import (
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/svgstack/pkg/compress"
	"github.com/matzehuels/svgstack/pkg/errors"
	"github.com/matzehuels/svgstack/pkg/figure"
)

// Option configures [FromFigure].
type Option func(*options)

type options struct {
	title         string
	tags          []string
	compression   Compression
	width, height float64
	sized         bool
	figureTitle   bool
	keepOpen      bool
	diskDir       string
	logger        *log.Logger
	compressor    compress.Compressor
}

// WithTitle sets the record title.
func WithTitle(title string) Option { return func(o *options) { o.title = title } }

// WithTags sets the record tags, in order.
func WithTags(tags ...string) Option { return func(o *options) { o.tags = tags } }

// WithCompression sets the compression policy (default [Compress]).
func WithCompression(c Compression) Option { return func(o *options) { o.compression = c } }

// WithSize fixes the figure size in inches before rendering.
func WithSize(width, height float64) Option {
	return func(o *options) { o.width, o.height, o.sized = width, height, true }
}

// WithFigureTitle also draws the title into the figure.
func WithFigureTitle() Option { return func(o *options) { o.figureTitle = true } }

// WithoutClose leaves the figure open after rendering.
func WithoutClose() Option { return func(o *options) { o.keepOpen = true } }

// WithDiskSave also writes the plain SVG to dir/<name>. Under
// [CompressKeepText] the text copy moves to disk and is cleared from the
// returned record.
func WithDiskSave(dir string) Option { return func(o *options) { o.diskDir = dir } }

// WithLogger sets the logger; nil discards log output.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// WithCompressor overrides the gzip compressor.
func WithCompressor(c compress.Compressor) Option { return func(o *options) { o.compressor = c } }

func newOptions(opts []Option) options {
	o := options{compression: Compress}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.compressor == nil {
		o.compressor = compress.Gzip{}
	}
	return o
}

// FromFigure renders fig to SVG and wraps it in a record named name.
// Unless [WithoutClose] is given the figure is closed afterwards, even
// when rendering fails. Renderer and compressor errors are returned as is.
func FromFigure(fig figure.Figure, name string, opts ...Option) (*Record, error) {
	if name == "" {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "record name cannot be empty")
	}
	o := newOptions(opts)
	if !o.compression.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "unknown compression %v", o.compression)
	}

	o.logger.Info("Saving plot", "name", name)

	if o.sized {
		fig.SetSize(o.width, o.height)
	}
	if o.title != "" && o.figureTitle {
		fig.SetTitle(o.title)
	}

	text, err := figure.SVG(fig)
	if !o.keepOpen {
		if cerr := fig.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return nil, err
	}

	rec := &Record{Name: name, Title: o.title}
	if len(o.tags) > 0 {
		rec.Tags = slices.Clone(o.tags)
	}

	if o.compression == NoCompression {
		rec.SVG = Text(text)
	} else {
		blob, err := o.compressor.Compress([]byte(text), name)
		if err != nil {
			return nil, err
		}
		rec.SVG = Compressed(blob)
		if o.compression == CompressKeepText {
			rec.SVGText = text
		}
	}

	if o.diskDir != "" {
		if err := saveToDisk(rec, o.diskDir, o); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// FromProperties renders fig as configured by props. Format strings in
// the file name and title are filled from extra. When props.DiskSave is
// set, the plain SVG is also written to DiskSave/<file name>; under
// CompressKeepText the SVGText copy is moved to disk and cleared from the
// returned record.
func FromProperties(fig figure.Figure, props Properties, extra map[string]any, opts ...Option) (*Record, error) {
	name, err := props.FileName.Resolve(extra)
	if err != nil {
		return nil, err
	}
	compression, err := props.Compression()
	if err != nil {
		return nil, err
	}

	base := []Option{WithCompression(compression), WithTags(props.Tags...)}
	if props.Title != nil {
		title, err := props.Title.Resolve(extra)
		if err != nil {
			return nil, err
		}
		base = append(base, WithTitle(title))
	}
	if props.FigIncludeTitle {
		base = append(base, WithFigureTitle())
	}
	if props.Width != nil && props.Height != nil {
		base = append(base, WithSize(*props.Width, *props.Height))
	}
	if props.DiskSave != "" {
		base = append(base, WithDiskSave(props.DiskSave))
	}
	return FromFigure(fig, name, append(base, opts...)...)
}

func saveToDisk(rec *Record, dir string, o options) error {
	if err := errors.ValidateRecordName(rec.Name); err != nil {
		return err
	}

	var text string
	switch p := rec.SVG.(type) {
	case Text:
		text = string(p)
	case Compressed:
		if rec.SVGText != "" {
			text = rec.SVGText
			rec.SVGText = ""
		} else {
			t, err := o.compressor.Decompress(p)
			if err != nil {
				return err
			}
			text = t
		}
	}

	path := filepath.Join(dir, rec.Name)
	o.logger.Debug("Saving plot to disk", "path", path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0644)
}
