package figure

import (
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/svgstack/pkg/errors"
)

// Default gonum figure size, matching the usual 4x3 inch notebook plot.
const (
	defaultPlotWidth  = 4 * vg.Inch
	defaultPlotHeight = 3 * vg.Inch
)

// Plot wraps a gonum plot.
type Plot struct {
	P *plot.Plot

	width, height vg.Length
}

var _ Figure = (*Plot)(nil)

// NewPlot wraps p with the default 4x3 inch size.
func NewPlot(p *plot.Plot) *Plot {
	return &Plot{P: p, width: defaultPlotWidth, height: defaultPlotHeight}
}

// SetSize implements [Figure].
func (f *Plot) SetSize(width, height float64) {
	f.width = vg.Length(width) * vg.Inch
	f.height = vg.Length(height) * vg.Inch
}

// SetTitle implements [Figure]. It is a no-op once the plot is closed.
func (f *Plot) SetTitle(title string) {
	if f.P == nil {
		return
	}
	f.P.Title.Text = title
}

// WriteSVG implements [Figure].
func (f *Plot) WriteSVG(w io.Writer) error {
	if f.P == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "plot is closed")
	}
	wt, err := f.P.WriterTo(f.width, f.height, "svg")
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "render plot")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "write plot")
	}
	return nil
}

// Close drops the plot reference.
func (f *Plot) Close() error {
	f.P = nil
	return nil
}
