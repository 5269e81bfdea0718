// Package figure adapts plotting backends to the render envelope.
//
// A [Figure] is anything that can be sized, titled and written out as SVG
// text. The envelope in package record only talks to this interface, so
// new backends plug in without touching it.
//
// Implementations:
//
//   - [Plot]: a gonum.org/v1/plot chart
//   - [Graph]: a Graphviz DOT graph rendered through go-graphviz
//   - [Static]: SVG text rendered elsewhere
package figure

import (
	"bytes"
	"io"
)

// Figure is a renderable plot.
type Figure interface {
	// SetSize fixes the output size in inches.
	SetSize(width, height float64)
	// SetTitle draws title into the figure itself.
	SetTitle(title string)
	// WriteSVG renders the figure as SVG text to w.
	WriteSVG(w io.Writer) error
	// Close releases backend resources. The figure must not be used afterwards.
	Close() error
}

// SVG renders f to a string.
func SVG(f Figure) (string, error) {
	var buf bytes.Buffer
	if err := f.WriteSVG(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Static is a figure whose SVG text already exists.
// Size and title requests are ignored.
type Static string

var _ Figure = Static("")

func (Static) SetSize(width, height float64) {}
func (Static) SetTitle(title string)         {}
func (Static) Close() error                  { return nil }

func (s Static) WriteSVG(w io.Writer) error {
	_, err := io.WriteString(w, string(s))
	return err
}
