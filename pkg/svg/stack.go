package svg

import "math"

// StackSpec describes how two documents are combined by [Stack].
type StackSpec struct {
	// Horizontal places the second document to the right of the first
	// instead of below it.
	Horizontal bool `json:"horizontally"`
	// Separator draws a line along the shared edge.
	Separator bool `json:"separator"`
	// Unit is the unit suffix both documents declare their size in.
	Unit string `json:"unit,omitempty"`
}

// StackOption configures [Stack].
type StackOption func(*StackSpec)

// Horizontally lays the documents out side by side.
func Horizontally() StackOption { return func(s *StackSpec) { s.Horizontal = true } }

// WithSeparator toggles the dividing line (on by default).
func WithSeparator(on bool) StackOption { return func(s *StackSpec) { s.Separator = on } }

// WithUnit sets the unit suffix expected on both inputs (default "pt").
func WithUnit(unit string) StackOption { return func(s *StackSpec) { s.Unit = unit } }

// DefaultStackSpec returns a vertical layout with a separator, in points.
func DefaultStackSpec() StackSpec {
	return StackSpec{Separator: true, Unit: DefaultUnit}
}

// Stack combines two SVG documents into one, laid edge to edge.
//
// Vertically the second document starts at y=h1 and the result is
// max(w1,w2) by h1+h2; horizontally it starts at x=w1 and the result is
// w1+w2 by max(h1,h2). The second document is painted over the first.
func Stack(svg1, svg2 string, opts ...StackOption) ([]byte, error) {
	s := DefaultStackSpec()
	for _, opt := range opts {
		opt(&s)
	}
	return StackWith(svg1, svg2, s)
}

// StackWith is [Stack] driven by an explicit [StackSpec].
func StackWith(svg1, svg2 string, s StackSpec) ([]byte, error) {
	if s.Unit == "" {
		s.Unit = DefaultUnit
	}

	fig1, err := Parse(svg1)
	if err != nil {
		return nil, err
	}
	fig2, err := Parse(svg2)
	if err != nil {
		return nil, err
	}

	w1, h1, err := fig1.Size(StripSuffix, s.Unit)
	if err != nil {
		return nil, err
	}
	w2, h2, err := fig2.Size(StripSuffix, s.Unit)
	if err != nil {
		return nil, err
	}

	el1 := fig1.Root()
	el2 := fig2.Root()

	var width, height float64
	if s.Horizontal {
		el2.MoveTo(w1, 0)
		width, height = w1+w2, math.Max(h1, h2)
	} else {
		el2.MoveTo(0, h1)
		width, height = math.Max(w1, w2), h1+h2
	}

	fig := NewDocument()
	fig.Set("width", FormatDimension(width, s.Unit))
	fig.Set("height", FormatDimension(height, s.Unit))
	fig.Set("viewBox", viewBox(width, height))
	fig.Append(el1)
	fig.Append(el2)

	if s.Separator {
		if s.Horizontal {
			fig.Append(NewLine(Point{w1, 0}, Point{w1, height}))
		} else {
			fig.Append(NewLine(Point{0, h1}, Point{width, h1}))
		}
	}

	return fig.Bytes()
}
