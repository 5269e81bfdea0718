package svg

import "github.com/matzehuels/svgstack/pkg/errors"

// Rescale returns a copy of svg scaled uniformly by scale.
//
// The original size is read with the [Truncate] policy, so "600.7px"
// counts as 600. The result declares width and height in px equal to the
// original size times scale, and draws the original content under a
// single scale(k k) transform, which keeps the aspect ratio exact.
//
// Units are relabelled, not converted: a 100pt document rescaled by 1
// declares 100px, which renders about a quarter smaller.
func Rescale(svg string, scale float64) (string, error) {
	if err := errors.ValidateScale(scale); err != nil {
		return "", err
	}

	original, err := Parse(svg)
	if err != nil {
		return "", err
	}

	w, h, err := original.Size(Truncate, "")
	if err != nil {
		return "", err
	}
	w, h = w*scale, h*scale

	scaled := NewDocument()
	scaled.Set("width", FormatDimension(w, "px"))
	scaled.Set("height", FormatDimension(h, "px"))
	scaled.Set("viewBox", viewBox(w, h))

	root := original.Root()
	root.Scale(scale, scale)
	scaled.Append(root)

	return scaled.String()
}
