package render

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/svgstack/pkg/errors"
	"github.com/matzehuels/svgstack/pkg/svg"
)

// MaxPixels bounds the canvas [Native] will allocate.
const MaxPixels = 64 << 20

const maxSide = 1 << 15

// Native rasterizes in-process with oksvg and rasterx.
type Native struct{}

var _ Backend = Native{} // assert interface conformance

// Rasterize implements [Backend].
func (Native) Rasterize(content []byte, dpi float64) ([]byte, error) {
	normalized, w, h, err := normalize(content, dpi)
	if err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(normalized), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSVG, err, "read svg")
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

// normalize resolves the device pixel size of the document at dpi and
// rewrites the root so oksvg sees unitless pixel dimensions and an
// explicit viewBox.
func normalize(content []byte, dpi float64) ([]byte, int, int, error) {
	doc, err := svg.Parse(string(content))
	if err != nil {
		return nil, 0, 0, err
	}

	vb, hasViewBox := parseViewBox(doc.Get("viewBox"))
	if !hasViewBox {
		// Without a viewBox one user unit is one CSS pixel.
		vb = [4]float64{0, 0}
		if vb[2], err = dimension(doc.Width(), 96); err != nil {
			return nil, 0, 0, err
		}
		if vb[3], err = dimension(doc.Height(), 96); err != nil {
			return nil, 0, 0, err
		}
	}

	pw, err := dimensionOr(doc.Width(), dpi, vb[2])
	if err != nil {
		return nil, 0, 0, err
	}
	ph, err := dimensionOr(doc.Height(), dpi, vb[3])
	if err != nil {
		return nil, 0, 0, err
	}

	if pw*ph > MaxPixels || pw > maxSide || ph > maxSide || math.IsNaN(pw*ph) {
		return nil, 0, 0, errors.New(errors.ErrCodeInvalidArgument,
			"document is %gx%g pixels at %g dpi, over the %d pixel limit", pw, ph, dpi, MaxPixels)
	}
	w, h := int(math.Ceil(pw)), int(math.Ceil(ph))
	if w <= 0 || h <= 0 {
		return nil, 0, 0, errors.New(errors.ErrCodeInvalidSVG, "document has empty size %dx%d", w, h)
	}

	doc.Set("width", strconv.Itoa(w))
	doc.Set("height", strconv.Itoa(h))
	doc.Set("viewBox", strings.Join([]string{
		fmtFloat(vb[0]), fmtFloat(vb[1]), fmtFloat(vb[2]), fmtFloat(vb[3]),
	}, " "))

	b, err := doc.Bytes()
	if err != nil {
		return nil, 0, 0, err
	}
	return b, w, h, nil
}

func dimension(s string, dpi float64) (float64, error) {
	if s == "" {
		return 0, errors.New(errors.ErrCodeInvalidSVG, "document declares neither viewBox nor size")
	}
	return svg.ToPixels(s, dpi)
}

// dimensionOr converts s, using fallback when s is missing or relative.
func dimensionOr(s string, dpi, fallback float64) (float64, error) {
	if s == "" || svg.IsRelative(s) {
		return fallback, nil
	}
	return svg.ToPixels(s, dpi)
}

func parseViewBox(s string) ([4]float64, bool) {
	var vb [4]float64
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' || r == '\n' })
	if len(fields) != 4 {
		return vb, false
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return vb, false
		}
		vb[i] = v
	}
	return vb, vb[2] > 0 && vb[3] > 0
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
