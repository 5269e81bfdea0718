package svg

import (
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	minsvg "github.com/tdewolff/minify/v2/svg"

	"github.com/matzehuels/svgstack/pkg/errors"
)

const mediaType = "image/svg+xml"

// Matplotlib output embeds <style> blocks, so CSS is registered alongside SVG.
var minifier = func() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc(mediaType, minsvg.Minify)
	return m
}()

// Minify strips whitespace and shortens numbers and paths in serialized SVG.
func Minify(b []byte) ([]byte, error) {
	out, err := minifier.Bytes(mediaType, b)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSVG, err, "minify svg")
	}
	return out, nil
}
