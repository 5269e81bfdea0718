// Package pipeline runs the svgstack operations behind a cache.
//
// Both the CLI and the HTTP API go through a [Runner] so that stacking,
// rescaling and rasterizing behave the same everywhere and share one
// caching policy.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	defer runner.Close()
//
//	res, err := runner.Stack(ctx, top, bottom, pipeline.StackOptions{
//	    StackSpec: svg.DefaultStackSpec(),
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("combined.svg", res.Data, 0644)
//
//	tag, err := runner.ImgTag(ctx, string(res.Data), pipeline.PNGOptions{DPI: 150})
//
// Every operation is a pure function of its inputs, so results are cached
// under keys from [cache.Keyer] and a hit skips the work entirely.
package pipeline

import (
	"time"

	"github.com/matzehuels/svgstack/pkg/render"
	"github.com/matzehuels/svgstack/pkg/svg"
)

// =============================================================================
// Options
// =============================================================================

// StackOptions configures [Runner.Stack].
type StackOptions struct {
	svg.StackSpec

	// Minify compacts the composed document.
	Minify bool `json:"minify,omitempty"`
}

// DefaultStackOptions returns a vertical stack with a separator, in points.
func DefaultStackOptions() StackOptions {
	return StackOptions{StackSpec: svg.DefaultStackSpec()}
}

// PNGOptions configures [Runner.PNG] and [Runner.ImgTag].
type PNGOptions struct {
	// DPI is the output resolution. Zero means render.DefaultDPI.
	DPI float64 `json:"dpi,omitempty"`

	// Backend names the rasterizer: "native" (default) or "rsvg".
	Backend string `json:"backend,omitempty"`
}

// withDefaults fills in zero fields.
func (o PNGOptions) withDefaults() PNGOptions {
	if o.DPI == 0 {
		o.DPI = render.DefaultDPI
	}
	if o.Backend == "" {
		o.Backend = "native"
	}
	return o
}

// =============================================================================
// Results
// =============================================================================

// Result is the output of one operation.
type Result struct {
	// Data is the produced artifact: SVG text or PNG bytes.
	Data []byte

	// CacheHit reports whether Data came from the cache.
	CacheHit bool

	// Duration is the wall time spent, including cache lookups.
	Duration time.Duration
}
