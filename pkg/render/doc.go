// Package render rasterizes SVG documents to PNG.
//
// # Overview
//
// The package turns SVG text into PNG bytes at a requested resolution and
// wraps the result as an HTML image tag with a base64 data URI, ready to
// be embedded in notebooks, reports or web pages:
//
//	tag, err := render.ImgTag(svgText, render.DefaultDPI)
//	// <img src="data:image/png;base64,iVBORw0KGgo...">
//
// # Backends
//
// Rasterization goes through a [Backend]:
//
//   - [Native]: pure Go, built on oksvg and rasterx. No external tools.
//   - [RSVG]: shells out to rsvg-convert from librsvg. Handles text and
//     filters that the native backend ignores.
//     Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
//
// # Resolution
//
// Physical units (pt, in, mm, ...) in the root width and height scale with
// dpi, while unitless and px dimensions map one user unit to one pixel. At
// the default 96 dpi a "72pt" wide document becomes 96 pixels wide.
//
// Malformed SVG yields an INVALID_SVG error; backend failures yield
// RENDER_FAILED. Nothing is retried or cached here; see the pipeline
// package for cached rasterization.
package render
