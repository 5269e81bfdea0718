// Package svg combines and rescales SVG documents.
//
// # Overview
//
// The package works on whole documents: it parses SVG text into a
// [Document], lifts a document's drawable content into a positionable
// [Element], and assembles new documents out of those elements. Three
// operations sit on top of that model:
//
//   - [Stack]: place two documents edge to edge, vertically or horizontally,
//     with an optional separator line between them
//   - [Rescale]: produce a uniformly scaled copy of a document
//   - [Minify]: compact serialized output
//
// # Dimensions
//
// Root width and height attributes are strings that may carry a unit
// suffix ("460.8pt", "600px", "600"). How they are read is an explicit
// [Policy] rather than something inferred from the call site:
//
//   - [StripSuffix] requires the expected unit and keeps the fraction
//   - [Truncate] accepts any SVG length unit and drops both the fraction
//     and the unit
//
// [Stack] uses StripSuffix with "pt" by default, matching what plotting
// backends emit. [Rescale] uses Truncate.
//
// # Usage
//
//	out, err := svg.Stack(top, bottom)
//	out, err := svg.Stack(left, right, svg.Horizontally(), svg.WithSeparator(false))
//	half, err := svg.Rescale(string(out), 0.5)
//
// All functions allocate fresh documents; inputs are never modified and
// results are deterministic for identical inputs.
package svg
