// Package pkg provides the libraries behind svgstack.
//
// # Overview
//
// svgstack turns rendered plots into persistable records and composes SVG
// documents. The pkg directory is organized as:
//
//  1. [svg] - Document model, unit parsing, stacking and rescaling
//  2. [render] - Rasterizing SVG to PNG and base64 <img> tags
//  3. [figure] - Plot backends that render to SVG (gonum/plot, Graphviz, static)
//  4. [record] - The compressed plot record envelope and TOML plot properties
//  5. [compress] - Gzip payload compression
//  6. [store] - Record persistence (MongoDB, files, memory)
//  7. [cache] - Artifact caching (Redis, files) and cache keys
//  8. [pipeline] - Cache-through orchestration of the operations above
//
// # Data Flow
//
//	figure (plot, graph, static SVG)
//	         ↓
//	    [record] FromFigure (render, compress, tag)
//	         ↓
//	    [store] Put / Get
//	         ↓
//	    [record] Decompressed
//	         ↓
//	    [svg] Stack / Rescale  →  [render] ImgTag
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/svgstack/pkg/record"
//	    "github.com/matzehuels/svgstack/pkg/render"
//	    "github.com/matzehuels/svgstack/pkg/svg"
//	)
//
//	// 1. Wrap a rendered figure
//	rec, _ := record.FromFigure(fig, "lightcurve.svg", record.WithTags("SCIENCE"))
//
//	// 2. Get the text back
//	plain, _ := record.Decompressed(*rec, nil)
//	text, _ := plain.Text()
//
//	// 3. Combine with another plot and embed as PNG
//	combined, _ := svg.Stack(text, other)
//	tag, _ := render.ImgTag(string(combined), render.DefaultDPI)
//
// # Supporting Packages
//
//   - [errors] - Coded errors shared by the CLI and the HTTP API
//   - [observability] - Hooks for metrics and tracing of pipeline, cache and HTTP events
//   - [buildinfo] - Version information set at build time
//
// [svg]: github.com/matzehuels/svgstack/pkg/svg
// [render]: github.com/matzehuels/svgstack/pkg/render
// [figure]: github.com/matzehuels/svgstack/pkg/figure
// [record]: github.com/matzehuels/svgstack/pkg/record
// [compress]: github.com/matzehuels/svgstack/pkg/compress
// [store]: github.com/matzehuels/svgstack/pkg/store
// [cache]: github.com/matzehuels/svgstack/pkg/cache
// [pipeline]: github.com/matzehuels/svgstack/pkg/pipeline
// [errors]: github.com/matzehuels/svgstack/pkg/errors
// [observability]: github.com/matzehuels/svgstack/pkg/observability
// [buildinfo]: github.com/matzehuels/svgstack/pkg/buildinfo
package pkg
