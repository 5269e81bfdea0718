// Package record wraps rendered figures in a persistable envelope.
//
// # Overview
//
// A [Record] carries one rendered plot: its name, the SVG payload, and
// optional tags and title. The payload is a tagged variant:
//
//   - [Text]: the SVG as a plain string
//   - [Compressed]: the SVG compressed by a [compress.Compressor]
//
// # Compression policy
//
// [FromFigure] renders a figure and classifies the result under a
// [Compression] policy:
//
//   - [NoCompression]: payload is Text
//   - [Compress]: payload is Compressed, no plain text is kept
//   - [CompressKeepText]: payload is Compressed and SVGText holds the
//     original string, for callers that also write plots to disk
//
// [ParseCompression] maps the legacy integer modes 0/1/2 onto the policy
// and rejects anything else.
//
// # Decompression
//
// [Decompressed] is the pure inverse of compression on the payload and is
// idempotent. [Record.Decompress] applies it in place, and
// [DecompressValue] accepts loosely typed input (records or wire maps)
// and rejects anything else with an INVALID_ARGUMENT error.
//
// # Wire shape
//
// Stores and APIs see a record as a mapping with keys name, svg, tag,
// title and svg_str; see [Record.ToMap] and [FromMap].
//
// [compress.Compressor]: github.com/matzehuels/svgstack/pkg/compress.Compressor
package record
