// Package sink writes a [layout.Diagram] to a concrete drawing surface.
//
// Four surfaces are supported:
//
//   - [RenderSVG]: scalable vector output, written directly as XML
//   - [RenderPNG]: raster output drawn with gogpu/gg
//   - [RenderPDF]: single-page vector PDF drawn with gofpdf
//   - [RenderJSON]: the primitive list itself, for other tools
//
// All surfaces share one viewport: the diagram bounds grown by a margin.
// Primitives keep their drawing-unit coordinates; only the viewport origin
// moves. Strokes keep a constant width regardless of the diagram scale,
// gap rectangles are dashed, dimension lines get arrow heads at both ends
// and captions are drawn over a halo in the background colour.
//
// The SVG, PNG and PDF sinks take the same [Option] values. Sinks never
// modify the diagram and are safe for concurrent use.
package sink
