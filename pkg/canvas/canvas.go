// Package canvas abstracts the drawing surface the layer renderers paint
// onto. Two implementations are provided: an SVG writer that builds the
// document into a buffer, and a raster canvas backed by fogleman/gg that
// encodes to PNG.
package canvas

import "github.com/pixelczar/tangle-map/pkg/geom"

// Style describes how a primitive is painted. An empty Stroke or Fill
// disables that half of the style. Opacity 0 is treated as fully opaque so
// the zero value stays usable.
type Style struct {
	Stroke  string  // stroke color, e.g. "#1a1a2e"
	Width   float64 // stroke width in pixels
	Fill    string  // fill color; empty means no fill
	Opacity float64 // 0 or 1 = opaque
}

// Canvas is the drawing surface contract. Implementations are not safe for
// concurrent use.
type Canvas interface {
	// Size returns the surface dimensions in pixels.
	Size() (w, h float64)

	// Clear fills the whole surface with the given color.
	Clear(color string)

	// Line draws a single segment.
	Line(a, b geom.Point, s Style)

	// Polyline draws an open path through the points.
	Polyline(pts []geom.Point, s Style)

	// Polygon draws a closed path, filling it when the style has a fill.
	Polygon(poly geom.Polygon, s Style)

	// Circle draws a circle, filling it when the style has a fill.
	Circle(c geom.Point, r float64, s Style)

	// Encode finalizes the surface and returns the artifact bytes.
	Encode() ([]byte, error)
}

// alpha resolves a style opacity to the effective alpha in (0, 1].
func alpha(s Style) float64 {
	if s.Opacity <= 0 || s.Opacity > 1 {
		return 1
	}
	return s.Opacity
}
