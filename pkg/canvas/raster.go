package canvas

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"

	"github.com/pixelczar/tangle-map/pkg/geom"
)

// Raster is a PNG canvas backed by a fogleman/gg drawing context.
type Raster struct {
	w, h  float64
	scale float64
	dc    *gg.Context
}

// NewRaster creates a raster canvas with the given logical dimensions,
// rendered at scale× resolution (2 is a sensible default for crisp output).
func NewRaster(w, h, scale float64) *Raster {
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(int(w*scale), int(h*scale))
	dc.Scale(scale, scale)
	return &Raster{w: w, h: h, scale: scale, dc: dc}
}

// Size returns the logical surface dimensions.
func (r *Raster) Size() (float64, float64) { return r.w, r.h }

// Clear fills the surface with the given color.
func (r *Raster) Clear(color string) {
	r.dc.SetHexColor(color)
	r.dc.Clear()
}

// Line draws a single segment.
func (r *Raster) Line(a, b geom.Point, s Style) {
	r.dc.NewSubPath()
	r.dc.MoveTo(a.X, a.Y)
	r.dc.LineTo(b.X, b.Y)
	r.paint(s)
}

// Polyline draws an open path.
func (r *Raster) Polyline(pts []geom.Point, s Style) {
	if len(pts) < 2 {
		return
	}
	r.tracePath(pts, false)
	r.paint(s)
}

// Polygon draws a closed path.
func (r *Raster) Polygon(poly geom.Polygon, s Style) {
	if len(poly) < 3 {
		return
	}
	r.tracePath(poly, true)
	r.paint(s)
}

// Circle draws a circle.
func (r *Raster) Circle(c geom.Point, radius float64, s Style) {
	if radius <= 0 {
		return
	}
	r.dc.DrawCircle(c.X, c.Y, radius)
	r.paint(s)
}

// Encode returns the surface as PNG bytes.
func (r *Raster) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Raster) tracePath(pts []geom.Point, closed bool) {
	r.dc.NewSubPath()
	r.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	if closed {
		r.dc.ClosePath()
	}
}

// paint applies the style to the current path: fill first so strokes stay
// on top, then stroke.
func (r *Raster) paint(s Style) {
	a := alpha(s)
	if s.Fill != "" {
		fr, fg, fb := hexRGB(s.Fill)
		r.dc.SetRGBA(fr, fg, fb, a)
		if s.Stroke != "" {
			r.dc.FillPreserve()
		} else {
			r.dc.Fill()
		}
	}
	if s.Stroke != "" {
		w := s.Width
		if w <= 0 {
			w = 1
		}
		sr, sg, sb := hexRGB(s.Stroke)
		r.dc.SetRGBA(sr, sg, sb, a)
		r.dc.SetLineWidth(w)
		r.dc.Stroke()
	}
}

// hexRGB parses "#rgb" or "#rrggbb" into unit-range components. Unparseable
// colors fall back to black.
func hexRGB(s string) (float64, float64, float64) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var r, g, b uint8
	switch len(s) {
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err == nil {
			return float64(r) / 15, float64(g) / 15, float64(b) / 15
		}
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err == nil {
			return float64(r) / 255, float64(g) / 255, float64(b) / 255
		}
	}
	return 0, 0, 0
}

// Ensure Raster implements Canvas.
var _ Canvas = (*Raster)(nil)
