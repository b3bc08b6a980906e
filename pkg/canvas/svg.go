package canvas

import (
	"bytes"
	"fmt"

	"github.com/pixelczar/tangle-map/pkg/geom"
)

// SVG builds an SVG document incrementally into a buffer.
type SVG struct {
	w, h float64
	buf  bytes.Buffer
}

// NewSVG creates an SVG canvas with the given pixel dimensions.
func NewSVG(w, h float64) *SVG {
	s := &SVG{w: w, h: h}
	fmt.Fprintf(&s.buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	return s
}

// Size returns the surface dimensions.
func (s *SVG) Size() (float64, float64) { return s.w, s.h }

// Clear paints a full-surface background rectangle.
func (s *SVG) Clear(color string) {
	fmt.Fprintf(&s.buf, `<rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", s.w, s.h, color)
}

// Line draws a single segment.
func (s *SVG) Line(a, b geom.Point, st Style) {
	fmt.Fprintf(&s.buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"%s/>`+"\n",
		a.X, a.Y, b.X, b.Y, styleAttrs(st))
}

// Polyline draws an open path.
func (s *SVG) Polyline(pts []geom.Point, st Style) {
	if len(pts) < 2 {
		return
	}
	fmt.Fprintf(&s.buf, `<path d="%s"%s/>`+"\n", pathData(pts, false), styleAttrs(st))
}

// Polygon draws a closed path.
func (s *SVG) Polygon(poly geom.Polygon, st Style) {
	if len(poly) < 3 {
		return
	}
	fmt.Fprintf(&s.buf, `<path d="%s"%s/>`+"\n", pathData(poly, true), styleAttrs(st))
}

// Circle draws a circle.
func (s *SVG) Circle(c geom.Point, r float64, st Style) {
	if r <= 0 {
		return
	}
	fmt.Fprintf(&s.buf, `<circle cx="%.2f" cy="%.2f" r="%.2f"%s/>`+"\n", c.X, c.Y, r, styleAttrs(st))
}

// Encode closes the document and returns the SVG bytes. The canvas remains
// usable: further drawing appends before a fresh closing tag on the next
// Encode call.
func (s *SVG) Encode() ([]byte, error) {
	out := make([]byte, 0, s.buf.Len()+8)
	out = append(out, s.buf.Bytes()...)
	out = append(out, []byte("</svg>\n")...)
	return out, nil
}

func pathData(pts []geom.Point, closed bool) string {
	var b bytes.Buffer
	for i, p := range pts {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s%.2f %.2f ", cmd, p.X, p.Y)
	}
	if closed {
		b.WriteString("Z")
	}
	return b.String()
}

func styleAttrs(st Style) string {
	var b bytes.Buffer
	if st.Stroke != "" {
		w := st.Width
		if w <= 0 {
			w = 1
		}
		fmt.Fprintf(&b, ` stroke="%s" stroke-width="%.2f"`, st.Stroke, w)
	}
	if st.Fill != "" {
		fmt.Fprintf(&b, ` fill="%s"`, st.Fill)
	} else {
		b.WriteString(` fill="none"`)
	}
	if a := alpha(st); a < 1 {
		fmt.Fprintf(&b, ` opacity="%.2f"`, a)
	}
	return b.String()
}

// Ensure SVG implements Canvas.
var _ Canvas = (*SVG)(nil)
