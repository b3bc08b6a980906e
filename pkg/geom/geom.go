// Package geom provides the stateless computational-geometry primitives the
// layer generators share: polygon tests, intersections, curve smoothing,
// organic boundary synthesis, and angular wedge subdivision.
//
// All functions are pure. The only source of randomness is an explicitly
// passed *random.Stream; nothing in this package holds state between calls.
//
// Degenerate inputs (near-parallel segments, negative discriminants, empty
// polygons) are handled by skipping the offending candidate rather than
// returning an error: the composition tolerates missing optional detail.
package geom

import "math"

// Point is a 2D point or vector in canvas coordinates.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Polygon is a closed region. The closing edge from the last vertex back to
// the first is implicit; the first vertex is not repeated.
type Polygon []Point

// Rect is an axis-aligned rectangle.
type Rect struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	W float64 `json:"w" bson:"w"`
	H float64 `json:"h" bson:"h"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dist returns the Euclidean distance between p and q.
func Dist(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp returns the point a fraction t of the way from p to q.
func Lerp(p, q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Inset returns the rectangle shrunk by pad on every side. A pad larger than
// half the extent collapses that axis to zero size at the center.
func (r Rect) Inset(pad float64) Rect {
	w := math.Max(0, r.W-2*pad)
	h := math.Max(0, r.H-2*pad)
	return Rect{
		X: r.X + (r.W-w)/2,
		Y: r.Y + (r.H-h)/2,
		W: w,
		H: h,
	}
}

// Contains reports whether the point lies inside or on the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}
