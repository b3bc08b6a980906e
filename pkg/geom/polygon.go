package geom

import (
	"math"

	"github.com/pixelczar/tangle-map/pkg/random"
)

// placementAttempts bounds rejection sampling in PlaceInPolygon. Candidates
// that fail every attempt are dropped rather than retried forever.
const placementAttempts = 10

// Area returns the absolute shoelace area of the polygon. Polygons with
// fewer than three vertices have zero area.
func Area(poly Polygon) float64 {
	if len(poly) < 3 {
		return 0
	}
	sum := 0.0
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}

// Contains reports whether p lies inside the polygon using the ray-casting
// parity test. Points exactly on an edge follow the parity convention of the
// strict inequality below; callers must not rely on a particular answer for
// boundary points beyond its consistency.
func Contains(poly Polygon, p Point) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			x := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Centroid returns the vertex average of the polygon. Returns the zero point
// for an empty polygon.
func Centroid(poly Polygon) Point {
	if len(poly) == 0 {
		return Point{}
	}
	var c Point
	for _, p := range poly {
		c.X += p.X
		c.Y += p.Y
	}
	c.X /= float64(len(poly))
	c.Y /= float64(len(poly))
	return c
}

// Bounds returns the axis-aligned bounding box of the polygon. Returns the
// zero rectangle for an empty polygon.
func Bounds(poly Polygon) Rect {
	if len(poly) == 0 {
		return Rect{}
	}
	minX, minY := poly[0].X, poly[0].Y
	maxX, maxY := minX, minY
	for _, p := range poly[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// PlaceInPolygon draws uniform candidates inside the polygon's bounding box
// until one lands inside the polygon, up to a bounded number of attempts.
// The second return value is false when every attempt missed, in which case
// the caller should drop the candidate.
//
// Each attempt consumes exactly two draws, hit or miss, so the number of
// draws consumed depends only on how many attempts ran.
func PlaceInPolygon(rnd *random.Stream, poly Polygon) (Point, bool) {
	box := Bounds(poly)
	if box.W <= 0 || box.H <= 0 {
		return Point{}, false
	}
	for i := 0; i < placementAttempts; i++ {
		p := Point{
			X: rnd.FloatBetween(box.X, box.X+box.W),
			Y: rnd.FloatBetween(box.Y, box.Y+box.H),
		}
		if Contains(poly, p) {
			return p, true
		}
	}
	return Point{}, false
}
