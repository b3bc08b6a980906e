package geom

import "math"

// parallelEps is the determinant threshold below which two segments are
// treated as parallel and therefore non-intersecting.
const parallelEps = 1e-10

// SegmentIntersection returns the intersection point of segments a1-a2 and
// b1-b2, if any. Near-parallel segments report no intersection.
func SegmentIntersection(a1, a2, b1, b2 Point) (Point, bool) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)

	det := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(det) < parallelEps {
		return Point{}, false
	}

	d := b1.Sub(a1)
	t := (d.X*d2.Y - d.Y*d2.X) / det
	u := (d.X*d1.Y - d.Y*d1.X) / det
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, false
	}
	return a1.Add(d1.Scale(t)), true
}

// Axis selects the orientation of an axis-aligned line.
type Axis int

const (
	// Vertical lines have constant x.
	Vertical Axis = iota
	// Horizontal lines have constant y.
	Horizontal
)

// ArcLineIntersections returns the points where the axis-aligned line at the
// given coordinate crosses the arc of the circle centered at c with radius r
// spanning [start, end] radians. Lines missing the circle (negative
// discriminant) and chord solutions outside the arc span contribute nothing.
func ArcLineIntersections(c Point, r float64, axis Axis, at, start, end float64) []Point {
	if r <= 0 {
		return nil
	}

	// Perpendicular distance from center to the line.
	var d float64
	if axis == Vertical {
		d = at - c.X
	} else {
		d = at - c.Y
	}

	disc := r*r - d*d
	if disc < 0 {
		return nil
	}
	h := math.Sqrt(disc)

	var candidates []Point
	if axis == Vertical {
		candidates = []Point{{at, c.Y - h}, {at, c.Y + h}}
	} else {
		candidates = []Point{{c.X - h, at}, {c.X + h, at}}
	}
	if h == 0 {
		candidates = candidates[:1] // tangent line touches once
	}

	var pts []Point
	for _, p := range candidates {
		theta := math.Atan2(p.Y-c.Y, p.X-c.X)
		if angleWithin(theta, start, end) {
			pts = append(pts, p)
		}
	}
	return pts
}

// angleWithin reports whether theta lies within the arc span [start, end],
// walking counterclockwise from start. All angles are normalized to [0, 2π).
func angleWithin(theta, start, end float64) bool {
	theta = normalizeAngle(theta)
	start = normalizeAngle(start)
	end = normalizeAngle(end)
	if start <= end {
		return theta >= start && theta <= end
	}
	// Span wraps past 2π.
	return theta >= start || theta <= end
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
