package geom

// Chaikin applies k iterations of Chaikin corner-cutting to an open
// polyline. Each iteration replaces every edge with points 1/4 and 3/4 of
// the way along it while keeping the original endpoints fixed, so repeated
// application progressively softens corners without shrinking the path's
// extent. Polylines with fewer than three points are returned unchanged.
func Chaikin(pts []Point, k int) []Point {
	for ; k > 0 && len(pts) >= 3; k-- {
		out := make([]Point, 0, 2*len(pts))
		out = append(out, pts[0])
		for i := 0; i < len(pts)-1; i++ {
			a, b := pts[i], pts[i+1]
			out = append(out, Lerp(a, b, 0.25), Lerp(a, b, 0.75))
		}
		out = append(out, pts[len(pts)-1])
		pts = out
	}
	return pts
}

// ChaikinClosed applies k iterations of corner-cutting to a closed polygon.
// Unlike the open form there are no fixed endpoints; every edge, including
// the implicit closing edge, is cut.
func ChaikinClosed(poly Polygon, k int) Polygon {
	for ; k > 0 && len(poly) >= 3; k-- {
		out := make(Polygon, 0, 2*len(poly))
		for i := range poly {
			a, b := poly[i], poly[(i+1)%len(poly)]
			out = append(out, Lerp(a, b, 0.25), Lerp(a, b, 0.75))
		}
		poly = out
	}
	return poly
}
