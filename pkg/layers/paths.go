package layers

import (
	"math"

	"github.com/pixelczar/tangle-map/pkg/canvas"
	"github.com/pixelczar/tangle-map/pkg/geom"
)

// Route is one meandering path between two clusters.
type Route struct {
	From   int          `json:"from" bson:"from"`
	To     int          `json:"to" bson:"to"`
	Points []geom.Point `json:"points" bson:"points"`
}

// PathsData is the paths layer payload.
type PathsData struct {
	Routes []Route `json:"routes" bson:"routes"`
}

// Paths links neighboring clusters with meandering routes: straight spans
// broken into waypoints, pushed sideways, nudged toward the grid pitch, and
// softened with corner-cutting. With fewer than two clusters the payload is
// empty.
type Paths struct{}

func (*Paths) Name() string { return NamePaths }
func (*Paths) ZIndex() int  { return 50 }

const (
	pathMinWaypoints   = 3
	pathMaxWaypoints   = 6
	pathSmoothingDepth = 3
	// pathGridPull blends waypoints toward the nearest grid line crossing.
	pathGridPull = 0.35
)

func (*Paths) GenerateData(p Params) any {
	d := &PathsData{}
	if len(p.Clusters) < 2 {
		return d
	}

	// Chain consecutive clusters, then close the loop for three or more so
	// the network reads as connected rather than a single strand.
	pairs := make([][2]int, 0, len(p.Clusters))
	for i := 0; i < len(p.Clusters)-1; i++ {
		pairs = append(pairs, [2]int{i, i + 1})
	}
	if len(p.Clusters) > 2 {
		pairs = append(pairs, [2]int{len(p.Clusters) - 1, 0})
	}

	for _, pair := range pairs {
		from, to := p.Clusters[pair[0]], p.Clusters[pair[1]]
		pts := meander(p, from.Center(), to.Center())
		d.Routes = append(d.Routes, Route{
			From:   from.ID,
			To:     to.ID,
			Points: geom.Chaikin(pts, pathSmoothingDepth),
		})
	}
	return d
}

// meander builds the raw waypoint chain from a to b: evenly spaced stations
// pushed laterally by a bounded random offset, then pulled toward the
// nearest grid line so routes echo the pitch.
func meander(p Params, a, b geom.Point) []geom.Point {
	n := p.Rand.IntBetween(pathMinWaypoints, pathMaxWaypoints)

	spread := 30.0
	if p.Grid != nil && p.Grid.Spacing > 0 {
		spread = p.Grid.Spacing * 0.6
	}

	// Unit normal of the straight span.
	d := b.Sub(a)
	length := math.Hypot(d.X, d.Y)
	if length == 0 {
		return []geom.Point{a, b}
	}
	nx, ny := -d.Y/length, d.X/length

	pts := make([]geom.Point, 0, n+2)
	pts = append(pts, a)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n+1)
		base := geom.Lerp(a, b, t)
		offset := p.Rand.FloatBetween(-spread, spread)
		wp := geom.Point{X: base.X + nx*offset, Y: base.Y + ny*offset}
		if p.Grid != nil {
			wp = pullToGrid(wp, p.Grid)
		}
		pts = append(pts, wp)
	}
	pts = append(pts, b)
	return pts
}

// pullToGrid blends a waypoint toward the nearest grid crossing.
func pullToGrid(p geom.Point, grid *GridData) geom.Point {
	if gx, ok := nearest(grid.Verticals, p.X); ok {
		p.X += (gx - p.X) * pathGridPull
	}
	if gy, ok := nearest(grid.Horizontals, p.Y); ok {
		p.Y += (gy - p.Y) * pathGridPull
	}
	return p
}

func nearest(values []float64, v float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	best := values[0]
	for _, x := range values[1:] {
		if math.Abs(x-v) < math.Abs(best-v) {
			best = x
		}
	}
	return best, true
}

func (*Paths) Render(cv canvas.Canvas, data any, p Params, opacity float64) {
	d, ok := data.(*PathsData)
	if !ok || d == nil {
		return
	}
	style := canvas.Style{Stroke: "#4a4238", Width: 1.8, Opacity: opacity}
	for _, r := range d.Routes {
		cv.Polyline(r.Points, style)
	}
}
