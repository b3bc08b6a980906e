package layers

import (
	"math"

	"github.com/pixelczar/tangle-map/pkg/canvas"
	"github.com/pixelczar/tangle-map/pkg/geom"
)

// FlowData is the flow layer payload: a river centerline, the ribbon
// polygon it is widened into, and the infrastructure crossings along it.
type FlowData struct {
	Center    []geom.Point `json:"center" bson:"center"`
	Ribbon    geom.Polygon `json:"ribbon" bson:"ribbon"`
	Width     float64      `json:"width" bson:"width"`
	Crossings []geom.Point `json:"crossings" bson:"crossings"`
}

// Flow carves a meandering river across the canvas. The centerline wanders
// under position-keyed noise plus a little cursor jitter, gets softened with
// corner-cutting, and is widened into a closed ribbon. Infrastructure
// endpoints near the centerline become crossings; with no infrastructure
// output injected there simply are none.
type Flow struct{}

func (*Flow) Name() string { return NameFlow }
func (*Flow) ZIndex() int  { return 20 }

const (
	flowSteps          = 20
	flowMinWidth       = 14.0
	flowMaxWidth       = 38.0
	flowWander         = 0.35 // noise deflection as a fraction of canvas height
	flowJitter         = 8.0  // per-step cursor jitter in pixels
	flowSmoothingDepth = 2
	// flowCrossingReach is the distance within which an infrastructure
	// endpoint snaps onto the river as a crossing.
	flowCrossingReach = 30.0
)

func (*Flow) GenerateData(p Params) any {
	d := &FlowData{}
	if p.Width <= 0 || p.Height <= 0 {
		return d
	}

	d.Width = p.Rand.FloatBetween(flowMinWidth, flowMaxWidth)
	entry := p.Rand.FloatBetween(p.Height*0.25, p.Height*0.75)

	// March left to right; the noise term keeps the overall course stable
	// for a seed while the jitter term roughens it.
	raw := make([]geom.Point, 0, flowSteps+1)
	for i := 0; i <= flowSteps; i++ {
		x := p.Width * float64(i) / flowSteps
		n := p.Rand.Noise(x, entry, 0.01)
		y := entry + (n-0.5)*p.Height*flowWander
		y += p.Rand.FloatBetween(-flowJitter, flowJitter)
		y = math.Max(0, math.Min(p.Height, y))
		raw = append(raw, geom.Point{X: x, Y: y})
	}

	d.Center = geom.Chaikin(raw, flowSmoothingDepth)
	d.Ribbon = ribbon(d.Center, d.Width)

	if p.Infrastructure != nil {
		d.Crossings = crossings(d.Center, p.Infrastructure.Endpoints)
	}
	return d
}

// ribbon widens a centerline into a closed polygon by offsetting each point
// along the local normal: down one bank, back up the other.
func ribbon(center []geom.Point, width float64) geom.Polygon {
	if len(center) < 2 {
		return nil
	}
	half := width / 2
	poly := make(geom.Polygon, 0, 2*len(center))
	for i := range center {
		nx, ny := normalAt(center, i)
		poly = append(poly, geom.Point{X: center[i].X + nx*half, Y: center[i].Y + ny*half})
	}
	for i := len(center) - 1; i >= 0; i-- {
		nx, ny := normalAt(center, i)
		poly = append(poly, geom.Point{X: center[i].X - nx*half, Y: center[i].Y - ny*half})
	}
	return poly
}

// normalAt returns the unit normal of the polyline at index i, using the
// neighboring points for direction. Zero-length spans fall back to a
// vertical normal.
func normalAt(pts []geom.Point, i int) (float64, float64) {
	prev := pts[max(0, i-1)]
	next := pts[min(len(pts)-1, i+1)]
	dx, dy := next.X-prev.X, next.Y-prev.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 0, 1
	}
	return -dy / length, dx / length
}

// crossings snaps infrastructure endpoints within reach onto the nearest
// centerline point.
func crossings(center []geom.Point, endpoints []geom.Point) []geom.Point {
	var out []geom.Point
	for _, e := range endpoints {
		bestDist := math.Inf(1)
		var best geom.Point
		for _, c := range center {
			if d := geom.Dist(e, c); d < bestDist {
				best, bestDist = c, d
			}
		}
		if bestDist <= flowCrossingReach {
			out = append(out, best)
		}
	}
	return out
}

func (*Flow) Render(cv canvas.Canvas, data any, p Params, opacity float64) {
	d, ok := data.(*FlowData)
	if !ok || d == nil || len(d.Ribbon) < 3 {
		return
	}
	water := canvas.Style{Fill: "#b8c9cf", Opacity: 0.7 * opacity}
	bank := canvas.Style{Stroke: "#7f99a1", Width: 1.0, Opacity: opacity}
	cv.Polygon(d.Ribbon, water)
	cv.Polygon(d.Ribbon, bank)

	crossing := canvas.Style{Stroke: "#4d4439", Width: 2.2, Opacity: opacity}
	for _, c := range d.Crossings {
		// Short tick across the river at each crossing.
		cv.Line(geom.Point{X: c.X, Y: c.Y - d.Width/2 - 3}, geom.Point{X: c.X, Y: c.Y + d.Width/2 + 3}, crossing)
	}
}
