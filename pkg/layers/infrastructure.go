package layers

import (
	"math"

	"github.com/pixelczar/tangle-map/pkg/canvas"
	"github.com/pixelczar/tangle-map/pkg/geom"
)

// InfraData is the infrastructure layer payload. Endpoints are exported for
// the flow and particles layers, which place crossings and sprays on them.
type InfraData struct {
	Lines     []Segment    `json:"lines" bson:"lines"`
	Endpoints []geom.Point `json:"endpoints" bson:"endpoints"`
}

// Infrastructure spans the composition with a utility-line network: each
// cluster throws a few long radiating lines, and lines that would cross an
// already accepted one are truncated at the crossing so the network stays
// planar.
type Infrastructure struct{}

func (*Infrastructure) Name() string { return NameInfrastructure }
func (*Infrastructure) ZIndex() int  { return 60 }

const (
	infraMinLines  = 2
	infraMaxLines  = 4
	infraMinLength = 150.0
	infraMaxLength = 450.0
)

func (*Infrastructure) GenerateData(p Params) any {
	d := &InfraData{}
	rect := p.canvasRect()

	for _, c := range p.Clusters {
		n := p.Rand.IntBetween(infraMinLines, infraMaxLines)
		for i := 0; i < n; i++ {
			theta := p.Rand.Angle()
			length := p.Rand.FloatBetween(infraMinLength, infraMaxLength)
			line := Segment{
				A: c.Center(),
				B: geom.Point{
					X: c.X + math.Cos(theta)*length,
					Y: c.Y + math.Sin(theta)*length,
				},
			}
			line.B = clampToRect(line.B, rect)
			line = truncateAtCrossing(line, d.Lines)
			d.Lines = append(d.Lines, line)
			d.Endpoints = append(d.Endpoints, line.A, line.B)
		}
	}
	return d
}

// truncateAtCrossing cuts the line at its nearest intersection with the
// already accepted lines. Near-parallel pairs are left alone; without any
// crossing the line is returned unchanged.
func truncateAtCrossing(line Segment, accepted []Segment) Segment {
	best := line.B
	bestDist := math.Inf(1)
	for _, other := range accepted {
		hit, ok := geom.SegmentIntersection(line.A, line.B, other.A, other.B)
		if !ok {
			continue
		}
		if d := geom.Dist(line.A, hit); d > 1e-9 && d < bestDist {
			best, bestDist = hit, d
		}
	}
	line.B = best
	return line
}

func clampToRect(p geom.Point, r geom.Rect) geom.Point {
	p.X = math.Max(r.X, math.Min(r.X+r.W, p.X))
	p.Y = math.Max(r.Y, math.Min(r.Y+r.H, p.Y))
	return p
}

func (*Infrastructure) Render(cv canvas.Canvas, data any, p Params, opacity float64) {
	d, ok := data.(*InfraData)
	if !ok || d == nil {
		return
	}
	line := canvas.Style{Stroke: "#2f2a24", Width: 0.9, Opacity: 0.8 * opacity}
	pole := canvas.Style{Fill: "#2f2a24", Opacity: opacity}
	for _, s := range d.Lines {
		cv.Line(s.A, s.B, line)
	}
	for _, e := range d.Endpoints {
		cv.Circle(e, 1.8, pole)
	}
}
