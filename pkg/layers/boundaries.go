package layers

import (
	"github.com/pixelczar/tangle-map/pkg/canvas"
	"github.com/pixelczar/tangle-map/pkg/geom"
)

// Region is one cluster's organic boundary: the raw synthesized polygon and
// its corner-cut softened form, plus the shoelace area the particles layer
// uses to scale spray density.
type Region struct {
	ClusterID int          `json:"cluster_id" bson:"cluster_id"`
	Outline   geom.Polygon `json:"outline" bson:"outline"`
	Softened  geom.Polygon `json:"softened" bson:"softened"`
	Area      float64      `json:"area" bson:"area"`
}

// BoundariesData is the boundaries layer payload.
type BoundariesData struct {
	Regions []Region `json:"regions" bson:"regions"`
}

// Boundaries wraps each cluster in an organic noise-perturbed boundary
// polygon, softened with corner-cutting.
type Boundaries struct{}

func (*Boundaries) Name() string { return NameBoundaries }
func (*Boundaries) ZIndex() int  { return 30 }

// boundaryRadiusFactor pushes the boundary slightly outside the cluster
// radius so it reads as a region, not a circle outline.
const boundaryRadiusFactor = 1.15

// boundarySoftenIterations is the corner-cutting depth for the drawn form.
const boundarySoftenIterations = 2

func (*Boundaries) GenerateData(p Params) any {
	d := &BoundariesData{}
	for _, c := range p.Clusters {
		// Stronger clusters get rougher coastlines.
		opts := geom.BoundaryOptions{
			Samples:     24,
			LowAmp:      0.18 + 0.12*c.Intensity,
			HighAmp:     0.05 + 0.06*c.Intensity,
			Jitter:      0.06,
			AngleJitter: 0.05,
		}
		outline := geom.Boundary(p.Rand, c.Center(), c.Radius*boundaryRadiusFactor, &opts)
		if outline == nil {
			continue
		}
		d.Regions = append(d.Regions, Region{
			ClusterID: c.ID,
			Outline:   outline,
			Softened:  geom.ChaikinClosed(outline, boundarySoftenIterations),
			Area:      geom.Area(outline),
		})
	}
	return d
}

func (*Boundaries) Render(cv canvas.Canvas, data any, p Params, opacity float64) {
	d, ok := data.(*BoundariesData)
	if !ok || d == nil {
		return
	}
	fill := canvas.Style{Fill: "#ece5d8", Opacity: 0.55 * opacity}
	edge := canvas.Style{Stroke: "#8c7b64", Width: 1.4, Opacity: opacity}
	for _, r := range d.Regions {
		cv.Polygon(r.Softened, fill)
		cv.Polygon(r.Softened, edge)
	}
}
