package layers

import (
	"github.com/pixelczar/tangle-map/pkg/canvas"
	"github.com/pixelczar/tangle-map/pkg/geom"
)

// ClusterPlots is one cluster's radiating subdivision plus the marks where
// its outer edges cross grid lines.
type ClusterPlots struct {
	ClusterID int          `json:"cluster_id" bson:"cluster_id"`
	Center    geom.Point   `json:"center" bson:"center"`
	Wedges    []geom.Wedge `json:"wedges" bson:"wedges"`
	GridMarks []geom.Point `json:"grid_marks" bson:"grid_marks"`
}

// PlotsData is the plots layer payload.
type PlotsData struct {
	Plots []ClusterPlots `json:"plots" bson:"plots"`
}

// Plots subdivides the area around each cluster into radiating town-plot
// wedges and marks where the plot rims cross the grid, tying the radial
// structure back to the underlying pitch.
type Plots struct{}

func (*Plots) Name() string { return NamePlots }
func (*Plots) ZIndex() int  { return 40 }

// plotRadiusFactor shrinks the subdivision slightly inside the cluster
// radius so rims stay clear of neighboring content.
const plotRadiusFactor = 0.9

func (*Plots) GenerateData(p Params) any {
	d := &PlotsData{}
	for _, c := range p.Clusters {
		wedges := geom.Wedges(p.Rand, c.Center(), c.Radius*plotRadiusFactor, nil)
		if wedges == nil {
			continue
		}
		cp := ClusterPlots{
			ClusterID: c.ID,
			Center:    c.Center(),
			Wedges:    wedges,
		}
		if p.Grid != nil {
			cp.GridMarks = gridMarks(c.Center(), wedges, p.Grid)
		}
		d.Plots = append(d.Plots, cp)
	}
	return d
}

// gridMarks collects the points where wedge rims cross nearby grid lines.
// Lines that miss a rim circle contribute nothing; solutions outside a
// wedge's angular span are rejected inside the intersection helper.
func gridMarks(center geom.Point, wedges []geom.Wedge, grid *GridData) []geom.Point {
	var marks []geom.Point
	for _, w := range wedges {
		for _, x := range grid.Verticals {
			marks = append(marks, geom.ArcLineIntersections(center, w.Outer, geom.Vertical, x, w.Start, w.End)...)
		}
		for _, y := range grid.Horizontals {
			marks = append(marks, geom.ArcLineIntersections(center, w.Outer, geom.Horizontal, y, w.Start, w.End)...)
		}
	}
	return marks
}

func (*Plots) Render(cv canvas.Canvas, data any, p Params, opacity float64) {
	d, ok := data.(*PlotsData)
	if !ok || d == nil {
		return
	}
	outline := canvas.Style{Stroke: "#7a6a53", Width: 1.1, Opacity: opacity}
	mark := canvas.Style{Fill: "#7a6a53", Opacity: 0.6 * opacity}
	for _, cp := range d.Plots {
		for _, w := range cp.Wedges {
			cv.Polygon(w.Outline, outline)
		}
		for _, m := range cp.GridMarks {
			cv.Circle(m, 1.4, mark)
		}
	}
}
