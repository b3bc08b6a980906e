package layers

import (
	"github.com/pixelczar/tangle-map/pkg/canvas"
	"github.com/pixelczar/tangle-map/pkg/geom"
)

// GridData is the foundational layer's output. Spacing and the line
// positions are injected into every later layer's params, since several
// generators align geometry to the grid pitch.
type GridData struct {
	Spacing     float64   `json:"spacing" bson:"spacing"`
	Verticals   []float64 `json:"verticals" bson:"verticals"`
	Horizontals []float64 `json:"horizontals" bson:"horizontals"`
	Segments    []Segment `json:"segments" bson:"segments"`
}

// Grid generates the underlying pitch the composition hangs on: a slightly
// irregular grid with a randomized spacing, per-line jitter, and occasional
// dropped lines.
type Grid struct{}

func (*Grid) Name() string { return NameGrid }
func (*Grid) ZIndex() int  { return 10 }

// Grid generation constants.
const (
	gridMinSpacing = 40.0
	gridMaxSpacing = 80.0
	gridJitter     = 2.5  // max per-line perpendicular offset
	gridDropChance = 0.08 // probability a line is omitted
)

func (*Grid) GenerateData(p Params) any {
	rect := p.canvasRect()
	if rect.W <= 0 || rect.H <= 0 {
		return &GridData{}
	}

	d := &GridData{Spacing: p.Rand.FloatBetween(gridMinSpacing, gridMaxSpacing)}

	for x := rect.X; x <= rect.X+rect.W; x += d.Spacing {
		jitter := p.Rand.FloatBetween(-gridJitter, gridJitter)
		drop := p.Rand.Next() < gridDropChance
		if drop {
			continue
		}
		pos := x + jitter
		d.Verticals = append(d.Verticals, pos)
		d.Segments = append(d.Segments, Segment{
			A: geom.Point{X: pos, Y: rect.Y},
			B: geom.Point{X: pos, Y: rect.Y + rect.H},
		})
	}

	for y := rect.Y; y <= rect.Y+rect.H; y += d.Spacing {
		jitter := p.Rand.FloatBetween(-gridJitter, gridJitter)
		drop := p.Rand.Next() < gridDropChance
		if drop {
			continue
		}
		pos := y + jitter
		d.Horizontals = append(d.Horizontals, pos)
		d.Segments = append(d.Segments, Segment{
			A: geom.Point{X: rect.X, Y: pos},
			B: geom.Point{X: rect.X + rect.W, Y: pos},
		})
	}

	return d
}

func (*Grid) Render(cv canvas.Canvas, data any, p Params, opacity float64) {
	d, ok := data.(*GridData)
	if !ok || d == nil {
		return
	}
	style := canvas.Style{Stroke: "#c8c3b8", Width: 0.6, Opacity: 0.5 * opacity}
	for _, s := range d.Segments {
		cv.Line(s.A, s.B, style)
	}
}
