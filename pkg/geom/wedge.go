package geom

import (
	"math"

	"github.com/pixelczar/tangle-map/pkg/random"
)

// EdgeStyle selects how a wedge's outer edge is drawn.
type EdgeStyle int

const (
	// EdgeArc follows the outer radius exactly.
	EdgeArc EdgeStyle = iota
	// EdgeOrganic perturbs the outer radius with position-keyed noise.
	EdgeOrganic
	// EdgeChord is a straight chord with a slightly jittered midpoint.
	EdgeChord
)

// Wedge is one angular sector of a radiating plot subdivision.
type Wedge struct {
	Start   float64   `json:"start" bson:"start"`
	End     float64   `json:"end" bson:"end"`
	Inner   float64   `json:"inner" bson:"inner"`
	Outer   float64   `json:"outer" bson:"outer"`
	Style   EdgeStyle `json:"style" bson:"style"`
	Outline Polygon   `json:"outline" bson:"outline"`
}

// WedgeOptions configures [Wedges].
type WedgeOptions struct {
	// MinSectors and MaxSectors bound the randomized sector count.
	// Defaults: 7 and 12.
	MinSectors int
	MaxSectors int

	// InnerMin/InnerMax bound the inner radius as a fraction of the full
	// radius. Defaults: 0.15 and 0.35.
	InnerMin float64
	InnerMax float64

	// OuterMin/OuterMax bound the outer radius as a fraction of the full
	// radius. Defaults: 0.70 and 1.0.
	OuterMin float64
	OuterMax float64

	// ArcSteps is the number of segments used to sample each arc edge.
	// Default: 8.
	ArcSteps int
}

var defaultWedgeOpts = WedgeOptions{
	MinSectors: 7,
	MaxSectors: 12,
	InnerMin:   0.15,
	InnerMax:   0.35,
	OuterMin:   0.70,
	OuterMax:   1.0,
	ArcSteps:   8,
}

// Wedges partitions a full turn around center into a randomized number of
// sectors, each with independently randomized angular width, inner and outer
// radius, and one of three outer-edge styles. The result is the radiating
// "town plot" subdivision used by the plots layer.
//
// The sector count, widths, radii, and styles consume cursor draws in a
// fixed order, so the same stream state always yields the same subdivision.
// Pass nil for opts to use defaults. A non-positive radius yields nil.
func Wedges(rnd *random.Stream, center Point, radius float64, opts *WedgeOptions) []Wedge {
	if opts == nil {
		opts = &defaultWedgeOpts
	}
	if radius <= 0 {
		return nil
	}

	m := rnd.IntBetween(opts.MinSectors, opts.MaxSectors)
	if m < 1 {
		return nil
	}

	// Randomized widths, normalized to cover the full turn.
	weights := make([]float64, m)
	total := 0.0
	for i := range weights {
		weights[i] = rnd.FloatBetween(0.5, 1.5)
		total += weights[i]
	}

	wedges := make([]Wedge, 0, m)
	angle := rnd.Angle() // random rotation of the whole subdivision
	for i := 0; i < m; i++ {
		span := weights[i] / total * 2 * math.Pi
		w := Wedge{
			Start: angle,
			End:   angle + span,
			Inner: radius * rnd.FloatBetween(opts.InnerMin, opts.InnerMax),
			Outer: radius * rnd.FloatBetween(opts.OuterMin, opts.OuterMax),
			Style: EdgeStyle(rnd.IntBetween(0, 2)),
		}
		w.Outline = wedgeOutline(rnd, center, w, opts.ArcSteps)
		wedges = append(wedges, w)
		angle += span
	}
	return wedges
}

// wedgeOutline realizes a wedge as a closed polygon: inner arc from start to
// end, then the outer edge walked back from end to start.
func wedgeOutline(rnd *random.Stream, center Point, w Wedge, steps int) Polygon {
	if steps < 1 {
		steps = defaultWedgeOpts.ArcSteps
	}

	outline := make(Polygon, 0, 2*steps+2)
	for i := 0; i <= steps; i++ {
		theta := w.Start + (w.End-w.Start)*float64(i)/float64(steps)
		outline = append(outline, onCircle(center, w.Inner, theta))
	}

	switch w.Style {
	case EdgeChord:
		// Straight chord with one jittered midpoint.
		a := onCircle(center, w.Outer, w.End)
		b := onCircle(center, w.Outer, w.Start)
		mid := Lerp(a, b, 0.5)
		mid.X += rnd.FloatBetween(-0.03, 0.03) * w.Outer
		mid.Y += rnd.FloatBetween(-0.03, 0.03) * w.Outer
		outline = append(outline, a, mid, b)
	case EdgeOrganic:
		for i := 0; i <= steps; i++ {
			theta := w.End - (w.End-w.Start)*float64(i)/float64(steps)
			r := w.Outer
			n := rnd.Noise(center.X+theta*10, center.Y+w.Outer, 1)
			r += (n - 0.5) * 0.12 * w.Outer
			outline = append(outline, onCircle(center, r, theta))
		}
	default: // EdgeArc
		for i := 0; i <= steps; i++ {
			theta := w.End - (w.End-w.Start)*float64(i)/float64(steps)
			outline = append(outline, onCircle(center, w.Outer, theta))
		}
	}
	return outline
}

func onCircle(c Point, r, theta float64) Point {
	return Point{X: c.X + math.Cos(theta)*r, Y: c.Y + math.Sin(theta)*r}
}
