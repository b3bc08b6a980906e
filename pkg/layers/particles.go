package layers

import (
	"math"

	"github.com/pixelczar/tangle-map/pkg/canvas"
	"github.com/pixelczar/tangle-map/pkg/geom"
)

// Particle is a single spray point.
type Particle struct {
	X    float64 `json:"x" bson:"x"`
	Y    float64 `json:"y" bson:"y"`
	Size float64 `json:"size" bson:"size"`
}

// ParticlesData is the particles layer payload.
type ParticlesData struct {
	Points []Particle `json:"points" bson:"points"`
}

// Particles sprays texture points into the boundary regions, with density
// scaled to each region's shoelace area, and around the infrastructure
// endpoints. Region placement uses bounded rejection sampling: a candidate
// that misses the polygon ten times is dropped, never retried forever.
type Particles struct{}

func (*Particles) Name() string { return NameParticles }
func (*Particles) ZIndex() int  { return 70 }

const (
	// particleAreaDivisor converts region area to a particle budget.
	particleAreaDivisor = 900.0
	particleMaxPerShape = 80
	particleMinSize     = 0.6
	particleMaxSize     = 2.2

	sprayMinPoints = 5
	sprayMaxPoints = 12
	sprayRadius    = 22.0
)

func (*Particles) GenerateData(p Params) any {
	d := &ParticlesData{}

	if p.Boundaries != nil {
		for _, r := range p.Boundaries.Regions {
			budget := int(r.Area / particleAreaDivisor)
			if budget > particleMaxPerShape {
				budget = particleMaxPerShape
			}
			for i := 0; i < budget; i++ {
				pt, ok := geom.PlaceInPolygon(p.Rand, r.Outline)
				size := p.Rand.FloatBetween(particleMinSize, particleMaxSize)
				if !ok {
					continue // dropped candidate; size draw still consumed
				}
				d.Points = append(d.Points, Particle{X: pt.X, Y: pt.Y, Size: size})
			}
		}
	}

	if p.Infrastructure != nil {
		for _, e := range p.Infrastructure.Endpoints {
			n := p.Rand.IntBetween(sprayMinPoints, sprayMaxPoints)
			for i := 0; i < n; i++ {
				theta := p.Rand.Angle()
				dist := p.Rand.FloatBetween(2, sprayRadius)
				size := p.Rand.FloatBetween(particleMinSize, particleMaxSize)
				d.Points = append(d.Points, Particle{
					X:    e.X + math.Cos(theta)*dist,
					Y:    e.Y + math.Sin(theta)*dist,
					Size: size,
				})
			}
		}
	}

	return d
}

func (*Particles) Render(cv canvas.Canvas, data any, p Params, opacity float64) {
	d, ok := data.(*ParticlesData)
	if !ok || d == nil {
		return
	}
	style := canvas.Style{Fill: "#5d5345", Opacity: 0.65 * opacity}
	for _, pt := range d.Points {
		cv.Circle(geom.Point{X: pt.X, Y: pt.Y}, pt.Size, style)
	}
}
