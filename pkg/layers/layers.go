// Package layers implements the content generators of the composition
// engine and the two-phase contract they share.
//
// # Contract
//
// Every generator implements [Generator]: a pure data-generation phase and a
// draw phase. GenerateData may consume the shared random stream's cursor and
// query its noise field; Render must never touch the stream and consumes
// only previously generated data. This split is what makes the determinism
// invariant structural: the pipeline generates every layer on every pass
// regardless of visibility, and visibility decides only what gets drawn.
//
// # Cross-layer inputs
//
// Generators see other layers only through the explicitly injected fields of
// [Params]: the grid layer's output is injected for everyone generated after
// it, and the infrastructure layer's endpoints are injected for the flow and
// particles layers. A generator must treat missing optional inputs as empty.
//
// # Generators
//
// Seven generators are provided: grid, plots, boundaries, paths,
// infrastructure, flow, and particles. Registration order (which is
// generation order) and z-index (paint order) are deliberately different:
// the river paints just above the grid but generates late, because it needs
// the infrastructure endpoints.
package layers

import (
	"github.com/pixelczar/tangle-map/pkg/canvas"
	"github.com/pixelczar/tangle-map/pkg/cluster"
	"github.com/pixelczar/tangle-map/pkg/geom"
	"github.com/pixelczar/tangle-map/pkg/random"
)

// Layer names. The pipeline keys its registry and data store by these.
const (
	NameGrid           = "grid"
	NamePlots          = "plots"
	NameBoundaries     = "boundaries"
	NamePaths          = "paths"
	NameInfrastructure = "infrastructure"
	NameFlow           = "flow"
	NameParticles      = "particles"
)

// Segment is a single line segment.
type Segment struct {
	A geom.Point `json:"a" bson:"a"`
	B geom.Point `json:"b" bson:"b"`
}

// Params carries everything a generator may read: canvas geometry, the
// shared random stream, the cluster set, and the injected outputs of
// previously generated layers.
type Params struct {
	Width        float64
	Height       float64
	Padding      float64
	ClusterCount int

	// Rand is the shared stream. Render implementations must not use it.
	Rand *random.Stream

	// Clusters is the field generated before any layer runs.
	Clusters []cluster.Cluster

	// Grid is the foundational layer's output, injected for every layer
	// generated after it. Nil while the grid layer itself generates.
	Grid *GridData

	// Infrastructure is injected for the flow and particles layers only.
	Infrastructure *InfraData

	// Boundaries is injected for the particles layer only.
	Boundaries *BoundariesData
}

// canvasRect returns the padded drawing region.
func (p Params) canvasRect() geom.Rect {
	return geom.Rect{W: p.Width, H: p.Height}.Inset(p.Padding)
}

// State is the render-time visibility of one layer. It is owned by the
// pipeline, not the generator, and has no influence on data generation.
type State struct {
	Enabled bool    `json:"enabled" bson:"enabled"`
	Opacity float64 `json:"opacity" bson:"opacity"`
}

// Generator is the capability interface every content layer implements.
type Generator interface {
	// Name identifies the layer in the registry and data store.
	Name() string

	// ZIndex fixes the layer's position in paint order (ascending).
	ZIndex() int

	// GenerateData derives the layer's geometry payload from params and the
	// shared stream. Degenerate or insufficient input yields an empty
	// payload, never an error mid-pass.
	GenerateData(p Params) any

	// Render draws previously generated data. It must tolerate data from
	// any prior GenerateData call and must not consume the random stream.
	Render(cv canvas.Canvas, data any, p Params, opacity float64)
}

// All returns the seven standard generators in generation order: the grid
// first (its output feeds everyone), infrastructure before the flow and
// particle layers that consume its endpoints.
func All() []Generator {
	return []Generator{
		&Grid{},
		&Plots{},
		&Boundaries{},
		&Paths{},
		&Infrastructure{},
		&Flow{},
		&Particles{},
	}
}
