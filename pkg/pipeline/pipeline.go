// Package pipeline orchestrates composition passes: it owns the layer
// registry, runs the deterministic generation pass, and drives painting.
//
// # Architecture
//
// A [Pipeline] holds generators in two distinct orders:
//
//  1. Generation order: registration order, fixed for the pipeline's
//     lifetime. Every registered layer generates on every pass, enabled or
//     not, because all layers share one random stream and skipping a
//     disabled layer would shift every draw consumed after it.
//  2. Paint order: ascending z-index, or an explicit override set with
//     SetPaintOrder. Disabling a layer or reordering painting changes only
//     what is drawn, never what is generated.
//
// This split is the engine's central contract: for a fixed seed and fixed
// generation parameters the data store is identical no matter which layers
// are visible.
//
// # Usage
//
//	p := pipeline.New(rnd, field, logger, layers.All()...)
//	p.GenerateAll(ctx, params)
//	p.RenderAll(ctx, cv, params, false)
//
// For cached execution with content-addressed keys, use [Runner].
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pixelczar/tangle-map/pkg/canvas"
	"github.com/pixelczar/tangle-map/pkg/cluster"
	"github.com/pixelczar/tangle-map/pkg/layers"
	"github.com/pixelczar/tangle-map/pkg/observability"
	"github.com/pixelczar/tangle-map/pkg/random"
)

// Background is the paper color painted before any layer.
const Background = "#f4efe6"

// Info is the render-independent identity of a registered layer, exposed so
// callers can build toggle controls without triggering a generation pass.
type Info struct {
	Name    string  `json:"name"`
	ZIndex  int     `json:"z_index"`
	Enabled bool    `json:"enabled"`
	Opacity float64 `json:"opacity"`
}

// Pipeline owns one composition session: the shared random stream, the
// cluster field, the layer registry, and the generated data store. It is
// not safe for concurrent use; callers must serialize passes because two
// concurrent passes would interleave draws on the shared stream.
type Pipeline struct {
	rnd    *random.Stream
	field  *cluster.Field
	logger *log.Logger

	generators []layers.Generator // generation order
	byName     map[string]layers.Generator
	states     map[string]*layers.State
	paintOrder []string // explicit override; nil means z-index order

	// store holds generated data keyed by layer name. nil means no pass
	// has run yet. GenerateAll replaces it wholesale, never piecemeal.
	store map[string]any
}

// New creates a pipeline owning the given stream and field, with the
// generators registered in the given order. All layers start enabled at
// full opacity. Duplicate names keep the first registration.
func New(rnd *random.Stream, field *cluster.Field, logger *log.Logger, gens ...layers.Generator) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	p := &Pipeline{
		rnd:    rnd,
		field:  field,
		logger: logger,
		byName: make(map[string]layers.Generator, len(gens)),
		states: make(map[string]*layers.State, len(gens)),
	}
	for _, g := range gens {
		if _, dup := p.byName[g.Name()]; dup {
			continue
		}
		p.generators = append(p.generators, g)
		p.byName[g.Name()] = g
		p.states[g.Name()] = &layers.State{Enabled: true, Opacity: 1}
	}
	return p
}

// Layers returns registry metadata in generation order without triggering
// a pass.
func (p *Pipeline) Layers() []Info {
	out := make([]Info, 0, len(p.generators))
	for _, g := range p.generators {
		st := p.states[g.Name()]
		out = append(out, Info{
			Name:    g.Name(),
			ZIndex:  g.ZIndex(),
			Enabled: st.Enabled,
			Opacity: st.Opacity,
		})
	}
	return out
}

// SetEnabled toggles a layer's visibility. Unknown names are ignored.
func (p *Pipeline) SetEnabled(name string, enabled bool) {
	if st, ok := p.states[name]; ok {
		st.Enabled = enabled
	}
}

// SetOpacity sets a layer's render opacity, clamped to [0, 1]. Unknown
// names are ignored.
func (p *Pipeline) SetOpacity(name string, opacity float64) {
	st, ok := p.states[name]
	if !ok {
		return
	}
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	st.Opacity = opacity
}

// States returns a copy of the per-layer render states keyed by name.
func (p *Pipeline) States() map[string]layers.State {
	out := make(map[string]layers.State, len(p.states))
	for name, st := range p.states {
		out[name] = *st
	}
	return out
}

// PaintOrder returns the explicit paint order override, or nil when
// painting follows z-index.
func (p *Pipeline) PaintOrder() []string {
	if p.paintOrder == nil {
		return nil
	}
	out := make([]string, len(p.paintOrder))
	copy(out, p.paintOrder)
	return out
}

// SetPaintOrder overrides the z-index paint order with an explicit name
// list. Layers missing from the list paint after the listed ones, in
// z-index order. Unknown names are dropped. Generation order is never
// affected. Pass nil to restore the derived order.
func (p *Pipeline) SetPaintOrder(names []string) {
	if names == nil {
		p.paintOrder = nil
		return
	}
	order := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := p.byName[n]; ok {
			order = append(order, n)
		}
	}
	p.paintOrder = order
}

// Data returns the stored payload for a layer, if a pass has produced one.
func (p *Pipeline) Data(name string) (any, bool) {
	d, ok := p.store[name]
	return d, ok
}

// Generated reports whether a generation pass has populated the store.
func (p *Pipeline) Generated() bool { return p.store != nil }

// SetStore replaces the data store wholesale, for restoring a previously
// serialized composition without consuming any draws.
func (p *Pipeline) SetStore(store map[string]any) { p.store = store }

// GenerateAll runs one complete generation pass and returns the new data
// store. The grid layer generates first and its output feeds every
// subsequent layer's params; infrastructure output feeds the flow and
// particles layers, and boundaries output feeds particles. Every
// registered layer generates regardless of its enabled flag.
func (p *Pipeline) GenerateAll(ctx context.Context, params layers.Params) map[string]any {
	start := time.Now()
	params.Rand = p.rnd
	params.Clusters = p.field.Get(p.rnd)
	observability.Pipeline().OnGenerateStart(ctx, p.rnd.Seed(), len(params.Clusters))

	store := make(map[string]any, len(p.generators))

	// The grid is foundational: several generators align to its pitch.
	if g, ok := p.byName[layers.NameGrid]; ok {
		layerStart := time.Now()
		data := g.GenerateData(params)
		store[layers.NameGrid] = data
		if grid, ok := data.(*layers.GridData); ok {
			params.Grid = grid
		}
		observability.Pipeline().OnLayerGenerated(ctx, layers.NameGrid, time.Since(layerStart))
	}

	for _, g := range p.generators {
		if g.Name() == layers.NameGrid {
			continue
		}
		p.inject(&params, g.Name(), store)
		layerStart := time.Now()
		store[g.Name()] = g.GenerateData(params)
		observability.Pipeline().OnLayerGenerated(ctx, g.Name(), time.Since(layerStart))
	}

	p.store = store
	observability.Pipeline().OnGenerateComplete(ctx, p.rnd.Seed(), len(store), time.Since(start), nil)
	p.logger.Debug("generation pass complete",
		"layers", len(store),
		"clusters", len(params.Clusters),
		"duration", time.Since(start))
	return store
}

// inject wires previously generated outputs into the params of the named
// layer. Missing inputs stay nil and generators treat them as empty.
func (p *Pipeline) inject(params *layers.Params, name string, store map[string]any) {
	params.Infrastructure = nil
	params.Boundaries = nil

	switch name {
	case layers.NameFlow:
		params.Infrastructure, _ = store[layers.NameInfrastructure].(*layers.InfraData)
	case layers.NameParticles:
		params.Infrastructure, _ = store[layers.NameInfrastructure].(*layers.InfraData)
		params.Boundaries, _ = store[layers.NameBoundaries].(*layers.BoundariesData)
	}
}

// RenderAll clears the canvas and paints the composition. When regenerate
// is true or no pass has populated the store yet, it runs GenerateAll
// first; otherwise the stored data is reused verbatim and the random
// cursor does not move. Painting follows the effective paint order and
// skips layers that are disabled or have no data.
func (p *Pipeline) RenderAll(ctx context.Context, cv canvas.Canvas, params layers.Params, regenerate bool) {
	if regenerate || p.store == nil {
		p.GenerateAll(ctx, params)
	}
	params.Rand = nil // renderers must not touch the stream
	params.Clusters = p.field.Get(p.rnd)

	cv.Clear(Background)
	for _, g := range p.paintSequence() {
		st := p.states[g.Name()]
		if !st.Enabled {
			continue
		}
		data, ok := p.store[g.Name()]
		if !ok || data == nil {
			continue
		}
		g.Render(cv, data, params, st.Opacity)
	}
}

// paintSequence resolves the effective paint order: the explicit override
// first, then any remaining layers by ascending z-index.
func (p *Pipeline) paintSequence() []layers.Generator {
	seen := make(map[string]bool, len(p.paintOrder))
	out := make([]layers.Generator, 0, len(p.generators))
	for _, n := range p.paintOrder {
		out = append(out, p.byName[n])
		seen[n] = true
	}

	rest := make([]layers.Generator, 0, len(p.generators))
	for _, g := range p.generators {
		if !seen[g.Name()] {
			rest = append(rest, g)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].ZIndex() < rest[j].ZIndex() })
	return append(out, rest...)
}

// Warning is a configuration problem found by Validate. Warnings never
// interrupt a pass.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Warning codes.
const (
	WarnDuplicateZIndex    = "DUPLICATE_Z_INDEX"
	WarnPaintOrderConflict = "PAINT_ORDER_CONFLICT"
)

// Validate checks the registry for configuration problems: duplicate
// z-index values, and an explicit paint order that contradicts z-index
// (a later entry claiming a lower z-index than an earlier one).
func (p *Pipeline) Validate() []Warning {
	var warnings []Warning

	byZ := make(map[int]string, len(p.generators))
	for _, g := range p.generators {
		if prev, dup := byZ[g.ZIndex()]; dup {
			warnings = append(warnings, Warning{
				Code:    WarnDuplicateZIndex,
				Message: fmt.Sprintf("layers %s and %s share z-index %d", prev, g.Name(), g.ZIndex()),
			})
			continue
		}
		byZ[g.ZIndex()] = g.Name()
	}

	for i := 1; i < len(p.paintOrder); i++ {
		prev := p.byName[p.paintOrder[i-1]]
		cur := p.byName[p.paintOrder[i]]
		if cur.ZIndex() < prev.ZIndex() {
			warnings = append(warnings, Warning{
				Code: WarnPaintOrderConflict,
				Message: fmt.Sprintf("layer %s (z=%d) paints after %s (z=%d)",
					cur.Name(), cur.ZIndex(), prev.Name(), prev.ZIndex()),
			})
		}
	}
	return warnings
}
