package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pixelczar/tangle-map/pkg/cache"
	"github.com/pixelczar/tangle-map/pkg/canvas"
	"github.com/pixelczar/tangle-map/pkg/cluster"
	"github.com/pixelczar/tangle-map/pkg/composition"
	"github.com/pixelczar/tangle-map/pkg/layers"
	"github.com/pixelczar/tangle-map/pkg/observability"
	"github.com/pixelczar/tangle-map/pkg/random"
)

// Runner encapsulates composition runs with caching. Both CLI and server
// use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it does not
// retain pipelines between runs. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Result contains the outputs of one run.
type Result struct {
	// Snapshot is the generated composition.
	Snapshot *composition.Snapshot

	// Hash is the content hash of the snapshot, used for artifact keys
	// and API responses.
	Hash string

	// Artifact is the rendered output in the requested format.
	Artifact []byte

	// Format is the artifact format, echoed from the options.
	Format string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains run statistics.
type Stats struct {
	ClusterCount int
	LayerCount   int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	CompositionHit bool // Whether the snapshot came from cache
	ArtifactHit    bool // Whether the artifact came from cache
}

// Execute runs the complete generate and render sequence with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Format: opts.Format}

	// Stage 1: Generate
	genStart := time.Now()
	snap, genHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Snapshot = snap
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.ClusterCount = len(snap.Clusters)
	result.Stats.LayerCount = len(snap.Data)
	result.CacheInfo.CompositionHit = genHit

	// Content hash for artifact keys and API responses
	if content, err := composition.ContentBytes(snap); err == nil {
		result.Hash = cache.Hash(content)
	}

	r.Logger.Info("generated composition",
		"seed", snap.Seed,
		"clusters", len(snap.Clusters),
		"layers", len(snap.Data),
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifact, renderHit, err := r.RenderWithCacheInfo(ctx, snap, result.Hash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.ArtifactHit = renderHit

	r.Logger.Info("rendered artifact",
		"format", opts.Format,
		"bytes", len(artifact),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo produces a composition snapshot with caching and
// returns cache hit info.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (*composition.Snapshot, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.CompositionKey(opts.Seed, cache.CompositionKeyOpts{
		Width:        float64(opts.Width),
		Height:       float64(opts.Height),
		Padding:      opts.Padding,
		ClusterCount: opts.ClusterCount,
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if snap, err := composition.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "composition")
				return snap, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "composition")
	}

	// Generate
	p, params := r.build(opts)
	store := p.GenerateAll(ctx, params)

	data, err := composition.EncodeData(store)
	if err != nil {
		return nil, false, err
	}
	snap := &composition.Snapshot{
		Seed:         opts.Seed,
		Width:        float64(opts.Width),
		Height:       float64(opts.Height),
		Padding:      opts.Padding,
		ClusterCount: opts.ClusterCount,
		Clusters:     params.Clusters,
		States:       p.States(),
		PaintOrder:   p.PaintOrder(),
		Data:         data,
		GeneratedAt:  time.Now().UTC(),
	}

	// Cache the result
	if encoded, err := composition.Marshal(snap); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, encoded, cache.TTLComposition); err == nil {
			observability.Cache().OnCacheSet(ctx, "composition", len(encoded))
		}
	}

	return snap, false, nil
}

// RenderWithCacheInfo renders a snapshot to the requested format with
// caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, snap *composition.Snapshot, hash string, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.ArtifactKey(hash, cache.ArtifactKeyOpts{
		Format:     opts.Format,
		Scale:      opts.Scale,
		Disabled:   opts.Disabled,
		PaintOrder: opts.PaintOrder,
	})

	if !opts.Refresh && hash != "" {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	artifact, err := r.renderSnapshot(ctx, snap, opts)
	if err != nil {
		return nil, false, err
	}

	if hash != "" {
		if err := r.Cache.Set(ctx, cacheKey, artifact, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(artifact))
		}
	}

	return artifact, false, nil
}

// renderSnapshot rehydrates a snapshot into a pipeline and paints it. The
// restored pipeline never touches the random stream, so rendering a cached
// snapshot is draw-free.
func (r *Runner) renderSnapshot(ctx context.Context, snap *composition.Snapshot, opts Options) ([]byte, error) {
	observability.Pipeline().OnRenderStart(ctx, opts.Format)
	start := time.Now()

	store, err := composition.DecodeData(snap.Data)
	if err != nil {
		return nil, err
	}

	rnd := random.New(snap.Seed)
	field := cluster.NewField(snap.Width, snap.Height, snap.Padding, snap.ClusterCount)
	field.Restore(snap.Clusters)

	p := New(rnd, field, opts.Logger, layers.All()...)
	p.SetStore(store)
	for name, st := range snap.States {
		p.SetEnabled(name, st.Enabled)
		p.SetOpacity(name, st.Opacity)
	}
	applyRenderOptions(p, opts)

	var cv canvas.Canvas
	switch opts.Format {
	case FormatPNG:
		cv = canvas.NewRaster(snap.Width, snap.Height, opts.Scale)
	default:
		cv = canvas.NewSVG(snap.Width, snap.Height)
	}

	params := layers.Params{
		Width:        snap.Width,
		Height:       snap.Height,
		Padding:      snap.Padding,
		ClusterCount: snap.ClusterCount,
	}
	p.RenderAll(ctx, cv, params, false)

	artifact, err := cv.Encode()
	observability.Pipeline().OnRenderComplete(ctx, opts.Format, len(artifact), time.Since(start), err)
	return artifact, err
}

// build constructs a fresh pipeline and the generation params for opts.
// Render options are deliberately not applied here: the cached snapshot
// must record the composition with every layer enabled, so runs with
// different visibility settings can share it.
func (r *Runner) build(opts Options) (*Pipeline, layers.Params) {
	rnd := random.New(opts.Seed)
	field := cluster.NewField(float64(opts.Width), float64(opts.Height), opts.Padding, opts.ClusterCount)
	p := New(rnd, field, opts.Logger, layers.All()...)
	return p, layers.Params{
		Width:        float64(opts.Width),
		Height:       float64(opts.Height),
		Padding:      opts.Padding,
		ClusterCount: opts.ClusterCount,
	}
}

// applyRenderOptions pushes render-only settings onto a pipeline.
func applyRenderOptions(p *Pipeline, opts Options) {
	for _, name := range opts.Disabled {
		p.SetEnabled(name, false)
	}
	for name, op := range opts.Opacity {
		p.SetOpacity(name, op)
	}
	if len(opts.PaintOrder) > 0 {
		p.SetPaintOrder(opts.PaintOrder)
	}
}

// applyLogger propagates the runner's logger into options when the caller
// did not provide one.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
