// Package pkg provides the core libraries for Tangle Map composition
// generation.
//
// # Overview
//
// Tangle Map composes abstract, map-like images from a single seed. The pkg
// directory is organized into three main areas:
//
//  1. Generation ([random], [cluster], [geom], [layers]) - the deterministic
//     content engine
//  2. Orchestration ([pipeline], [composition], [config]) - layer registry,
//     caching runner, snapshots, TOML configs
//  3. Infrastructure ([canvas], [cache], [gallery], [errors],
//     [observability], [buildinfo]) - output surfaces, storage, shared
//     plumbing
//
// # Architecture
//
// The typical data flow:
//
//	Seed + Options
//	     ↓
//	[random] package (LCG stream + bucketed noise)
//	     ↓
//	[cluster] package (focal point field)
//	     ↓
//	[layers] package (seven generators, two-phase contract)
//	     ↓
//	[pipeline] package (generate all, paint by z-index)
//	     ↓
//	[canvas] package → SVG/PNG output
//
// # Quick Start
//
// Render a composition with the caching runner:
//
//	import "github.com/pixelczar/tangle-map/pkg/pipeline"
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{Seed: 42})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("out.svg", result.Artifact, 0o644)
//
// Or drive the pipeline directly:
//
//	rnd := random.New(42)
//	field := cluster.NewField(1200, 900, 50, 3)
//	p := pipeline.New(rnd, field, nil, layers.All()...)
//	p.GenerateAll(ctx, params)
//	p.RenderAll(ctx, canvas.NewSVG(1200, 900), params, false)
//
// # Main Packages
//
// [random] - Seeded LCG stream with derived noise. Every draw is accounted
// for; the whole determinism story rests on this package.
//
// [cluster] - The focal point field layers arrange themselves around.
//
// [geom] - Computational geometry: intersections, polygon tests, Chaikin
// smoothing, wedge subdivision, organic boundaries.
//
// [layers] - The seven content generators and the generate/render contract.
//
// [pipeline] - Registry, generation and paint ordering, the validating
// Options struct, and the caching Runner used by the CLI and server.
//
// [composition] - Snapshot serialization and content addressing.
//
// [config] - TOML composition configs.
//
// [canvas] - SVG and PNG drawing surfaces.
//
// [cache] - Composition and artifact caches (file, Redis, null).
//
// [gallery] - Saved compositions (file, MongoDB).
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/layers/...    # Specific package
//
// [random]: https://pkg.go.dev/github.com/pixelczar/tangle-map/pkg/random
// [cluster]: https://pkg.go.dev/github.com/pixelczar/tangle-map/pkg/cluster
// [geom]: https://pkg.go.dev/github.com/pixelczar/tangle-map/pkg/geom
// [layers]: https://pkg.go.dev/github.com/pixelczar/tangle-map/pkg/layers
// [pipeline]: https://pkg.go.dev/github.com/pixelczar/tangle-map/pkg/pipeline
// [composition]: https://pkg.go.dev/github.com/pixelczar/tangle-map/pkg/composition
// [config]: https://pkg.go.dev/github.com/pixelczar/tangle-map/pkg/config
// [canvas]: https://pkg.go.dev/github.com/pixelczar/tangle-map/pkg/canvas
// [cache]: https://pkg.go.dev/github.com/pixelczar/tangle-map/pkg/cache
// [gallery]: https://pkg.go.dev/github.com/pixelczar/tangle-map/pkg/gallery
// [errors]: https://pkg.go.dev/github.com/pixelczar/tangle-map/pkg/errors
// [observability]: https://pkg.go.dev/github.com/pixelczar/tangle-map/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/pixelczar/tangle-map/pkg/buildinfo
package pkg
