// Package cluster places and manages the composition's focal points.
//
// Clusters are the 1–6 anchors the content layers key off: plots radiate
// from them, paths link them, boundaries wrap them. They are drawn from the
// shared random stream in a fixed field order so a given seed always
// produces the same set.
package cluster

import (
	"math"

	"github.com/pixelczar/tangle-map/pkg/geom"
	"github.com/pixelczar/tangle-map/pkg/random"
)

// Count bounds for a generated field.
const (
	MinCount = 1
	MaxCount = 6
)

// Radius and intensity ranges for generated clusters.
const (
	minRadius    = 80.0
	maxRadius    = 200.0
	minIntensity = 0.6
	maxIntensity = 1.0
)

// typeCount is the number of cluster type variants.
const typeCount = 3

// colorCount is the size of the palette index space. The palette itself
// belongs to the drawing collaborators; the engine only assigns indices.
const colorCount = 5

// Cluster is a generated focal point.
type Cluster struct {
	ID         int     `json:"id" bson:"id"`
	X          float64 `json:"x" bson:"x"`
	Y          float64 `json:"y" bson:"y"`
	Radius     float64 `json:"radius" bson:"radius"`
	Intensity  float64 `json:"intensity" bson:"intensity"`
	Type       int     `json:"type" bson:"type"`
	ColorIndex int     `json:"color_index" bson:"color_index"`
}

// Center returns the cluster's position as a point.
func (c Cluster) Center() geom.Point { return geom.Point{X: c.X, Y: c.Y} }

// Field owns the current cluster set for one composition session.
//
// A Field is bound to a canvas region at construction. Generation draws from
// the stream in a fixed order (x, y, radius, intensity, type, color per
// cluster); the spatial queries consume nothing.
type Field struct {
	bounds   geom.Rect
	count    int
	clusters []Cluster
}

// NewField creates a field that places clusters inside the canvas rectangle
// inset by padding. Count is clamped to [MinCount, MaxCount].
func NewField(width, height, padding float64, count int) *Field {
	return &Field{
		bounds: geom.Rect{W: width, H: height}.Inset(padding),
		count:  clampCount(count),
	}
}

// Generate replaces the field's clusters with count freshly drawn ones and
// returns them. Each cluster consumes exactly six draws in field order, so
// regenerating with the same seed and count reproduces identical clusters.
func (f *Field) Generate(rnd *random.Stream, count int) []Cluster {
	f.count = clampCount(count)
	f.clusters = make([]Cluster, f.count)
	for i := range f.clusters {
		f.clusters[i] = Cluster{
			ID:         i,
			X:          rnd.FloatBetween(f.bounds.X, f.bounds.X+f.bounds.W),
			Y:          rnd.FloatBetween(f.bounds.Y, f.bounds.Y+f.bounds.H),
			Radius:     rnd.FloatBetween(minRadius, maxRadius),
			Intensity:  rnd.FloatBetween(minIntensity, maxIntensity),
			Type:       rnd.IntBetween(0, typeCount-1),
			ColorIndex: rnd.IntBetween(0, colorCount-1),
		}
	}
	return f.clusters
}

// Get returns the current cluster set, lazily generating it on first use.
// Once clusters exist they are returned as-is: Get never silently redraws,
// which would desynchronize every layer generated afterwards.
func (f *Field) Get(rnd *random.Stream) []Cluster {
	if f.clusters == nil {
		return f.Generate(rnd, f.count)
	}
	return f.clusters
}

// Restore replaces the field's clusters with a previously generated set
// without consuming any draws, for rehydrating a saved composition.
func (f *Field) Restore(clusters []Cluster) {
	f.clusters = make([]Cluster, len(clusters))
	copy(f.clusters, clusters)
	if len(clusters) > 0 {
		f.count = len(clusters)
	}
}

// Len returns the number of clusters currently held.
func (f *Field) Len() int { return len(f.clusters) }

// Closest returns the cluster nearest to (x, y). The boolean is false when
// the field is empty.
func (f *Field) Closest(x, y float64) (Cluster, bool) {
	if len(f.clusters) == 0 {
		return Cluster{}, false
	}
	best := f.clusters[0]
	bestDist := math.Inf(1)
	for _, c := range f.clusters {
		if d := geom.Dist(c.Center(), geom.Point{X: x, Y: y}); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, true
}

// Containing returns the clusters whose radius covers (x, y).
func (f *Field) Containing(x, y float64) []Cluster {
	var out []Cluster
	for _, c := range f.clusters {
		if geom.Dist(c.Center(), geom.Point{X: x, Y: y}) <= c.Radius {
			out = append(out, c)
		}
	}
	return out
}

// Within returns the clusters whose center lies within distance of (x, y).
func (f *Field) Within(x, y, distance float64) []Cluster {
	var out []Cluster
	for _, c := range f.clusters {
		if geom.Dist(c.Center(), geom.Point{X: x, Y: y}) <= distance {
			out = append(out, c)
		}
	}
	return out
}

// Add appends an interactively placed cluster and reassigns ids
// sequentially. It is an interactive mutation outside the deterministic
// pass: strict seed reproducibility no longer holds for this session.
func (f *Field) Add(rnd *random.Stream, x, y float64) Cluster {
	c := Cluster{
		X:          x,
		Y:          y,
		Radius:     rnd.FloatBetween(minRadius, maxRadius),
		Intensity:  rnd.FloatBetween(minIntensity, maxIntensity),
		Type:       rnd.IntBetween(0, typeCount-1),
		ColorIndex: rnd.IntBetween(0, colorCount-1),
	}
	f.clusters = append(f.clusters, c)
	f.renumber()
	return f.clusters[len(f.clusters)-1]
}

// Remove deletes the cluster with the given id and reassigns ids
// sequentially. Like Add, it breaks strict reproducibility for the session.
// It reports whether a cluster was removed.
func (f *Field) Remove(id int) bool {
	for i, c := range f.clusters {
		if c.ID == id {
			f.clusters = append(f.clusters[:i], f.clusters[i+1:]...)
			f.renumber()
			return true
		}
	}
	return false
}

func (f *Field) renumber() {
	for i := range f.clusters {
		f.clusters[i].ID = i
	}
}

func clampCount(n int) int {
	if n < MinCount {
		return MinCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}
