package composition

import (
	"bytes"
	"testing"
	"time"

	"github.com/pixelczar/tangle-map/pkg/cluster"
	"github.com/pixelczar/tangle-map/pkg/geom"
	"github.com/pixelczar/tangle-map/pkg/layers"
)

func sampleSnapshot() *Snapshot {
	store := map[string]any{
		layers.NameGrid: &layers.GridData{
			Spacing:   60,
			Verticals: []float64{60, 120},
			Segments: []layers.Segment{
				{A: geom.Point{X: 60, Y: 0}, B: geom.Point{X: 60, Y: 600}},
			},
		},
		layers.NameParticles: &layers.ParticlesData{
			Points: []layers.Particle{{X: 10, Y: 20, Size: 1.5}},
		},
	}
	data, _ := EncodeData(store)
	return &Snapshot{
		Seed:         42,
		Width:        800,
		Height:       600,
		Padding:      40,
		ClusterCount: 2,
		Clusters: []cluster.Cluster{
			{ID: 0, X: 100, Y: 100, Radius: 90, Intensity: 0.8},
			{ID: 1, X: 500, Y: 400, Radius: 120, Intensity: 0.7},
		},
		States: map[string]layers.State{
			layers.NameGrid: {Enabled: true, Opacity: 1},
		},
		Data:        data,
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	snap := sampleSnapshot()

	encoded, err := Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := Unmarshal(encoded)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.Seed != snap.Seed || decoded.Width != snap.Width {
		t.Error("header fields should survive the round trip")
	}
	if len(decoded.Clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(decoded.Clusters))
	}
	if !decoded.GeneratedAt.Equal(snap.GeneratedAt) {
		t.Error("timestamp should survive the round trip")
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	if _, err := Unmarshal([]byte("not json")); err == nil {
		t.Error("expected an error for malformed input")
	}
}

func TestDecodeDataRestoresTypes(t *testing.T) {
	snap := sampleSnapshot()

	store, err := DecodeData(snap.Data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	grid, ok := store[layers.NameGrid].(*layers.GridData)
	if !ok {
		t.Fatalf("grid payload has type %T, want *layers.GridData", store[layers.NameGrid])
	}
	if grid.Spacing != 60 || len(grid.Segments) != 1 {
		t.Error("grid payload fields should survive decoding")
	}

	particles, ok := store[layers.NameParticles].(*layers.ParticlesData)
	if !ok {
		t.Fatalf("particles payload has type %T, want *layers.ParticlesData", store[layers.NameParticles])
	}
	if len(particles.Points) != 1 || particles.Points[0].Size != 1.5 {
		t.Error("particle fields should survive decoding")
	}
}

func TestDecodeDataKeepsUnknownLayersRaw(t *testing.T) {
	store := map[string]any{"mystery": map[string]int{"n": 1}}
	data, err := EncodeData(store)
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := DecodeData(data)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded["mystery"]; !ok {
		t.Error("unknown layer payloads should be preserved")
	}
}

func TestContentBytesIgnoresRenderSettings(t *testing.T) {
	a := sampleSnapshot()
	b := sampleSnapshot()
	b.GeneratedAt = b.GeneratedAt.Add(48 * time.Hour)
	b.States = map[string]layers.State{
		layers.NameGrid: {Enabled: false, Opacity: 0.5},
	}
	b.PaintOrder = []string{layers.NameParticles, layers.NameGrid}

	ca, err := ContentBytes(a)
	if err != nil {
		t.Fatal(err)
	}
	cb, err := ContentBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(ca, cb) {
		t.Error("timestamps and render settings must not affect content bytes")
	}
}

func TestContentBytesSeesDataChanges(t *testing.T) {
	a := sampleSnapshot()
	b := sampleSnapshot()
	b.Seed = 43

	ca, _ := ContentBytes(a)
	cb, _ := ContentBytes(b)
	if bytes.Equal(ca, cb) {
		t.Error("different compositions must produce different content bytes")
	}
}
