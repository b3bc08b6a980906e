package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pixelczar/tangle-map/pkg/cache"
)

func TestValidateFormatTable(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options should validate: %v", err)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("expected default dimensions, got %dx%d", opts.Width, opts.Height)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("expected default seed, got %d", opts.Seed)
	}
	if opts.Format != FormatSVG {
		t.Errorf("expected default format svg, got %q", opts.Format)
	}
	if opts.Logger == nil {
		t.Error("expected a default logger")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative width", Options{Width: -1}},
		{"oversized", Options{Width: MaxDimension + 1}},
		{"negative padding", Options{Padding: -5}},
		{"padding swallows canvas", Options{Width: 100, Height: 100, Padding: 60}},
		{"bad format", Options{Format: "gif"}},
		{"negative scale", Options{Scale: -2}},
		{"bad opacity", Options{Opacity: map[string]float64{"grid": 1.5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestOptionsValidateIdempotent(t *testing.T) {
	opts := Options{Width: 640, Height: 480}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	w := opts.Width
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Width != w {
		t.Error("second validation should not change fields")
	}
}

func TestRunnerExecuteSVG(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())

	result, err := r.Execute(context.Background(), Options{Seed: 321, Logger: testLogger()})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Snapshot == nil {
		t.Fatal("expected a snapshot")
	}
	if result.Hash == "" {
		t.Error("expected a content hash")
	}
	if !strings.HasPrefix(string(result.Artifact), "<svg") {
		t.Error("expected SVG artifact")
	}
	if result.Stats.LayerCount != 7 {
		t.Errorf("expected 7 layers, got %d", result.Stats.LayerCount)
	}
	if result.CacheInfo.CompositionHit || result.CacheInfo.ArtifactHit {
		t.Error("null cache should never hit")
	}
}

func TestRunnerExecuteDeterministic(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	ctx := context.Background()
	opts := Options{Seed: 555, Logger: testLogger()}

	r1, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}

	if r1.Hash != r2.Hash {
		t.Error("same options should hash identically")
	}
	if !bytes.Equal(r1.Artifact, r2.Artifact) {
		t.Error("same options should render identically")
	}
}

func TestRunnerCachesComposition(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer fc.Close()

	r := NewRunner(fc, nil, testLogger())
	ctx := context.Background()
	opts := Options{Seed: 777, Logger: testLogger()}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.CompositionHit {
		t.Error("first run should miss the cache")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.CompositionHit {
		t.Error("second run should hit the composition cache")
	}
	if !second.CacheInfo.ArtifactHit {
		t.Error("second run should hit the artifact cache")
	}
	if !bytes.Equal(first.Artifact, second.Artifact) {
		t.Error("cached artifact should match the original")
	}
}

func TestRunnerRefreshBypassesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer fc.Close()

	r := NewRunner(fc, nil, testLogger())
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Seed: 888, Logger: testLogger()}); err != nil {
		t.Fatal(err)
	}
	refreshed, err := r.Execute(ctx, Options{Seed: 888, Refresh: true, Logger: testLogger()})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.CompositionHit {
		t.Error("refresh should bypass the composition cache")
	}
}

func TestRunnerDisabledLayersChangeArtifactOnly(t *testing.T) {
	r := NewRunner(nil, nil, testLogger())
	ctx := context.Background()

	full, err := r.Execute(ctx, Options{Seed: 99, Logger: testLogger()})
	if err != nil {
		t.Fatal(err)
	}
	partial, err := r.Execute(ctx, Options{Seed: 99, Disabled: []string{"particles", "flow"}, Logger: testLogger()})
	if err != nil {
		t.Fatal(err)
	}

	if full.Hash != partial.Hash {
		t.Error("disabling layers must not change the composition hash")
	}
	if bytes.Equal(full.Artifact, partial.Artifact) {
		t.Error("disabling layers should change the artifact")
	}
}
