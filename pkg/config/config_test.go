package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pixelczar/tangle-map/pkg/errors"
)

const sampleConfig = `
seed = 1234
width = 1600
height = 1200
padding = 60
cluster_count = 4
format = "png"
scale = 2.0
paint_order = ["grid", "flow", "particles"]

[layers.grid]
enabled = true
opacity = 0.8

[layers.particles]
enabled = false
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Seed != 1234 || cfg.Width != 1600 || cfg.ClusterCount != 4 {
		t.Error("header fields not decoded")
	}
	if cfg.Format != "png" || cfg.Scale != 2.0 {
		t.Error("render fields not decoded")
	}
	if len(cfg.PaintOrder) != 3 {
		t.Errorf("expected 3 paint order entries, got %d", len(cfg.PaintOrder))
	}

	grid, ok := cfg.Layers["grid"]
	if !ok || grid.Enabled == nil || !*grid.Enabled || grid.Opacity == nil || *grid.Opacity != 0.8 {
		t.Error("grid layer section not decoded")
	}
}

func TestParseMinimal(t *testing.T) {
	cfg, err := Parse([]byte("seed = 7"))
	if err != nil {
		t.Fatalf("minimal config should parse: %v", err)
	}
	if cfg.Seed != 7 {
		t.Errorf("seed = %d, want 7", cfg.Seed)
	}

	opts := cfg.Options()
	if opts.Width != 0 {
		t.Error("unset fields should stay zero for pipeline defaults")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		code errors.Code
	}{
		{"malformed", "seed = =", errors.ErrCodeInvalidInput},
		{"bad layer name", "[layers.Grid]\nenabled = true", errors.ErrCodeInvalidLayer},
		{"bad opacity", "[layers.grid]\nopacity = 1.5", errors.ErrCodeInvalidOpacity},
		{"bad paint order name", `paint_order = ["grid", "Flow"]`, errors.ErrCodeInvalidLayer},
		{"bad format", `format = "gif"`, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("expected code %s, got %s", tt.code, errors.GetCode(err))
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tanglemap.toml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 1234 {
		t.Errorf("seed = %d, want 1234", cfg.Seed)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file should error")
	}
}

func TestOptions(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}

	opts := cfg.Options()
	if len(opts.Disabled) != 1 || opts.Disabled[0] != "particles" {
		t.Errorf("Disabled = %v, want [particles]", opts.Disabled)
	}
	if opts.Opacity["grid"] != 0.8 {
		t.Errorf("Opacity[grid] = %g, want 0.8", opts.Opacity["grid"])
	}
	if opts.Format != "png" || opts.Seed != 1234 {
		t.Error("scalar fields not carried into options")
	}
}
