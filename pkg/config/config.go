// Package config loads composition settings from TOML files.
//
// A config file captures everything needed to reproduce a composition:
// the seed, the canvas geometry, the cluster count, per-layer visibility,
// and an optional explicit paint order. Every field is optional; missing
// fields fall back to the pipeline defaults so a minimal file like
//
//	seed = 1234
//
// is valid on its own.
package config

import (
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/pixelczar/tangle-map/pkg/errors"
	"github.com/pixelczar/tangle-map/pkg/pipeline"
)

// Layer is the per-layer section of a config file.
type Layer struct {
	Enabled *bool    `toml:"enabled"`
	Opacity *float64 `toml:"opacity"`
}

// Config is the on-disk composition configuration.
type Config struct {
	Seed         int64   `toml:"seed"`
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
	Padding      float64 `toml:"padding"`
	ClusterCount int     `toml:"cluster_count"`

	Format string  `toml:"format"`
	Scale  float64 `toml:"scale"`

	PaintOrder []string         `toml:"paint_order"`
	Layers     map[string]Layer `toml:"layers"`
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates config bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for name, layer := range c.Layers {
		if err := errors.ValidateLayerName(name); err != nil {
			return err
		}
		if layer.Opacity != nil && (*layer.Opacity < 0 || *layer.Opacity > 1) {
			return errors.New(errors.ErrCodeInvalidOpacity,
				"opacity for layer %q must be in [0, 1], got %g", name, *layer.Opacity)
		}
	}
	for _, name := range c.PaintOrder {
		if err := errors.ValidateLayerName(name); err != nil {
			return err
		}
	}
	if c.Format != "" {
		if err := pipeline.ValidateFormat(c.Format); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "config format")
		}
	}
	return nil
}

// Options translates the config into pipeline options. Unset fields stay
// zero so the pipeline applies its own defaults.
func (c *Config) Options() pipeline.Options {
	opts := pipeline.Options{
		Seed:         c.Seed,
		Width:        c.Width,
		Height:       c.Height,
		Padding:      c.Padding,
		ClusterCount: c.ClusterCount,
		Format:       c.Format,
		Scale:        c.Scale,
		PaintOrder:   c.PaintOrder,
	}
	for name, layer := range c.Layers {
		if layer.Enabled != nil && !*layer.Enabled {
			opts.Disabled = append(opts.Disabled, name)
		}
		if layer.Opacity != nil {
			if opts.Opacity == nil {
				opts.Opacity = make(map[string]float64)
			}
			opts.Opacity[name] = *layer.Opacity
		}
	}
	// Stable order so the disabled set hashes identically across runs.
	sort.Strings(opts.Disabled)
	return opts
}
