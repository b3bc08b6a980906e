package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Server
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 1200

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 900

	// DefaultPadding is the default inner margin kept clear of clusters.
	DefaultPadding = 50.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = int64(42)

	// DefaultClusterCount is the default number of clusters per composition.
	DefaultClusterCount = 3

	// DefaultScale is the default raster supersampling factor.
	DefaultScale = 1.0

	// MaxDimension caps canvas width and height to keep raster output sane.
	MaxDimension = 8000
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a composition run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generation options
	Seed         int64   `json:"seed,omitempty"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
	Padding      float64 `json:"padding,omitempty"`
	ClusterCount int     `json:"cluster_count,omitempty"`
	Refresh      bool    `json:"refresh,omitempty"` // bypass cached compositions

	// Render options
	Format     string             `json:"format,omitempty"`
	Scale      float64            `json:"scale,omitempty"` // raster supersampling factor
	Disabled   []string           `json:"disabled,omitempty"`
	Opacity    map[string]float64 `json:"opacity,omitempty"`
	PaintOrder []string           `json:"paint_order,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks field ranges and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Width < 0 || o.Height < 0 {
		return fmt.Errorf("width and height must be positive")
	}
	if o.Width > MaxDimension || o.Height > MaxDimension {
		return fmt.Errorf("width and height must not exceed %d", MaxDimension)
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Padding < 0 {
		return fmt.Errorf("padding must not be negative")
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.Padding*2 >= float64(o.Width) || o.Padding*2 >= float64(o.Height) {
		return fmt.Errorf("padding %.0f leaves no usable canvas area", o.Padding)
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.ClusterCount == 0 {
		o.ClusterCount = DefaultClusterCount
	}

	if o.Format == "" {
		o.Format = FormatSVG
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Scale < 0 {
		return fmt.Errorf("scale must not be negative")
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	for name, op := range o.Opacity {
		if op < 0 || op > 1 {
			return fmt.Errorf("opacity for layer %q must be in [0, 1], got %g", name, op)
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}
