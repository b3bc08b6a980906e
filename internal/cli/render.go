package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pixelczar/tangle-map/pkg/config"
	"github.com/pixelczar/tangle-map/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string  // output file path
	configPath string  // optional TOML config file
	seed       int64   // random seed
	width      int     // canvas width in pixels
	height     int     // canvas height in pixels
	padding    float64 // inner margin kept clear of clusters
	clusters   int     // number of clusters
	format     string  // output format: "svg" or "png"
	scale      float64 // raster supersampling factor
	disabled   string  // comma-separated layer names to hide
	paintOrder string  // comma-separated explicit paint order
	noCache    bool    // disable the composition cache
	refresh    bool    // bypass cached compositions
}

// renderCommand creates the render command for generating compositions.
//
// Flags override config file values: a config sets the base, then any flag
// the user passed explicitly wins.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a composition to SVG or PNG",
		Long: `Render generates a complete composition from a seed and writes it to a file.

The same seed always produces the same composition. Disabling layers changes
only what is drawn, never the underlying composition, so toggling a layer on
again restores exactly the geometry it had before.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pipelineOpts, err := c.buildOptions(cmd, &opts)
			if err != nil {
				return err
			}
			return c.runRender(cmd, pipelineOpts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default tanglemap_<seed>.<format>)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML composition config file")
	cmd.Flags().Int64VarP(&opts.seed, "seed", "s", 0, "random seed (default 42)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "canvas width in pixels (default 1200)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "canvas height in pixels (default 900)")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "inner margin in pixels (default 50)")
	cmd.Flags().IntVar(&opts.clusters, "clusters", 0, "cluster count, 1-6 (default 3)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), png")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "raster supersampling factor (png only)")
	cmd.Flags().StringVar(&opts.disabled, "disabled", "", "layers to hide (comma-separated)")
	cmd.Flags().StringVar(&opts.paintOrder, "paint-order", "", "explicit paint order (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the composition cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even if cached")

	return cmd
}

// buildOptions merges the config file (if any) with explicitly set flags.
func (c *CLI) buildOptions(cmd *cobra.Command, opts *renderOpts) (pipeline.Options, error) {
	var base pipeline.Options
	if opts.configPath != "" {
		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return base, err
		}
		base = cfg.Options()
		c.Logger.Debug("loaded config", "path", opts.configPath)
	}

	flagSet := cmd.Flags().Changed
	if flagSet("seed") {
		base.Seed = opts.seed
	}
	if flagSet("width") {
		base.Width = opts.width
	}
	if flagSet("height") {
		base.Height = opts.height
	}
	if flagSet("padding") {
		base.Padding = opts.padding
	}
	if flagSet("clusters") {
		base.ClusterCount = opts.clusters
	}
	if flagSet("format") {
		base.Format = opts.format
	}
	if flagSet("scale") {
		base.Scale = opts.scale
	}
	if flagSet("disabled") {
		base.Disabled = splitList(opts.disabled)
	}
	if flagSet("paint-order") {
		base.PaintOrder = splitList(opts.paintOrder)
	}
	base.Refresh = opts.refresh
	return base, nil
}

// splitList parses a comma-separated flag value, trimming whitespace.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// runRender executes the pipeline and writes the artifact to disk.
func (c *CLI) runRender(cmd *cobra.Command, opts pipeline.Options, flags *renderOpts) error {
	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	result, err := runner.Execute(cmd.Context(), opts)
	if err != nil {
		return err
	}
	prog.done("Rendered composition")

	path := flags.output
	if path == "" {
		path = fmt.Sprintf("tanglemap_%d.%s", result.Snapshot.Seed, result.Format)
	}
	if err := os.WriteFile(path, result.Artifact, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Generated composition (seed %d)", result.Snapshot.Seed)
	printFile(path)
	printStats(result.Stats.ClusterCount, result.Stats.LayerCount, result.CacheInfo.CompositionHit)
	if flags.output == "" {
		printNextStep("Save it to the gallery", fmt.Sprintf("%s gallery save <name> --seed %d", appName, result.Snapshot.Seed))
	}
	return nil
}
