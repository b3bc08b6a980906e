package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pixelczar/tangle-map/pkg/cluster"
	"github.com/pixelczar/tangle-map/pkg/config"
	"github.com/pixelczar/tangle-map/pkg/layers"
	"github.com/pixelczar/tangle-map/pkg/pipeline"
	"github.com/pixelczar/tangle-map/pkg/random"
)

// layersCommand creates the layers command for inspecting the registry.
func (c *CLI) layersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layers",
		Short: "List the content layers and their paint order",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newRegistryPipeline(c)

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			rows := [][]string{}
			for _, info := range p.Layers() {
				rows = append(rows, []string{
					info.Name,
					fmt.Sprintf("%d", info.ZIndex),
				})
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Layer", "Z-Index").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					return lipgloss.NewStyle().Foreground(colorWhite)
				})

			fmt.Println(t.Render())
			printDetail("Layers generate top to bottom and paint by ascending z-index.")
			return nil
		},
	}
}

// validateCommand creates the validate command for checking configs.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config.toml]",
		Short: "Check a composition config for problems",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newRegistryPipeline(c)

			if len(args) == 1 {
				cfg, err := config.Load(args[0])
				if err != nil {
					return err
				}
				opts := cfg.Options()
				if err := opts.ValidateAndSetDefaults(); err != nil {
					return err
				}
				p.SetPaintOrder(opts.PaintOrder)
				printInfo("Config %s parsed", args[0])
			}

			warnings := p.Validate()
			if len(warnings) == 0 {
				printSuccess("No problems found")
				return nil
			}
			for _, w := range warnings {
				printWarning("%s: %s", w.Code, w.Message)
			}
			return fmt.Errorf("%d problem(s) found", len(warnings))
		},
	}
}

// newRegistryPipeline builds a pipeline for metadata inspection only.
// It is never generated, so the seed and field are irrelevant.
func newRegistryPipeline(c *CLI) *pipeline.Pipeline {
	return pipeline.New(
		random.New(pipeline.DefaultSeed),
		cluster.NewField(pipeline.DefaultWidth, pipeline.DefaultHeight, pipeline.DefaultPadding, pipeline.DefaultClusterCount),
		c.Logger,
		layers.All()...)
}
