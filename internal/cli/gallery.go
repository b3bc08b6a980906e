package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pixelczar/tangle-map/pkg/cache"
	"github.com/pixelczar/tangle-map/pkg/composition"
	"github.com/pixelczar/tangle-map/pkg/gallery"
	"github.com/pixelczar/tangle-map/pkg/pipeline"
)

// galleryCommand creates the gallery management command.
func (c *CLI) galleryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Save and recall compositions",
	}

	cmd.AddCommand(c.gallerySaveCommand())
	cmd.AddCommand(c.galleryListCommand())
	cmd.AddCommand(c.galleryShowCommand())
	cmd.AddCommand(c.galleryDeleteCommand())

	return cmd
}

// openGallery opens the file-backed gallery store in the XDG data directory.
func openGallery() (*gallery.FileStore, error) {
	dir, err := galleryDir()
	if err != nil {
		return nil, fmt.Errorf("get gallery dir: %w", err)
	}
	return gallery.NewFileStore(dir)
}

// gallerySaveCommand creates the "gallery save" subcommand. It generates
// the composition (reusing the cache when warm) and stores the snapshot,
// so a saved entry renders identically forever regardless of later code
// or flag changes.
func (c *CLI) gallerySaveCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Generate a composition and save it under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipelineOpts, err := c.buildOptions(cmd, &opts)
			if err != nil {
				return err
			}
			if err := pipelineOpts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			store, err := openGallery()
			if err != nil {
				return err
			}

			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}

			snap, cached, err := runner.GenerateWithCacheInfo(cmd.Context(), pipelineOpts)
			if err != nil {
				return err
			}

			entry := gallery.NewEntry(args[0], snap)
			if err := store.Put(cmd.Context(), entry); err != nil {
				return err
			}

			printSuccess("Saved %q", entry.Name)
			printKeyValue("ID", entry.ID)
			printKeyValue("Seed", fmt.Sprintf("%d", snap.Seed))
			if cached {
				printDetail("Composition served from cache")
			}
			printNextStep("Render it later with", fmt.Sprintf("%s gallery show %s", appName, entry.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML composition config file")
	cmd.Flags().Int64VarP(&opts.seed, "seed", "s", 0, "random seed (default 42)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "canvas width in pixels (default 1200)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "canvas height in pixels (default 900)")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "inner margin in pixels (default 50)")
	cmd.Flags().IntVar(&opts.clusters, "clusters", 0, "cluster count, 1-6 (default 3)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the composition cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even if cached")

	return cmd
}

// galleryListCommand creates the "gallery list" subcommand.
func (c *CLI) galleryListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved compositions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openGallery()
			if err != nil {
				return err
			}

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("Gallery is empty")
				printNextStep("Save a composition with", fmt.Sprintf("%s gallery save <name>", appName))
				return nil
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			rows := [][]string{}
			for _, e := range entries {
				rows = append(rows, []string{
					e.ID,
					e.Name,
					fmt.Sprintf("%d", e.Snapshot.Seed),
					e.CreatedAt.Local().Format("2006-01-02 15:04"),
				})
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("ID", "Name", "Seed", "Saved").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					return lipgloss.NewStyle().Foreground(colorWhite)
				})

			fmt.Println(t.Render())
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum entries to show (0 = all)")

	return cmd
}

// galleryShowOpts holds the flags for "gallery show".
type galleryShowOpts struct {
	output string
	format string
	scale  float64
}

// galleryShowCommand creates the "gallery show" subcommand, which renders
// a saved composition to a file using its stored snapshot.
func (c *CLI) galleryShowCommand() *cobra.Command {
	var opts galleryShowOpts

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Render a saved composition to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openGallery()
			if err != nil {
				return err
			}

			entry, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			renderOpts := pipeline.Options{
				Seed:   entry.Snapshot.Seed,
				Format: opts.format,
				Scale:  opts.scale,
				Logger: c.Logger,
			}
			if err := renderOpts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := c.newRunner(false)
			if err != nil {
				return err
			}

			content, err := composition.ContentBytes(entry.Snapshot)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			artifact, _, err := runner.RenderWithCacheInfo(cmd.Context(), entry.Snapshot, cache.Hash(content), renderOpts)
			if err != nil {
				return err
			}
			prog.done("Rendered composition")

			path := opts.output
			if path == "" {
				path = fmt.Sprintf("%s.%s", entry.Name, renderOpts.Format)
			}
			if err := os.WriteFile(path, artifact, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			printSuccess("Rendered %q", entry.Name)
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <name>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), png")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "raster supersampling factor (png only)")

	return cmd
}

// galleryDeleteCommand creates the "gallery delete" subcommand.
func (c *CLI) galleryDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved composition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openGallery()
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
