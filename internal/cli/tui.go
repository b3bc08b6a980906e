package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pixelczar/tangle-map/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// LayerToggleModel - Interactive layer visibility editor
// =============================================================================

// LayerToggleModel is the bubbletea model for picking which layers to paint.
// Toggling a layer never changes the composition itself, only what gets
// drawn, so the model is safe to drive against a cached snapshot.
type LayerToggleModel struct {
	Layers    []pipeline.Info
	Hidden    map[string]bool
	Cursor    int
	Seed      int64
	Confirmed bool
}

// NewLayerToggleModel creates a layer toggle model with every layer visible.
func NewLayerToggleModel(infos []pipeline.Info, seed int64) LayerToggleModel {
	return LayerToggleModel{
		Layers: infos,
		Hidden: make(map[string]bool),
		Seed:   seed,
	}
}

// Disabled returns the hidden layer names in registry order.
func (m LayerToggleModel) Disabled() []string {
	var out []string
	for _, info := range m.Layers {
		if m.Hidden[info.Name] {
			out = append(out, info.Name)
		}
	}
	return out
}

func (m LayerToggleModel) Init() tea.Cmd {
	return nil
}

func (m LayerToggleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Layers)-1 {
				m.Cursor++
			}
		case " ":
			name := m.Layers[m.Cursor].Name
			m.Hidden[name] = !m.Hidden[name]
		case "a":
			for k := range m.Hidden {
				delete(m.Hidden, k)
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m LayerToggleModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Compose Layers"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all on  ⏎ render  q quit"))
	b.WriteString("\n\n")

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for i, info := range m.Layers {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		visible := iconSuccess
		if m.Hidden[info.Name] {
			visible = iconError
		}

		rows = append(rows, []string{cursor, info.Name, fmt.Sprintf("%d", info.ZIndex), visible})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Layer", "Z-Index", "Painted").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= len(m.Layers) {
				return lipgloss.NewStyle()
			}
			info := m.Layers[row]
			if row == m.Cursor {
				return listSelectedStyle
			}
			if m.Hidden[info.Name] {
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  seed %d  [%d/%d]", m.Seed, m.Cursor+1, len(m.Layers))))

	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// tuiCommand creates the interactive composition command.
func (c *CLI) tuiCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactively choose layers and render",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipelineOpts, err := c.buildOptions(cmd, &opts)
			if err != nil {
				return err
			}
			if err := pipelineOpts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			model := NewLayerToggleModel(newRegistryPipeline(c).Layers(), pipelineOpts.Seed)
			p := tea.NewProgram(model)
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("run tui: %w", err)
			}

			result, ok := final.(LayerToggleModel)
			if !ok || !result.Confirmed {
				printInfo("Cancelled")
				return nil
			}

			pipelineOpts.Disabled = result.Disabled()
			return c.runRender(cmd, pipelineOpts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default tanglemap_<seed>.<format>)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML composition config file")
	cmd.Flags().Int64VarP(&opts.seed, "seed", "s", 0, "random seed (default 42)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), png")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the composition cache")

	return cmd
}
