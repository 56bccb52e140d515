package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/knotwork/pkg/dotbracket"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command for browsing ranked alternatives.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		flags       resolverFlags
		inputFormat string
	)

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Browse the ranked alternative structures interactively",
		Long: `Browse every structure the converter kept, best first.

Alternatives are ranked by the number of bracket levels and then by how many
pairs sit on the lower levels. Press enter to print the selected structure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			seq, err := readInput(cmd.InOrStdin(), args[0], inputFormat)
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			runner, err := c.newRunner(ctx, cfg, flags.noCache, nil)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			result, err := runner.Execute(ctx, seq, flags.options(cfg))
			if err != nil {
				return err
			}

			model := NewExploreModel(result.DotBracket.Sequence, result.Alternatives)
			final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
			if err != nil {
				return fmt.Errorf("explore: %w", err)
			}
			if m, ok := final.(ExploreModel); ok && m.Selected >= 0 {
				fmt.Fprintln(cmd.OutOrStdout(), m.Alternatives[m.Selected])
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: bpseq, dotbracket (detected if empty)")

	return cmd
}

// =============================================================================
// ExploreModel - Interactive alternative selection
// =============================================================================

// ExploreModel is the bubbletea model for browsing alternative structures.
type ExploreModel struct {
	Sequence     string
	Alternatives []string
	Levels       []int // bracket levels used by each alternative
	Cursor       int
	Selected     int // index of the chosen alternative, -1 if none
	Height       int
	Offset       int
}

// NewExploreModel creates a model over the ranked alternatives.
func NewExploreModel(sequence string, alternatives []string) ExploreModel {
	levels := make([]int, len(alternatives))
	for i, s := range alternatives {
		if parsed, err := dotbracket.Parse(s); err == nil {
			levels[i] = len(parsed)
		}
	}
	return ExploreModel{
		Sequence:     sequence,
		Alternatives: alternatives,
		Levels:       levels,
		Selected:     -1,
		Height:       15,
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Alternatives)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Alternatives) > 0 {
				m.Selected = m.Cursor
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 3 {
			m.Height = 3
		}
	}
	return m, nil
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Alternative Structures"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if m.Sequence != "" {
		b.WriteString("     " + listDimStyle.Render(m.Sequence))
		b.WriteString("\n")
	}

	end := min(m.Offset+m.Height, len(m.Alternatives))
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%2d %s", cursor, i+1, m.Alternatives[i])
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("  " + listDimStyle.Render(fmt.Sprintf("%d levels", m.Levels[i])))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Alternatives))))

	return b.String()
}
