package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/knotwork/pkg/bpseq"
	kerrors "github.com/matzehuels/knotwork/pkg/errors"
	"github.com/matzehuels/knotwork/pkg/pseudoknot"
)

// regionsCommand creates the regions debug command.
func (c *CLI) regionsCommand() *cobra.Command {
	var (
		inputFormat string
		simplify    bool
		maxClique   int
	)

	cmd := &cobra.Command{
		Use:   "regions [file|-]",
		Short: "Show helical regions, their conflicts and cliques (debug tool)",
		Long: `Show the helical regions of a structure and the conflict graph between them.

A region is a run of stacked pairs (i,j), (i+1,j-1), ... Two regions conflict
when their pairs cross. Connected groups of conflicting regions are cliques;
cliques with more endpoints than --max-clique are thinned before the exact
resolver solves them.`,
		Example: `  # Inspect the conflict graph of a pseudoknot
  knotwork regions tRNA.bpseq

  # Show the graph after merging nested regions with identical conflicts
  knotwork regions --simplify tRNA.bpseq`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := kerrors.ValidatePositive("max clique size", maxClique); err != nil {
				return err
			}
			path := stdinPath
			if len(args) == 1 {
				path = args[0]
			}
			seq, err := readInput(cmd.InOrStdin(), path, inputFormat)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			loggerFromContext(cmd.Context()).Debug("loaded structure", "residues", seq.Len(), "pairs", seq.PairCount())
			_, err = fmt.Fprint(cmd.OutOrStdout(), regionReport(seq, simplify, maxClique))
			return err
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: bpseq, dotbracket (detected if empty)")
	cmd.Flags().BoolVar(&simplify, "simplify", false, "merge nested regions with identical conflicts first")
	cmd.Flags().IntVar(&maxClique, "max-clique", pseudoknot.DefaultMaxCliqueSize, "flag cliques above this many endpoints")

	return cmd
}

// regionReport renders the region table followed by the clique summary.
func regionReport(seq *bpseq.BpSeq, simplify bool, maxClique int) string {
	m := pseudoknot.NewConflictMap(pseudoknot.CreateRegions(seq))
	merges := 0
	if simplify {
		merges = m.Simplify()
	}
	regions := m.Regions()
	cliques := m.Cliques()

	cliqueOf := make(map[int]int)
	for i, cl := range cliques {
		for _, r := range cl.Regions() {
			cliqueOf[r.ID] = i + 1
		}
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("%d regions", len(regions))))
	if simplify {
		b.WriteString(StyleDim.Render(fmt.Sprintf(" (%d merged)", merges)))
	}
	b.WriteString("\n")
	if len(regions) == 0 {
		return b.String()
	}

	rows := make([][]string, 0, len(regions))
	for _, r := range regions {
		clique := "—"
		if n, ok := cliqueOf[r.ID]; ok {
			clique = strconv.Itoa(n)
		}
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			fmt.Sprintf("%d-%d", r.Begin, r.End),
			strconv.Itoa(r.Len()),
			joinInts(m.ConflictsWith(r.ID)),
			clique,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Span", "Pairs", "Conflicts", "Clique").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < len(regions) && m.HasConflicts(regions[row].ID) {
				return lipgloss.NewStyle().Foreground(colorYellow)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%d cliques", len(cliques))))
	b.WriteString("\n")
	for i, cl := range cliques {
		line := fmt.Sprintf("  %d: %d regions, %d endpoints, %d pairs", i+1, cl.Size(), cl.EndpointCount(), cl.PairCount())
		if cl.EndpointCount() > maxClique {
			b.WriteString(StyleWarning.Render(line + " (thinned)"))
		} else {
			b.WriteString(StyleValue.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func joinInts(ids []int) string {
	if len(ids) == 0 {
		return "—"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
