package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	kerrors "github.com/matzehuels/knotwork/pkg/errors"
	"github.com/matzehuels/knotwork/pkg/pipeline"
)

// Output formats of the convert command.
const (
	outputText = "text"
	outputJSON = "json"
)

var outputFormats = []string{outputText, outputJSON}

// convertOpts holds the flags of the convert command that are not resolver
// settings.
type convertOpts struct {
	inputFormat string // bpseq, dotbracket or "" to detect
	format      string // text or json
	output      string // output file; stdout if empty
	all         bool   // print every ranked alternative (text)
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var flags resolverFlags
	opts := convertOpts{format: outputText}

	cmd := &cobra.Command{
		Use:   "convert [file|-]",
		Short: "Convert a BPSEQ structure to multi-level dot-bracket notation",
		Long: `Convert a BPSEQ structure to multi-level dot-bracket notation.

Crossing base pairs are moved to higher bracket levels, in the order
() [] {} <> Aa Bb ... Zz, using as few levels as possible. The input is read
from the given file or from stdin. Dot-bracket input is accepted as well and
re-resolved.

Results are cached locally for faster subsequent runs.`,
		Example: `  # Convert a BPSEQ file
  knotwork convert tRNA.bpseq

  # Read from stdin, use the heuristic resolver
  cat tRNA.bpseq | knotwork convert -s heuristic

  # Print all ranked alternatives as JSON
  knotwork convert tRNA.bpseq -f json -o tRNA.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := stdinPath
			if len(args) == 1 {
				path = args[0]
			}
			if err := kerrors.ValidateOneOf("output format", opts.format, outputFormats); err != nil {
				return err
			}
			return c.runConvert(cmd, path, &flags, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text, json")
	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "", "input format: bpseq, dotbracket (detected if empty)")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "print every ranked alternative")

	return cmd
}

// runConvert loads the input, converts it, and writes the output.
func (c *CLI) runConvert(cmd *cobra.Command, path string, flags *resolverFlags, opts convertOpts) error {
	ctx := cmd.Context()

	cfg, err := flags.load(cmd)
	if err != nil {
		return err
	}
	seq, err := readInput(cmd.InOrStdin(), path, opts.inputFormat)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	runner, err := c.newRunner(ctx, cfg, flags.noCache, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var spinner *Spinner
	if opts.output != "" {
		spinner = newSpinnerWithContext(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Resolving %d pairs...", seq.PairCount()))
		spinner.Start()
	}

	result, err := runner.Execute(ctx, seq, flags.options(cfg))
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Conversion failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	data, err := formatResult(result, opts.format, opts.all)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), opts.output, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if opts.output != "" {
		printSuccess("Conversion complete")
		printFile(opts.output)
		printStats(result.Stats, result.CacheHit)
	}
	return nil
}

// formatResult renders result as text or JSON. Text output is the sequence
// (when known) followed by the best structure, or by every alternative when
// all is set.
func formatResult(result *pipeline.Result, format string, all bool) ([]byte, error) {
	if format == outputJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}

	var b bytes.Buffer
	if result.DotBracket.Sequence != "" {
		b.WriteString(result.DotBracket.Sequence)
		b.WriteByte('\n')
	}
	structures := []string{result.DotBracket.Structure}
	if all {
		structures = result.Alternatives
	}
	for _, s := range structures {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	return b.Bytes(), nil
}
