package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgstack/pkg/pipeline"
	"github.com/matzehuels/svgstack/pkg/svg"
)

// stackCommand creates the stack command.
func (c *CLI) stackCommand() *cobra.Command {
	var (
		output string
		flags  cacheFlags
	)
	opts := pipeline.DefaultStackOptions()

	cmd := &cobra.Command{
		Use:   "stack <first.svg> <second.svg>",
		Short: "Stack two SVG documents into one",
		Long: `Stack places the second document below the first (or to its right with
--horizontal) and writes the combined document. Both inputs must declare
their width and height in the same unit, points by default.

Use "-" to read one of the inputs from stdin.`,
		Example: `  svgstack stack lightcurve.svg cutouts.svg -o summary.svg
  svgstack stack a.svg b.svg --horizontal --separator=false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			second, err := readInput(cmd, args[1])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(flags)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(loggerFromContext(cmd.Context()))
			res, err := runner.Stack(cmd.Context(), first, second, opts)
			if err != nil {
				return err
			}
			prog.done("Stacked documents", "first", args[0], "second", args[1])

			return reportOutput(cmd, output, "svg", res)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.Horizontal, "horizontal", false, "place the second document to the right instead of below")
	cmd.Flags().BoolVar(&opts.Separator, "separator", true, "draw a line between the documents")
	cmd.Flags().StringVar(&opts.Unit, "unit", svg.DefaultUnit, "unit suffix of the input widths and heights")
	cmd.Flags().BoolVar(&opts.Minify, "minify", false, "minify the combined document")
	flags.register(cmd)

	return cmd
}

// rescaleCommand creates the rescale command.
func (c *CLI) rescaleCommand() *cobra.Command {
	var (
		output string
		scale  float64
		flags  cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "rescale <input.svg>",
		Short: "Scale an SVG document uniformly",
		Long: `Rescale wraps the document content in a scale transform and declares the
scaled size in pixels. Fractional input sizes are truncated first.`,
		Example: `  svgstack rescale plot.svg --scale 0.5 -o thumb.svg`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(flags)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Rescale(cmd.Context(), content, scale)
			if err != nil {
				return err
			}
			return reportOutput(cmd, output, "svg", res)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().Float64VarP(&scale, "scale", "s", 1, "scale factor (> 0)")
	flags.register(cmd)

	return cmd
}

// reportOutput writes a pipeline result and, when it went to a file,
// prints where it went.
func reportOutput(cmd *cobra.Command, path, kind string, res *pipeline.Result) error {
	wrote, err := writeOutput(cmd, path, res.Data)
	if err != nil {
		return err
	}
	if wrote {
		printSuccess("Wrote %s", kind)
		printFile(path)
		printArtifact(kind, len(res.Data), res.CacheHit)
	}
	return nil
}
