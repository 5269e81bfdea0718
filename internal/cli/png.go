package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgstack/pkg/errors"
	"github.com/matzehuels/svgstack/pkg/pipeline"
	"github.com/matzehuels/svgstack/pkg/render"
)

// pngCommand creates the png command.
func (c *CLI) pngCommand() *cobra.Command {
	var (
		output string
		tag    bool
		flags  cacheFlags
		opts   = pipeline.PNGOptions{DPI: render.DefaultDPI, Backend: "native"}
	)

	cmd := &cobra.Command{
		Use:   "png <input.svg>",
		Short: "Rasterize an SVG document to PNG",
		Long: `Png rasterizes the document at the given resolution. With --tag the PNG
is written as an HTML <img> tag with an inline base64 data URI, ready to
embed in a page or notebook.

The native backend is pure Go. The rsvg backend shells out to rsvg-convert
and handles text and filters more faithfully.`,
		Example: `  svgstack png summary.svg -o summary.png --dpi 150
  svgstack png summary.svg --tag > summary.html`,
		Args: cobra.ExactArgs(1),
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

			var spinner *Spinner
			if output != "" && isTerminal(os.Stderr) {
				spinner = newSpinnerWithContext(cmd.Context(), cmd.ErrOrStderr(), fmt.Sprintf("Rasterizing %s at %g dpi...", args[0], opts.DPI))
				spinner.Start()
			}

			res, err := runner.PNG(cmd.Context(), content, opts)
			if spinner != nil {
				if err != nil {
					spinner.StopWithError("Rasterization failed")
				} else {
					spinner.Stop()
				}
			}
			if err != nil {
				return err
			}

			if tag {
				res.Data = []byte(render.EncodeImgTag(res.Data) + "\n")
				return reportOutput(cmd, output, "img tag", res)
			}
			if output == "" && terminalOut(cmd.OutOrStdout()) {
				return errors.New(errors.ErrCodeInvalidArgument, "refusing to write binary PNG to a terminal; use -o or --tag")
			}
			return reportOutput(cmd, output, "png", res)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().Float64Var(&opts.DPI, "dpi", render.DefaultDPI, "output resolution in dots per inch")
	cmd.Flags().StringVar(&opts.Backend, "backend", "native", "rasterizer backend: native or rsvg")
	cmd.Flags().BoolVar(&tag, "tag", false, "write an <img> tag with a base64 data URI instead of raw PNG")
	flags.register(cmd)

	return cmd
}

// terminalOut reports whether w writes to a terminal. Tests replace it.
var terminalOut = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
