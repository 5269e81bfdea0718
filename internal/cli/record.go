package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/svgstack/pkg/errors"
	"github.com/matzehuels/svgstack/pkg/figure"
	"github.com/matzehuels/svgstack/pkg/record"
	"github.com/matzehuels/svgstack/pkg/store"
)

// recordOpts holds the command-line flags for the record command.
type recordOpts struct {
	name     string   // record name (default: input base name with .svg)
	title    string   // record title
	tags     []string // record tags
	compress int      // 0 none, 1 compress, 2 compress and keep text
	figTitle bool     // draw the title into the figure
	width    float64  // figure width in inches
	height   float64  // figure height in inches
	props    string   // TOML plot properties file
	args     []string // key=value pairs for property format strings
	diskSave string   // directory for a plain SVG copy
	storeDir string   // file store directory
	output   string   // record JSON output path
}

// recordCommand creates the record command.
func (c *CLI) recordCommand() *cobra.Command {
	opts := recordOpts{compress: int(record.Compress)}

	cmd := &cobra.Command{
		Use:   "record <input>",
		Short: "Render a figure into a compressed plot record",
		Long: `Record renders a figure to SVG and wraps it in a record with a name,
title and tags, compressing the SVG unless --compress=0.

The figure type follows the input extension:
  .svg        pre-rendered SVG
  .dot, .gv   Graphviz graph
  .csv, .tsv  line plot, first column is x

With --props the name, title, tags, size and compression come from a TOML
properties file whose format strings are filled from --arg key=value.`,
		Example: `  svgstack record lightcurve.csv --title "Light curve" --tag SCIENCE -o lc.json
  svgstack record deps.dot --props plot.toml --arg stock=ZTF21abc --store ./records`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRecord(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "record name (default: input name with .svg extension)")
	cmd.Flags().StringVar(&opts.title, "title", "", "record title")
	cmd.Flags().StringSliceVar(&opts.tags, "tag", nil, "record tag (repeatable)")
	cmd.Flags().IntVar(&opts.compress, "compress", opts.compress, "0: plain text, 1: compressed, 2: compressed plus text")
	cmd.Flags().BoolVar(&opts.figTitle, "fig-title", false, "draw the title into the figure")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "figure width in inches")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "figure height in inches")
	cmd.Flags().StringVar(&opts.props, "props", "", "TOML plot properties file")
	cmd.Flags().StringArrayVar(&opts.args, "arg", nil, "key=value used by property format strings (repeatable)")
	cmd.Flags().StringVar(&opts.diskSave, "disk-save", "", "also write the plain SVG into this directory")
	cmd.Flags().StringVar(&opts.storeDir, "store", "", "save the record into this record directory")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "record JSON output file (default stdout)")

	return cmd
}

func (c *CLI) runRecord(cmd *cobra.Command, input string, opts recordOpts) error {
	fig, err := openFigure(input)
	if err != nil {
		return err
	}

	var rec *record.Record
	if opts.props != "" {
		if changed(cmd, "title", "tag", "compress", "fig-title", "width", "height") {
			printWarning("Ignoring record flags; %s sets them", opts.props)
		}
		props, err := record.LoadProperties(opts.props)
		if err != nil {
			return err
		}
		extra, err := parseArgs(opts.args)
		if err != nil {
			return err
		}
		ropts := []record.Option{record.WithLogger(loggerFromContext(cmd.Context()))}
		if opts.diskSave != "" {
			ropts = append(ropts, record.WithDiskSave(opts.diskSave))
		}
		rec, err = record.FromProperties(fig, props, extra, ropts...)
		if err != nil {
			return err
		}
	} else {
		rec, err = c.recordFromFlags(cmd, fig, input, opts)
		if err != nil {
			return err
		}
	}

	if opts.storeDir != "" {
		st, err := store.NewFileStore(opts.storeDir)
		if err != nil {
			return err
		}
		defer st.Close()
		id, err := st.Put(cmd.Context(), rec)
		if err != nil {
			return err
		}
		loggerFromContext(cmd.Context()).Info("Stored plot", "name", rec.Name, "id", id)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	wrote, err := writeOutput(cmd, opts.output, append(data, '\n'))
	if err != nil {
		return err
	}
	if wrote {
		printSuccess("Recorded %s", rec.Name)
		printFile(opts.output)
		printNextStep("Extract the SVG", fmt.Sprintf("%s decompress %s --svg %s", appName, opts.output, rec.Name))
	}
	return nil
}

// changed reports whether any of the named flags was set on the command line.
func changed(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}

func (c *CLI) recordFromFlags(cmd *cobra.Command, fig figure.Figure, input string, opts recordOpts) (*record.Record, error) {
	compression, err := record.ParseCompression(opts.compress)
	if err != nil {
		return nil, err
	}
	name := opts.name
	if name == "" {
		base := filepath.Base(input)
		name = strings.TrimSuffix(base, filepath.Ext(base)) + ".svg"
	}

	ropts := []record.Option{
		record.WithCompression(compression),
		record.WithTitle(opts.title),
		record.WithTags(opts.tags...),
	}
	if opts.figTitle {
		ropts = append(ropts, record.WithFigureTitle())
	}
	if opts.width > 0 && opts.height > 0 {
		ropts = append(ropts, record.WithSize(opts.width, opts.height))
	}
	if opts.diskSave != "" {
		ropts = append(ropts, record.WithDiskSave(opts.diskSave))
	}

	runner, err := c.newRunner(cacheFlags{noCache: true})
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	return runner.Record(cmd.Context(), fig, name, ropts...)
}

// openFigure picks a figure backend from the input extension.
func openFigure(path string) (figure.Figure, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".svg":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return figure.Static(data), nil
	case ".dot", ".gv":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return figure.NewGraph(string(data)), nil
	case ".csv", ".tsv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		comma := ','
		if ext == ".tsv" {
			comma = '\t'
		}
		return figure.ReadTable(f, comma)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input %q (want .svg, .dot, .gv, .csv or .tsv)", filepath.Base(path))
}

// parseArgs turns key=value pairs into property format arguments.
func parseArgs(pairs []string) (map[string]any, error) {
	extra := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "--arg %q must be key=value", p)
		}
		extra[k] = v
	}
	return extra, nil
}

// decompressCommand creates the decompress command.
func (c *CLI) decompressCommand() *cobra.Command {
	var output, svgOut string

	cmd := &cobra.Command{
		Use:   "decompress <record.json>",
		Short: "Decompress a plot record",
		Long: `Decompress reads a record written by "record" and replaces a compressed
SVG payload with its text. Records that are already plain pass through
unchanged. With --svg only the SVG text is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			var rec record.Record
			if err := json.Unmarshal([]byte(data), &rec); err != nil {
				return err
			}
			if _, err := record.DecompressValue(&rec, nil); err != nil {
				return err
			}

			if svgOut != "" {
				text, _ := rec.Text()
				if _, err := writeOutput(cmd, svgOut, []byte(text)); err != nil {
					return err
				}
				if svgOut != "-" {
					printSuccess("Extracted %s", rec.Name)
					printFile(svgOut)
				}
				return nil
			}

			out, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			wrote, err := writeOutput(cmd, output, append(out, '\n'))
			if err != nil {
				return err
			}
			if wrote {
				printKeyValue("name", rec.Name)
				if rec.Title != "" {
					printKeyValue("title", rec.Title)
				}
				if len(rec.Tags) > 0 {
					printKeyValue("tags", strings.Join(rec.Tags, ", "))
				}
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "decompressed record JSON output (default stdout)")
	cmd.Flags().StringVar(&svgOut, "svg", "", "write only the SVG text to this file (- for stdout)")

	return cmd
}
