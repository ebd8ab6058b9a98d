package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/semichord/pkg/cache"
	"github.com/matzehuels/semichord/pkg/errors"
	"github.com/matzehuels/semichord/pkg/pipeline"
)

// cacheTTL bounds how long cached artifacts are reused.
const cacheTTL = 7 * 24 * time.Hour

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	chartOpts
	output      string   // output file path (or base path for multiple outputs), "-" for stdout
	formats     []string // output formats: svg, png, dot, json, graph
	interactive bool     // embed the hover script in SVG output
	title       string   // SVG document title
	scale       float64  // PNG scale factor
	cacheDir    string   // artifact cache directory, empty to disable
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [data]",
		Short: "Render a dataset as a semi-chord diagram",
		Long: `Render reads a JSON, CSV, TOML or YAML dataset and writes the diagram in
every requested format. With a single format and --output the file is written
as given; otherwise one file per format is written next to the base path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.parse()
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple), - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json, graph (comma-separated)")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "embed hover highlighting in SVG output")
	cmd.Flags().StringVar(&opts.title, "title", "", "SVG document title")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "reuse PNG, DOT and graph artifacts cached in this directory")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)
	sw := startStopwatch(logger)

	runner := c.newRunner()
	if opts.cacheDir != "" {
		fc, err := cache.NewFileCache(opts.cacheDir)
		if err != nil {
			return err
		}
		defer fc.Close()
		runner.Cache, runner.CacheTTL = fc, cacheTTL
	}

	// Rasterizing and Graphviz layout are the slow formats.
	var spin *spinner
	if slices.Contains(opts.formats, pipeline.FormatPNG) || slices.Contains(opts.formats, pipeline.FormatGraph) {
		spin = newSpinner(ctx, c.status, "Rendering "+input)
		spin.Start()
	}

	res, err := runner.Execute(ctx, pipeline.Options{
		DataPath:    input,
		ConfigPath:  opts.config,
		Key:         opts.key,
		Attributes:  opts.attributes,
		Width:       opts.width,
		Height:      opts.height,
		Formats:     opts.formats,
		Interactive: opts.interactive,
		Title:       opts.title,
		Scale:       opts.scale,
		Logger:      logger,
	})
	if spin != nil {
		if err != nil {
			spin.StopWithError("Rendering failed")
		} else {
			spin.Stop()
		}
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", input, err)
	}
	sw.done("rendered", "records", res.Stats.Records, "attributes", res.Stats.Attributes, "shapes", res.Stats.Shapes)

	for _, format := range opts.formats {
		path := outputPath(input, opts, format)
		if err := writeOutput(path, res.Artifacts[format], c.out); err != nil {
			return err
		}
		if path != "-" {
			printFile(c.out, path)
		}
	}
	return nil
}

// outputPath picks the file for format: the output flag as given for a
// single format or stdout, otherwise base.ext.
func outputPath(input string, opts *renderOpts, format string) string {
	if opts.output != "" && (len(opts.formats) == 1 || opts.output == "-") {
		return opts.output
	}
	return basePath(opts.output, input) + "." + pipeline.Extension(format)
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	out, err := openOutput(path, stdout)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer out.Close()

	_, err = out.Write(data)
	return err
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a writer for path, or stdout for "-".
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{stdout}, nil
	}
	return os.Create(path)
}
