// Package cli implements the semichord command-line interface.
//
// # Commands
//
//   - render: draw a dataset as SVG, PNG, DOT, Graphviz SVG or JSON
//   - inspect: print the computed keys, arcs and ribbon spans as tables
//   - explore: browse the shapes in a terminal UI and drive pointer
//     interactions through the real highlight handlers
//   - events: print the callback event name catalog
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is carried through the command context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/semichord/pkg/buildinfo"
	"github.com/matzehuels/semichord/pkg/chart"
	"github.com/matzehuels/semichord/pkg/pipeline"
)

const appName = "semichord"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	out    io.Writer
	status io.Writer
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), out: os.Stdout, status: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output, which defaults to stdout. Status
// lines and spinners go to the log writer.
func (c *CLI) SetOutput(w io.Writer) { c.out = w }

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Semichord draws tabular data as semi-chord diagrams",
		Long:         `Semichord lays out records as keys on the left of a circle and attributes as arcs on the right, joined by ribbons sized by each value's share of its attribute.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.eventsCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger, logHooks{logger: c.Logger})
}

// loadChart reads a dataset and mounts a chart on a box of the given size.
func (c *CLI) loadChart(ctx context.Context, input string, opts *chartOpts) (*chart.Chart, error) {
	po := pipeline.Options{
		DataPath:   input,
		ConfigPath: opts.config,
		Key:        opts.key,
		Attributes: opts.attributes,
		Width:      opts.width,
		Height:     opts.height,
		Logger:     loggerFromContext(ctx),
	}
	runner := c.newRunner()
	records, cfg, err := runner.Load(ctx, po)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", input, err)
	}
	po.Records, po.Config = records, cfg
	ch, err := runner.Build(ctx, po)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", input, err)
	}
	return ch, nil
}

// chartOpts are the flags shared by every command that builds a chart.
type chartOpts struct {
	config     string   // chart config file (toml, yaml or json)
	key        string   // key field, defaults to the first field
	attributes []string // attribute fields in display order
	width      float64  // container width in pixels
	height     float64  // container height in pixels
	attrsStr   string
}

// register binds the shared chart flags to cmd.
func (o *chartOpts) register(cmd *cobra.Command) {
	o.width, o.height = pipeline.DefaultWidth, pipeline.DefaultHeight
	cmd.Flags().StringVarP(&o.config, "config", "c", "", "chart config file (.toml, .yaml, .json)")
	cmd.Flags().StringVar(&o.key, "key", "", "key field (default: first field)")
	cmd.Flags().StringVar(&o.attrsStr, "attributes", "", "attribute fields in display order (comma-separated)")
	cmd.Flags().Float64Var(&o.width, "width", o.width, "container width")
	cmd.Flags().Float64Var(&o.height, "height", o.height, "container height")
}

// parse finalizes list flags after cobra has parsed the command line.
func (o *chartOpts) parse() { o.attributes = parseList(o.attrsStr) }

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseList parses a comma-separated flag into a slice, nil when empty.
func parseList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return parseFormats(s)
}

// basePath derives the base output path from the output and input paths.
// A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
