// Package pipeline runs the file-to-artifact flow shared by the CLI
// commands: load → validate → layout → render → sink.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read the dataset and the optional configuration file
//  2. Build: validate the input, compute the layout and build the shapes
//     by mounting a [chart.Chart] on a fixed-size box
//  3. Render: translate the shapes into the requested formats
//
// Each stage can be run on its own.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    DataPath: "sales.csv",
//	    Formats:  []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/semichord/pkg/chart"
	"github.com/matzehuels/semichord/pkg/config"
	"github.com/matzehuels/semichord/pkg/dataset"
	"github.com/matzehuels/semichord/pkg/errors"
	"github.com/matzehuels/semichord/pkg/fonts"
)

const (
	// DefaultWidth is the default container width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default container height in pixels.
	DefaultHeight = 500.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
	// FormatGraph is the DOT export laid out by Graphviz as SVG.
	FormatGraph = "graph"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatPNG:   true,
	FormatDOT:   true,
	FormatJSON:  true,
	FormatGraph: true,
}

// Extension returns the file extension written for format.
func Extension(format string) string {
	if format == FormatGraph {
		return "graph.svg"
	}
	return format
}

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options. Records take precedence over DataPath; Config over
	// ConfigPath.
	DataPath   string           `json:"data_path,omitempty"`
	ConfigPath string           `json:"config_path,omitempty"`
	Records    []dataset.Record `json:"-"`
	Config     *config.Config   `json:"-"`

	// Build options
	Key        string   `json:"key,omitempty"`
	Attributes []string `json:"attributes,omitempty"`
	Width      float64  `json:"width,omitempty"`
	Height     float64  `json:"height,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Title       string   `json:"title,omitempty"`
	Scale       float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger    `json:"-"`
	Measurer fonts.Measurer `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chart is the mounted chart. Its surface reflects the rendered state.
	Chart *chart.Chart

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	Attributes int
	Shapes     int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, dot, json, graph)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetBuildDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that there is something to load.
func (o *Options) ValidateForLoad() error {
	if o.Records == nil && o.DataPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "data path or records are required")
	}
	if o.DataPath != "" {
		if err := errors.ValidatePath(o.DataPath); err != nil {
			return err
		}
	}
	if o.ConfigPath != "" {
		if err := errors.ValidatePath(o.ConfigPath); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// SetBuildDefaults sets the container size defaults.
func (o *Options) SetBuildDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Measurer == nil {
		o.Measurer = fonts.Default()
	}
	o.setLogger()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Container returns the fixed-size element the chart is mounted on.
func (o *Options) Container() config.Box {
	return config.Box{Width: o.Width, Height: o.Height}
}
