package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/semichord/pkg/cache"
	"github.com/matzehuels/semichord/pkg/chart"
	"github.com/matzehuels/semichord/pkg/config"
	"github.com/matzehuels/semichord/pkg/dataset"
	pkgio "github.com/matzehuels/semichord/pkg/io"
	"github.com/matzehuels/semichord/pkg/observability"
)

// Runner executes pipeline stages. It keeps no results between runs, so
// one Runner can serve several goroutines with different options.
type Runner struct {
	Logger *log.Logger
	Hooks  observability.PipelineHooks

	// Cache serves PNG, DOT and Graphviz artifacts of identical input
	// without rendering them again. NewRunner sets [cache.Null]; nil is
	// treated the same.
	Cache cache.Cache
	// CacheTTL bounds the lifetime of cached artifacts. Zero keeps them.
	CacheTTL time.Duration
}

// NewRunner creates a runner. A nil logger uses log.Default() and nil hooks
// use the global registry.
func NewRunner(logger *log.Logger, hooks observability.PipelineHooks) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if hooks == nil {
		hooks = observability.Pipeline()
	}
	return &Runner{Logger: logger, Hooks: hooks, Cache: cache.Null}
}

// Execute runs the complete load → build → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	records, cfg, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	opts.Records, opts.Config = records, cfg

	r.Logger.Info("loaded data", "records", len(records), "duration", result.Stats.LoadTime)

	// Stage 2: Build
	buildStart := time.Now()
	c, err := r.Build(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Chart = c
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Records = len(c.Table().Records)
	result.Stats.Attributes = len(c.Table().Attributes)
	result.Stats.Shapes = c.Elements().Surface().Len()

	r.Logger.Info("computed layout",
		"attributes", result.Stats.Attributes,
		"shapes", result.Stats.Shapes,
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, c, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs", "formats", opts.Formats, "duration", result.Stats.RenderTime)
	return result, nil
}

// Load reads the records and configuration named by opts. In-memory
// records and configs are returned as given.
func (r *Runner) Load(ctx context.Context, opts Options) ([]dataset.Record, *config.Config, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, nil, err
	}

	records := opts.Records
	if records == nil {
		start := time.Now()
		r.Hooks.OnLoadStart(ctx, opts.DataPath)
		var err error
		records, err = pkgio.ImportRecords(opts.DataPath)
		r.Hooks.OnLoadComplete(ctx, opts.DataPath, len(records), time.Since(start), err)
		if err != nil {
			return nil, nil, err
		}
		r.Logger.Debug("read data file", "path", opts.DataPath, "records", len(records))
	}

	cfg := opts.Config
	if cfg == nil && opts.ConfigPath != "" {
		var err error
		if cfg, err = pkgio.LoadConfig(opts.ConfigPath); err != nil {
			return nil, nil, err
		}
		r.Logger.Debug("read config file", "path", opts.ConfigPath)
	}
	return records, cfg, nil
}

// Build validates the input and mounts a chart on a box of the configured
// size. Callback delivery is left to the caller through
// [chart.Chart.RunPending].
func (r *Runner) Build(_ context.Context, opts Options) (*chart.Chart, error) {
	opts.SetBuildDefaults()
	r.applyLogger(&opts)

	chartOpts := []chart.Option{
		chart.WithConfig(opts.Config),
		chart.WithLogger(opts.Logger),
		chart.WithMeasurer(opts.Measurer),
	}
	if opts.Key != "" {
		chartOpts = append(chartOpts, chart.WithKey(opts.Key))
	}
	if len(opts.Attributes) > 0 {
		chartOpts = append(chartOpts, chart.WithAttributes(opts.Attributes...))
	}
	return chart.New(opts.Container(), opts.Records, chartOpts...)
}

// Render generates artifacts for c in every requested format.
func (r *Runner) Render(ctx context.Context, c *chart.Chart, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	start := time.Now()
	r.Hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, err := r.renderCached(ctx, c, opts)
	r.Hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
