package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/semichord/pkg/chart"
	"github.com/matzehuels/semichord/pkg/sink"
)

// Render generates output artifacts for c in the requested formats.
func Render(ctx context.Context, c *chart.Chart, opts Options) (map[string][]byte, error) {
	surface := c.Elements().Surface()
	svgOpts := buildSVGOptions(c, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(surface, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(surface, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatDOT:
			data = []byte(sink.ToDOT(c.Coordinates()))
		case FormatGraph:
			data, err = sink.RenderDOTSVG(ctx, sink.ToDOT(c.Coordinates()))
		case FormatJSON:
			data, err = sink.RenderJSON(surface)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options. The browser script uses the
// chart's own ribbon opacities.
func buildSVGOptions(c *chart.Chart, opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.Interactive {
		if cfg := c.Config(); cfg != nil && !cfg.DisableInteractions {
			svgOpts = append(svgOpts, sink.WithInteractive(cfg.Ribbon.HoverOpacity, cfg.Ribbon.HoverInverseOpacity))
		}
	}
	return svgOpts
}
