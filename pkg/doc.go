// Package pkg provides the libraries behind semichord, a semi-chord diagram
// engine.
//
// # Overview
//
// A semi-chord diagram draws each record's key as a point on the left half
// of a circle and each numeric attribute as an arc on the right half. A
// ribbon joins every key to its slice of every attribute arc, sized by the
// value's share of the attribute total. The pkg directory is organized into
// four areas:
//
//  1. Data - [dataset], [config] and [io]: records, tables, chart settings
//     and the file formats they are read from
//  2. Layout - [geom], [scale], [layout] and [fonts]: angles, colors and
//     text metrics
//  3. Drawing and interaction - [shape], [render], [events], [interact] and
//     [chart]: the shape surface, the highlight state machine and the
//     public chart handle
//  4. Output - [sink] and [pipeline]: SVG, PNG, DOT and JSON artifacts
//
// # Architecture
//
// The typical data flow:
//
//	Data file (JSON, CSV, TOML, YAML)
//	         ↓
//	    [io] package (ordered records)
//	         ↓
//	    [dataset] package (key, attributes, zero-filled table)
//	         ↓
//	    [layout] package (key points, arcs, ribbon spans)
//	         ↓
//	    [render] package (shape surface wired to [interact] handlers)
//	         ↓
//	    [sink] package (SVG/PNG/DOT/JSON output)
//
// # Quick Start
//
//	records, _ := io.ImportRecords("sales.csv")
//	c, err := chart.New(config.Box{Width: 800, Height: 500}, records,
//	    chart.WithKey("region"),
//	)
//	if err != nil {
//	    return err
//	}
//	c.Events().RegisterCallback("onRibbonClick", func(ev events.Event) {
//	    fmt.Println(ev.Data.Key, ev.Data.Attribute, ev.Data.Value)
//	})
//	svg := sink.RenderSVG(c.Elements().Surface(), sink.WithInteractive(0.8, 0.1))
//
// # Common Workflows
//
// Highlight from code and lock the result:
//
//	c.Interactions().HighlightRibbonByKey("North", false, true, false)
//	c.RunPending() // deliver the highlight callbacks
//
// Run the whole pipeline the way the CLI does:
//
//	runner := pipeline.NewRunner(logger, nil)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    DataPath: "sales.csv",
//	    Formats:  []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	})
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/interact/...  # Specific package
//	go test -run Example        # Examples only
//
// [dataset]: https://pkg.go.dev/github.com/matzehuels/semichord/pkg/dataset
// [config]: https://pkg.go.dev/github.com/matzehuels/semichord/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/semichord/pkg/io
// [geom]: https://pkg.go.dev/github.com/matzehuels/semichord/pkg/geom
// [scale]: https://pkg.go.dev/github.com/matzehuels/semichord/pkg/scale
// [layout]: https://pkg.go.dev/github.com/matzehuels/semichord/pkg/layout
// [fonts]: https://pkg.go.dev/github.com/matzehuels/semichord/pkg/fonts
// [shape]: https://pkg.go.dev/github.com/matzehuels/semichord/pkg/shape
// [render]: https://pkg.go.dev/github.com/matzehuels/semichord/pkg/render
// [events]: https://pkg.go.dev/github.com/matzehuels/semichord/pkg/events
// [interact]: https://pkg.go.dev/github.com/matzehuels/semichord/pkg/interact
// [chart]: https://pkg.go.dev/github.com/matzehuels/semichord/pkg/chart
// [sink]: https://pkg.go.dev/github.com/matzehuels/semichord/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/semichord/pkg/pipeline
package pkg
