package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/semichord/pkg/geom"
	"github.com/matzehuels/semichord/pkg/layout"
)

// minPenWidth and maxPenWidth bound edge thickness in DOT output.
const (
	minPenWidth = 1.0
	maxPenWidth = 8.0
)

// ToDOT converts the chart layout to Graphviz DOT format. Keys and
// attributes become nodes, and every ribbon with a non-zero angular width
// becomes an edge from its key to its attribute, labelled with the value.
// Edge thickness follows the ribbon's share of its arc.
func ToDOT(cc *layout.Coordinates) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.5;\n")
	buf.WriteString("\n")

	for _, k := range cc.Keys {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=box, style=rounded];\n", keyNode(k.Text), k.Text)
	}
	for _, a := range cc.Arcs {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, style=filled, fillcolor=%q];\n",
			attrNode(a.Attribute), a.Attribute, a.Color)
	}

	buf.WriteString("\n")
	for _, r := range cc.Ribbons {
		if r.Width() <= 0 {
			continue
		}
		arc, _ := cc.Arc(r.Attribute)
		attrs := []string{
			fmt.Sprintf("label=%q", r.Datum.Value.String()),
			fmt.Sprintf("color=%q", r.Color),
			"penwidth=" + geom.Number(penWidth(r, arc)),
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", keyNode(r.Datum.Key), attrNode(r.Attribute), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func keyNode(k string) string  { return "key:" + k }
func attrNode(a string) string { return "attr:" + a }

func penWidth(r layout.Ribbon, a layout.Arc) float64 {
	span := a.End - a.Start
	if span <= 0 {
		return minPenWidth
	}
	w := minPenWidth + (maxPenWidth-minPenWidth)*r.Width()/span
	return float64(int(w*100)) / 100
}

// RenderDOTSVG lays out a DOT graph with Graphviz and returns the SVG.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based size attributes with a
// plain pixel viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
