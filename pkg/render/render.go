// Package render turns computed chart coordinates into a [shape.Surface].
//
// # Overview
//
// [Build] instantiates one styled shape per visual element, in paint order:
//
//   - base: a transparent rect spanning every other shape, catching clicks
//     on empty space
//   - outline: the circle behind the ribbons
//   - ribbons: one per record and attribute
//   - keys: a point and a text per record
//   - attributes: one arc per attribute
//   - titles: one title text per attribute
//   - labels: per attribute, a backdrop followed by one "key : value" text
//     per record
//
// Labels are laid out next to their attribute title and need the title's
// rendered width, so Build measures text with a [fonts.Measurer].
//
// # Interaction
//
// After placing every shape, Build hands each interactive shape to a
// [Wiring], normally an [interact.Handlers], which installs its enter,
// leave and click handlers. The renderer itself attaches no behaviour.
//
// [interact.Handlers]: github.com/matzehuels/semichord/pkg/interact
package render

import (
	"math"

	"github.com/matzehuels/semichord/pkg/config"
	"github.com/matzehuels/semichord/pkg/dataset"
	"github.com/matzehuels/semichord/pkg/fonts"
	"github.com/matzehuels/semichord/pkg/geom"
	"github.com/matzehuels/semichord/pkg/interact"
	"github.com/matzehuels/semichord/pkg/layout"
	"github.com/matzehuels/semichord/pkg/shape"
)

// Text placement offsets, in pixels or fractions of the chart radius.
const (
	keyTextOffsetX = 0.08
	keyTextOffsetY = 0.025

	labelIndent      = 5
	backdropIndent   = 5
	backdropOverhang = 15

	baselineCentral = "central"
	anchorEnd       = "end"
	weightNormal    = "normal"
)

// Wiring installs interaction handlers on a freshly built shape.
type Wiring interface {
	Wire(s *shape.Shape)
}

// Options carries the collaborators of [Build]. Zero fields get defaults.
type Options struct {
	// ID prefixes every shape ID on the surface.
	ID string
	// Measurer measures text. Defaults to [fonts.Default].
	Measurer fonts.Measurer
	// Wiring, if set, receives every interactive shape.
	Wiring Wiring
}

type builder struct {
	cfg     *config.Config
	cc      *layout.Coordinates
	measure fonts.Measurer
	surface *shape.Surface
}

// Build creates a surface for cc styled by cfg. cfg must have been through
// [config.Validate].
func Build(cc *layout.Coordinates, cfg *config.Config, opts Options) *shape.Surface {
	if opts.Measurer == nil {
		opts.Measurer = fonts.Default()
	}
	b := &builder{
		cfg:     cfg,
		cc:      cc,
		measure: opts.Measurer,
		surface: shape.NewSurface(opts.ID),
	}

	b.outline()
	b.ribbons()
	b.keys()
	titles := b.attributes()
	if !cfg.ValueLabel.Disable {
		b.labels(titles)
	}
	b.base()

	if opts.Wiring != nil {
		for _, s := range b.surface.Shapes() {
			if s.Kind != shape.Outline {
				opts.Wiring.Wire(s)
			}
		}
	}
	return b.surface
}

func (b *builder) outline() {
	c, oc := b.cc.Circle, b.cfg.OutlineCircle
	b.surface.Add(shape.GroupOutline, &shape.Shape{
		Kind:   shape.Outline,
		Center: geom.Point{X: c.CX, Y: c.CY},
		Radius: c.R,
		Bounds: circleBounds(geom.Point{X: c.CX, Y: c.CY}, c.R),
		Style: shape.Style{
			Fill:        oc.Fill,
			FillOpacity: 1,
			Stroke:      oc.Stroke,
			StrokeWidth: oc.StrokeWidth,
		},
	})
}

func (b *builder) ribbons() {
	for _, r := range b.cc.Ribbons {
		b.surface.Add(shape.GroupRibbons, &shape.Shape{
			Kind:   shape.Ribbon,
			Datum:  r.Datum,
			Path:   geom.RibbonPath(r.Source, r.Start, r.End, r.Mid),
			Bounds: ribbonBounds(r),
			Color:  r.Color,
			Style: shape.Style{
				Fill:        r.Color,
				FillOpacity: b.cfg.Ribbon.Opacity,
			},
		})
	}
}

func (b *builder) keys() {
	kc := b.cfg.Key
	r := b.cc.Circle.R
	for _, k := range b.cc.Keys {
		b.surface.Add(shape.GroupKeys, &shape.Shape{
			Kind:   shape.KeyPoint,
			Datum:  k.Datum,
			Center: k.Point,
			Radius: kc.Radius,
			Bounds: circleBounds(k.Point, kc.Radius),
			Color:  kc.Color,
			Style:  shape.Style{Fill: kc.Color, FillOpacity: 1},
		})

		pos := k.Point.Add(-keyTextOffsetX*r, keyTextOffsetY*r)
		w := b.measure.Width(k.Text, kc.FontSize, false)
		b.surface.Add(shape.GroupKeys, &shape.Shape{
			Kind:   shape.KeyText,
			Datum:  k.Datum,
			Pos:    pos,
			Text:   k.Text,
			Bounds: geom.Rect{X: pos.X - w, Y: pos.Y - kc.FontSize, W: w, H: kc.FontSize},
			Color:  kc.FontColor,
			Style: shape.Style{
				Fill:        kc.FontColor,
				FillOpacity: 1,
				FontFamily:  b.cfg.FontFamily,
				FontSize:    kc.FontSize,
				TextAnchor:  anchorEnd,
			},
		})
	}
}

// attributes adds arcs and titles and returns the title bounds per
// attribute, in attribute order.
func (b *builder) attributes() []geom.Rect {
	ac := b.cfg.Arc
	c := b.cc.Circle
	w := b.cc.ArcWidth
	inner, outer := c.R-0.25*ac.Width, c.R+0.75*ac.Width

	titles := make([]geom.Rect, len(b.cc.Arcs))
	for i, a := range b.cc.Arcs {
		b.surface.Add(shape.GroupAttributes, &shape.Shape{
			Kind:   shape.Arc,
			Datum:  a.Datum,
			Path:   geom.ArcPath(c, inner, outer, a.Start, a.End),
			Bounds: sectorBounds(c, inner, outer, a.Start, a.End),
			Color:  a.Color,
			Style:  shape.Style{Fill: a.Color, FillOpacity: 1},
		})

		pos := c.Point(a.Mid(), c.R+w+ac.TitleTextOffset)
		tw := b.measure.Width(a.Attribute, ac.TitleFontSize, false)
		titles[i] = geom.Rect{X: pos.X, Y: pos.Y - ac.TitleFontSize/2, W: tw, H: ac.TitleFontSize}
		b.surface.Add(shape.GroupTitles, &shape.Shape{
			Kind:   shape.ArcTitle,
			Datum:  a.Datum,
			Pos:    pos,
			Text:   a.Attribute,
			Bounds: titles[i],
			Color:  a.Color,
			Style: shape.Style{
				Fill:        a.Color,
				FillOpacity: 1,
				FontFamily:  b.cfg.FontFamily,
				FontSize:    ac.TitleFontSize,
				Baseline:    baselineCentral,
			},
		})
	}
	return titles
}

// labels adds a backdrop and a label cluster next to each title.
func (b *builder) labels(titles []geom.Rect) {
	vl := b.cfg.ValueLabel
	labelOpacity := interact.RestOpacity(b.cfg, shape.Label)
	backdropOpacity := interact.RestOpacity(b.cfg, shape.Backdrop)

	for i, a := range b.cc.Arcs {
		ribbons := b.ribbonsOf(a.Attribute)
		n := len(ribbons)
		if n == 0 {
			continue
		}

		x := titles[i].Right() + vl.OffsetX
		y := titles[i].Center().Y
		dy := clusterOffsets(n, vl.VerticalSpace)

		width := 0.0
		for _, r := range ribbons {
			width = math.Max(width, b.measure.Width(r.Text, vl.FontSize, false))
		}

		centerLeft := geom.Point{X: x - (vl.OffsetX - vl.BackdropOffsetX), Y: y}
		topLeft := geom.Point{X: x - backdropIndent + math.Abs(dy[0])/2, Y: y + dy[0] - backdropOverhang}
		bottomLeft := geom.Point{X: x - backdropIndent + math.Abs(dy[n-1])/2, Y: y + dy[n-1] + backdropOverhang}
		b.surface.Add(shape.GroupLabels, &shape.Shape{
			Kind:   shape.Backdrop,
			Datum:  dataset.Datum{Attribute: a.Attribute, Values: a.Datum.Values},
			Path:   geom.LabelBackdropPath(centerLeft, topLeft, bottomLeft, width),
			Bounds: backdropBounds(centerLeft, topLeft, bottomLeft, width),
			Color:  a.Color,
			Style:  shape.Style{Fill: a.Color, FillOpacity: backdropOpacity},
		})

		for j, r := range ribbons {
			pos := geom.Point{X: x + labelIndent + math.Abs(dy[j])/2, Y: y + dy[j]}
			lw := b.measure.Width(r.Text, vl.FontSize, false)
			b.surface.Add(shape.GroupLabels, &shape.Shape{
				Kind:   shape.Label,
				Datum:  r.Datum,
				Pos:    pos,
				Text:   r.Text,
				Bounds: geom.Rect{X: pos.X, Y: pos.Y - vl.FontSize, W: lw, H: vl.FontSize},
				Color:  r.Color,
				Style: shape.Style{
					Fill:        r.Color,
					FillOpacity: labelOpacity,
					FontFamily:  b.cfg.FontFamily,
					FontSize:    vl.FontSize,
					FontWeight:  weightNormal,
				},
			})
		}
	}
}

func (b *builder) ribbonsOf(attribute string) []layout.Ribbon {
	var out []layout.Ribbon
	for _, r := range b.cc.Ribbons {
		if r.Attribute == attribute {
			out = append(out, r)
		}
	}
	return out
}

// base adds the click catcher once every other shape has its bounds.
func (b *builder) base() {
	bounds := b.surface.Bounds()
	b.surface.Add(shape.GroupBase, &shape.Shape{
		Kind:   shape.Base,
		Rect:   bounds,
		Bounds: bounds,
		Style:  shape.Style{Fill: "#fff", FillOpacity: 0},
	})
}

// clusterOffsets spreads n labels over a band of n*h pixels centred on 0,
// mapping index 0..n-1 linearly onto -n*h/2..n*h/2. A single label sits
// at 0.
func clusterOffsets(n int, h float64) []float64 {
	out := make([]float64, n)
	if n == 1 {
		return out
	}
	half := float64(n) * h / 2
	for j := range out {
		out[j] = -half + float64(j)*2*half/float64(n-1)
	}
	return out
}
