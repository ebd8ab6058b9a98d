// Package sink translates a shape surface into output artifacts.
//
// # Formats
//
//   - [RenderSVG] writes an SVG document with one element per shape, grouped
//     by paint layer. [WithInteractive] embeds a small script reproducing
//     the hover highlight in a browser.
//   - [RenderPNG] rasterizes the SVG output. Text is not drawn: the
//     rasterizer has no font support.
//   - [ToDOT] exports the chart as a Graphviz graph with one edge per
//     non-empty ribbon, and [RenderDOTSVG] lays it out with Graphviz.
//   - [RenderJSON] dumps every shape with its geometry, style and datum.
//
// Sinks only read the surface; highlight state at the time of the call is
// what gets drawn.
package sink

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/semichord/pkg/geom"
	"github.com/matzehuels/semichord/pkg/shape"
)

const interactionCSS = `
    .sc-shape { transition: fill-opacity 0.15s ease; }
    .sc-ribbon.sc-on { fill-opacity: %[1]s !important; }
    .sc-ribbon.sc-dim { fill-opacity: %[2]s !important; }
    .sc-label.sc-on { font-weight: bold; }`

const interactionJS = `
    function scMatch(el, k, a) {
      return (!k || el.dataset.key === k) && (!a || el.dataset.attribute === a);
    }
    function scHighlight(k, a) {
      document.querySelectorAll('.sc-ribbon').forEach(r => {
        const on = scMatch(r, k, a);
        r.classList.toggle('sc-on', on);
        r.classList.toggle('sc-dim', !on);
      });
      document.querySelectorAll('.sc-label').forEach(l => l.classList.toggle('sc-on', scMatch(l, k, a)));
    }
    function scClear() {
      document.querySelectorAll('.sc-on, .sc-dim').forEach(el => el.classList.remove('sc-on', 'sc-dim'));
    }
    document.querySelectorAll('.sc-ribbon, .sc-key-point, .sc-key-text, .sc-arc, .sc-arc-title, .sc-label').forEach(el => {
      el.addEventListener('mouseenter', () => scHighlight(el.dataset.key, el.dataset.attribute));
      el.addEventListener('mouseleave', scClear);
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height int
	title         string
	interactive   bool
	hover, dim    float64
}

// WithSize sets the document size. By default it covers the surface bounds.
func WithSize(width, height int) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = width, height }
}

// WithTitle adds a document title.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithInteractive embeds hover highlighting using the given ribbon
// opacities for highlighted and dimmed ribbons.
func WithInteractive(hover, dim float64) SVGOption {
	return func(r *svgRenderer) {
		r.interactive = true
		r.hover, r.dim = hover, dim
	}
}

// RenderSVG writes s as an SVG document.
func RenderSVG(s *shape.Surface, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	bounds := s.Bounds()
	vx, vy := math.Floor(math.Min(0, bounds.X)), math.Floor(math.Min(0, bounds.Y))
	vw, vh := math.Ceil(bounds.Right())-vx, math.Ceil(bounds.Bottom())-vy
	if r.width == 0 || r.height == 0 {
		r.width, r.height = int(vw), int(vh)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(r.width, r.height,
		fmt.Sprintf(`viewBox="%s %s %s %s"`, geom.Number(vx), geom.Number(vy), geom.Number(vw), geom.Number(vh)),
		fmt.Sprintf(`id="%s"`, s.ID()),
		`class="semi-chord"`)
	if r.title != "" {
		canvas.Title(r.title)
	}

	for _, g := range s.Groups() {
		shapes := s.Group(g)
		if len(shapes) == 0 {
			continue
		}
		canvas.Group(fmt.Sprintf(`class="sc-%s"`, g))
		for _, sh := range shapes {
			drawShape(canvas, sh)
		}
		canvas.Gend()
	}

	if r.interactive {
		canvas.Style("text/css", fmt.Sprintf(interactionCSS, geom.Number(r.hover), geom.Number(r.dim)))
		canvas.Script("text/javascript", interactionJS)
	}
	canvas.End()
	return buf.Bytes()
}

func drawShape(canvas *svg.SVG, sh *shape.Shape) {
	attrs := shapeAttrs(sh)
	switch sh.Kind {
	case shape.Base:
		canvas.Rect(round(sh.Rect.X), round(sh.Rect.Y), round(sh.Rect.W), round(sh.Rect.H), attrs...)
	case shape.Outline, shape.KeyPoint:
		canvas.Circle(round(sh.Center.X), round(sh.Center.Y), round(sh.Radius), attrs...)
	case shape.Ribbon, shape.Arc, shape.Backdrop:
		canvas.Path(sh.Path, attrs...)
	case shape.KeyText, shape.ArcTitle, shape.Label:
		canvas.Text(round(sh.Pos.X), round(sh.Pos.Y), sh.Text, attrs...)
	}
}

// shapeAttrs returns the element attributes of sh. The style goes last so
// svgo emits it as the style attribute.
func shapeAttrs(sh *shape.Shape) []string {
	attrs := []string{
		fmt.Sprintf(`id="%s"`, sh.ID),
		fmt.Sprintf(`class="sc-shape sc-%s"`, sh.Kind),
	}
	if sh.Datum.Key != "" {
		attrs = append(attrs, fmt.Sprintf(`data-key="%s"`, escapeAttr(sh.Datum.Key)))
	}
	if sh.Datum.Attribute != "" {
		attrs = append(attrs, fmt.Sprintf(`data-attribute="%s"`, escapeAttr(sh.Datum.Attribute)))
	}
	if v := sh.Datum.Value.String(); v != "" {
		attrs = append(attrs, fmt.Sprintf(`data-value="%s"`, escapeAttr(v)))
	}
	return append(attrs, escapeAttr(styleString(sh.Style)))
}

func styleString(st shape.Style) string {
	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, k+":"+v)
		}
	}
	num := func(f float64) string {
		if f == 0 {
			return ""
		}
		return geom.Number(f)
	}

	add("fill", st.Fill)
	parts = append(parts, "fill-opacity:"+geom.Number(st.FillOpacity))
	add("stroke", st.Stroke)
	add("stroke-width", num(st.StrokeWidth))
	add("font-family", st.FontFamily)
	if st.FontSize != 0 {
		add("font-size", geom.Number(st.FontSize)+"px")
	}
	add("font-weight", st.FontWeight)
	add("text-anchor", st.TextAnchor)
	add("dominant-baseline", st.Baseline)
	return strings.Join(parts, ";")
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

func escapeAttr(s string) string { return attrEscaper.Replace(s) }

func round(f float64) int { return int(math.Round(f)) }
