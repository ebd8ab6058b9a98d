package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/semichord/pkg/config"
	"github.com/matzehuels/semichord/pkg/dataset"
	"github.com/matzehuels/semichord/pkg/fonts"
	"github.com/matzehuels/semichord/pkg/layout"
	"github.com/matzehuels/semichord/pkg/render"
	"github.com/matzehuels/semichord/pkg/shape"
)

// fixture has one zero ribbon: B has no y.
func fixture(t *testing.T) (*shape.Surface, *layout.Coordinates) {
	t.Helper()
	cfg := config.Default(600, 400)
	tbl, err := dataset.NewTable([]dataset.Record{
		dataset.NewRecord(dataset.F("name", "A"), dataset.F("x", 10), dataset.F("y", 20)),
		dataset.NewRecord(dataset.F("name", "B & C"), dataset.F("x", 30)),
	}, []string{"x", "y"}, "name")
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	cc := layout.Compute(cfg, tbl)
	return render.Build(cc, cfg, render.Options{ID: "c", Measurer: fonts.Fixed(0.5)}), cc
}

// elements counts SVG elements by local name and sc-* class.
func elements(t *testing.T, data []byte) map[string]int {
	t.Helper()
	counts := map[string]int{}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return counts
		}
		if err != nil {
			t.Fatalf("invalid XML: %v\n%s", err, data)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		counts[se.Name.Local]++
		for _, a := range se.Attr {
			if a.Name.Local != "class" {
				continue
			}
			for _, c := range strings.Fields(a.Value) {
				counts[se.Name.Local+"."+c]++
			}
		}
	}
}

func TestRenderSVG(t *testing.T) {
	s, _ := fixture(t)
	got := elements(t, RenderSVG(s))

	tests := []struct {
		name string
		want int
	}{
		{"svg", 1},
		{"path.sc-ribbon", 4},
		{"path.sc-arc", 2},
		{"path.sc-backdrop", 2},
		{"circle.sc-outline", 1},
		{"circle.sc-key-point", 2},
		{"text.sc-key-text", 2},
		{"text.sc-arc-title", 2},
		{"text.sc-label", 4},
		{"rect.sc-base", 1},
		{"g", len(shape.DefaultGroups)},
		{"script", 0},
	}
	for _, tt := range tests {
		if got[tt.name] != tt.want {
			t.Errorf("%s count = %d, want %d", tt.name, got[tt.name], tt.want)
		}
	}
}

func TestRenderSVGAttributes(t *testing.T) {
	s, _ := fixture(t)
	out := string(RenderSVG(s, WithTitle("demo")))

	for _, want := range []string{
		`data-key="B &amp; C"`,
		`data-attribute="x"`,
		`data-value="30"`,
		`<title>demo</title>`,
		`viewBox="`,
		`fill-opacity:`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderSVGInteractive(t *testing.T) {
	s, _ := fixture(t)
	data := RenderSVG(s, WithInteractive(0.8, 0.1), WithSize(300, 200))
	got := elements(t, data)

	if got["script"] != 1 || got["style"] != 1 {
		t.Errorf("script/style = %d/%d, want 1/1", got["script"], got["style"])
	}
	out := string(data)
	if !strings.Contains(out, `width="300"`) || !strings.Contains(out, `height="200"`) {
		t.Error("WithSize not applied")
	}
	if !strings.Contains(out, "fill-opacity: 0.8") {
		t.Error("hover opacity not embedded")
	}
}

func TestRenderSVGReflectsHighlight(t *testing.T) {
	s, _ := fixture(t)
	r := s.Filter(shape.ByKind(shape.Ribbon))[0]
	r.Style.FillOpacity = 0.37

	if !strings.Contains(string(RenderSVG(s)), "fill-opacity:0.37") {
		t.Error("highlighted opacity not rendered")
	}
}

func TestToDOT(t *testing.T) {
	_, cc := fixture(t)
	dot := ToDOT(cc)

	if got := strings.Count(dot, "->"); got != 3 {
		t.Errorf("edge count = %d, want 3 (one per non-zero ribbon)", got)
	}
	for _, want := range []string{
		`"key:A" [label="A"`,
		`"key:B & C" [label="B & C"`,
		`"attr:x" [label="x"`,
		`"key:A" -> "attr:y" [label="20"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"key:B & C" -> "attr:y"`) {
		t.Error("zero ribbon exported as edge")
	}
}

func TestPenWidth(t *testing.T) {
	arc := layout.Arc{Start: 0, End: 2}
	tests := []struct {
		name  string
		width float64
		want  float64
	}{
		{"empty", 0, minPenWidth},
		{"half", 1, 4.5},
		{"full", 2, maxPenWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := layout.Ribbon{StartAngle: 0, EndAngle: tt.width}
			if got := penWidth(r, arc); got != tt.want {
				t.Errorf("penWidth = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderDOTSVG(t *testing.T) {
	_, cc := fixture(t)
	svg, err := RenderDOTSVG(context.Background(), ToDOT(cc))
	if err != nil {
		t.Fatalf("RenderDOTSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)) {
		t.Errorf("viewBox not normalized:\n%.300s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got := string(normalizeViewBox(in)); got != want {
		t.Errorf("normalizeViewBox = %s, want %s", got, want)
	}

	noBox := []byte(`<svg width="10"></svg>`)
	if got := normalizeViewBox(noBox); !bytes.Equal(got, noBox) {
		t.Errorf("normalizeViewBox changed input without viewBox: %s", got)
	}
}

func TestRenderJSON(t *testing.T) {
	s, _ := fixture(t)
	data, err := RenderJSON(s)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.ID != "c" {
		t.Errorf("ID = %q, want c", out.ID)
	}
	if !strings.HasPrefix(out.Generator, "semichord ") {
		t.Errorf("Generator = %q", out.Generator)
	}
	if len(out.Shapes) != s.Len() {
		t.Errorf("Shapes count = %d, want %d", len(out.Shapes), s.Len())
	}
	if out.Shapes[0].Kind != "base" {
		t.Errorf("first shape = %q, want base", out.Shapes[0].Kind)
	}
	if out.Width <= 0 || out.Height <= 0 {
		t.Errorf("size = %vx%v, want positive", out.Width, out.Height)
	}

	var label *jsonShape
	for i := range out.Shapes {
		if out.Shapes[i].Kind == "label" {
			label = &out.Shapes[i]
			break
		}
	}
	if label == nil || label.Pos == nil || label.Text == "" {
		t.Fatalf("label shape missing position or text: %+v", label)
	}
}

func TestRenderPNG(t *testing.T) {
	s, _ := fixture(t)
	data, err := RenderPNG(s, WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output is not a PNG")
	}

	if _, err := RenderPNG(s, WithScale(0)); err == nil {
		t.Error("RenderPNG with zero scale: want error")
	}
}
