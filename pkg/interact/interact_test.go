package interact

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/semichord/pkg/config"
	"github.com/matzehuels/semichord/pkg/dataset"
	"github.com/matzehuels/semichord/pkg/events"
	"github.com/matzehuels/semichord/pkg/observability"
	"github.com/matzehuels/semichord/pkg/shape"
)

type fixture struct {
	t       *testing.T
	cfg     *config.Config
	surface *shape.Surface
	x       *Handlers
	queue   *events.Queue
	fired   map[string]int
	last    map[string]events.Event
}

// newFixture builds a two-record, two-attribute surface by hand:
// records A and B, attributes x and y.
func newFixture(t *testing.T, mutate func(*config.Config)) *fixture {
	t.Helper()
	cfg := config.Default(600, 400)
	if mutate != nil {
		mutate(cfg)
	}

	q := events.NewQueue()
	em := events.NewManager(q, log.New(io.Discard), observability.NoopEventHooks{})
	f := &fixture{
		t:       t,
		cfg:     cfg,
		surface: shape.NewSurface("c"),
		queue:   q,
		fired:   map[string]int{},
		last:    map[string]events.Event{},
	}
	f.x = New(em, func() *config.Config { return f.cfg })
	for _, name := range events.Names().All() {
		em.RegisterCallback(name, func(ev events.Event) {
			f.fired[ev.Name]++
			f.last[ev.Name] = ev
		})
	}

	colors := map[string]string{"x": "#1f77b4", "y": "#ff7f0e"}
	s := f.surface
	s.Add(shape.GroupBase, &shape.Shape{Kind: shape.Base})
	for _, attr := range []string{"x", "y"} {
		for i, key := range []string{"A", "B"} {
			d := dataset.Datum{Key: key, Attribute: attr, Value: dataset.Num(float64(i + 1))}
			s.Add(shape.GroupRibbons, &shape.Shape{
				Kind: shape.Ribbon, Datum: d, Color: colors[attr],
				Style: shape.Style{Fill: colors[attr], FillOpacity: cfg.Ribbon.Opacity},
			})
			if !cfg.ValueLabel.Disable {
				s.Add(shape.GroupLabels, &shape.Shape{
					Kind: shape.Label, Datum: d, Color: colors[attr],
					Style: shape.Style{
						Fill:        colors[attr],
						FillOpacity: RestOpacity(cfg, shape.Label),
						FontSize:    cfg.ValueLabel.FontSize,
						FontWeight:  weightNormal,
					},
				})
			}
		}
		s.Add(shape.GroupAttributes, &shape.Shape{Kind: shape.Arc, Datum: dataset.Datum{Attribute: attr}, Color: colors[attr]})
		if !cfg.ValueLabel.Disable {
			s.Add(shape.GroupLabels, &shape.Shape{
				Kind: shape.Backdrop, Datum: dataset.Datum{Attribute: attr}, Color: colors[attr],
				Style: shape.Style{FillOpacity: RestOpacity(cfg, shape.Backdrop)},
			})
		}
	}
	for _, key := range []string{"A", "B"} {
		s.Add(shape.GroupKeys, &shape.Shape{Kind: shape.KeyPoint, Datum: dataset.Datum{Key: key}})
		s.Add(shape.GroupKeys, &shape.Shape{Kind: shape.KeyText, Datum: dataset.Datum{Key: key}})
	}

	f.x.Bind(s, cfg)
	for _, sh := range s.Shapes() {
		f.x.Wire(sh)
	}
	return f
}

func (f *fixture) one(preds ...shape.Predicate) *shape.Shape {
	f.t.Helper()
	got := f.surface.Filter(preds...)
	if len(got) != 1 {
		f.t.Fatalf("Filter matched %d shapes, want 1", len(got))
	}
	return got[0]
}

func (f *fixture) ribbon(key, attr string) *shape.Shape {
	return f.one(shape.ByKind(shape.Ribbon), shape.ByKey(key), shape.ByAttribute(attr))
}

func (f *fixture) label(key, attr string) *shape.Shape {
	return f.one(shape.ByKind(shape.Label), shape.ByKey(key), shape.ByAttribute(attr))
}

func (f *fixture) backdrop(attr string) *shape.Shape {
	return f.one(shape.ByKind(shape.Backdrop), shape.ByAttribute(attr))
}

func (f *fixture) trigger(s *shape.Shape, a shape.Action) {
	f.t.Helper()
	if err := f.surface.Trigger(s.ID, a); err != nil {
		f.t.Fatalf("Trigger(%s, %s) error: %v", s.ID, a, err)
	}
}

// flush delivers pending callbacks and returns the counts since the last
// flush.
func (f *fixture) flush() map[string]int {
	f.queue.Drain(100)
	got := f.fired
	f.fired = map[string]int{}
	return got
}

func (f *fixture) assertBaseline() {
	f.t.Helper()
	for _, r := range f.surface.Filter(shape.ByKind(shape.Ribbon)) {
		if r.Highlighted || r.Locked || r.Style.FillOpacity != f.cfg.Ribbon.Opacity {
			f.t.Errorf("ribbon %s/%s = {highlighted %v, locked %v, opacity %v}, want baseline",
				r.Datum.Key, r.Datum.Attribute, r.Highlighted, r.Locked, r.Style.FillOpacity)
		}
	}
	for _, l := range f.surface.Filter(shape.ByKind(shape.Label)) {
		if l.Highlighted || l.Style.FontWeight != weightNormal || l.Style.Fill != l.Color {
			f.t.Errorf("label %s/%s not at rest: %+v", l.Datum.Key, l.Datum.Attribute, l.Style)
		}
	}
}

func TestRibbonHover(t *testing.T) {
	f := newFixture(t, nil)
	rc, vl := f.cfg.Ribbon, f.cfg.ValueLabel

	f.trigger(f.ribbon("A", "x"), shape.Enter)

	if got := f.ribbon("A", "x").Style.FillOpacity; got != rc.HoverOpacity {
		t.Errorf("hovered ribbon opacity = %v, want %v", got, rc.HoverOpacity)
	}
	for _, other := range []*shape.Shape{f.ribbon("B", "x"), f.ribbon("A", "y"), f.ribbon("B", "y")} {
		if other.Style.FillOpacity != rc.HoverInverseOpacity {
			t.Errorf("other ribbon %s/%s opacity = %v, want %v",
				other.Datum.Key, other.Datum.Attribute, other.Style.FillOpacity, rc.HoverInverseOpacity)
		}
	}
	l := f.label("A", "x")
	if l.Style.FontWeight != weightBold || l.Style.FontSize != vl.FontSize+vl.FontHighlightSizeIncrement {
		t.Errorf("label style = %+v, want bold and enlarged", l.Style)
	}
	if got := f.label("B", "x").Style.Fill; got != vl.FontHighlightInverseColor {
		t.Errorf("sibling label fill = %q, want %q", got, vl.FontHighlightInverseColor)
	}
	if got := f.label("B", "y").Style.Fill; got != f.label("B", "y").Color {
		t.Errorf("label outside the attribute changed fill to %q", got)
	}

	counts := f.flush()
	for _, name := range []string{"onRibbonMouseEnter", "onMouseEnter", "onRibbonHighlight"} {
		if counts[name] != 1 {
			t.Errorf("%s fired %d times, want 1", name, counts[name])
		}
	}

	f.trigger(f.ribbon("A", "x"), shape.Leave)
	f.assertBaseline()
	counts = f.flush()
	if counts["onRibbonMouseLeave"] != 1 || counts["onRibbonHighlightRemoved"] != 1 {
		t.Errorf("leave events = %v", counts)
	}
}

func TestClickTogglesBackToBaseline(t *testing.T) {
	f := newFixture(t, nil)
	ax := f.ribbon("A", "x")

	f.trigger(ax, shape.Click)
	if !f.x.Click.Pinned() || f.x.Click.PinnedShape() != ax {
		t.Fatal("click did not pin the ribbon")
	}
	if !ax.Highlighted {
		t.Error("pinned ribbon not highlighted")
	}

	// Hover is inert while pinned.
	f.trigger(f.ribbon("B", "x"), shape.Enter)
	f.trigger(f.ribbon("B", "x"), shape.Leave)
	if !ax.Highlighted || f.ribbon("B", "x").Highlighted {
		t.Error("hover changed highlights while pinned")
	}

	f.trigger(ax, shape.Click)
	if f.x.Click.Pinned() {
		t.Error("second click did not unpin")
	}
	f.assertBaseline()
}

func TestClickOtherShapeMovesPin(t *testing.T) {
	f := newFixture(t, nil)
	f.trigger(f.ribbon("A", "x"), shape.Click)
	f.trigger(f.ribbon("B", "y"), shape.Click)

	if f.x.Click.PinnedShape() != f.ribbon("B", "y") {
		t.Fatal("pin did not move")
	}
	if f.ribbon("A", "x").Highlighted || !f.ribbon("B", "y").Highlighted {
		t.Error("highlight did not follow the pin")
	}
}

func TestBaseClickResets(t *testing.T) {
	f := newFixture(t, nil)
	f.trigger(f.ribbon("A", "x"), shape.Click)
	f.flush()

	f.trigger(f.one(shape.ByKind(shape.Base)), shape.Click)
	if f.x.Click.Pinned() {
		t.Error("base click did not unpin")
	}
	f.assertBaseline()

	counts := f.flush()
	if counts["onBaseClick"] != 1 || counts["onClick"] != 1 {
		t.Errorf("base click events = %v", counts)
	}
	if ev := f.last["onClick"]; ev.Source != SourceBase {
		t.Errorf("onClick source = %q, want %q", ev.Source, SourceBase)
	}
}

func TestKeyTextClickPins(t *testing.T) {
	f := newFixture(t, nil)
	text := f.one(shape.ByKind(shape.KeyText), shape.ByKey("B"))

	f.trigger(text, shape.Click)
	if f.x.Click.PinnedShape() != text {
		t.Fatal("key text click did not pin")
	}
	if !f.ribbon("B", "x").Highlighted || !f.ribbon("B", "y").Highlighted || f.ribbon("A", "x").Highlighted {
		t.Error("key click did not highlight the key's ribbons")
	}

	counts := f.flush()
	for _, name := range []string{"onKeyClick", "onKeyTextClick", "onClick"} {
		if counts[name] != 1 {
			t.Errorf("%s fired %d times, want 1", name, counts[name])
		}
	}
	if ev := f.last["onClick"]; ev.Source != SourceKeyText {
		t.Errorf("onClick source = %q, want %q", ev.Source, SourceKeyText)
	}
}

func TestAttributeEnterRevealsBackdrop(t *testing.T) {
	f := newFixture(t, nil)
	vl := f.cfg.ValueLabel

	f.trigger(f.one(shape.ByKind(shape.Arc), shape.ByAttribute("y")), shape.Enter)

	if !f.ribbon("A", "y").Highlighted || !f.ribbon("B", "y").Highlighted {
		t.Error("attribute ribbons not highlighted")
	}
	if f.ribbon("A", "x").Highlighted {
		t.Error("ribbon of another attribute highlighted")
	}
	if got := f.backdrop("y").Style.FillOpacity; got != vl.BackdropHighlightOpacity {
		t.Errorf("backdrop opacity = %v, want %v", got, vl.BackdropHighlightOpacity)
	}
	if got := f.backdrop("x").Style.FillOpacity; got != vl.BackdropOpacity {
		t.Errorf("other backdrop opacity = %v, want %v", got, vl.BackdropOpacity)
	}

	counts := f.flush()
	if counts["onAttributeMouseEnter"] != 1 || counts["onAttributeArcMouseEnter"] != 1 || counts["onMouseEnter"] != 1 {
		t.Errorf("attribute enter events = %v", counts)
	}
}

func TestLabelEnterActsOnRibbon(t *testing.T) {
	f := newFixture(t, nil)
	f.trigger(f.label("B", "y"), shape.Enter)

	if !f.ribbon("B", "y").Highlighted {
		t.Error("label enter did not highlight its ribbon")
	}
	counts := f.flush()
	if counts["onLabelMouseEnter"] != 1 || counts["onLabelTextMouseEnter"] != 1 {
		t.Errorf("label enter events = %v", counts)
	}
	if counts["onRibbonMouseEnter"] != 0 {
		t.Error("label enter fired ribbon pointer events")
	}
}

func TestLockSurvivesReset(t *testing.T) {
	f := newFixture(t, nil)
	h := f.x.Highlight
	rc := f.cfg.Ribbon

	h.HighlightRibbonByKey("A", false, true)
	h.HighlightLabelByKey("A", false, true)
	h.Reset(false)

	for _, attr := range []string{"x", "y"} {
		r := f.ribbon("A", attr)
		if !r.Highlighted || !r.Locked || r.Style.FillOpacity != rc.HoverOpacity {
			t.Errorf("locked ribbon A/%s reset: %+v", attr, r.Style)
		}
		if b := f.ribbon("B", attr); b.Highlighted || b.Style.FillOpacity != rc.Opacity {
			t.Errorf("unlocked ribbon B/%s not reset: %+v", attr, b.Style)
		}
		if !f.label("A", attr).Highlighted {
			t.Errorf("locked label A/%s reset", attr)
		}
	}

	// Hovering elsewhere never dims a locked ribbon.
	f.trigger(f.ribbon("B", "x"), shape.Enter)
	if got := f.ribbon("A", "y").Style.FillOpacity; got != rc.HoverOpacity {
		t.Errorf("locked ribbon dimmed to %v", got)
	}

	h.Reset(true)
	f.assertBaseline()
	if len(f.surface.Filter(shape.Locked)) != 0 {
		t.Error("Reset(true) kept locks")
	}
}

func TestClearLocksKeepsStyling(t *testing.T) {
	f := newFixture(t, nil)
	h := f.x.Highlight

	h.HighlightRibbonByAttribute("x", false, true)
	h.ClearLocks()

	r := f.ribbon("A", "x")
	if r.Locked || !r.Highlighted || r.Style.FillOpacity != f.cfg.Ribbon.HoverOpacity {
		t.Errorf("ClearLocks() = {locked %v, highlighted %v, opacity %v}", r.Locked, r.Highlighted, r.Style.FillOpacity)
	}
	h.Reset(false)
	f.assertBaseline()
}

func TestHighlightBatches(t *testing.T) {
	f := newFixture(t, nil)
	f.trigger(f.ribbon("A", "x"), shape.Enter)
	f.flush()

	// Moving straight to another ribbon removes the first highlight and
	// adds the second, one batch each.
	f.trigger(f.ribbon("B", "x"), shape.Enter)
	counts := f.flush()
	if counts["onRibbonHighlight"] != 1 || counts["onRibbonHighlightRemoved"] != 1 {
		t.Fatalf("batch counts = %v", counts)
	}

	removed := f.last["onRibbonHighlightRemoved"]
	if len(removed.Elements) != 1 || removed.Elements[0] != f.ribbon("A", "x") {
		t.Errorf("removed batch = %d elements", len(removed.Elements))
	}
	added := f.last["onRibbonHighlight"]
	if added.Source != SourceRibbon || added.Data.Key != "B" || added.Data.Attribute != "x" {
		t.Errorf("highlight batch = %+v", added)
	}
	if len(added.Data.Values) != 1 || added.Data.Values[0].Value.String() != "2" {
		t.Errorf("highlight batch values = %+v", added.Data.Values)
	}

	// Highlighting by key gathers every ribbon of the key in one event.
	f.x.Highlight.HighlightRibbonByKey("A", false, false)
	counts = f.flush()
	if counts["onRibbonHighlight"] != 1 {
		t.Errorf("onRibbonHighlight fired %d times, want 1", counts["onRibbonHighlight"])
	}
	if got := len(f.last["onRibbonHighlight"].Data.Values); got != 2 {
		t.Errorf("key batch has %d values, want 2", got)
	}
}

func TestHighlightByValue(t *testing.T) {
	f := newFixture(t, nil)
	h := f.x.Highlight

	if got := h.HighlightRibbonByValue(dataset.Value{}, "", "", false, false); got != nil {
		t.Errorf("no filter matched %d ribbons", len(got))
	}
	got := h.HighlightRibbonByValue(dataset.Str("2"), "", "", false, false)
	if len(got) != 2 {
		t.Fatalf("value 2 matched %d ribbons, want 2", len(got))
	}
	for _, r := range got {
		if r.Datum.Key != "B" {
			t.Errorf("matched ribbon with key %q", r.Datum.Key)
		}
	}
	got = h.HighlightRibbonByValue(dataset.Num(2), "", "y", false, false)
	if len(got) != 1 || got[0] != f.ribbon("B", "y") {
		t.Errorf("value 2 in y matched %d ribbons", len(got))
	}
}

func TestAutoHideIgnoresLabels(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.ValueLabel.AutoHide = true })

	if got := f.label("A", "x").Style.FillOpacity; got != 0 {
		t.Fatalf("auto-hidden label opacity = %v, want 0", got)
	}

	f.trigger(f.label("A", "x"), shape.Enter)
	f.trigger(f.backdrop("x"), shape.Click)
	if f.ribbon("A", "x").Highlighted || f.x.Click.Pinned() {
		t.Error("auto-hidden label reacted to the pointer")
	}
	counts := f.flush()
	if counts["onLabelMouseEnter"] != 0 || counts["onLabelClick"] != 0 {
		t.Errorf("auto-hidden label fired events: %v", counts)
	}

	f.trigger(f.label("A", "x"), shape.Leave)
	if counts := f.flush(); counts["onLabelMouseLeave"] != 1 {
		t.Errorf("onLabelMouseLeave fired %d times, want 1", counts["onLabelMouseLeave"])
	}

	// Highlighting a ribbon reveals its label and the backdrops.
	f.trigger(f.ribbon("A", "x"), shape.Enter)
	if got := f.label("A", "x").Style.FillOpacity; got != f.cfg.ValueLabel.FontHighlightOpacity {
		t.Errorf("revealed label opacity = %v", got)
	}
	if got := f.backdrop("x").Style.FillOpacity; got != f.cfg.ValueLabel.BackdropHighlightOpacity {
		t.Errorf("revealed backdrop opacity = %v", got)
	}
	f.trigger(f.ribbon("A", "x"), shape.Leave)
	if f.label("A", "x").Style.FillOpacity != 0 || f.backdrop("x").Style.FillOpacity != 0 {
		t.Error("reset did not hide labels again")
	}
}

func TestDisabledLabels(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.ValueLabel.Disable = true })

	f.trigger(f.ribbon("A", "x"), shape.Enter)
	if !f.ribbon("A", "x").Highlighted {
		t.Error("ribbon not highlighted with labels disabled")
	}
	if n := len(f.surface.Filter(shape.ByKind(shape.Label))); n != 0 {
		t.Errorf("%d labels exist with labels disabled", n)
	}
}

func TestDisabledInteractions(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.DisableInteractions = true })

	f.trigger(f.ribbon("A", "x"), shape.Enter)
	f.trigger(f.ribbon("A", "x"), shape.Click)
	if f.ribbon("A", "x").Highlighted {
		t.Error("ribbon highlighted with interactions disabled")
	}
	if f.x.Click.PinnedShape() != nil {
		t.Error("click pinned with interactions disabled")
	}

	// Programmatic highlighting still works once re-enabled.
	f.cfg.DisableInteractions = false
	f.trigger(f.ribbon("A", "x"), shape.Enter)
	if !f.ribbon("A", "x").Highlighted {
		t.Error("ribbon not highlighted after re-enabling")
	}
}

func TestTriggerUnknownAction(t *testing.T) {
	f := newFixture(t, nil)
	base := f.one(shape.ByKind(shape.Base))
	if err := f.surface.Trigger(base.ID, shape.Enter); err == nil {
		t.Error("base accepted an enter action")
	}
}
