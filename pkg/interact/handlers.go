// Package interact turns pointer interactions on chart shapes into
// highlight changes and event callbacks.
//
// [ClickManager] holds the pin state, [Highlighter] mutates shape styles
// and [Handlers] installs per-kind enter, leave and click handlers on every
// shape the renderer creates.
package interact

import (
	"github.com/matzehuels/semichord/pkg/config"
	"github.com/matzehuels/semichord/pkg/events"
	"github.com/matzehuels/semichord/pkg/shape"
)

// Event sources reported in callback payloads.
const (
	SourceRibbon        = "ribbon"
	SourceKey           = "key"
	SourceKeyPoint      = "key.point"
	SourceKeyText       = "key.text"
	SourceAttribute     = "attribute"
	SourceAttributeArc  = "attribute.arc"
	SourceAttributeText = "attribute.text"
	SourceLabel         = "label"
	SourceLabelText     = "label.text"
	SourceBase          = "base"
)

// Handlers wires shapes to the highlight engine and the event manager.
type Handlers struct {
	Click     *ClickManager
	Highlight *Highlighter
	Events    *events.Manager

	surface *shape.Surface
	cfg     *config.Config
}

// New returns handlers sharing one click manager, highlighter and event
// manager. cfg is read each time so toggling interactions takes effect
// immediately.
func New(em *events.Manager, cfg func() *config.Config) *Handlers {
	x := &Handlers{Events: em}
	x.Highlight = NewHighlighter(em, func() bool { return x.Click.Pinned() })
	x.Click = NewClickManager(
		func() bool { c := cfg(); return c != nil && c.DisableInteractions },
		func() { x.Highlight.Reset(false) },
	)
	return x
}

// Bind points the handlers at a freshly built surface and unpins, since
// the previously pinned shape no longer exists.
func (x *Handlers) Bind(s *shape.Surface, cfg *config.Config) {
	x.surface = s
	x.cfg = cfg
	x.Click.Reset()
	x.Highlight.Bind(s, cfg)
}

// Wire installs the handlers for s according to its kind.
func (x *Handlers) Wire(s *shape.Shape) {
	names := events.Names()
	switch s.Kind {
	case shape.Ribbon:
		x.wire(s, x.RibbonEnter, x.RibbonLeave, x.RibbonClick, SourceRibbon, names.Ribbon.Pointer, "", events.Pointer{})
	case shape.KeyPoint:
		x.wire(s, x.KeyEnter, x.KeyLeave, x.KeyClick, SourceKey, names.Key.Pointer, SourceKeyPoint, names.Key.Point)
	case shape.KeyText:
		x.wire(s, x.KeyEnter, x.KeyLeave, x.KeyClick, SourceKey, names.Key.Pointer, SourceKeyText, names.Key.Text)
	case shape.Arc:
		x.wire(s, x.AttributeEnter, x.AttributeLeave, x.AttributeClick, SourceAttribute, names.Attribute.Pointer, SourceAttributeArc, names.Attribute.Arc)
	case shape.ArcTitle:
		x.wire(s, x.AttributeEnter, x.AttributeLeave, x.AttributeClick, SourceAttribute, names.Attribute.Pointer, SourceAttributeText, names.Attribute.Text)
	case shape.Label:
		x.wireHideable(s, x.LabelEnter, x.LabelLeave, x.LabelClick, SourceLabel, names.Label.Pointer, SourceLabelText, names.Label.Text)
	case shape.Backdrop:
		x.wireHideable(s, x.BackdropEnter, x.BackdropLeave, x.BackdropClick, SourceLabel, names.Label.Pointer, "", events.Pointer{})
	case shape.Base:
		s.On(shape.Click, x.BaseClick)
	}
}

func (x *Handlers) wire(s *shape.Shape, enter, leave, click shape.Handler, source string, ev events.Pointer, specific string, sev events.Pointer) {
	x.wireGuarded(s, enter, leave, click, source, ev, specific, sev, nil)
}

// wireHideable is wire for label shapes: with autoHide, enter and click
// are ignored entirely, events included.
func (x *Handlers) wireHideable(s *shape.Shape, enter, leave, click shape.Handler, source string, ev events.Pointer, specific string, sev events.Pointer) {
	x.wireGuarded(s, enter, leave, click, source, ev, specific, sev, x.labelsHidden)
}

func (x *Handlers) wireGuarded(s *shape.Shape, enter, leave, click shape.Handler, source string, ev events.Pointer, specific string, sev events.Pointer, ignored func() bool) {
	dispatch := func(s *shape.Shape, name, specificName string) {
		x.Events.Dispatch([]*shape.Shape{s}, s.Datum, source, name, specific, specificName)
	}
	skip := func() bool { return ignored != nil && ignored() }

	s.On(shape.Enter, func(s *shape.Shape) {
		if skip() {
			return
		}
		enter(s)
		dispatch(s, ev.MouseEnter, sev.MouseEnter)
	})
	s.On(shape.Leave, func(s *shape.Shape) {
		leave(s)
		dispatch(s, ev.MouseLeave, sev.MouseLeave)
	})
	s.On(shape.Click, func(s *shape.Shape) {
		if skip() {
			return
		}
		click(s)
		dispatch(s, ev.Click, sev.Click)
	})
}

func (x *Handlers) labelsHidden() bool {
	return x.cfg != nil && x.cfg.ValueLabel.AutoHide
}

func (x *Handlers) labelsDisabled() bool {
	return x.cfg == nil || x.cfg.ValueLabel.Disable
}

// RibbonEnter highlights the ribbon and its value label.
func (x *Handlers) RibbonEnter(s *shape.Shape) {
	if x.Click.Pinned() {
		return
	}
	x.Highlight.HighlightRibbon(s, false, false)
	if !x.labelsDisabled() {
		x.Highlight.HighlightLabel(s.Datum.Key, s.Datum.Attribute, false, false)
	}
}

// RibbonLeave resets highlights.
func (x *Handlers) RibbonLeave(*shape.Shape) { x.Highlight.Reset(false) }

// RibbonClick pins the ribbon.
func (x *Handlers) RibbonClick(s *shape.Shape) {
	x.Click.Click(s, func() { x.RibbonEnter(s) })
}

// KeyEnter highlights every ribbon and label of the key.
func (x *Handlers) KeyEnter(s *shape.Shape) {
	if x.Click.Pinned() {
		return
	}
	x.Highlight.HighlightRibbonByKey(s.Datum.Key, false, false)
	x.Highlight.HighlightLabelByKey(s.Datum.Key, false, false)
}

// KeyLeave resets highlights.
func (x *Handlers) KeyLeave(*shape.Shape) { x.Highlight.Reset(false) }

// KeyClick pins the key point or key text.
func (x *Handlers) KeyClick(s *shape.Shape) {
	x.Click.Click(s, func() { x.KeyEnter(s) })
}

// AttributeEnter highlights every ribbon, label and the backdrop of the
// attribute.
func (x *Handlers) AttributeEnter(s *shape.Shape) {
	if x.Click.Pinned() {
		return
	}
	attr := s.Datum.Attribute
	x.Highlight.HighlightRibbonByAttribute(attr, false, false)
	x.Highlight.HighlightBackdrop(attr)
	x.Highlight.HighlightLabelByAttribute(attr, false, false)
}

// AttributeLeave resets highlights.
func (x *Handlers) AttributeLeave(*shape.Shape) { x.Highlight.Reset(false) }

// AttributeClick pins the arc or title.
func (x *Handlers) AttributeClick(s *shape.Shape) {
	x.Click.Click(s, func() { x.AttributeEnter(s) })
}

// ribbonFor returns the ribbon drawn for the same key and attribute as
// the label s.
func (x *Handlers) ribbonFor(s *shape.Shape) *shape.Shape {
	if x.surface == nil {
		return nil
	}
	r := x.surface.Filter(shape.ByKind(shape.Ribbon), shape.ByKey(s.Datum.Key), shape.ByAttribute(s.Datum.Attribute))
	if len(r) == 0 {
		return nil
	}
	return r[0]
}

// LabelEnter acts as entering the label's ribbon.
func (x *Handlers) LabelEnter(s *shape.Shape) {
	if r := x.ribbonFor(s); r != nil {
		x.RibbonEnter(r)
	}
}

// LabelLeave resets highlights.
func (x *Handlers) LabelLeave(*shape.Shape) { x.Highlight.Reset(false) }

// LabelClick pins the label's ribbon.
func (x *Handlers) LabelClick(s *shape.Shape) {
	if r := x.ribbonFor(s); r != nil {
		x.RibbonClick(r)
	}
}

// BackdropEnter acts as entering the backdrop's attribute.
func (x *Handlers) BackdropEnter(s *shape.Shape) { x.AttributeEnter(s) }

// BackdropLeave resets highlights.
func (x *Handlers) BackdropLeave(*shape.Shape) { x.Highlight.Reset(false) }

// BackdropClick pins the backdrop.
func (x *Handlers) BackdropClick(s *shape.Shape) { x.AttributeClick(s) }

// BaseClick unpins, resets highlights and reports a click on empty space.
func (x *Handlers) BaseClick(s *shape.Shape) {
	x.Click.Reset()
	x.Highlight.Reset(false)
	x.Events.Dispatch([]*shape.Shape{s}, s.Datum, SourceBase, events.Names().Base.Click, "", "")
}
