package interact

import (
	"github.com/samber/lo"

	"github.com/matzehuels/semichord/pkg/config"
	"github.com/matzehuels/semichord/pkg/dataset"
	"github.com/matzehuels/semichord/pkg/events"
	"github.com/matzehuels/semichord/pkg/shape"
)

const (
	weightBold   = "bold"
	weightNormal = "normal"
)

// Highlighter mutates the visual state of ribbons, labels and backdrops on
// a surface. It reports highlight changes to the event manager in one
// batch per gesture.
type Highlighter struct {
	surface *shape.Surface
	cfg     *config.Config
	events  *events.Manager
	pinned  func() bool
}

// NewHighlighter returns a highlighter reporting to em. pinned reports
// whether a click currently owns the highlight.
func NewHighlighter(em *events.Manager, pinned func() bool) *Highlighter {
	return &Highlighter{events: em, pinned: pinned}
}

// Bind points the highlighter at a freshly built surface.
func (h *Highlighter) Bind(s *shape.Surface, cfg *config.Config) {
	h.surface = s
	h.cfg = cfg
}

func (h *Highlighter) bound() bool { return h.surface != nil && h.cfg != nil }

func (h *Highlighter) ribbons(preds ...shape.Predicate) []*shape.Shape {
	return h.surface.Filter(append([]shape.Predicate{shape.ByKind(shape.Ribbon)}, preds...)...)
}

func (h *Highlighter) labels(preds ...shape.Predicate) []*shape.Shape {
	return h.surface.Filter(append([]shape.Predicate{shape.ByKind(shape.Label)}, preds...)...)
}

func (h *Highlighter) backdrops(preds ...shape.Predicate) []*shape.Shape {
	return h.surface.Filter(append([]shape.Predicate{shape.ByKind(shape.Backdrop)}, preds...)...)
}

// HighlightRibbon highlights the single ribbon s.
func (h *Highlighter) HighlightRibbon(s *shape.Shape, keepExisting, lock bool) []*shape.Shape {
	if s == nil || s.Kind != shape.Ribbon || !h.bound() {
		return nil
	}
	return h.highlightRibbons(func(o *shape.Shape) bool { return o == s },
		s.Datum.Key, s.Datum.Attribute, keepExisting, lock)
}

// HighlightRibbonByKey highlights every ribbon of key.
func (h *Highlighter) HighlightRibbonByKey(key string, keepExisting, lock bool) []*shape.Shape {
	if key == "" || !h.bound() {
		return nil
	}
	return h.highlightRibbons(shape.ByKey(key), key, "", keepExisting, lock)
}

// HighlightRibbonByAttribute highlights every ribbon of attribute.
func (h *Highlighter) HighlightRibbonByAttribute(attribute string, keepExisting, lock bool) []*shape.Shape {
	if attribute == "" || !h.bound() {
		return nil
	}
	return h.highlightRibbons(shape.ByAttribute(attribute), "", attribute, keepExisting, lock)
}

// HighlightRibbonByValue highlights the ribbons matching every non-empty
// filter among value, key and attribute. With no filter it does nothing.
func (h *Highlighter) HighlightRibbonByValue(value dataset.Value, key, attribute string, keepExisting, lock bool) []*shape.Shape {
	hasValue := value.String() != ""
	if (!hasValue && key == "" && attribute == "") || !h.bound() {
		return nil
	}
	var preds []shape.Predicate
	if key != "" {
		preds = append(preds, shape.ByKey(key))
	}
	if attribute != "" {
		preds = append(preds, shape.ByAttribute(attribute))
	}
	if hasValue {
		preds = append(preds, shape.ByValue(value))
	}
	return h.highlightRibbons(shape.And(preds...), key, attribute, keepExisting, lock)
}

func (h *Highlighter) highlightRibbons(match shape.Predicate, key, attribute string, keepExisting, lock bool) []*shape.Shape {
	rc := h.cfg.Ribbon

	var removed []*shape.Shape
	if !keepExisting {
		for _, r := range h.ribbons(shape.Not(match), shape.Not(shape.Locked)) {
			if r.Highlighted {
				removed = append(removed, r)
			}
			r.Highlighted = false
			r.Style.FillOpacity = rc.HoverInverseOpacity
		}
	}

	matched := h.ribbons(match)
	for _, r := range matched {
		r.Style.FillOpacity = rc.HoverOpacity
		r.Highlighted = true
		if lock {
			r.Locked = true
		}
		h.surface.Raise(r)
	}
	h.surface.MoveGroupAfter(shape.GroupKeys, shape.GroupRibbons)

	names := events.Names()
	h.fireRibbons(key, attribute, removed, names.Ribbon.HighlightRemoved)
	h.fireRibbons(key, attribute, matched, names.Ribbon.Highlight)
	return matched
}

func (h *Highlighter) fireRibbons(key, attribute string, ribbons []*shape.Shape, name string) {
	if len(ribbons) == 0 || h.events.RegisteredCallback(name) == nil {
		return
	}
	h.events.Invoke(events.Event{
		Elements: ribbons,
		Data: dataset.Datum{
			Key:       key,
			Attribute: attribute,
			Values:    lo.Map(ribbons, func(r *shape.Shape, _ int) dataset.Datum { return r.Datum }),
		},
		Name:   name,
		Source: "ribbon",
	})
}

// HighlightLabel highlights the label of key within attribute. Unless
// keepExisting, the other labels of attribute are shown in the inverse
// color.
func (h *Highlighter) HighlightLabel(key, attribute string, keepExisting, lock bool) {
	if !h.bound() {
		return
	}
	h.highlightLabels(
		shape.And(shape.ByKey(key), shape.ByAttribute(attribute)),
		shape.ByAttribute(attribute),
		shape.ByAttribute(attribute),
		keepExisting, lock)
}

// HighlightLabelByKey highlights every label of key.
func (h *Highlighter) HighlightLabelByKey(key string, keepExisting, lock bool) {
	if !h.bound() {
		return
	}
	h.highlightLabels(shape.ByKey(key), nil, nil, keepExisting, lock)
}

// HighlightLabelByAttribute highlights every label of attribute.
func (h *Highlighter) HighlightLabelByAttribute(attribute string, keepExisting, lock bool) {
	if !h.bound() {
		return
	}
	h.highlightLabels(shape.ByAttribute(attribute), nil, shape.ByAttribute(attribute), keepExisting, lock)
}

// HighlightLabelsOf highlights the labels paired with the given ribbons.
func (h *Highlighter) HighlightLabelsOf(ribbons []*shape.Shape, keepExisting, lock bool) {
	if !h.bound() || len(ribbons) == 0 {
		return
	}
	match := func(l *shape.Shape) bool {
		return lo.ContainsBy(ribbons, func(r *shape.Shape) bool {
			return r.Datum.Key == l.Datum.Key && r.Datum.Attribute == l.Datum.Attribute
		})
	}
	attrs := lo.Uniq(lo.Map(ribbons, func(r *shape.Shape, _ int) string { return r.Datum.Attribute }))
	inAttrs := func(s *shape.Shape) bool { return lo.Contains(attrs, s.Datum.Attribute) }
	h.highlightLabels(match, nil, inAttrs, keepExisting, lock)
}

// highlightLabels styles labels matching match as highlighted. Unless
// keepExisting, the other labels within scope (all labels when scope is
// nil) are dimmed. With autoHide the backdrops selected by backdrops
// (all when nil) are revealed.
func (h *Highlighter) highlightLabels(match, scope, backdrops shape.Predicate, keepExisting, lock bool) {
	vl := h.cfg.ValueLabel

	for _, l := range h.labels(match) {
		l.Highlighted = true
		if lock {
			l.Locked = true
		}
		l.Style.Fill = l.Color
		l.Style.FillOpacity = vl.FontHighlightOpacity
		l.Style.FontSize = vl.FontSize + vl.FontHighlightSizeIncrement
		l.Style.FontWeight = weightBold
	}

	if !keepExisting {
		others := []shape.Predicate{shape.Not(match), shape.Not(shape.Locked)}
		if scope != nil {
			others = append(others, scope)
		}
		for _, l := range h.labels(others...) {
			l.Highlighted = false
			l.Style.FontWeight = weightNormal
			l.Style.FontSize = vl.FontSize
			l.Style.FillOpacity = vl.FontOpacity
			l.Style.Fill = vl.FontHighlightInverseColor
		}
	}

	if vl.AutoHide {
		var preds []shape.Predicate
		if backdrops != nil {
			preds = append(preds, backdrops)
		}
		for _, b := range h.backdrops(preds...) {
			b.Highlighted = true
			b.Style.FillOpacity = vl.BackdropHighlightOpacity
		}
	}
}

// HighlightBackdrop raises the opacity of attribute's label backdrop.
func (h *Highlighter) HighlightBackdrop(attribute string) {
	if !h.bound() {
		return
	}
	for _, b := range h.backdrops(shape.ByAttribute(attribute)) {
		b.Highlighted = true
		b.Style.FillOpacity = h.cfg.ValueLabel.BackdropHighlightOpacity
	}
}

// Reset restores base styling. It does nothing while a shape is pinned.
// Locked shapes keep their highlight unless includeLocks, which also
// clears their locks.
func (h *Highlighter) Reset(includeLocks bool) {
	if !h.bound() || h.pinned() {
		return
	}
	rc, vl := h.cfg.Ribbon, h.cfg.ValueLabel

	skip := shape.Predicate(func(*shape.Shape) bool { return false })
	if !includeLocks {
		skip = shape.Locked
	}

	var removed []*shape.Shape
	for _, r := range h.ribbons(shape.Not(skip)) {
		if r.Highlighted {
			removed = append(removed, r)
		}
		r.Highlighted = false
		r.Locked = false
		r.Style.FillOpacity = rc.Opacity
	}

	lockedAttrs := map[string]bool{}
	for _, l := range h.labels() {
		if skip(l) {
			lockedAttrs[l.Datum.Attribute] = true
			continue
		}
		l.Highlighted = false
		l.Locked = false
		l.Style.FillOpacity = labelRestOpacity(vl)
		l.Style.FontSize = vl.FontSize
		l.Style.Fill = l.Color
		l.Style.FontWeight = weightNormal
	}

	for _, b := range h.backdrops() {
		if lockedAttrs[b.Datum.Attribute] {
			continue
		}
		b.Highlighted = false
		b.Style.FillOpacity = backdropRestOpacity(vl)
	}

	h.fireRibbons("", "", removed, events.Names().Ribbon.HighlightRemoved)
}

// ClearLocks drops every lock without changing any styling.
func (h *Highlighter) ClearLocks() {
	if !h.bound() {
		return
	}
	for _, s := range h.surface.Filter(shape.Locked) {
		s.Locked = false
	}
}

func labelRestOpacity(vl *config.ValueLabel) float64 {
	if vl.AutoHide {
		return 0
	}
	return vl.FontOpacity
}

func backdropRestOpacity(vl *config.ValueLabel) float64 {
	if vl.AutoHide {
		return 0
	}
	return vl.BackdropOpacity
}

// RestOpacity returns the opacity a shape of kind k has before any
// highlight. Shapes without a highlight state report 1.
func RestOpacity(cfg *config.Config, k shape.Kind) float64 {
	switch k {
	case shape.Ribbon:
		return cfg.Ribbon.Opacity
	case shape.Label:
		return labelRestOpacity(cfg.ValueLabel)
	case shape.Backdrop:
		return backdropRestOpacity(cfg.ValueLabel)
	}
	return 1
}
