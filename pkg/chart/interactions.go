package chart

import (
	"github.com/matzehuels/semichord/pkg/config"
	"github.com/matzehuels/semichord/pkg/dataset"
	"github.com/matzehuels/semichord/pkg/shape"
)

// Interactions returns the programmatic highlight controls.
func (c *Chart) Interactions() Interactions { return Interactions{c: c} }

// Interactions highlights ribbons from code. Programmatic highlights work
// regardless of the pin and of [config.Config.DisableInteractions]; they
// fire the same highlight events as pointer interactions.
//
// Unless excludeLabel is set, the value labels of the matched ribbons are
// highlighted too.
type Interactions struct{ c *Chart }

// Enable turns pointer interactions on or off.
func (i Interactions) Enable(on bool) error {
	if err := i.c.checkDeleted(); err != nil {
		return err
	}
	if i.c.userCfg == nil {
		i.c.userCfg = &config.Config{}
	}
	i.c.userCfg.DisableInteractions = !on
	i.c.cfg.DisableInteractions = !on
	return nil
}

// HighlightRibbonByElement highlights the ribbon s.
func (i Interactions) HighlightRibbonByElement(s *shape.Shape, keepExisting, lock, excludeLabel bool) ([]*shape.Shape, error) {
	if err := i.c.checkDeleted(); err != nil {
		return nil, err
	}
	h := i.c.handlers.Highlight
	matched := h.HighlightRibbon(s, keepExisting, lock)
	if !excludeLabel && len(matched) > 0 {
		h.HighlightLabel(s.Datum.Key, s.Datum.Attribute, keepExisting, lock)
	}
	return matched, nil
}

// HighlightRibbonByValue highlights the ribbons matching every non-empty
// filter among value, key and attribute.
func (i Interactions) HighlightRibbonByValue(value dataset.Value, key, attribute string, keepExisting, lock, excludeLabel bool) ([]*shape.Shape, error) {
	if err := i.c.checkDeleted(); err != nil {
		return nil, err
	}
	h := i.c.handlers.Highlight
	matched := h.HighlightRibbonByValue(value, key, attribute, keepExisting, lock)
	if !excludeLabel {
		h.HighlightLabelsOf(matched, keepExisting, lock)
	}
	return matched, nil
}

// HighlightRibbonByKey highlights every ribbon of key.
func (i Interactions) HighlightRibbonByKey(key string, keepExisting, lock, excludeLabel bool) ([]*shape.Shape, error) {
	if err := i.c.checkDeleted(); err != nil {
		return nil, err
	}
	h := i.c.handlers.Highlight
	matched := h.HighlightRibbonByKey(key, keepExisting, lock)
	if !excludeLabel && key != "" {
		h.HighlightLabelByKey(key, keepExisting, lock)
	}
	return matched, nil
}

// HighlightRibbonByAttribute highlights every ribbon of attribute.
func (i Interactions) HighlightRibbonByAttribute(attribute string, keepExisting, lock, excludeLabel bool) ([]*shape.Shape, error) {
	if err := i.c.checkDeleted(); err != nil {
		return nil, err
	}
	h := i.c.handlers.Highlight
	matched := h.HighlightRibbonByAttribute(attribute, keepExisting, lock)
	if !excludeLabel && attribute != "" {
		h.HighlightLabelByAttribute(attribute, keepExisting, lock)
	}
	return matched, nil
}

// ResetHighlights releases the pin and restores base styling. Locked
// shapes keep their highlight unless includeLocks.
func (i Interactions) ResetHighlights(includeLocks bool) error {
	if err := i.c.checkDeleted(); err != nil {
		return err
	}
	i.c.handlers.Click.Reset()
	i.c.handlers.Highlight.Reset(includeLocks)
	return nil
}

// ClearLocks drops every lock without changing styling.
func (i Interactions) ClearLocks() error {
	if err := i.c.checkDeleted(); err != nil {
		return err
	}
	i.c.handlers.Highlight.ClearLocks()
	return nil
}

// Pinned returns the shape a click has pinned, or nil.
func (i Interactions) Pinned() *shape.Shape {
	return i.c.handlers.Click.PinnedShape()
}
