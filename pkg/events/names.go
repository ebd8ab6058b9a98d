package events

import "strings"

// Global events fire for every pointer interaction on any shape.
const (
	OnClick      = "onClick"
	OnMouseEnter = "onMouseEnter"
	OnMouseLeave = "onMouseLeave"
)

// Pointer holds the enter, leave and click event names of one source.
type Pointer struct {
	MouseEnter string `json:"mouseEnter"`
	MouseLeave string `json:"mouseLeave"`
	Click      string `json:"click"`
}

func pointer(prefix string) Pointer {
	return Pointer{
		MouseEnter: prefix + "MouseEnter",
		MouseLeave: prefix + "MouseLeave",
		Click:      prefix + "Click",
	}
}

func (p Pointer) all() []string {
	return []string{p.MouseEnter, p.MouseLeave, p.Click}
}

// RibbonEvents are the events fired by ribbons.
type RibbonEvents struct {
	Pointer
	Highlight        string `json:"highlight"`
	HighlightRemoved string `json:"highlightRemoved"`
}

// KeyEvents are the events fired by key points and key texts. The
// embedded names fire for both; Point and Text fire for one of them.
type KeyEvents struct {
	Pointer
	Point Pointer `json:"point"`
	Text  Pointer `json:"text"`
}

// AttributeEvents are the events fired by attribute arcs and titles.
type AttributeEvents struct {
	Pointer
	Arc  Pointer `json:"arc"`
	Text Pointer `json:"text"`
}

// LabelEvents are the events fired by value labels and their backdrops.
type LabelEvents struct {
	Pointer
	Text Pointer `json:"text"`
}

// BaseEvents are the events fired by the background.
type BaseEvents struct {
	Click string `json:"click"`
}

// Catalog is the hierarchical set of event names a chart can fire.
type Catalog struct {
	OnClick      string          `json:"onClick"`
	OnMouseEnter string          `json:"onMouseEnter"`
	OnMouseLeave string          `json:"onMouseLeave"`
	Ribbon       RibbonEvents    `json:"ribbon"`
	Key          KeyEvents       `json:"key"`
	Attribute    AttributeEvents `json:"attribute"`
	Label        LabelEvents     `json:"label"`
	Base         BaseEvents      `json:"base"`
}

var catalog = Catalog{
	OnClick:      OnClick,
	OnMouseEnter: OnMouseEnter,
	OnMouseLeave: OnMouseLeave,
	Ribbon: RibbonEvents{
		Pointer:          pointer("onRibbon"),
		Highlight:        "onRibbonHighlight",
		HighlightRemoved: "onRibbonHighlightRemoved",
	},
	Key: KeyEvents{
		Pointer: pointer("onKey"),
		Point:   pointer("onKeyPoint"),
		Text:    pointer("onKeyText"),
	},
	Attribute: AttributeEvents{
		Pointer: pointer("onAttribute"),
		Arc:     pointer("onAttributeArc"),
		Text:    pointer("onAttributeText"),
	},
	Label: LabelEvents{
		Pointer: pointer("onLabel"),
		Text:    pointer("onLabelText"),
	},
	Base: BaseEvents{Click: "onBaseClick"},
}

// Names returns the event name catalog.
func Names() Catalog { return catalog }

// All returns every event name in catalog order.
func (c Catalog) All() []string {
	out := []string{c.OnClick, c.OnMouseEnter, c.OnMouseLeave}
	out = append(out, c.Ribbon.all()...)
	out = append(out, c.Ribbon.Highlight, c.Ribbon.HighlightRemoved)
	out = append(out, c.Key.all()...)
	out = append(out, c.Key.Point.all()...)
	out = append(out, c.Key.Text.all()...)
	out = append(out, c.Attribute.all()...)
	out = append(out, c.Attribute.Arc.all()...)
	out = append(out, c.Attribute.Text.all()...)
	out = append(out, c.Label.all()...)
	out = append(out, c.Label.Text.all()...)
	out = append(out, c.Base.Click)
	return out
}

// Known reports whether name is in the catalog.
func Known(name string) bool {
	for _, n := range catalog.All() {
		if n == name {
			return true
		}
	}
	return false
}

// GlobalFor infers the global event for a specific event name from its
// suffix. It returns "" when name is not a pointer event.
func GlobalFor(name string) string {
	switch {
	case strings.Contains(name, "MouseEnter"):
		return OnMouseEnter
	case strings.Contains(name, "MouseLeave"):
		return OnMouseLeave
	case strings.Contains(name, "Click"):
		return OnClick
	}
	return ""
}
