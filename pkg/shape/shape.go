// Package shape is the registry of drawable shapes produced by the
// renderer and mutated by the highlighting engine.
//
// A [Surface] holds shapes in named groups. Groups paint in order and
// shapes within a group paint in insertion order, so moving a shape to the
// end of its group brings it to the front. Sinks walk [Surface.Shapes] and
// translate each [Shape] into a drawing primitive; the registry itself
// never draws.
//
// Shapes carry the [dataset.Datum] they represent and are selected with
// [Predicate] filters rather than selector strings:
//
//	locked := surface.Filter(shape.ByKind(shape.Ribbon), shape.ByKey("A"), shape.Locked)
package shape

import (
	"github.com/matzehuels/semichord/pkg/dataset"
	"github.com/matzehuels/semichord/pkg/geom"
)

// Kind identifies what a shape draws.
type Kind uint8

const (
	Base Kind = iota
	Outline
	Ribbon
	KeyPoint
	KeyText
	Arc
	ArcTitle
	Label
	Backdrop
)

var kindNames = [...]string{
	Base:     "base",
	Outline:  "outline",
	Ribbon:   "ribbon",
	KeyPoint: "key-point",
	KeyText:  "key-text",
	Arc:      "arc",
	ArcTitle: "arc-title",
	Label:    "label",
	Backdrop: "backdrop",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsText reports whether k is drawn as text.
func (k Kind) IsText() bool {
	return k == KeyText || k == ArcTitle || k == Label
}

// Action is a pointer interaction a shape can receive.
type Action uint8

const (
	Enter Action = iota
	Leave
	Click
)

func (a Action) String() string {
	switch a {
	case Enter:
		return "enter"
	case Leave:
		return "leave"
	case Click:
		return "click"
	}
	return "unknown"
}

// Handler reacts to an action on s.
type Handler func(s *Shape)

// Style is the visual state of a shape. Sinks always emit FillOpacity and
// skip every other zero field.
type Style struct {
	Fill        string
	FillOpacity float64
	Stroke      string
	StrokeWidth float64

	FontFamily string
	FontSize   float64
	FontWeight string
	TextAnchor string
	// Baseline is "central" for text vertically centred on Pos, empty for
	// the alphabetic baseline.
	Baseline string
}

// Shape is a single drawable element.
type Shape struct {
	ID    string
	Kind  Kind
	Group Group
	Datum dataset.Datum

	// Geometry. Which fields apply depends on Kind: paths for ribbons,
	// arcs and backdrops, Center and Radius for circles, Pos and Text for
	// text, Rect for the base.
	Path   string
	Center geom.Point
	Radius float64
	Pos    geom.Point
	Text   string
	Rect   geom.Rect

	// Bounds is the approximate extent of the shape in drawing coordinates.
	Bounds geom.Rect

	Style Style
	// Color is the shape's own fill, restored when highlights reset.
	Color string

	Highlighted bool
	Locked      bool

	handlers map[Action]Handler
}

// On installs h for action a, replacing any previous handler.
func (s *Shape) On(a Action, h Handler) {
	if s.handlers == nil {
		s.handlers = make(map[Action]Handler, 3)
	}
	s.handlers[a] = h
}

// Handles reports whether s has a handler for a.
func (s *Shape) Handles(a Action) bool {
	_, ok := s.handlers[a]
	return ok
}

// Interactive reports whether s has any handler installed.
func (s *Shape) Interactive() bool {
	return len(s.handlers) > 0
}

func (s *Shape) fire(a Action) bool {
	h, ok := s.handlers[a]
	if !ok {
		return false
	}
	h(s)
	return true
}
