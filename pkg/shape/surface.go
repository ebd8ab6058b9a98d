package shape

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/matzehuels/semichord/pkg/errors"
	"github.com/matzehuels/semichord/pkg/geom"
)

// Group names a paint layer.
type Group string

// Paint order of a freshly built surface, back to front.
const (
	GroupBase       Group = "base"
	GroupOutline    Group = "outline"
	GroupRibbons    Group = "ribbons"
	GroupKeys       Group = "keys"
	GroupAttributes Group = "attributes"
	GroupTitles     Group = "titles"
	GroupLabels     Group = "labels"
)

// DefaultGroups is the paint order used by [NewSurface].
var DefaultGroups = []Group{
	GroupBase, GroupOutline, GroupRibbons, GroupKeys,
	GroupAttributes, GroupTitles, GroupLabels,
}

type layer struct {
	name   Group
	shapes []*Shape
}

// Surface is an ordered registry of shapes. It is not safe for concurrent
// use.
type Surface struct {
	id     string
	layers []*layer
	byID   map[string]*Shape
	seq    int
}

// NewSurface returns an empty surface whose shape IDs are prefixed with id.
func NewSurface(id string) *Surface {
	s := &Surface{id: id, byID: map[string]*Shape{}}
	for _, g := range DefaultGroups {
		s.layers = append(s.layers, &layer{name: g})
	}
	return s
}

// ID returns the prefix shared by every shape on the surface.
func (s *Surface) ID() string { return s.id }

func (s *Surface) layer(g Group) *layer {
	for _, l := range s.layers {
		if l.name == g {
			return l
		}
	}
	l := &layer{name: g}
	s.layers = append(s.layers, l)
	return l
}

// Add appends sh to group g and assigns it an ID unique on this surface.
func (s *Surface) Add(g Group, sh *Shape) *Shape {
	s.seq++
	sh.ID = fmt.Sprintf("%s-%s-%d", s.id, sh.Kind, s.seq)
	sh.Group = g
	l := s.layer(g)
	l.shapes = append(l.shapes, sh)
	s.byID[sh.ID] = sh
	return sh
}

// Get returns the shape with the given ID.
func (s *Surface) Get(id string) (*Shape, bool) {
	sh, ok := s.byID[id]
	return sh, ok
}

// Groups returns the group names in paint order.
func (s *Surface) Groups() []Group {
	return lo.Map(s.layers, func(l *layer, _ int) Group { return l.name })
}

// Group returns the shapes of g in paint order.
func (s *Surface) Group(g Group) []*Shape {
	for _, l := range s.layers {
		if l.name == g {
			return slices.Clone(l.shapes)
		}
	}
	return nil
}

// Shapes returns every shape in paint order.
func (s *Surface) Shapes() []*Shape {
	out := make([]*Shape, 0, len(s.byID))
	for _, l := range s.layers {
		out = append(out, l.shapes...)
	}
	return out
}

// Len returns the number of shapes.
func (s *Surface) Len() int { return len(s.byID) }

// Filter returns the shapes matching every predicate, in paint order.
func (s *Surface) Filter(preds ...Predicate) []*Shape {
	match := And(preds...)
	return lo.Filter(s.Shapes(), func(sh *Shape, _ int) bool {
		return match(sh)
	})
}

// Raise moves sh to the end of its group so it paints above its siblings.
func (s *Surface) Raise(sh *Shape) {
	l := s.layer(sh.Group)
	i := slices.Index(l.shapes, sh)
	if i < 0 || i == len(l.shapes)-1 {
		return
	}
	l.shapes = append(slices.Delete(l.shapes, i, i+1), sh)
}

// MoveGroupAfter re-places group g directly after group after in paint
// order. Unknown groups are ignored.
func (s *Surface) MoveGroupAfter(g, after Group) {
	from := slices.IndexFunc(s.layers, func(l *layer) bool { return l.name == g })
	if from < 0 || g == after {
		return
	}
	l := s.layers[from]
	rest := slices.Delete(slices.Clone(s.layers), from, from+1)
	to := slices.IndexFunc(rest, func(l *layer) bool { return l.name == after })
	if to < 0 {
		return
	}
	s.layers = slices.Insert(rest, to+1, l)
}

// Trigger delivers action a to the shape with the given ID. It fails with
// NOT_FOUND for unknown IDs and UNSUPPORTED when the shape does not handle a.
func (s *Surface) Trigger(id string, a Action) error {
	sh, ok := s.byID[id]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no shape %q", id)
	}
	if !sh.fire(a) {
		return errors.New(errors.ErrCodeUnsupported, "shape %q does not handle %s", id, a)
	}
	return nil
}

// Clear removes every shape, keeping the group order.
func (s *Surface) Clear() {
	for _, l := range s.layers {
		l.shapes = nil
	}
	s.byID = map[string]*Shape{}
}

// Bounds returns the union of all shape bounds.
func (s *Surface) Bounds() geom.Rect {
	return lo.Reduce(s.Shapes(), func(acc geom.Rect, sh *Shape, _ int) geom.Rect {
		return acc.Union(sh.Bounds)
	}, geom.Rect{})
}
