package shape

import (
	"slices"

	"github.com/matzehuels/semichord/pkg/dataset"
)

// Predicate selects shapes.
type Predicate func(*Shape) bool

// ByKind matches shapes of any of the given kinds.
func ByKind(kinds ...Kind) Predicate {
	return func(s *Shape) bool { return slices.Contains(kinds, s.Kind) }
}

// ByKey matches shapes whose datum has the given key.
func ByKey(key string) Predicate {
	return func(s *Shape) bool { return s.Datum.Key == key }
}

// ByAttribute matches shapes whose datum has the given attribute.
func ByAttribute(attr string) Predicate {
	return func(s *Shape) bool { return s.Datum.Attribute == attr }
}

// ByValue matches shapes whose datum value renders as v does, so the
// number 10 and the string "10" are the same value.
func ByValue(v dataset.Value) Predicate {
	want := v.String()
	return func(s *Shape) bool { return s.Datum.Value.String() == want }
}

// Highlighted matches highlighted shapes.
func Highlighted(s *Shape) bool { return s.Highlighted }

// Locked matches lock-protected shapes.
func Locked(s *Shape) bool { return s.Locked }

// Not negates p.
func Not(p Predicate) Predicate {
	return func(s *Shape) bool { return !p(s) }
}

// And matches shapes satisfying every predicate. No predicates match
// everything.
func And(preds ...Predicate) Predicate {
	return func(s *Shape) bool {
		for _, p := range preds {
			if !p(s) {
				return false
			}
		}
		return true
	}
}
