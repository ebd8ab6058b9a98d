// Package layout computes the geometry of a semi-chord chart.
//
// [Compute] is a pure function of a validated configuration and a table:
// it places one key point per record on the key range of the circle, one
// arc per attribute on the arc range, and one ribbon per record and
// attribute whose angular width on the arc is proportional to the
// record's share of the attribute total.
//
// The result is read-only. A chart replaces its [Coordinates] on every
// update instead of mutating them.
package layout

import (
	"math"

	"github.com/matzehuels/semichord/pkg/config"
	"github.com/matzehuels/semichord/pkg/dataset"
	"github.com/matzehuels/semichord/pkg/geom"
	"github.com/matzehuels/semichord/pkg/scale"
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// KeyPoint is the position of one record's key on the circle.
type KeyPoint struct {
	Index int
	Angle float64
	Point geom.Point
	Text  string
	Datum dataset.Datum // Key plus one {Attribute, Value} per attribute
}

// Arc is the angular slot of one attribute.
type Arc struct {
	Attribute  string
	Start, End float64
	Total      float64
	Color      string
	Datum      dataset.Datum // Attribute plus one {Key, Value} per record
}

// Mid returns the angle halfway along the arc.
func (a Arc) Mid() float64 { return (a.Start + a.End) / 2 }

// Ribbon connects a record's key point to its slice of an attribute arc.
type Ribbon struct {
	Record     int
	Attribute  string
	StartAngle float64
	EndAngle   float64
	Source     geom.Point
	Start      geom.Point
	End        geom.Point
	Mid        geom.Point
	Color      string
	Text       string
	Datum      dataset.Datum
}

// Width returns the angular width of the ribbon on its arc.
func (r Ribbon) Width() float64 { return r.EndAngle - r.StartAngle }

// Coordinates is the computed layout of a chart.
type Coordinates struct {
	Circle   geom.Circle
	ArcWidth float64
	Keys     []KeyPoint
	Arcs     []Arc
	// Ribbons are grouped by attribute, then ordered by record.
	Ribbons []Ribbon

	colors *scale.Ordinal
}

// Color returns the color assigned to attribute, or "" when attribute is
// not plotted.
func (c *Coordinates) Color(attribute string) string {
	color, _ := c.colors.Lookup(attribute)
	return color
}

// Arc returns the arc for attribute.
func (c *Coordinates) Arc(attribute string) (Arc, bool) {
	for _, a := range c.Arcs {
		if a.Attribute == attribute {
			return a, true
		}
	}
	return Arc{}, false
}

// Compute lays out t according to cfg. cfg must have been through
// [config.Validate].
func Compute(cfg *config.Config, t *dataset.Table) *Coordinates {
	circle := geom.Circle{CX: cfg.CenterX, CY: cfg.CenterY, R: cfg.Radius}
	nRec, nAttr := len(t.Records), len(t.Attributes)

	keyScale := scale.NewPoint(nRec, TwoPi*cfg.Key.RangeStart, TwoPi*cfg.Key.RangeEnd)
	attrScale := scale.NewBand(nAttr, TwoPi*cfg.Arc.RangeStart, TwoPi*cfg.Arc.RangeEnd,
		cfg.Arc.InnerPadding, cfg.Arc.OuterPadding)
	colors := scale.NewOrdinal(cfg.ColorScheme, t.Attributes...)

	arcWidth := math.Max(0, attrScale.Bandwidth()-cfg.Arc.InnerPadding)

	cc := &Coordinates{
		Circle:   circle,
		ArcWidth: arcWidth,
		Keys:     make([]KeyPoint, nRec),
		Arcs:     make([]Arc, nAttr),
		Ribbons:  make([]Ribbon, 0, nRec*nAttr),
		colors:   colors,
	}

	// The first record sits nearest the top of the key range.
	for i := range t.Records {
		angle := keyScale.At(nRec - 1 - i)
		key := t.KeyOf(i)
		values := make([]dataset.Datum, nAttr)
		for j, attr := range t.Attributes {
			values[j] = dataset.Datum{Attribute: attr, Value: valueOrZero(t.ValueOf(i, attr))}
		}
		cc.Keys[i] = KeyPoint{
			Index: i,
			Angle: angle,
			Point: circle.Point(angle, 0),
			Text:  key,
			Datum: dataset.Datum{Key: key, Values: values},
		}
	}

	for j, attr := range t.Attributes {
		start := attrScale.At(j)
		arc := Arc{
			Attribute: attr,
			Start:     start,
			End:       start + arcWidth,
			Color:     colors.At(attr),
		}
		values := make([]dataset.Datum, nRec)
		for i := range t.Records {
			v := t.ValueOf(i, attr)
			arc.Total += geom.Numeric(v)
			values[i] = dataset.Datum{Key: cc.Keys[i].Text, Value: valueOrZero(v)}
		}
		arc.Datum = dataset.Datum{Attribute: attr, Values: values}
		cc.Arcs[j] = arc

		ratio := 0.0
		if arc.Total != 0 {
			ratio = arcWidth / arc.Total
		}

		angle := arc.Start
		for i := range t.Records {
			v := valueOrZero(t.ValueOf(i, attr))
			end := angle + geom.Numeric(v)*ratio
			key := cc.Keys[i].Text
			cc.Ribbons = append(cc.Ribbons, Ribbon{
				Record:     i,
				Attribute:  attr,
				StartAngle: angle,
				EndAngle:   end,
				Source:     cc.Keys[i].Point,
				Start:      circle.Point(angle, 0),
				End:        circle.Point(end, 0),
				Mid:        circle.Point((angle+end)/2, 0),
				Color:      arc.Color,
				Text:       LabelText(key, v),
				Datum:      dataset.Datum{Key: key, Attribute: attr, Value: v},
			})
			angle = end
		}
	}

	return cc
}

// LabelText formats the "key : value" text shown for a ribbon.
func LabelText(key string, v dataset.Value) string {
	return key + " : " + valueOrZero(v).String()
}

func valueOrZero(v dataset.Value) dataset.Value {
	if v.IsZero() {
		return dataset.Num(0)
	}
	return v
}
