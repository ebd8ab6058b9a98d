// Package geom provides the pure geometry behind a semi-chord chart:
// points on the outline circle, path data for ribbons, arcs and label
// backdrops, and numeric coercion of field values.
//
// Angles are radians measured clockwise from 12 o'clock, matching the
// layout of a clock face. Path data is SVG path syntax with absolute
// coordinates.
package geom

import (
	"math"
	"strconv"
	"strings"
)

// Point is a position in drawing coordinates (y grows downwards).
type Point struct {
	X, Y float64
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Circle is the outline circle every chart element is placed on.
type Circle struct {
	CX, CY, R float64
}

// Point returns the pixel on a circle of radius r around the centre at the
// given angle, rounded to whole pixels. r <= 0 uses the circle's own radius.
func (c Circle) Point(angle, r float64) Point {
	if r <= 0 {
		r = c.R
	}
	return Point{
		X: math.Round(c.CX + r*math.Sin(angle)),
		Y: math.Round(c.CY - r*math.Cos(angle)),
	}
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the centre point.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 && r.H <= 0 }

// Union returns the smallest rect containing r and o. Empty rects are
// ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0, y0 := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	x1, y1 := math.Max(r.Right(), o.Right()), math.Max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Number formats f the way path data and SVG attributes expect it: the
// shortest decimal form, with float noise beyond 1e-6 dropped.
func Number(f float64) string {
	f = math.Round(f*1e6) / 1e6
	if f == 0 {
		f = 0 // drops negative zero
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type pathBuilder struct {
	strings.Builder
}

func (b *pathBuilder) cmd(c string, pts ...Point) {
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(c)
	for _, p := range pts {
		b.WriteByte(' ')
		b.WriteString(Number(p.X))
		b.WriteByte(',')
		b.WriteString(Number(p.Y))
	}
}
