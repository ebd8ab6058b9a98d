// Package scale maps discrete domains onto continuous ranges.
//
// [Band] splits a range into equal slots separated by inner padding with
// outer padding at both ends. [Point] is a band scale with zero-width
// bands, placing each domain value on an evenly spaced point. [Ordinal]
// assigns each domain value an entry of a palette, cycling when the domain
// is larger.
//
// Band and Point follow the semantics of the d3-scale band and point
// scales with align fixed at 0.5 and no rounding, so layouts computed here
// line up with charts drawn by d3.
package scale

import "math"

// Band maps domain indices to the start of their slot in [Start, Stop].
type Band struct {
	n            int
	start, stop  float64
	paddingInner float64
	paddingOuter float64

	begin float64
	step  float64
	bw    float64
}

// NewBand returns a band scale for a domain of n values over [start, stop].
// paddingInner is clamped to [0, 1].
func NewBand(n int, start, stop, paddingInner, paddingOuter float64) *Band {
	b := &Band{
		n:            n,
		start:        start,
		stop:         stop,
		paddingInner: math.Max(0, math.Min(1, paddingInner)),
		paddingOuter: paddingOuter,
	}
	b.rescale()
	return b
}

func (b *Band) rescale() {
	r0, r1 := b.start, b.stop
	reverse := r1 < r0
	if reverse {
		r0, r1 = r1, r0
	}
	n := float64(b.n)
	b.step = (r1 - r0) / math.Max(1, n-b.paddingInner+2*b.paddingOuter)
	r0 += (r1 - r0 - b.step*(n-b.paddingInner)) * 0.5
	b.bw = b.step * (1 - b.paddingInner)
	b.begin = r0
	if reverse {
		// first value sits at the far end
		b.begin = r0 + b.step*(n-1)
		b.step = -b.step
	}
}

// At returns the slot start for index i. Indices outside the domain
// return NaN.
func (b *Band) At(i int) float64 {
	if i < 0 || i >= b.n {
		return math.NaN()
	}
	return b.begin + b.step*float64(i)
}

// Bandwidth returns the width of each slot.
func (b *Band) Bandwidth() float64 { return b.bw }

// Step returns the distance between the starts of adjacent slots.
func (b *Band) Step() float64 { return math.Abs(b.step) }

// Len returns the domain size.
func (b *Band) Len() int { return b.n }

// Point maps domain indices to evenly spaced points over [start, stop].
// A single value lands on the midpoint.
type Point struct {
	band *Band
}

// NewPoint returns a point scale for a domain of n values over [start, stop].
func NewPoint(n int, start, stop float64) *Point {
	return &Point{band: NewBand(n, start, stop, 1, 0)}
}

// At returns the point for index i.
func (p *Point) At(i int) float64 { return p.band.At(i) }

// Step returns the distance between adjacent points.
func (p *Point) Step() float64 { return p.band.Step() }

// Ordinal assigns palette entries to domain values in first-seen order.
type Ordinal struct {
	palette []string
	index   map[string]int
	domain  []string
}

// NewOrdinal returns an ordinal scale over palette, pre-seeded with domain
// so the assignment does not depend on lookup order.
func NewOrdinal(palette []string, domain ...string) *Ordinal {
	o := &Ordinal{
		palette: append([]string(nil), palette...),
		index:   make(map[string]int, len(domain)),
	}
	for _, d := range domain {
		o.At(d)
	}
	return o
}

// At returns the palette entry for v, extending the domain when v is new.
// An empty palette yields "".
func (o *Ordinal) At(v string) string {
	i, ok := o.index[v]
	if !ok {
		i = len(o.domain)
		o.index[v] = i
		o.domain = append(o.domain, v)
	}
	if len(o.palette) == 0 {
		return ""
	}
	return o.palette[i%len(o.palette)]
}

// Lookup returns the palette entry for v without extending the domain.
// It reports false when v was never assigned or the palette is empty.
func (o *Ordinal) Lookup(v string) (string, bool) {
	i, ok := o.index[v]
	if !ok || len(o.palette) == 0 {
		return "", false
	}
	return o.palette[i%len(o.palette)], true
}

// Domain returns the values seen so far in assignment order.
func (o *Ordinal) Domain() []string {
	return append([]string(nil), o.domain...)
}
