package geom

import "math"

// Control point offsets for ribbon curves. These are visual tuning, not
// derived geometry.
const (
	ribbonBulgeUp   = 10
	ribbonBulgeDown = 5
	backdropFlare   = 10
)

// RibbonPath connects a key point src to the arc segment start..end. The
// outline runs src → start, through mid to end, then back to src, with the
// first leg bulging up and the last leg bulging down.
func RibbonPath(src, start, end, mid Point) string {
	var b pathBuilder
	b.cmd("M", src)
	b.cmd("Q", Point{X: (src.X + start.X) / 2, Y: src.Y - ribbonBulgeUp}, start)
	b.cmd("Q", mid, end)
	b.cmd("Q", Point{X: (src.X + end.X) / 2, Y: src.Y + ribbonBulgeDown}, src)
	return b.String()
}

// LabelBackdropPath outlines a leaf shape of the given width behind a label
// cluster. The left edge curves through centerLeft; the right corners flare
// out vertically.
func LabelBackdropPath(centerLeft, topLeft, bottomLeft Point, width float64) string {
	topRight := Point{X: topLeft.X + width, Y: topLeft.Y - backdropFlare}
	bottomRight := Point{X: bottomLeft.X + width, Y: bottomLeft.Y + backdropFlare}

	var b pathBuilder
	b.cmd("M", topRight)
	b.cmd("Q", Point{X: (topLeft.X + topRight.X) / 2, Y: topLeft.Y}, topLeft)
	b.cmd("Q", Point{X: (centerLeft.X + topLeft.X) / 2, Y: centerLeft.Y}, centerLeft)
	b.cmd("Q", Point{X: (bottomLeft.X + centerLeft.X) / 2, Y: centerLeft.Y}, bottomLeft)
	b.cmd("Q", Point{X: (bottomRight.X + bottomLeft.X) / 2, Y: bottomLeft.Y}, bottomRight)
	b.cmd("Q", Point{
		X: bottomRight.X + (bottomRight.Y-topRight.Y)/2,
		Y: (bottomRight.Y + topRight.Y) / 2,
	}, topRight)
	return b.String()
}

// ArcPath returns an annular sector around the circle's centre between
// the inner and outer radius, from angle start to end. Degenerate sectors
// (end <= start) collapse to a closed radial line.
func ArcPath(c Circle, inner, outer, start, end float64) string {
	at := func(r, a float64) Point {
		return Point{X: c.CX + r*math.Sin(a), Y: c.CY - r*math.Cos(a)}
	}
	if end < start {
		end = start
	}
	large := "0"
	if end-start > math.Pi {
		large = "1"
	}

	var b pathBuilder
	b.cmd("M", at(outer, start))
	b.arc(outer, large, "1", at(outer, end))
	b.cmd("L", at(inner, end))
	if inner > 0 {
		b.arc(inner, large, "0", at(inner, start))
	}
	b.WriteString(" Z")
	return b.String()
}

func (b *pathBuilder) arc(r float64, large, sweep string, to Point) {
	rs := Number(r)
	b.WriteString(" A " + rs + "," + rs + " 0 " + large + "," + sweep + " ")
	b.WriteString(Number(to.X) + "," + Number(to.Y))
}
