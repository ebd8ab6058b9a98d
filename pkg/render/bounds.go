package render

import (
	"math"

	"github.com/matzehuels/semichord/pkg/geom"
	"github.com/matzehuels/semichord/pkg/layout"
)

// Bounds are approximate: they cover every point and control point of a
// path, which contains the curve itself.

func circleBounds(c geom.Point, r float64) geom.Rect {
	return geom.Rect{X: c.X - r, Y: c.Y - r, W: 2 * r, H: 2 * r}
}

func pointsBounds(pts ...geom.Point) geom.Rect {
	if len(pts) == 0 {
		return geom.Rect{}
	}
	x0, y0, x1, y1 := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		x0, x1 = math.Min(x0, p.X), math.Max(x1, p.X)
		y0, y1 = math.Min(y0, p.Y), math.Max(y1, p.Y)
	}
	return geom.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func ribbonBounds(r layout.Ribbon) geom.Rect {
	return pointsBounds(r.Source, r.Start, r.End, r.Mid,
		r.Source.Add(0, -10), r.Source.Add(0, 5))
}

// sectorBounds samples the outer and inner edge of an annular sector.
func sectorBounds(c geom.Circle, inner, outer, start, end float64) geom.Rect {
	const samples = 8
	if end < start {
		end = start
	}
	pts := make([]geom.Point, 0, 2*(samples+1))
	for i := 0; i <= samples; i++ {
		a := start + (end-start)*float64(i)/samples
		sin, cos := math.Sincos(a)
		pts = append(pts,
			geom.Point{X: c.CX + outer*sin, Y: c.CY - outer*cos},
			geom.Point{X: c.CX + inner*sin, Y: c.CY - inner*cos})
	}
	return pointsBounds(pts...)
}

func backdropBounds(centerLeft, topLeft, bottomLeft geom.Point, width float64) geom.Rect {
	flare := 10.0
	topRight := geom.Point{X: topLeft.X + width, Y: topLeft.Y - flare}
	bottomRight := geom.Point{X: bottomLeft.X + width, Y: bottomLeft.Y + flare}
	bulge := geom.Point{X: bottomRight.X + (bottomRight.Y-topRight.Y)/2, Y: (bottomRight.Y + topRight.Y) / 2}
	return pointsBounds(centerLeft, topLeft, bottomLeft, topRight, bottomRight, bulge)
}
