package geom

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/semichord/pkg/dataset"
)

func TestCirclePoint(t *testing.T) {
	c := Circle{CX: 100, CY: 100, R: 50}

	tests := []struct {
		name  string
		angle float64
		r     float64
		want  Point
	}{
		{"twelve o'clock", 0, 0, Point{100, 50}},
		{"three o'clock", math.Pi / 2, 0, Point{150, 100}},
		{"six o'clock", math.Pi, 0, Point{100, 150}},
		{"nine o'clock", 3 * math.Pi / 2, 0, Point{50, 100}},
		{"custom radius", math.Pi / 2, 10, Point{110, 100}},
		{"rounded", math.Pi / 4, 0, Point{135, 65}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Point(tt.angle, tt.r); got != tt.want {
				t.Errorf("Point(%v, %v) = %v, want %v", tt.angle, tt.r, got, tt.want)
			}
		})
	}
}

func TestRibbonPath(t *testing.T) {
	got := RibbonPath(Point{100, 200}, Point{300, 100}, Point{310, 120}, Point{305, 110})
	want := "M 100,200 Q 200,190 300,100 Q 305,110 310,120 Q 205,205 100,200"
	if got != want {
		t.Errorf("RibbonPath() = %q, want %q", got, want)
	}
}

func TestLabelBackdropPath(t *testing.T) {
	got := LabelBackdropPath(Point{0, 50}, Point{10, 30}, Point{10, 70}, 40)
	want := "M 50,20 Q 30,30 10,30 Q 5,50 0,50 Q 5,50 10,70 Q 30,70 50,80 Q 80,50 50,20"
	if got != want {
		t.Errorf("LabelBackdropPath() = %q, want %q", got, want)
	}
	if n := strings.Count(got, "Q"); n != 5 {
		t.Errorf("segments = %d, want 5", n)
	}
}

func TestArcPath(t *testing.T) {
	c := Circle{CX: 0, CY: 0, R: 100}
	got := ArcPath(c, 90, 110, 0, math.Pi/2)
	want := "M 0,-110 A 110,110 0 0,1 110,0 L 90,0 A 90,90 0 0,0 0,-90 Z"
	if got != want {
		t.Errorf("ArcPath() = %q, want %q", got, want)
	}

	large := ArcPath(c, 90, 110, 0, 1.5*math.Pi)
	if !strings.Contains(large, "0 1,1") {
		t.Errorf("ArcPath() over half a turn should set the large-arc flag: %q", large)
	}
}

func TestNumericValue(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$1,234.50", 1234.5},
		{"", 0},
		{"42", 42},
		{"-3.5", -3.5},
		{"12%", 12},
		{"1e3", 1000},
		{"abc", 0},
		{"1.2.3", 1.2},
		{".", 0},
		{"NaN", 0},
	}
	for _, tt := range tests {
		if got := NumericValue(tt.in); got != tt.want {
			t.Errorf("NumericValue(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNumeric(t *testing.T) {
	tests := []struct {
		in   dataset.Value
		want float64
	}{
		{dataset.Num(42), 42},
		{dataset.Str("$1,234.50"), 1234.5},
		{dataset.Value{}, 0},
	}
	for _, tt := range tests {
		if got := Numeric(tt.in); got != tt.want {
			t.Errorf("Numeric(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 5, Y: -5, W: 10, H: 5}
	want := Rect{X: 0, Y: -5, W: 15, H: 15}
	if got := a.Union(b); got != want {
		t.Errorf("Union() = %v, want %v", got, want)
	}
	if got := (Rect{}).Union(a); got != a {
		t.Errorf("empty Union() = %v, want %v", got, a)
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{0.1 + 0.2, "0.3"},
		{-0.0000001, "0"},
		{1234.5, "1234.5"},
	}
	for _, tt := range tests {
		if got := Number(tt.in); got != tt.want {
			t.Errorf("Number(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
