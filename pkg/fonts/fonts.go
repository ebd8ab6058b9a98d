// Package fonts measures rendered text.
//
// Label backdrops are sized to the text they contain, so the renderer
// needs text widths before any sink has drawn anything. The default
// [Measurer] uses the Go fonts embedded in golang.org/x/image, which have
// metrics close to common sans-serif faces.
package fonts

import (
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Measurer reports the advance width of text set at a font size.
type Measurer interface {
	Width(text string, size float64, bold bool) float64
}

// Fixed measures every glyph as a fixed fraction of the font size. It is
// useful in tests and when no font data is available.
type Fixed float64

// Width implements Measurer.
func (f Fixed) Width(text string, size float64, _ bool) float64 {
	return float64(len([]rune(text))) * size * float64(f)
}

// GoFont measures text with the embedded Go Regular and Go Bold faces.
type GoFont struct {
	mu      sync.Mutex
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

var (
	defaultMeasurer     *GoFont
	defaultMeasurerOnce sync.Once
)

// Default returns the shared GoFont measurer, falling back to a Fixed
// measurer if the embedded fonts cannot be parsed.
func Default() Measurer {
	defaultMeasurerOnce.Do(func() {
		m, err := NewGoFont()
		if err == nil {
			defaultMeasurer = m
		}
	})
	if defaultMeasurer == nil {
		return Fixed(0.55)
	}
	return defaultMeasurer
}

// NewGoFont parses the embedded fonts.
func NewGoFont() (*GoFont, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}
	return &GoFont{regular: regular, bold: bold, faces: map[faceKey]font.Face{}}, nil
}

// Width implements Measurer.
func (g *GoFont) Width(text string, size float64, bold bool) float64 {
	if text == "" || size <= 0 {
		return 0
	}
	face, err := g.face(size, bold)
	if err != nil {
		return Fixed(0.55).Width(text, size, bold)
	}
	adv := font.MeasureString(face, text)
	return math.Round(float64(adv)/64*100) / 100
}

func (g *GoFont) face(size float64, bold bool) (font.Face, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := faceKey{size: size, bold: bold}
	if f, ok := g.faces[key]; ok {
		return f, nil
	}
	src := g.regular
	if bold {
		src = g.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	g.faces[key] = f
	return f, nil
}
