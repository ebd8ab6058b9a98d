package config

import (
	"math"

	"github.com/matzehuels/semichord/pkg/errors"
)

// Fallback container size used when the element cannot be measured.
const (
	DefaultWidth  = 600
	DefaultHeight = 400
)

// Category10 is the default ordinal palette.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// DefaultFontFamily is used for every text shape unless overridden.
const DefaultFontFamily = "sans-serif"

// KeyRadiusRatio is the key point radius as a fraction of the chart radius.
const KeyRadiusRatio = 0.05

func defaultOutlineCircle() OutlineCircle {
	return OutlineCircle{Stroke: "#EEE", Fill: "none", StrokeWidth: 0.25}
}

func defaultRibbon() Ribbon {
	return Ribbon{Opacity: 0.5, HoverOpacity: 0.7, HoverInverseOpacity: 0.1}
}

func defaultArc() Arc {
	return Arc{
		InnerPadding:    0.02,
		OuterPadding:    0.2,
		RangeStart:      0,
		RangeEnd:        0.5,
		Width:           15,
		TitleTextOffset: 15,
		TitleFontSize:   16,
	}
}

func defaultKey() Key {
	return Key{
		Color:      "#AAA",
		FontColor:  "#AAA",
		FontSize:   14,
		RangeStart: 0.65,
		RangeEnd:   0.85,
	}
}

func defaultValueLabel() ValueLabel {
	return ValueLabel{
		OffsetX:                    30,
		BackdropOffsetX:            10,
		FontSize:                   11,
		VerticalSpace:              12,
		FontOpacity:                0.8,
		FontHighlightOpacity:       1,
		FontHighlightInverseColor:  "#AAA",
		FontHighlightSizeIncrement: 1.5,
		BackdropOpacity:            0.2,
		BackdropHighlightOpacity:   0.3,
	}
}

// Default returns a fully populated configuration for an element of the
// given size.
func Default(width, height float64) *Config {
	cfg, _ := Validate(nil, Box{Width: width, Height: height})
	return cfg
}

// Validate fills every unset field of cfg with its default and returns cfg.
// A nil cfg is replaced by a fresh one. Geometry defaults derive from the
// element size; an element that cannot be measured counts as
// [DefaultWidth]x[DefaultHeight].
//
// Validate fails with INVALID_CONTAINER when el is nil or a nil *Box and with
// INVALID_CONFIG when a set value is out of range.
func Validate(cfg *Config, el Element) (*Config, error) {
	if !Present(el) {
		return nil, errors.New(errors.ErrCodeInvalidContainer, "no container element to draw on")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	w, h := el.Size()
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}

	or(&cfg.Radius, math.Floor(math.Min(w, h)/3))
	or(&cfg.CenterX, w/2.5)
	or(&cfg.CenterY, h/2)
	if len(cfg.ColorScheme) == 0 {
		cfg.ColorScheme = append([]string(nil), Category10...)
	}
	or(&cfg.FontFamily, DefaultFontFamily)

	cfg.OutlineCircle = mergeOutlineCircle(cfg.OutlineCircle)
	cfg.Ribbon = mergeRibbon(cfg.Ribbon)
	cfg.Arc = mergeArc(cfg.Arc)
	cfg.Key = mergeKey(cfg.Key, cfg.Radius)
	cfg.ValueLabel = mergeValueLabel(cfg.ValueLabel)

	if err := checkRanges(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeOutlineCircle(c *OutlineCircle) *OutlineCircle {
	d := defaultOutlineCircle()
	if c == nil {
		return &d
	}
	or(&c.Stroke, d.Stroke)
	or(&c.Fill, d.Fill)
	or(&c.StrokeWidth, d.StrokeWidth)
	return c
}

func mergeRibbon(c *Ribbon) *Ribbon {
	d := defaultRibbon()
	if c == nil {
		return &d
	}
	or(&c.Opacity, d.Opacity)
	or(&c.HoverOpacity, d.HoverOpacity)
	or(&c.HoverInverseOpacity, d.HoverInverseOpacity)
	return c
}

func mergeArc(c *Arc) *Arc {
	d := defaultArc()
	if c == nil {
		return &d
	}
	or(&c.InnerPadding, d.InnerPadding)
	or(&c.OuterPadding, d.OuterPadding)
	or(&c.RangeStart, d.RangeStart)
	or(&c.RangeEnd, d.RangeEnd)
	or(&c.Width, d.Width)
	or(&c.TitleTextOffset, d.TitleTextOffset)
	or(&c.TitleFontSize, d.TitleFontSize)
	return c
}

// mergeKey needs the resolved chart radius for the key point radius.
func mergeKey(c *Key, radius float64) *Key {
	d := defaultKey()
	d.Radius = KeyRadiusRatio * radius
	if c == nil {
		return &d
	}
	or(&c.Radius, d.Radius)
	or(&c.Color, d.Color)
	or(&c.FontColor, d.FontColor)
	or(&c.FontSize, d.FontSize)
	or(&c.RangeStart, d.RangeStart)
	or(&c.RangeEnd, d.RangeEnd)
	return c
}

func mergeValueLabel(c *ValueLabel) *ValueLabel {
	d := defaultValueLabel()
	if c == nil {
		return &d
	}
	or(&c.OffsetX, d.OffsetX)
	or(&c.BackdropOffsetX, d.BackdropOffsetX)
	or(&c.FontSize, d.FontSize)
	or(&c.VerticalSpace, d.VerticalSpace)
	or(&c.FontOpacity, d.FontOpacity)
	or(&c.FontHighlightOpacity, d.FontHighlightOpacity)
	or(&c.FontHighlightInverseColor, d.FontHighlightInverseColor)
	or(&c.FontHighlightSizeIncrement, d.FontHighlightSizeIncrement)
	or(&c.BackdropOpacity, d.BackdropOpacity)
	or(&c.BackdropHighlightOpacity, d.BackdropHighlightOpacity)
	return c
}

// or sets *dst to def when *dst is the zero value.
func or[T comparable](dst *T, def T) {
	var zero T
	if *dst == zero {
		*dst = def
	}
}

func checkRanges(cfg *Config) error {
	fractions := []struct {
		field string
		v     float64
	}{
		{"ribbon.opacity", cfg.Ribbon.Opacity},
		{"ribbon.hoverOpacity", cfg.Ribbon.HoverOpacity},
		{"ribbon.hoverInverseOpacity", cfg.Ribbon.HoverInverseOpacity},
		{"arc.innerPadding", cfg.Arc.InnerPadding},
		{"arc.outerPadding", cfg.Arc.OuterPadding},
		{"arc.rangeStart", cfg.Arc.RangeStart},
		{"arc.rangeEnd", cfg.Arc.RangeEnd},
		{"key.rangeStart", cfg.Key.RangeStart},
		{"key.rangeEnd", cfg.Key.RangeEnd},
		{"valueLabel.fontOpacity", cfg.ValueLabel.FontOpacity},
		{"valueLabel.fontHighlightOpacity", cfg.ValueLabel.FontHighlightOpacity},
		{"valueLabel.backdropOpacity", cfg.ValueLabel.BackdropOpacity},
		{"valueLabel.backdropHighlightOpacity", cfg.ValueLabel.BackdropHighlightOpacity},
	}
	for _, f := range fractions {
		if err := errors.ValidateFraction(f.field, f.v); err != nil {
			return err
		}
	}
	if cfg.Radius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "radius must not be negative, got %g", cfg.Radius)
	}
	if cfg.Arc.Width < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "arc.width must not be negative, got %g", cfg.Arc.Width)
	}
	return nil
}
