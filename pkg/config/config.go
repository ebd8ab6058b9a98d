// Package config defines the chart configuration and its defaults.
//
// A [Config] is usually partial: callers set the few options they care
// about and [Validate] fills in the rest against the container size. Zero
// values count as unset, so a field cannot be explicitly configured to 0
// when its default is non-zero.
//
// Config is tagged for JSON, TOML and YAML with the camelCase option names
// used in config files:
//
//	radius = 150
//
//	[ribbon]
//	hoverOpacity = 0.9
//
//	[valueLabel]
//	autoHide = true
package config

import "github.com/samber/lo"

// Element is the drawable container a chart is mounted on. Size reports
// its measured width and height; zero dimensions mean it cannot be measured.
type Element interface {
	Size() (width, height float64)
}

// Box is a fixed-size Element.
type Box struct {
	Width, Height float64
}

// Size implements Element.
func (b Box) Size() (float64, float64) { return b.Width, b.Height }

// Valid reports whether b points at a box.
func (b *Box) Valid() bool { return b != nil }

// Present reports whether el can be measured. Elements may implement
// Valid() bool to reject typed nil pointers.
func Present(el Element) bool {
	if el == nil {
		return false
	}
	if v, ok := el.(interface{ Valid() bool }); ok {
		return v.Valid()
	}
	return true
}

// Config is the full chart configuration.
type Config struct {
	Radius              float64  `json:"radius,omitempty" toml:"radius,omitempty" yaml:"radius,omitempty"`
	CenterX             float64  `json:"centerX,omitempty" toml:"centerX,omitempty" yaml:"centerX,omitempty"`
	CenterY             float64  `json:"centerY,omitempty" toml:"centerY,omitempty" yaml:"centerY,omitempty"`
	DisableInteractions bool     `json:"disableInteractions,omitempty" toml:"disableInteractions,omitempty" yaml:"disableInteractions,omitempty"`
	ColorScheme         []string `json:"colorScheme,omitempty" toml:"colorScheme,omitempty" yaml:"colorScheme,omitempty"`
	FontFamily          string   `json:"fontFamily,omitempty" toml:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`

	OutlineCircle *OutlineCircle `json:"outlineCircle,omitempty" toml:"outlineCircle,omitempty" yaml:"outlineCircle,omitempty"`
	Ribbon        *Ribbon        `json:"ribbon,omitempty" toml:"ribbon,omitempty" yaml:"ribbon,omitempty"`
	Arc           *Arc           `json:"arc,omitempty" toml:"arc,omitempty" yaml:"arc,omitempty"`
	Key           *Key           `json:"key,omitempty" toml:"key,omitempty" yaml:"key,omitempty"`
	ValueLabel    *ValueLabel    `json:"valueLabel,omitempty" toml:"valueLabel,omitempty" yaml:"valueLabel,omitempty"`
}

// OutlineCircle styles the circle drawn behind every ribbon.
type OutlineCircle struct {
	Stroke      string  `json:"stroke,omitempty" toml:"stroke,omitempty" yaml:"stroke,omitempty"`
	Fill        string  `json:"fill,omitempty" toml:"fill,omitempty" yaml:"fill,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty" toml:"strokeWidth,omitempty" yaml:"strokeWidth,omitempty"`
}

// Ribbon holds ribbon opacities at rest, when highlighted and when another
// ribbon is highlighted.
type Ribbon struct {
	Opacity             float64 `json:"opacity,omitempty" toml:"opacity,omitempty" yaml:"opacity,omitempty"`
	HoverOpacity        float64 `json:"hoverOpacity,omitempty" toml:"hoverOpacity,omitempty" yaml:"hoverOpacity,omitempty"`
	HoverInverseOpacity float64 `json:"hoverInverseOpacity,omitempty" toml:"hoverInverseOpacity,omitempty" yaml:"hoverInverseOpacity,omitempty"`
}

// Arc configures the attribute arcs on the right side of the circle.
// RangeStart and RangeEnd are fractions of a full turn.
type Arc struct {
	InnerPadding    float64 `json:"innerPadding,omitempty" toml:"innerPadding,omitempty" yaml:"innerPadding,omitempty"`
	OuterPadding    float64 `json:"outerPadding,omitempty" toml:"outerPadding,omitempty" yaml:"outerPadding,omitempty"`
	RangeStart      float64 `json:"rangeStart,omitempty" toml:"rangeStart,omitempty" yaml:"rangeStart,omitempty"`
	RangeEnd        float64 `json:"rangeEnd,omitempty" toml:"rangeEnd,omitempty" yaml:"rangeEnd,omitempty"`
	Width           float64 `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	TitleTextOffset float64 `json:"titleTextOffset,omitempty" toml:"titleTextOffset,omitempty" yaml:"titleTextOffset,omitempty"`
	TitleFontSize   float64 `json:"titleFontSize,omitempty" toml:"titleFontSize,omitempty" yaml:"titleFontSize,omitempty"`
}

// Key configures the record key points on the left side of the circle.
type Key struct {
	Radius     float64 `json:"radius,omitempty" toml:"radius,omitempty" yaml:"radius,omitempty"`
	Color      string  `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
	FontColor  string  `json:"fontColor,omitempty" toml:"fontColor,omitempty" yaml:"fontColor,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty" toml:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	RangeStart float64 `json:"rangeStart,omitempty" toml:"rangeStart,omitempty" yaml:"rangeStart,omitempty"`
	RangeEnd   float64 `json:"rangeEnd,omitempty" toml:"rangeEnd,omitempty" yaml:"rangeEnd,omitempty"`
}

// ValueLabel configures the "key : value" label clusters next to each
// attribute title.
type ValueLabel struct {
	OffsetX                    float64 `json:"offsetX,omitempty" toml:"offsetX,omitempty" yaml:"offsetX,omitempty"`
	BackdropOffsetX            float64 `json:"backdropOffsetX,omitempty" toml:"backdropOffsetX,omitempty" yaml:"backdropOffsetX,omitempty"`
	FontSize                   float64 `json:"fontSize,omitempty" toml:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	VerticalSpace              float64 `json:"verticalSpace,omitempty" toml:"verticalSpace,omitempty" yaml:"verticalSpace,omitempty"`
	FontOpacity                float64 `json:"fontOpacity,omitempty" toml:"fontOpacity,omitempty" yaml:"fontOpacity,omitempty"`
	FontHighlightOpacity       float64 `json:"fontHighlightOpacity,omitempty" toml:"fontHighlightOpacity,omitempty" yaml:"fontHighlightOpacity,omitempty"`
	FontHighlightInverseColor  string  `json:"fontHighlightInverseColor,omitempty" toml:"fontHighlightInverseColor,omitempty" yaml:"fontHighlightInverseColor,omitempty"`
	FontHighlightSizeIncrement float64 `json:"fontHighlightSizeIncrement,omitempty" toml:"fontHighlightSizeIncrement,omitempty" yaml:"fontHighlightSizeIncrement,omitempty"`
	BackdropOpacity            float64 `json:"backdropOpacity,omitempty" toml:"backdropOpacity,omitempty" yaml:"backdropOpacity,omitempty"`
	BackdropHighlightOpacity   float64 `json:"backdropHighlightOpacity,omitempty" toml:"backdropHighlightOpacity,omitempty" yaml:"backdropHighlightOpacity,omitempty"`

	// Disable skips creating labels and backdrops entirely.
	Disable bool `json:"disable,omitempty" toml:"disable,omitempty" yaml:"disable,omitempty"`
	// AutoHide creates labels invisible and reveals them on highlight.
	AutoHide bool `json:"autoHide,omitempty" toml:"autoHide,omitempty" yaml:"autoHide,omitempty"`
}

// Clone returns a deep copy of c. Nil groups stay nil.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.ColorScheme = append([]string(nil), c.ColorScheme...)
	out.OutlineCircle = clonePtr(c.OutlineCircle)
	out.Ribbon = clonePtr(c.Ribbon)
	out.Arc = clonePtr(c.Arc)
	out.Key = clonePtr(c.Key)
	out.ValueLabel = clonePtr(c.ValueLabel)
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return lo.ToPtr(*p)
}
