package sink

import (
	"encoding/json"

	"github.com/matzehuels/semichord/pkg/buildinfo"
	"github.com/matzehuels/semichord/pkg/dataset"
	"github.com/matzehuels/semichord/pkg/shape"
)

type jsonOutput struct {
	Generator string      `json:"generator"`
	ID        string      `json:"id"`
	X         float64     `json:"x"`
	Y         float64     `json:"y"`
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	Groups    []string    `json:"groups"`
	Shapes    []jsonShape `json:"shapes"`
}

type jsonShape struct {
	ID          string        `json:"id"`
	Kind        string        `json:"kind"`
	Group       string        `json:"group"`
	Datum       dataset.Datum `json:"datum"`
	Path        string        `json:"path,omitempty"`
	Center      *jsonPoint    `json:"center,omitempty"`
	Radius      float64       `json:"radius,omitempty"`
	Pos         *jsonPoint    `json:"pos,omitempty"`
	Text        string        `json:"text,omitempty"`
	Fill        string        `json:"fill,omitempty"`
	FillOpacity float64       `json:"fill_opacity"`
	Highlighted bool          `json:"highlighted,omitempty"`
	Locked      bool          `json:"locked,omitempty"`
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RenderJSON exports every shape of s in paint order as a pretty-printed
// JSON document, including its datum and current highlight state.
func RenderJSON(s *shape.Surface) ([]byte, error) {
	b := s.Bounds()
	out := jsonOutput{
		Generator: buildinfo.Generator(),
		ID:        s.ID(),
		X:         b.X,
		Y:         b.Y,
		Width:     b.W,
		Height:    b.H,
		Shapes:    make([]jsonShape, 0, s.Len()),
	}
	for _, g := range s.Groups() {
		out.Groups = append(out.Groups, string(g))
	}
	for _, sh := range s.Shapes() {
		out.Shapes = append(out.Shapes, buildJSONShape(sh))
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONShape(sh *shape.Shape) jsonShape {
	js := jsonShape{
		ID:          sh.ID,
		Kind:        sh.Kind.String(),
		Group:       string(sh.Group),
		Datum:       sh.Datum,
		Path:        sh.Path,
		Text:        sh.Text,
		Fill:        sh.Style.Fill,
		FillOpacity: sh.Style.FillOpacity,
		Highlighted: sh.Highlighted,
		Locked:      sh.Locked,
	}
	switch sh.Kind {
	case shape.Outline, shape.KeyPoint:
		js.Center = &jsonPoint{X: sh.Center.X, Y: sh.Center.Y}
		js.Radius = sh.Radius
	case shape.KeyText, shape.ArcTitle, shape.Label:
		js.Pos = &jsonPoint{X: sh.Pos.X, Y: sh.Pos.Y}
	}
	return js
}
