package cli

import (
	"encoding/json"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/semichord/pkg/chart"
	"github.com/matzehuels/semichord/pkg/config"
	"github.com/matzehuels/semichord/pkg/dataset"
	"github.com/matzehuels/semichord/pkg/events"
	"github.com/matzehuels/semichord/pkg/shape"
)

func TestInspectCommand(t *testing.T) {
	out, err := runCLI(t, "inspect", writeData(t))
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"Keys", "Arcs", "Ribbons", "name", "A", "B", "C", "x", "y"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output lacks %q", want)
		}
	}
}

func TestInspectCommandAttributes(t *testing.T) {
	out, err := runCLI(t, "inspect", writeData(t), "--attributes", "name,y")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, "100.0%") {
		t.Error("shares of a single attribute should be listed")
	}
}

func TestDegrees(t *testing.T) {
	tests := []struct {
		rad  float64
		want string
	}{
		{0, "0.0°"},
		{3.141592653589793, "180.0°"},
		{1.5707963267948966, "90.0°"},
	}
	for _, tt := range tests {
		if got := degrees(tt.rad); got != tt.want {
			t.Errorf("degrees(%v) = %q, want %q", tt.rad, got, tt.want)
		}
	}
}

func TestEventsCommand(t *testing.T) {
	out, err := runCLI(t, "events")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	for _, name := range events.Names().All() {
		if !strings.Contains(out, name) {
			t.Errorf("events output lacks %q", name)
		}
	}
}

func TestEventsCommandJSON(t *testing.T) {
	out, err := runCLI(t, "events", "--json")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	var got events.Catalog
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != events.Names() {
		t.Errorf("decoded catalog = %+v, want %+v", got, events.Names())
	}
}

func newTestChart(t *testing.T) *chart.Chart {
	t.Helper()
	records := []dataset.Record{
		dataset.NewRecord(dataset.F("name", "A"), dataset.F("x", 10), dataset.F("y", 20)),
		dataset.NewRecord(dataset.F("name", "B"), dataset.F("x", 30), dataset.F("y", 5)),
	}
	c, err := chart.New(config.Box{Width: 800, Height: 500}, records)
	if err != nil {
		t.Fatalf("chart.New: %v", err)
	}
	t.Cleanup(func() { _ = c.Delete() })
	return c
}

func press(m tea.Model, key string) tea.Model {
	var msg tea.KeyMsg
	switch key {
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, _ = m.Update(msg)
	return m
}

func TestExploreModelHover(t *testing.T) {
	c := newTestChart(t)
	var m tea.Model = newExploreModel(c)

	em := m.(exploreModel)
	if len(em.shapes) == 0 {
		t.Fatal("no interactive shapes")
	}
	if em.shapes[0].Kind != shape.Base {
		t.Errorf("first shape = %s, want base", em.shapes[0].Kind)
	}

	m = press(m, "down")
	em = m.(exploreModel)
	hovered := em.shapes[em.Cursor]
	if hovered.Kind != shape.Ribbon {
		t.Fatalf("second shape = %s, want ribbon", hovered.Kind)
	}
	if !hovered.Highlighted {
		t.Error("hovered ribbon should be highlighted")
	}
	if em.log.total == 0 {
		t.Error("entering a ribbon should deliver callbacks")
	}
	if !strings.Contains(strings.Join(em.log.lines, "\n"), events.Names().Ribbon.MouseEnter) {
		t.Errorf("event log %v lacks ribbon enter", em.log.lines)
	}

	m = press(m, "down")
	em = m.(exploreModel)
	if !strings.Contains(strings.Join(em.log.lines, "\n"), events.Names().Ribbon.MouseLeave) {
		t.Errorf("event log %v lacks ribbon leave", em.log.lines)
	}
}

func TestExploreModelClickPins(t *testing.T) {
	c := newTestChart(t)
	var m tea.Model = newExploreModel(c)

	m = press(m, "down")
	m = press(m, "enter")
	if c.Interactions().Pinned() == nil {
		t.Fatal("click should pin the ribbon")
	}
	if view := m.View(); !strings.Contains(view, "pinned") {
		t.Error("view should mention the pin")
	}

	m = press(m, "r")
	if c.Interactions().Pinned() != nil {
		t.Error("reset should release the pin")
	}
	_ = m
}

func TestExploreModelQuit(t *testing.T) {
	c := newTestChart(t)
	m := newExploreModel(c)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}
