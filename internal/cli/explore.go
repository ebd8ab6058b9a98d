package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/semichord/pkg/chart"
	"github.com/matzehuels/semichord/pkg/errors"
	"github.com/matzehuels/semichord/pkg/events"
	"github.com/matzehuels/semichord/pkg/shape"
	"github.com/matzehuels/semichord/pkg/sink"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// eventLogSize is the number of callback lines kept by the explorer.
const eventLogSize = 10

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		opts   chartOpts
		export string
	)

	cmd := &cobra.Command{
		Use:   "explore [data]",
		Short: "Browse the chart's shapes and drive pointer interactions",
		Long: `Explore lists every interactive shape of the chart. Moving the cursor onto a
shape enters it and leaves the previous one; enter clicks it. Every callback
the chart fires is shown in the event log. With --export the final highlight
state is written as SVG on exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.parse()
			return c.runExplore(cmd.Context(), args[0], &opts, export)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVarP(&export, "export", "o", "", "write the final state as SVG to this file")
	return cmd
}

func (c *CLI) runExplore(ctx context.Context, input string, opts *chartOpts, export string) error {
	ch, err := c.loadChart(ctx, input, opts)
	if err != nil {
		return err
	}
	defer ch.Delete()

	m := newExploreModel(ch)
	if _, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(c.out)).Run(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "explore %s", input)
	}

	if export == "" {
		return nil
	}
	data := sink.RenderSVG(ch.Elements().Surface())
	if err := os.WriteFile(export, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", export)
	}
	printFile(c.out, export)
	return nil
}

// eventLog collects callback deliveries. It is shared by every copy of the
// model bubbletea makes.
type eventLog struct {
	lines []string
	total int
}

func (l *eventLog) add(ev events.Event) {
	l.total++
	line := fmt.Sprintf("%3d %-28s %s", l.total, ev.Name, describeDatum(ev))
	l.lines = append(l.lines, line)
	if len(l.lines) > eventLogSize {
		l.lines = l.lines[len(l.lines)-eventLogSize:]
	}
}

func describeDatum(ev events.Event) string {
	var parts []string
	if ev.Data.Key != "" {
		parts = append(parts, "key="+ev.Data.Key)
	}
	if ev.Data.Attribute != "" {
		parts = append(parts, "attribute="+ev.Data.Attribute)
	}
	if v := ev.Data.Value.String(); v != "" {
		parts = append(parts, "value="+v)
	}
	if len(ev.Elements) > 0 {
		parts = append(parts, fmt.Sprintf("elements=%d", len(ev.Elements)))
	}
	return strings.Join(parts, " ")
}

// exploreModel is the bubbletea model of the explore command.
type exploreModel struct {
	chart   *chart.Chart
	surface *shape.Surface
	shapes  []*shape.Shape
	log     *eventLog
	Cursor  int
	Offset  int
	Height  int
	hovered string
	err     error
}

// newExploreModel lists the interactive shapes of ch and subscribes to
// every event it can fire.
func newExploreModel(ch *chart.Chart) exploreModel {
	l := &eventLog{}
	for _, name := range events.Names().All() {
		ch.Events().RegisterCallback(name, l.add)
	}
	m := exploreModel{chart: ch, log: l, Height: 15}
	m.refresh()
	return m
}

// refresh re-lists the shapes when a redraw replaced the surface. The list
// keeps the build order; highlighting reorders the paint order.
func (m *exploreModel) refresh() {
	s := m.chart.Elements().Surface()
	if s == m.surface {
		return
	}
	m.surface = s
	m.shapes = s.Filter((*shape.Shape).Interactive)
	if m.Cursor >= len(m.shapes) {
		m.Cursor = max(0, len(m.shapes)-1)
	}
}

// trigger delivers a to the shape with id and runs the callbacks it queued.
// Shapes that do not handle a are skipped.
func (m *exploreModel) trigger(id string, a shape.Action) {
	sh, ok := m.chart.Elements().Surface().Get(id)
	if !ok || !sh.Handles(a) {
		return
	}
	if err := m.chart.Trigger(id, a); err != nil {
		m.err = err
		return
	}
	m.chart.RunPending()
	m.refresh()
}

// hover moves the pointer onto the shape under the cursor.
func (m *exploreModel) hover() {
	if len(m.shapes) == 0 {
		return
	}
	next := m.shapes[m.Cursor].ID
	if next == m.hovered {
		return
	}
	m.trigger(m.hovered, shape.Leave)
	m.hovered = next
	m.trigger(next, shape.Enter)
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.trigger(m.hovered, shape.Leave)
			m.hovered = ""
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
			m.hover()
		case "down", "j":
			if m.Cursor < len(m.shapes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
			m.hover()
		case "enter", " ":
			m.hover()
			m.trigger(m.hovered, shape.Click)
		case "r":
			if err := m.chart.Interactions().ResetHighlights(true); err != nil {
				m.err = err
			}
			m.chart.RunPending()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10 - eventLogSize
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore Chart"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ hover  ⏎ click  r reset  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.shapes))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.shapes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		state := iconOff
		switch {
		case s.Locked:
			state = iconLock
		case s.Highlighted:
			state = iconOn
		}
		rows = append(rows, []string{cursor, s.Kind.String(), s.Datum.Key, s.Datum.Attribute, s.Datum.Value.String(), state})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "Shape", "Key", "Attribute", "Value", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.shapes) {
				return lipgloss.NewStyle()
			}
			s := m.shapes[idx]
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case s.Locked:
				return StyleWarning
			case s.Highlighted:
				return StyleSuccess
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.shapes)), len(m.shapes))))
	if p := m.chart.Interactions().Pinned(); p != nil {
		b.WriteString("  " + StyleWarning.Render(iconLock+" pinned "+p.Kind.String()+" "+describeDatum(events.Event{Data: p.Datum})))
	}
	b.WriteString("\n\n")

	b.WriteString(styleHeader.Render("Events"))
	b.WriteString("\n")
	if len(m.log.lines) == 0 {
		b.WriteString(listDimStyle.Render("  (none yet)"))
		b.WriteString("\n")
	}
	for _, line := range m.log.lines {
		b.WriteString(listNormalStyle.Render(line))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
	}
	return b.String()
}
