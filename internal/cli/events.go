package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/semichord/pkg/events"
)

// eventsCommand creates the events command.
func (c *CLI) eventsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the event names callbacks can register for",
		Long: `Events prints every event name a chart fires, in catalog order, with the
global event each pointer event also triggers. --json prints the nested
catalog instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return c.printEventsJSON()
			}
			c.printEvents()
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	return cmd
}

func (c *CLI) printEventsJSON() error {
	data, err := json.MarshalIndent(events.Names(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, string(data))
	return err
}

func (c *CLI) printEvents() {
	names := events.Names().All()
	rows := make([][]string, 0, len(names))
	for _, n := range names {
		global := events.GlobalFor(n)
		if global == n || global == "" {
			global = "—"
		}
		rows = append(rows, []string{n, global})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Event", "Also fires").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader.Padding(0, 1)
			case col == 1:
				return StyleDim.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})
	fmt.Fprintln(c.out, t.Render())
	fmt.Fprintln(c.out, StyleDim.Render(fmt.Sprintf("  %d events", len(names))))
}
