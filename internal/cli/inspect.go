package cli

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/semichord/pkg/geom"
	"github.com/matzehuels/semichord/pkg/layout"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts chartOpts

	cmd := &cobra.Command{
		Use:   "inspect [data]",
		Short: "Print the computed layout as tables",
		Long: `Inspect builds the chart without drawing it and prints the key positions,
the attribute arcs and every ribbon's span on its arc. Angles are in degrees,
clockwise from 12 o'clock.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.parse()
			return c.runInspect(cmd.Context(), args[0], &opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, opts *chartOpts) error {
	ch, err := c.loadChart(ctx, input, opts)
	if err != nil {
		return err
	}
	defer ch.Delete()

	cc := ch.Coordinates()
	cfg := ch.Config()
	fmt.Fprintln(c.out, StyleTitle.Render(input))
	printKeyValue(c.out, "Key", ch.Table().Key)
	printKeyValue(c.out, "Records", fmt.Sprint(len(cc.Keys)))
	printKeyValue(c.out, "Attributes", fmt.Sprint(len(cc.Arcs)))
	printKeyValue(c.out, "Center", fmt.Sprintf("%s, %s", geom.Number(cc.Circle.CX), geom.Number(cc.Circle.CY)))
	printKeyValue(c.out, "Radius", geom.Number(cc.Circle.R))
	printKeyValue(c.out, "Arc width", geom.Number(cc.ArcWidth))
	printKeyValue(c.out, "Inner pad", geom.Number(cfg.Arc.InnerPadding))
	fmt.Fprintln(c.out)

	writeTable(c.out, "Keys", keyRows(cc), "#", "Key", "Angle", "X", "Y")
	writeTable(c.out, "Arcs", arcRows(cc), "Attribute", "Total", "Start", "End", "Color")
	writeTable(c.out, "Ribbons", ribbonRows(cc), "Key", "Attribute", "Value", "Start", "End", "Share")
	return nil
}

func keyRows(cc *layout.Coordinates) [][]string {
	rows := make([][]string, 0, len(cc.Keys))
	for _, k := range cc.Keys {
		rows = append(rows, []string{
			fmt.Sprint(k.Index),
			k.Text,
			degrees(k.Angle),
			geom.Number(k.Point.X),
			geom.Number(k.Point.Y),
		})
	}
	return rows
}

func arcRows(cc *layout.Coordinates) [][]string {
	rows := make([][]string, 0, len(cc.Arcs))
	for _, a := range cc.Arcs {
		rows = append(rows, []string{a.Attribute, geom.Number(a.Total), degrees(a.Start), degrees(a.End), a.Color})
	}
	return rows
}

func ribbonRows(cc *layout.Coordinates) [][]string {
	rows := make([][]string, 0, len(cc.Ribbons))
	for _, r := range cc.Ribbons {
		share := "—"
		if arc, ok := cc.Arc(r.Attribute); ok && arc.End > arc.Start {
			share = fmt.Sprintf("%.1f%%", 100*r.Width()/(arc.End-arc.Start))
		}
		value := r.Datum.Value.String()
		if value == "" {
			value = "—"
		}
		rows = append(rows, []string{r.Datum.Key, r.Attribute, value, degrees(r.StartAngle), degrees(r.EndAngle), share})
	}
	return rows
}

// degrees formats a layout angle in degrees with one decimal.
func degrees(rad float64) string {
	return fmt.Sprintf("%.1f°", rad*180/math.Pi)
}

func writeTable(w io.Writer, title string, rows [][]string, headers ...string) {
	fmt.Fprintln(w, styleHeader.Render(title))
	if len(rows) == 0 {
		fmt.Fprintln(w, StyleDim.Render("  (none)"))
		fmt.Fprintln(w)
		return
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			if col == 0 {
				return StyleHighlight.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w)
}
