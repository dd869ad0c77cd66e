package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/catchase/internal/world"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the platforms and portals",
	Long: `Print the layout the current config produces: every platform
with its landing band and every portal mice spawn from.

Examples:
  catchase layout
  catchase layout --config ./my-layout.yaml`,
	Args: cobra.NoArgs,
	RunE: runLayout,
}

func runLayout(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	platforms, portals := world.LayoutFromConfig(cfg)

	pt := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("platform", "x", "y", "w", "h", "lands from y").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for i, p := range platforms {
		pt.Row(
			strconv.Itoa(i),
			strconv.Itoa(p.Rect.X),
			strconv.Itoa(p.Rect.Y),
			strconv.Itoa(p.Rect.W),
			strconv.Itoa(p.Rect.H),
			strconv.Itoa(p.Rect.Y-p.Tolerance),
		)
	}

	gt := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("portal", "x", "y").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for i, p := range portals {
		gt.Row(strconv.Itoa(i), strconv.Itoa(p.Pos.X), strconv.Itoa(p.Pos.Y))
	}

	fmt.Fprintf(os.Stdout, "screen %dx%d at %d ticks/s\n", cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.TickRate)
	fmt.Fprintln(os.Stdout, pt)
	fmt.Fprintln(os.Stdout, gt)
	return nil
}
