package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/catchase/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [batch-id]",
	Short: "Show saved simulation batches",
	Long: `Without arguments, list the most recent simulation batches saved by
'catchase sim'. With a batch ID, show that batch's runs.

Examples:
  catchase history
  catchase history --limit 20
  catchase history 3
  catchase history --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of batches to list")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all saved batches")
}

func runHistory(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearBatches(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	}

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid batch id %q: %w", args[0], err)
		}
		runs, err := store.BatchRuns(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, runsTable(runs))
		return nil
	}

	batches, err := store.RecentBatches(flagLimit)
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		fmt.Println("No simulations saved yet.")
		fmt.Println()
		fmt.Println("Run 'catchase sim' to record one.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("id", "date", "runs", "ticks", "seed", "expected", "spawns", "kills").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, b := range batches {
		t.Row(
			strconv.FormatInt(b.ID, 10),
			b.CreatedAt.Format("2006-01-02 15:04"),
			strconv.Itoa(b.Runs),
			strconv.Itoa(b.Ticks),
			strconv.FormatInt(b.Seed, 10),
			fmt.Sprintf("%.1f", b.ExpectedSpawns),
			fmt.Sprintf("%.1f ± %.1f", b.SpawnMean, b.SpawnStdDev),
			fmt.Sprintf("%.1f ± %.1f", b.KillMean, b.KillStdDev),
		)
	}
	fmt.Fprintln(os.Stdout, t)
	return nil
}
