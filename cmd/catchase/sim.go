package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/catchase/internal/sim"
	"github.com/vovakirdan/catchase/internal/storage"
	"github.com/vovakirdan/catchase/internal/trace"
)

var (
	flagRuns   int
	flagTicks  int
	flagTrace  string
	flagNoSave bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless sessions and print statistics",
	Long: `Run sessions without a display and with the cat standing still,
then print per-run spawn, kill and removal counts with their mean and
standard deviation.

Run i uses seed --seed+i. With --trace, every event is written as a CSV row.
Each report is saved to the --db history unless --no-save is given.

Examples:
  catchase sim
  catchase sim --runs 10 --ticks 90000 --seed 1
  catchase sim --trace ./events.csv`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRuns, "runs", 5, "Number of sessions")
	simCmd.Flags().IntVar(&flagTicks, "ticks", 9000, "Ticks per session")
	simCmd.Flags().StringVar(&flagTrace, "trace", "", "Write an event trace CSV to this path")
	simCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not save the report to the history database")
}

func runSim(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out, closer, err := logOutput("")
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck

	logger, err := newLogger(out, "sim")
	if err != nil {
		return err
	}

	tw, err := trace.Create(flagTrace)
	if err != nil {
		return err
	}
	base := seed()
	opts := sim.Options{
		Runs:   flagRuns,
		Ticks:  flagTicks,
		Seed:   base,
		Logger: logger,
	}
	if tw != nil {
		opts.Trace = tw
	}

	report, err := sim.Run(cfg, opts)
	if cerr := tw.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if tw != nil {
		logger.Info("trace written", "path", flagTrace)
	}

	fmt.Fprintln(os.Stdout, reportTable(report))
	fmt.Fprintf(os.Stdout, "expected spawns per run: %.1f\n", report.ExpectedSpawns)

	if flagNoSave {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	id, err := store.SaveReport(report, flagTicks, base)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "saved as batch %d\n", id)
	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func runsTable(runs []sim.RunStats) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("run", "seed", "spawns", "kills", "removed", "peak").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, s := range runs {
		t.Row(
			strconv.Itoa(s.Run),
			strconv.FormatInt(s.Seed, 10),
			strconv.Itoa(s.Spawns),
			strconv.Itoa(s.Kills),
			strconv.Itoa(s.Removals),
			strconv.Itoa(s.PeakAlive),
		)
	}
	return t
}

// reportTable is runsTable plus mean and deviation rows.
func reportTable(r sim.Report) *table.Table {
	return runsTable(r.Runs).
		Row("mean", "",
			fmt.Sprintf("%.1f", r.SpawnMean),
			fmt.Sprintf("%.1f", r.KillMean),
			"", "").
		Row("stddev", "",
			fmt.Sprintf("%.1f", r.SpawnStdDev),
			fmt.Sprintf("%.1f", r.KillStdDev),
			"", "")
}
