// Package sim runs headless catchase sessions with a stationary cat and
// summarizes spawn and kill statistics.
package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/catchase/internal/config"
	"github.com/vovakirdan/catchase/internal/core"
	"github.com/vovakirdan/catchase/internal/games/catchase"
	"github.com/vovakirdan/catchase/internal/world"
)

// Trace receives every event batch of every run.
type Trace interface {
	SetRun(run int)
	Record(events []world.Event) error
}

// Options controls a simulation.
type Options struct {
	Runs   int
	Ticks  int
	Seed   int64 // run i uses Seed+i
	Trace  Trace
	Logger *log.Logger
}

// RunStats summarizes one run.
type RunStats struct {
	Run       int
	Seed      int64
	Spawns    int
	Kills     int
	Removals  int
	PeakAlive int
}

// Report summarizes all runs.
type Report struct {
	Runs           []RunStats
	ExpectedSpawns float64
	SpawnMean      float64
	SpawnStdDev    float64
	KillMean       float64
	KillStdDev     float64
}

// counter tallies events and forwards them to an optional trace. A trace
// failure is kept rather than returned so counting goes on.
type counter struct {
	stats RunStats
	trace Trace
	err   error
}

func (c *counter) Record(events []world.Event) error {
	for _, e := range events {
		switch e.Kind {
		case world.EventSpawn:
			c.stats.Spawns++
		case world.EventKill:
			c.stats.Kills++
		case world.EventRemove:
			c.stats.Removals++
		}
	}
	if c.trace == nil {
		return nil
	}
	if err := c.trace.Record(events); err != nil {
		c.err = err
		c.trace = nil
	}
	return nil
}

// Run simulates opts.Runs sessions of opts.Ticks ticks each.
func Run(cfg config.Config, opts Options) (Report, error) {
	if opts.Runs <= 0 || opts.Ticks <= 0 {
		return Report{}, errors.New("sim: runs and ticks must be positive")
	}
	if err := cfg.Validate(); err != nil {
		return Report{}, fmt.Errorf("sim: %w", err)
	}

	report := Report{
		Runs:           make([]RunStats, 0, opts.Runs),
		ExpectedSpawns: float64(opts.Ticks) * cfg.SpawnChance(),
	}
	spawns := make([]float64, 0, opts.Runs)
	kills := make([]float64, 0, opts.Runs)

	for i := 0; i < opts.Runs; i++ {
		seed := opts.Seed + int64(i)
		if opts.Trace != nil {
			opts.Trace.SetRun(i)
		}
		c := &counter{stats: RunStats{Run: i, Seed: seed}, trace: opts.Trace}

		g := catchase.New(catchase.Options{Config: cfg, Trace: c, Logger: opts.Logger})
		g.Reset(core.RuntimeConfig{TickRate: cfg.Screen.TickRate, Seed: seed})

		idle := core.NewInputFrame()
		for tick := 0; tick < opts.Ticks; tick++ {
			st := g.Step(idle).State
			c.stats.PeakAlive = core.Max(c.stats.PeakAlive, st.Mice)
		}
		if c.err != nil {
			return Report{}, fmt.Errorf("sim: run %d: writing trace: %w", i, c.err)
		}

		report.Runs = append(report.Runs, c.stats)
		spawns = append(spawns, float64(c.stats.Spawns))
		kills = append(kills, float64(c.stats.Kills))
	}

	report.SpawnMean, report.SpawnStdDev = meanStdDev(spawns)
	report.KillMean, report.KillStdDev = meanStdDev(kills)
	return report, nil
}

// meanStdDev is stat.MeanStdDev, with a zero deviation for a single sample.
func meanStdDev(xs []float64) (float64, float64) {
	if len(xs) < 2 {
		return stat.Mean(xs, nil), 0
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}
