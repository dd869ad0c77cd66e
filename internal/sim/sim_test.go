package sim

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/catchase/internal/config"
	"github.com/vovakirdan/catchase/internal/trace"
	"github.com/vovakirdan/catchase/internal/world"
)

func TestRunSpawnRate(t *testing.T) {
	cfg := config.DefaultConfig()

	report, err := Run(cfg, Options{Runs: 3, Ticks: 90000, Seed: 11})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(report.Runs))
	}
	if math.Abs(report.ExpectedSpawns-1000) > 1e-6 {
		t.Errorf("ExpectedSpawns = %f, expected 1000", report.ExpectedSpawns)
	}
	if math.Abs(report.SpawnMean-1000) > 100 {
		t.Errorf("SpawnMean = %f, expected about 1000", report.SpawnMean)
	}
	for _, r := range report.Runs {
		if r.Kills > r.Spawns {
			t.Errorf("run %d: %d kills exceed %d spawns", r.Run, r.Kills, r.Spawns)
		}
		if r.Removals > r.Kills {
			t.Errorf("run %d: %d removals exceed %d kills", r.Run, r.Removals, r.Kills)
		}
		if r.Seed != 11+int64(r.Run) {
			t.Errorf("run %d used seed %d", r.Run, r.Seed)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := Run(cfg, Options{Runs: 2, Ticks: 5000, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(cfg, Options{Runs: 2, Ticks: 5000, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Runs {
		if a.Runs[i] != b.Runs[i] {
			t.Errorf("run %d differs: %+v vs %+v", i, a.Runs[i], b.Runs[i])
		}
	}
}

func TestRunSingleRunHasNoDeviation(t *testing.T) {
	report, err := Run(config.DefaultConfig(), Options{Runs: 1, Ticks: 300, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if report.SpawnStdDev != 0 || report.KillStdDev != 0 {
		t.Errorf("single run deviations = %f, %f; expected 0", report.SpawnStdDev, report.KillStdDev)
	}
}

func TestRunWritesTrace(t *testing.T) {
	var buf bytes.Buffer
	w := trace.NewWriter(&buf)

	report, err := Run(config.DefaultConfig(), Options{Runs: 2, Ticks: 3000, Seed: 5, Trace: w})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	records, err := trace.Read(&buf)
	if err != nil {
		t.Fatalf("trace.Read: %v", err)
	}
	spawns := map[int]int{}
	for _, r := range records {
		if r.Event == "spawn" {
			spawns[r.Run]++
		}
	}
	for _, r := range report.Runs {
		if spawns[r.Run] != r.Spawns {
			t.Errorf("run %d: trace has %d spawns, report %d", r.Run, spawns[r.Run], r.Spawns)
		}
	}
}

type failingTrace struct{}

func (failingTrace) SetRun(int)                 {}
func (failingTrace) Record([]world.Event) error { return errors.New("disk full") }

func TestRunTraceFailure(t *testing.T) {
	if _, err := Run(config.DefaultConfig(), Options{Runs: 1, Ticks: 3000, Seed: 5, Trace: failingTrace{}}); err == nil {
		t.Error("expected trace failure to be reported")
	}
}

func TestRunRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no runs", Options{Runs: 0, Ticks: 10}},
		{"no ticks", Options{Runs: 1, Ticks: 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Run(config.DefaultConfig(), tc.opts); err == nil {
				t.Error("expected error")
			}
		})
	}

	cfg := config.DefaultConfig()
	cfg.Layout.Portals = nil
	if _, err := Run(cfg, Options{Runs: 1, Ticks: 10}); err == nil {
		t.Error("expected invalid config to be rejected")
	}
}
