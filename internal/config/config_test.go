package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded YAML and DefaultConfig() differ:\n yaml: %+v\n code: %+v", cfg, DefaultConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() should validate: %v", err)
	}
}

func TestSpawnChance(t *testing.T) {
	cfg := DefaultConfig()
	expected := (1.0 / 3.0) / 30.0
	if got := cfg.SpawnChance(); math.Abs(got-expected) > 1e-12 {
		t.Errorf("SpawnChance() = %v, expected %v", got, expected)
	}

	cfg.Screen.TickRate = 0
	if cfg.SpawnChance() != 0 {
		t.Error("SpawnChance() should be 0 without a tick rate")
	}
}

func TestDecayTicks(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DecayTicks() != 30 {
		t.Errorf("DecayTicks() = %d, expected 30", cfg.DecayTicks())
	}
	cfg.Screen.TickRate = 60
	cfg.Lifecycle.DecaySeconds = 0.5
	if cfg.DecayTicks() != 30 {
		t.Errorf("DecayTicks() = %d, expected 30", cfg.DecayTicks())
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no portals", func(c *Config) { c.Layout.Portals = nil }, "portal"},
		{"zero tick rate", func(c *Config) { c.Screen.TickRate = 0 }, "tick_rate"},
		{"negative size", func(c *Config) { c.Screen.Width = -1 }, "screen size"},
		{"zero interval", func(c *Config) { c.Spawn.MeanInterval = 0 }, "mean_interval"},
		{"zero divisor", func(c *Config) { c.Sprites.Mouse.WidthDivisor = 0 }, "width_divisor"},
		{"loud music", func(c *Config) { c.Audio.MusicVolume = 2 }, "music_volume"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() = %v, expected mention of %q", err, tc.want)
			}
		})
	}
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("screen:\n  tick_rate: 60\nlayout:\n  portals:\n    - {x: 10, y: 20}\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Screen.TickRate != 60 {
		t.Errorf("tick_rate = %d, expected 60", cfg.Screen.TickRate)
	}
	if cfg.Screen.Width != 1920 {
		t.Errorf("unset keys should keep defaults, width = %d", cfg.Screen.Width)
	}
	if len(cfg.Layout.Portals) != 1 || cfg.Layout.Portals[0] != (PointConfig{X: 10, Y: 20}) {
		t.Errorf("portals = %+v, expected one portal at (10, 20)", cfg.Layout.Portals)
	}
	if len(cfg.Layout.Platforms) != 4 {
		t.Errorf("platforms should keep defaults, got %d", len(cfg.Layout.Platforms))
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("screen: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("layout:\n  portals: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("Load() of a config without portals should fail")
	}
}
