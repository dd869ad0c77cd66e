// Package config provides YAML-based configuration loading for catchase:
// surface size, physics constants, spawn and decay tuning, sprite and audio
// assets, and the platform/portal layout.
package config

import (
	"errors"
	"fmt"
)

// Config contains all configuration for a catchase session.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Lifecycle LifecycleConfig `yaml:"lifecycle"`
	Sprites   SpritesConfig   `yaml:"sprites"`
	Audio     AudioConfig     `yaml:"audio"`
	Layout    LayoutConfig    `yaml:"layout"`
	Input     InputConfig     `yaml:"input"`
}

// ScreenConfig defines the logical drawing surface and the tick rate.
type ScreenConfig struct {
	Width      int   `yaml:"width"`
	Height     int   `yaml:"height"`
	TickRate   int   `yaml:"tick_rate"`
	Background Color `yaml:"background"`
}

// Color is an RGB triple.
type Color struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// PhysicsConfig defines the discrete per-tick physics, in pixels.
type PhysicsConfig struct {
	Gravity          int `yaml:"gravity"`           // dy gained per unsupported tick
	JumpImpulse      int `yaml:"jump_impulse"`      // dy set by a jump (negative = up)
	CatSpeed         int `yaml:"cat_speed"`         // |dx| while a direction key is held
	LandingTolerance int `yaml:"landing_tolerance"` // band above a platform top that still counts as landed
}

// SpawnConfig defines how mice appear.
type SpawnConfig struct {
	MeanInterval float64 `yaml:"mean_interval"` // average seconds between spawns
	MouseSpeed   int     `yaml:"mouse_speed"`   // |dx| of a spawned mouse
}

// LifecycleConfig defines kills and corpse decay.
type LifecycleConfig struct {
	KillRadius   float64 `yaml:"kill_radius"`   // cat-to-mouse distance that kills, exclusive
	DecaySeconds float64 `yaml:"decay_seconds"` // how long a splat stays before removal
}

// SpritesConfig holds the three animal sprites.
type SpritesConfig struct {
	Cat   SpriteConfig `yaml:"cat"`
	Mouse SpriteConfig `yaml:"mouse"`
	Splat SpriteConfig `yaml:"splat"`
}

// SpriteConfig describes one sprite image.
// An empty Path selects the built-in procedural sprite.
type SpriteConfig struct {
	Path         string  `yaml:"path"`
	WidthDivisor int     `yaml:"width_divisor"` // scaled width = screen width / divisor
	Aspect       float64 `yaml:"aspect"`        // height/width of the built-in sprite
	Flip         bool    `yaml:"flip"`          // mirror the source image once at load
}

// AudioConfig defines the splat effect and the looping soundtrack.
// Empty paths select synthesized sounds.
type AudioConfig struct {
	Enabled     bool    `yaml:"enabled"`
	SplatPath   string  `yaml:"splat_path"`
	MusicPath   string  `yaml:"music_path"`
	MusicVolume float64 `yaml:"music_volume"` // linear, 0..1
}

// LayoutConfig defines the static platforms and spawn portals.
type LayoutConfig struct {
	Platforms []RectConfig  `yaml:"platforms"`
	Portals   []PointConfig `yaml:"portals"`
}

// RectConfig is a rectangle in logical pixels.
type RectConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// PointConfig is a point in logical pixels.
type PointConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// InputConfig tunes terminal input, where key releases are not reported.
type InputConfig struct {
	HoldMillis int `yaml:"hold_ms"` // a direction key counts as held this long after its last repeat
}

// SpawnChance returns the per-tick probability of spawning a mouse.
func (c Config) SpawnChance() float64 {
	if c.Spawn.MeanInterval <= 0 || c.Screen.TickRate <= 0 {
		return 0
	}
	return (1 / c.Spawn.MeanInterval) / float64(c.Screen.TickRate)
}

// DecayTicks returns how many ticks a dead mouse may age before removal.
// A mouse is removed once its decay counter exceeds this value.
func (c Config) DecayTicks() int {
	return int(c.Lifecycle.DecaySeconds * float64(c.Screen.TickRate))
}

// Validate reports settings the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height))
	}
	if c.Screen.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate %d must be positive", c.Screen.TickRate))
	}
	if c.Spawn.MeanInterval <= 0 {
		errs = append(errs, fmt.Errorf("spawn.mean_interval %v must be positive", c.Spawn.MeanInterval))
	}
	if len(c.Layout.Portals) == 0 {
		errs = append(errs, errors.New("layout needs at least one portal"))
	}
	for i, s := range []SpriteConfig{c.Sprites.Cat, c.Sprites.Mouse, c.Sprites.Splat} {
		if s.WidthDivisor <= 0 {
			errs = append(errs, fmt.Errorf("sprite %d: width_divisor %d must be positive", i, s.WidthDivisor))
		}
		if s.Path == "" && s.Aspect <= 0 {
			errs = append(errs, fmt.Errorf("sprite %d: aspect %v must be positive", i, s.Aspect))
		}
	}
	if c.Audio.MusicVolume < 0 || c.Audio.MusicVolume > 1 {
		errs = append(errs, fmt.Errorf("audio.music_volume %v must be within [0, 1]", c.Audio.MusicVolume))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
