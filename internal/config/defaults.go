package config

import (
	_ "embed"
)

//go:embed defaults/catchase.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration: a 1920x1080 surface at
// 30 ticks per second with the classic four-platform layout.
func DefaultConfig() Config {
	return Config{
		Screen: ScreenConfig{
			Width:      1920,
			Height:     1080,
			TickRate:   30,
			Background: Color{R: 200, G: 200, B: 255},
		},
		Physics: PhysicsConfig{
			Gravity:          1,
			JumpImpulse:      -30,
			CatSpeed:         10,
			LandingTolerance: 20,
		},
		Spawn: SpawnConfig{
			MeanInterval: 3,
			MouseSpeed:   5,
		},
		Lifecycle: LifecycleConfig{
			KillRadius:   30,
			DecaySeconds: 1,
		},
		Sprites: SpritesConfig{
			Cat:   SpriteConfig{WidthDivisor: 15, Aspect: 0.75, Flip: true},
			Mouse: SpriteConfig{WidthDivisor: 20, Aspect: 0.5},
			Splat: SpriteConfig{WidthDivisor: 20, Aspect: 0.375},
		},
		Audio: AudioConfig{
			Enabled:     true,
			MusicVolume: 0.5,
		},
		Layout: LayoutConfig{
			Platforms: []RectConfig{
				{X: 0, Y: 1080, W: 1920, H: 20},
				{X: 200, Y: 400, W: 400, H: 20},
				{X: 800, Y: 800, W: 500, H: 20},
				{X: 1400, Y: 800, W: 500, H: 20},
			},
			Portals: []PointConfig{
				{X: 30, Y: 1080},
				{X: 230, Y: 400},
				{X: 1250, Y: 800},
				{X: 1450, Y: 800},
			},
		},
		Input: InputConfig{
			HoldMillis: 150,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
