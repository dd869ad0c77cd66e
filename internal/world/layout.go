package world

import (
	"github.com/vovakirdan/catchase/internal/config"
	"github.com/vovakirdan/catchase/internal/core"
)

// DefaultLandingTolerance is how far above a platform top an animal may be
// and still land on it. It absorbs gravity overshooting the top between
// ticks and is part of the game feel.
const DefaultLandingTolerance = 20

// Portal size in logical pixels.
const (
	portalW = 40
	portalH = 80
)

// Platform is a static rectangle animals can stand on.
type Platform struct {
	Rect      core.Rect
	Tolerance int
}

// NewPlatform creates a platform with the default landing tolerance.
func NewPlatform(r core.Rect) Platform {
	return Platform{Rect: r, Tolerance: DefaultLandingTolerance}
}

// IsUnder reports whether pos rests on the platform: horizontally within
// [left, right] and vertically within [top - tolerance, bottom].
func (p Platform) IsUnder(pos core.Point) bool {
	return p.Rect.X <= pos.X && pos.X <= p.Rect.Right() &&
		p.Rect.Y-p.Tolerance <= pos.Y && pos.Y <= p.Rect.Bottom()
}

// Draw outlines the platform.
func (p Platform) Draw(c Canvas) {
	c.StrokeRect(p.Rect, PlatformColor, 3)
}

// Portal is a fixed spawn point for mice.
type Portal struct {
	Pos core.Point
}

// Draw renders the portal as a filled block standing on its position.
func (p Portal) Draw(c Canvas) {
	c.FillRect(core.AnchoredRect(p.Pos, portalW, portalH), PortalColor)
}

// LayoutFromConfig builds the platforms and portals described by cfg.
func LayoutFromConfig(cfg config.Config) ([]Platform, []Portal) {
	tolerance := cfg.Physics.LandingTolerance
	platforms := make([]Platform, 0, len(cfg.Layout.Platforms))
	for _, r := range cfg.Layout.Platforms {
		platforms = append(platforms, Platform{
			Rect:      core.NewRect(r.X, r.Y, r.W, r.H),
			Tolerance: tolerance,
		})
	}
	portals := make([]Portal, 0, len(cfg.Layout.Portals))
	for _, p := range cfg.Layout.Portals {
		portals = append(portals, Portal{Pos: core.Pt(p.X, p.Y)})
	}
	return platforms, portals
}

// SpriteSizes computes sprite sizes from the configured divisors and aspect
// ratios. Frontends that load real images override these with measured sizes.
func SpriteSizes(cfg config.Config) map[Sprite]Size {
	sizes := make(map[Sprite]Size, len(Sprites))
	for _, s := range Sprites {
		sc := SpriteConfig(cfg, s)
		w := cfg.Screen.Width / sc.WidthDivisor
		sizes[s] = Size{W: w, H: core.Max(1, int(float64(w)*sc.Aspect))}
	}
	return sizes
}

// SpriteConfig returns the configuration entry for a sprite.
func SpriteConfig(cfg config.Config, s Sprite) config.SpriteConfig {
	switch s {
	case SpriteCat:
		return cfg.Sprites.Cat
	case SpriteSplat:
		return cfg.Sprites.Splat
	default:
		return cfg.Sprites.Mouse
	}
}
