// Package world implements the catchase simulation: a cat, the mice it
// chases, the platforms they land on and the portals mice spawn from.
//
// Everything here is single-threaded and frontend-agnostic. A World is owned
// by exactly one driver goroutine that calls Step once per tick and Draw once
// per frame; drawing goes through the Canvas interface.
package world

import (
	"image/color"

	"github.com/vovakirdan/catchase/internal/core"
)

// Sprite identifies one of the animal images.
type Sprite int

const (
	SpriteCat Sprite = iota
	SpriteMouse
	SpriteSplat
)

// Sprites lists every sprite, in load order.
var Sprites = []Sprite{SpriteCat, SpriteMouse, SpriteSplat}

// String returns the asset name of the sprite.
func (s Sprite) String() string {
	switch s {
	case SpriteCat:
		return "cat"
	case SpriteMouse:
		return "mouse"
	case SpriteSplat:
		return "splat"
	default:
		return "unknown"
	}
}

// Size is a sprite size in logical pixels.
type Size struct {
	W, H int
}

// Canvas is the drawing surface the world renders onto.
// Positions are logical pixels; frontends scale as they need.
type Canvas interface {
	// Clear fills the whole surface with the background color.
	Clear(bg color.RGBA)
	// FillRect fills a rectangle.
	FillRect(r core.Rect, c color.RGBA)
	// StrokeRect draws a rectangle outline of the given pixel width.
	StrokeRect(r core.Rect, c color.RGBA, width int)
	// DrawSprite draws a sprite with its bottom-center on anchor,
	// horizontally mirrored when requested.
	DrawSprite(s Sprite, anchor core.Point, mirrored bool)
}

// Colors used by the world when drawing.
var (
	PortalColor   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	PlatformColor = color.RGBA{R: 255, A: 255}
)

// Arena carries what animals need to know about the surface to move:
// its width and the size of every sprite.
type Arena struct {
	Width  int
	Height int
	Sizes  map[Sprite]Size
}

// HalfWidth returns half the sprite width, rounded down.
func (a Arena) HalfWidth(s Sprite) int {
	return a.Sizes[s].W / 2
}

// Body is the state shared by every animal.
type Body struct {
	Pos    core.Point
	DX, DY int
	Sprite Sprite
}

// move applies the default animal update: drift by (dx, dy), then turn
// around when the sprite pokes past a horizontal screen edge while still
// heading outwards. The position itself is never clamped.
func (b *Body) move(a Arena) {
	b.Pos = b.Pos.Add(b.DX, b.DY)
	half := a.HalfWidth(b.Sprite)
	if b.Pos.X+half > a.Width && b.DX > 0 {
		b.DX = -core.Abs(b.DX)
	} else if b.Pos.X-half < 0 && b.DX < 0 {
		b.DX = core.Abs(b.DX)
	}
}

// draw renders the body's sprite, mirrored while moving right.
func (b *Body) draw(c Canvas) {
	c.DrawSprite(b.Sprite, b.Pos, b.DX > 0)
}

// Animal is the capability shared by the cat and the mice.
type Animal interface {
	// Body exposes position and velocity for collision resolution.
	Body() *Body
	// Update advances the animal's own state by one tick.
	Update(a Arena)
	// Draw renders the animal.
	Draw(c Canvas)
}
