package catchase

import (
	"image/color"

	"github.com/vovakirdan/catchase/internal/core"
	"github.com/vovakirdan/catchase/internal/world"
)

// Terminal glyphs, facing left and mirrored.
var glyphs = map[world.Sprite][2]string{
	world.SpriteCat:   {"<=^.^=", "=^.^=>"},
	world.SpriteMouse: {"<:3~", "~3:>"},
	world.SpriteSplat: {"*x*", "*x*"},
}

var glyphColors = map[world.Sprite]core.Color{
	world.SpriteCat:   core.ColorYellow,
	world.SpriteMouse: core.ColorWhite,
	world.SpriteSplat: core.ColorBrightRed,
}

// ScreenCanvas scales a logical pixel surface onto a character screen.
type ScreenCanvas struct {
	dst    *core.Screen
	width  int
	height int
}

// NewScreenCanvas maps a width x height logical surface onto dst.
func NewScreenCanvas(dst *core.Screen, width, height int) *ScreenCanvas {
	return &ScreenCanvas{dst: dst, width: core.Max(1, width), height: core.Max(1, height)}
}

func (c *ScreenCanvas) col(x int) int { return x * c.dst.Width() / c.width }
func (c *ScreenCanvas) row(y int) int { return y * c.dst.Height() / c.height }

// cells returns the inclusive cell span covered by r. Every non-empty rect
// covers at least one cell.
func (c *ScreenCanvas) cells(r core.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = c.col(r.X), c.row(r.Y)
	x1, y1 = c.col(r.Right()-1), c.row(r.Bottom()-1)
	return x0, y0, core.Max(x0, x1), core.Max(y0, y1)
}

// Clear blanks the screen. Terminals keep their own background.
func (c *ScreenCanvas) Clear(color.RGBA) {
	c.dst.Clear()
}

// visible reports whether r overlaps the logical surface.
func (c *ScreenCanvas) visible(r core.Rect) bool {
	return r.Intersects(core.NewRect(0, 0, c.width, c.height))
}

func (c *ScreenCanvas) FillRect(r core.Rect, col color.RGBA) {
	if !c.visible(r) {
		return
	}
	x0, y0, x1, y1 := c.cells(r)
	c.dst.DrawRect(core.NewRect(x0, y0, x1-x0+1, y1-y0+1), '▒', terminalColor(col))
}

func (c *ScreenCanvas) StrokeRect(r core.Rect, col color.RGBA, _ int) {
	if !c.visible(r) {
		return
	}
	x0, y0, x1, y1 := c.cells(r)
	tc := terminalColor(col)
	// Anything thinner than two rows is a single line at its top.
	if r.H*c.dst.Height() < 2*c.height {
		c.dst.DrawHLine(x0, y0, x1-x0+1, '═', tc)
		return
	}
	c.dst.DrawHLine(x0, y0, x1-x0+1, '─', tc)
	c.dst.DrawHLine(x0, y1, x1-x0+1, '─', tc)
	for y := y0 + 1; y < y1; y++ {
		c.dst.SetColored(x0, y, '│', tc)
		c.dst.SetColored(x1, y, '│', tc)
	}
}

// DrawSprite writes the sprite's glyph on the row just above the anchor,
// centered on it and kept inside the screen columns.
func (c *ScreenCanvas) DrawSprite(s world.Sprite, anchor core.Point, mirrored bool) {
	g := glyphs[s][0]
	if mirrored {
		g = glyphs[s][1]
	}
	y := c.row(anchor.Y - 1)
	x := core.Clamp(c.col(anchor.X)-len(g)/2, 0, core.Max(0, c.dst.Width()-len(g)))
	for i, r := range g {
		c.dst.SetColored(x+i, y, r, glyphColors[s])
	}
}

// terminalColor picks the palette entry for the colors the world uses.
func terminalColor(c color.RGBA) core.Color {
	switch c {
	case world.PlatformColor:
		return core.ColorRed
	case world.PortalColor:
		return core.ColorGray
	default:
		return core.ColorDefault
	}
}

var _ world.Canvas = (*ScreenCanvas)(nil)
