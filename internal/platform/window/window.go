// Package window runs a catchase session in a desktop window with Ebitengine.
//
// Unlike the terminal frontend it sees real key releases, draws the scaled
// sprites and has a double-buffered 1920x1080 logical surface.
package window

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/catchase/internal/assets"
	"github.com/vovakirdan/catchase/internal/core"
	"github.com/vovakirdan/catchase/internal/games/catchase"
	"github.com/vovakirdan/catchase/internal/world"
)

// Key bindings. Jump keys fire on the key-down edge only.
var (
	quitKeys  = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}
	jumpKeys  = []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeySpace, ebiten.KeyArrowUp}
	leftKeys  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	rightKeys = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
)

var labelFace = text.NewGoXFace(basicfont.Face7x13)

// Options configures the window.
type Options struct {
	Title    string
	TickRate int
	Logger   *log.Logger
}

// Frontend adapts a Game to ebiten.Game.
type Frontend struct {
	game   *catchase.Game
	canvas *canvas
	width  int
	height int
	logger *log.Logger
}

// New creates a frontend drawing game with the prepared sprites. The game
// must already be Reset.
func New(game *catchase.Game, sprites *assets.Sprites, opts Options) *Frontend {
	images := make(map[world.Sprite]*ebiten.Image, len(sprites.Images))
	for s, img := range sprites.Images {
		images[s] = ebiten.NewImageFromImage(img)
	}
	arena := game.World().Arena()
	return &Frontend{
		game:   game,
		canvas: &canvas{sprites: images},
		width:  arena.Width,
		height: arena.Height,
		logger: opts.Logger,
	}
}

// Update reads the keyboard and advances the session by one tick.
func (f *Frontend) Update() error {
	in := core.NewInputFrame()
	if anyJustPressed(quitKeys) || ebiten.IsWindowBeingClosed() {
		in.Set(core.ActionQuit)
	}
	if anyJustPressed(jumpKeys) {
		in.Set(core.ActionJump)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		in.Set(core.ActionPause)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		in.Set(core.ActionReset)
	}
	in.SetHeld(core.ActionLeft, anyPressed(leftKeys))
	in.SetHeld(core.ActionRight, anyPressed(rightKeys))

	if f.game.Step(in).State.Stopped {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the world and, while paused, a banner.
func (f *Frontend) Draw(screen *ebiten.Image) {
	f.canvas.dst = screen
	f.game.Draw(f.canvas)

	if f.game.State().Paused {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(f.width)/2, float64(f.height)/2)
		op.ColorScale.ScaleWithColor(color.Black)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		text.Draw(screen, "PAUSED", labelFace, op)
	}
}

// Layout keeps the logical surface fixed; ebiten scales it to the window.
func (f *Frontend) Layout(_, _ int) (int, int) {
	return f.width, f.height
}

// Run opens the window and blocks until the session stops.
func Run(game *catchase.Game, sprites *assets.Sprites, opts Options) error {
	f := New(game, sprites, opts)

	ebiten.SetWindowSize(f.width/2, f.height/2)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	if opts.TickRate > 0 {
		ebiten.SetTPS(opts.TickRate)
	}

	if f.logger != nil {
		f.logger.Info("window opened", "width", f.width, "height", f.height, "tps", ebiten.TPS())
	}
	return ebiten.RunGame(f)
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// canvas draws world primitives onto an ebiten image.
type canvas struct {
	dst     *ebiten.Image
	sprites map[world.Sprite]*ebiten.Image
}

func (c *canvas) Clear(bg color.RGBA) {
	c.dst.Fill(bg)
}

func (c *canvas) FillRect(r core.Rect, col color.RGBA) {
	vector.DrawFilledRect(c.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), col, false)
}

// StrokeRect keeps the outline inside r.
func (c *canvas) StrokeRect(r core.Rect, col color.RGBA, width int) {
	w := float32(width)
	vector.StrokeRect(c.dst,
		float32(r.X)+w/2, float32(r.Y)+w/2,
		float32(r.W)-w, float32(r.H)-w,
		w, col, false)
}

// DrawSprite places the sprite's bottom-center on anchor.
func (c *canvas) DrawSprite(s world.Sprite, anchor core.Point, mirrored bool) {
	img, ok := c.sprites[s]
	if !ok {
		return
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	op := &ebiten.DrawImageOptions{}
	if mirrored {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(w), 0)
	}
	op.GeoM.Translate(float64(anchor.X-w/2), float64(anchor.Y-h))
	c.dst.DrawImage(img, op)
}

var _ world.Canvas = (*canvas)(nil)
