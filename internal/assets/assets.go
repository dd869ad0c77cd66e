// Package assets loads and prepares the animal sprites.
//
// Sprites are scaled once at load to the width the layout asks for
// (screen width / divisor), keeping the source aspect ratio. A sprite with
// no configured path is drawn procedurally at the configured aspect.
package assets

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // sprite files may be JPEG
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/vovakirdan/catchase/internal/config"
	"github.com/vovakirdan/catchase/internal/core"
	"github.com/vovakirdan/catchase/internal/world"
)

// Sprites holds the prepared images, facing their unmirrored direction.
type Sprites struct {
	Images map[world.Sprite]*image.RGBA
	Sizes  map[world.Sprite]world.Size
}

// Load decodes, scales and orients every sprite. A configured file that
// cannot be read is an error.
func Load(cfg config.Config) (*Sprites, error) {
	sizes, err := Sizes(cfg)
	if err != nil {
		return nil, err
	}

	out := &Sprites{
		Images: make(map[world.Sprite]*image.RGBA, len(world.Sprites)),
		Sizes:  sizes,
	}
	for _, s := range world.Sprites {
		sc := world.SpriteConfig(cfg, s)
		size := sizes[s]

		var img *image.RGBA
		if sc.Path == "" {
			img = Procedural(s, size)
		} else {
			src, err := decode(sc.Path)
			if err != nil {
				return nil, err
			}
			img = Scale(src, size)
			if sc.Flip {
				img = FlipH(img)
			}
		}
		out.Images[s] = img
	}
	return out, nil
}

// Sizes returns the on-screen size of every sprite. For configured files
// only the image header is read.
func Sizes(cfg config.Config) (map[world.Sprite]world.Size, error) {
	sizes := world.SpriteSizes(cfg)
	for _, s := range world.Sprites {
		sc := world.SpriteConfig(cfg, s)
		if sc.Path == "" {
			continue
		}
		ic, err := decodeConfig(sc.Path)
		if err != nil {
			return nil, err
		}
		if ic.Width <= 0 || ic.Height <= 0 {
			return nil, fmt.Errorf("assets: %s: empty image", sc.Path)
		}
		w := sizes[s].W
		sizes[s] = world.Size{W: w, H: core.Max(1, w*ic.Height/ic.Width)}
	}
	return sizes, nil
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: opening %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // Read-only

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decoding %s: %w", path, err)
	}
	return img, nil
}

func decodeConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, fmt.Errorf("assets: opening %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // Read-only

	ic, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Config{}, fmt.Errorf("assets: decoding %s: %w", path, err)
	}
	return ic, nil
}

// Scale resamples src to size.
func Scale(src image.Image, size world.Size) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size.W, size.H))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// FlipH returns a horizontally mirrored copy of img.
func FlipH(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	mirror := f64.Aff3{-1, 0, float64(b.Min.X + b.Max.X), 0, 1, 0}
	draw.NearestNeighbor.Transform(out, mirror, img, b, draw.Src, nil)
	return out
}

// Procedural palette.
var (
	catFur     = color.RGBA{R: 230, G: 140, B: 40, A: 255}
	mouseFur   = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	splatRed   = color.RGBA{R: 190, G: 20, B: 30, A: 255}
	eyeColor   = color.RGBA{A: 255}
	tailShadow = color.RGBA{R: 110, G: 110, B: 120, A: 255}
)

// Procedural draws a built-in sprite facing left.
func Procedural(s world.Sprite, size world.Size) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size.W, size.H))
	w, h := size.W, size.H

	switch s {
	case world.SpriteCat:
		fill(img, image.Rect(w/4, h/3, w, h), catFur)        // body
		fill(img, image.Rect(0, h/6, w/3, h*2/3), catFur)    // head
		fill(img, image.Rect(0, 0, w/12+1, h/6), catFur)     // ear
		fill(img, image.Rect(w/4-w/12, 0, w/4, h/6), catFur) // ear
		fill(img, image.Rect(w/12, h/3, w/12+2, h/3+2), eyeColor)
	case world.SpriteMouse:
		fill(img, image.Rect(w/5, h/3, w*4/5, h), mouseFur)         // body
		fill(img, image.Rect(0, h/2, w/4, h), mouseFur)             // head
		fill(img, image.Rect(w*4/5, h*3/4, w, h*3/4+2), tailShadow) // tail
		fill(img, image.Rect(w/16, h*5/8, w/16+2, h*5/8+2), eyeColor)
	case world.SpriteSplat:
		fill(img, image.Rect(w/8, h/2, w*7/8, h), splatRed)
		fill(img, image.Rect(w/4, h/4, w*3/4, h), splatRed)
		fill(img, image.Rect(0, h*3/4, w, h), splatRed)
	}
	return img
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r.Intersect(img.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Src)
}
