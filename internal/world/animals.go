package world

import "github.com/vovakirdan/catchase/internal/core"

// Cat is the player-controlled animal. Its velocity is driven from outside:
// held keys set dx, a jump sets dy, gravity is applied by the world.
type Cat struct {
	body Body
}

// NewCat creates a stationary cat at pos.
func NewCat(pos core.Point) *Cat {
	return &Cat{body: Body{Pos: pos, Sprite: SpriteCat}}
}

func (c *Cat) Body() *Body { return &c.body }

// Update applies the default drift and edge bounce.
func (c *Cat) Update(a Arena) { c.body.move(a) }

func (c *Cat) Draw(cv Canvas) { c.body.draw(cv) }

// MouseID identifies a mouse within one world. IDs are never reused.
type MouseID int

// Mouse is an autonomous animal that drifts until the cat catches it,
// then lies splatted for a while before being removed.
type Mouse struct {
	id   MouseID
	body Body

	// AfterDeath is -1 while alive, then the number of ticks since death.
	AfterDeath int
}

func newMouse(id MouseID, pos core.Point, dx int) *Mouse {
	return &Mouse{
		id:         id,
		body:       Body{Pos: pos, DX: dx, Sprite: SpriteMouse},
		AfterDeath: -1,
	}
}

// ID returns the mouse identifier.
func (m *Mouse) ID() MouseID { return m.id }

func (m *Mouse) Body() *Body { return &m.body }

// Alive reports whether the mouse has not been killed.
func (m *Mouse) Alive() bool { return m.AfterDeath < 0 }

// Update drifts a live mouse; a dead one only ages.
func (m *Mouse) Update(a Arena) {
	if m.AfterDeath >= 0 {
		m.AfterDeath++
		return
	}
	m.body.move(a)
}

// Kill stops the mouse and swaps it to the splat sprite.
// Killing an already dead mouse is a caller error.
func (m *Mouse) Kill() {
	m.AfterDeath = 0
	m.body.DX = 0
	m.body.Sprite = SpriteSplat
}

func (m *Mouse) Draw(c Canvas) { m.body.draw(c) }

var (
	_ Animal = (*Cat)(nil)
	_ Animal = (*Mouse)(nil)
)
