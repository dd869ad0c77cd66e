package world

import (
	"image/color"
	"slices"

	"github.com/vovakirdan/catchase/internal/config"
	"github.com/vovakirdan/catchase/internal/core"
)

// Rand is the randomness the world consumes. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// EventKind classifies what happened to a mouse during a tick.
type EventKind int

const (
	EventSpawn EventKind = iota
	EventKill
	EventRemove
)

// String returns the trace name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventSpawn:
		return "spawn"
	case EventKill:
		return "kill"
	case EventRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Event records one mouse lifecycle transition.
type Event struct {
	Tick  int
	Kind  EventKind
	Mouse MouseID
	Pos   core.Point
}

// World owns the whole mutable state of a session.
type World struct {
	arena     Arena
	rng       Rand
	platforms []Platform
	portals   []Portal
	cat       *Cat
	catStart  core.Point
	mice      map[MouseID]*Mouse
	nextID    MouseID

	background  color.RGBA
	gravity     int
	jump        int
	catSpeed    int
	mouseSpeed  int
	spawnChance float64
	killRadius  float64
	decayTicks  int

	tick   int
	kills  int
	paused bool
	events []Event
}

// New creates a world from cfg. sizes gives the sprite sizes used for edge
// bouncing; nil derives them from cfg.
func New(cfg config.Config, sizes map[Sprite]Size, rng Rand) *World {
	if sizes == nil {
		sizes = SpriteSizes(cfg)
	}
	platforms, portals := LayoutFromConfig(cfg)
	bg := cfg.Screen.Background
	catStart := core.Pt(cfg.Screen.Width/2, cfg.Screen.Height)

	return &World{
		arena: Arena{
			Width:  cfg.Screen.Width,
			Height: cfg.Screen.Height,
			Sizes:  sizes,
		},
		rng:         rng,
		platforms:   platforms,
		portals:     portals,
		cat:         NewCat(catStart),
		catStart:    catStart,
		mice:        make(map[MouseID]*Mouse),
		background:  color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 255},
		gravity:     cfg.Physics.Gravity,
		jump:        cfg.Physics.JumpImpulse,
		catSpeed:    cfg.Physics.CatSpeed,
		mouseSpeed:  cfg.Spawn.MouseSpeed,
		spawnChance: cfg.SpawnChance(),
		killRadius:  cfg.Lifecycle.KillRadius,
		decayTicks:  cfg.DecayTicks(),
	}
}

// Step handles the input edges of one frame and, unless paused, advances the
// simulation by one tick. It returns the mouse events of the tick, ordered
// by kind and then mouse ID.
func (w *World) Step(in core.InputFrame) []Event {
	w.events = w.events[:0]

	if in.Has(core.ActionPause) {
		w.paused = !w.paused
	}
	if in.Has(core.ActionReset) {
		w.ResetCat()
	}
	if in.Has(core.ActionJump) {
		w.Jump()
	}
	if w.paused {
		return nil
	}

	w.tick++
	w.steer(in)
	w.cat.Update(w.arena)
	w.resolvePlatforms()
	w.maybeSpawn()
	w.sweep()

	slices.SortStableFunc(w.events, func(a, b Event) int {
		if a.Kind != b.Kind {
			return int(a.Kind) - int(b.Kind)
		}
		return int(a.Mouse) - int(b.Mouse)
	})
	return slices.Clone(w.events)
}

// steer sets the cat's horizontal speed from the held direction keys.
// Holding both directions cancels out.
func (w *World) steer(in core.InputFrame) {
	left, right := in.IsHeld(core.ActionLeft), in.IsHeld(core.ActionRight)
	switch {
	case left && !right:
		w.cat.body.DX = -w.catSpeed
	case right && !left:
		w.cat.body.DX = w.catSpeed
	default:
		w.cat.body.DX = 0
	}
}

// Jump launches the cat upwards if it is not already moving vertically.
func (w *World) Jump() {
	if w.cat.body.DY == 0 {
		w.cat.body.DY = w.jump
	}
}

// ResetCat puts the cat back at its start point, stationary.
func (w *World) ResetCat() {
	w.cat.body = Body{Pos: w.catStart, Sprite: SpriteCat}
}

// resolvePlatforms lands falling animals on platforms and applies gravity to
// the rest. The cat goes after all mice. Every matching platform snaps the
// animal, so with overlapping platforms the last one in layout order wins.
func (w *World) resolvePlatforms() {
	for _, m := range w.mice {
		w.land(&m.body)
	}
	w.land(&w.cat.body)
}

func (w *World) land(b *Body) {
	supported := false
	for _, p := range w.platforms {
		if b.DY >= 0 && p.IsUnder(b.Pos) {
			b.DY = 0
			b.Pos.Y = p.Rect.Y
			supported = true
		}
	}
	if !supported {
		b.DY += w.gravity
	}
}

// maybeSpawn spawns a mouse at a random portal with the configured chance.
func (w *World) maybeSpawn() {
	if len(w.portals) == 0 || w.rng.Float64() >= w.spawnChance {
		return
	}
	portal := w.portals[w.rng.Intn(len(w.portals))]
	dx := w.mouseSpeed
	if w.rng.Intn(2) == 0 {
		dx = -dx
	}
	w.SpawnMouse(portal.Pos, dx)
}

// SpawnMouse adds a live mouse at pos with horizontal speed dx.
func (w *World) SpawnMouse(pos core.Point, dx int) *Mouse {
	w.nextID++
	m := newMouse(w.nextID, pos, dx)
	w.mice[m.id] = m
	w.events = append(w.events, Event{Tick: w.tick, Kind: EventSpawn, Mouse: m.id, Pos: pos})
	return m
}

// sweep ages every mouse, kills the live ones within reach of the cat and
// removes corpses that have decayed. Removal happens after the full pass.
func (w *World) sweep() {
	var rotten []MouseID
	for id, m := range w.mice {
		m.Update(w.arena)
		if m.AfterDeath > w.decayTicks {
			rotten = append(rotten, id)
		} else if m.Alive() && core.Distance(w.cat.body.Pos, m.body.Pos) < w.killRadius {
			m.Kill()
			w.kills++
			w.events = append(w.events, Event{Tick: w.tick, Kind: EventKill, Mouse: id, Pos: m.body.Pos})
		}
	}
	for _, id := range rotten {
		w.events = append(w.events, Event{Tick: w.tick, Kind: EventRemove, Mouse: id, Pos: w.mice[id].body.Pos})
		delete(w.mice, id)
	}
}

// Draw renders the world back to front: portals, platforms, mice, cat.
// It does not mutate state.
func (w *World) Draw(c Canvas) {
	c.Clear(w.background)
	for _, p := range w.portals {
		p.Draw(c)
	}
	for _, p := range w.platforms {
		p.Draw(c)
	}
	for _, m := range w.Mice() {
		m.Draw(c)
	}
	w.cat.Draw(c)
}

// Cat returns the player animal.
func (w *World) Cat() *Cat { return w.cat }

// Mouse returns a live-set mouse by ID.
func (w *World) Mouse(id MouseID) (*Mouse, bool) {
	m, ok := w.mice[id]
	return m, ok
}

// Mice returns the live set ordered by ID. The order carries no meaning
// for the simulation; it only keeps callers deterministic.
func (w *World) Mice() []*Mouse {
	out := make([]*Mouse, 0, len(w.mice))
	for _, m := range w.mice {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b *Mouse) int { return int(a.id) - int(b.id) })
	return out
}

// MiceCount returns the size of the live set, splats included.
func (w *World) MiceCount() int { return len(w.mice) }

// Platforms returns the static platforms in layout order.
func (w *World) Platforms() []Platform { return w.platforms }

// Portals returns the spawn portals in layout order.
func (w *World) Portals() []Portal { return w.portals }

// Arena returns the surface description animals move in.
func (w *World) Arena() Arena { return w.arena }

// Tick returns the number of simulated ticks.
func (w *World) Tick() int { return w.tick }

// Kills returns how many mice the cat has caught.
func (w *World) Kills() int { return w.kills }

// Paused reports whether the simulation is paused.
func (w *World) Paused() bool { return w.paused }
