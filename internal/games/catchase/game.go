// Package catchase drives a cat-and-mice session on top of the world
// simulation. It owns the RUNNING/STOPPED lifecycle, seeds the randomness
// and fans tick events out to sound, trace and log.
package catchase

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catchase/internal/config"
	"github.com/vovakirdan/catchase/internal/core"
	"github.com/vovakirdan/catchase/internal/world"
)

// Sound is the part of the audio player the game needs.
type Sound interface {
	Splat()
}

// Tracer receives every non-empty batch of tick events.
type Tracer interface {
	Record(events []world.Event) error
}

// Options configures a Game. Zero values are usable: no sound, no trace,
// a discarding logger and sprite sizes derived from Config.
type Options struct {
	Config config.Config
	Sizes  map[world.Sprite]world.Size
	Sound  Sound
	Trace  Tracer
	Logger *log.Logger
}

// Game implements the session lifecycle.
type Game struct {
	opts    Options
	config  core.RuntimeConfig
	world   *world.World
	stopped bool
}

// New creates a game. Call Reset before the first Step.
func New(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "catchase"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Cat Chase"
}

// Reset starts a fresh session. A positive TickRate overrides the
// configured one; the seed makes spawning reproducible.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	wcfg := g.opts.Config
	if cfg.TickRate > 0 {
		wcfg.Screen.TickRate = cfg.TickRate
	}

	g.world = world.New(wcfg, g.opts.Sizes, rand.New(rand.NewSource(cfg.Seed)))
	g.stopped = false

	g.opts.Logger.Info("session started",
		"seed", cfg.Seed,
		"tick_rate", wcfg.Screen.TickRate,
		"portals", len(g.world.Portals()),
		"platforms", len(g.world.Platforms()),
	)
}

// Step advances the session by one tick. A quit action stops it for good.
// Before the first Reset there is no world, so only quit has an effect.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.stopped {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionQuit) {
		g.stopped = true
		st := g.State()
		g.opts.Logger.Info("session stopped", "ticks", st.Tick, "kills", st.Kills)
		return core.StepResult{State: st}
	}
	if g.world == nil {
		return core.StepResult{State: g.State()}
	}

	events := g.world.Step(in)
	g.dispatch(events)

	return core.StepResult{State: g.State()}
}

// dispatch plays a splat for every kill and hands the batch to the tracer.
func (g *Game) dispatch(events []world.Event) {
	for _, e := range events {
		switch e.Kind {
		case world.EventKill:
			if g.opts.Sound != nil {
				g.opts.Sound.Splat()
			}
			g.opts.Logger.Debug("mouse caught", "mouse", e.Mouse, "tick", e.Tick, "kills", g.world.Kills())
		case world.EventSpawn:
			g.opts.Logger.Debug("mouse spawned", "mouse", e.Mouse, "x", e.Pos.X, "y", e.Pos.Y)
		}
	}

	if g.opts.Trace == nil || len(events) == 0 {
		return
	}
	if err := g.opts.Trace.Record(events); err != nil {
		g.opts.Logger.Warn("trace disabled", "error", err)
		g.opts.Trace = nil
	}
}

// Render draws the world scaled onto a terminal screen.
func (g *Game) Render(dst *core.Screen) {
	if g.world == nil {
		return
	}
	arena := g.world.Arena()
	g.world.Draw(NewScreenCanvas(dst, arena.Width, arena.Height))

	if g.world.Paused() {
		drawPaused(dst)
	}
}

// Draw renders the world onto any canvas.
func (g *Game) Draw(c world.Canvas) {
	if g.world == nil {
		return
	}
	g.world.Draw(c)
}

// State returns the current session status.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{Stopped: g.stopped}
	}
	return core.GameState{
		Tick:    g.world.Tick(),
		Mice:    g.world.MiceCount(),
		Kills:   g.world.Kills(),
		Paused:  g.world.Paused(),
		Stopped: g.stopped,
	}
}

// World exposes the simulation for frontends and tools.
func (g *Game) World() *world.World {
	return g.world
}

func drawPaused(dst *core.Screen) {
	const msg = "PAUSED - p to resume"
	w := len(msg) + 4
	if dst.Width() < w || dst.Height() < 3 {
		dst.DrawTextCentered(dst.Height()/2, "PAUSED")
		return
	}
	box := core.NewRect((dst.Width()-w)/2, dst.Height()/2-1, w, 3)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawTextCentered(dst.Height()/2, msg)
}
