package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catchase/internal/core"
)

// Game is what the terminal loop drives. Games contain pure logic and know
// nothing about Bubble Tea; the platform maps input, keeps time and renders.
type Game interface {
	// ID returns a stable identifier, used for screenshot names.
	ID() string
	// Title returns a human-readable name.
	Title() string
	// Reset starts a fresh session.
	Reset(cfg core.RuntimeConfig)
	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult
	// Render draws the current state into a pre-sized screen buffer.
	Render(dst *core.Screen)
	// State returns the current session status.
	State() core.GameState
}

// Options tunes the terminal loop.
type Options struct {
	// Hold is how long a direction key counts as held after its last press.
	Hold time.Duration
	// ScreenshotDir is where ctrl+s writes text screenshots. Empty disables them.
	ScreenshotDir string
	Logger        *log.Logger
}

// Model is the Bubble Tea model running one game session.
type Model struct {
	game       Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	held       *HeldKeys
	inputFrame core.InputFrame
	gameState  core.GameState
	opts       Options
	now        func() time.Time
	quitting   bool
}

// NewModel creates a model for game. The last terminal row is kept for the
// help line.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH-1),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		held:       NewHeldKeys(opts.Hold),
		inputFrame: core.NewInputFrame(),
		opts:       opts,
		now:        time.Now,
	}
}

// Init starts the session and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input. Edges are queued for the next tick;
// directions feed the held-key tracker.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.inputFrame.Set(core.ActionQuit)
		m.gameState = m.game.Step(m.inputFrame.Clone()).State
		m.quitting = true
		return m, tea.Quit
	case core.ActionLeft, core.ActionRight:
		m.held.Press(action, m.now())
	case core.ActionPause, core.ActionReset:
		// No release events arrive while the game is frozen or the cat is
		// moved, so start both from standing still.
		m.held.ReleaseAll()
		m.inputFrame.Set(action)
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize resizes the screen buffer. The logical surface is fixed, so
// the session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height-1)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one simulation step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.gameState.Stopped {
		return m, nil
	}

	// The game gets its own copy; the queued frame is reused.
	m.held.Apply(&m.inputFrame, m.now())
	m.gameState = m.game.Step(m.inputFrame.Clone()).State
	m.inputFrame.Clear()

	if m.gameState.Stopped {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current screen as plain text, one line per row
// with trailing blanks trimmed.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	m.screen.Clear()
	m.game.Render(m.screen)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.opts.ScreenshotDir, 0o755)

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), m.now().Format("20060102_150405"))
	path := filepath.Join(m.opts.ScreenshotDir, name)
	var sb strings.Builder
	for y := 0; y < m.screen.Height(); y++ {
		sb.WriteString(strings.TrimRight(m.screen.Row(y), " "))
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the game followed by the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts a Bubble Tea program for game on the local terminal.
func Run(game Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(NewModel(game, cfg, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: running program: %w", err)
	}
	return nil
}
