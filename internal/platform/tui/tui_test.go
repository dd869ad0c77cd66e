package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/catchase/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", runeKey('a'), core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"d", runeKey('d'), core.ActionRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"p", runeKey('p'), core.ActionPause},
		{"r", runeKey('r'), core.ActionReset},
		{"q", runeKey('q'), core.ActionQuit},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('z'), core.ActionNone},
		{"help is platform-only", runeKey('?'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.MapKey(tc.msg); got != tc.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestHeldKeysWindow(t *testing.T) {
	h := NewHeldKeys(150 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	if h.IsHeld(core.ActionLeft, t0) {
		t.Fatal("nothing pressed yet")
	}

	h.Press(core.ActionLeft, t0)
	if !h.IsHeld(core.ActionLeft, t0.Add(100*time.Millisecond)) {
		t.Error("left should be held within the window")
	}
	if h.IsHeld(core.ActionLeft, t0.Add(150*time.Millisecond)) {
		t.Error("left should be released once the window elapses")
	}

	// A repeat extends the window.
	h.Press(core.ActionLeft, t0.Add(100*time.Millisecond))
	if !h.IsHeld(core.ActionLeft, t0.Add(200*time.Millisecond)) {
		t.Error("repeat should extend the hold")
	}
}

func TestHeldKeysOppositeReleases(t *testing.T) {
	h := NewHeldKeys(time.Second)
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionLeft, t0)
	h.Press(core.ActionRight, t0.Add(10*time.Millisecond))

	now := t0.Add(20 * time.Millisecond)
	if h.IsHeld(core.ActionLeft, now) {
		t.Error("pressing right should release left")
	}
	if !h.IsHeld(core.ActionRight, now) {
		t.Error("right should be held")
	}

	f := core.NewInputFrame()
	h.Apply(&f, now)
	if f.IsHeld(core.ActionLeft) || !f.IsHeld(core.ActionRight) {
		t.Errorf("Apply produced held = %v", f.Held)
	}

	h.ReleaseAll()
	if h.IsHeld(core.ActionRight, now) {
		t.Error("ReleaseAll should clear everything")
	}
}

// fakeGame records the frames it is stepped with.
type fakeGame struct {
	resets  int
	frames  []core.InputFrame
	stopped bool
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in)
	if in.Has(core.ActionQuit) {
		g.stopped = true
	}
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake-game") }

func (g *fakeGame) State() core.GameState {
	return core.GameState{Tick: len(g.frames), Stopped: g.stopped}
}

func newTestModel(g *fakeGame, now *time.Time) Model {
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1},
		Options{Hold: 150 * time.Millisecond})
	m.now = func() time.Time { return *now }
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelEdgesReachOneTick(t *testing.T) {
	g := &fakeGame{}
	now := time.Unix(1000, 0)
	m := newTestModel(g, &now)
	m.Init()
	if g.resets != 1 {
		t.Fatalf("Init should reset the game once, got %d", g.resets)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, cmd := update(t, m, TickMsg(now))
	if cmd == nil {
		t.Error("a tick should schedule the next tick")
	}
	m, _ = update(t, m, TickMsg(now))

	if len(g.frames) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(g.frames))
	}
	if !g.frames[0].Has(core.ActionJump) {
		t.Error("first tick should carry the jump")
	}
	if g.frames[1].Has(core.ActionJump) {
		t.Error("jump must not repeat on the next tick")
	}
}

func TestModelHeldDirection(t *testing.T) {
	g := &fakeGame{}
	now := time.Unix(1000, 0)
	m := newTestModel(g, &now)
	m.Init()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	for i := 0; i < 3; i++ {
		m, _ = update(t, m, TickMsg(now))
		now = now.Add(33 * time.Millisecond)
	}
	now = now.Add(200 * time.Millisecond)
	m, _ = update(t, m, TickMsg(now))

	for i := 0; i < 3; i++ {
		if !g.frames[i].IsHeld(core.ActionRight) {
			t.Errorf("tick %d: right should be held", i)
		}
	}
	if g.frames[3].IsHeld(core.ActionRight) {
		t.Error("right should be released after the hold window")
	}
}

func TestModelQuit(t *testing.T) {
	g := &fakeGame{}
	now := time.Unix(1000, 0)
	m := newTestModel(g, &now)
	m.Init()

	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should return tea.Quit")
	}
	if !g.stopped {
		t.Error("the game should see the quit action")
	}
	if !m.State().Stopped {
		t.Error("model should record the stopped state")
	}
	if m.View() != "" {
		t.Error("view should be empty while quitting")
	}
}

func TestModelViewAndResize(t *testing.T) {
	g := &fakeGame{}
	now := time.Unix(1000, 0)
	m := newTestModel(g, &now)
	m.Init()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if g.resets != 1 {
		t.Error("resizing must not restart the session")
	}

	view := m.View()
	if !strings.Contains(view, "fake-game") {
		t.Errorf("view should contain the game render:\n%s", view)
	}
	if !strings.Contains(view, "jump") {
		t.Errorf("view should end with the help line:\n%s", view)
	}
	if lines := strings.Count(view, "\n") + 1; lines != 20 {
		t.Errorf("view has %d lines, expected 20", lines)
	}
}

func TestModelScreenshot(t *testing.T) {
	g := &fakeGame{}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewModel(g, core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 30, Seed: 1},
		Options{ScreenshotDir: t.TempDir()})
	m.now = func() time.Time { return now }
	m.Init()

	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	data, err := os.ReadFile(filepath.Join(m.opts.ScreenshotDir, "fake_20260102_030405.txt"))
	if err != nil {
		t.Fatalf("screenshot not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "fake-game") {
		t.Errorf("unexpected screenshot:\n%s", data)
	}
	// 5 terminal rows minus the help line, blanks trimmed.
	if got, want := string(data), "fake-game\n\n\n\n"; got != want {
		t.Errorf("screenshot = %q, expected %q", got, want)
	}
}

func TestModelPauseAndResetReleaseHeldKeys(t *testing.T) {
	for _, r := range []rune{'p', 'r'} {
		t.Run(string(r), func(t *testing.T) {
			g := &fakeGame{}
			now := time.Unix(1000, 0)
			m := newTestModel(g, &now)
			m.Init()

			m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
			m, _ = update(t, m, runeKey(r))
			m, _ = update(t, m, TickMsg(now))

			if len(g.frames) != 1 {
				t.Fatalf("expected 1 step, got %d", len(g.frames))
			}
			if g.frames[0].IsHeld(core.ActionLeft) {
				t.Error("left should be released")
			}
			if len(g.frames[0].Actions) != 1 {
				t.Errorf("expected only the %q edge, got %v", r, g.frames[0].Actions)
			}
		})
	}
}

func TestModelStepGetsOwnFrame(t *testing.T) {
	g := &fakeGame{}
	now := time.Unix(1000, 0)
	m := newTestModel(g, &now)
	m.Init()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	update(t, m, TickMsg(now))

	if !g.frames[0].Has(core.ActionJump) {
		t.Error("a frame handed to Step should survive the model clearing its queue")
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.SetColored(0, 0, 'x', core.ColorRed)
	s.DrawText(1, 0, "yz")
	s.SetColored(5, 1, 'w', core.ColorGray)

	out := RenderScreen(s)
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(out, "x") || !strings.Contains(out, "yz") || !strings.Contains(out, "w") {
		t.Errorf("rendered output lost content: %q", out)
	}
}
