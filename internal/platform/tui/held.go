package tui

import (
	"time"

	"github.com/vovakirdan/catchase/internal/core"
)

// HeldKeys approximates held direction keys for terminals, which report
// presses and auto-repeats but never releases. A key counts as held for a
// short window after its last press.
type HeldKeys struct {
	hold  time.Duration
	until map[core.Action]time.Time
}

// NewHeldKeys creates a tracker with the given hold window.
func NewHeldKeys(hold time.Duration) *HeldKeys {
	return &HeldKeys{hold: hold, until: make(map[core.Action]time.Time)}
}

// Press records a press of a at now. Pressing a direction releases the
// opposite one.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	if opp := opposite(a); opp != core.ActionNone {
		delete(h.until, opp)
	}
	h.until[a] = now.Add(h.hold)
}

// IsHeld reports whether a still counts as held at now.
func (h *HeldKeys) IsHeld(a core.Action, now time.Time) bool {
	t, ok := h.until[a]
	return ok && now.Before(t)
}

// Apply copies the held state of both directions into f.
func (h *HeldKeys) Apply(f *core.InputFrame, now time.Time) {
	f.SetHeld(core.ActionLeft, h.IsHeld(core.ActionLeft, now))
	f.SetHeld(core.ActionRight, h.IsHeld(core.ActionRight, now))
}

// ReleaseAll forgets every held key.
func (h *HeldKeys) ReleaseAll() {
	clear(h.until)
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}
