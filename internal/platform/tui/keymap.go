package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-ski/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "h", "left":
		return core.ActionLeft, false
	case "d", "l", "right":
		return core.ActionRight, false
	case "w", "k", "up":
		return core.ActionUp, false
	case "s", "j", "down":
		return core.ActionDown, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// IsStop reports whether the key lets go of every held direction.
func (km *KeyMapper) IsStop(msg tea.KeyMsg) bool {
	return msg.String() == " "
}

// HeldKeys turns a terminal's key-repeat stream into press and release
// intents. Terminals report no key-up events, so a direction counts as
// released once it has not repeated for releaseTicks ticks, or as soon as
// the opposite direction is pressed.
type HeldKeys struct {
	releaseTicks int
	lastSeen     map[core.Action]int
}

// directions fixes the order releases are reported in.
var directions = [...]core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown}

// NewHeldKeys creates a tracker. releaseTicks below 1 is treated as 1.
func NewHeldKeys(releaseTicks int) *HeldKeys {
	return &HeldKeys{
		releaseTicks: max(releaseTicks, 1),
		lastSeen:     make(map[core.Action]int, len(directions)),
	}
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	}
	return core.ActionNone
}

// Press records a direction key seen at tick.
func (h *HeldKeys) Press(a core.Action, tick int) []core.Intent {
	if !a.IsDirection() {
		return nil
	}

	var out []core.Intent
	if opp := opposite(a); h.held(opp) {
		delete(h.lastSeen, opp)
		out = append(out, core.Release(opp))
	}
	h.lastSeen[a] = tick
	return append(out, core.Press(a))
}

// Expire releases directions that stopped repeating.
func (h *HeldKeys) Expire(tick int) []core.Intent {
	var out []core.Intent
	for _, a := range directions {
		seen, ok := h.lastSeen[a]
		if ok && tick-seen >= h.releaseTicks {
			delete(h.lastSeen, a)
			out = append(out, core.Release(a))
		}
	}
	return out
}

// ReleaseAll lets go of every held direction.
func (h *HeldKeys) ReleaseAll() []core.Intent {
	var out []core.Intent
	for _, a := range directions {
		if h.held(a) {
			delete(h.lastSeen, a)
			out = append(out, core.Release(a))
		}
	}
	return out
}

// Reset forgets all held keys without emitting releases.
func (h *HeldKeys) Reset() {
	clear(h.lastSeen)
}

func (h *HeldKeys) held(a core.Action) bool {
	_, ok := h.lastSeen[a]
	return ok
}
