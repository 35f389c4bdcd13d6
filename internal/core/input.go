package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A - steer left
	ActionRight          // Right arrow, D - steer right
	ActionUp             // Up arrow, W - climb back up the slope
	ActionDown           // Down arrow, S - push downhill
	ActionPause          // P, Esc - pause/unpause game
	ActionRestart        // R - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit immediately
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsDirection reports whether the action steers the player.
func (a Action) IsDirection() bool {
	return a >= ActionLeft && a <= ActionDown
}

// Intent is a single key-down or key-up signal for an action.
type Intent struct {
	Action  Action
	Release bool
}

// Press returns a key-down intent.
func Press(a Action) Intent {
	return Intent{Action: a}
}

// Release returns a key-up intent.
func Release(a Action) Intent {
	return Intent{Action: a, Release: true}
}

// InputFrame is the batch of intents collected for one simulation tick.
// Intents keep their arrival order; games apply them in that order.
type InputFrame struct {
	Intents []Intent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Push appends an intent to the frame.
func (f *InputFrame) Push(in Intent) {
	f.Intents = append(f.Intents, in)
}

// Set records a key-down of the given action.
func (f *InputFrame) Set(a Action) {
	f.Push(Press(a))
}

// Has returns true if the action was pressed during this frame.
func (f InputFrame) Has(a Action) bool {
	for _, in := range f.Intents {
		if in.Action == a && !in.Release {
			return true
		}
	}
	return false
}

// Clear resets the frame for the next tick, keeping its storage.
func (f *InputFrame) Clear() {
	f.Intents = f.Intents[:0]
}
