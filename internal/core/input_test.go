package core

import "testing"

func TestInputFrameOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Push(Release(ActionLeft))
	f.Set(ActionDown)

	if len(f.Intents) != 3 {
		t.Fatalf("expected 3 intents, got %d", len(f.Intents))
	}
	if f.Intents[1] != (Intent{Action: ActionLeft, Release: true}) {
		t.Errorf("second intent = %+v, expected Left release", f.Intents[1])
	}
	if !f.Has(ActionDown) || !f.Has(ActionLeft) {
		t.Error("Has should report pressed actions")
	}
	if f.Has(ActionQuit) {
		t.Error("Has should not report actions that were not pressed")
	}

	f.Clear()
	if len(f.Intents) != 0 || f.Has(ActionDown) {
		t.Error("Clear should drop all intents")
	}
}

func TestInputFrameReleaseOnly(t *testing.T) {
	f := NewInputFrame()
	f.Push(Release(ActionRight))

	if f.Has(ActionRight) {
		t.Error("a release is not a press")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:    "None",
		ActionLeft:    "Left",
		ActionDown:    "Down",
		ActionQuit:    "Quit",
		Action(99):    "Unknown",
		ActionRestart: "Restart",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", a, got, want)
		}
	}

	if !ActionUp.IsDirection() || ActionPause.IsDirection() {
		t.Error("IsDirection misclassifies actions")
	}
}
