// Package tui provides the Bubble Tea integration for the ski game.
// It handles the terminal UI loop, input mapping, and run orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-ski/internal/assets"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// endDelayMsg fires when the game-over hold has elapsed.
type endDelayMsg struct{ run int }

func endDelayCmd(d time.Duration, run int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return endDelayMsg{run: run}
	})
}

// spriteChangedMsg reports an edited sprite file.
type spriteChangedMsg struct{ name string }

// watchErrMsg reports a sprite watcher failure.
type watchErrMsg struct{ err error }

// waitForSprite blocks until the watcher reports something. A closed
// watcher ends the loop.
func waitForSprite(w *assets.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			return spriteChangedMsg{name: name}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}
