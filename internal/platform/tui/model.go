package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-ski/internal/assets"
	"github.com/vovakirdan/tui-ski/internal/config"
	"github.com/vovakirdan/tui-ski/internal/core"
	"github.com/vovakirdan/tui-ski/internal/games/ski"
	"github.com/vovakirdan/tui-ski/internal/spectate"
	"github.com/vovakirdan/tui-ski/internal/storage"
)

// phase is the stage of a session.
type phase int

const (
	phasePlaying    phase = iota
	phaseEnding           // GAME OVER is on screen, waiting out the end delay
	phaseScoreboard       // Results, r to ski again
)

// Options wires a Model to its collaborators. Only Config, Runtime and
// Sprites are required.
type Options struct {
	Config  config.SkiConfig
	Runtime core.RuntimeConfig
	Sprites *assets.Store
	Audio   core.AudioSink
	Store   *storage.Store
	Player  string
	Hub     *spectate.Hub
	Watcher *assets.Watcher
	Logger  *log.Logger
}

// Model is the Bubble Tea model for a ski session: runs, the end delay and
// the scoreboard in between.
type Model struct {
	game      *ski.Game
	cfg       config.SkiConfig
	sprites   *assets.Store
	screen    *core.Screen
	store     *storage.Store
	hub       *spectate.Hub
	watcher   *assets.Watcher
	logger    *log.Logger
	player    string
	runtime   core.RuntimeConfig
	keys      *KeyMapper
	held      *HeldKeys
	frame     core.InputFrame
	state     core.GameState
	phase     phase
	ticks     int
	run       int
	lastRunID int64
	board     ScoreboardModel
	quitting  bool
}

// NewModel creates a new Bubble Tea model for a ski session.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game: ski.New(ski.Options{
			Config:  opts.Config,
			Sprites: opts.Sprites,
			Audio:   opts.Audio,
		}),
		cfg:     opts.Config,
		sprites: opts.Sprites,
		screen:  core.NewScreen(rt.ScreenW, rt.ScreenH),
		store:   opts.Store,
		hub:     opts.Hub,
		watcher: opts.Watcher,
		logger:  logger,
		player:  opts.Player,
		runtime: rt,
		keys:    NewKeyMapper(),
		held:    NewHeldKeys(opts.Config.Input.ReleaseTicks),
		frame:   core.NewInputFrame(),
	}
}

// Init starts the first run.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.runtime)
	m.logger.Info("run started", "player", m.player, "seed", m.runtime.Seed,
		"board", fmt.Sprintf("%dx%d", m.game.Board().Width, m.game.Board().Height))

	cmds := []tea.Cmd{tickCmd(m.runtime.TickRate)}
	if m.watcher != nil {
		cmds = append(cmds, waitForSprite(m.watcher))
	}
	return tea.Batch(cmds...)
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

	case endDelayMsg:
		if msg.run != m.run || m.phase != phaseEnding {
			return m, nil
		}
		return m.showScoreboard()

	case spriteChangedMsg:
		m.sprites.Reload(msg.name)
		m.logger.Info("sprite reloaded", "name", msg.name)
		return m, waitForSprite(m.watcher)

	case watchErrMsg:
		m.logger.Warn("sprite watcher error", "err", msg.err)
		return m, waitForSprite(m.watcher)
	}

	if m.phase == phaseScoreboard {
		return m.updateScoreboard(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch m.phase {
	case phaseScoreboard:
		return m.updateScoreboard(msg)
	case phaseEnding:
		if _, quit := m.keys.MapKey(msg); quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.keys.IsStop(msg) {
		m.push(m.held.ReleaseAll())
		return m, nil
	}

	action, quit := m.keys.MapKey(msg)
	switch {
	case quit:
		// Applied on the next tick, which then does not simulate
		m.frame.Set(core.ActionQuit)
	case action.IsDirection():
		m.push(m.held.Press(action, m.ticks))
	case action == core.ActionPause:
		m.frame.Set(core.ActionPause)
	}

	return m, nil
}

func (m *Model) push(intents []core.Intent) {
	for _, in := range intents {
		m.frame.Push(in)
	}
}

// handleResize processes window resize events. The board is fixed once a
// run has started, so only a run that has not ticked yet is resized.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	switch {
	case m.phase == phaseScoreboard:
		return m.updateScoreboard(msg)
	case m.phase == phasePlaying && m.state.Ticks == 0:
		m.game.Reset(m.runtime)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.phase != phasePlaying || m.quitting {
		return m, nil
	}

	m.ticks++
	m.push(m.held.Expire(m.ticks))

	result := m.game.Step(m.frame)
	m.state = result.State
	m.frame.Clear()

	if m.state.Quit {
		m.logger.Info("run abandoned", "player", m.player, "score", m.state.Score, "ticks", m.state.Ticks)
		m.quitting = true
		return m, tea.Quit
	}

	if result.Simulated {
		if out := m.game.LastOutcome(); out.Crashes > 0 {
			m.logger.Debug("crash", "tick", m.state.Ticks, "crashes", m.state.Crashes)
		}
		m.publish()
	}

	if m.state.GameOver {
		return m.endRun()
	}

	return m, tickCmd(m.runtime.TickRate)
}

// endRun saves the result and holds the GAME OVER screen.
func (m Model) endRun() (tea.Model, tea.Cmd) {
	m.phase = phaseEnding

	m.logger.Info("run finished",
		"player", m.player,
		"score", m.state.Score,
		"crashes", m.state.Crashes,
		"ticks", m.state.Ticks,
	)

	if m.store != nil {
		id, err := m.store.SaveRun(storage.Run{
			Player:  m.player,
			Score:   m.state.Score,
			Crashes: m.state.Crashes,
			Ticks:   m.state.Ticks,
		})
		if err != nil {
			m.logger.Error("could not save run", "err", err)
		} else {
			m.lastRunID = id
		}
	}

	return m, endDelayCmd(m.cfg.Rules.EndDelay(), m.run)
}

func (m Model) showScoreboard() (tea.Model, tea.Cmd) {
	m.phase = phaseScoreboard
	m.board = NewScoreboardModel(ScoreboardOptions{
		Store:      m.store,
		Player:     m.player,
		Highlight:  m.lastRunID,
		TickRate:   m.runtime.TickRate,
		Width:      m.runtime.ScreenW,
		Height:     m.runtime.ScreenH,
		CanRestart: true,
	})
	return m, m.board.Init()
}

func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if board, ok := next.(ScoreboardModel); ok {
		m.board = board
	}

	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.board.Restart():
		return m.restart()
	}
	return m, cmd
}

// restart begins a fresh run with a new seed.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.run++
	m.ticks = 0
	m.lastRunID = 0
	m.phase = phasePlaying
	m.held.Reset()
	m.frame.Clear()

	m.runtime.Seed = time.Now().UnixNano()
	m.game.Reset(m.runtime)
	m.state = m.game.State()
	m.logger.Info("run started", "player", m.player, "seed", m.runtime.Seed, "run", m.run)

	return m, tickCmd(m.runtime.TickRate)
}

// publish sends the current tick to spectators.
func (m Model) publish() {
	if m.hub == nil {
		return
	}
	if err := m.hub.Publish(FrameFor(m.game, m.player)); err != nil {
		m.logger.Debug("could not publish frame", "err", err)
	}
}

// FrameFor snapshots a game for spectators.
func FrameFor(g *ski.Game, player string) spectate.Frame {
	list := g.DrawList()
	sprites := make([]spectate.Sprite, len(list))
	for i, r := range list {
		sprites[i] = spectate.Sprite{Visual: r.Visual.String(), X: r.X, Y: r.Y}
	}

	st := g.Stats()
	state := g.State()
	return spectate.Frame{
		Tick:     state.Ticks,
		Player:   player,
		Score:    st.Score,
		Crashes:  st.Crashes,
		CrashMax: st.CrashMax,
		GameOver: state.GameOver,
		Width:    g.Board().Width,
		Height:   g.Board().Height,
		Sprites:  sprites,
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.UserDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "err", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.phase == phaseScoreboard {
		return m.board.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last stepped game state.
func (m Model) State() core.GameState {
	return m.state
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
