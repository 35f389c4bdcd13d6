// Package ski implements a downhill skiing arcade game.
// The skier dodges trees, collects flags and launches off ramps while the
// slope scrolls upward past them.
package ski

import (
	"math/rand"

	"github.com/vovakirdan/tui-ski/internal/assets"
	"github.com/vovakirdan/tui-ski/internal/config"
	"github.com/vovakirdan/tui-ski/internal/core"
)

// SpriteSource resolves sprites by name. Lookups must never fail.
type SpriteSource interface {
	Sprite(name string) *assets.Sprite
}

// Options wires the game to its collaborators.
type Options struct {
	Config  config.SkiConfig
	Sprites SpriteSource
	Audio   core.AudioSink // nil means silent
}

// Game implements the ski game logic.
type Game struct {
	cfg      config.SkiConfig
	sprites  SpriteSource
	audio    core.AudioSink
	runtime  core.RuntimeConfig
	board    core.Board
	rng      *rand.Rand
	player   Player
	hazards  *Pool
	bonuses  *Pool
	ramps    *Pool
	resolver Resolver
	jumpTime int

	tickCount int
	gameOver  bool
	paused    bool
	quit      bool
	last      Outcome
}

// New creates a new game instance. Call Reset before stepping.
func New(opts Options) *Game {
	audio := opts.Audio
	if audio == nil {
		audio = core.NopAudio{}
	}
	return &Game{
		cfg:     opts.Config,
		sprites: opts.Sprites,
		audio:   audio,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "ski"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Ski Slope"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.board = boardFor(g.cfg.Board, runtime)
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	cellW, cellH := g.cfg.Board.CellWidth, g.cfg.Board.CellHeight

	pw, ph := g.sprites.Sprite(g.cfg.Player.Variant("")).Size(cellW, cellH)
	g.player = NewPlayer(pw, ph, g.cfg.Player.Speed, g.board)

	g.hazards = g.newPool(CategoryHazard, g.cfg.Pools.Hazard)
	g.bonuses = g.newPool(CategoryBonus, g.cfg.Pools.Bonus)
	g.ramps = g.newPool(CategoryRamp, g.cfg.Pools.Ramp)

	g.resolver = Resolver{
		CrashTime:     g.cfg.Rules.CrashTicks(runtime.TickRate),
		RampRetrigger: g.cfg.Rules.RampRetrigger,
		Audio:         g.audio,
	}
	g.jumpTime = g.cfg.Rules.JumpTicks(runtime.TickRate)

	g.tickCount = 0
	g.gameOver = false
	g.paused = false
	g.quit = false
	g.last = Outcome{}

	g.audio.StartMusic()
}

func (g *Game) newPool(cat Category, pc config.PoolConfig) *Pool {
	w, h := g.sprites.Sprite(pc.Sprite).Size(g.cfg.Board.CellWidth, g.cfg.Board.CellHeight)
	tmpl := Template{
		Category: cat,
		W:        w,
		H:        h,
		Speed:    g.cfg.Pools.DownhillSpeed,
		Points:   pc.Points,
	}
	return NewPool(tmpl, pc.Capacity, g.board, g.rng)
}

// boardFor sizes the board from config, or from the terminal when unset.
// One terminal row is reserved for the stats line.
func boardFor(bc config.BoardConfig, runtime core.RuntimeConfig) core.Board {
	b := core.Board{Width: bc.Width, Height: bc.Height}
	if b.Width == 0 {
		b.Width = runtime.ScreenW * bc.CellWidth
	}
	if b.Height == 0 {
		b.Height = (runtime.ScreenH - 1) * bc.CellHeight
	}
	b.Width = core.Max(b.Width, bc.CellWidth)
	b.Height = core.Max(b.Height, bc.CellHeight)
	return b
}

// Step advances the game by one tick.
// Intents are applied in arrival order before the simulation runs.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver || g.quit {
		return core.StepResult{State: g.State()}
	}

	for _, intent := range in.Intents {
		switch {
		case intent.Release && !intent.Action.IsDirection():
			continue
		case intent.Action == core.ActionQuit:
			g.quit = true
			return core.StepResult{State: g.State()}
		case intent.Action == core.ActionPause:
			g.paused = !g.paused
		case intent.Action.IsDirection():
			g.player.Steer(intent)
		}
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick()
	return core.StepResult{State: g.State(), Simulated: true}
}

// tick runs one simulation step in fixed order: timers, motion, clamp,
// spawn, recycle, collisions, termination.
func (g *Game) tick() {
	g.tickCount++
	p := &g.player
	pools := [...]*Pool{g.hazards, g.bonuses, g.ramps}

	p.AdvanceJump(g.jumpTime)

	// A crash freezes the whole slope, not just the skier
	if p.Frozen() {
		p.CrashTimer--
	} else {
		p.Advance()
		for _, pool := range pools {
			pool.Advance()
		}
	}

	p.Clamp(g.board)

	for _, pool := range pools {
		pool.TrySpawn()
	}
	for _, pool := range pools {
		pool.Recycle()
	}

	g.last = g.resolver.Resolve(p, g.hazards, g.bonuses, g.ramps)

	if p.Crashes >= g.cfg.Rules.CrashMax {
		g.gameOver = true
		g.audio.StopMusic()
		g.audio.Play(core.CueGameOver)
	}
}

// Stats is the data shown on the status line.
type Stats struct {
	Score    int
	Crashes  int
	CrashMax int
}

// Stats returns the current score line values.
func (g *Game) Stats() Stats {
	return Stats{
		Score:    g.player.Score,
		Crashes:  g.player.Crashes,
		CrashMax: g.cfg.Rules.CrashMax,
	}
}

// LastOutcome returns the contacts resolved on the most recent tick.
func (g *Game) LastOutcome() Outcome {
	return g.last
}

// Board returns the playfield size in units.
func (g *Game) Board() core.Board {
	return g.board
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.player.Score,
		Crashes:  g.player.Crashes,
		Ticks:    g.tickCount,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Quit:     g.quit,
	}
}
