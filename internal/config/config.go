// Package config provides YAML-based game configuration loading and
// difficulty presets for the ski game.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// SkiConfig contains all configuration for the ski game.
type SkiConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Player PlayerConfig `yaml:"player"`
	Pools  PoolsConfig  `yaml:"pools"`
	Rules  RulesConfig  `yaml:"rules"`
	Input  InputConfig  `yaml:"input"`
	Audio  AudioConfig  `yaml:"audio"`
	Render RenderConfig `yaml:"render"`
}

// BoardConfig defines the playfield in board units.
type BoardConfig struct {
	Width      int `yaml:"width"`       // 0 = fit terminal width
	Height     int `yaml:"height"`      // 0 = fit terminal height
	CellWidth  int `yaml:"cell_width"`  // Units per terminal column
	CellHeight int `yaml:"cell_height"` // Units per terminal row
}

// PlayerConfig defines the skier.
type PlayerConfig struct {
	Sprite string `yaml:"sprite"` // Base sprite name; variants use -sw, -se, -shadow, -stunned
	Speed  int    `yaml:"speed"`  // Units per tick while a direction is held
}

// Variant returns the sprite name for a player pose suffix ("" for straight).
func (p PlayerConfig) Variant(suffix string) string {
	if suffix == "" {
		return p.Sprite
	}
	return p.Sprite + "-" + suffix
}

// PoolConfig defines one category of scrolling obstacles.
type PoolConfig struct {
	Sprite   string `yaml:"sprite"`
	Capacity int    `yaml:"capacity"`
	Points   int    `yaml:"points"`
}

// PoolsConfig groups the three obstacle categories.
type PoolsConfig struct {
	DownhillSpeed int        `yaml:"downhill_speed"` // Shared scroll speed, units per tick
	Hazard        PoolConfig `yaml:"hazard"`
	Bonus         PoolConfig `yaml:"bonus"`
	Ramp          PoolConfig `yaml:"ramp"`
}

// RulesConfig defines crash, jump and end-of-game rules.
type RulesConfig struct {
	CrashMax        int     `yaml:"crash_max"`
	CrashSeconds    float64 `yaml:"crash_seconds"`
	JumpSeconds     float64 `yaml:"jump_seconds"`
	EndDelaySeconds float64 `yaml:"end_delay_seconds"`
	RampRetrigger   bool    `yaml:"ramp_retrigger"` // Allow a held ramp contact to score again
}

// CrashTicks converts the crash penalty to ticks at the given rate.
func (r RulesConfig) CrashTicks(tickRate int) int {
	return secondsToTicks(r.CrashSeconds, tickRate)
}

// JumpTicks converts the time to reach jump peak to ticks at the given rate.
func (r RulesConfig) JumpTicks(tickRate int) int {
	return secondsToTicks(r.JumpSeconds, tickRate)
}

// EndDelay returns the pause after the game-over cue.
func (r RulesConfig) EndDelay() time.Duration {
	return time.Duration(r.EndDelaySeconds * float64(time.Second))
}

func secondsToTicks(seconds float64, tickRate int) int {
	if seconds <= 0 || tickRate <= 0 {
		return 0
	}
	return int(math.Round(seconds * float64(tickRate)))
}

// InputConfig defines how held keys are turned into releases.
type InputConfig struct {
	ReleaseTicks int `yaml:"release_ticks"` // Ticks without key repeat before a release is synthesized
}

// AudioConfig defines sound output.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Music      bool    `yaml:"music"`
	Volume     float64 `yaml:"volume"` // 0.0 - 1.0
	SampleRate int     `yaml:"sample_rate"`
}

// RenderConfig maps sprite names to color names.
type RenderConfig struct {
	Colors map[string]string `yaml:"colors"`
}

// Validate reports every invalid value in the config.
func (c SkiConfig) Validate() error {
	var errs []error
	if c.Board.Width < 0 || c.Board.Height < 0 {
		errs = append(errs, fmt.Errorf("board size must not be negative (%dx%d)", c.Board.Width, c.Board.Height))
	}
	if c.Board.CellWidth < 1 || c.Board.CellHeight < 1 {
		errs = append(errs, fmt.Errorf("cell size must be at least 1x1 (%dx%d)", c.Board.CellWidth, c.Board.CellHeight))
	}
	if c.Player.Sprite == "" {
		errs = append(errs, errors.New("player.sprite is required"))
	}
	if c.Player.Speed <= 0 {
		errs = append(errs, fmt.Errorf("player.speed must be positive, got %d", c.Player.Speed))
	}
	if c.Pools.DownhillSpeed <= 0 {
		errs = append(errs, fmt.Errorf("pools.downhill_speed must be positive, got %d", c.Pools.DownhillSpeed))
	}
	for name, p := range map[string]PoolConfig{"hazard": c.Pools.Hazard, "bonus": c.Pools.Bonus, "ramp": c.Pools.Ramp} {
		if p.Capacity < 0 {
			errs = append(errs, fmt.Errorf("pools.%s.capacity must not be negative, got %d", name, p.Capacity))
		}
		if p.Sprite == "" {
			errs = append(errs, fmt.Errorf("pools.%s.sprite is required", name))
		}
	}
	if c.Rules.CrashMax < 1 {
		errs = append(errs, fmt.Errorf("rules.crash_max must be at least 1, got %d", c.Rules.CrashMax))
	}
	if c.Rules.CrashSeconds < 0 || c.Rules.JumpSeconds < 0 || c.Rules.EndDelaySeconds < 0 {
		errs = append(errs, errors.New("rules durations must not be negative"))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be within [0, 1], got %g", c.Audio.Volume))
	}
	return errors.Join(errs...)
}

// SpriteNames lists every sprite the config refers to.
func (c SkiConfig) SpriteNames() []string {
	return []string{
		c.Player.Variant(""),
		c.Player.Variant("sw"),
		c.Player.Variant("se"),
		c.Player.Variant("shadow"),
		c.Player.Variant("stunned"),
		c.Pools.Hazard.Sprite,
		c.Pools.Bonus.Sprite,
		c.Pools.Ramp.Sprite,
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI value to a preset. Empty input means "use config".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *SkiConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Rules.CrashMax = 5
		cfg.Pools.Hazard.Capacity = 6
		cfg.Pools.DownhillSpeed = 3
	case DifficultyHard:
		cfg.Rules.CrashMax = 2
		cfg.Pools.Hazard.Capacity = 14
		cfg.Pools.DownhillSpeed = 5
	}
}
