package config

import (
	_ "embed"
)

//go:embed defaults/ski.yaml
var defaultSkiYAML []byte

// DefaultConfig returns the built-in ski configuration.
// Values follow the classic game: 30 ticks/s, two-second crash and jump.
func DefaultConfig() SkiConfig {
	return SkiConfig{
		Board: BoardConfig{
			Width:      0,
			Height:     0,
			CellWidth:  6,
			CellHeight: 12,
		},
		Player: PlayerConfig{
			Sprite: "skier",
			Speed:  5,
		},
		Pools: PoolsConfig{
			DownhillSpeed: 4,
			Hazard:        PoolConfig{Sprite: "tree", Capacity: 10, Points: 10},
			Bonus:         PoolConfig{Sprite: "flag", Capacity: 10, Points: 10},
			Ramp:          PoolConfig{Sprite: "ramp", Capacity: 3, Points: 10},
		},
		Rules: RulesConfig{
			CrashMax:        3,
			CrashSeconds:    2,
			JumpSeconds:     2,
			EndDelaySeconds: 5,
			RampRetrigger:   false,
		},
		Input: InputConfig{
			ReleaseTicks: 15,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Music:      true,
			Volume:     0.8,
			SampleRate: 44100,
		},
		Render: RenderConfig{
			Colors: map[string]string{
				"skier":         "bright_white",
				"skier-sw":      "bright_white",
				"skier-se":      "bright_white",
				"skier-stunned": "bright_red",
				"skier-shadow":  "gray",
				"tree":          "green",
				"flag":          "yellow",
				"ramp":          "bright_magenta",
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSkiYAML
}
