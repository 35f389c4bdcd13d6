package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() is invalid: %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	def := DefaultConfig()
	if cfg.Pools != def.Pools || cfg.Rules != def.Rules || cfg.Player != def.Player || cfg.Board != def.Board {
		t.Errorf("embedded YAML differs from DefaultConfig():\n got %+v\nwant %+v", cfg, def)
	}
	if len(cfg.Render.Colors) != len(def.Render.Colors) {
		t.Errorf("embedded colors = %d entries, expected %d", len(cfg.Render.Colors), len(def.Render.Colors))
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("rules:\n  crash_max: 7\npools:\n  ramp:\n    capacity: 1\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Rules.CrashMax != 7 {
		t.Errorf("crash_max = %d, expected 7", cfg.Rules.CrashMax)
	}
	if cfg.Pools.Ramp.Capacity != 1 {
		t.Errorf("ramp capacity = %d, expected 1", cfg.Pools.Ramp.Capacity)
	}
	// Untouched keys keep defaults
	if cfg.Pools.Ramp.Sprite != "ramp" || cfg.Pools.Hazard.Capacity != 10 {
		t.Errorf("missing keys should keep defaults, got %+v", cfg.Pools)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("rules:\n  crash_max: 0\nplayer:\n  speed: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(bad)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "crash_max") || !strings.Contains(err.Error(), "player.speed") {
		t.Errorf("error should report every invalid field, got %v", err)
	}
}

func TestDurations(t *testing.T) {
	r := DefaultConfig().Rules

	if got := r.CrashTicks(30); got != 60 {
		t.Errorf("CrashTicks(30) = %d, expected 60", got)
	}
	if got := r.JumpTicks(30); got != 60 {
		t.Errorf("JumpTicks(30) = %d, expected 60", got)
	}
	if got := r.CrashTicks(0); got != 0 {
		t.Errorf("CrashTicks(0) = %d, expected 0", got)
	}
	if got := r.EndDelay(); got != 5*time.Second {
		t.Errorf("EndDelay() = %v, expected 5s", got)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		crashMax int
		hazards  int
	}{
		{DifficultyEasy, 5, 6},
		{DifficultyNormal, 3, 10},
		{DifficultyHard, 2, 14},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Rules.CrashMax != tc.crashMax || cfg.Pools.Hazard.Capacity != tc.hazards {
				t.Errorf("preset %s: crash_max=%d hazards=%d", tc.preset, cfg.Rules.CrashMax, cfg.Pools.Hazard.Capacity)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset %s produced invalid config: %v", tc.preset, err)
			}
		})
	}

	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
	if p, err := ParsePreset(""); err != nil || p != "" {
		t.Error("empty preset should mean config default")
	}
}

func TestSpriteNames(t *testing.T) {
	names := DefaultConfig().SpriteNames()
	want := []string{"skier", "skier-sw", "skier-se", "skier-shadow", "skier-stunned", "tree", "flag", "ramp"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("SpriteNames() = %v, expected %v", names, want)
	}
}
