// ski is a downhill skiing arcade game for the terminal.
//
// Usage:
//
//	ski play                 - Hit the slope
//	ski scores               - Show the best runs
//	ski serve                - Start SSH server for remote play
//	ski assets               - Show where every sprite and sound comes from
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 30)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.ski/scores.db)
//	--log <path>    - Set log file (default: ~/.ski/ski.log)
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ski/internal/config"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ski",
	Short: "TUI Ski - Dodge trees, grab flags, jump ramps",
	Long: `TUI Ski is a downhill skiing arcade game for the terminal.

Steer around hazards, collect bonuses and take ramps to fly over
everything. Three crashes and the run is over.

Available commands:
  play     - Start a run
  scores   - View the best runs
  serve    - Start SSH server for remote play
  assets   - Show sprite and sound sources

Examples:
  ski play
  ski play --difficulty hard
  ski play --spectate :8080
  ski serve --ssh :2222
  ski scores --mine`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ski/scores.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.ski/ski.log", "Path to log file (empty disables logging)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(assetsCmd)
}

// fileLogger opens the log file. The terminal belongs to the game, so
// play mode never logs to stderr.
func fileLogger(path string) (*log.Logger, io.Closer) {
	path, err := config.ExpandHome(path)
	if err != nil || path == "" {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return log.New(io.Discard), io.NopCloser(nil)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), io.NopCloser(nil)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "ski",
	})
	return logger, f
}

// loadConfig reads the game config and applies a difficulty preset.
func loadConfig(path, difficulty string) (config.SkiConfig, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.SkiConfig{}, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.SkiConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// assetDir resolves the asset override directory.
func assetDir(path string) string {
	if path == "" {
		dir := config.UserDir()
		if dir == "" {
			return ""
		}
		return filepath.Join(dir, "assets")
	}
	expanded, err := config.ExpandHome(path)
	if err != nil {
		return ""
	}
	return expanded
}

// currentUser names the local player.
func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
