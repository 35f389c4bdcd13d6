package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-ski/internal/assets"
	"github.com/vovakirdan/tui-ski/internal/audio"
	"github.com/vovakirdan/tui-ski/internal/config"
	"github.com/vovakirdan/tui-ski/internal/core"
	"github.com/vovakirdan/tui-ski/internal/platform/tui"
	"github.com/vovakirdan/tui-ski/internal/spectate"
	"github.com/vovakirdan/tui-ski/internal/storage"
)

var (
	flagConfig      string
	flagDifficulty  string
	flagAssets      string
	flagMute        bool
	flagPlayer      string
	flagSpectate    string
	flagWatchAssets bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Ski downhill until you crash too often.

Controls:
  Arrows/WASD/HJKL - Steer (keys release shortly after you let go)
  Space            - Stop steering
  P/Esc            - Pause
  R                - Ski again (on the scoreboard)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More crashes allowed, fewer hazards, slower slope
  normal - Config values
  hard   - Two crashes, dense hazards, faster slope

Examples:
  ski play
  ski play --difficulty easy
  ski play --config ./my-ski.yaml
  ski play --assets ./my-assets --watch-assets
  ski play --spectate :8080 --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagAssets, "assets", "", "Asset override directory (default ~/.ski/assets)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with your runs (default: login name)")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a spectator feed on this address (e.g. :8080)")
	playCmd.Flags().BoolVar(&flagWatchAssets, "watch-assets", false, "Reload sprites when their files change")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(flagConfig, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, logFile := fileLogger(flagLogPath)
	defer logFile.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	player := flagPlayer
	if player == "" {
		player = currentUser()
	}

	dir := assetDir(flagAssets)
	sprites := assets.NewStore(assets.Options{
		Dir:    dir,
		Colors: cfg.Render.Colors,
		Logger: logger,
	})

	sink := newAudio(cfg, dir, logger)
	if closer, ok := sink.(*audio.Player); ok {
		defer closer.Close()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	opts := tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Sprites: sprites,
		Audio:   sink,
		Store:   store,
		Player:  player,
		Logger:  logger,
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if flagSpectate != "" {
		hub := spectate.NewHub(logger)
		srv := &spectate.Server{Addr: flagSpectate, Hub: hub}
		go func() {
			if serveErr := srv.ListenAndServe(ctx); serveErr != nil && !errors.Is(serveErr, context.Canceled) {
				logger.Error("spectator server stopped", "err", serveErr)
			}
		}()
		opts.Hub = hub
	}

	if flagWatchAssets {
		if watcher := newWatcher(sprites, logger); watcher != nil {
			defer watcher.Close()
			opts.Watcher = watcher
		}
	}

	runErr := tui.Run(opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// newAudio picks the sound sink. Speaker failures fall back to silence.
func newAudio(cfg config.SkiConfig, dir string, logger *log.Logger) core.AudioSink {
	if flagMute || !cfg.Audio.Enabled {
		return core.NopAudio{}
	}

	p := audio.New(audio.Options{
		Dir:        dir,
		SampleRate: cfg.Audio.SampleRate,
		Volume:     cfg.Audio.Volume,
		Music:      cfg.Audio.Music,
		Logger:     logger,
	})
	if err := p.Init(); err != nil {
		logger.Warn("audio unavailable, playing silently", "err", err)
		return core.NopAudio{}
	}
	return p
}

func newWatcher(sprites *assets.Store, logger *log.Logger) *assets.Watcher {
	dir := sprites.SpriteDir()
	if dir == "" {
		logger.Warn("no asset directory to watch")
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("cannot create sprite directory", "dir", dir, "err", err)
		return nil
	}

	w, err := assets.NewWatcher(dir)
	if err != nil {
		logger.Warn("cannot watch sprites", "dir", dir, "err", err)
		return nil
	}
	logger.Info("watching sprites", "dir", dir)
	return w
}
