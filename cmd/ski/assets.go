package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ski/internal/assets"
	"github.com/vovakirdan/tui-ski/internal/audio"
)

var flagInventoryAssets string

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Show where every sprite and sound comes from",
	Long: `Resolve every sprite and sound the game uses and report its source.

Sprites come from <dir>/sprites/<name>.txt, the built-in set, or a
placeholder. Sounds come from <dir>/sounds/<name>.wav or the synthesizer.

Examples:
  ski assets
  ski assets --assets ./my-assets`,
	Args: cobra.NoArgs,
	Run:  runAssets,
}

func init() {
	assetsCmd.Flags().StringVar(&flagInventoryAssets, "assets", "", "Asset override directory (default ~/.ski/assets)")
	assetsCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runAssets(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig(flagConfig, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dir := assetDir(flagInventoryAssets)
	store := assets.NewStore(assets.Options{Dir: dir, Colors: cfg.Render.Colors})
	entries := store.Inventory(cfg.SpriteNames())

	if dir != "" {
		fmt.Printf("Asset directory: %s\n\n", dir)
	}

	// Calculate column widths
	maxNameLen := 6 // "Sprite" header
	for _, e := range entries {
		maxNameLen = max(maxNameLen, len(e.Name))
	}

	fmt.Printf("  %-*s  %-11s  %s\n", maxNameLen, "Sprite", "Source", "Size")
	fmt.Printf("  %-*s  %-11s  %s\n", maxNameLen, "------", "------", "----")
	for _, e := range entries {
		fmt.Printf("  %-*s  %-11s  %dx%d\n", maxNameLen, e.Name, e.Source, e.Cols, e.Rows)
	}

	sounds := audio.New(audio.Options{Dir: dir, SampleRate: cfg.Audio.SampleRate}).Sources()
	names := make([]string, 0, len(sounds))
	for name := range sounds {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxNameLen, "Sound", "Source")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "-----", "------")
	for _, name := range names {
		fmt.Printf("  %-*s  %s\n", maxNameLen, name, sounds[name])
	}
}
