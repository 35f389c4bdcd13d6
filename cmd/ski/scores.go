package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-ski/internal/platform/tui"
	"github.com/vovakirdan/tui-ski/internal/storage"
)

var (
	flagPlain bool
	flagMine  bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best runs recorded on this machine.

By default an interactive scoreboard opens; --plain prints a table.

Examples:
  ski scores
  ski scores --plain --limit 5
  ski scores --plain --mine`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagMine, "mine", false, "Only show your runs (with --plain)")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print (with --plain)")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	player := currentUser()

	if !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, player, flagFPS, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	filter := ""
	if flagMine {
		filter = player
	}
	runs, err := store.TopRuns(filter, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Best Runs - Ski Slope")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'ski play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-7s  %-7s  %s\n", "Rank", "Skier", "Score", "Crashes", "Date")
	fmt.Printf("  %-4s  %-12s  %-7s  %-7s  %s\n", "----", "-----", "-----", "-------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-12s  %-7d  %-7d  %s\n",
			i+1, r.Player, r.Score, r.Crashes, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, ok, err := store.HighScore(); err == nil && ok {
		fmt.Printf("Best: %d\n", best)
	}
}
