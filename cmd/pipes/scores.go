package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes"
	"github.com/vovakirdan/tui-pipes/internal/registry"
	"github.com/vovakirdan/tui-pipes/internal/storage"
)

var (
	flagScoresAll   bool
	flagScoresClear bool
	flagScoresStats bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs",
	Long: `Display the top 10 runs of a mode (default: pipes) with the level
reached and the boards completed.

Examples:
  pipes scores
  pipes scores pipes_endless --all
  pipes scores --stats
  pipes scores pipes --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every recorded run")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all runs of the mode")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show statistics for every mode")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := pipes.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'pipes list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresStats:
		printStats(store)
	case flagScoresClear:
		if err := store.ClearRuns(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			return
		}
		fmt.Printf("Cleared all runs for %s.\n", title)
	default:
		printRuns(store, gameID, title)
	}
}

func printRuns(store *storage.Store, gameID, title string) {
	var (
		runs []storage.Run
		err  error
	)
	if flagScoresAll {
		runs, err = store.AllRuns(gameID)
	} else {
		runs, err = store.TopRuns(gameID, 10)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'pipes play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-7s  %s\n", "Rank", "Score", "Level", "Boards", "Result", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-7s  %s\n", "----", "-----", "-----", "------", "------", "----")
	for i, r := range runs {
		result := "lost"
		if r.Won {
			result = "cleared"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-6d  %-7s  %s\n",
			i+1, r.Score, r.Level, r.Boards, result, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.BestScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}

func printStats(store *storage.Store) {
	all, err := store.AllStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}

	fmt.Println("Statistics")
	fmt.Println()
	fmt.Printf("  %-14s  %5s  %7s  %6s  %7s  %6s  %6s  %s\n",
		"Mode", "Runs", "Cleared", "Best", "Average", "Level", "Boards", "Last played")
	for _, g := range registry.List() {
		st, ok := all[g.ID]
		if !ok {
			fmt.Printf("  %-14s  %5d  %7d  %6s  %7s  %6s  %6d  %s\n", g.ID, 0, 0, "-", "-", "-", 0, "never")
			continue
		}
		fmt.Printf("  %-14s  %5d  %7d  %6d  %7.0f  %6d  %6d  %s\n",
			g.ID, st.Runs, st.Wins, st.BestScore, st.AvgScore, st.BestLevel, st.TotalBoards,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
}
