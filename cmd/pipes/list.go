package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes"
	"github.com/vovakirdan/tui-pipes/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and campaign levels",
	Long:  `Shows the registered game modes and the boards of the campaign.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Game modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Campaign:")
	fmt.Println()
	for i := 0; i < pipes.LevelCount(); i++ {
		lvl := pipes.GetLevel(i)
		cols, rows := lvl.Size()
		fmt.Printf("  %2d. %-18s %2dx%-2d  speed x%.1f\n", lvl.ID, lvl.Name, cols, rows, lvl.Speed)
	}

	fmt.Println()
	fmt.Println("Run 'pipes play <id>' to play, or 'pipes play --level <n>' to start at a level.")
}
