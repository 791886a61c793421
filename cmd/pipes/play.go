package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes"
	"github.com/vovakirdan/tui-pipes/internal/platform/tui"
	"github.com/vovakirdan/tui-pipes/internal/registry"
	"github.com/vovakirdan/tui-pipes/internal/storage"
)

var (
	flagBoard   string
	flagLevel   int
	flagEndless bool
	flagNew     bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game",
	Long: `Start playing. The mode defaults to the campaign ("pipes").
A run left unfinished is resumed unless --new, --level or --board is given.

Controls:
  Arrows/WASD/hjkl  - Move the cursor
  X/Space/E         - Rotate clockwise
  Z                 - Rotate counter-clockwise
  Mouse             - Left click rotates clockwise, right click counter-clockwise
  Enter             - Release the flow now / next board
  F                 - Toggle fast flow
  P                 - Pause
  R                 - Restart the board
  Esc               - Back (when paused or over)
  Q/Ctrl+C          - Save and quit

Difficulty options:
  easy   - Longer delay, slower flow
  normal - Config values as written
  hard   - Shorter delay, faster flow
  fixed  - No progression

Examples:
  pipes play
  pipes play --level 5
  pipes play --endless --difficulty hard
  pipes play --board ./boards/spiral.yaml
  pipes play --config ./my-pipes.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().StringVar(&flagBoard, "board", "", "Play a single board file")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start at (1-indexed)")
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play endless mode")
	playCmd.Flags().BoolVar(&flagNew, "new", false, "Start a new run instead of resuming")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := pipes.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if flagEndless {
		gameID = pipes.EndlessGameID
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'pipes list' to see available modes.")
		os.Exit(1)
	}
	if flagLevel < 0 || flagLevel > pipes.LevelCount() {
		fmt.Fprintf(os.Stderr, "Error: level must be between 1 and %d\n", pipes.LevelCount())
		os.Exit(1)
	}
	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := pipes.SetBoardFile(flagBoard); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagLevel > 0 {
		pipes.SetStartLevel(flagLevel)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	opts := tui.ModelOptions{
		StateKey: tui.StateKey("", gameID),
		Resume:   !flagNew && flagLevel == 0,
		Logger:   logger,
	}
	if flagBoard != "" {
		// Board files are one-off puzzles; keep the campaign save untouched.
		opts.StateKey = ""
	}

	_, runErr := tui.Run(game, store, runtimeConfig(), opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
