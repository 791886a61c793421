// pipes is a terminal pipe-connecting puzzle: rotate the pipe tiles so the
// water reaches the drain before it spills.
//
// Usage:
//
//	pipes list              - List game modes and campaign levels
//	pipes play [mode]       - Play a mode (default: pipes)
//	pipes menu              - Start menu to pick a mode interactively
//	pipes serve             - Start SSH server for remote play
//	pipes scores [mode]     - Show high scores
//	pipes gen               - Generate a board and print or save it
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.pipes/scores.db)
//	--debug         - Write a debug log to ~/.pipes/debug.log
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pipes/internal/config"
	"github.com/vovakirdan/tui-pipes/internal/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagDebug  bool

	// Game flags shared by play and menu
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pipes",
	Short: "Pipes - connect the pipes before the water arrives",
	Long: `Pipes is a terminal puzzle game. Water starts flowing from the source
after a short delay; rotate the pipe tiles so it reaches the drain.

Available commands:
  list     - Show game modes and campaign levels
  play     - Play a mode directly
  menu     - Interactive menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  gen      - Generate a board file

Examples:
  pipes play
  pipes play pipes_endless --difficulty hard
  pipes play --board ./my-board.yaml
  pipes menu
  pipes serve --ssh :2222
  pipes gen --cols 12 --rows 8 --scramble --out board.yaml`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pipes/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write a debug log to ~/.pipes/debug.log")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(genCmd)
}

// addGameFlags registers the flags that tune the game on cmd.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// applyGameFlags hands --config and --difficulty to the game package.
func applyGameFlags() error {
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	if flagConfig != "" {
		if _, err := config.LoadPipes(flagConfig); err != nil {
			return err
		}
	}
	pipes.SetConfigPath(flagConfig)
	pipes.SetDifficultyPreset(flagDifficulty)
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// newLogger returns the debug file logger, or a discarding one without --debug.
// The terminal belongs to Bubble Tea, so nothing is logged to stderr.
func newLogger() (*log.Logger, func()) {
	if !flagDebug {
		return log.New(io.Discard), func() {}
	}

	dir := config.UserDir()
	if dir == "" {
		fmt.Fprintln(os.Stderr, "Warning: no home directory, debug log disabled")
		return log.New(io.Discard), func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create %s: %v\n", dir, err)
		return log.New(io.Discard), func() {}
	}

	path := filepath.Join(dir, "debug.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open debug log: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "pipes",
	})
	return logger, func() { f.Close() }
}
