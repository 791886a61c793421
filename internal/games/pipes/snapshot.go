package pipes

import "github.com/vovakirdan/tui-pipes/internal/games/pipes/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
	StateNoBoard      GameStateType = "no_board"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick       uint64
	Mode       string // "campaign" or "endless"
	Level      int    // Current level (1-indexed), boards completed + 1 in endless
	Score      int
	Cursor     core.Coord
	Fast       bool
	Board      core.Snapshot
	FlowState  core.FlowState
	FlowCells  int // tiles entered by the flow
	BoardsDone int
	State      GameStateType
}

// level is the 1-indexed level in play. Endless runs count boards instead.
func (g *Game) level() int {
	if g.mode == ModeEndless {
		return g.boardsDone + 1
	}
	return g.levelIndex + 1
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		Level:      g.level(),
		Score:      g.score,
		Cursor:     g.cursor,
		Fast:       g.fast,
		BoardsDone: g.boardsDone,
		State:      g.stateType(),
	}
	if g.board != nil {
		s.Board = g.board.Snapshot()
		s.FlowState = g.board.State()
		s.FlowCells = len(g.board.FlowPath())
	}
	return s
}

func (g *Game) stateType() GameStateType {
	switch {
	case g.board == nil:
		return StateNoBoard
	case g.tooSmall:
		return StatePausedSmall
	case g.won:
		return StateWin
	case g.gameOver:
		return StateGameOver
	case g.levelCleared:
		return StateLevelCleared
	case g.paused:
		return StatePaused
	default:
		return StatePlaying
	}
}
