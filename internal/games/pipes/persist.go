package pipes

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
)

// savedStateVersion is bumped when the saved layout changes incompatibly.
const savedStateVersion = 1

// ErrStateMismatch is returned when a saved game belongs to another mode or version.
var ErrStateMismatch = errors.New("pipes: saved game does not match this mode")

// savedState is the YAML document written by MarshalState.
type savedState struct {
	Version         int           `yaml:"version"`
	Mode            Mode          `yaml:"mode"`
	Level           int           `yaml:"level"` // 0-indexed campaign level
	BoardsDone      int           `yaml:"boards_done"`
	BoardName       string        `yaml:"board_name"`
	Score           int           `yaml:"score"`
	LevelStartScore int           `yaml:"level_start_score"`
	ScoredTiles     int           `yaml:"scored_tiles"`
	Tick            uint64        `yaml:"tick"`
	Cursor          core.Coord    `yaml:"cursor"`
	Fast            bool          `yaml:"fast"`
	FlowSpeed       float64       `yaml:"flow_speed"`
	Board           core.Snapshot `yaml:"board"`
}

// MarshalState encodes the run in progress. Finished runs and board-file games
// have nothing worth resuming and encode to nil.
func (g *Game) MarshalState() ([]byte, error) {
	if g.board == nil || g.boardFile != nil || g.gameOver || g.won {
		return nil, nil
	}

	s := savedState{
		Version:         savedStateVersion,
		Mode:            g.mode,
		Level:           g.levelIndex,
		BoardsDone:      g.boardsDone,
		BoardName:       g.boardName,
		Score:           g.score,
		LevelStartScore: g.levelStartScore,
		ScoredTiles:     g.scoredTiles,
		Tick:            g.tick,
		Cursor:          g.cursor,
		Fast:            g.fast,
		FlowSpeed:       g.board.FlowSpeed(),
		Board:           g.board.Snapshot(),
	}
	data, err := yaml.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("pipes: encode saved game: %w", err)
	}
	return data, nil
}

// UnmarshalState resumes a run saved by MarshalState. The game must have been
// Reset first; on error it is left untouched.
func (g *Game) UnmarshalState(data []byte) error {
	var s savedState
	if err := yaml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("pipes: decode saved game: %w", err)
	}
	if s.Version != savedStateVersion || s.Mode != g.mode {
		return fmt.Errorf("%w: version %d, mode %q", ErrStateMismatch, s.Version, s.Mode)
	}
	if g.mode == ModeCampaign && GetLevel(s.Level) == nil {
		return fmt.Errorf("%w: level %d", ErrStateMismatch, s.Level+1)
	}

	tuning := g.tuning(s.FlowSpeed, 0)
	board, err := core.Restore(s.Board, tuning)
	if err != nil {
		return err
	}

	g.board = board
	g.levelIndex = s.Level
	g.boardsDone = s.BoardsDone
	g.boardName = s.BoardName
	g.score = s.Score
	g.levelStartScore = s.LevelStartScore
	g.scoredTiles = s.ScoredTiles
	g.tick = s.Tick
	g.fast = s.Fast
	g.cursor = s.Cursor
	if !board.Grid().InBounds(g.cursor) {
		g.cursor = board.Start()
	}
	g.paused = false
	g.gameOver = board.Defeated()
	g.levelCleared = board.Completed()
	g.levelClearTicks = 0
	g.status = ""
	if g.gameOver {
		g.status = defeatMessage(board.Flow().Reason)
	}
	g.updateLayout()
	return nil
}
