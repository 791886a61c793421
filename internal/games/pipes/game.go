// Package pipes provides the pipe-connecting puzzle for the platform: rotate
// tiles to route the flow from the source to the drain before it spills.
package pipes

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-pipes/internal/config"
	platformcore "github.com/vovakirdan/tui-pipes/internal/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/boards"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
	"github.com/vovakirdan/tui-pipes/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Registered game identifiers.
const (
	GameID        = "pipes"
	EndlessGameID = "pipes_endless"
)

const levelClearSeconds = 2 // overlay time before the next board starts

// Game implements the pipes puzzle.
type Game struct {
	mode       Mode
	cfg        config.PipesConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	tick       uint64
	dt         float64
	tickRate   int

	board           *core.Board
	boardFile       *boards.Board // set when playing a single board file
	boardName       string
	levelIndex      int // Current level (0-indexed), campaign only
	startLevel      int // Picked with SelectLevel, consumed by Reset
	boardsDone      int
	score           int
	levelStartScore int
	scoredTiles     int // tiles of the current board already paid out
	cursor          core.Coord
	fast            bool

	// Screen dimensions
	screenW int
	screenH int
	layout  layout

	// Game state flags
	gameOver        bool
	won             bool
	paused          bool
	tooSmall        bool
	levelCleared    bool
	levelClearTicks int
	status          string
}

// Package-level variables for CLI configuration
var (
	configPath         string
	difficultyPreset   config.DifficultyPreset
	selectedStartLevel int
	selectedBoard      *boards.Board
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names use the config default.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if preset == "" || !ok {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetStartLevel sets the starting level (1-indexed) for the next campaign
// game of this process. 0 means start from the beginning. Servers running
// several games pick levels per game with SelectLevel instead.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// SetBoardFile makes campaign games play the given board file instead of the
// level list. The file is validated up front; an empty path clears it.
func SetBoardFile(path string) error {
	if path == "" {
		selectedBoard = nil
		return nil
	}
	b, err := boards.NewLoader("").LoadFile(path)
	if err != nil {
		return err
	}
	if _, err := b.NewBoard(core.Config{}); err != nil {
		return fmt.Errorf("board %s: %w", path, err)
	}
	selectedBoard = &b
	return nil
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(EndlessGameID, func() registry.Game {
		return NewEndless()
	})
}

// New creates a new campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// SelectLevel makes the next Reset of this game start at the given campaign
// level (1-indexed). It takes precedence over SetStartLevel.
func (g *Game) SelectLevel(level int) {
	g.startLevel = level
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return EndlessGameID
	}
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Pipes (Endless)"
	}
	return "Pipes"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc platformcore.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.dt = rc.TickSeconds()
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.tick = 0
	g.score = 0
	g.boardsDone = 0
	g.gameOver = false
	g.won = false
	g.paused = false

	cfg, err := config.LoadPipes(configPath)
	if err != nil {
		cfg = config.DefaultPipesConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPipesPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.boardFile = nil
	if g.mode == ModeCampaign && selectedBoard != nil {
		b := *selectedBoard
		g.boardFile = &b
	}

	// Apply selected start level (campaign only)
	start := g.startLevel
	g.startLevel = 0
	if start == 0 && g.mode == ModeCampaign && selectedStartLevel > 0 {
		start = selectedStartLevel
		selectedStartLevel = 0 // Reset after use
	}
	g.levelIndex = 0
	if g.mode == ModeCampaign && start > 0 && start <= LevelCount() {
		g.levelIndex = start - 1
	}

	g.loadLevel()
}

// loadLevel builds the board for the current level and clears per-board state.
func (g *Game) loadLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0
	g.fast = false
	g.scoredTiles = 0
	g.levelStartScore = g.score
	g.status = ""

	board, name, err := g.buildBoard()
	if err != nil {
		g.board = nil
		g.gameOver = true
		g.status = err.Error()
		return
	}

	g.board = board
	g.boardName = name
	g.cursor = board.Start()
	g.updateLayout()
}

// buildBoard creates the board for the current mode and level.
func (g *Game) buildBoard() (*core.Board, string, error) {
	switch {
	case g.boardFile != nil:
		b, err := g.boardFile.NewBoard(g.tuning(g.cfg.Flow.Speed, g.cfg.Flow.Delay))
		name := g.boardFile.Name
		if name == "" {
			name = g.boardFile.ID
		}
		return b, name, err

	case g.mode == ModeEndless:
		p := g.progress()
		cols, rows := g.difficulty.BoardSize(g.cfg.Board.Cols, g.cfg.Board.Rows, p)
		cols, rows = g.fitSize(cols, rows)
		tuning := g.tuning(
			g.difficulty.Speed(g.cfg.Flow.Speed, p),
			g.difficulty.Delay(g.cfg.Flow.Delay, p),
		)
		b, err := g.generate(cols, rows, tuning)
		return b, fmt.Sprintf("Board %d", g.boardsDone+1), err

	default:
		lvl := GetLevel(g.levelIndex)
		if lvl == nil {
			lvl = GetLevel(LevelCount() - 1)
		}
		tuning := g.tuning(g.cfg.Flow.Speed*lvl.Speed, g.cfg.Flow.Delay*lvl.Delay)
		if lvl.Board == "" {
			b, err := g.generate(lvl.Cols, lvl.Rows, tuning)
			return b, lvl.Name, err
		}
		file, err := boards.Builtin().LoadByID(lvl.Board)
		if err != nil {
			return nil, "", err
		}
		b, err := file.NewBoard(tuning)
		return b, lvl.Name, err
	}
}

// tuning returns the board construction settings shared by every level.
func (g *Game) tuning(speed, delay float64) core.Config {
	return core.Config{
		FlowSpeed:     speed,
		FlowDelay:     &delay,
		MaxCarveSteps: g.cfg.Generator.MaxCarveSteps,
		Scramble:      g.cfg.Generator.Scramble,
		Rand:          g.rng,
	}
}

// generate carves a fresh maze, scrambled when the tuning asks for it.
func (g *Game) generate(cols, rows int, tuning core.Config) (*core.Board, error) {
	tuning.Cols = cols
	tuning.Rows = rows
	return core.NewBoard(tuning)
}

// fitSize caps a grown endless board to what the screen can show, never
// going below the configured base size.
func (g *Game) fitSize(cols, rows int) (int, int) {
	maxCols := (g.screenW - 2) / compactTiles.w
	maxRows := (g.screenH - hudHeight - 2) / compactTiles.h
	cols = platformcore.Min(cols, platformcore.Max(maxCols, g.cfg.Board.Cols))
	rows = platformcore.Min(rows, platformcore.Max(maxRows, g.cfg.Board.Rows))
	return cols, rows
}

func (g *Game) progress() config.Progress {
	return config.Progress{Boards: g.boardsDone, Score: g.score, Ticks: int(g.tick)}
}

// updateLayout recomputes where the board is drawn.
func (g *Game) updateLayout() {
	if g.board == nil {
		return
	}
	l, ok := computeLayout(g.screenW, g.screenH, g.board.Cols(), g.board.Rows())
	g.layout = l
	g.tooSmall = !ok
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.updateLayout()
}

// WantsMouse reports that tiles can be rotated by clicking.
func (g *Game) WantsMouse() bool {
	return true
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if in.Has(platformcore.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}

	if g.board == nil || g.tooSmall || g.paused || g.gameOver || g.won {
		return platformcore.StepResult{State: g.State()}
	}

	var events []platformcore.Event

	// Level cleared overlay, auto-advance after a short pause
	if g.levelCleared {
		g.levelClearTicks++
		if in.Has(platformcore.ActionConfirm) || g.levelClearTicks >= levelClearSeconds*g.tickRate {
			events = g.advanceLevel(events)
		}
		return platformcore.StepResult{State: g.State(), Events: events}
	}

	if in.Has(platformcore.ActionRestart) {
		g.score = g.levelStartScore
		g.loadLevel()
		return platformcore.StepResult{State: g.State()}
	}

	g.handleCursor(in)
	g.handleRotation(in)
	if in.Has(platformcore.ActionFastForward) {
		g.toggleFast()
	}
	if in.Has(platformcore.ActionConfirm) {
		g.board.SkipDelay()
	}

	g.board.Update(g.dt)
	g.payFilledTiles()

	switch {
	case g.board.Completed():
		g.score += g.cfg.Scoring.CompletionBonus
		g.boardsDone++
		g.levelCleared = true
		g.levelClearTicks = 0
		events = append(events, platformcore.Event{Kind: platformcore.EventBoardCompleted, Detail: g.boardName})
	case g.board.Defeated():
		g.gameOver = true
		g.status = defeatMessage(g.board.Flow().Reason)
		events = append(events, platformcore.Event{Kind: platformcore.EventBoardLost, Detail: g.status})
	}

	return platformcore.StepResult{State: g.State(), Events: events}
}

// handleCursor moves the tile cursor, clamped to the board.
func (g *Game) handleCursor(in platformcore.InputFrame) {
	c := g.cursor
	if in.Has(platformcore.ActionUp) {
		c.Row--
	}
	if in.Has(platformcore.ActionDown) {
		c.Row++
	}
	if in.Has(platformcore.ActionLeft) {
		c.Col--
	}
	if in.Has(platformcore.ActionRight) {
		c.Col++
	}
	c.Col = platformcore.Clamp(c.Col, 0, g.board.Cols()-1)
	c.Row = platformcore.Clamp(c.Row, 0, g.board.Rows()-1)
	g.cursor = c
}

// handleRotation applies keyboard and mouse rotations.
func (g *Game) handleRotation(in platformcore.InputFrame) {
	if in.Has(platformcore.ActionRotateCW) {
		g.board.PlayerInput(g.cursor, core.RotateClockwise)
	}
	if in.Has(platformcore.ActionRotateCCW) {
		g.board.PlayerInput(g.cursor, core.RotateCounterClockwise)
	}

	for _, click := range in.Clicks {
		col, row, ok := g.layout.board.CellAt(click.X, click.Y, g.layout.tileW, g.layout.tileH)
		if !ok {
			continue
		}
		g.cursor = core.C(col, row)
		switch click.Button {
		case platformcore.MouseLeft:
			g.board.PlayerInput(g.cursor, core.RotateClockwise)
		case platformcore.MouseRight:
			g.board.PlayerInput(g.cursor, core.RotateCounterClockwise)
		}
	}
}

func (g *Game) toggleFast() {
	g.fast = !g.fast
	if g.fast {
		g.board.SetFlowSpeedMultiplier(g.cfg.Flow.FastMultiplier)
	} else {
		g.board.SetFlowSpeedMultiplier(1)
	}
}

// payFilledTiles scores tiles the flow has filled since the last tick.
func (g *Game) payFilledTiles() {
	filled := g.board.Flow().FilledCount()
	if filled > g.scoredTiles {
		g.score += (filled - g.scoredTiles) * g.cfg.Scoring.TilePoints
		g.scoredTiles = filled
	}
}

// advanceLevel moves to the next board, or ends the run after the last one.
func (g *Game) advanceLevel(events []platformcore.Event) []platformcore.Event {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.boardFile != nil {
		g.won = true
		return events
	}
	if g.mode == ModeCampaign {
		if g.levelIndex >= LevelCount()-1 {
			g.won = true
			return events
		}
		g.levelIndex++
	}

	g.loadLevel()
	return append(events, platformcore.Event{Kind: platformcore.EventLevelStarted, Detail: g.boardName})
}

func defeatMessage(r core.DefeatReason) string {
	switch r {
	case core.DefeatOutOfBounds:
		return "The flow spilled off the board"
	case core.DefeatBlocked:
		return "The flow hit a closed pipe"
	case core.DefeatDeadEnd:
		return "The flow reached a dead end"
	default:
		return "The pipe burst"
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
		Status:   g.status,
		Level:    g.level(),
		Boards:   g.boardsDone,
		Won:      g.won,
	}
}

// Board returns the board in play, nil when it could not be built.
func (g *Game) Board() *core.Board {
	return g.board
}

// Cursor returns the selected tile.
func (g *Game) Cursor() core.Coord {
	return g.cursor
}
