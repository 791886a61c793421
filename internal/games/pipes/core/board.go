package core

import (
	"fmt"
	"math"
	"math/rand"
)

// Board defaults.
const (
	DefaultCols      = 10
	DefaultRows      = 7
	DefaultFlowSpeed = 0.25 // Tiles per second at multiplier 1
	DefaultFlowDelay = 10.0 // Seconds before the flow starts
)

// RotateDirection is the direction of a player rotation.
type RotateDirection uint8

const (
	RotateNone RotateDirection = iota
	RotateClockwise
	RotateCounterClockwise
)

// Turns returns the Mask.Rotate argument for this direction.
func (d RotateDirection) Turns() int {
	switch d {
	case RotateClockwise:
		return 3
	case RotateCounterClockwise:
		return 1
	default:
		return 0
	}
}

// FlowState is the state of the flow state machine.
type FlowState uint8

const (
	StateDelayed FlowState = iota
	StateFlowing
	StateDefeated
	StateCompleted
)

// String returns the string representation of a flow state.
func (s FlowState) String() string {
	switch s {
	case StateDelayed:
		return "delayed"
	case StateFlowing:
		return "flowing"
	case StateDefeated:
		return "defeated"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Config describes how to build a Board. Every field is optional:
//
//   - Cols, Rows: 0 means DefaultCols x DefaultRows.
//   - Tiles: nil means a fresh random board (Reset). When set, Start is
//     required and the board is restored as-is after validation.
//   - FlowSpeedMultiplier: nil means 1.
//   - TimeUntilFlow: nil means FlowDelay.
//   - FlowSpeed: 0 means DefaultFlowSpeed.
//   - FlowDelay: nil means DefaultFlowDelay.
//   - MaxCarveSteps: 0 means DefaultMaxCarveSteps.
//   - Scramble: every Reset rotates the off-path tiles after carving, so a
//     fresh board has to be solved by the player.
//   - Rand: nil means a math/rand source seeded with Seed.
type Config struct {
	Cols  int
	Rows  int
	Tiles []Mask
	Start *Coord
	End   *Coord

	FlowLength          float64
	FlowSpeedMultiplier *float64
	TimeUntilFlow       *float64
	Defeated            bool

	FlowSpeed     float64
	FlowDelay     *float64
	MaxCarveSteps int
	Scramble      bool

	Seed int64
	Rand Rand
}

// Board owns the tile array and flow progress of one game.
// It is not safe for concurrent use.
type Board struct {
	grid  Grid
	tiles []Mask
	start Coord
	end   Coord

	hasEnd    bool
	solution  []Coord
	flow      FlowResult
	defeated  bool
	completed bool

	flowLength          float64
	flowSpeedMultiplier float64
	timeUntilFlow       float64

	flowSpeed     float64
	flowDelay     float64
	maxCarveSteps int
	scramble      bool
	rng           Rand
}

// NewBoard builds a board from cfg. A fresh board is generated when cfg.Tiles
// is nil; otherwise the supplied state is validated and restored.
func NewBoard(cfg Config) (*Board, error) {
	cols, rows := cfg.Cols, cfg.Rows
	if cols == 0 && rows == 0 {
		cols, rows = DefaultCols, DefaultRows
	}
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %w: %dx%d", ErrMalformedSnapshot, ErrInvalidDimensions, cols, rows)
	}

	b := &Board{
		grid:          NewGrid(cols, rows),
		flowSpeed:     DefaultFlowSpeed,
		flowDelay:     DefaultFlowDelay,
		maxCarveSteps: DefaultMaxCarveSteps,
		scramble:      cfg.Scramble,
		rng:           cfg.Rand,
	}
	if cfg.FlowSpeed > 0 {
		b.flowSpeed = cfg.FlowSpeed
	}
	if cfg.FlowDelay != nil && *cfg.FlowDelay >= 0 {
		b.flowDelay = *cfg.FlowDelay
	}
	if cfg.MaxCarveSteps > 0 {
		b.maxCarveSteps = cfg.MaxCarveSteps
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(cfg.Seed))
	}

	if cfg.Tiles == nil {
		b.Reset()
		return b, nil
	}

	if err := b.restore(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	return b, nil
}

// restore validates and installs externally supplied state.
func (b *Board) restore(cfg Config) error {
	if len(cfg.Tiles) != b.grid.Len() {
		return fmt.Errorf("%w: got %d, want %d", ErrTileCount, len(cfg.Tiles), b.grid.Len())
	}
	for i, m := range cfg.Tiles {
		if !m.IsValid() {
			return fmt.Errorf("%w: %s at %s", ErrInvalidTile, m, b.grid.CoordOf(i))
		}
	}

	if cfg.Start == nil {
		return fmt.Errorf("%w: start is missing", ErrCoordOutOfBounds)
	}
	if !b.grid.InBounds(*cfg.Start) {
		return fmt.Errorf("%w: start %s", ErrCoordOutOfBounds, *cfg.Start)
	}
	if startIdx, _ := b.grid.Index(*cfg.Start); !cfg.Tiles[startIdx].IsStart() {
		return fmt.Errorf("%w: got %s", ErrInvalidStart, cfg.Tiles[startIdx])
	}
	if cfg.End != nil {
		if !b.grid.InBounds(*cfg.End) {
			return fmt.Errorf("%w: end %s", ErrCoordOutOfBounds, *cfg.End)
		}
		if endIdx, _ := b.grid.Index(*cfg.End); !cfg.Tiles[endIdx].IsStart() {
			return fmt.Errorf("%w: got %s at %s", ErrInvalidEnd, cfg.Tiles[endIdx], *cfg.End)
		}
	}

	multiplier := 1.0
	if cfg.FlowSpeedMultiplier != nil {
		multiplier = *cfg.FlowSpeedMultiplier
	}
	timeUntilFlow := b.flowDelay
	if cfg.TimeUntilFlow != nil {
		timeUntilFlow = *cfg.TimeUntilFlow
	}
	for _, v := range []float64{cfg.FlowLength, multiplier, timeUntilFlow} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidFlow, v)
		}
	}

	b.tiles = append([]Mask(nil), cfg.Tiles...)
	b.start = *cfg.Start
	b.hasEnd = cfg.End != nil
	if b.hasEnd {
		b.end = *cfg.End
	}
	b.solution = nil
	b.flowLength = cfg.FlowLength
	b.flowSpeedMultiplier = multiplier
	b.timeUntilFlow = timeUntilFlow
	b.defeated = cfg.Defeated
	b.completed = false

	b.flow = b.walk()
	if b.flow.Outcome == OutcomeCompleted {
		b.completed = true
	}
	return nil
}

// Reset reinitializes the board to a fresh random state and regenerates the
// maze, scrambled when the board was built with Config.Scramble.
func (b *Board) Reset() {
	b.flowLength = 0
	b.flowSpeedMultiplier = 1
	b.timeUntilFlow = b.flowDelay
	b.defeated = false
	b.completed = false
	b.GenerateMaze()
	if b.scramble {
		b.Scramble()
	}
}

// GenerateMaze replaces tiles, start and end with a freshly carved maze.
// It must only be called on a fresh or reset board.
func (b *Board) GenerateMaze() {
	maze := GenerateMaze(b.grid, b.rng, b.maxCarveSteps)
	b.tiles = maze.Tiles
	b.start = maze.Start
	b.end = maze.End
	b.hasEnd = true
	b.solution = maze.Path
	b.flow = b.walk()
}

// Scramble rotates every tile except start and end by a random number of
// quarter turns. Connector counts are preserved.
func (b *Board) Scramble() {
	for i := range b.tiles {
		c := b.grid.CoordOf(i)
		if c == b.start || (b.hasEnd && c == b.end) {
			continue
		}
		b.tiles[i] = b.tiles[i].Rotate(b.rng.Intn(4))
	}
	b.flow = b.walk()
}

// Update advances the simulation by dt seconds.
// Negative, zero and non-finite dt values are ignored.
func (b *Board) Update(dt float64) {
	if b.defeated || b.completed {
		return
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return
	}

	// The tick that ends the delay also moves the flow by its full dt.
	if b.timeUntilFlow > 0 {
		b.timeUntilFlow = math.Max(0, b.timeUntilFlow-dt)
		if b.timeUntilFlow > 0 {
			return
		}
	}

	b.flowLength += b.flowSpeed * b.flowSpeedMultiplier * dt
	b.flow = b.walk()

	switch b.flow.Outcome {
	case OutcomeDefeated:
		b.defeated = true
	case OutcomeCompleted:
		b.completed = true
	}
}

// Rotate turns the tile at c. It is a no-op returning false when the board
// is over, c is out of bounds, c is the start or end tile, or dir is RotateNone.
func (b *Board) Rotate(c Coord, dir RotateDirection) bool {
	if b.defeated || b.completed || dir == RotateNone {
		return false
	}
	idx, ok := b.grid.Index(c)
	if !ok {
		return false
	}
	if c == b.start || (b.hasEnd && c == b.end) {
		return false
	}
	b.tiles[idx] = b.tiles[idx].Rotate(dir.Turns())
	b.flow = b.walk()
	return true
}

// PlayerInput applies a player action on tile c. When the game is over any
// rotation request resets the board instead.
func (b *Board) PlayerInput(c Coord, dir RotateDirection) {
	if dir == RotateNone {
		return
	}
	if b.defeated || b.completed {
		b.Reset()
		return
	}
	b.Rotate(c, dir)
}

// SkipDelay starts the flow on the next Update.
func (b *Board) SkipDelay() {
	if b.defeated || b.completed {
		return
	}
	b.timeUntilFlow = 0
}

// walk recomputes the flow path for the current state.
func (b *Board) walk() FlowResult {
	var end *Coord
	if b.hasEnd {
		e := b.end
		end = &e
	}
	return WalkFlow(b.grid, b.tiles, b.start, end, b.flowLength)
}

// Grid returns the board geometry.
func (b *Board) Grid() Grid { return b.grid }

// Cols returns the board width in tiles.
func (b *Board) Cols() int { return b.grid.Cols }

// Rows returns the board height in tiles.
func (b *Board) Rows() int { return b.grid.Rows }

// Tile returns the tile at c; ok is false for out-of-bounds coordinates.
func (b *Board) Tile(c Coord) (Mask, bool) {
	idx, ok := b.grid.Index(c)
	if !ok {
		return MaskEmpty, false
	}
	return b.tiles[idx], true
}

// Tiles returns a copy of the tile array.
func (b *Board) Tiles() []Mask {
	return append([]Mask(nil), b.tiles...)
}

// Start returns the start coordinate.
func (b *Board) Start() Coord { return b.start }

// End returns the end coordinate; ok is false when the board has no end.
func (b *Board) End() (Coord, bool) { return b.end, b.hasEnd }

// Solution returns the carved path of a generated board, or nil for a restored one.
func (b *Board) Solution() []Coord {
	return append([]Coord(nil), b.solution...)
}

// FlowLength returns the number of tiles the flow has advanced.
func (b *Board) FlowLength() float64 { return b.flowLength }

// FlowSpeedMultiplier returns the current speed multiplier.
func (b *Board) FlowSpeedMultiplier() float64 { return b.flowSpeedMultiplier }

// SetFlowSpeedMultiplier sets the speed multiplier. Negative and
// non-finite values are clamped to 0.
func (b *Board) SetFlowSpeedMultiplier(v float64) {
	if !(v > 0) || math.IsInf(v, 0) {
		v = 0
	}
	b.flowSpeedMultiplier = v
}

// FlowSpeed returns the base flow speed in tiles per second.
func (b *Board) FlowSpeed() float64 { return b.flowSpeed }

// TimeUntilFlow returns the remaining delay before the flow starts.
func (b *Board) TimeUntilFlow() float64 { return b.timeUntilFlow }

// Defeated reports whether the flow ended in a defeat.
func (b *Board) Defeated() bool { return b.defeated }

// Completed reports whether the flow filled the end tile.
func (b *Board) Completed() bool { return b.completed }

// State returns the current flow state.
func (b *Board) State() FlowState {
	switch {
	case b.defeated:
		return StateDefeated
	case b.completed:
		return StateCompleted
	case b.timeUntilFlow > 0:
		return StateDelayed
	default:
		return StateFlowing
	}
}

// Flow returns the last flow walk. The Steps slice is a copy.
func (b *Board) Flow() FlowResult {
	res := b.flow
	res.Steps = append([]FlowStep(nil), b.flow.Steps...)
	return res
}

// FlowPath returns a copy of the tiles currently occupied by the flow.
func (b *Board) FlowPath() []FlowStep {
	return append([]FlowStep(nil), b.flow.Steps...)
}
