package core_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
)

func f64(v float64) *float64 { return &v }

func coordPtr(c core.Coord) *core.Coord { return &c }

// offPathCoord returns a coordinate that is neither start nor end.
func offPathCoord(t *testing.T, b *core.Board, skip ...core.Coord) core.Coord {
	t.Helper()
	end, _ := b.End()
	for _, c := range b.Grid().AllCoords() {
		if c == b.Start() || c == end {
			continue
		}
		used := false
		for _, s := range skip {
			used = used || s == c
		}
		if !used {
			return c
		}
	}
	t.Fatal("no free tile on board")
	return core.Coord{}
}

func TestNewBoardDefaults(t *testing.T) {
	b, err := core.NewBoard(core.Config{Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, core.DefaultCols, b.Cols())
	assert.Equal(t, core.DefaultRows, b.Rows())
	assert.Len(t, b.Tiles(), core.DefaultCols*core.DefaultRows)
	assert.Equal(t, core.StateDelayed, b.State())
	assert.Equal(t, core.DefaultFlowDelay, b.TimeUntilFlow())
	assert.Equal(t, 1.0, b.FlowSpeedMultiplier())
	assert.Zero(t, b.FlowLength())
	assert.False(t, b.Defeated())
	assert.False(t, b.Completed())

	_, hasEnd := b.End()
	assert.True(t, hasEnd)
	assert.NotEmpty(t, b.Solution())
}

func TestNewBoardSeededIsDeterministic(t *testing.T) {
	a, err := core.NewBoard(core.Config{Seed: 77})
	require.NoError(t, err)
	b, err := core.NewBoard(core.Config{Seed: 77})
	require.NoError(t, err)

	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestUpdateDelayCountdown(t *testing.T) {
	b, err := core.NewBoard(core.Config{Seed: 3, FlowDelay: f64(1), FlowSpeed: 1})
	require.NoError(t, err)

	b.Update(0.4)
	assert.InDelta(t, 0.6, b.TimeUntilFlow(), 1e-9)
	assert.Equal(t, core.StateDelayed, b.State())

	// The tick that ends the delay moves the flow by its whole dt
	b.Update(1.5)
	assert.Zero(t, b.TimeUntilFlow())
	assert.InDelta(t, 1.5, b.FlowLength(), 1e-9)
	assert.Equal(t, core.StateFlowing, b.State())

	b.Update(0.25)
	assert.InDelta(t, 1.75, b.FlowLength(), 1e-9)
}

func TestSkipDelay(t *testing.T) {
	b, err := core.NewBoard(core.Config{Seed: 3, FlowDelay: f64(30), FlowSpeed: 1})
	require.NoError(t, err)

	b.SkipDelay()
	assert.Zero(t, b.TimeUntilFlow())

	b.Update(0.5)
	assert.InDelta(t, 0.5, b.FlowLength(), 1e-9)
}

func TestUpdateSpeedMultiplier(t *testing.T) {
	b, err := core.NewBoard(core.Config{Seed: 3, FlowDelay: f64(0), FlowSpeed: 0.5})
	require.NoError(t, err)

	b.SetFlowSpeedMultiplier(0)
	b.Update(10)
	assert.Zero(t, b.FlowLength(), "multiplier 0 pauses the flow")

	b.SetFlowSpeedMultiplier(4)
	b.Update(0.25)
	assert.InDelta(t, 0.5, b.FlowLength(), 1e-9)

	b.SetFlowSpeedMultiplier(-3)
	assert.Zero(t, b.FlowSpeedMultiplier())
	b.SetFlowSpeedMultiplier(math.NaN())
	assert.Zero(t, b.FlowSpeedMultiplier())
}

func TestUpdateIgnoresAdversarialDt(t *testing.T) {
	b, err := core.NewBoard(core.Config{Seed: 8, FlowDelay: f64(0)})
	require.NoError(t, err)
	before := b.Snapshot()

	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		b.Update(dt)
	}
	assert.Equal(t, before, b.Snapshot())
}

func TestUpdateHugeDtCompletesSolvedBoard(t *testing.T) {
	b, err := core.NewBoard(core.Config{Seed: 8, FlowDelay: f64(0)})
	require.NoError(t, err)

	b.Update(1e12)
	assert.True(t, b.Completed())
	assert.False(t, b.Defeated())
	assert.Equal(t, core.StateCompleted, b.State())
	assert.Equal(t, b.Solution(), cellsOf(b.FlowPath()))

	length := b.FlowLength()
	b.Update(10)
	assert.Equal(t, length, b.FlowLength(), "completed board must not advance")
}

func TestStartPointingOffGridDefeats(t *testing.T) {
	b, err := core.NewBoard(core.Config{
		Cols:          1,
		Rows:          1,
		Tiles:         []core.Mask{core.Mask(0b0001)},
		Start:         coordPtr(core.C(0, 0)),
		TimeUntilFlow: f64(0),
		FlowSpeed:     1,
	})
	require.NoError(t, err)
	assert.False(t, b.Defeated())

	b.Update(1.5)
	assert.True(t, b.Defeated())
	assert.Equal(t, core.DefeatOutOfBounds, b.Flow().Reason)
}

func TestBlockedFixtureDefeats(t *testing.T) {
	b, err := core.NewBoard(core.Config{
		Cols:          3,
		Rows:          1,
		Tiles:         []core.Mask{0b1000, 0b0101, 0b0010},
		Start:         coordPtr(core.C(0, 0)),
		TimeUntilFlow: f64(0),
		FlowSpeed:     1,
	})
	require.NoError(t, err)

	b.Update(3.5)
	assert.True(t, b.Defeated())
	res := b.Flow()
	assert.Equal(t, core.DefeatBlocked, res.Reason)
	assert.Equal(t, core.C(1, 0), res.DefeatAt)
}

func TestDefeatIsSticky(t *testing.T) {
	b, err := core.NewBoard(core.Config{
		Cols:          1,
		Rows:          1,
		Tiles:         []core.Mask{core.MaskNorth},
		Start:         coordPtr(core.C(0, 0)),
		TimeUntilFlow: f64(0),
		FlowSpeed:     1,
	})
	require.NoError(t, err)

	b.Update(2)
	require.True(t, b.Defeated())
	length := b.FlowLength()

	for i := 0; i < 100; i++ {
		b.Update(float64(i))
	}
	assert.True(t, b.Defeated())
	assert.Equal(t, length, b.FlowLength())

	assert.False(t, b.Rotate(core.C(0, 0), core.RotateClockwise))
}

func TestRotateStartIsNoop(t *testing.T) {
	b, err := core.NewBoard(core.Config{Seed: 11})
	require.NoError(t, err)

	start := b.Start()
	tile, _ := b.Tile(start)

	for _, dir := range []core.RotateDirection{core.RotateClockwise, core.RotateCounterClockwise, core.RotateNone} {
		assert.False(t, b.Rotate(start, dir))
		b.PlayerInput(start, dir)
		got, _ := b.Tile(start)
		assert.Equal(t, tile, got)
	}

	end, _ := b.End()
	endTile, _ := b.Tile(end)
	assert.False(t, b.Rotate(end, core.RotateClockwise))
	got, _ := b.Tile(end)
	assert.Equal(t, endTile, got)
}

func TestRotateIsLocal(t *testing.T) {
	b, err := core.NewBoard(core.Config{Seed: 12})
	require.NoError(t, err)

	c := offPathCoord(t, b)
	before := b.Tiles()
	tile, _ := b.Tile(c)

	require.True(t, b.Rotate(c, core.RotateClockwise))
	after := b.Tiles()
	idx, _ := b.Grid().Index(c)
	assert.Equal(t, tile.Rotate(3), after[idx])
	for i := range before {
		if i != idx {
			assert.Equal(t, before[i], after[i])
		}
	}

	b.PlayerInput(c, core.RotateCounterClockwise)
	got, _ := b.Tile(c)
	assert.Equal(t, tile, got)
}

func TestPlayerInputOutOfBounds(t *testing.T) {
	b, err := core.NewBoard(core.Config{Seed: 13})
	require.NoError(t, err)
	before := b.Tiles()

	for _, c := range []core.Coord{
		core.C(-1, 0), core.C(0, -1), core.C(b.Cols(), 0), core.C(0, b.Rows()),
		core.C(math.MaxInt, math.MaxInt), core.C(math.MinInt, 3),
	} {
		assert.False(t, b.Rotate(c, core.RotateClockwise))
		b.PlayerInput(c, core.RotateCounterClockwise)
		_, ok := b.Tile(c)
		assert.False(t, ok)
	}
	assert.Equal(t, before, b.Tiles())
}

func TestPlayerInputResetsFinishedBoard(t *testing.T) {
	b, err := core.NewBoard(core.Config{
		Cols:          2,
		Rows:          2,
		Tiles:         []core.Mask{core.MaskNorth, core.MaskVertical, core.MaskVertical, core.MaskVertical},
		Start:         coordPtr(core.C(0, 0)),
		TimeUntilFlow: f64(0),
		FlowSpeed:     1,
		Seed:          4,
	})
	require.NoError(t, err)
	b.Update(2)
	require.True(t, b.Defeated())

	b.PlayerInput(core.C(1, 1), core.RotateNone)
	assert.True(t, b.Defeated(), "RotateNone does not reset")

	b.PlayerInput(core.C(1, 1), core.RotateClockwise)
	assert.False(t, b.Defeated())
	assert.Zero(t, b.FlowLength())
	assert.Equal(t, core.DefaultFlowDelay, b.TimeUntilFlow())
	end, _ := b.End()
	assert.NotEqual(t, b.Start(), end)
}

// spillingBoard is a 10x7 board whose source points off the board.
func spillingBoard(t *testing.T, seed int64, scramble bool) *core.Board {
	t.Helper()
	tiles := make([]core.Mask, 10*7)
	tiles[0] = core.MaskWest
	b, err := core.NewBoard(core.Config{
		Cols:          10,
		Rows:          7,
		Tiles:         tiles,
		Start:         coordPtr(core.C(0, 0)),
		TimeUntilFlow: f64(0),
		FlowSpeed:     1,
		FlowDelay:     f64(0),
		Scramble:      scramble,
		Seed:          seed,
	})
	require.NoError(t, err)
	b.Update(2)
	require.True(t, b.Defeated())
	return b
}

func TestResetAfterDefeatKeepsScramble(t *testing.T) {
	solved := 0
	for seed := int64(1); seed <= 10; seed++ {
		plain := spillingBoard(t, seed, false)
		plain.PlayerInput(core.C(5, 5), core.RotateClockwise)
		require.False(t, plain.Defeated())
		plain.Update(1e12)
		assert.True(t, plain.Completed(), "seed %d: an unscrambled maze is solved", seed)

		b := spillingBoard(t, seed, true)
		b.PlayerInput(core.C(5, 5), core.RotateClockwise)
		require.False(t, b.Defeated())
		require.False(t, b.Completed())

		// Same maze, rotated: shapes are kept, orientation is not.
		assert.Equal(t, plain.Solution(), b.Solution(), "seed %d", seed)
		for i, m := range b.Tiles() {
			assert.Equal(t, plain.Tiles()[i].Count(), m.Count(), "seed %d tile %d", seed, i)
		}

		b.Update(1e12)
		if b.Completed() {
			solved++
		}
	}
	assert.Less(t, solved, 10, "scrambled resets must not all come out solved")
}

func TestScrambledBoardDiffersFromMaze(t *testing.T) {
	changed := false
	for seed := int64(1); seed <= 10; seed++ {
		plain, err := core.NewBoard(core.Config{Seed: seed})
		require.NoError(t, err)
		b, err := core.NewBoard(core.Config{Seed: seed, Scramble: true})
		require.NoError(t, err)

		assert.Equal(t, plain.Start(), b.Start())
		assert.Equal(t, plain.Solution(), b.Solution())
		changed = changed || !assert.ObjectsAreEqual(plain.Tiles(), b.Tiles())
	}
	assert.True(t, changed)
}

func TestScramblePreservesShapes(t *testing.T) {
	b, err := core.NewBoard(core.Config{Seed: 21})
	require.NoError(t, err)

	before := b.Tiles()
	b.Scramble()
	after := b.Tiles()

	startIdx, _ := b.Grid().Index(b.Start())
	end, _ := b.End()
	endIdx, _ := b.Grid().Index(end)
	assert.Equal(t, before[startIdx], after[startIdx])
	assert.Equal(t, before[endIdx], after[endIdx])
	for i := range before {
		assert.Equal(t, before[i].Count(), after[i].Count())
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	b, err := core.NewBoard(core.Config{Seed: 31, FlowDelay: f64(0)})
	require.NoError(t, err)

	first := offPathCoord(t, b)
	second := offPathCoord(t, b, first)
	require.True(t, b.Rotate(first, core.RotateClockwise))
	require.True(t, b.Rotate(second, core.RotateCounterClockwise))
	b.Update(1)

	snap := b.Snapshot()
	restored, err := core.Restore(snap, core.Config{})
	require.NoError(t, err)

	assert.Equal(t, snap, restored.Snapshot())
	assert.Equal(t, b.Tiles(), restored.Tiles())
	assert.Equal(t, b.Start(), restored.Start())
	assert.Equal(t, b.FlowLength(), restored.FlowLength())
	assert.Equal(t, b.FlowSpeedMultiplier(), restored.FlowSpeedMultiplier())
	assert.Equal(t, b.TimeUntilFlow(), restored.TimeUntilFlow())
	assert.Equal(t, b.Defeated(), restored.Defeated())
	assert.Equal(t, b.Completed(), restored.Completed())
	assert.Equal(t, b.FlowPath(), restored.FlowPath())

	// Mutating the snapshot must not leak into the board
	snap.Tiles[0] ^= core.MaskCross
	assert.NotEqual(t, snap.Tiles, restored.Tiles())
}

func TestRestoreCompletedBoard(t *testing.T) {
	b, err := core.NewBoard(core.Config{
		Cols:       3,
		Rows:       1,
		Tiles:      []core.Mask{core.MaskEast, core.MaskHorizontal, core.MaskWest},
		Start:      coordPtr(core.C(0, 0)),
		End:        coordPtr(core.C(2, 0)),
		FlowLength: 4,
	})
	require.NoError(t, err)
	assert.True(t, b.Completed())
	assert.Equal(t, core.StateCompleted, b.State())
}

func TestMalformedSnapshot(t *testing.T) {
	valid := func() core.Config {
		return core.Config{
			Cols:  3,
			Rows:  1,
			Tiles: []core.Mask{core.MaskEast, core.MaskHorizontal, core.MaskWest},
			Start: coordPtr(core.C(0, 0)),
			End:   coordPtr(core.C(2, 0)),
		}
	}

	testCases := []struct {
		name   string
		mutate func(*core.Config)
		want   error
	}{
		{"negative cols", func(c *core.Config) { c.Cols = -1 }, core.ErrInvalidDimensions},
		{"zero rows", func(c *core.Config) { c.Rows = 0 }, core.ErrInvalidDimensions},
		{"short tiles", func(c *core.Config) { c.Tiles = c.Tiles[:2] }, core.ErrTileCount},
		{"long tiles", func(c *core.Config) { c.Tiles = append(c.Tiles, core.MaskCross) }, core.ErrTileCount},
		{"three bit tile", func(c *core.Config) { c.Tiles[1] = 0b0111 }, core.ErrInvalidTile},
		{"high bit tile", func(c *core.Config) { c.Tiles[1] = 0x30 }, core.ErrInvalidTile},
		{"missing start", func(c *core.Config) { c.Start = nil }, core.ErrCoordOutOfBounds},
		{"start out of bounds", func(c *core.Config) { c.Start = coordPtr(core.C(3, 0)) }, core.ErrCoordOutOfBounds},
		{"end out of bounds", func(c *core.Config) { c.End = coordPtr(core.C(0, 1)) }, core.ErrCoordOutOfBounds},
		{"start not single", func(c *core.Config) { c.Start = coordPtr(core.C(1, 0)) }, core.ErrInvalidStart},
		{"end passes through", func(c *core.Config) { c.End = coordPtr(core.C(1, 0)) }, core.ErrInvalidEnd},
		{"end empty", func(c *core.Config) { c.Tiles[2] = core.MaskEmpty }, core.ErrInvalidEnd},
		{"negative flow", func(c *core.Config) { c.FlowLength = -1 }, core.ErrInvalidFlow},
		{"nan multiplier", func(c *core.Config) { c.FlowSpeedMultiplier = f64(math.NaN()) }, core.ErrInvalidFlow},
		{"inf delay", func(c *core.Config) { c.TimeUntilFlow = f64(math.Inf(1)) }, core.ErrInvalidFlow},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)

			b, err := core.NewBoard(cfg)
			require.Error(t, err)
			assert.Nil(t, b)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.ErrorIs(t, err, core.ErrMalformedSnapshot)
		})
	}

	_, err := core.NewBoard(valid())
	assert.NoError(t, err)
}

func TestFlowStateString(t *testing.T) {
	assert.Equal(t, "delayed", core.StateDelayed.String())
	assert.Equal(t, "completed", core.StateCompleted.String())
	assert.Equal(t, "blocked", core.DefeatBlocked.String())
	assert.Equal(t, "defeated", core.OutcomeDefeated.String())
}
