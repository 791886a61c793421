package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
)

func cellsOf(steps []core.FlowStep) []core.Coord {
	out := make([]core.Coord, len(steps))
	for i, s := range steps {
		out[i] = s.Cell
	}
	return out
}

func TestWalkFlowZeroLength(t *testing.T) {
	g := core.NewGrid(3, 1)
	tiles := []core.Mask{core.MaskEast, core.MaskHorizontal, core.MaskWest}

	for _, length := range []float64{0, -1} {
		res := core.WalkFlow(g, tiles, core.C(0, 0), nil, length)
		assert.Empty(t, res.Steps)
		assert.Equal(t, core.OutcomeFlowing, res.Outcome)
	}
}

func TestWalkFlowOffGridStart(t *testing.T) {
	// 1x1 board with the start pointing north, straight off the board
	g := core.NewGrid(1, 1)
	tiles := []core.Mask{core.MaskNorth}

	res := core.WalkFlow(g, tiles, core.C(0, 0), nil, 0.5)
	assert.Equal(t, core.OutcomeFlowing, res.Outcome, "start tile alone is not a defeat")
	require.Len(t, res.Steps, 1)
	assert.InDelta(t, 0.5, res.Steps[0].Progress, 1e-9)

	res = core.WalkFlow(g, tiles, core.C(0, 0), nil, 1.5)
	assert.Equal(t, core.OutcomeDefeated, res.Outcome)
	assert.Equal(t, core.DefeatOutOfBounds, res.Reason)
	assert.Equal(t, core.C(0, -1), res.DefeatAt)
}

func TestWalkFlowBlockedBySecondTile(t *testing.T) {
	// Start opens east; the middle tile is north-south so the west entry is closed.
	g := core.NewGrid(3, 1)
	tiles := []core.Mask{core.Mask(0b1000), core.Mask(0b0101), core.Mask(0b0010)}

	res := core.WalkFlow(g, tiles, core.C(0, 0), nil, 10)
	assert.Equal(t, core.OutcomeDefeated, res.Outcome)
	assert.Equal(t, core.DefeatBlocked, res.Reason)
	assert.Equal(t, core.C(1, 0), res.DefeatAt)
	assert.Equal(t, []core.Coord{core.C(0, 0)}, cellsOf(res.Steps))
}

func TestWalkFlowReachesEnd(t *testing.T) {
	g := core.NewGrid(3, 1)
	tiles := []core.Mask{core.MaskEast, core.MaskHorizontal, core.MaskWest}
	end := core.C(2, 0)

	res := core.WalkFlow(g, tiles, core.C(0, 0), &end, 2.5)
	assert.Equal(t, core.OutcomeFlowing, res.Outcome)
	require.Len(t, res.Steps, 3)
	assert.InDelta(t, 0.5, res.Steps[2].Progress, 1e-9)
	assert.Equal(t, 2, res.FilledCount())

	res = core.WalkFlow(g, tiles, core.C(0, 0), &end, 3.5)
	assert.Equal(t, core.OutcomeCompleted, res.Outcome)
	assert.Equal(t, 3, res.FilledCount())

	head, ok := res.Head()
	require.True(t, ok)
	assert.Equal(t, end, head.Cell)
	assert.Equal(t, core.SideWest, head.Entry)
	assert.Equal(t, core.SideNone, head.Exit)
}

func TestWalkFlowDeadEndWithoutEnd(t *testing.T) {
	g := core.NewGrid(3, 1)
	tiles := []core.Mask{core.MaskEast, core.MaskHorizontal, core.MaskWest}

	res := core.WalkFlow(g, tiles, core.C(0, 0), nil, 3.5)
	assert.Equal(t, core.OutcomeDefeated, res.Outcome)
	assert.Equal(t, core.DefeatDeadEnd, res.Reason)
	assert.Equal(t, core.C(2, 0), res.DefeatAt)
}

func TestWalkFlowCrossGoesStraight(t *testing.T) {
	// Start at (0,1) heading east into a cross at (1,1)
	g := core.NewGrid(3, 3)
	tiles := make([]core.Mask, 9)
	for i := range tiles {
		tiles[i] = core.MaskVertical
	}
	tiles[3] = core.MaskEast
	tiles[4] = core.MaskCross
	tiles[5] = core.MaskWest | core.MaskSouth

	res := core.WalkFlow(g, tiles, core.C(0, 1), nil, 2.5)
	require.Len(t, res.Steps, 3)
	assert.Equal(t, core.SideEast, res.Steps[1].Exit)
	assert.Equal(t, core.C(2, 1), res.Steps[2].Cell)
	assert.Equal(t, core.SideSouth, res.Steps[2].Exit)
}

func TestWalkFlowTurnPriority(t *testing.T) {
	// Entering from the west: left turn is north, right turn is south
	g := core.NewGrid(2, 1)
	tiles := []core.Mask{core.MaskEast, core.MaskWest | core.MaskNorth}

	res := core.WalkFlow(g, tiles, core.C(0, 0), nil, 1.5)
	require.Len(t, res.Steps, 2)
	assert.Equal(t, core.SideNorth, res.Steps[1].Exit)

	tiles[1] = core.MaskWest | core.MaskSouth
	res = core.WalkFlow(g, tiles, core.C(0, 0), nil, 1.5)
	require.Len(t, res.Steps, 2)
	assert.Equal(t, core.SideSouth, res.Steps[1].Exit)
}

func TestWalkFlowLoopIsBounded(t *testing.T) {
	// A three-connector tile at (1,1) lets the flow re-enter a ring forever.
	// Such tiles are never generated, but the walk must still stop.
	g := core.NewGrid(3, 3)
	tiles := make([]core.Mask, 9)
	for i := range tiles {
		tiles[i] = core.MaskVertical
	}
	tiles[3] = core.MaskEast
	tiles[4] = core.MaskWest | core.MaskEast | core.MaskNorth
	tiles[5] = core.MaskWest | core.MaskNorth
	tiles[2] = core.MaskSouth | core.MaskWest
	tiles[1] = core.MaskEast | core.MaskSouth

	res := core.WalkFlow(g, tiles, core.C(0, 1), nil, 1e12)
	assert.Equal(t, core.OutcomeFlowing, res.Outcome)
	assert.Greater(t, len(res.Steps), 5)
	assert.LessOrEqual(t, len(res.Steps), 4*g.Len()+2)
}

func TestWalkFlowDeterministic(t *testing.T) {
	b, err := core.NewBoard(core.Config{Seed: 99})
	require.NoError(t, err)
	b.Scramble()

	g := b.Grid()
	tiles := b.Tiles()
	end, _ := b.End()

	for _, length := range []float64{0.3, 1, 2.7, 5, 40, 1e6} {
		first := core.WalkFlow(g, tiles, b.Start(), &end, length)
		second := core.WalkFlow(g, tiles, b.Start(), &end, length)
		assert.Equal(t, first, second, "flowLength=%v", length)
	}
}

func TestWalkFlowIgnoresShortTileSlice(t *testing.T) {
	g := core.NewGrid(3, 1)
	tiles := []core.Mask{core.MaskEast}

	res := core.WalkFlow(g, tiles, core.C(0, 0), nil, 5)
	assert.Equal(t, core.OutcomeDefeated, res.Outcome)
	assert.Equal(t, core.DefeatBlocked, res.Reason)
}
