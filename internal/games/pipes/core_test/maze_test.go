package core_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
)

func TestGenerateMazeNeverProducesThreeConnectors(t *testing.T) {
	g := core.NewGrid(10, 7)
	rng := rand.New(rand.NewSource(1))

	for run := 0; run < 1000; run++ {
		maze := core.GenerateMaze(g, rng, core.DefaultMaxCarveSteps)
		require.Len(t, maze.Tiles, 70)
		for i, m := range maze.Tiles {
			if m.Count() == 3 {
				t.Fatalf("run %d: tile %s at %v has three connectors", run, m, g.CoordOf(i))
			}
		}
	}
}

func TestGenerateMazeUsable(t *testing.T) {
	sizes := []struct{ cols, rows int }{
		{2, 2}, {2, 5}, {5, 2}, {3, 3}, {10, 7}, {20, 20}, {40, 3},
	}

	for _, size := range sizes {
		g := core.NewGrid(size.cols, size.rows)
		for seed := int64(0); seed < 200; seed++ {
			maze := core.GenerateMaze(g, rand.New(rand.NewSource(seed)), core.DefaultMaxCarveSteps)

			require.NotEqual(t, maze.Start, maze.End, "%dx%d seed %d", size.cols, size.rows, seed)
			require.True(t, g.InBounds(maze.Start))
			require.True(t, g.InBounds(maze.End))
			require.LessOrEqual(t, len(maze.Path), core.DefaultMaxCarveSteps+1)

			for i, m := range maze.Tiles {
				require.False(t, m.IsEmpty(), "empty tile at %v", g.CoordOf(i))
				require.True(t, m.IsValid(), "invalid tile %s at %v", m, g.CoordOf(i))
			}

			startTile, _ := g.Index(maze.Start)
			require.True(t, maze.Tiles[startTile].IsStart())

			end := maze.End
			res := core.WalkFlow(g, maze.Tiles, maze.Start, &end, float64(len(maze.Path))+0.5)
			require.Equal(t, core.OutcomeCompleted, res.Outcome, "%dx%d seed %d", size.cols, size.rows, seed)
			require.Equal(t, maze.Path, cellsOf(res.Steps))
		}
	}
}

func TestGenerateMazeStartIsCentral(t *testing.T) {
	g := core.NewGrid(20, 12)
	rng := rand.New(rand.NewSource(5))

	for run := 0; run < 500; run++ {
		maze := core.GenerateMaze(g, rng, core.DefaultMaxCarveSteps)
		assert.GreaterOrEqual(t, maze.Start.Col, 5)
		assert.Less(t, maze.Start.Col, 15)
		assert.GreaterOrEqual(t, maze.Start.Row, 3)
		assert.Less(t, maze.Start.Row, 9)
	}
}

func TestGenerateMazeCarveCap(t *testing.T) {
	g := core.NewGrid(30, 30)

	for seed := int64(0); seed < 50; seed++ {
		maze := core.GenerateMaze(g, rand.New(rand.NewSource(seed)), 5)
		assert.LessOrEqual(t, len(maze.Path), 6)
		assert.Equal(t, maze.Path[len(maze.Path)-1], maze.End)
	}
}

func TestGenerateMazeDegenerate(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	maze := core.GenerateMaze(core.NewGrid(1, 1), rng, core.DefaultMaxCarveSteps)
	require.Len(t, maze.Tiles, 1)
	assert.True(t, maze.Tiles[0].IsStart())
	assert.Equal(t, maze.Start, maze.End)

	maze = core.GenerateMaze(core.NewGrid(4, 4), rng, 0)
	assert.Equal(t, maze.Start, maze.End)
	idx, _ := core.NewGrid(4, 4).Index(maze.Start)
	assert.True(t, maze.Tiles[idx].IsStart())

	assert.Empty(t, core.GenerateMaze(core.NewGrid(0, 5), rng, 10).Tiles)
}

func TestGenerateMazeSeeded(t *testing.T) {
	g := core.NewGrid(10, 7)
	a := core.GenerateMaze(g, rand.New(rand.NewSource(42)), core.DefaultMaxCarveSteps)
	b := core.GenerateMaze(g, rand.New(rand.NewSource(42)), core.DefaultMaxCarveSteps)
	assert.Equal(t, a, b)
}
