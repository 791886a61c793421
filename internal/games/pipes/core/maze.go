package core

// DefaultMaxCarveSteps bounds the number of carving steps of GenerateMaze.
// It is a fixed safety bound independent of board size.
const DefaultMaxCarveSteps = 100

// Rand is the random source used by the generator and the board.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Maze is a generated tile layout with a single carved path from Start to End.
type Maze struct {
	Tiles []Mask
	Start Coord
	End   Coord
	Path  []Coord // Carved cells, Start first and End last
}

// GenerateMaze carves a random self-avoiding path from a start cell near the
// board center and fills every other cell with a random placeable tile.
//
// Carving stops when the current cell has no unvisited neighbor or after
// maxSteps steps; the cell reached becomes End. The returned layout is solved:
// following the flow from Start reaches End without a defeat.
//
// When no step can be carved (maxSteps <= 0 or a 1x1 board) Start equals End
// and the start tile gets a random single connector.
func GenerateMaze(g Grid, rng Rand, maxSteps int) Maze {
	if !g.Valid() {
		return Maze{}
	}

	tiles := make([]Mask, g.Len())
	visited := make([]bool, g.Len())

	start := Coord{
		Col: centralPick(g.Cols, rng),
		Row: centralPick(g.Rows, rng),
	}
	startIdx, _ := g.Index(start)
	visited[startIdx] = true

	current := start
	path := []Coord{start}

	for step := 0; step < maxSteps; step++ {
		curIdx, _ := g.Index(current)
		if tiles[curIdx].Count() >= 2 {
			break
		}

		options := make([]Neighbor, 0, 4)
		for _, n := range g.Neighbors(current) {
			idx, _ := g.Index(n.Coord)
			if !visited[idx] {
				options = append(options, n)
			}
		}
		if len(options) == 0 {
			break
		}

		next := options[rng.Intn(len(options))]
		nextIdx, _ := g.Index(next.Coord)

		// Open matching connectors on both sides of the shared edge
		tiles[curIdx] = tiles[curIdx].With(next.Side)
		tiles[nextIdx] = tiles[nextIdx].With(next.Side.Opposite())
		visited[nextIdx] = true

		current = next.Coord
		path = append(path, current)
	}

	if tiles[startIdx].IsEmpty() {
		tiles[startIdx] = MaskOf(Sides[rng.Intn(len(Sides))])
	}

	for i := range tiles {
		if tiles[i].IsEmpty() {
			tiles[i] = PlaceableMasks[rng.Intn(len(PlaceableMasks))]
		}
	}

	return Maze{
		Tiles: tiles,
		Start: start,
		End:   current,
		Path:  path,
	}
}

// centralPick returns floor(dim * (0.25 + 0.5*r)), keeping the pick
// inside the central half of the axis.
func centralPick(dim int, rng Rand) int {
	v := int(float64(dim) * (0.25 + 0.5*rng.Float64()))
	if v >= dim {
		v = dim - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}
