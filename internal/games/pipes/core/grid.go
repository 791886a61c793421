package core

import "fmt"

// Coord is a (column, row) position on the board.
// Col increases to the right, Row increases downward (screen coordinates).
type Coord struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// C is a convenience constructor for Coord.
func C(col, row int) Coord {
	return Coord{Col: col, Row: row}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Step returns the coordinate one tile across side s.
func (c Coord) Step(s Side) Coord {
	dc, dr := s.Delta()
	return Coord{Col: c.Col + dc, Row: c.Row + dr}
}

// Grid is the immutable rectangle [0, Cols) x [0, Rows).
// Tiles over a grid are stored row-major: index = col + row*Cols.
type Grid struct {
	Cols int
	Rows int
}

// NewGrid creates a grid with the given dimensions.
func NewGrid(cols, rows int) Grid {
	return Grid{Cols: cols, Rows: rows}
}

// Valid reports whether both dimensions are positive.
func (g Grid) Valid() bool {
	return g.Cols > 0 && g.Rows > 0
}

// Len returns the number of cells.
func (g Grid) Len() int {
	if !g.Valid() {
		return 0
	}
	return g.Cols * g.Rows
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g Grid) InBounds(c Coord) bool {
	return c.Col >= 0 && c.Col < g.Cols && c.Row >= 0 && c.Row < g.Rows
}

// Index converts a coordinate to a flat index.
// ok is false for out-of-bounds coordinates; the index is then -1.
func (g Grid) Index(c Coord) (idx int, ok bool) {
	if !g.InBounds(c) {
		return -1, false
	}
	return c.Col + c.Row*g.Cols, true
}

// CoordOf converts a flat index back to a coordinate.
func (g Grid) CoordOf(idx int) Coord {
	return Coord{Col: idx % g.Cols, Row: idx / g.Cols}
}

// Neighbors returns the in-bounds neighbors of c with the side leading to each,
// in side order (North, West, South, East).
func (g Grid) Neighbors(c Coord) []Neighbor {
	out := make([]Neighbor, 0, 4)
	for _, s := range Sides {
		n := c.Step(s)
		if g.InBounds(n) {
			out = append(out, Neighbor{Coord: n, Side: s})
		}
	}
	return out
}

// Neighbor is an adjacent cell together with the side of the origin cell it lies across.
type Neighbor struct {
	Coord Coord
	Side  Side
}

// AllCoords returns every coordinate, ordered by row then column.
func (g Grid) AllCoords() []Coord {
	coords := make([]Coord, 0, g.Len())
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			coords = append(coords, C(col, row))
		}
	}
	return coords
}
