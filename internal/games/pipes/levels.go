package pipes

import "github.com/vovakirdan/tui-pipes/internal/games/pipes/boards"

// Level defines a campaign level. Board names a built-in board file; when it
// is empty a maze of Cols x Rows is generated.
type Level struct {
	ID    int
	Name  string
	Board string
	Cols  int
	Rows  int
	Speed float64 // multiplier over the configured flow speed
	Delay float64 // multiplier over the configured flow delay
}

// Levels defines the campaign: hand-made boards first, then growing mazes
// with a faster flow and a shorter head start.
var Levels = []Level{
	{ID: 1, Name: "Straight Ahead", Board: "01_straight", Speed: 1.0, Delay: 1.0},
	{ID: 2, Name: "Round the Corner", Board: "02_corner", Speed: 1.0, Delay: 1.0},
	{ID: 3, Name: "Crossing", Board: "03_crossing", Speed: 1.2, Delay: 1.0},
	{ID: 4, Name: "Small Works", Cols: 5, Rows: 4, Speed: 1.2, Delay: 1.0},
	{ID: 5, Name: "Basement", Cols: 6, Rows: 5, Speed: 1.4, Delay: 1.0},
	{ID: 6, Name: "Boiler Room", Cols: 8, Rows: 5, Speed: 1.6, Delay: 0.9},
	{ID: 7, Name: "Main Line", Cols: 10, Rows: 7, Speed: 1.8, Delay: 0.8},
	{ID: 8, Name: "Refinery", Cols: 12, Rows: 8, Speed: 2.0, Delay: 0.8},
	{ID: 9, Name: "Waterworks", Cols: 14, Rows: 9, Speed: 2.4, Delay: 0.7},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index (0-based).
// Returns nil if index is out of range.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	names := make([]string, len(Levels))
	for i, lvl := range Levels {
		names[i] = lvl.Name
	}
	return names
}

// Size returns the board dimensions of the level.
func (l Level) Size() (cols, rows int) {
	if l.Board == "" {
		return l.Cols, l.Rows
	}
	b, err := boards.Builtin().LoadByID(l.Board)
	if err != nil {
		return 0, 0
	}
	return b.Snapshot.Cols, b.Snapshot.Rows
}
