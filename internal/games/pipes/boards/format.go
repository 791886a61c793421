// Package boards reads and writes Pipes board files.
// This package depends on core but core does not depend on boards.
package boards

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
	"gopkg.in/yaml.v3"
)

const hexDigits = "0123456789abcdef"

// File is the on-disk YAML representation of a board.
// Tiles are rows of hex digits, one digit per tile (bit order N, W, S, E).
type File struct {
	ID                  string            `yaml:"id,omitempty"`
	Name                string            `yaml:"name,omitempty"`
	Cols                int               `yaml:"cols"`
	Rows                int               `yaml:"rows"`
	Tiles               []string          `yaml:"tiles"`
	Start               core.Coord        `yaml:"start"`
	End                 *core.Coord       `yaml:"end,omitempty"`
	FlowLength          float64           `yaml:"flow_length,omitempty"`
	FlowSpeedMultiplier *float64          `yaml:"flow_speed_multiplier,omitempty"`
	TimeUntilFlow       *float64          `yaml:"time_until_flow,omitempty"`
	Defeated            bool              `yaml:"defeated,omitempty"`
	Metadata            map[string]string `yaml:"metadata,omitempty"`
}

// Board is a parsed board file ready to be played.
type Board struct {
	ID       string
	Name     string
	Snapshot core.Snapshot
	Metadata map[string]string
	FilePath string

	// HasDelay is false when the file leaves time_until_flow unset.
	HasDelay bool
}

// ParseYAML parses a YAML board file.
func ParseYAML(data []byte) (Board, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Board{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return f.Board()
}

// Board decodes the tile rows into a snapshot.
func (f File) Board() (Board, error) {
	tiles, err := decodeTiles(f.Tiles, f.Cols)
	if err != nil {
		return Board{}, err
	}

	snap := core.Snapshot{
		Cols:                f.Cols,
		Rows:                f.Rows,
		Tiles:               tiles,
		Start:               f.Start,
		End:                 f.End,
		FlowLength:          f.FlowLength,
		FlowSpeedMultiplier: 1,
		Defeated:            f.Defeated,
	}
	if f.FlowSpeedMultiplier != nil {
		snap.FlowSpeedMultiplier = *f.FlowSpeedMultiplier
	}
	snap.TimeUntilFlow = core.DefaultFlowDelay
	if f.TimeUntilFlow != nil {
		snap.TimeUntilFlow = *f.TimeUntilFlow
	}

	return Board{
		ID:       f.ID,
		Name:     f.Name,
		Snapshot: snap,
		Metadata: f.Metadata,
		HasDelay: f.TimeUntilFlow != nil,
	}, nil
}

// NewBoard validates the board and builds a playable core board.
// Tuning fields (speed, delay, seed) are applied; a file without an
// explicit time_until_flow uses the tuned delay.
func (b Board) NewBoard(tuning core.Config) (*core.Board, error) {
	snap := b.Snapshot
	if !b.HasDelay && tuning.FlowDelay != nil {
		snap.TimeUntilFlow = *tuning.FlowDelay
	}
	return core.Restore(snap, tuning)
}

// Encode renders a snapshot as a YAML board file.
func Encode(id, name string, snap core.Snapshot) ([]byte, error) {
	f := FromSnapshot(id, name, snap)
	data, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FromSnapshot converts a snapshot to its file representation.
func FromSnapshot(id, name string, snap core.Snapshot) File {
	multiplier := snap.FlowSpeedMultiplier
	timeUntilFlow := snap.TimeUntilFlow
	return File{
		ID:                  id,
		Name:                name,
		Cols:                snap.Cols,
		Rows:                snap.Rows,
		Tiles:               encodeTiles(snap.Tiles, snap.Cols),
		Start:               snap.Start,
		End:                 snap.End,
		FlowLength:          snap.FlowLength,
		FlowSpeedMultiplier: &multiplier,
		TimeUntilFlow:       &timeUntilFlow,
		Defeated:            snap.Defeated,
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

func decodeTiles(rows []string, cols int) ([]core.Mask, error) {
	tiles := make([]core.Mask, 0, len(rows)*cols)
	for r, row := range rows {
		row = strings.Join(strings.Fields(row), "")
		if len(row) != cols {
			return nil, fmt.Errorf("row %d: got %d tiles, want %d", r, len(row), cols)
		}
		for c, ch := range strings.ToLower(row) {
			v := strings.IndexRune(hexDigits, ch)
			if v < 0 {
				return nil, fmt.Errorf("row %d col %d: %q is not a hex digit", r, c, ch)
			}
			tiles = append(tiles, core.Mask(v))
		}
	}
	return tiles, nil
}

func encodeTiles(tiles []core.Mask, cols int) []string {
	if cols <= 0 {
		return nil
	}
	var rows []string
	var sb strings.Builder
	for i, m := range tiles {
		sb.WriteByte(hexDigits[m&0x0F])
		if (i+1)%cols == 0 {
			rows = append(rows, sb.String())
			sb.Reset()
		}
	}
	if sb.Len() > 0 {
		rows = append(rows, sb.String())
	}
	return rows
}
