package boards_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/boards"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
)

func TestParseYAML(t *testing.T) {
	data := []byte(`
id: demo
name: Demo
cols: 3
rows: 2
tiles:
  - "8a2"
  - "5 F c"
start: {col: 0, row: 0}
end: {col: 2, row: 0}
flow_length: 1.5
`)

	b, err := boards.ParseYAML(data)
	require.NoError(t, err)

	assert.Equal(t, "demo", b.ID)
	assert.Equal(t, "Demo", b.Name)
	assert.False(t, b.HasDelay)
	assert.Equal(t, []core.Mask{
		core.MaskEast, core.MaskHorizontal, core.MaskWest,
		core.MaskVertical, core.MaskCross, core.MaskSouth | core.MaskEast,
	}, b.Snapshot.Tiles)
	assert.Equal(t, core.C(0, 0), b.Snapshot.Start)
	require.NotNil(t, b.Snapshot.End)
	assert.Equal(t, core.C(2, 0), *b.Snapshot.End)
	assert.Equal(t, 1.5, b.Snapshot.FlowLength)
	assert.Equal(t, 1.0, b.Snapshot.FlowSpeedMultiplier)
	assert.Equal(t, core.DefaultFlowDelay, b.Snapshot.TimeUntilFlow)
}

func TestParseYAMLErrors(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"bad yaml", "cols: [1"},
		{"short row", "cols: 3\nrows: 1\ntiles: [\"8a\"]\n"},
		{"not hex", "cols: 2\nrows: 1\ntiles: [\"8g\"]\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := boards.ParseYAML([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	board, err := core.NewBoard(core.Config{Cols: 6, Rows: 4, Seed: 5})
	require.NoError(t, err)
	board.Rotate(core.C(0, 0), core.RotateClockwise)
	snap := board.Snapshot()

	data, err := boards.Encode("gen", "Generated", snap)
	require.NoError(t, err)

	parsed, err := boards.ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "gen", parsed.ID)
	assert.True(t, parsed.HasDelay)
	assert.Equal(t, snap, parsed.Snapshot)

	restored, err := parsed.NewBoard(core.Config{})
	require.NoError(t, err)
	assert.Equal(t, snap, restored.Snapshot())
}

func TestNewBoardAppliesTunedDelay(t *testing.T) {
	b, err := boards.ParseYAML([]byte("cols: 3\nrows: 1\ntiles: [\"8a2\"]\nstart: {col: 0, row: 0}\n"))
	require.NoError(t, err)

	delay := 2.5
	board, err := b.NewBoard(core.Config{FlowDelay: &delay})
	require.NoError(t, err)
	assert.Equal(t, 2.5, board.TimeUntilFlow())
}

func TestLoaderLoadAll(t *testing.T) {
	loader := boards.NewLoader("testdata")

	all, err := loader.LoadAll()
	require.NoError(t, err)

	// broken.yaml is skipped
	ids := make([]string, len(all))
	for i, b := range all {
		ids[i] = b.ID
	}
	assert.Equal(t, []string{"solved", "three_bits"}, ids)
	assert.Equal(t, filepath.Join("testdata", "solved.yaml"), all[0].FilePath)
}

func TestLoaderRejectsInvalidTiles(t *testing.T) {
	b, err := boards.NewLoader("testdata").LoadByID("three_bits")
	require.NoError(t, err)

	_, err = b.NewBoard(core.Config{})
	assert.ErrorIs(t, err, core.ErrInvalidTile)
	assert.ErrorIs(t, err, core.ErrMalformedSnapshot)

	_, err = boards.NewLoader("testdata").LoadByID("missing")
	assert.Error(t, err)
}

func TestLoadFileSolvedBoardCompletes(t *testing.T) {
	b, err := boards.NewLoader("").LoadFile(filepath.Join("testdata", "solved.yaml"))
	require.NoError(t, err)

	board, err := b.NewBoard(core.Config{FlowSpeed: 1})
	require.NoError(t, err)
	board.Update(4)
	assert.True(t, board.Completed())
}

func TestBuiltinBoards(t *testing.T) {
	ids, err := boards.Builtin().ListIDs()
	require.NoError(t, err)
	require.NotEmpty(t, ids)

	all, err := boards.Builtin().LoadAll()
	require.NoError(t, err)
	for _, b := range all {
		board, err := b.NewBoard(core.Config{})
		require.NoError(t, err, "builtin board %s", b.ID)

		end, _ := board.End()
		res := core.WalkFlow(board.Grid(), board.Tiles(), board.Start(), &end, 1e6)
		assert.NotEqual(t, core.OutcomeCompleted, res.Outcome, "builtin board %s starts solved", b.ID)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "board.yaml")

	board, err := core.NewBoard(core.Config{Cols: 4, Rows: 3, Seed: 9})
	require.NoError(t, err)
	data, err := boards.Encode("", "", board.Snapshot())
	require.NoError(t, err)
	require.NoError(t, boards.WriteFile(path, data))

	loaded, err := boards.NewLoader("").LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "board", loaded.ID, "ID falls back to the file name")
	assert.Equal(t, board.Snapshot(), loaded.Snapshot)
}

func TestPassThroughEndIsRejected(t *testing.T) {
	// The drain at (1,0) would let the flow run on and spill.
	b, err := boards.ParseYAML([]byte("cols: 3\nrows: 1\ntiles: [\"8aa\"]\nstart: {col: 0, row: 0}\nend: {col: 1, row: 0}\n"))
	require.NoError(t, err)

	_, err = b.NewBoard(core.Config{})
	assert.ErrorIs(t, err, core.ErrInvalidEnd)
	assert.ErrorIs(t, err, core.ErrMalformedSnapshot)
}

func TestFormatExtensions(t *testing.T) {
	assert.ElementsMatch(t, []string{".yaml", ".yml"}, boards.FormatExtensions())

	dir := t.TempDir()
	data, err := boards.Encode("", "", mustSnapshot(t))
	require.NoError(t, err)
	for _, name := range []string{"a.yaml", "b.yml", "c.json", "d.txt"} {
		require.NoError(t, boards.WriteFile(filepath.Join(dir, name), data))
	}

	ids, err := boards.NewLoader(dir).ListIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func mustSnapshot(t *testing.T) core.Snapshot {
	t.Helper()
	board, err := core.NewBoard(core.Config{Cols: 3, Rows: 2, Seed: 2})
	require.NoError(t, err)
	return board.Snapshot()
}
