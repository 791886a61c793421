package boards

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Loader handles loading boards from a directory or a file system.
type Loader struct {
	Root string
	FS   fs.FS // Optional; when nil the OS file system is used
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Builtin returns a loader over the boards compiled into the binary.
func Builtin() *Loader {
	return &Loader{Root: "builtin", FS: builtinFS}
}

// LoadAll recursively scans and loads all board files.
// Returns boards sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Board, error) {
	var boards []Board

	fsys, root := l.fsys()
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		b, err := l.load(fsys, path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		boards = append(boards, b)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(boards, func(i, j int) bool {
		return boards[i].ID < boards[j].ID
	})
	return boards, nil
}

// LoadFile loads a single board file from disk.
func (l *Loader) LoadFile(path string) (Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Board{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	return parseFile(data, path)
}

// LoadByID loads a specific board by ID.
func (l *Loader) LoadByID(id string) (Board, error) {
	boards, err := l.LoadAll()
	if err != nil {
		return Board{}, err
	}
	for _, b := range boards {
		if b.ID == id {
			return b, nil
		}
	}
	return Board{}, fmt.Errorf("board not found: %s", id)
}

// ListIDs returns all board IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	boards, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(boards))
	for i, b := range boards {
		ids[i] = b.ID
	}
	return ids, nil
}

// WriteFile writes a board file, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

func (l *Loader) fsys() (fs.FS, string) {
	if l.FS != nil {
		return l.FS, l.Root
	}
	return os.DirFS(l.Root), "."
}

func (l *Loader) load(fsys fs.FS, path string) (Board, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Board{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	if l.FS == nil {
		path = filepath.Join(l.Root, path)
	}
	return parseFile(data, path)
}

func parseFile(data []byte, path string) (Board, error) {
	b, err := ParseYAML(data)
	if err != nil {
		return Board{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if b.ID == "" {
		b.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	b.FilePath = path
	return b, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
