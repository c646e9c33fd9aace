// Package workspace manages the scratch directory that holds extracted
// pieces and the concat manifest for one run
package workspace

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the concat playlist file inside the workspace
const ManifestName = "concat.txt"

// manifestHeader opens every ffconcat playlist
const manifestHeader = "ffconcat version 1.0"

// Workspace is a temporary directory owned by a single run
type Workspace struct {
	dir    string
	pieces int
}

// New creates a workspace under parent, or under the system temporary
// directory when parent is empty
func New(parent string) (*Workspace, error) {
	dir, err := os.MkdirTemp(parent, "jumpcutter-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory
func (w *Workspace) Dir() string {
	return w.dir
}

// ManifestPath returns the location of the concat playlist
func (w *Workspace) ManifestPath() string {
	return filepath.Join(w.dir, ManifestName)
}

// NextPiecePath returns a fresh sub-clip path. Paths are numbered in call
// order so they never collide within a run.
func (w *Workspace) NextPiecePath() string {
	path := filepath.Join(w.dir, fmt.Sprintf("piece-%08x.mkv", w.pieces))
	w.pieces++
	return path
}

// Close removes the workspace and everything in it
func (w *Workspace) Close() error {
	return os.RemoveAll(w.dir)
}

// Manifest is the append-only concat playlist
type Manifest struct {
	f       *os.File
	w       *bufio.Writer
	entries int
}

// CreateManifest creates the playlist in the workspace and writes its header
func (w *Workspace) CreateManifest() (*Manifest, error) {
	f, err := os.Create(w.ManifestPath())
	if err != nil {
		return nil, fmt.Errorf("failed to create concat script: %w", err)
	}
	m := &Manifest{f: f, w: bufio.NewWriter(f)}
	if _, err := fmt.Fprintln(m.w, manifestHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write concat script: %w", err)
	}
	return m, nil
}

// Append adds a piece to the end of the playlist. Paths are written as-is.
func (m *Manifest) Append(path string) error {
	if _, err := fmt.Fprintf(m.w, "file %s\n", path); err != nil {
		return fmt.Errorf("failed to write concat script: %w", err)
	}
	m.entries++
	return nil
}

// Len returns the number of pieces listed so far
func (m *Manifest) Len() int {
	return m.entries
}

// Close flushes and closes the playlist
func (m *Manifest) Close() error {
	if err := m.w.Flush(); err != nil {
		m.f.Close()
		return fmt.Errorf("failed to write concat script: %w", err)
	}
	return m.f.Close()
}
