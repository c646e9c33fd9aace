package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutputExists is returned when the destination is already present
var ErrOutputExists = errors.New("output file already exists")

// CheckOutput fails if path already exists. Other stat errors are ignored here
// and surface when the output is written.
func CheckOutput(path string) error {
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("%q: %w", path, ErrOutputExists)
	}
	return nil
}

// PendingOutput is a hidden file next to the destination that receives the
// final output. It only appears at the destination path on Commit.
type PendingOutput struct {
	dest string
	path string
	done bool
}

// NewPendingOutput reserves a partial file in dest's directory with dest's
// extension, so the engine picks the same container format.
func NewPendingOutput(dest string) (*PendingOutput, error) {
	dir, name := filepath.Split(dest)
	if dir == "" {
		dir = "."
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	f, err := os.CreateTemp(dir, "."+base+".partial-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve output file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to reserve output file: %w", err)
	}
	return &PendingOutput{dest: dest, path: path}, nil
}

// Path returns where the engine should write
func (p *PendingOutput) Path() string {
	return p.path
}

// Commit moves the finished file to the destination. It refuses to replace
// a destination that appeared while the run was in progress.
func (p *PendingOutput) Commit() error {
	if err := CheckOutput(p.dest); err != nil {
		return err
	}
	if err := os.Rename(p.path, p.dest); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	p.done = true
	return nil
}

// Discard removes the partial file unless it was committed
func (p *PendingOutput) Discard() {
	if !p.done {
		os.Remove(p.path)
	}
}
