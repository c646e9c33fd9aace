package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWorkspaceLifecycle(t *testing.T) {
	parent := t.TempDir()

	ws, err := New(parent)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if filepath.Dir(ws.Dir()) != parent {
		t.Errorf("workspace %s not created under %s", ws.Dir(), parent)
	}
	if !strings.HasPrefix(filepath.Base(ws.Dir()), "jumpcutter-") {
		t.Errorf("workspace name = %s, want jumpcutter- prefix", filepath.Base(ws.Dir()))
	}

	piece := ws.NextPiecePath()
	if err := os.WriteFile(piece, []byte("clip"), 0o644); err != nil {
		t.Fatalf("write piece: %v", err)
	}

	if err := ws.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Errorf("workspace still exists after Close: %v", err)
	}
}

func TestNewMissingParent(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "does", "not", "exist"))
	if err == nil {
		t.Fatal("New() succeeded under a missing parent")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("New() error = %v, want not-exist", err)
	}
}

func TestNextPiecePath(t *testing.T) {
	ws := &Workspace{dir: "/scratch"}

	want := []string{
		"/scratch/piece-00000000.mkv",
		"/scratch/piece-00000001.mkv",
		"/scratch/piece-00000002.mkv",
	}
	for i, w := range want {
		if got := ws.NextPiecePath(); got != w {
			t.Errorf("piece %d = %s, want %s", i, got, w)
		}
	}

	ws.pieces = 255
	if got := ws.NextPiecePath(); got != "/scratch/piece-000000ff.mkv" {
		t.Errorf("piece 255 = %s, want hexadecimal suffix", got)
	}
}

func TestManifest(t *testing.T) {
	ws, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ws.Close()

	m, err := ws.CreateManifest()
	if err != nil {
		t.Fatalf("CreateManifest() error = %v", err)
	}
	pieces := []string{ws.NextPiecePath(), ws.NextPiecePath()}
	for _, p := range pieces {
		if err := m.Append(p); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(ws.ManifestPath())
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	want := "ffconcat version 1.0\n" +
		"file " + pieces[0] + "\n" +
		"file " + pieces[1] + "\n"
	if string(data) != want {
		t.Errorf("manifest = %q, want %q", data, want)
	}
}

func TestManifestEmpty(t *testing.T) {
	ws, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ws.Close()

	m, err := ws.CreateManifest()
	if err != nil {
		t.Fatalf("CreateManifest() error = %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(ws.ManifestPath())
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if string(data) != "ffconcat version 1.0\n" {
		t.Errorf("manifest = %q, want header only", data)
	}
}

func TestManifestPathsNotEscaped(t *testing.T) {
	ws, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer ws.Close()

	m, err := ws.CreateManifest()
	if err != nil {
		t.Fatalf("CreateManifest() error = %v", err)
	}
	m.Append("/scratch dir/it's piece.mkv")
	m.Close()

	data, _ := os.ReadFile(ws.ManifestPath())
	if !strings.Contains(string(data), "file /scratch dir/it's piece.mkv\n") {
		t.Errorf("manifest = %q, want path written verbatim", data)
	}
}
