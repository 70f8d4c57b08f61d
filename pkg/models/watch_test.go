package models

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcherNoPaths(t *testing.T) {
	if _, err := NewWatcher("", ""); err == nil {
		t.Error("expected error without paths")
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	palettePath := filepath.Join(dir, "palette.toml")
	if err := os.WriteFile(palettePath, []byte(`colors = ["#000000"]`), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(palettePath, "")
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Unrelated files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(palettePath, []byte(`colors = ["#000000", "#ffffff"]`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case a := <-w.Updates():
		if len(a.Palette) != 2 {
			t.Errorf("reloaded palette has %d colors, want 2", len(a.Palette))
		}
		if a.Materials != nil {
			t.Error("materials were not watched but came back non-nil")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after writing the palette")
	}

	cancel()
	for range w.Updates() {
	}
}
