package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestRunWritesPreset(t *testing.T) {
	out := filepath.Join(t.TempDir(), "outline.png")
	if err := run([]string{"outline", out}); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 32 || cfg.Height != 32 {
		t.Errorf("got %dx%d, want 32x32", cfg.Width, cfg.Height)
	}
}

func TestRunRejectsBadArgs(t *testing.T) {
	if err := run(nil); err == nil {
		t.Error("expected usage error")
	}
	if err := run([]string{"favicon", filepath.Join(t.TempDir(), "x.png")}); err == nil {
		t.Error("expected unknown preset error")
	}
}
