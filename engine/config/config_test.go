package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "editor.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	col, _ := Default().HighlightColor()
	if col != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("highlight = %v", col)
	}
}

func TestLoadMissingUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Board != Default().Board || cfg.Layout != Default().Layout {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
board:
  width: 6
layout:
  height_unit: 0.5
highlight: Gold
mechs: [atlas.stl, locust.stl]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Board.Width != 6 || cfg.Board.Height != Default().Board.Height {
		t.Errorf("board = %+v", cfg.Board)
	}
	if cfg.Layout.HeightUnit != 0.5 || cfg.Layout.Spacing != Default().Layout.Spacing {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if len(cfg.Mechs) != 2 || cfg.Mechs[1] != "locust.stl" {
		t.Errorf("mechs = %v", cfg.Mechs)
	}
	col, err := cfg.HighlightColor()
	if err != nil || col != (color.RGBA{255, 215, 0, 255}) {
		t.Errorf("highlight = %v, %v", col, err)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", "board: [1, 2"},
		{"zero board", "board: {width: 0}"},
		{"huge board", "board: {width: 1000}"},
		{"frames", "anim: {frames: 0}"},
		{"color", "highlight: notacolor"},
		{"window", "window: {height: -1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.body)); err == nil {
				t.Fatalf("Load(%q) succeeded", tt.body)
			}
		})
	}
}
