// Package config loads editor settings from YAML. Fields left out of the
// file keep their defaults.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"os"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/1siamBot/hexmech/engine/anim"
	"github.com/1siamBot/hexmech/engine/hexgrid"
	"github.com/1siamBot/hexmech/engine/layout"
)

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Board struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Assets struct {
	Root  string  `yaml:"root"`
	Scale float64 `yaml:"scale"`
}

type Anim struct {
	Frames  int     `yaml:"frames"`
	Epsilon float64 `yaml:"epsilon"`
}

// Config is the whole settings file
type Config struct {
	Window    Window        `yaml:"window"`
	Board     Board         `yaml:"board"`
	Layout    layout.Config `yaml:"layout"`
	Assets    Assets        `yaml:"assets"`
	Anim      Anim          `yaml:"anim"`
	Highlight string        `yaml:"highlight"`
	Mechs     []string      `yaml:"mechs"`
}

func Default() Config {
	return Config{
		Window:    Window{Width: 1280, Height: 800, Title: "Hex Mech Editor"},
		Board:     Board{Width: 10, Height: 10},
		Layout:    layout.DefaultConfig(),
		Assets:    Assets{Root: "assets/mechs", Scale: 0.05},
		Anim:      Anim{Frames: anim.DefaultFrames, Epsilon: anim.DefaultEpsilon},
		Highlight: "white",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("config %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the editor cannot start with
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Board.Width <= 0 || c.Board.Height <= 0 || c.Board.Width > hexgrid.MaxSide || c.Board.Height > hexgrid.MaxSide:
		return fmt.Errorf("board size %dx%d out of range", c.Board.Width, c.Board.Height)
	case c.Anim.Frames <= 0:
		return fmt.Errorf("anim frames %d must be positive", c.Anim.Frames)
	case c.Anim.Epsilon <= 0:
		return fmt.Errorf("anim epsilon %g must be positive", c.Anim.Epsilon)
	case c.Layout.Spacing <= 0:
		return fmt.Errorf("layout spacing %g must be positive", c.Layout.Spacing)
	case c.Assets.Scale <= 0:
		return fmt.Errorf("asset scale %g must be positive", c.Assets.Scale)
	}
	if _, err := c.HighlightColor(); err != nil {
		return err
	}
	return nil
}

// HighlightColor resolves the highlight name against the SVG color names
func (c Config) HighlightColor() (color.RGBA, error) {
	col, ok := colornames.Map[strings.ToLower(strings.TrimSpace(c.Highlight))]
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown highlight color %q", c.Highlight)
	}
	return col, nil
}
