// Package layout maps logical board cells to world space. Every world
// position of a tile or token is derived here, never the other way round.
package layout

import "github.com/1siamBot/hexmech/engine/geom"

// Config holds the board spacing constants
type Config struct {
	Spacing       float64 `yaml:"spacing"`         // distance between column/row centers
	XOffsetFactor float64 `yaml:"x_offset_factor"` // board width multiplier for centering
	ZOffsetFactor float64 `yaml:"z_offset_factor"` // board row-count multiplier for centering
	Stagger       float64 `yaml:"stagger"`         // z shift of odd columns
	HeightUnit    float64 `yaml:"height_unit"`     // world height of one height step
}

func DefaultConfig() Config {
	return Config{
		Spacing:       1.75,
		XOffsetFactor: 0.8,
		ZOffsetFactor: 0.75,
		Stagger:       0.875,
		HeightUnit:    0.25,
	}
}

// Layout is the transform for one board extent
type Layout struct {
	Config
	Width int
	Rows  int
}

func New(cfg Config, width, rows int) Layout {
	return Layout{Config: cfg, Width: width, Rows: rows}
}

// CellToWorld returns the world position of the top center of cell
// (col, row) raised to height.
func (l Layout) CellToWorld(col, row, height int) geom.Vec3 {
	x := float64(col)*l.Spacing - float64(l.Width)*l.XOffsetFactor
	z := float64(row)*l.Spacing - float64(l.Rows)*l.ZOffsetFactor
	if col%2 != 0 {
		z -= l.Stagger
	}
	return geom.V3(x, float64(height)*l.HeightUnit, z)
}

// Center is the world point in the middle of the board at ground level
func (l Layout) Center() geom.Vec3 {
	if l.Width == 0 || l.Rows == 0 {
		return geom.Vec3{}
	}
	a := l.CellToWorld(0, 0, 0)
	b := l.CellToWorld(l.Width-1, l.Rows-1, 0)
	return a.Lerp(b, 0.5)
}
