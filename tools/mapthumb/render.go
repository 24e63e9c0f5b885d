package main

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/colornames"

	"github.com/1siamBot/hexmech/engine/layout"
	"github.com/1siamBot/hexmech/engine/mapfile"
	"github.com/1siamBot/hexmech/engine/mesh"
	"github.com/1siamBot/hexmech/engine/scene"
)

const margin = 2.0 // world units around the board

// render rasterizes the board seen from above with world X to the right and
// world Z downward. Higher cells are drawn brighter.
func render(m *mapfile.Map, lay layout.Layout, ppu float64) *image.RGBA {
	g := m.Grid
	radius := scene.HexRadius(lay.Spacing)

	minX, minZ := math.Inf(1), math.Inf(1)
	maxX, maxZ := math.Inf(-1), math.Inf(-1)
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			p := lay.CellToWorld(col, row, 0)
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minZ, maxZ = math.Min(minZ, p.Z), math.Max(maxZ, p.Z)
		}
	}
	minX, minZ = minX-margin, minZ-margin
	maxX, maxZ = maxX+margin, maxZ+margin

	w := int(math.Ceil((maxX - minX) * ppu))
	h := int(math.Ceil((maxZ - minZ) * ppu))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(img, toRGBA(scene.BaseColor))

	toPx := func(x, z float64) (float64, float64) {
		return (x - minX) * ppu, (z - minZ) * ppu
	}

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			c := g.At(col, row)
			p := lay.CellToWorld(col, row, 0)
			cx, cy := toPx(p.X, p.Z)
			shade := 0.6 + 0.4*float64(c.Height)/9
			fillHex(img, cx, cy, radius*ppu, toRGBA(scene.TerrainColors[c.Terrain].Scale(shade)))
		}
	}

	for _, pl := range m.Placements {
		if !g.InBounds(pl.X, pl.Y) {
			continue
		}
		p := lay.CellToWorld(pl.X, pl.Y, 0)
		cx, cy := toPx(p.X, p.Z)
		r := radius * ppu * 0.45
		fillDisc(img, cx, cy, r, colornames.Crimson)
		// facing tick; 0 degrees points toward +X, angles turn toward -Z
		a := float64(pl.Facing()) * math.Pi / 180
		line(img, cx, cy, cx+math.Cos(a)*r*1.6, cy-math.Sin(a)*r*1.6, colornames.White)
	}
	return img
}

func toRGBA(c mesh.Color3) color.RGBA {
	clamp := func(v float64) uint8 { return uint8(math.Max(0, math.Min(1, v)) * 255) }
	return color.RGBA{clamp(c.R), clamp(c.G), clamp(c.B), 255}
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// fillHex paints a flat-top hexagon of circumradius r.
func fillHex(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	inner := r * math.Sqrt(3) / 2
	for y := int(cy - inner); y <= int(cy+inner); y++ {
		dy := math.Abs(float64(y) + 0.5 - cy)
		if dy > inner {
			continue
		}
		// half width shrinks linearly from r at the center row to r/2 at the edge
		half := r - dy/math.Sqrt(3)
		for x := int(cx - half); x <= int(cx+half); x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func fillDisc(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	for y := int(cy - r); y <= int(cy+r); y++ {
		for x := int(cx - r); x <= int(cx+r); x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func line(img *image.RGBA, x0, y0, x1, y1 float64, c color.RGBA) {
	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		img.SetRGBA(int(x0+(x1-x0)*t), int(y0+(y1-y0)*t), c)
	}
}
