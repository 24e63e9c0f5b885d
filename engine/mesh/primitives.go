package mesh

import (
	"math"

	"github.com/1siamBot/hexmech/engine/geom"
)

var v3 = geom.V3

// MakeBox is an axis-aligned box centered on the origin
func MakeBox(w, h, d float64, c Color3) *Mesh {
	m := New()
	hw, hh, hd := w/2, h/2, d/2

	v := [8]geom.Vec3{
		{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {-hw, hh, -hd},
		{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd},
	}

	faces := [][4]int{
		{0, 3, 2, 1}, // front
		{5, 6, 7, 4}, // back
		{4, 7, 3, 0}, // left
		{1, 2, 6, 5}, // right
		{3, 7, 6, 2}, // top
		{4, 0, 1, 5}, // bottom
	}
	normals := []geom.Vec3{
		{0, 0, -1}, {0, 0, 1}, {-1, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, -1, 0},
	}

	for fi, f := range faces {
		n := normals[fi]
		m.AddQuad(
			Vertex{Pos: v[f[0]], Normal: n, Color: c},
			Vertex{Pos: v[f[1]], Normal: n, Color: c},
			Vertex{Pos: v[f[2]], Normal: n, Color: c},
			Vertex{Pos: v[f[3]], Normal: n, Color: c},
		)
	}
	return m
}

// MakeHexPrism is a flat-top hexagonal column around the Y axis, from
// bottom to top. Corners sit at 0, 60, ... 300 degrees in the XZ plane.
func MakeHexPrism(radius, bottom, top float64, c Color3) *Mesh {
	m := New()
	up, down := v3(0, 1, 0), v3(0, -1, 0)
	ct, cb := v3(0, top, 0), v3(0, bottom, 0)
	for i := 0; i < 6; i++ {
		a0 := float64(i) * math.Pi / 3
		a1 := float64(i+1) * math.Pi / 3
		x0, z0 := radius*math.Cos(a0), radius*math.Sin(a0)
		x1, z1 := radius*math.Cos(a1), radius*math.Sin(a1)

		p0t, p1t := v3(x0, top, z0), v3(x1, top, z1)
		p0b, p1b := v3(x0, bottom, z0), v3(x1, bottom, z1)

		mid := (a0 + a1) / 2
		side := v3(math.Cos(mid), 0, math.Sin(mid))
		m.AddQuad(
			Vertex{Pos: p0b, Normal: side, Color: c},
			Vertex{Pos: p0t, Normal: side, Color: c},
			Vertex{Pos: p1t, Normal: side, Color: c},
			Vertex{Pos: p1b, Normal: side, Color: c},
		)
		m.AddTriangle(
			Vertex{Pos: ct, Normal: up, Color: c},
			Vertex{Pos: p1t, Normal: up, Color: c},
			Vertex{Pos: p0t, Normal: up, Color: c},
		)
		m.AddTriangle(
			Vertex{Pos: cb, Normal: down, Color: c},
			Vertex{Pos: p0b, Normal: down, Color: c},
			Vertex{Pos: p1b, Normal: down, Color: c},
		)
	}
	return m
}

// MakeFlatDisc is a ring in the plane y, facing up
func MakeFlatDisc(innerR, outerR, y float64, segments int, c Color3) *Mesh {
	m := New()
	n := v3(0, 1, 0)
	for i := 0; i < segments; i++ {
		a0 := float64(i) / float64(segments) * 2 * math.Pi
		a1 := float64(i+1) / float64(segments) * 2 * math.Pi

		ix0, iz0 := innerR*math.Cos(a0), innerR*math.Sin(a0)
		ix1, iz1 := innerR*math.Cos(a1), innerR*math.Sin(a1)
		ox0, oz0 := outerR*math.Cos(a0), outerR*math.Sin(a0)
		ox1, oz1 := outerR*math.Cos(a1), outerR*math.Sin(a1)

		m.AddQuad(
			Vertex{Pos: v3(ix0, y, iz0), Normal: n, Color: c},
			Vertex{Pos: v3(ix1, y, iz1), Normal: n, Color: c},
			Vertex{Pos: v3(ox1, y, oz1), Normal: n, Color: c},
			Vertex{Pos: v3(ox0, y, oz0), Normal: n, Color: c},
		)
	}
	return m
}
