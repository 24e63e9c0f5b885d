// Package mesh holds triangle meshes, the primitives the board is built
// from, and the flat lighting model. It has no rendering dependencies.
package mesh

import (
	"math"

	"github.com/1siamBot/hexmech/engine/geom"
)

// Vertex is a vertex with position, normal, and color
type Vertex struct {
	Pos    geom.Vec3
	Normal geom.Vec3
	Color  Color3
}

// Triangle is three vertices
type Triangle struct {
	V [3]Vertex
}

// Normal is the face normal from the winding order
func (t Triangle) Normal() geom.Vec3 {
	return t.V[1].Pos.Sub(t.V[0].Pos).Cross(t.V[2].Pos.Sub(t.V[0].Pos)).Normalize()
}

// Mesh is a collection of triangles
type Mesh struct {
	Triangles []Triangle
}

func New() *Mesh { return &Mesh{} }

func (m *Mesh) AddTriangle(v0, v1, v2 Vertex) {
	m.Triangles = append(m.Triangles, Triangle{V: [3]Vertex{v0, v1, v2}})
}

func (m *Mesh) AddQuad(v0, v1, v2, v3 Vertex) {
	m.AddTriangle(v0, v1, v2)
	m.AddTriangle(v0, v2, v3)
}

func (m *Mesh) Transform(mat geom.Mat4) *Mesh {
	out := &Mesh{Triangles: make([]Triangle, len(m.Triangles))}
	for i, tri := range m.Triangles {
		for j := 0; j < 3; j++ {
			out.Triangles[i].V[j] = tri.V[j]
			out.Triangles[i].V[j].Pos = mat.TransformPoint(tri.V[j].Pos)
			out.Triangles[i].V[j].Normal = mat.TransformDir(tri.V[j].Normal).Normalize()
		}
	}
	return out
}

func (m *Mesh) Append(other *Mesh) {
	m.Triangles = append(m.Triangles, other.Triangles...)
}

func (m *Mesh) SetColor(c Color3) {
	for i := range m.Triangles {
		for j := 0; j < 3; j++ {
			m.Triangles[i].V[j].Color = c
		}
	}
}

// Bounds returns the axis-aligned box around every vertex. An empty mesh
// has zero bounds.
func (m *Mesh) Bounds() (min, max geom.Vec3) {
	if len(m.Triangles) == 0 {
		return
	}
	min = geom.V3(math.Inf(1), math.Inf(1), math.Inf(1))
	max = geom.V3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for _, t := range m.Triangles {
		for _, v := range t.V {
			min = geom.V3(math.Min(min.X, v.Pos.X), math.Min(min.Y, v.Pos.Y), math.Min(min.Z, v.Pos.Z))
			max = geom.V3(math.Max(max.X, v.Pos.X), math.Max(max.Y, v.Pos.Y), math.Max(max.Z, v.Pos.Z))
		}
	}
	return
}
