// Package scene turns the editor state into world-space meshes each frame
// and resolves screen picks back into editor targets. Nothing here is read
// back into the board: every transform is derived from logical state.
package scene

import (
	"image/color"
	"math"

	"golang.org/x/image/colornames"

	"github.com/1siamBot/hexmech/editor"
	"github.com/1siamBot/hexmech/engine/geom"
	"github.com/1siamBot/hexmech/engine/hexgrid"
	"github.com/1siamBot/hexmech/engine/mesh"
	"github.com/1siamBot/hexmech/engine/tokens"
)

// Tag says what kind of object a scene item is
type Tag int

const (
	TagNone Tag = iota
	TagBase
	TagHex
	TagMech
)

func (t Tag) String() string {
	switch t {
	case TagBase:
		return "base"
	case TagHex:
		return "hex"
	case TagMech:
		return "mech"
	}
	return "none"
}

const (
	// HexDepth is how far below height 0 a tile extends
	HexDepth = 0.2
	// BaseDepth is the thickness of the slab under the board
	BaseDepth = 0.4
	baseMargin = 1.5
	hexGap     = 0.96
	boundsPad  = 1e-6
)

var (
	TerrainColors = map[hexgrid.Terrain]mesh.Color3{
		hexgrid.TerrainGrass: mesh.Hex(0x00aa00),
		hexgrid.TerrainMud:   mesh.FromRGBA(colornames.Saddlebrown),
		hexgrid.TerrainWater: mesh.Hex(0x1e64c8),
		hexgrid.TerrainSand:  mesh.FromRGBA(colornames.Tan),
	}
	BaseColor = mesh.FromRGBA(colornames.Dimgray)
)

// Models supplies token meshes in model space, origin at the feet.
// ok is false while a model is loading or after it failed.
type Models interface {
	Mesh(name string) (m *mesh.Mesh, ok bool)
}

// Item is one pickable object in world space. Min and Max bound Mesh.
type Item struct {
	Tag      Tag
	Col, Row int
	Token    tokens.ID
	Mesh     *mesh.Mesh
	Min, Max geom.Vec3
}

func newItem(tag Tag, col, row int, id tokens.ID, m *mesh.Mesh) Item {
	it := Item{Tag: tag, Col: col, Row: row, Token: id, Mesh: m}
	min, max := m.Bounds()
	pad := geom.V3(boundsPad, boundsPad, boundsPad)
	it.Min, it.Max = min.Sub(pad), max.Add(pad)
	return it
}

// Scene is everything drawn in one frame
type Scene struct {
	Items []Item
}

// HexRadius is the corner radius of a tile for a given column spacing
func HexRadius(spacing float64) float64 {
	return spacing / math.Sqrt(3) * hexGap
}

// Builder builds scenes frame after frame. Token meshes are kept between
// frames and only re-transformed when the token's pose, tint or model
// changes.
type Builder struct {
	Models Models

	tokens map[tokens.ID]*posed
}

type posed struct {
	src    *mesh.Mesh
	visual geom.Vec3
	orient geom.Quat
	tint   color.RGBA
	tinted bool
	radius float64
	item   Item
}

// NewBuilder returns a builder; models may be nil.
func NewBuilder(models Models) *Builder {
	return &Builder{Models: models, tokens: make(map[tokens.ID]*posed)}
}

// Build assembles the board, tiles and tokens of s. models may be nil.
func Build(s *editor.State, models Models) *Scene {
	return NewBuilder(models).Build(s)
}

// Build assembles the board, tiles and tokens of s
func (b *Builder) Build(s *editor.State) *Scene {
	sc := &Scene{Items: make([]Item, 0, len(s.Grid.Cells)+s.Tokens.Len()+1)}
	sc.Items = append(sc.Items, newItem(TagBase, 0, 0, 0, baseSlab(s)))

	radius := HexRadius(s.Layout.Spacing)
	for i := range s.Grid.Cells {
		c := &s.Grid.Cells[i]
		p := s.Layout.CellToWorld(c.Col, c.Row, c.Height)
		col := TerrainColors[c.Terrain]
		if tint, ok := s.Tint(editor.CellTarget{Col: c.Col, Row: c.Row}); ok {
			col = mesh.FromRGBA(tint)
		}
		m := mesh.MakeHexPrism(radius, -HexDepth-p.Y, 0, col).
			Transform(geom.Mat4Translate(p.X, p.Y, p.Z))
		sc.Items = append(sc.Items, newItem(TagHex, c.Col, c.Row, 0, m))
	}

	if b.Models == nil {
		return sc
	}
	seen := make(map[tokens.ID]bool, s.Tokens.Len())
	for _, t := range s.Tokens.All() {
		if t.OffBoard {
			continue
		}
		model, ok := b.Models.Mesh(t.Model)
		if !ok {
			continue
		}
		seen[t.ID] = true
		tint, tinted := s.Tint(editor.TokenTarget{ID: t.ID})
		p := b.tokens[t.ID]
		if p == nil || p.src != model || p.visual != t.Visual || p.orient != t.Orientation ||
			p.tinted != tinted || p.tint != tint || p.radius != radius {
			p = &posed{src: model, visual: t.Visual, orient: t.Orientation, tint: tint, tinted: tinted, radius: radius}
			p.item = newItem(TagMech, 0, 0, t.ID, poseToken(t, model, radius, tint, tinted))
			b.tokens[t.ID] = p
		}
		it := p.item
		it.Col, it.Row = t.Col, t.Row
		sc.Items = append(sc.Items, it)
	}
	for id := range b.tokens {
		if !seen[id] {
			delete(b.tokens, id)
		}
	}
	return sc
}

func poseToken(t *tokens.Token, model *mesh.Mesh, radius float64, tint color.RGBA, tinted bool) *mesh.Mesh {
	xf := geom.Mat4Translate(t.Visual.X, t.Visual.Y, t.Visual.Z).Mul(t.Orientation.Mat4())
	m := model.Transform(xf)
	if tinted {
		m.SetColor(mesh.FromRGBA(tint))
		ring := mesh.MakeFlatDisc(radius*0.7, radius*0.85, t.Visual.Y+0.01, 24, mesh.FromRGBA(tint))
		m.Append(ring.Transform(geom.Mat4Translate(t.Visual.X, 0, t.Visual.Z)))
	}
	return m
}

func baseSlab(s *editor.State) *mesh.Mesh {
	first := s.Layout.CellToWorld(0, 0, 0)
	last := s.Layout.CellToWorld(s.Grid.Width-1, s.Grid.Height-1, 0)
	minX, maxX := first.X-baseMargin, last.X+baseMargin
	minZ, maxZ := first.Z-s.Layout.Stagger-baseMargin, last.Z+baseMargin
	top := -HexDepth
	return mesh.MakeBox(maxX-minX, BaseDepth, maxZ-minZ, BaseColor).
		Transform(geom.Mat4Translate((minX+maxX)/2, top-BaseDepth/2, (minZ+maxZ)/2))
}

// Hit is the result of a pick
type Hit struct {
	Tag      Tag
	Col, Row int
	Token    tokens.ID
	Dist     float64
	Point    geom.Vec3
}

// Target converts the hit into a selection target
func (h Hit) Target() editor.Target {
	switch h.Tag {
	case TagHex:
		return editor.CellTarget{Col: h.Col, Row: h.Row}
	case TagMech:
		return editor.TokenTarget{ID: h.Token}
	}
	return editor.Background{}
}

// Pick returns the nearest item along r
func (sc *Scene) Pick(r geom.Ray) Hit {
	best := Hit{Tag: TagNone, Dist: math.Inf(1)}
	for _, it := range sc.Items {
		if near, ok := r.IntersectBox(it.Min, it.Max); !ok || near >= best.Dist {
			continue
		}
		for _, tri := range it.Mesh.Triangles {
			d, ok := r.IntersectTriangle(tri.V[0].Pos, tri.V[1].Pos, tri.V[2].Pos)
			if !ok || d >= best.Dist {
				continue
			}
			best = Hit{Tag: it.Tag, Col: it.Col, Row: it.Row, Token: it.Token, Dist: d, Point: r.At(d)}
		}
	}
	return best
}
