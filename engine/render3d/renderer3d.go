package render3d

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/hexmech/engine/geom"
	"github.com/1siamBot/hexmech/engine/hexgrid"
	"github.com/1siamBot/hexmech/engine/layout"
	"github.com/1siamBot/hexmech/engine/mesh"
	"github.com/1siamBot/hexmech/engine/scene"
)

// Renderer3D rasterises a scene with ebiten triangles
type Renderer3D struct {
	Camera   *scene.Camera
	Lighting mesh.Lighting
	ShowGrid bool

	// PreviewYaw turns the palette model preview, in radians
	PreviewYaw float64

	whiteImg   *ebiten.Image
	minimapImg *ebiten.Image
	last       *scene.Scene

	previewImg  *ebiten.Image
	previewSrc  *mesh.Mesh
	previewMesh *mesh.Mesh
	previewZoom float64
}

// NewRenderer3D creates the 3D renderer
func NewRenderer3D(screenW, screenH int) *Renderer3D {
	r := &Renderer3D{
		Camera:   scene.NewCamera(screenW, screenH),
		Lighting: mesh.DefaultLighting(),
		ShowGrid: true,
	}

	// 1x1 white image for colored triangle rendering
	r.whiteImg = ebiten.NewImage(4, 4)
	r.whiteImg.Fill(color.White)

	return r
}

// DrawSkyGradient fills the screen with a dark-blue-to-lighter-blue sky gradient
func (r *Renderer3D) DrawSkyGradient(screen *ebiten.Image) {
	h := r.Camera.ScreenH
	w := r.Camera.ScreenW
	bands := 32
	bandH := h / bands
	if bandH < 1 {
		bandH = 1
	}
	for i := 0; i < bands; i++ {
		t := float64(i) / float64(bands)
		cr := uint8(8 + t*35)
		cg := uint8(12 + t*45)
		cb := uint8(45 + t*50)
		by := i * bandH
		bh := bandH
		if i == bands-1 {
			bh = h - by
		}
		vector.DrawFilledRect(screen, 0, float32(by), float32(w), float32(bh), color.RGBA{cr, cg, cb, 255}, false)
	}
}

// DrawBoard renders the scene and keeps it for picking
func (r *Renderer3D) DrawBoard(screen *ebiten.Image, sc *scene.Scene) {
	r.DrawSkyGradient(screen)
	r.last = sc

	type itemDraw struct {
		mesh  *mesh.Mesh
		depth float64
		base  bool
	}
	draws := make([]itemDraw, 0, len(sc.Items))
	for _, it := range sc.Items {
		_, _, depth := r.Camera.Project(it.Min.Add(it.Max).Scale(0.5))
		draws = append(draws, itemDraw{mesh: it.Mesh, depth: depth, base: it.Tag == scene.TagBase})
	}

	// Base first, then back-to-front
	sort.SliceStable(draws, func(i, j int) bool {
		if draws[i].base != draws[j].base {
			return draws[i].base
		}
		return draws[i].depth > draws[j].depth
	})

	for _, d := range draws {
		r.renderMesh(screen, d.mesh, r.Camera)
	}
}

// Pick casts a ray through a screen pixel into the last drawn scene
func (r *Renderer3D) Pick(sx, sy int) scene.Hit {
	if r.last == nil {
		return scene.Hit{Tag: scene.TagNone}
	}
	return r.last.Pick(r.Camera.Ray(float64(sx)+0.5, float64(sy)+0.5))
}

// renderMesh projects and draws a 3D mesh to the screen (batched)
func (r *Renderer3D) renderMesh(screen *ebiten.Image, m *mesh.Mesh, cam *scene.Camera) {
	if len(m.Triangles) == 0 {
		return
	}

	vp := cam.ViewProj()
	sw := float64(cam.ScreenW)
	sh := float64(cam.ScreenH)

	vertices := make([]ebiten.Vertex, 0, len(m.Triangles)*3)
	indices := make([]uint16, 0, len(m.Triangles)*3)

	for _, tri := range m.Triangles {
		var vs [3]ebiten.Vertex
		allOffScreen := true

		for i := 0; i < 3; i++ {
			v := tri.V[i]
			lit := r.Lighting.Shade(v.Normal, v.Color)

			clip := vp.TransformPoint(v.Pos)
			sx := (clip.X*0.5 + 0.5) * sw
			sy := (1 - (clip.Y*0.5 + 0.5)) * sh

			if sx >= -100 && sx <= sw+100 && sy >= -100 && sy <= sh+100 {
				allOffScreen = false
			}

			vs[i] = ebiten.Vertex{
				DstX:   float32(sx),
				DstY:   float32(sy),
				SrcX:   1,
				SrcY:   1,
				ColorR: float32(lit.R),
				ColorG: float32(lit.G),
				ColorB: float32(lit.B),
				ColorA: 1,
			}
		}

		if allOffScreen {
			continue
		}

		// Back-face culling: front faces wind counter-clockwise in world
		// space, which is clockwise on a Y-down screen.
		ax := vs[1].DstX - vs[0].DstX
		ay := vs[1].DstY - vs[0].DstY
		bx := vs[2].DstX - vs[0].DstX
		by := vs[2].DstY - vs[0].DstY
		if ax*by-ay*bx > -0.5 {
			continue
		}

		base := uint16(len(vertices))
		vertices = append(vertices, vs[0], vs[1], vs[2])
		indices = append(indices, base, base+1, base+2)

		if len(vertices) >= 65000 {
			screen.DrawTriangles(vertices, indices, r.whiteImg, nil)
			vertices = vertices[:0]
			indices = indices[:0]
		}
	}

	if len(vertices) > 0 {
		screen.DrawTriangles(vertices, indices, r.whiteImg, nil)
	}
}

// DrawPreview draws m alone inside rect, seen from PreviewYaw
func (r *Renderer3D) DrawPreview(screen *ebiten.Image, m *mesh.Mesh, rect image.Rectangle) {
	w, h := rect.Dx(), rect.Dy()
	if m == nil || w <= 0 || h <= 0 {
		return
	}
	if r.previewImg == nil || r.previewImg.Bounds().Size() != rect.Size() {
		r.previewImg = ebiten.NewImage(w, h)
	}
	if m != r.previewSrc {
		min, max := m.Bounds()
		c := min.Add(max).Scale(0.5)
		r.previewSrc = m
		r.previewMesh = m.Transform(geom.Mat4Translate(-c.X, -c.Y, -c.Z))
		r.previewZoom = math.Max(max.Sub(min).Len()*1.2, 0.01)
	}

	cam := scene.NewCamera(w, h)
	cam.Pitch = 20 * math.Pi / 180
	cam.Yaw = r.PreviewYaw
	cam.Zoom = r.previewZoom

	r.previewImg.Fill(color.RGBA{10, 10, 25, 255})
	r.renderMesh(r.previewImg, r.previewMesh, cam)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	screen.DrawImage(r.previewImg, op)
}

// DrawGrid outlines every tile top
func (r *Renderer3D) DrawGrid(screen *ebiten.Image, g *hexgrid.Grid, lay layout.Layout) {
	if !r.ShowGrid {
		return
	}
	gridColor := color.RGBA{255, 255, 255, 50}
	radius := scene.HexRadius(lay.Spacing)
	for i := range g.Cells {
		c := &g.Cells[i]
		p := lay.CellToWorld(c.Col, c.Row, c.Height)
		var px, py [7]float32
		for k := 0; k <= 6; k++ {
			a := float64(k) * math.Pi / 3
			sx, sy, _ := r.Camera.Project(p.Add(geom.V3(radius*math.Cos(a), 0.005, radius*math.Sin(a))))
			px[k], py[k] = float32(sx), float32(sy)
		}
		for k := 0; k < 6; k++ {
			vector.StrokeLine(screen, px[k], py[k], px[k+1], py[k+1], 1, gridColor, false)
		}
	}
}

// DrawMinimap draws a top-down minimap of the terrain
func (r *Renderer3D) DrawMinimap(screen *ebiten.Image, g *hexgrid.Grid, posX, posY, size int) {
	if r.minimapImg == nil || r.minimapImg.Bounds().Dx() != size {
		r.minimapImg = ebiten.NewImage(size, size)
	}
	minimap := r.minimapImg
	minimap.Fill(color.RGBA{0, 0, 0, 180})

	scaleX := float64(size) / float64(g.Width)
	scaleY := float64(size) / float64(g.Height)

	for i := range g.Cells {
		c := &g.Cells[i]
		bc := scene.TerrainColors[c.Terrain].Scale(0.6 + 0.04*float64(c.Height))
		clr := color.RGBA{uint8(math.Min(bc.R, 1) * 255), uint8(math.Min(bc.G, 1) * 255), uint8(math.Min(bc.B, 1) * 255), 255}
		px := float32(float64(c.Col) * scaleX)
		py := float32(float64(c.Row) * scaleY)
		if c.Col%2 == 1 {
			py -= float32(scaleY / 2)
		}
		vector.DrawFilledRect(minimap, px, py, float32(scaleX)+1, float32(scaleY)+1, clr, false)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(posX), float64(posY))
	screen.DrawImage(minimap, op)
}
