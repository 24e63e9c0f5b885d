package scene

import (
	"math"

	"github.com/1siamBot/hexmech/engine/geom"
)

// Camera is an orbiting camera with orthographic projection
type Camera struct {
	// Camera target on the ground plane
	TargetX, TargetZ float64

	// Zoom: how many world units fit across the screen
	Zoom float64

	ScreenW, ScreenH int

	Pitch float64 // radians above the horizon
	Yaw   float64 // radians around the up axis

	view     geom.Mat4
	proj     geom.Mat4
	viewProj geom.Mat4
	inverse  geom.Mat4
	dirty    bool
}

const (
	MinZoom = 5
	MaxZoom = 80
)

// NewCamera creates a camera looking down at the board at 45 degrees
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:    24,
		ScreenW: screenW,
		ScreenH: screenH,
		Pitch:   45 * math.Pi / 180,
		Yaw:     30 * math.Pi / 180,
		dirty:   true,
	}
}

// CenterOn centers camera on a world position
func (c *Camera) CenterOn(p geom.Vec3) {
	c.TargetX, c.TargetZ = p.X, p.Z
	c.dirty = true
}

// Resize follows the window size
func (c *Camera) Resize(w, h int) {
	if w == c.ScreenW && h == c.ScreenH {
		return
	}
	c.ScreenW, c.ScreenH = w, h
	c.dirty = true
}

// Pan moves the camera by a screen-space drag in pixels
func (c *Camera) Pan(dx, dy float64) {
	cosY := math.Cos(c.Yaw)
	sinY := math.Sin(c.Yaw)
	scale := c.Zoom / float64(c.ScreenW)
	c.TargetX += (dx*cosY + dy*sinY) * scale
	c.TargetZ += (-dx*sinY + dy*cosY) * scale
	c.dirty = true
}

// Orbit turns the camera around its target
func (c *Camera) Orbit(radians float64) {
	c.Yaw = math.Mod(c.Yaw+radians, 2*math.Pi)
	c.dirty = true
}

// ZoomAt zooms toward a screen point, keeping that ground point fixed
func (c *Camera) ZoomAt(delta float64, screenX, screenY int) {
	wx, wz := c.ScreenToGround(float64(screenX), float64(screenY))
	c.Zoom *= 1 - delta*0.05
	c.Zoom = math.Max(MinZoom, math.Min(MaxZoom, c.Zoom))
	c.dirty = true
	wx2, wz2 := c.ScreenToGround(float64(screenX), float64(screenY))
	c.TargetX += wx - wx2
	c.TargetZ += wz - wz2
	c.dirty = true
}

func (c *Camera) update() {
	if !c.dirty {
		return
	}
	c.dirty = false

	dist := 100.0 // ortho: distance only affects clipping
	eye := geom.V3(
		c.TargetX+dist*math.Sin(c.Yaw)*math.Cos(c.Pitch),
		dist*math.Sin(c.Pitch),
		c.TargetZ+dist*math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
	c.view = geom.Mat4LookAt(eye, geom.V3(c.TargetX, 0, c.TargetZ), geom.V3(0, 1, 0))

	aspect := float64(c.ScreenW) / float64(c.ScreenH)
	halfW := c.Zoom / 2
	halfH := halfW / aspect
	c.proj = geom.Mat4Ortho(-halfW, halfW, -halfH, halfH, 0.1, 500)

	c.viewProj = c.proj.Mul(c.view)
	c.inverse = c.viewProj.Invert()
}

// ViewProj returns the combined view-projection matrix
func (c *Camera) ViewProj() geom.Mat4 {
	c.update()
	return c.viewProj
}

// Project converts a world point to screen pixels. depth grows away from
// the camera.
func (c *Camera) Project(p geom.Vec3) (sx, sy, depth float64) {
	clip := c.ViewProj().TransformPoint(p)
	sx = (clip.X*0.5 + 0.5) * float64(c.ScreenW)
	sy = (1 - (clip.Y*0.5 + 0.5)) * float64(c.ScreenH)
	return sx, sy, clip.Z
}

// Ray is the pick ray through a screen pixel
func (c *Camera) Ray(sx, sy float64) geom.Ray {
	c.update()
	ndcX := (sx/float64(c.ScreenW))*2 - 1
	ndcY := (1-sy/float64(c.ScreenH))*2 - 1
	near := c.inverse.TransformPoint(geom.V3(ndcX, ndcY, -1))
	far := c.inverse.TransformPoint(geom.V3(ndcX, ndcY, 1))
	return geom.Ray{Origin: near, Dir: far.Sub(near).Normalize()}
}

// ScreenToGround intersects the pick ray with the y=0 plane
func (c *Camera) ScreenToGround(sx, sy float64) (float64, float64) {
	r := c.Ray(sx, sy)
	if math.Abs(r.Dir.Y) < 1e-10 {
		return r.Origin.X, r.Origin.Z
	}
	p := r.At(-r.Origin.Y / r.Dir.Y)
	return p.X, p.Z
}
