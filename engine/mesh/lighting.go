package mesh

import (
	"math"

	"github.com/1siamBot/hexmech/engine/geom"
)

// DirectionalLight represents a sun-like light
type DirectionalLight struct {
	Direction geom.Vec3 // normalized direction TO the light (from surface)
	Color     Color3
	Intensity float64
}

// AmbientLight provides fill lighting
type AmbientLight struct {
	Color     Color3
	Intensity float64
}

// Lighting contains the scene lighting
type Lighting struct {
	Sun     DirectionalLight
	Fill    DirectionalLight
	Ambient AmbientLight
	HasFill bool
}

// DefaultLighting is a bright tabletop setup, sun from the upper left
func DefaultLighting() Lighting {
	return Lighting{
		Sun: DirectionalLight{
			Direction: geom.V3(-0.4, 0.85, -0.35).Normalize(),
			Color:     Color3{1.0, 0.98, 0.92},
			Intensity: 0.9,
		},
		Fill: DirectionalLight{
			Direction: geom.V3(0.5, 0.4, 0.6).Normalize(),
			Color:     Color3{0.7, 0.8, 1.0},
			Intensity: 0.35,
		},
		Ambient: AmbientLight{
			Color:     Color3{0.75, 0.78, 0.85},
			Intensity: 0.55,
		},
		HasFill: true,
	}
}

// Shade calculates the lit color for a surface. Both faces of a triangle
// are lit the same.
func (l *Lighting) Shade(normal geom.Vec3, base Color3) Color3 {
	result := base.Mul(l.Ambient.Color).Scale(l.Ambient.Intensity)

	ndotl := math.Abs(normal.Dot(l.Sun.Direction))
	result = result.Add(base.Mul(l.Sun.Color).Scale(ndotl * l.Sun.Intensity))

	if l.HasFill {
		ndotf := math.Max(0, normal.Dot(l.Fill.Direction))
		result = result.Add(base.Mul(l.Fill.Color).Scale(ndotf * l.Fill.Intensity))
	}
	return result
}
