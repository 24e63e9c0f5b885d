package mesh

import (
	"image/color"
	"math"
)

// Color3 is a linear RGB color in [0, 1]
type Color3 struct {
	R, G, B float64
}

func (c Color3) Scale(s float64) Color3 {
	return Color3{c.R * s, c.G * s, c.B * s}
}

func (c Color3) Add(o Color3) Color3 {
	return Color3{
		math.Min(c.R+o.R, 1),
		math.Min(c.G+o.G, 1),
		math.Min(c.B+o.B, 1),
	}
}

func (c Color3) Mul(o Color3) Color3 {
	return Color3{c.R * o.R, c.G * o.G, c.B * o.B}
}

// FromRGBA converts an 8-bit color, ignoring alpha
func FromRGBA(c color.RGBA) Color3 {
	return Color3{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

// Hex builds a color from 0xRRGGBB
func Hex(v uint32) Color3 {
	return Color3{
		float64(v>>16&0xff) / 255,
		float64(v>>8&0xff) / 255,
		float64(v&0xff) / 255,
	}
}
