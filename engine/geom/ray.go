package geom

import "math"

// Ray is a half line from Origin along Dir.
type Ray struct {
	Origin, Dir Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float64) Vec3 { return r.Origin.Add(r.Dir.Scale(t)) }

// IntersectTriangle returns the ray parameter of the hit with triangle
// (a, b, c), using the Moller-Trumbore test. Both faces count.
func (r Ray) IntersectTriangle(a, b, c Vec3) (float64, bool) {
	const eps = 1e-9
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < eps {
		return 0, false
	}
	return t, true
}

// IntersectBox returns the entry parameter of the ray into the axis-aligned
// box [min, max], or 0 when the origin is inside. Flat boxes are allowed.
func (r Ray) IntersectBox(min, max Vec3) (float64, bool) {
	tNear, tFar := math.Inf(-1), math.Inf(1)
	axes := [3][4]float64{
		{r.Origin.X, r.Dir.X, min.X, max.X},
		{r.Origin.Y, r.Dir.Y, min.Y, max.Y},
		{r.Origin.Z, r.Dir.Z, min.Z, max.Z},
	}
	for _, a := range axes {
		o, d, lo, hi := a[0], a[1], a[2], a[3]
		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tNear, tFar = math.Max(tNear, t1), math.Min(tFar, t2)
		if tNear > tFar {
			return 0, false
		}
	}
	if tFar < 0 {
		return 0, false
	}
	return math.Max(tNear, 0), true
}
