package geom

import "math"

// Quat is a unit quaternion W + Xi + Yj + Zk.
type Quat struct {
	W, X, Y, Z float64
}

// QuatIdentity is the zero rotation.
func QuatIdentity() Quat { return Quat{W: 1} }

// QuatAxisAngle builds a rotation of angle radians about axis.
func QuatAxisAngle(axis Vec3, angle float64) Quat {
	a := axis.Normalize()
	s := math.Sin(angle / 2)
	return Quat{W: math.Cos(angle / 2), X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

// QuatYaw is a rotation about the up axis, in degrees.
func QuatYaw(degrees float64) Quat {
	return QuatAxisAngle(V3(0, 1, 0), degrees*math.Pi/180)
}

// Mul returns q*o: o is applied first, then q.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

func (q Quat) Dot(o Quat) float64 { return q.W*o.W + q.X*o.X + q.Y*o.Y + q.Z*o.Z }

func (q Quat) Normalize() Quat {
	l := math.Sqrt(q.Dot(q))
	if l < 1e-10 {
		return QuatIdentity()
	}
	return Quat{q.W / l, q.X / l, q.Y / l, q.Z / l}
}

// ApproxEqual reports whether q and o describe the same rotation.
// q and -q are the same rotation.
func (q Quat) ApproxEqual(o Quat, tol float64) bool {
	return 1-math.Abs(q.Normalize().Dot(o.Normalize())) <= tol
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	return q.Mat4().TransformDir(v)
}

// Mat4 converts the rotation into a column-major matrix.
func (q Quat) Mat4() Mat4 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	m := Mat4Identity()
	m[0] = 1 - 2*(y*y+z*z)
	m[1] = 2 * (x*y + w*z)
	m[2] = 2 * (x*z - w*y)
	m[4] = 2 * (x*y - w*z)
	m[5] = 1 - 2*(x*x+z*z)
	m[6] = 2 * (y*z + w*x)
	m[8] = 2 * (x*z + w*y)
	m[9] = 2 * (y*z - w*x)
	m[10] = 1 - 2*(x*x+y*y)
	return m
}
