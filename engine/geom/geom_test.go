package geom

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestQuatYawMatchesRotateY(t *testing.T) {
	for _, deg := range []float64{0, 60, 120, 180, 240, 300, -60} {
		q := QuatYaw(deg).Mat4()
		m := Mat4RotateY(deg * math.Pi / 180)
		for i := range q {
			if !near(q[i], m[i]) {
				t.Fatalf("yaw %v: element %d = %v, want %v", deg, i, q[i], m[i])
			}
		}
	}
}

func TestQuatLeftRightRoundTrip(t *testing.T) {
	start := QuatYaw(120)
	q := start
	for i := 0; i < 5; i++ {
		q = QuatYaw(60).Mul(q)
	}
	for i := 0; i < 5; i++ {
		q = QuatYaw(-60).Mul(q)
	}
	if !q.ApproxEqual(start, 1e-12) {
		t.Fatalf("round trip drifted: got %+v, want %+v", q, start)
	}
}

func TestQuatFullTurnIsIdentity(t *testing.T) {
	q := QuatIdentity()
	for i := 0; i < 6; i++ {
		q = QuatYaw(60).Mul(q)
	}
	// 360 degrees gives -identity, which is the same rotation.
	if !q.ApproxEqual(QuatIdentity(), 1e-12) {
		t.Fatalf("six 60 degree steps should be a full turn, got %+v", q)
	}
}

func TestQuatRotate(t *testing.T) {
	v := QuatYaw(90).Rotate(V3(1, 0, 0))
	if !near(v.X, 0) || !near(v.Y, 0) || !near(v.Z, -1) {
		t.Fatalf("yaw 90 of +X = %+v, want (0,0,-1)", v)
	}
}

func TestRayIntersectTriangle(t *testing.T) {
	r := Ray{Origin: V3(0.2, 5, 0.2), Dir: V3(0, -1, 0)}
	tt, ok := r.IntersectTriangle(V3(0, 0, 0), V3(1, 0, 0), V3(0, 0, 1))
	if !ok {
		t.Fatal("expected a hit")
	}
	if !near(tt, 5) {
		t.Fatalf("t = %v, want 5", tt)
	}
	if p := r.At(tt); !near(p.Y, 0) {
		t.Fatalf("hit point %+v should be on the plane", p)
	}

	miss := Ray{Origin: V3(2, 5, 2), Dir: V3(0, -1, 0)}
	if _, ok := miss.IntersectTriangle(V3(0, 0, 0), V3(1, 0, 0), V3(0, 0, 1)); ok {
		t.Fatal("ray outside the triangle should miss")
	}

	behind := Ray{Origin: V3(0.2, -5, 0.2), Dir: V3(0, -1, 0)}
	if _, ok := behind.IntersectTriangle(V3(0, 0, 0), V3(1, 0, 0), V3(0, 0, 1)); ok {
		t.Fatal("triangle behind the origin should miss")
	}
}

func TestRayIntersectBox(t *testing.T) {
	min, max := V3(-1, 0, -1), V3(1, 2, 1)
	cases := []struct {
		name string
		ray  Ray
		hit  bool
		t    float64
	}{
		{"from above", Ray{Origin: V3(0, 5, 0), Dir: V3(0, -1, 0)}, true, 3},
		{"diagonal", Ray{Origin: V3(-3, 1, 0), Dir: V3(1, 0, 0)}, true, 2},
		{"beside", Ray{Origin: V3(2, 5, 0), Dir: V3(0, -1, 0)}, false, 0},
		{"pointing away", Ray{Origin: V3(0, 5, 0), Dir: V3(0, 1, 0)}, false, 0},
		{"inside", Ray{Origin: V3(0, 1, 0), Dir: V3(0, 1, 0)}, true, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.ray.IntersectBox(min, max)
			if ok != tc.hit {
				t.Fatalf("hit = %v, want %v", ok, tc.hit)
			}
			if ok && !near(got, tc.t) {
				t.Errorf("t = %v, want %v", got, tc.t)
			}
		})
	}

	flat := Ray{Origin: V3(0.5, 3, 0.5), Dir: V3(0, -1, 0)}
	if got, ok := flat.IntersectBox(V3(0, 1, 0), V3(1, 1, 1)); !ok || !near(got, 2) {
		t.Errorf("flat box = %v, %v; want 2, true", got, ok)
	}
}

func TestMat4InvertRoundTrip(t *testing.T) {
	m := Mat4Translate(1, 2, 3).Mul(Mat4RotateY(0.7)).Mul(Mat4Scale(2, 2, 2))
	p := V3(0.5, -1, 4)
	back := m.Invert().TransformPoint(m.TransformPoint(p))
	if !near(back.X, p.X) || !near(back.Y, p.Y) || !near(back.Z, p.Z) {
		t.Fatalf("invert round trip = %+v, want %+v", back, p)
	}
}
