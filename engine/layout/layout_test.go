package layout

import (
	"math"
	"testing"

	"github.com/1siamBot/hexmech/engine/geom"
)

func TestCellToWorld_Formula(t *testing.T) {
	l := New(DefaultConfig(), 10, 8)
	cases := []struct {
		col, row, h int
		want        geom.Vec3
	}{
		{0, 0, 0, geom.V3(-8, 0, -6)},
		{1, 0, 0, geom.V3(1.75-8, 0, -6-0.875)},
		{2, 3, 4, geom.V3(3.5-8, 1, 5.25-6)},
		{3, 1, 9, geom.V3(5.25-8, 2.25, 1.75-6-0.875)},
	}
	for _, c := range cases {
		got := l.CellToWorld(c.col, c.row, c.h)
		if math.Abs(got.X-c.want.X) > 1e-12 || math.Abs(got.Y-c.want.Y) > 1e-12 || math.Abs(got.Z-c.want.Z) > 1e-12 {
			t.Errorf("CellToWorld(%d,%d,%d) = %+v, want %+v", c.col, c.row, c.h, got, c.want)
		}
	}
}

func TestCellToWorld_Deterministic(t *testing.T) {
	l := New(DefaultConfig(), 7, 5)
	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Width; col++ {
			for h := 0; h <= 9; h++ {
				a := l.CellToWorld(col, row, h)
				b := l.CellToWorld(col, row, h)
				if a != b {
					t.Fatalf("CellToWorld(%d,%d,%d) not stable: %+v vs %+v", col, row, h, a, b)
				}
			}
		}
	}
}

func TestCellToWorld_UsesXOffsetFactor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.XOffsetFactor = 0.75
	got := New(cfg, 10, 10).CellToWorld(0, 0, 0)
	if got.X != -7.5 {
		t.Fatalf("x = %v, want -7.5 with factor 0.75", got.X)
	}
}

func TestCenter(t *testing.T) {
	l := New(DefaultConfig(), 3, 3)
	c := l.Center()
	a, b := l.CellToWorld(0, 0, 0), l.CellToWorld(2, 2, 0)
	if math.Abs(c.X-(a.X+b.X)/2) > 1e-12 || math.Abs(c.Z-(a.Z+b.Z)/2) > 1e-12 || c.Y != 0 {
		t.Fatalf("Center = %+v", c)
	}
	if (Layout{}).Center() != (geom.Vec3{}) {
		t.Fatal("empty layout center should be the origin")
	}
}
