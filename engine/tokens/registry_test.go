package tokens

import (
	"errors"
	"math"
	"testing"

	"github.com/1siamBot/hexmech/engine/geom"
	"github.com/1siamBot/hexmech/engine/hexgrid"
	"github.com/1siamBot/hexmech/engine/layout"
)

type recordAnim struct {
	starts   []ID
	from, to geom.Vec3
	canceled []ID
}

func (a *recordAnim) Start(id ID, from, to geom.Vec3) {
	a.starts = append(a.starts, id)
	a.from, a.to = from, to
}

func (a *recordAnim) Cancel(id ID) { a.canceled = append(a.canceled, id) }

func newRegistry(t *testing.T, w, h int, anim Animator) (*Registry, *hexgrid.Grid, layout.Layout) {
	t.Helper()
	g, err := hexgrid.New(w, h)
	if err != nil {
		t.Fatalf("New grid: %v", err)
	}
	lay := layout.New(layout.DefaultConfig(), w, h)
	return New(g, lay, anim), g, lay
}

func TestPlace(t *testing.T) {
	r, g, lay := newRegistry(t, 4, 4, nil)
	g.SetHeight(2, 1, 3)

	tok, err := r.Place("foo.stl", 2, 1, 7)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if tok.ID != 1 {
		t.Errorf("first id = %d, want 1", tok.ID)
	}
	if tok.Facing != 60 {
		t.Errorf("facing = %d, want 60", tok.Facing)
	}
	if tok.Visual != lay.CellToWorld(2, 1, 3) {
		t.Errorf("visual = %v, want %v", tok.Visual, lay.CellToWorld(2, 1, 3))
	}
	if !tok.Orientation.ApproxEqual(geom.QuatYaw(60), 1e-9) {
		t.Errorf("orientation = %v", tok.Orientation)
	}
	if got := g.At(2, 1).Occupant; got != int(tok.ID) {
		t.Errorf("occupant = %d", got)
	}
	if got, ok := r.At(2, 1); !ok || got != tok {
		t.Errorf("At(2,1) = %v, %v", got, ok)
	}
}

func TestPlace_Errors(t *testing.T) {
	r, _, _ := newRegistry(t, 2, 2, nil)
	if _, err := r.Place("a", 0, 0, 0); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if _, err := r.Place("b", 0, 0, 0); !errors.Is(err, ErrOccupied) {
		t.Errorf("occupied err = %v", err)
	}
	if _, err := r.Place("b", 2, 0, 0); !errors.Is(err, ErrInvalidCell) {
		t.Errorf("off-grid err = %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestMoveTo_UpdatesLogicalAndStartsTween(t *testing.T) {
	anim := &recordAnim{}
	r, g, lay := newRegistry(t, 5, 5, anim)
	tok, _ := r.Place("m", 1, 1, 0)
	start := tok.Visual

	if err := r.MoveTo(tok.ID, 3, 3); err != nil {
		t.Fatalf("MoveTo: %v", err)
	}
	if tok.Col != 3 || tok.Row != 3 {
		t.Errorf("logical = (%d,%d)", tok.Col, tok.Row)
	}
	if g.At(1, 1).Occupant != 0 || g.At(3, 3).Occupant != int(tok.ID) {
		t.Errorf("occupancy not moved")
	}
	if len(anim.starts) != 1 || anim.from != start || anim.to != lay.CellToWorld(3, 3, 0) {
		t.Errorf("tween = %v %v -> %v", anim.starts, anim.from, anim.to)
	}
	if tok.Visual != start {
		t.Errorf("visual moved before tween ran")
	}
}

func TestMoveTo_Errors(t *testing.T) {
	r, _, _ := newRegistry(t, 3, 3, nil)
	a, _ := r.Place("a", 0, 0, 0)
	r.Place("b", 1, 0, 0)

	tests := []struct {
		name     string
		id       ID
		col, row int
		want     error
	}{
		{"unknown", 99, 1, 1, ErrUnknownToken},
		{"off grid", a.ID, -1, 0, ErrInvalidCell},
		{"occupied", a.ID, 1, 0, ErrOccupied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.MoveTo(tt.id, tt.col, tt.row); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if a.Col != 0 || a.Row != 0 {
		t.Errorf("failed move changed position")
	}
}

func TestMoveTo_WithoutAnimatorSnaps(t *testing.T) {
	r, _, lay := newRegistry(t, 3, 3, nil)
	tok, _ := r.Place("a", 0, 0, 0)
	if err := r.MoveTo(tok.ID, 2, 2); err != nil {
		t.Fatalf("MoveTo: %v", err)
	}
	if tok.Visual != lay.CellToWorld(2, 2, 0) {
		t.Errorf("visual = %v", tok.Visual)
	}
}

func TestRotate_Accumulates(t *testing.T) {
	r, _, _ := newRegistry(t, 2, 2, nil)
	tok, _ := r.Place("a", 0, 0, 1)
	orig := tok.Orientation

	for i := 0; i < 3; i++ {
		r.Rotate(tok.ID, -FacingStep)
	}
	if tok.Facing != 240 {
		t.Errorf("facing = %d, want 240", tok.Facing)
	}
	for i := 0; i < 3; i++ {
		r.Rotate(tok.ID, FacingStep)
	}
	if tok.Facing != 60 || !tok.Orientation.ApproxEqual(orig, 1e-9) {
		t.Errorf("round trip: facing %d, q %v want %v", tok.Facing, tok.Orientation, orig)
	}
	if err := r.Rotate(42, 60); !errors.Is(err, ErrUnknownToken) {
		t.Errorf("unknown rotate err = %v", err)
	}
}

func TestRefresh_FollowsHeight(t *testing.T) {
	anim := &recordAnim{}
	r, g, lay := newRegistry(t, 3, 3, anim)
	tok, _ := r.Place("a", 1, 1, 0)
	g.SetHeight(1, 1, 5)
	r.Refresh(1, 1)
	if tok.Visual != lay.CellToWorld(1, 1, 5) {
		t.Errorf("visual = %v", tok.Visual)
	}
	if len(anim.canceled) != 1 || anim.canceled[0] != tok.ID {
		t.Errorf("canceled = %v", anim.canceled)
	}
	r.Refresh(0, 0)
}

func TestRebind_OffBoardAndBack(t *testing.T) {
	r, g, _ := newRegistry(t, 4, 4, nil)
	near, _ := r.Place("a", 0, 0, 0)
	far, _ := r.Place("b", 3, 3, 0)

	if err := g.Resize(2, 2); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	small := layout.New(layout.DefaultConfig(), 2, 2)
	r.Rebind(g, small)
	if near.OffBoard || !far.OffBoard {
		t.Fatalf("offboard near=%v far=%v", near.OffBoard, far.OffBoard)
	}
	if near.Visual != small.CellToWorld(0, 0, 0) {
		t.Errorf("near visual not re-derived")
	}
	if _, ok := r.At(0, 0); !ok {
		t.Errorf("near not re-marked")
	}

	g.Resize(4, 4)
	big := layout.New(layout.DefaultConfig(), 4, 4)
	r.Rebind(g, big)
	if far.OffBoard {
		t.Fatalf("far still offboard after regrow")
	}
	if got, ok := r.At(3, 3); !ok || got != far {
		t.Errorf("At(3,3) = %v, %v", got, ok)
	}
	if r.Len() != 2 || len(r.All()) != 2 || r.All()[0] != near {
		t.Errorf("All order changed")
	}
}

func TestSetVisual(t *testing.T) {
	r, _, _ := newRegistry(t, 2, 2, nil)
	tok, _ := r.Place("a", 0, 0, 0)
	p := geom.V3(1, 2, 3)
	if !r.SetVisual(tok.ID, p) || tok.Visual != p {
		t.Errorf("SetVisual not applied")
	}
	if r.SetVisual(9, p) {
		t.Errorf("SetVisual on unknown id reported true")
	}
}

func TestFacing_LargeStepCounts(t *testing.T) {
	cases := []struct {
		name  string
		steps int
		want  int
	}{
		{"one", 1, 60},
		{"minus one", -1, 300},
		{"wraps", 7, 60},
		{"max int", math.MaxInt, 60},
		{"min int", math.MinInt, 240},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, _, _ := newRegistry(t, 1, 1, nil)
			tok, err := r.Place("a", 0, 0, tc.steps)
			if err != nil {
				t.Fatalf("Place: %v", err)
			}
			if tok.Facing != tc.want {
				t.Errorf("facing = %d, want %d", tok.Facing, tc.want)
			}
		})
	}
}

func TestRotate_LargeDelta(t *testing.T) {
	r, _, _ := newRegistry(t, 1, 1, nil)
	tok, _ := r.Place("a", 0, 0, 0)
	if err := r.Rotate(tok.ID, math.MaxInt); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if tok.Facing != 7 {
		t.Errorf("facing = %d, want 7", tok.Facing)
	}
	if err := r.Rotate(tok.ID, math.MinInt); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if tok.Facing != 359 {
		t.Errorf("facing = %d, want 359", tok.Facing)
	}
}
