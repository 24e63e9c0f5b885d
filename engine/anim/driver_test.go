package anim

import (
	"testing"

	"github.com/1siamBot/hexmech/engine/geom"
	"github.com/1siamBot/hexmech/engine/hexgrid"
	"github.com/1siamBot/hexmech/engine/layout"
	"github.com/1siamBot/hexmech/engine/tokens"
)

func setup(t *testing.T) (*Driver, *tokens.Registry, layout.Layout) {
	t.Helper()
	g, err := hexgrid.New(5, 5)
	if err != nil {
		t.Fatalf("New grid: %v", err)
	}
	lay := layout.New(layout.DefaultConfig(), 5, 5)
	d := NewDriver(0, 0)
	return d, tokens.New(g, lay, d), lay
}

func run(d *Driver, reg *tokens.Registry, max int) int {
	for i := 1; i <= max; i++ {
		d.Tick(reg)
		if _, ok := d.Active(); !ok {
			return i
		}
	}
	return -1
}

func TestMoveConvergesExactly(t *testing.T) {
	d, reg, lay := setup(t)
	tok, err := reg.Place("m", 1, 1, 0)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if err := reg.MoveTo(tok.ID, 3, 3); err != nil {
		t.Fatalf("MoveTo: %v", err)
	}
	tw, ok := d.Active()
	if !ok || tw.Token != tok.ID {
		t.Fatalf("no tween after move")
	}

	n := run(d, reg, 2*DefaultFrames)
	if n < 0 || n > DefaultFrames {
		t.Fatalf("tween did not finish within %d frames (n=%d)", DefaultFrames, n)
	}
	if tok.Col != 3 || tok.Row != 3 {
		t.Errorf("logical = (%d,%d)", tok.Col, tok.Row)
	}
	if want := lay.CellToWorld(3, 3, 0); tok.Visual != want {
		t.Errorf("visual = %v, want exactly %v", tok.Visual, want)
	}
}

func TestTickAdvancesByStep(t *testing.T) {
	d, reg, lay := setup(t)
	tok, _ := reg.Place("m", 0, 0, 0)
	from := tok.Visual
	reg.MoveTo(tok.ID, 4, 0)
	d.Tick(reg)

	want := from.Add(lay.CellToWorld(4, 0, 0).Sub(from).Scale(1.0 / DefaultFrames))
	if tok.Visual.Sub(want).Len() > 1e-12 {
		t.Errorf("after one tick visual = %v, want %v", tok.Visual, want)
	}
}

func TestPreemptSnapsPreviousToken(t *testing.T) {
	d, reg, lay := setup(t)
	a, _ := reg.Place("a", 0, 0, 0)
	b, _ := reg.Place("b", 4, 4, 0)
	reg.MoveTo(a.ID, 2, 0)
	d.Tick(reg)
	reg.MoveTo(b.ID, 4, 2)

	d.Tick(reg)
	if want := lay.CellToWorld(2, 0, 0); a.Visual != want {
		t.Errorf("pre-empted visual = %v, want %v", a.Visual, want)
	}
	if tw, ok := d.Active(); !ok || tw.Token != b.ID {
		t.Errorf("active tween = %+v, %v", tw, ok)
	}
}

func TestRetargetSameToken(t *testing.T) {
	d, reg, lay := setup(t)
	a, _ := reg.Place("a", 0, 0, 0)
	reg.MoveTo(a.ID, 4, 0)
	for i := 0; i < 10; i++ {
		d.Tick(reg)
	}
	mid := a.Visual
	reg.MoveTo(a.ID, 0, 4)
	tw, _ := d.Active()
	if tw.Start != mid {
		t.Errorf("retarget start = %v, want current %v", tw.Start, mid)
	}
	if run(d, reg, 2*DefaultFrames) < 0 {
		t.Fatalf("retargeted tween never finished")
	}
	if a.Visual != lay.CellToWorld(0, 4, 0) {
		t.Errorf("visual = %v", a.Visual)
	}
}

func TestCancel(t *testing.T) {
	d, reg, _ := setup(t)
	a, _ := reg.Place("a", 0, 0, 0)
	reg.MoveTo(a.ID, 3, 0)
	d.Cancel(a.ID)
	if _, ok := d.Active(); ok {
		t.Fatalf("tween still active after cancel")
	}
	before := a.Visual
	d.Tick(reg)
	if a.Visual != before {
		t.Errorf("canceled tween still moved token")
	}
}

func TestZeroLengthMoveSnaps(t *testing.T) {
	d := NewDriver(10, 0.5)
	p := geom.V3(1, 0, 1)
	d.Start(7, p, p)
	fp := fakePoser{7: p}
	d.Tick(fp)
	if _, ok := d.Active(); ok {
		t.Errorf("zero-length tween still active")
	}
}

type fakePoser map[tokens.ID]geom.Vec3

func (f fakePoser) Visual(id tokens.ID) (geom.Vec3, bool) {
	p, ok := f[id]
	return p, ok
}

func (f fakePoser) SetVisual(id tokens.ID, p geom.Vec3) bool {
	f[id] = p
	return true
}

func TestRestartAfterPreemptConverges(t *testing.T) {
	d, reg, lay := setup(t)
	a, _ := reg.Place("a", 0, 0, 0)
	b, _ := reg.Place("b", 4, 4, 0)

	if err := reg.MoveTo(a.ID, 4, 0); err != nil {
		t.Fatalf("MoveTo a: %v", err)
	}
	for i := 0; i < 10; i++ {
		d.Tick(reg)
	}
	// b pre-empts a, then a moves again before the queued snap runs
	if err := reg.MoveTo(b.ID, 0, 4); err != nil {
		t.Fatalf("MoveTo b: %v", err)
	}
	if err := reg.MoveTo(a.ID, 0, 2); err != nil {
		t.Fatalf("MoveTo a again: %v", err)
	}

	if n := run(d, reg, 2*DefaultFrames); n < 0 {
		t.Fatalf("tween never finished, a at %v", a.Visual)
	}
	if want := lay.CellToWorld(0, 2, 0); a.Visual != want {
		t.Errorf("a visual = %v, want %v", a.Visual, want)
	}
	if want := lay.CellToWorld(0, 4, 0); b.Visual != want {
		t.Errorf("b visual = %v, want %v", b.Visual, want)
	}
}
