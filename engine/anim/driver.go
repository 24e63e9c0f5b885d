// Package anim moves token visuals toward their logical cells, one frame
// at a time.
package anim

import (
	"github.com/1siamBot/hexmech/engine/geom"
	"github.com/1siamBot/hexmech/engine/tokens"
)

const (
	DefaultFrames  = 50
	DefaultEpsilon = 0.1
)

// Tween is a single in-flight move
type Tween struct {
	Token  tokens.ID
	Start  geom.Vec3
	Target geom.Vec3
	Step   geom.Vec3
}

// Poser is what the driver reads and writes visuals through.
// *tokens.Registry satisfies it.
type Poser interface {
	Visual(id tokens.ID) (geom.Vec3, bool)
	SetVisual(id tokens.ID, p geom.Vec3) bool
}

// Driver holds at most one tween. Starting a new move pre-empts the
// previous one, snapping that token to its target.
type Driver struct {
	Frames  int
	Epsilon float64

	active  bool
	tween   Tween
	pending []snap
}

type snap struct {
	id tokens.ID
	p  geom.Vec3
}

// NewDriver returns a driver; non-positive arguments fall back to the defaults.
func NewDriver(frames int, epsilon float64) *Driver {
	if frames <= 0 {
		frames = DefaultFrames
	}
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &Driver{Frames: frames, Epsilon: epsilon}
}

// Start implements tokens.Animator. A snap still queued for id is
// dropped: the new tween starts from the visual the caller passed in.
func (d *Driver) Start(id tokens.ID, from, to geom.Vec3) {
	d.dropPending(id)
	if d.active && d.tween.Token != id {
		d.pending = append(d.pending, snap{d.tween.Token, d.tween.Target})
	}
	frames := d.Frames
	if frames <= 0 {
		frames = DefaultFrames
	}
	d.tween = Tween{
		Token:  id,
		Start:  from,
		Target: to,
		Step:   to.Sub(from).Scale(1 / float64(frames)),
	}
	d.active = true
}

// Cancel drops the tween for id, if it is the active one
func (d *Driver) Cancel(id tokens.ID) {
	if d.active && d.tween.Token == id {
		d.active = false
	}
	d.dropPending(id)
}

func (d *Driver) dropPending(id tokens.ID) {
	kept := d.pending[:0]
	for _, s := range d.pending {
		if s.id != id {
			kept = append(kept, s)
		}
	}
	d.pending = kept
}

// Active returns the in-flight tween
func (d *Driver) Active() (Tween, bool) {
	return d.tween, d.active
}

// Tick advances the active tween by one step. Once the remaining
// horizontal distance drops under Epsilon the token snaps to its target.
func (d *Driver) Tick(p Poser) {
	for _, s := range d.pending {
		p.SetVisual(s.id, s.p)
	}
	d.pending = d.pending[:0]
	if !d.active {
		return
	}

	pos, ok := p.Visual(d.tween.Token)
	if !ok {
		d.active = false
		return
	}
	next := pos.Add(d.tween.Step)
	if d.tween.Target.Sub(next).LenXZ() < d.Epsilon {
		next = d.tween.Target
		d.active = false
	}
	p.SetVisual(d.tween.Token, next)
}
