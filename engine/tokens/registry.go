// Package tokens tracks the mechs standing on the board. A token's cell is
// authoritative; its visual pose is derived from the layout and may lag
// behind while the animation driver moves it.
package tokens

import (
	"errors"
	"fmt"

	"github.com/1siamBot/hexmech/engine/geom"
	"github.com/1siamBot/hexmech/engine/hexgrid"
	"github.com/1siamBot/hexmech/engine/layout"
)

// FacingStep is one placement/rotation step in degrees
const FacingStep = 60

const stepsPerTurn = 360 / FacingStep

var (
	ErrInvalidCell  = errors.New("tokens: target cell is outside the board")
	ErrOccupied     = errors.New("tokens: target cell is occupied")
	ErrUnknownToken = errors.New("tokens: unknown token")
)

// ID identifies a token for the session. Zero is never issued.
type ID int

// Token is a placed mech
type Token struct {
	ID          ID
	Model       string
	Col, Row    int
	Facing      int // degrees, [0, 360)
	Visual      geom.Vec3
	Orientation geom.Quat

	// OffBoard is set when a resize removed the token's cell.
	OffBoard bool
}

// Animator receives the visual leg of every move
type Animator interface {
	Start(id ID, from, to geom.Vec3)
	Cancel(id ID)
}

// Registry owns all tokens and keeps grid occupancy in sync
type Registry struct {
	grid   *hexgrid.Grid
	lay    layout.Layout
	anim   Animator
	tokens map[ID]*Token
	order  []ID
	nextID ID
}

// New creates an empty registry. anim may be nil, in which case moves
// snap instantly.
func New(grid *hexgrid.Grid, lay layout.Layout, anim Animator) *Registry {
	return &Registry{
		grid:   grid,
		lay:    lay,
		anim:   anim,
		tokens: make(map[ID]*Token),
		nextID: 1,
	}
}

func normalizeDegrees(d int) int {
	d %= 360
	if d < 0 {
		d += 360
	}
	return d
}

func (r *Registry) world(col, row int) geom.Vec3 {
	h := 0
	if c := r.grid.At(col, row); c != nil {
		h = c.Height
	}
	return r.lay.CellToWorld(col, row, h)
}

func (r *Registry) checkTarget(col, row int, self ID) error {
	c := r.grid.At(col, row)
	if c == nil {
		return fmt.Errorf("%w: (%d,%d)", ErrInvalidCell, col, row)
	}
	if c.Occupant != 0 && ID(c.Occupant) != self {
		return fmt.Errorf("%w: (%d,%d) holds token %d", ErrOccupied, col, row, c.Occupant)
	}
	return nil
}

// Place puts a new token on (col, row) facing facingSteps*60 degrees
func (r *Registry) Place(model string, col, row, facingSteps int) (*Token, error) {
	if err := r.checkTarget(col, row, 0); err != nil {
		return nil, err
	}
	facing := normalizeDegrees((facingSteps % stepsPerTurn) * FacingStep)
	t := &Token{
		ID:          r.nextID,
		Model:       model,
		Col:         col,
		Row:         row,
		Facing:      facing,
		Visual:      r.world(col, row),
		Orientation: geom.QuatYaw(float64(facing)),
	}
	r.nextID++
	r.tokens[t.ID] = t
	r.order = append(r.order, t.ID)
	r.grid.SetOccupant(col, row, int(t.ID))
	return t, nil
}

// MoveTo moves the token's logical position at once and hands the visual
// leg to the animator.
func (r *Registry) MoveTo(id ID, col, row int) error {
	t, ok := r.tokens[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownToken, id)
	}
	if err := r.checkTarget(col, row, id); err != nil {
		return err
	}
	if !t.OffBoard && r.grid.At(t.Col, t.Row).Occupant == int(id) {
		r.grid.SetOccupant(t.Col, t.Row, 0)
	}
	t.Col, t.Row = col, row
	t.OffBoard = false
	r.grid.SetOccupant(col, row, int(id))

	target := r.world(col, row)
	if r.anim == nil {
		t.Visual = target
		return nil
	}
	r.anim.Start(id, t.Visual, target)
	return nil
}

// Rotate turns the token by deltaDegrees about the up axis, on top of its
// current orientation.
func (r *Registry) Rotate(id ID, deltaDegrees int) error {
	t, ok := r.tokens[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownToken, id)
	}
	deltaDegrees %= 360
	t.Orientation = geom.QuatYaw(float64(deltaDegrees)).Mul(t.Orientation).Normalize()
	t.Facing = normalizeDegrees(t.Facing + deltaDegrees)
	return nil
}

// Visual returns the drawn position of a token
func (r *Registry) Visual(id ID) (geom.Vec3, bool) {
	t, ok := r.tokens[id]
	if !ok {
		return geom.Vec3{}, false
	}
	return t.Visual, true
}

// SetVisual updates the drawn position of a token
func (r *Registry) SetVisual(id ID, p geom.Vec3) bool {
	t, ok := r.tokens[id]
	if !ok {
		return false
	}
	t.Visual = p
	return true
}

// Refresh re-derives the pose of the token on (col, row), if any, after the
// cell height changed.
func (r *Registry) Refresh(col, row int) {
	t, ok := r.At(col, row)
	if !ok {
		return
	}
	if r.anim != nil {
		r.anim.Cancel(t.ID)
	}
	t.Visual = r.world(col, row)
}

// Rebind attaches the registry to a resized grid and layout. Tokens whose
// cell no longer exists are flagged OffBoard and come back if the board
// grows again.
func (r *Registry) Rebind(grid *hexgrid.Grid, lay layout.Layout) {
	r.grid, r.lay = grid, lay
	grid.ClearOccupants()
	for _, id := range r.order {
		t := r.tokens[id]
		if r.anim != nil {
			r.anim.Cancel(id)
		}
		if r.checkTarget(t.Col, t.Row, id) != nil {
			t.OffBoard = true
			continue
		}
		t.OffBoard = false
		grid.SetOccupant(t.Col, t.Row, int(id))
		t.Visual = r.world(t.Col, t.Row)
	}
}

// Get looks up a token by id
func (r *Registry) Get(id ID) (*Token, bool) {
	t, ok := r.tokens[id]
	return t, ok
}

// At returns the token standing on (col, row)
func (r *Registry) At(col, row int) (*Token, bool) {
	c := r.grid.At(col, row)
	if c == nil || c.Occupant == 0 {
		return nil, false
	}
	return r.Get(ID(c.Occupant))
}

// All returns tokens in placement order
func (r *Registry) All() []*Token {
	out := make([]*Token, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tokens[id])
	}
	return out
}

// Len is the number of tokens, on or off the board
func (r *Registry) Len() int { return len(r.order) }
