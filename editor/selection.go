package editor

import (
	"fmt"
	"image/color"
	"log"

	"github.com/1siamBot/hexmech/engine/tokens"
)

// MaxSelection is the depth of the selection stack
const MaxSelection = 2

// Target is what a pick resolved to: CellTarget, TokenTarget or Background
type Target interface {
	isTarget()
	String() string
}

type CellTarget struct{ Col, Row int }

type TokenTarget struct{ ID tokens.ID }

// Background is a pick that hit the base slab or nothing at all
type Background struct{}

func (CellTarget) isTarget()  {}
func (TokenTarget) isTarget() {}
func (Background) isTarget()  {}

func (c CellTarget) String() string  { return fmt.Sprintf("cell(%d,%d)", c.Col, c.Row) }
func (t TokenTarget) String() string { return fmt.Sprintf("token(%d)", t.ID) }
func (Background) String() string    { return "background" }

type entry struct {
	target   Target
	saved    color.RGBA
	hadSaved bool
}

// push adds t, saving its current tint and applying the highlight
func (s *State) push(t Target) {
	for i := range s.stack {
		if s.stack[i].target == t {
			s.removeAt(i)
			break
		}
	}
	for len(s.stack) >= MaxSelection {
		s.removeAt(0)
	}
	saved, had := s.tints[t]
	s.stack = append(s.stack, entry{target: t, saved: saved, hadSaved: had})
	s.tints[t] = s.highlight
}

func (s *State) removeAt(i int) {
	e := s.stack[i]
	if e.hadSaved {
		s.tints[e.target] = e.saved
	} else {
		delete(s.tints, e.target)
	}
	s.stack = append(s.stack[:i], s.stack[i+1:]...)
}

func (s *State) pop() (Target, bool) {
	if len(s.stack) == 0 {
		return nil, false
	}
	t := s.stack[len(s.stack)-1].target
	s.removeAt(len(s.stack) - 1)
	return t, true
}

func (s *State) top() (Target, bool) {
	if len(s.stack) == 0 {
		return nil, false
	}
	return s.stack[len(s.stack)-1].target, true
}

// ClearSelection pops everything, restoring tints newest first
func (s *State) ClearSelection() {
	for len(s.stack) > 0 {
		s.pop()
	}
}

// Selected returns the stack, oldest first
func (s *State) Selected() []Target {
	out := make([]Target, len(s.stack))
	for i, e := range s.stack {
		out[i] = e.target
	}
	return out
}

// Tint returns the color override for t, if any
func (s *State) Tint(t Target) (color.RGBA, bool) {
	c, ok := s.tints[t]
	return c, ok
}

// SetTint installs a color override that outlives selection
func (s *State) SetTint(t Target, c color.RGBA) {
	for i := range s.stack {
		if s.stack[i].target == t {
			s.stack[i].saved, s.stack[i].hadSaved = c, true
			return
		}
	}
	s.tints[t] = c
}

// ClearTint removes the override installed by SetTint
func (s *State) ClearTint(t Target) {
	for i := range s.stack {
		if s.stack[i].target == t {
			s.stack[i].hadSaved = false
			return
		}
	}
	delete(s.tints, t)
}

// ToggleMark puts marker c on t, or takes it off if t already carries it.
// Marks survive selection and are dropped when a new board is loaded.
func (s *State) ToggleMark(t Target, c color.RGBA) {
	switch t.(type) {
	case CellTarget, TokenTarget:
	default:
		return
	}
	if cur, ok := s.baseTint(t); ok && cur == c {
		s.ClearTint(t)
		return
	}
	s.SetTint(t, c)
}

// baseTint is the override of t ignoring the selection highlight
func (s *State) baseTint(t Target) (color.RGBA, bool) {
	for _, e := range s.stack {
		if e.target == t {
			return e.saved, e.hadSaved
		}
	}
	c, ok := s.tints[t]
	return c, ok
}

// HandlePick runs one pick through the selection state machine
func (s *State) HandlePick(t Target) {
	switch tt := t.(type) {
	case nil, Background:
		return
	case CellTarget:
		if !s.Grid.InBounds(tt.Col, tt.Row) {
			log.Printf("pick outside board: %v", tt)
			return
		}
		if s.mode.Kind != ModeNone {
			s.applyMode(tt)
			return
		}
		if top, ok := s.top(); ok {
			if tok, ok := top.(TokenTarget); ok {
				s.moveSelected(tok, tt)
				return
			}
		}
	case TokenTarget:
		tok, ok := s.Tokens.Get(tt.ID)
		if !ok || tok.OffBoard {
			log.Printf("pick on missing token %d", tt.ID)
			return
		}
	}

	if top, ok := s.top(); ok && top == t {
		s.pop()
		return
	}
	s.push(t)
}

func (s *State) moveSelected(tok TokenTarget, dst CellTarget) {
	s.pop()
	if err := s.Tokens.MoveTo(tok.ID, dst.Col, dst.Row); err != nil {
		log.Printf("move %v to %v: %v", tok, dst, err)
	} else {
		s.Modified = true
	}
	s.ClearSelection()
}

// RotateSelected turns the selected token by steps*60 degrees. It reports
// whether a token was selected.
func (s *State) RotateSelected(steps int) bool {
	top, ok := s.top()
	if !ok {
		return false
	}
	tok, ok := top.(TokenTarget)
	if !ok {
		return false
	}
	if err := s.Tokens.Rotate(tok.ID, steps*tokens.FacingStep); err != nil {
		log.Printf("rotate %v: %v", tok, err)
		return false
	}
	s.Modified = true
	return true
}
