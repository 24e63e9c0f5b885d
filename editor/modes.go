package editor

import (
	"log"

	"github.com/1siamBot/hexmech/engine/hexgrid"
)

// ModeKind is the active palette tool
type ModeKind int

const (
	ModeNone ModeKind = iota
	ModePaint
	ModeHeight
)

func (k ModeKind) String() string {
	switch k {
	case ModePaint:
		return "paint"
	case ModeHeight:
		return "height"
	}
	return "select"
}

// Mode decides what a cell pick does. Token picks ignore it.
type Mode struct {
	Kind    ModeKind
	Terrain hexgrid.Terrain // ModePaint
	Delta   int             // ModeHeight, +1 or -1
}

func PaintMode(t hexgrid.Terrain) Mode { return Mode{Kind: ModePaint, Terrain: t} }

// HeightMode with a zero delta is no mode at all
func HeightMode(delta int) Mode {
	if delta == 0 {
		return Mode{}
	}
	return Mode{Kind: ModeHeight, Delta: delta}
}

// SetMode replaces the current mode
func (s *State) SetMode(m Mode) {
	if m.Kind == ModeHeight && m.Delta == 0 {
		m = Mode{}
	}
	s.mode = m
}

func (s *State) Mode() Mode { return s.mode }

// ClosePalette drops back to plain selection
func (s *State) ClosePalette() { s.mode = Mode{} }

func (s *State) applyMode(c CellTarget) {
	cell := s.Grid.At(c.Col, c.Row)
	before := *cell
	switch s.mode.Kind {
	case ModePaint:
		if err := s.Grid.SetTerrain(c.Col, c.Row, s.mode.Terrain); err != nil {
			log.Printf("paint %v: %v", c, err)
			return
		}
	case ModeHeight:
		changed, err := s.Grid.AdjustHeight(c.Col, c.Row, s.mode.Delta)
		if err != nil {
			log.Printf("height %v: %v", c, err)
			return
		}
		if !changed {
			return
		}
		s.Tokens.Refresh(c.Col, c.Row)
	}
	s.record(before, *cell)
}
