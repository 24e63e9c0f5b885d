package editor

import "github.com/1siamBot/hexmech/engine/hexgrid"

// Action is an undoable cell edit
type Action struct {
	Col, Row   int
	OldHeight  int
	NewHeight  int
	OldTerrain hexgrid.Terrain
	NewTerrain hexgrid.Terrain
}

func (s *State) record(before, after hexgrid.Cell) {
	if before.Height == after.Height && before.Terrain == after.Terrain {
		return
	}
	s.undo = append(s.undo, Action{
		Col: after.Col, Row: after.Row,
		OldHeight: before.Height, NewHeight: after.Height,
		OldTerrain: before.Terrain, NewTerrain: after.Terrain,
	})
	s.redo = nil
	s.Modified = true
}

func (s *State) restore(col, row, height int, t hexgrid.Terrain) {
	c := s.Grid.At(col, row)
	if c == nil {
		return
	}
	heightChanged := c.Height != height
	c.Height, c.Terrain = height, t
	if heightChanged {
		s.Tokens.Refresh(col, row)
	}
}

// Undo reverts the last cell edit
func (s *State) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	a := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.restore(a.Col, a.Row, a.OldHeight, a.OldTerrain)
	s.redo = append(s.redo, a)
	s.Modified = true
	return true
}

// Redo re-applies the last undone edit
func (s *State) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}
	a := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.restore(a.Col, a.Row, a.NewHeight, a.NewTerrain)
	s.undo = append(s.undo, a)
	s.Modified = true
	return true
}

func (s *State) resetHistory() {
	s.undo, s.redo = nil, nil
}
