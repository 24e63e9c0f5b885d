// Package editor is the board controller: it owns the grid, the tokens and
// the selection, and turns picks and palette events into edits. It has no
// rendering or windowing dependencies.
package editor

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/1siamBot/hexmech/engine/anim"
	"github.com/1siamBot/hexmech/engine/config"
	"github.com/1siamBot/hexmech/engine/hexgrid"
	"github.com/1siamBot/hexmech/engine/layout"
	"github.com/1siamBot/hexmech/engine/mapfile"
	"github.com/1siamBot/hexmech/engine/tokens"
)

var ErrBoardFull = errors.New("editor: no free cell")

// State holds map editor state
type State struct {
	Grid   *hexgrid.Grid
	Layout layout.Layout
	Tokens *tokens.Registry
	Anim   *anim.Driver

	FilePath string
	Modified bool

	cfg       config.Config
	highlight color.RGBA
	stack     []entry
	tints     map[Target]color.RGBA
	mode      Mode
	undo      []Action
	redo      []Action
	mechIdx   int
}

// NewState creates an empty board of cfg.Board size
func NewState(cfg config.Config) (*State, error) {
	hl, err := cfg.HighlightColor()
	if err != nil {
		return nil, err
	}
	g, err := hexgrid.New(cfg.Board.Width, cfg.Board.Height)
	if err != nil {
		return nil, err
	}
	s := &State{
		cfg:       cfg,
		highlight: hl,
		tints:     make(map[Target]color.RGBA),
	}
	if err := s.swap(g, nil); err != nil {
		return nil, err
	}
	return s, nil
}

// swap installs a fresh board and registry built from placements
func (s *State) swap(g *hexgrid.Grid, placements []mapfile.Placement) error {
	lay := layout.New(s.cfg.Layout, g.Width, g.Height)
	drv := anim.NewDriver(s.cfg.Anim.Frames, s.cfg.Anim.Epsilon)
	reg := tokens.New(g, lay, drv)
	for _, p := range placements {
		if _, err := reg.Place(p.Model, p.X, p.Y, p.AngleSteps); err != nil {
			return fmt.Errorf("line %d: %w", p.Line, err)
		}
	}
	s.ClearSelection()
	s.Grid, s.Layout, s.Tokens, s.Anim = g, lay, reg, drv
	s.tints = make(map[Target]color.RGBA)
	s.mode = Mode{}
	s.resetHistory()
	s.Modified = false
	return nil
}

// LoadMap loads a map file. On any error the current board is kept.
func (s *State) LoadMap(path string) error {
	m, err := mapfile.Load(path)
	if err != nil {
		return err
	}
	if err := s.Apply(m); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	s.FilePath = path
	return nil
}

// Apply replaces the board and tokens with a parsed map
func (s *State) Apply(m *mapfile.Map) error {
	return s.swap(m.Grid, m.Placements)
}

// Resize reallocates the board. Terrain and heights are discarded; tokens
// keep their cells and go off board where the cell no longer exists.
func (s *State) Resize(width, height int) error {
	if err := s.Grid.Resize(width, height); err != nil {
		return err
	}
	s.ClearSelection()
	s.Layout = layout.New(s.cfg.Layout, width, height)
	s.Tokens.Rebind(s.Grid, s.Layout)
	s.resetHistory()
	s.Modified = true
	return nil
}

// Tick advances animation by one frame
func (s *State) Tick() {
	s.Anim.Tick(s.Tokens)
}

// Highlight is the selection tint
func (s *State) Highlight() color.RGBA { return s.highlight }

// Export writes the board and on-board tokens in map file format
func (s *State) Export(w io.Writer) error {
	var placements []mapfile.Placement
	for _, t := range s.Tokens.All() {
		if t.OffBoard {
			continue
		}
		placements = append(placements, mapfile.Placement{
			X:          t.Col,
			Y:          t.Row,
			AngleSteps: t.Facing / tokens.FacingStep,
			Model:      t.Model,
		})
	}
	return mapfile.Format(w, s.Grid, placements)
}
