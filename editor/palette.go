package editor

import (
	"fmt"
	"log"
	"strings"

	"github.com/1siamBot/hexmech/engine/core"
	"github.com/1siamBot/hexmech/engine/hexgrid"
	"github.com/1siamBot/hexmech/engine/tokens"
)

// CurrentMech is the model the mech palette would place next, "" if the
// palette is empty.
func (s *State) CurrentMech() string {
	if len(s.cfg.Mechs) == 0 {
		return ""
	}
	return s.cfg.Mechs[s.mechIdx]
}

func (s *State) NextMech() string { return s.stepMech(1) }
func (s *State) PrevMech() string { return s.stepMech(-1) }

func (s *State) stepMech(d int) string {
	n := len(s.cfg.Mechs)
	if n == 0 {
		return ""
	}
	s.mechIdx = ((s.mechIdx+d)%n + n) % n
	return s.cfg.Mechs[s.mechIdx]
}

// AddMech places the current model on the first free cell, facing 0
func (s *State) AddMech() (*tokens.Token, error) {
	model := s.CurrentMech()
	if model == "" {
		return nil, fmt.Errorf("editor: mech palette is empty")
	}
	col, row, ok := s.Grid.FirstFree()
	if !ok {
		return nil, ErrBoardFull
	}
	t, err := s.Tokens.Place(model, col, row, 0)
	if err != nil {
		return nil, err
	}
	s.Modified = true
	return t, nil
}

// Subscribe routes palette events into the state. export receives the
// board text for EvtExportRequested.
func (s *State) Subscribe(bus *core.EventBus, export func(text string)) {
	bus.On(core.EvtPaintChosen, func(e core.Event) {
		if t, ok := e.Payload.(hexgrid.Terrain); ok {
			s.SetMode(PaintMode(t))
		}
	})
	bus.On(core.EvtHeightDeltaSet, func(e core.Event) {
		if d, ok := e.Payload.(int); ok {
			s.SetMode(HeightMode(d))
		}
	})
	bus.On(core.EvtBoardResized, func(e core.Event) {
		size, ok := e.Payload.(core.Size)
		if !ok {
			return
		}
		if err := s.Resize(size.Width, size.Height); err != nil {
			log.Printf("resize: %v", err)
		}
	})
	bus.On(core.EvtPaletteClosed, func(core.Event) { s.ClosePalette() })
	bus.On(core.EvtMechNext, func(core.Event) { s.NextMech() })
	bus.On(core.EvtMechPrev, func(core.Event) { s.PrevMech() })
	bus.On(core.EvtMechAdd, func(core.Event) {
		if _, err := s.AddMech(); err != nil {
			log.Printf("add mech: %v", err)
		}
	})
	bus.On(core.EvtUndo, func(core.Event) { s.Undo() })
	bus.On(core.EvtRedo, func(core.Event) { s.Redo() })
	bus.On(core.EvtExportRequested, func(core.Event) {
		var sb strings.Builder
		if err := s.Export(&sb); err != nil {
			log.Printf("export: %v", err)
			return
		}
		if export != nil {
			export(sb.String())
		}
	})
}
