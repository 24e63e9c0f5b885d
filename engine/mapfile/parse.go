// Package mapfile reads and writes the plain-text board format: one terrain
// row per line as <height digit><terrain letter> pairs, and "=x y steps model"
// lines placing a mech.
package mapfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/1siamBot/hexmech/engine/hexgrid"
)

// FacingStep is the angle of one placement step, in degrees.
const FacingStep = 60

// Placement puts a mech on the board once the grid exists
type Placement struct {
	Line       int
	X, Y       int
	AngleSteps int
	Model      string
}

// Facing is the placement angle normalized to [0, 360).
func (p Placement) Facing() int {
	f := (p.AngleSteps % (360 / FacingStep)) * FacingStep
	if f < 0 {
		f += 360
	}
	return f
}

// Map is a parsed board file
type Map struct {
	Grid       *hexgrid.Grid
	Placements []Placement
}

// ParseError reports a malformed line. Line is 1-based; 0 means the
// document as a whole.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	s := "mapfile: "
	if e.Line > 0 {
		s += fmt.Sprintf("line %d: ", e.Line)
	}
	s += e.Msg
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads a whole map document. Nothing is returned unless every line
// is valid.
func Parse(r io.Reader) (*Map, error) {
	var (
		rows       [][]hexgrid.Cell
		placements []Placement
		width      int
	)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line[0] == '=' {
			p, err := parsePlacement(lineNo, line[1:])
			if err != nil {
				return nil, err
			}
			placements = append(placements, p)
			continue
		}
		row, err := parseTerrainRow(lineNo, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
		if len(row) > width {
			width = len(row)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Line: lineNo, Msg: "read failed", Err: err}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Msg: "no terrain rows"}
	}

	grid, err := hexgrid.New(width, len(rows))
	if err != nil {
		return nil, &ParseError{Msg: "board size", Err: err}
	}
	// Short rows keep the default cells past their end.
	for r, row := range rows {
		for c, cell := range row {
			dst := grid.At(c, r)
			dst.Height = cell.Height
			dst.Terrain = cell.Terrain
		}
	}
	for _, p := range placements {
		if !grid.InBounds(p.X, p.Y) {
			return nil, &ParseError{
				Line: p.Line,
				Msg:  fmt.Sprintf("placement (%d,%d) outside %dx%d board", p.X, p.Y, grid.Width, grid.Height),
				Err:  hexgrid.ErrOutOfBounds,
			}
		}
	}
	return &Map{Grid: grid, Placements: placements}, nil
}

func parseTerrainRow(lineNo int, line string) ([]hexgrid.Cell, error) {
	if len(line)%2 != 0 {
		return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("terrain row has odd length %d", len(line))}
	}
	cells := make([]hexgrid.Cell, 0, len(line)/2)
	for i := 0; i < len(line); i += 2 {
		d := line[i]
		if d < '0' || d > '9' {
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("cell %d: height %q is not a digit", i/2, d)}
		}
		cells = append(cells, hexgrid.Cell{
			Height:  int(d - '0'),
			Terrain: hexgrid.ParseTerrain(line[i+1]),
		})
	}
	return cells, nil
}

func parsePlacement(lineNo int, body string) (Placement, error) {
	fields := strings.Fields(body)
	if len(fields) != 4 {
		return Placement{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("placement wants 4 fields (x y angleSteps model), got %d", len(fields))}
	}
	p := Placement{Line: lineNo, Model: fields[3]}
	names := [3]string{"x", "y", "angleSteps"}
	dst := [3]*int{&p.X, &p.Y, &p.AngleSteps}
	for i := range dst {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return Placement{}, &ParseError{Line: lineNo, Msg: fmt.Sprintf("placement %s %q", names[i], fields[i]), Err: err}
		}
		*dst[i] = v
	}
	return p, nil
}

// Load parses the map file at path
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
