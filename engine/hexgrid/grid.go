package hexgrid

import (
	"errors"
	"fmt"
)

// Terrain defines the ground color of a cell
type Terrain uint8

const (
	TerrainGrass Terrain = iota
	TerrainMud
	TerrainWater
	TerrainSand
)

// Height limits of a cell
const (
	MinHeight = 0
	MaxHeight = 9
)

// MaxSide bounds either board dimension.
const MaxSide = 256

var (
	ErrOutOfBounds = errors.New("hexgrid: coordinates out of bounds")
	ErrInvalidSize = errors.New("hexgrid: invalid board size")
)

var terrainLetters = [...]byte{
	TerrainGrass: 'g',
	TerrainMud:   'm',
	TerrainWater: 'w',
	TerrainSand:  'r',
}

var terrainNames = [...]string{
	TerrainGrass: "grass",
	TerrainMud:   "mud",
	TerrainWater: "water",
	TerrainSand:  "sand",
}

// Terrains lists every terrain in palette order.
var Terrains = []Terrain{TerrainGrass, TerrainMud, TerrainWater, TerrainSand}

// ParseTerrain maps a map-file letter to a terrain. Unknown letters are grass.
func ParseTerrain(letter byte) Terrain {
	for t, l := range terrainLetters {
		if l == letter {
			return Terrain(t)
		}
	}
	return TerrainGrass
}

// Letter is the map-file code of t.
func (t Terrain) Letter() byte {
	if int(t) < len(terrainLetters) {
		return terrainLetters[t]
	}
	return terrainLetters[TerrainGrass]
}

func (t Terrain) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return fmt.Sprintf("terrain(%d)", uint8(t))
}

// Cell is a single board tile
type Cell struct {
	Col, Row int
	Height   int
	Terrain  Terrain
	Occupant int // token id, 0 = empty
}

// Grid is a dense width x height board, row-major
type Grid struct {
	Width  int
	Height int
	Cells  []Cell
}

// New creates a board with every cell at height 0, grass
func New(width, height int) (*Grid, error) {
	g := &Grid{}
	if err := g.Resize(width, height); err != nil {
		return nil, err
	}
	return g, nil
}

// Resize discards every cell and reallocates the board. On error the
// grid is left untouched.
func (g *Grid) Resize(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxSide || height > MaxSide {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	cells := make([]Cell, width*height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			cells[row*width+col] = Cell{Col: col, Row: row, Terrain: TerrainGrass}
		}
	}
	g.Width, g.Height, g.Cells = width, height, cells
	return nil
}

// InBounds checks if coordinates are within board bounds
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.Width && row < g.Height
}

// At returns a pointer to the cell at (col, row), nil if out of bounds
func (g *Grid) At(col, row int) *Cell {
	if !g.InBounds(col, row) {
		return nil
	}
	return &g.Cells[row*g.Width+col]
}

// Cell is At with an error for callers that must report bad coordinates.
func (g *Grid) Cell(col, row int) (*Cell, error) {
	c := g.At(col, row)
	if c == nil {
		return nil, fmt.Errorf("%w: (%d,%d) on %dx%d board", ErrOutOfBounds, col, row, g.Width, g.Height)
	}
	return c, nil
}

// SetHeight sets the cell height. Heights outside [MinHeight, MaxHeight]
// are rejected without error; changed reports whether the cell was written.
func (g *Grid) SetHeight(col, row, height int) (changed bool, err error) {
	c, err := g.Cell(col, row)
	if err != nil {
		return false, err
	}
	if height < MinHeight || height > MaxHeight {
		return false, nil
	}
	c.Height = height
	return true, nil
}

// AdjustHeight raises or lowers a cell by delta, clamped like SetHeight.
func (g *Grid) AdjustHeight(col, row, delta int) (bool, error) {
	c, err := g.Cell(col, row)
	if err != nil {
		return false, err
	}
	return g.SetHeight(col, row, c.Height+delta)
}

// SetTerrain paints a cell
func (g *Grid) SetTerrain(col, row int, t Terrain) error {
	c, err := g.Cell(col, row)
	if err != nil {
		return err
	}
	c.Terrain = t
	return nil
}

// SetOccupant marks which token stands on a cell (0 clears it)
func (g *Grid) SetOccupant(col, row, id int) {
	if c := g.At(col, row); c != nil {
		c.Occupant = id
	}
}

// ClearOccupants empties the occupant of every cell
func (g *Grid) ClearOccupants() {
	for i := range g.Cells {
		g.Cells[i].Occupant = 0
	}
}

// FirstFree returns the first unoccupied cell in row-major order.
func (g *Grid) FirstFree() (col, row int, ok bool) {
	for i := range g.Cells {
		if g.Cells[i].Occupant == 0 {
			return g.Cells[i].Col, g.Cells[i].Row, true
		}
	}
	return 0, 0, false
}
