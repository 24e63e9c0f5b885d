package hexgrid

import (
	"errors"
	"testing"
)

func TestNewGrid_DefaultGrass(t *testing.T) {
	g, err := New(4, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.Width != 4 || g.Height != 3 || len(g.Cells) != 12 {
		t.Fatalf("expected 4x3 with 12 cells, got %dx%d with %d", g.Width, g.Height, len(g.Cells))
	}
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			c := g.At(col, row)
			if c == nil {
				t.Fatalf("cell (%d,%d) missing", col, row)
			}
			if c.Col != col || c.Row != row {
				t.Fatalf("cell (%d,%d) carries coords (%d,%d)", col, row, c.Col, c.Row)
			}
			if c.Height != 0 || c.Terrain != TerrainGrass || c.Occupant != 0 {
				t.Fatalf("cell (%d,%d) = %+v, want default", col, row, *c)
			}
		}
	}
}

func TestResize_DiscardsContents(t *testing.T) {
	g, _ := New(3, 3)
	g.SetHeight(1, 1, 5)
	g.SetTerrain(1, 1, TerrainWater)
	g.SetOccupant(1, 1, 7)

	if err := g.Resize(5, 2); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	c := g.At(1, 1)
	if c.Height != 0 || c.Terrain != TerrainGrass || c.Occupant != 0 {
		t.Fatalf("resize should reset cells, got %+v", *c)
	}
	if g.At(4, 1) == nil || g.At(0, 2) != nil {
		t.Fatal("resize extent is wrong")
	}
}

func TestResize_InvalidLeavesGrid(t *testing.T) {
	g, _ := New(3, 3)
	g.SetHeight(0, 0, 4)
	for _, size := range [][2]int{{0, 3}, {3, -1}, {MaxSide + 1, 1}} {
		err := g.Resize(size[0], size[1])
		if !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("Resize(%d,%d) err = %v, want ErrInvalidSize", size[0], size[1], err)
		}
	}
	if g.Width != 3 || g.Height != 3 || g.At(0, 0).Height != 4 {
		t.Fatal("failed resize must not touch the grid")
	}
}

func TestCell_OutOfBounds(t *testing.T) {
	g, _ := New(2, 2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if _, err := g.Cell(p[0], p[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Cell(%d,%d) err = %v, want ErrOutOfBounds", p[0], p[1], err)
		}
	}
	if _, err := g.SetHeight(5, 5, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("SetHeight out of bounds err = %v", err)
	}
	if err := g.SetTerrain(-1, 0, TerrainMud); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("SetTerrain out of bounds err = %v", err)
	}
}

func TestSetHeight_Clamped(t *testing.T) {
	g, _ := New(2, 2)
	g.SetHeight(0, 0, 3)
	for _, h := range []int{-1, 10} {
		changed, err := g.SetHeight(0, 0, h)
		if err != nil || changed {
			t.Fatalf("SetHeight(%d) = %v, %v; want rejected silently", h, changed, err)
		}
		if got := g.At(0, 0).Height; got != 3 {
			t.Fatalf("height after SetHeight(%d) = %d, want 3", h, got)
		}
	}
	if changed, _ := g.SetHeight(0, 0, 9); !changed || g.At(0, 0).Height != 9 {
		t.Fatal("height 9 should be accepted")
	}
}

func TestAdjustHeight_StopsAtLimits(t *testing.T) {
	g, _ := New(1, 1)
	for i := 0; i < 12; i++ {
		g.AdjustHeight(0, 0, 1)
	}
	if h := g.At(0, 0).Height; h != MaxHeight {
		t.Fatalf("height = %d, want %d", h, MaxHeight)
	}
	for i := 0; i < 12; i++ {
		g.AdjustHeight(0, 0, -1)
	}
	if h := g.At(0, 0).Height; h != MinHeight {
		t.Fatalf("height = %d, want %d", h, MinHeight)
	}
}

func TestTerrainLetters(t *testing.T) {
	cases := map[byte]Terrain{'g': TerrainGrass, 'm': TerrainMud, 'w': TerrainWater, 'r': TerrainSand, 'x': TerrainGrass, 'G': TerrainGrass}
	for letter, want := range cases {
		if got := ParseTerrain(letter); got != want {
			t.Errorf("ParseTerrain(%q) = %v, want %v", letter, got, want)
		}
	}
	for _, tr := range Terrains {
		if ParseTerrain(tr.Letter()) != tr {
			t.Errorf("letter of %v does not parse back", tr)
		}
	}
}

func TestFirstFree(t *testing.T) {
	g, _ := New(2, 2)
	g.SetOccupant(0, 0, 1)
	g.SetOccupant(1, 0, 2)
	col, row, ok := g.FirstFree()
	if !ok || col != 0 || row != 1 {
		t.Fatalf("FirstFree = (%d,%d,%v), want (0,1,true)", col, row, ok)
	}
	g.SetOccupant(0, 1, 3)
	g.SetOccupant(1, 1, 4)
	if _, _, ok := g.FirstFree(); ok {
		t.Fatal("full board has no free cell")
	}
	g.ClearOccupants()
	if _, _, ok := g.FirstFree(); !ok {
		t.Fatal("ClearOccupants should free the board")
	}
}
