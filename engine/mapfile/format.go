package mapfile

import (
	"bufio"
	"fmt"
	"io"

	"github.com/1siamBot/hexmech/engine/hexgrid"
)

// Format writes g and placements in the map file format. Placements come
// after every terrain row.
func Format(w io.Writer, g *hexgrid.Grid, placements []Placement) error {
	bw := bufio.NewWriter(w)
	row := make([]byte, 0, g.Width*2)
	for r := 0; r < g.Height; r++ {
		row = row[:0]
		for c := 0; c < g.Width; c++ {
			cell := g.At(c, r)
			row = append(row, byte('0'+cell.Height), cell.Terrain.Letter())
		}
		row = append(row, '\n')
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	for _, p := range placements {
		if _, err := fmt.Fprintf(bw, "=%d %d %d %s\n", p.X, p.Y, p.AngleSteps, p.Model); err != nil {
			return err
		}
	}
	return bw.Flush()
}
