// Command mapthumb renders a top-down PNG preview of a board file.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/1siamBot/hexmech/engine/config"
	"github.com/1siamBot/hexmech/engine/layout"
	"github.com/1siamBot/hexmech/engine/mapfile"
)

func main() {
	out := flag.String("o", "", "output PNG (default: board name with .png)")
	cfgPath := flag.String("config", "", "editor settings for board spacing")
	ppu := flag.Int("ppu", 12, "pixels per world unit before scaling")
	width := flag.Int("width", 512, "output width in pixels")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: mapthumb [-o out.png] board.txt")
		os.Exit(2)
	}
	path := flag.Arg(0)
	if *out == "" {
		*out = strings.TrimSuffix(path, ".txt") + ".png"
	}

	lay := layout.DefaultConfig()
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatal(err)
		}
		lay = cfg.Layout
	}

	m, err := mapfile.Load(path)
	if err != nil {
		log.Fatal(err)
	}

	src := render(m, layout.New(lay, m.Grid.Width, m.Grid.Height), float64(*ppu))
	b := src.Bounds()
	h := b.Dy() * *width / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, *width, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, dst); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%dx%d)\n", *out, *width, h)
}
