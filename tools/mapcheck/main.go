// Command mapcheck validates board files the same way the editor loads them.
//
//	mapcheck [-fmt] [-assets dir] board.txt...
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/1siamBot/hexmech/editor"
	"github.com/1siamBot/hexmech/engine/assets"
	"github.com/1siamBot/hexmech/engine/config"
	"github.com/1siamBot/hexmech/engine/mapfile"
)

func main() {
	format := flag.Bool("fmt", false, "print the canonical form of each valid board")
	assetRoot := flag.String("assets", "", "also decode every referenced model under this directory")
	scale := flag.Float64("scale", config.Default().Assets.Scale, "model scale used with -assets")
	flag.Parse()
	log.SetFlags(0)

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: mapcheck [-fmt] [-assets dir] board.txt...")
		os.Exit(2)
	}

	var loader *assets.Loader
	if *assetRoot != "" {
		loader = assets.NewLoader(*assetRoot, *scale)
	}

	paths := flag.Args()
	results := make([]result, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			results[i] = check(path, *format, loader)
			return nil
		})
	}
	g.Wait()

	failed := 0
	for i, r := range results {
		if r.err != nil {
			log.Printf("%s: %v", paths[i], r.err)
			failed++
			continue
		}
		if *format {
			os.Stdout.WriteString(r.formatted)
		} else {
			fmt.Printf("%s: ok\n", paths[i])
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

type result struct {
	formatted string
	err       error
}

func check(path string, format bool, loader *assets.Loader) result {
	m, err := mapfile.Load(path)
	if err != nil {
		return result{err: err}
	}

	// Placement rules live in the editor, so reuse its load path.
	st, err := editor.NewState(config.Default())
	if err != nil {
		return result{err: err}
	}
	if err := st.Apply(m); err != nil {
		return result{err: err}
	}

	if loader != nil {
		if err := checkModels(loader, m.Placements); err != nil {
			return result{err: err}
		}
	}

	if !format {
		return result{}
	}
	var sb strings.Builder
	if err := mapfile.Format(&sb, m.Grid, m.Placements); err != nil {
		return result{err: err}
	}
	return result{formatted: sb.String()}
}

func checkModels(loader *assets.Loader, placements []mapfile.Placement) error {
	seen := make(map[string]bool)
	var names []string
	for _, p := range placements {
		if !seen[p.Model] {
			seen[p.Model] = true
			names = append(names, p.Model)
		}
	}
	sort.Strings(names)

	// Boards checked in parallel often share models; the loader collapses
	// concurrent decodes of one file.
	errs := make([]error, len(names))
	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			_, errs[i] = loader.Load(name)
			return nil
		})
	}
	g.Wait()
	return errors.Join(errs...)
}
