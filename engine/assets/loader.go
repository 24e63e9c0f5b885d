// Package assets loads mech models in the background. Callers get a Future
// at once and draw nothing for the token until it resolves.
package assets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"path/filepath"
	"sync"

	"github.com/hschendel/stl"
	"golang.org/x/sync/singleflight"

	"github.com/1siamBot/hexmech/engine/geom"
	"github.com/1siamBot/hexmech/engine/mesh"
)

var (
	ErrAssetLoad = errors.New("assets: load failed")
	ErrPending   = errors.New("assets: not loaded yet")
)

// BaseColor is the untinted token color
var BaseColor = mesh.Hex(0x666666)

// Future is the pending result of one Request
type Future struct {
	done chan struct{}
	mesh *mesh.Mesh
	err  error
}

func (f *Future) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Result returns ErrPending until the load finished
func (f *Future) Result() (*mesh.Mesh, error) {
	if !f.Ready() {
		return nil, ErrPending
	}
	return f.mesh, f.err
}

// Wait blocks until the load finished or ctx is done
func (f *Future) Wait(ctx context.Context) (*mesh.Mesh, error) {
	select {
	case <-f.done:
		return f.mesh, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Loader decodes STL models under Root. Results, failures included, are
// cached for the session.
type Loader struct {
	Root  string
	Scale float64

	mu      sync.Mutex
	futures map[string]*Future
	group   singleflight.Group
}

func NewLoader(root string, scale float64) *Loader {
	return &Loader{Root: root, Scale: scale, futures: make(map[string]*Future)}
}

// Request starts loading name if nobody asked for it yet
func (l *Loader) Request(name string) *Future {
	l.mu.Lock()
	if f, ok := l.futures[name]; ok {
		l.mu.Unlock()
		return f
	}
	f := &Future{done: make(chan struct{})}
	l.futures[name] = f
	l.mu.Unlock()

	go func() {
		m, err := l.Load(name)
		if err != nil {
			log.Printf("Failed to load model: %v", err)
		}
		f.mesh, f.err = m, err
		close(f.done)
	}()
	return f
}

// Load decodes name synchronously. Concurrent loads of the same file share
// one decode.
func (l *Loader) Load(name string) (*mesh.Mesh, error) {
	path := filepath.Clean(filepath.Join(l.Root, name))
	v, err, _ := l.group.Do(path, func() (interface{}, error) {
		return l.decode(path)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetLoad, name, err)
	}
	return v.(*mesh.Mesh), nil
}

func (l *Loader) decode(path string) (*mesh.Mesh, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(solid.Triangles) == 0 {
		return nil, errors.New("no triangles")
	}

	m := mesh.New()
	for _, t := range solid.Triangles {
		var p [3]geom.Vec3
		for i, v := range t.Vertices {
			p[i] = geom.V3(float64(v[0]), float64(v[1]), float64(v[2]))
		}
		n := p[1].Sub(p[0]).Cross(p[2].Sub(p[0])).Normalize()
		m.AddTriangle(
			mesh.Vertex{Pos: p[0], Normal: n, Color: BaseColor},
			mesh.Vertex{Pos: p[1], Normal: n, Color: BaseColor},
			mesh.Vertex{Pos: p[2], Normal: n, Color: BaseColor},
		)
	}
	return l.normalize(m), nil
}

// normalize turns Z-up model space into the board's Y-up space, scales it
// and stands it on the origin.
func (l *Loader) normalize(m *mesh.Mesh) *mesh.Mesh {
	scale := l.Scale
	if scale <= 0 {
		scale = 1
	}
	m = m.Transform(geom.Mat4Scale(scale, scale, scale).Mul(geom.Mat4RotateX(-math.Pi / 2)))
	min, max := m.Bounds()
	cx, cz := (min.X+max.X)/2, (min.Z+max.Z)/2
	return m.Transform(geom.Mat4Translate(-cx, -min.Y, -cz))
}

// Mesh returns the model if it has finished loading. The first call for a
// name starts the load.
func (l *Loader) Mesh(name string) (*mesh.Mesh, bool) {
	m, err := l.Request(name).Result()
	return m, err == nil && m != nil
}
