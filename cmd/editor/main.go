package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"

	"github.com/1siamBot/hexmech/editor"
	"github.com/1siamBot/hexmech/engine/assets"
	"github.com/1siamBot/hexmech/engine/config"
	"github.com/1siamBot/hexmech/engine/core"
	"github.com/1siamBot/hexmech/engine/input"
	"github.com/1siamBot/hexmech/engine/mapfile"
	"github.com/1siamBot/hexmech/engine/render3d"
	"github.com/1siamBot/hexmech/engine/scene"
	"github.com/1siamBot/hexmech/engine/ui"
)

const (
	panSpeed   = 8.0 // pixels per tick for keyboard panning
	orbitSpeed = 0.01
	minimapSz  = 140

	previewSpin = 0.01 // radians per tick
)

var markColor = colornames.Orange

type EditorApp struct {
	state    *editor.State
	renderer *render3d.Renderer3D
	input    *input.InputState
	bus      *core.EventBus
	palette  *ui.Palette
	hud      *ui.HUD
	models   *assets.Loader
	scenes   *scene.Builder
	watcher  *mapfile.Watcher

	screenW, screenH int
	hover            string
}

func NewEditorApp(cfg config.Config, mapPath string) (*EditorApp, error) {
	st, err := editor.NewState(cfg)
	if err != nil {
		return nil, err
	}
	a := &EditorApp{
		state:    st,
		renderer: render3d.NewRenderer3D(cfg.Window.Width, cfg.Window.Height),
		input:    input.NewInputState(),
		bus:      core.NewEventBus(),
		hud:      ui.NewHUD(cfg.Window.Width, cfg.Window.Height),
		models:   assets.NewLoader(cfg.Assets.Root, cfg.Assets.Scale),
		screenW:  cfg.Window.Width,
		screenH:  cfg.Window.Height,
	}

	if mapPath != "" {
		if err := st.LoadMap(mapPath); err != nil {
			log.Printf("Failed to load map: %v", err)
		}
		if w, err := mapfile.Watch(mapPath); err != nil {
			log.Printf("Map watch disabled: %v", err)
		} else {
			a.watcher = w
		}
	}

	a.scenes = scene.NewBuilder(a.models)

	a.palette, err = ui.NewPalette(a.bus, core.Size{Width: st.Grid.Width, Height: st.Grid.Height})
	if err != nil {
		return nil, err
	}
	st.Subscribe(a.bus, a.copyToClipboard)
	a.bus.On(core.EvtBoardResized, func(core.Event) { a.renderer.Camera.CenterOn(a.state.Layout.Center()) })
	a.renderer.Camera.CenterOn(st.Layout.Center())
	return a, nil
}

func (a *EditorApp) copyToClipboard(text string) {
	if err := clipboard.WriteAll(text); err != nil {
		log.Printf("Copy failed: %v", err)
		a.hud.Notify("copy failed")
		return
	}
	a.hud.Notify("map copied to clipboard")
}

func (a *EditorApp) reload(path string) {
	if err := a.state.LoadMap(path); err != nil {
		log.Printf("Reload failed, keeping current board: %v", err)
		a.hud.Notify("reload failed, see log")
		return
	}
	a.palette.SetBoardSize(a.state.Grid.Width, a.state.Grid.Height)
	a.renderer.Camera.CenterOn(a.state.Layout.Center())
	a.hud.Notify("reloaded " + path)
}

func (a *EditorApp) pollWatcher() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-a.watcher.Events:
			if !ok {
				a.watcher = nil
				return
			}
			a.reload(path)
		case err := <-a.watcher.Errors:
			log.Printf("Map watch: %v", err)
		default:
			return
		}
	}
}

func (a *EditorApp) Update() error {
	a.palette.Update()
	a.input.Update(a.palette.Hovered())
	a.pollWatcher()
	a.handleKeys()
	a.handleCamera()

	if a.input.Clicked {
		h := a.renderer.Pick(a.input.ClickX, a.input.ClickY)
		a.state.HandlePick(h.Target())
	}
	a.hover = a.describe(a.renderer.Pick(a.input.MouseX, a.input.MouseY))

	a.bus.Dispatch()
	a.renderer.PreviewYaw = math.Mod(a.renderer.PreviewYaw+previewSpin, 2*math.Pi)
	a.state.Tick()
	a.hud.Update()

	a.palette.SetMech(a.state.CurrentMech())
	a.palette.SetMode(a.modeText())
	return nil
}

func (a *EditorApp) handleKeys() {
	in := a.input
	ctrl := in.Ctrl()
	switch {
	case in.IsKeyJustPressed(ebiten.KeyEscape):
		a.bus.Post(core.EvtPaletteClosed, nil)
	case in.IsKeyJustPressed(ebiten.KeyTab):
		a.palette.Toggle()
	case in.IsKeyJustPressed(ebiten.KeyLeft):
		a.state.RotateSelected(1)
	case in.IsKeyJustPressed(ebiten.KeyRight):
		a.state.RotateSelected(-1)
	case ctrl && in.IsKeyJustPressed(ebiten.KeyC):
		a.bus.Post(core.EvtExportRequested, nil)
	case ctrl && in.IsKeyJustPressed(ebiten.KeyZ):
		a.bus.Post(core.EvtUndo, nil)
	case ctrl && in.IsKeyJustPressed(ebiten.KeyY):
		a.bus.Post(core.EvtRedo, nil)
	case in.IsKeyJustPressed(ebiten.KeyG):
		a.renderer.ShowGrid = !a.renderer.ShowGrid
	case in.IsKeyJustPressed(ebiten.KeyM):
		h := a.renderer.Pick(in.MouseX, in.MouseY)
		a.state.ToggleMark(h.Target(), markColor)
	}
}

func (a *EditorApp) handleCamera() {
	cam := a.renderer.Camera
	in := a.input
	if !in.Ctrl() {
		if in.IsKeyPressed(ebiten.KeyW) {
			cam.Pan(0, -panSpeed)
		}
		if in.IsKeyPressed(ebiten.KeyS) {
			cam.Pan(0, panSpeed)
		}
		if in.IsKeyPressed(ebiten.KeyA) {
			cam.Pan(-panSpeed, 0)
		}
		if in.IsKeyPressed(ebiten.KeyD) {
			cam.Pan(panSpeed, 0)
		}
	}
	if in.RightPressed {
		cam.Pan(float64(-in.MouseDX), float64(-in.MouseDY))
	}
	if in.MiddlePressed {
		cam.Orbit(float64(in.MouseDX) * orbitSpeed)
	}
	if in.ScrollY != 0 {
		cam.ZoomAt(in.ScrollY, in.MouseX, in.MouseY)
	}
}

func (a *EditorApp) modeText() string {
	m := a.state.Mode()
	switch m.Kind {
	case editor.ModePaint:
		return fmt.Sprintf("paint %s", m.Terrain)
	case editor.ModeHeight:
		return fmt.Sprintf("height %+d", m.Delta)
	}
	return m.Kind.String()
}

func (a *EditorApp) describe(h scene.Hit) string {
	switch h.Tag {
	case scene.TagHex:
		c := a.state.Grid.At(h.Col, h.Row)
		if c == nil {
			return ""
		}
		return fmt.Sprintf("hex(%d,%d) h%d %s", c.Col, c.Row, c.Height, c.Terrain)
	case scene.TagMech:
		if t, ok := a.state.Tokens.Get(h.Token); ok {
			return fmt.Sprintf("%s @(%d,%d) %d deg", t.Model, t.Col, t.Row, t.Facing)
		}
	}
	return ""
}

func (a *EditorApp) Draw(screen *ebiten.Image) {
	sc := a.scenes.Build(a.state)
	a.renderer.DrawBoard(screen, sc)
	a.renderer.DrawGrid(screen, a.state.Grid, a.state.Layout)
	a.renderer.DrawMinimap(screen, a.state.Grid, 10, a.screenH-minimapSz-30, minimapSz)

	a.palette.Draw(screen)
	if name := a.state.CurrentMech(); name != "" {
		if m, ok := a.models.Mesh(name); ok {
			a.renderer.DrawPreview(screen, m, a.palette.PreviewRect())
		}
	}

	var selected []string
	for _, t := range a.state.Selected() {
		selected = append(selected, t.String())
	}
	a.hud.Draw(screen, ui.Status{
		File:     a.state.FilePath,
		Modified: a.state.Modified,
		Width:    a.state.Grid.Width,
		Height:   a.state.Grid.Height,
		Mode:     a.modeText(),
		Hover:    a.hover,
		Selected: selected,
		Mech:     a.state.CurrentMech(),
	})
}

func (a *EditorApp) Layout(outsideW, outsideH int) (int, int) {
	w, h := int(math.Max(1, float64(outsideW))), int(math.Max(1, float64(outsideH)))
	if w != a.screenW || h != a.screenH {
		a.screenW, a.screenH = w, h
		a.renderer.Camera.Resize(w, h)
		a.hud.ScreenW, a.hud.ScreenH = w, h
	}
	return w, h
}

func (a *EditorApp) Close() {
	if a.watcher != nil {
		a.watcher.Close()
	}
}

func main() {
	configPath := flag.String("config", "hexmech.yaml", "editor settings (YAML)")
	mapPath := flag.String("map", "", "board file to open and watch for changes")
	flag.Parse()
	if *mapPath == "" && flag.NArg() > 0 {
		*mapPath = flag.Arg(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	app, err := NewEditorApp(cfg, *mapPath)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
