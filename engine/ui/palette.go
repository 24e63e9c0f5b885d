package ui

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/1siamBot/hexmech/engine/core"
	"github.com/1siamBot/hexmech/engine/hexgrid"
)

// PanelWidth is the width of the palette column on the right
const PanelWidth = 220

func solidNineSlice(c color.Color) *imageui.NineSlice {
	return imageui.NewNineSliceColor(c)
}

// Palette is the edit tool column. Every button only posts an event; the
// editor state reacts on the next Dispatch.
type Palette struct {
	UI      *ebitenui.UI
	Visible bool

	bus       *core.EventBus
	size      core.Size
	sizeLabel *widget.Label
	mechLabel *widget.Label
	modeLabel *widget.Label
	preview   *widget.Container
}

// NewPalette builds the widgets. board is the size the resize steppers
// start from.
func NewPalette(bus *core.EventBus, board core.Size) (*Palette, error) {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load palette font: %w", err)
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}

	p := &Palette{bus: bus, size: board, Visible: true}

	buttonImage := &widget.ButtonImage{
		Idle:    solidNineSlice(color.RGBA{180, 180, 180, 255}),
		Hover:   solidNineSlice(color.RGBA{200, 200, 200, 255}),
		Pressed: solidNineSlice(color.RGBA{160, 160, 160, 255}),
	}
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}
	labelColor := &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}

	button := func(name string, w int, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(buttonImage),
			widget.ButtonOpts.Text(name, &fontFace, buttonTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) { onClick() }),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(w, 28)),
		)
	}
	label := func(s string) *widget.Label {
		return widget.NewLabel(widget.LabelOpts.Text(s, &fontFace, labelColor))
	}
	row := func(buttons ...*widget.Button) *widget.Container {
		c := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(4),
		)))
		for _, b := range buttons {
			c.AddChild(b)
		}
		return c
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(PanelWidth, 0)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
		)),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{20, 20, 40, 220})),
	)

	panel.AddChild(label("Terrain"))
	var paint []*widget.Button
	for _, t := range hexgrid.Terrains {
		t := t
		paint = append(paint, button(t.String(), 46, func() { p.bus.Post(core.EvtPaintChosen, t) }))
	}
	panel.AddChild(row(paint...))

	panel.AddChild(label("Height"))
	panel.AddChild(row(
		button("+1", 60, func() { p.bus.Post(core.EvtHeightDeltaSet, 1) }),
		button("-1", 60, func() { p.bus.Post(core.EvtHeightDeltaSet, -1) }),
		button("Off", 60, func() { p.bus.Post(core.EvtHeightDeltaSet, 0) }),
	))

	panel.AddChild(label("Board size"))
	p.sizeLabel = label(p.sizeText())
	panel.AddChild(p.sizeLabel)
	panel.AddChild(row(
		button("W-", 44, func() { p.step(-1, 0) }),
		button("W+", 44, func() { p.step(1, 0) }),
		button("H-", 44, func() { p.step(0, -1) }),
		button("H+", 44, func() { p.step(0, 1) }),
	))
	panel.AddChild(button("Resize", 196, func() { p.bus.Post(core.EvtBoardResized, p.size) }))

	panel.AddChild(label("Mechs"))
	p.mechLabel = label("-")
	panel.AddChild(p.mechLabel)
	p.preview = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(196, 120)),
		widget.ContainerOpts.Layout(widget.NewRowLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{10, 10, 25, 255})),
	)
	panel.AddChild(p.preview)
	panel.AddChild(row(
		button("<", 60, func() { p.bus.Post(core.EvtMechPrev, nil) }),
		button(">", 60, func() { p.bus.Post(core.EvtMechNext, nil) }),
		button("Add", 60, func() { p.bus.Post(core.EvtMechAdd, nil) }),
	))

	panel.AddChild(row(
		button("Undo", 96, func() { p.bus.Post(core.EvtUndo, nil) }),
		button("Redo", 96, func() { p.bus.Post(core.EvtRedo, nil) }),
	))
	panel.AddChild(button("Copy map", 196, func() { p.bus.Post(core.EvtExportRequested, nil) }))
	panel.AddChild(button("Close", 196, func() { p.bus.Post(core.EvtPaletteClosed, nil) }))

	p.modeLabel = label("select")
	panel.AddChild(p.modeLabel)

	panel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)

	p.UI = &ebitenui.UI{Container: root}
	return p, nil
}

func (p *Palette) sizeText() string {
	return fmt.Sprintf("%d x %d", p.size.Width, p.size.Height)
}

func (p *Palette) step(dw, dh int) {
	w, h := p.size.Width+dw, p.size.Height+dh
	if w < 1 || h < 1 || w > hexgrid.MaxSide || h > hexgrid.MaxSide {
		return
	}
	p.size = core.Size{Width: w, Height: h}
	p.sizeLabel.Label = p.sizeText()
}

// SetBoardSize resets the steppers, e.g. after a map load
func (p *Palette) SetBoardSize(w, h int) {
	p.size = core.Size{Width: w, Height: h}
	p.sizeLabel.Label = p.sizeText()
}

func (p *Palette) SetMech(name string) {
	if name == "" {
		name = "-"
	}
	p.mechLabel.Label = name
}

func (p *Palette) SetMode(mode string) { p.modeLabel.Label = mode }

// PreviewRect is where the current mech is drawn, empty while hidden
func (p *Palette) PreviewRect() image.Rectangle {
	if !p.Visible {
		return image.Rectangle{}
	}
	return p.preview.GetWidget().Rect
}

// Toggle shows or hides the palette. Hiding it drops the edit mode.
func (p *Palette) Toggle() {
	p.Visible = !p.Visible
	if !p.Visible {
		p.bus.Post(core.EvtPaletteClosed, nil)
	}
}

// Hovered reports whether the cursor is over a widget
func (p *Palette) Hovered() bool {
	return p.Visible && ebuiinput.UIHovered
}

func (p *Palette) Update() {
	if p.Visible {
		p.UI.Update()
	}
}

func (p *Palette) Draw(screen *ebiten.Image) {
	if p.Visible {
		p.UI.Draw(screen)
	}
}
