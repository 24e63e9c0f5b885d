package ui

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Status is what the HUD shows for one frame
type Status struct {
	File     string
	Modified bool
	Width    int
	Height   int
	Mode     string
	Hover    string
	Selected []string
	Mech     string
}

const helpLine = "LMB select/move  RMB drag pan  MMB drag orbit  wheel zoom  Left/Right rotate  M mark  Esc close  Tab palette  Ctrl+C copy  Ctrl+Z/Y undo/redo"

// HUD is the top status bar and bottom help bar
type HUD struct {
	ScreenW, ScreenH int
	TopBarHeight     int
	BottomBarHeight  int

	notice      string
	noticeTicks int
}

func NewHUD(sw, sh int) *HUD {
	return &HUD{
		ScreenW:         sw,
		ScreenH:         sh,
		TopBarHeight:    30,
		BottomBarHeight: 22,
	}
}

// Notify shows msg in the top bar for a few seconds
func (h *HUD) Notify(msg string) {
	h.notice = msg
	h.noticeTicks = 180
}

// Update ages the notice; call once per tick
func (h *HUD) Update() {
	if h.noticeTicks > 0 {
		h.noticeTicks--
		if h.noticeTicks == 0 {
			h.notice = ""
		}
	}
}

// Draw renders the entire HUD
func (h *HUD) Draw(screen *ebiten.Image, st Status) {
	h.drawTopBar(screen, st)
	h.drawBottomBar(screen)
}

func (h *HUD) drawTopBar(screen *ebiten.Image, st Status) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.TopBarHeight), color.RGBA{0, 0, 0, 180}, false)

	name := "untitled"
	if st.File != "" {
		name = filepath.Base(st.File)
	}
	if st.Modified {
		name += "*"
	}
	info := fmt.Sprintf("%s | %dx%d | mode: %s | mech: %s", name, st.Width, st.Height, st.Mode, orDash(st.Mech))
	if st.Hover != "" {
		info += " | " + st.Hover
	}
	if len(st.Selected) > 0 {
		info += " | selected: " + strings.Join(st.Selected, " > ")
	}
	ebitenutil.DebugPrintAt(screen, info, 10, 8)

	if h.notice != "" {
		ebitenutil.DebugPrintAt(screen, h.notice, 10, h.TopBarHeight+6)
	}
}

func (h *HUD) drawBottomBar(screen *ebiten.Image) {
	y := h.ScreenH - h.BottomBarHeight
	vector.DrawFilledRect(screen, 0, float32(y), float32(h.ScreenW), float32(h.BottomBarHeight), color.RGBA{0, 0, 0, 160}, false)
	ebitenutil.DebugPrintAt(screen, helpLine, 10, y+4)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
