package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	// Mouse
	MouseX, MouseY   int
	MouseDX, MouseDY int // delta since last frame
	prevMouseX       int
	prevMouseY       int
	LeftPressed      bool
	RightPressed     bool
	MiddlePressed    bool
	LeftJustPressed  bool
	LeftJustReleased bool
	ScrollY          float64

	// Clicked is set on the frame the left button was released without
	// the cursor having moved past DragThreshold.
	Clicked        bool
	ClickX, ClickY int
	DragStartX     int
	DragStartY     int
	Dragging       bool
	DragThreshold  int
	pressOutsideUI bool
}

func NewInputState() *InputState {
	return &InputState{DragThreshold: 5}
}

// Update should be called every frame. overUI reports whether the cursor
// is over a palette widget; presses that start there never become clicks.
func (s *InputState) Update(overUI bool) {
	s.prevMouseX = s.MouseX
	s.prevMouseY = s.MouseY
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.MouseDX = s.MouseX - s.prevMouseX
	s.MouseDY = s.MouseY - s.prevMouseY

	leftDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	s.LeftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	s.LeftPressed = leftDown
	s.RightPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	s.MiddlePressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	_, s.ScrollY = ebiten.Wheel()
	if overUI {
		s.ScrollY = 0
	}

	s.Clicked = false
	if s.LeftJustPressed {
		s.DragStartX = s.MouseX
		s.DragStartY = s.MouseY
		s.Dragging = false
		s.pressOutsideUI = !overUI
	}
	if leftDown && !s.Dragging {
		dx := s.MouseX - s.DragStartX
		dy := s.MouseY - s.DragStartY
		if dx*dx+dy*dy > s.DragThreshold*s.DragThreshold {
			s.Dragging = true
		}
	}
	if s.LeftJustReleased {
		if !s.Dragging && s.pressOutsideUI {
			s.Clicked = true
			s.ClickX, s.ClickY = s.DragStartX, s.DragStartY
		}
		s.Dragging = false
		s.pressOutsideUI = false
	}
}

// IsKeyJustPressed returns true if key was just pressed this frame
func (s *InputState) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// IsKeyPressed reports whether key is held
func (s *InputState) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

// Ctrl reports whether either control key, or command on macOS, is held
func (s *InputState) Ctrl() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}
