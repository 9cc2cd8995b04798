package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a demo command bound to a key
type Action uint8

const (
	ActNone Action = iota
	ActAddFog
	ActAddRedFog
	ActRemoveFog
	ActSetFog
	ActRunScript
	ActNextMap
	ActSave
	ActLoad
	ActTitle
	ActPause
	ActGrid
)

// DefaultBindings maps keys to demo actions
var DefaultBindings = map[ebiten.Key]Action{
	ebiten.Key1:      ActAddFog,
	ebiten.Key2:      ActAddRedFog,
	ebiten.Key3:      ActRemoveFog,
	ebiten.Key4:      ActSetFog,
	ebiten.KeyE:      ActRunScript,
	ebiten.KeyTab:    ActNextMap,
	ebiten.KeyF5:     ActSave,
	ebiten.KeyF9:     ActLoad,
	ebiten.KeyEscape: ActTitle,
	ebiten.KeyP:      ActPause,
	ebiten.KeyG:      ActGrid,
}

var scrollKeys = []ebiten.Key{
	ebiten.KeyW, ebiten.KeyA, ebiten.KeyS, ebiten.KeyD,
	ebiten.KeyUp, ebiten.KeyDown, ebiten.KeyLeft, ebiten.KeyRight,
}

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	// Mouse
	MouseX, MouseY   int
	MouseDX, MouseDY int // delta since last frame
	prevMouseX       int
	prevMouseY       int
	LeftPressed      bool
	LeftJustPressed  bool
	ScrollY          float64

	// Edge scrolling, in pixels from the screen border; 0 disables
	EdgeMargin       int
	ScreenW, ScreenH int

	// Keyboard
	KeysPressed map[ebiten.Key]bool
	Bindings    map[ebiten.Key]Action
	actions     []Action
}

func NewInputState(screenW, screenH int) *InputState {
	return &InputState{
		EdgeMargin:  8,
		ScreenW:     screenW,
		ScreenH:     screenH,
		KeysPressed: make(map[ebiten.Key]bool),
		Bindings:    DefaultBindings,
	}
}

// Update should be called every frame
func (s *InputState) Update() {
	s.prevMouseX = s.MouseX
	s.prevMouseY = s.MouseY
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.MouseDX = s.MouseX - s.prevMouseX
	s.MouseDY = s.MouseY - s.prevMouseY

	s.LeftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	_, s.ScrollY = ebiten.Wheel()

	for _, k := range scrollKeys {
		s.KeysPressed[k] = ebiten.IsKeyPressed(k)
	}

	var just []ebiten.Key
	for k := range s.Bindings {
		if inpututil.IsKeyJustPressed(k) {
			just = append(just, k)
		}
	}
	s.actions = s.resolve(just)
}

// resolve maps just-pressed keys to actions in a stable order
func (s *InputState) resolve(keys []ebiten.Key) []Action {
	var out []Action
	for _, k := range keys {
		if a, ok := s.Bindings[k]; ok && a != ActNone {
			out = append(out, a)
		}
	}
	// action order, not map order
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Actions returns the actions triggered this frame
func (s *InputState) Actions() []Action { return s.actions }

// ScrollDir returns the camera direction from keys and edge scrolling,
// each axis in [-1, 1]
func (s *InputState) ScrollDir() (dx, dy float64) {
	if s.KeysPressed[ebiten.KeyA] || s.KeysPressed[ebiten.KeyLeft] {
		dx--
	}
	if s.KeysPressed[ebiten.KeyD] || s.KeysPressed[ebiten.KeyRight] {
		dx++
	}
	if s.KeysPressed[ebiten.KeyW] || s.KeysPressed[ebiten.KeyUp] {
		dy--
	}
	if s.KeysPressed[ebiten.KeyS] || s.KeysPressed[ebiten.KeyDown] {
		dy++
	}
	if dx == 0 && dy == 0 && s.EdgeMargin > 0 && s.ScreenW > 0 && s.ScreenH > 0 {
		dx, dy = s.edgeDir()
	}
	return dx, dy
}

func (s *InputState) edgeDir() (dx, dy float64) {
	switch {
	case s.MouseX < s.EdgeMargin && s.MouseX >= 0:
		dx = -1
	case s.MouseX >= s.ScreenW-s.EdgeMargin && s.MouseX < s.ScreenW:
		dx = 1
	}
	switch {
	case s.MouseY < s.EdgeMargin && s.MouseY >= 0:
		dy = -1
	case s.MouseY >= s.ScreenH-s.EdgeMargin && s.MouseY < s.ScreenH:
		dy = 1
	}
	return dx, dy
}
