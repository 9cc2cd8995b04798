package input

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// TestScrollDirKeys verifies opposing keys cancel and arrows match WASD
func TestScrollDirKeys(t *testing.T) {
	s := NewInputState(640, 480)
	s.MouseX, s.MouseY = 320, 240

	s.KeysPressed[ebiten.KeyLeft] = true
	s.KeysPressed[ebiten.KeyS] = true
	if dx, dy := s.ScrollDir(); dx != -1 || dy != 1 {
		t.Errorf("Expected (-1, 1), got (%v, %v)", dx, dy)
	}

	s.KeysPressed[ebiten.KeyD] = true
	if dx, _ := s.ScrollDir(); dx != 0 {
		t.Errorf("Expected opposing keys to cancel, got %v", dx)
	}
}

// TestEdgeScroll verifies the cursor near a border scrolls toward it
func TestEdgeScroll(t *testing.T) {
	s := NewInputState(640, 480)
	tests := []struct {
		x, y   int
		dx, dy float64
	}{
		{320, 240, 0, 0},
		{2, 240, -1, 0},
		{639, 479, 1, 1},
		{320, 0, 0, -1},
		{-5, 240, 0, 0}, // outside the window
	}
	for _, tt := range tests {
		s.MouseX, s.MouseY = tt.x, tt.y
		if dx, dy := s.ScrollDir(); dx != tt.dx || dy != tt.dy {
			t.Errorf("At (%d, %d): expected (%v, %v), got (%v, %v)", tt.x, tt.y, tt.dx, tt.dy, dx, dy)
		}
	}

	s.EdgeMargin = 0
	s.MouseX = 0
	if dx, _ := s.ScrollDir(); dx != 0 {
		t.Errorf("Expected edge scrolling disabled")
	}
}

// TestResolveOrder verifies actions come out in a stable order
func TestResolveOrder(t *testing.T) {
	s := NewInputState(640, 480)
	got := s.resolve([]ebiten.Key{ebiten.KeyF5, ebiten.KeyZ, ebiten.Key3, ebiten.Key1})
	want := []Action{ActAddFog, ActRemoveFog, ActSave}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v at %d, got %v", want[i], i, got[i])
		}
	}
}
