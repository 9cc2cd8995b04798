package ui

import (
	"image/color"
	"testing"

	"github.com/1siamBot/mapfog/engine/input"
	"github.com/1siamBot/mapfog/engine/weather"
)

// TestBarFraction verifies the intensity bar is clamped
func TestBarFraction(t *testing.T) {
	tests := []struct {
		a    float64
		want float32
	}{
		{0, 0},
		{-1, 0},
		{0.75, 0.5},
		{MaxBarIntensity, 1},
		{10, 1},
	}
	for _, tt := range tests {
		if got := BarFraction(tt.a); got != tt.want {
			t.Errorf("BarFraction(%v): expected %v, got %v", tt.a, tt.want, got)
		}
	}
}

// TestSwatch verifies the swatch ignores intensity
func TestSwatch(t *testing.T) {
	got := Swatch(weather.Color{R: 1, G: 0, B: 0.5, A: 0.1})
	if got != (color.RGBA{255, 0, 128, 255}) {
		t.Errorf("Expected opaque swatch, got %v", got)
	}
}

// TestHandleClick verifies sidebar buttons map to actions
func TestHandleClick(t *testing.T) {
	h := NewHUD(1280, 720, weather.NewController())
	x := 1280 - 100
	top := h.buttonsTop()

	if a, ok := h.HandleClick(x, top+5); !ok || a != input.ActAddFog {
		t.Errorf("Expected first button, got %v %v", a, ok)
	}
	if a, ok := h.HandleClick(x, top+28*2+10); !ok || a != input.ActRemoveFog {
		t.Errorf("Expected third button, got %v %v", a, ok)
	}
	if _, ok := h.HandleClick(x, top+26); ok {
		t.Errorf("Expected gap between buttons to miss")
	}
	if _, ok := h.HandleClick(100, top+5); ok {
		t.Errorf("Expected click on the map to miss")
	}
	if _, ok := h.HandleClick(x, top+28*len(h.Buttons)+5); ok {
		t.Errorf("Expected click below the buttons to miss")
	}
}

// TestOverrideLabel verifies override names
func TestOverrideLabel(t *testing.T) {
	if got := OverrideLabel(weather.Override{Kind: weather.OverrideAlways, Color: weather.White.WithAlpha(0.3)}); got != "always 0.30" {
		t.Errorf("Expected always 0.30, got %q", got)
	}
	if got := OverrideLabel(weather.Override{}); got != "none" {
		t.Errorf("Expected none, got %q", got)
	}
}
