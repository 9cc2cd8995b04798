// Package weather owns the fog state machine: fades, scroll tracking,
// per-map overrides and the save snapshot.
package weather

import (
	"fmt"

	"github.com/1siamBot/mapfog/engine/core"
)

// Vec2 is a 2D point or delta in screen pixels
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// State is the controller's fade phase
type State uint8

const (
	Inactive State = iota
	FadingIn
	Steady
	FadingOut
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case FadingIn:
		return "fading_in"
	case Steady:
		return "steady"
	case FadingOut:
		return "fading_out"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Viewport is the camera collaborator read once per frame
type Viewport interface {
	// Origin is the display origin in pixels
	Origin() Vec2
	// MaxTravelPerFrame is the furthest the camera can scroll in one
	// frame along each axis, in pixels
	MaxTravelPerFrame() Vec2
}

// OverrideKind selects a per-map fog override
type OverrideKind uint8

const (
	OverrideNone OverrideKind = iota
	OverrideAlways
	OverrideNever
)

// Override is the static fog configuration of the current map
type Override struct {
	Kind  OverrideKind
	Color Color // used by OverrideAlways; A is the intensity
}

// MapMeta is the map metadata collaborator, read every frame
type MapMeta interface {
	FogOverride() Override
}

// Filter is anything the compositor can attach
type Filter interface{}

// Pipeline attaches and detaches the fog filter from the map's render list
type Pipeline interface {
	Attach(f Filter)
	Detach(f Filter)
}

// Publisher receives weather events
type Publisher interface {
	Emit(e core.Event)
}

// Uniforms are the per-frame shader inputs
type Uniforms struct {
	Time   float64
	Origin Vec2
	Color  Color
}
