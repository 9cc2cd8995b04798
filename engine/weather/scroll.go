package weather

// CorrectDelta clamps each axis of a per-frame origin delta to the camera's
// maximum travel for one frame, keeping its sign. A larger jump means the
// camera was repositioned (map transfer); the fog then scrolls by one
// frame's worth instead of snapping.
func CorrectDelta(delta, limit Vec2) Vec2 {
	return Vec2{
		X: clampAxis(delta.X, limit.X),
		Y: clampAxis(delta.Y, limit.Y),
	}
}

func clampAxis(d, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	if d > limit {
		return limit
	}
	if d < -limit {
		return -limit
	}
	return d
}

// ScrollTracker accumulates corrected camera motion into the noise origin
type ScrollTracker struct {
	Origin Vec2 // accumulated noise sampling offset

	previous Vec2
	primed   bool
}

// Track feeds the camera origin for this frame and returns the applied delta
func (s *ScrollTracker) Track(origin, maxTravel Vec2) Vec2 {
	if !s.primed {
		s.previous = origin
		s.primed = true
	}
	delta := CorrectDelta(origin.Sub(s.previous), maxTravel)
	s.Origin = s.Origin.Add(delta)
	s.previous = origin
	return delta
}

// Forget drops the remembered camera origin so the next frame adds no delta
func (s *ScrollTracker) Forget() {
	s.primed = false
}
