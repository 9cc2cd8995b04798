package weather

import (
	"testing"

	"github.com/1siamBot/mapfog/engine/core"
)

// TestFadeReachesTargetExactly verifies D updates land exactly on the target
func TestFadeReachesTargetExactly(t *testing.T) {
	targets := []Color{
		{R: 1, G: 0, B: 0, A: 0.75},
		{R: 0.2, G: 0.4, B: 0.6, A: 1.3},
		{R: 1, G: 1, B: 1, A: 0},
	}
	for _, d := range []int{1, 2, 3, 7, 60, 240} {
		for _, target := range targets {
			c := NewController()
			view := newView()
			c.StartFade(Color{R: 0.5, G: 0.5, B: 0.5, A: 0.4}, 0)
			c.Update(view, nil)

			c.StartFade(target, d)
			for i := 0; i < d; i++ {
				c.Update(view, nil)
			}
			if c.Current() != target {
				t.Errorf("D=%d: expected %+v, got %+v", d, target, c.Current())
			}
			if c.Remaining() != 0 {
				t.Errorf("D=%d: expected 0 remaining, got %d", d, c.Remaining())
			}
		}
	}
}

// TestFadeStepFormula verifies each step covers 1/remaining of the remaining gap
func TestFadeStepFormula(t *testing.T) {
	c := NewController()
	view := newView()
	c.StartFade(White.WithAlpha(1), 4)

	// gap 1 over 4 frames: 0.25, 0.5, 0.75, 1
	want := []float64{0.25, 0.5, 0.75, 1}
	for i, w := range want {
		c.Update(view, nil)
		if !near(c.Current().A, w) {
			t.Errorf("Frame %d: expected intensity %f, got %f", i+1, w, c.Current().A)
		}
	}

	// a superseding fade restarts from the current value
	c.StartFade(White.WithAlpha(0.4), 3)
	c.Update(view, nil)
	if !near(c.Current().A, 1+(0.4-1)/3) {
		t.Errorf("Expected %f after one step, got %f", 1+(0.4-1)/3.0, c.Current().A)
	}
}

// TestZeroDurationApplyImmediately verifies a 0-frame fade lands on the next update
func TestZeroDurationApplyImmediately(t *testing.T) {
	c := NewController()
	target := Color{R: 0, G: 1, B: 0, A: 0.5}
	c.StartFade(target, 0)
	c.Update(newView(), nil)

	if c.Current() != target {
		t.Errorf("Expected %+v after one update, got %+v", target, c.Current())
	}
	if c.State() != Steady {
		t.Errorf("Expected steady, got %s", c.State())
	}
}

// TestNegativeDurationTreatedAsZero verifies negative durations do not stall
func TestNegativeDurationTreatedAsZero(t *testing.T) {
	c := NewController()
	c.StartFade(White.WithAlpha(0.3), -10)
	if c.Remaining() != 0 {
		t.Errorf("Expected 0 remaining, got %d", c.Remaining())
	}
	c.Update(newView(), nil)
	if !near(c.Current().A, 0.3) {
		t.Errorf("Expected intensity 0.3, got %f", c.Current().A)
	}
}

// TestStateTransitions walks Inactive -> FadingIn -> Steady -> FadingOut -> Inactive
func TestStateTransitions(t *testing.T) {
	c := NewController()
	view := newView()
	if c.State() != Inactive || c.IsActive() {
		t.Fatalf("Expected new controller inactive, got %s", c.State())
	}

	c.StartFade(White.WithAlpha(0.5), 3)
	if c.State() != FadingIn {
		t.Errorf("Expected fading_in, got %s", c.State())
	}
	c.Update(view, nil)
	c.Update(view, nil)
	if c.State() != FadingIn {
		t.Errorf("Expected fading_in mid fade, got %s", c.State())
	}
	c.Update(view, nil)
	if c.State() != Steady {
		t.Errorf("Expected steady, got %s", c.State())
	}

	// same target while steady stays steady
	c.StartFade(White.WithAlpha(0.5), 30)
	if c.State() != Steady || c.Remaining() != 0 {
		t.Errorf("Expected steady with no fade, got %s/%d", c.State(), c.Remaining())
	}

	c.StartFade(White.WithAlpha(0), 2)
	if c.State() != FadingOut {
		t.Errorf("Expected fading_out, got %s", c.State())
	}
	c.Update(view, nil)
	c.Update(view, nil)
	if c.State() != Inactive {
		t.Errorf("Expected inactive, got %s", c.State())
	}
}

// TestRemoveWhileInactive verifies removal of absent fog applies at once
func TestRemoveWhileInactive(t *testing.T) {
	c := NewController()
	c.StartFade(White.WithAlpha(0), 60)
	if c.Remaining() != 0 || c.State() != Inactive {
		t.Errorf("Expected immediate no-op removal, got %s/%d", c.State(), c.Remaining())
	}
}

// TestAddFogScenario: AddFog(0.75, 60, red) then 60 updates
func TestAddFogScenario(t *testing.T) {
	pipe := &fakePipeline{}
	c := NewController(WithPipeline(pipe, "fog"))
	view := newView()

	red, _ := ParseColor("red")
	c.StartFade(red.WithAlpha(0.75), 60)
	for i := 0; i < 60; i++ {
		pipe.updates++
		c.Update(view, nil)
	}

	if c.State() != Steady {
		t.Errorf("Expected steady, got %s", c.State())
	}
	want := Color{R: 1, G: 0, B: 0, A: 0.75}
	if c.Current() != want {
		t.Errorf("Expected %+v, got %+v", want, c.Current())
	}
	if !c.IsActive() || !c.Attached() {
		t.Errorf("Expected active and attached")
	}
	if len(pipe.calls) != 1 || !pipe.calls[0].attach || pipe.calls[0].update != 1 {
		t.Errorf("Expected a single attach on update 1, got %+v", pipe.calls)
	}
}

// TestRemoveFogDetachesOnZero: RemoveFog(60) from steady 0.75
func TestRemoveFogDetachesOnZero(t *testing.T) {
	pipe := &fakePipeline{}
	events := &eventLog{}
	c := NewController(WithPipeline(pipe, "fog"), WithEvents(events))
	view := newView()

	c.StartFade(White.WithAlpha(0.75), 0)
	c.Update(view, nil)
	pipe.calls = nil

	c.StartFade(White.WithAlpha(0), 60)
	for i := 1; i <= 60; i++ {
		pipe.updates = i
		c.Update(view, nil)
		if i < 60 && (c.Current().A <= 0 || !c.Attached()) {
			t.Fatalf("Update %d: expected fog still visible, got %f", i, c.Current().A)
		}
	}

	if c.Current().A != 0 || c.IsActive() {
		t.Errorf("Expected intensity exactly 0, got %f", c.Current().A)
	}
	if len(pipe.calls) != 1 || pipe.calls[0].attach || pipe.calls[0].update != 60 {
		t.Errorf("Expected a single detach on update 60, got %+v", pipe.calls)
	}
	if events.count(core.EvtFogDetached) != 1 {
		t.Errorf("Expected 1 detach event, got %d", events.count(core.EvtFogDetached))
	}
}

// TestScrollIdempotentWhenStationary verifies no drift without camera motion
func TestScrollIdempotentWhenStationary(t *testing.T) {
	c := NewController()
	view := newView()
	view.origin = Vec2{X: 100, Y: 40}

	c.Update(view, nil)
	view.origin = Vec2{X: 104, Y: 37}
	c.Update(view, nil)
	before := c.ScrollOrigin()
	for i := 0; i < 100; i++ {
		c.Update(view, nil)
	}
	if c.ScrollOrigin() != before {
		t.Errorf("Expected scroll origin %+v unchanged, got %+v", before, c.ScrollOrigin())
	}
	if before != (Vec2{X: 4, Y: -3}) {
		t.Errorf("Expected scroll origin {4 -3}, got %+v", before)
	}
}

// TestScrollTeleportClamped verifies a map transfer moves the noise by one frame's travel
func TestScrollTeleportClamped(t *testing.T) {
	c := NewController()
	view := newView()
	c.Update(view, nil)

	view.origin = Vec2{X: 5000, Y: -3000}
	c.Update(view, nil)
	if c.ScrollOrigin() != (Vec2{X: 8, Y: -8}) {
		t.Errorf("Expected clamped origin {8 -8}, got %+v", c.ScrollOrigin())
	}
}

// TestUpdateWithoutViewport verifies a missing camera skips the frame
func TestUpdateWithoutViewport(t *testing.T) {
	c := NewController()
	c.StartFade(White.WithAlpha(1), 10)
	before := c.Uniforms()
	c.Update(nil, nil)
	if c.Remaining() != 10 {
		t.Errorf("Expected fade untouched, got %d remaining", c.Remaining())
	}
	if c.Uniforms() != before {
		t.Errorf("Expected uniforms untouched")
	}
}

// TestSaveRestoreMidFade: save at frame 30 of 60, reload and resume
func TestSaveRestoreMidFade(t *testing.T) {
	view := newView()
	c := NewController()
	target := Color{R: 0.9, G: 0.9, B: 1, A: 0.8}
	c.StartFade(target, 60)
	for i := 0; i < 30; i++ {
		view.origin.X += 2
		c.Update(view, nil)
	}
	snap := c.Snapshot()

	r := NewController()
	r.Restore(snap)
	if r.Remaining() != 30 || r.State() != FadingIn {
		t.Fatalf("Expected fading_in with 30 remaining, got %s/%d", r.State(), r.Remaining())
	}
	if r.ScrollOrigin() != c.ScrollOrigin() || r.Current() != c.Current() {
		t.Errorf("Expected exact restore of scroll and colour")
	}

	// restored camera origin is unknown; the first frame adds no delta
	other := newView()
	other.origin = Vec2{X: 9999, Y: 9999}
	for i := 0; i < 30; i++ {
		r.Update(other, nil)
		c.Update(view, nil)
		if !nearColor(r.Current(), c.Current()) {
			t.Fatalf("Frame %d: restored %+v diverged from original %+v", i, r.Current(), c.Current())
		}
	}
	if r.Current() != target || r.State() != Steady {
		t.Errorf("Expected steady at target, got %s %+v", r.State(), r.Current())
	}
	if r.ScrollOrigin() != snap.ScrollOriginValue() {
		t.Errorf("Expected scroll origin unchanged, got %+v", r.ScrollOrigin())
	}
}

// TestRestoreMissingBlock verifies old saves restore inactive fog
func TestRestoreMissingBlock(t *testing.T) {
	pipe := &fakePipeline{}
	c := NewController(WithPipeline(pipe, "fog"))
	c.StartFade(White, 0)
	c.Update(newView(), nil)

	c.Restore(nil)
	if c.State() != Inactive || c.IsActive() || c.Attached() {
		t.Errorf("Expected inactive and detached, got %s", c.State())
	}

	scroll := Vec2{X: 3, Y: 4}
	current := White
	c.Restore(&Snapshot{ScrollOrigin: &scroll, Current: &current})
	if c.State() != Inactive {
		t.Errorf("Expected partial block to restore inactive, got %s", c.State())
	}
	if c.ScrollOrigin() != scroll {
		t.Errorf("Expected scroll origin restored, got %+v", c.ScrollOrigin())
	}
}

// TestRestoreMissingBlockResetsOrigin verifies an old save drops the
// previous session's scroll origin and animation time
func TestRestoreMissingBlockResetsOrigin(t *testing.T) {
	c := NewController()
	view := newView()
	c.Update(view, nil)
	view.origin = Vec2{X: 5, Y: -5}
	c.Update(view, nil)
	if c.ScrollOrigin() == (Vec2{}) || c.Uniforms().Time == 0 {
		t.Fatalf("Expected origin and time to have moved")
	}

	c.Restore(nil)
	u := c.Uniforms()
	if u.Origin != (Vec2{}) || u.Time != 0 || u.Color != White.WithAlpha(0) {
		t.Errorf("Expected default uniforms after missing block, got %+v", u)
	}
	if c.Remaining() != 0 || c.State() != Inactive {
		t.Errorf("Expected default fade state, got %s/%d", c.State(), c.Remaining())
	}
}

// TestAlwaysFogOverride: a map tagged always-fog 0.3 ignores RemoveFog
func TestAlwaysFogOverride(t *testing.T) {
	c := NewController()
	view := newView()
	meta := &fakeMeta{ov: Override{Kind: OverrideAlways, Color: White.WithAlpha(0.3)}}

	c.StartFade(White.WithAlpha(0.9), 10)
	c.Update(view, meta)
	c.StartFade(White.WithAlpha(0), 5)
	for i := 0; i < 20; i++ {
		c.Update(view, meta)
		if !near(c.Target().A, 0.3) || !near(c.Current().A, 0.3) {
			t.Fatalf("Frame %d: expected pinned 0.3, got target %f current %f", i, c.Target().A, c.Current().A)
		}
	}
	if c.State() != Steady {
		t.Errorf("Expected steady under override, got %s", c.State())
	}

	// leaving the map resumes the frozen scripted fade-out
	c.Update(view, nil)
	if c.Override().Kind != OverrideNone {
		t.Errorf("Expected override released")
	}
	if c.Target().A != 0 {
		t.Errorf("Expected scripted target 0 after release, got %f", c.Target().A)
	}
	for i := 0; i < 4; i++ {
		c.Update(view, nil)
	}
	if c.IsActive() {
		t.Errorf("Expected fog removed after frozen fade completes, got %f", c.Current().A)
	}
}

// TestNeverFogOverride verifies a no-fog map hides scripted fog
func TestNeverFogOverride(t *testing.T) {
	pipe := &fakePipeline{}
	c := NewController(WithPipeline(pipe, "fog"))
	view := newView()
	c.StartFade(White.WithAlpha(0.6), 0)
	c.Update(view, nil)

	meta := &fakeMeta{ov: Override{Kind: OverrideNever}}
	c.Update(view, meta)
	if c.IsActive() || c.Attached() || c.Target().A != 0 {
		t.Errorf("Expected fog hidden on no-fog map")
	}
	c.StartFade(White.WithAlpha(1), 0)
	c.Update(view, meta)
	if c.IsActive() {
		t.Errorf("Expected scripted fog ignored on no-fog map")
	}

	c.Update(view, nil)
	if !near(c.Current().A, 1) || !c.Attached() {
		t.Errorf("Expected scripted fog back after leaving, got %f", c.Current().A)
	}
}

// TestClear verifies the title-screen reset
func TestClear(t *testing.T) {
	pipe := &fakePipeline{}
	events := &eventLog{}
	c := NewController(WithPipeline(pipe, "fog"), WithEvents(events))
	view := newView()
	c.StartFade(White, 5)
	c.Update(view, nil)

	c.Clear()
	if c.State() != Inactive || c.IsActive() || c.Attached() || c.Remaining() != 0 {
		t.Errorf("Expected cleared controller, got %s", c.State())
	}
	if events.count(core.EvtFogCleared) != 1 {
		t.Errorf("Expected cleared event")
	}
}

// TestTimeAdvances verifies the time uniform follows the configured speed
func TestTimeAdvances(t *testing.T) {
	c := NewController(WithTimeStep(0.5, 50))
	view := newView()
	for i := 0; i < 100; i++ {
		c.Update(view, nil)
	}
	if !near(c.Uniforms().Time, 1.0) {
		t.Errorf("Expected time 1.0, got %f", c.Uniforms().Time)
	}

	still := NewController(WithTimeStep(0, 60))
	still.Update(view, nil)
	if still.Uniforms().Time != 0 {
		t.Errorf("Expected frozen time with speed 0")
	}
}
