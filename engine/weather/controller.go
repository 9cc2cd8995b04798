package weather

import (
	"github.com/1siamBot/mapfog/engine/core"
	"github.com/1siamBot/mapfog/engine/logger"
	"github.com/sirupsen/logrus"
)

var log = logger.For("weather")

// DefaultTicksPerSecond is the host frame rate assumed for the time uniform
const DefaultTicksPerSecond = 60

// Controller owns the fog state for one session. It is driven by a single
// Update per rendered frame and by fade commands; it is not safe for
// concurrent use.
type Controller struct {
	current   Color
	target    Color // scripted target, kept under an override
	remaining int   // scripted frames left, frozen under an override
	state     State

	scroll   ScrollTracker
	time     float64
	timeStep float64

	override Override
	attached bool

	pipeline Pipeline
	events   Publisher
	filter   Filter
}

// Option configures a Controller
type Option func(*Controller)

// WithPipeline sets the compositor the fog filter is attached to
func WithPipeline(p Pipeline, f Filter) Option {
	return func(c *Controller) {
		c.pipeline = p
		c.filter = f
	}
}

// WithEvents sets the event sink
func WithEvents(p Publisher) Option {
	return func(c *Controller) { c.events = p }
}

// WithTimeStep sets the animation speed (noise time units per second)
// and the host frame rate
func WithTimeStep(speed float64, ticksPerSecond int) Option {
	return func(c *Controller) {
		if ticksPerSecond <= 0 {
			ticksPerSecond = DefaultTicksPerSecond
		}
		if speed < 0 {
			speed = 0
		}
		c.timeStep = speed / float64(ticksPerSecond)
	}
}

// NewController creates an inactive controller
func NewController(opts ...Option) *Controller {
	c := &Controller{
		target:   White.WithAlpha(0),
		current:  White.WithAlpha(0),
		timeStep: 0.25 / DefaultTicksPerSecond,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetFilter replaces the filter handed to the pipeline
func (c *Controller) SetFilter(f Filter) {
	if c.attached && c.pipeline != nil {
		c.pipeline.Detach(c.filter)
		c.pipeline.Attach(f)
	}
	c.filter = f
}

// StartFade begins a transition toward target over frames updates.
// A new fade replaces any fade in progress. frames <= 0 applies the
// target on the next Update.
func (c *Controller) StartFade(target Color, frames int) {
	target = target.sanitize()
	if frames < 0 {
		frames = 0
	}

	// removing fog that is not there needs no fade
	if !target.Active() && !c.current.Active() && c.remaining == 0 {
		frames = 0
	}

	c.target = target
	c.remaining = frames

	if c.override.Kind == OverrideNone {
		switch {
		case c.state == Steady && target == c.current:
			c.remaining = 0
		case target.Active():
			c.state = FadingIn
		case c.current.Active() || frames > 0:
			c.state = FadingOut
		default:
			c.state = Inactive
		}
	}

	log.WithFields(logrus.Fields{
		"target": target,
		"frames": frames,
		"state":  c.state,
	}).Debug("fog fade started")
	c.emit(core.EvtFogFadeStarted, target)
}

// Update advances the fog by one frame. A nil viewport means the map is
// not ready yet and the frame is skipped. meta may be nil.
func (c *Controller) Update(view Viewport, meta MapMeta) {
	if view == nil {
		return
	}

	c.scroll.Track(view.Origin(), view.MaxTravelPerFrame())

	ov := Override{}
	if meta != nil {
		ov = meta.FogOverride()
	}
	if ov != c.override {
		log.WithFields(logrus.Fields{"kind": ov.Kind, "color": ov.Color}).Debug("fog override changed")
		c.override = ov
		c.emit(core.EvtFogOverride, ov)
	}

	switch ov.Kind {
	case OverrideAlways:
		c.current = ov.Color.sanitize()
	case OverrideNever:
		c.current = c.current.WithAlpha(0)
	default:
		c.step()
	}

	c.refreshState()
	c.syncPipeline()
	c.time += c.timeStep
}

// step moves the current colour 1/remaining of the way to the target
func (c *Controller) step() {
	if c.remaining <= 0 {
		c.remaining = 0
		c.current = c.target
		return
	}
	if c.remaining == 1 {
		c.current = c.target
	} else {
		c.current = c.current.Blend(c.target, 1/float64(c.remaining))
	}
	c.remaining--
}

func (c *Controller) refreshState() {
	switch {
	case c.override.Kind != OverrideNone || c.remaining == 0:
		if c.current.Active() {
			c.state = Steady
		} else {
			c.state = Inactive
		}
	case c.target.Active():
		c.state = FadingIn
	default:
		c.state = FadingOut
	}
}

// syncPipeline attaches the filter while fog is visible. Detaching waits
// for an intensity of exactly zero.
func (c *Controller) syncPipeline() {
	active := c.current.Active()
	if active == c.attached {
		return
	}
	c.attached = active
	if c.pipeline != nil {
		if active {
			c.pipeline.Attach(c.filter)
		} else {
			c.pipeline.Detach(c.filter)
		}
	}
	if active {
		log.Debug("fog filter attached")
		c.emit(core.EvtFogAttached, c.current)
	} else {
		log.Debug("fog filter detached")
		c.emit(core.EvtFogDetached, nil)
	}
}

// Clear resets the fade state to inactive, as on returning to the title
// screen. The scroll accumulator is kept.
func (c *Controller) Clear() {
	c.current = White.WithAlpha(0)
	c.target = White.WithAlpha(0)
	c.remaining = 0
	c.state = Inactive
	c.override = Override{}
	c.scroll.Forget()
	c.syncPipeline()
	c.emit(core.EvtFogCleared, nil)
}

func (c *Controller) emit(t core.EventType, payload interface{}) {
	if c.events != nil {
		c.events.Emit(core.Event{Type: t, Payload: payload})
	}
}

// Current is the colour the shader draws this frame
func (c *Controller) Current() Color { return c.current }

// Target is the colour being faded toward, including map overrides
func (c *Controller) Target() Color {
	switch c.override.Kind {
	case OverrideAlways:
		return c.override.Color.sanitize()
	case OverrideNever:
		return c.target.WithAlpha(0)
	}
	return c.target
}

// Remaining is the number of fade frames left
func (c *Controller) Remaining() int { return c.remaining }

// State is the current fade phase
func (c *Controller) State() State { return c.state }

// IsActive reports whether the fog is visible
func (c *Controller) IsActive() bool { return c.current.Active() }

// Attached reports whether the filter is in the render pipeline
func (c *Controller) Attached() bool { return c.attached }

// ScrollOrigin is the accumulated noise sampling offset
func (c *Controller) ScrollOrigin() Vec2 { return c.scroll.Origin }

// Override is the map override seen on the last Update
func (c *Controller) Override() Override { return c.override }

// Uniforms returns the shader inputs for this frame
func (c *Controller) Uniforms() Uniforms {
	return Uniforms{Time: c.time, Origin: c.scroll.Origin, Color: c.current}
}
