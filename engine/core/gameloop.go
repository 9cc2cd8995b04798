package core

import "github.com/1siamBot/mapfog/engine/logger"

// SceneState is the host scene the loop is currently running
type SceneState uint8

const (
	StateTitle SceneState = iota
	StateMap
	StatePaused
)

func (s SceneState) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StateMap:
		return "map"
	case StatePaused:
		return "paused"
	}
	return "unknown"
}

// System is updated once per rendered frame while the map scene runs
type System interface {
	Update(frame uint64)
	Priority() int
}

// FrameLoop drives frame-synchronous systems. Unlike a fixed-timestep
// simulation it runs exactly one step per Update call, which the host
// invokes once per rendered frame.
type FrameLoop struct {
	State  SceneState
	Frame  uint64
	Events *EventBus

	systems []System
}

// NewFrameLoop creates a loop on the title scene
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{
		State:  StateTitle,
		Events: NewEventBus(),
	}
}

// AddSystem registers a system, keeping ascending priority order
func (fl *FrameLoop) AddSystem(s System) {
	fl.systems = append(fl.systems, s)
	// Sort by priority (simple insertion)
	for i := len(fl.systems) - 1; i > 0; i-- {
		if fl.systems[i].Priority() < fl.systems[i-1].Priority() {
			fl.systems[i], fl.systems[i-1] = fl.systems[i-1], fl.systems[i]
		}
	}
}

// Update runs one frame: systems (map scene only) then queued events
func (fl *FrameLoop) Update() {
	if fl.State == StateMap {
		for _, s := range fl.systems {
			s.Update(fl.Frame)
		}
	}
	fl.Events.Dispatch()
	fl.Frame++
}

// EnterMap starts or resumes the map scene
func (fl *FrameLoop) EnterMap() {
	fl.State = StateMap
}

// Pause freezes systems; events still dispatch
func (fl *FrameLoop) Pause() {
	fl.State = StatePaused
}

// ReturnToTitle leaves the map and announces it so session state can reset
func (fl *FrameLoop) ReturnToTitle() {
	fl.State = StateTitle
	fl.Events.Emit(Event{Type: EvtTitle, Frame: fl.Frame})
	logger.For("frameloop").WithField("frame", fl.Frame).Info("returned to title")
}

// Emit stamps the current frame on e and queues it
func (fl *FrameLoop) Emit(e Event) {
	e.Frame = fl.Frame
	fl.Events.Emit(e)
}
