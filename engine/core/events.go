package core

// Event represents a weather or scene event
type Event struct {
	Type    EventType
	Frame   uint64
	Payload interface{}
}

type EventType uint16

const (
	EvtFogFadeStarted EventType = iota
	EvtFogAttached
	EvtFogDetached
	EvtFogCleared
	EvtFogOverride
	EvtMapChanged
	EvtTitle
	EvtSaved
	EvtLoaded
)

var eventNames = map[EventType]string{
	EvtFogFadeStarted: "fog_fade_started",
	EvtFogAttached:    "fog_attached",
	EvtFogDetached:    "fog_detached",
	EvtFogCleared:     "fog_cleared",
	EvtFogOverride:    "fog_override",
	EvtMapChanged:     "map_changed",
	EvtTitle:          "title",
	EvtSaved:          "saved",
	EvtLoaded:         "loaded",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "unknown"
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int {
	return len(eb.queue)
}

// Dispatch processes all queued events. Handlers may emit new events;
// those are delivered on the next Dispatch.
func (eb *EventBus) Dispatch() {
	queue := eb.queue
	eb.queue = nil
	for _, e := range queue {
		if handlers, ok := eb.listeners[e.Type]; ok {
			for _, h := range handlers {
				h(e)
			}
		}
	}
}
