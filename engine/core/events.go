package core

// Event represents an editor event raised by the palette or the keyboard
type Event struct {
	Type    EventType
	Tick    uint64
	Payload interface{}
}

type EventType uint16

const (
	EvtPaintChosen     EventType = iota // Payload: hexgrid.Terrain
	EvtHeightDeltaSet                   // Payload: int, 0 turns height mode off
	EvtBoardResized                     // Payload: Size
	EvtPaletteClosed
	EvtMechNext
	EvtMechPrev
	EvtMechAdd
	EvtExportRequested
	EvtUndo
	EvtRedo
)

var eventNames = [...]string{
	"paint-chosen", "height-delta-set", "board-resized", "palette-closed",
	"mech-next", "mech-prev", "mech-add", "export-requested", "undo", "redo",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Size is the payload of EvtBoardResized
type Size struct {
	Width, Height int
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
	tick      uint64
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
	if e.Tick == 0 {
		e.Tick = eb.tick
	}
	eb.queue = append(eb.queue, e)
}

// Post is Emit for callers that only have a type and payload
func (eb *EventBus) Post(t EventType, payload interface{}) {
	eb.Emit(Event{Type: t, Payload: payload})
}

// Pending is the number of queued events
func (eb *EventBus) Pending() int { return len(eb.queue) }

// Dispatch processes all queued events. Events emitted by handlers are
// delivered on the next Dispatch.
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
	eb.tick++
}
