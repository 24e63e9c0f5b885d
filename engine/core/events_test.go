package core

import "testing"

func TestDispatchDeliversInOrder(t *testing.T) {
	bus := NewEventBus()
	var got []EventType
	for _, et := range []EventType{EvtMechNext, EvtMechPrev} {
		bus.On(et, func(e Event) { got = append(got, e.Type) })
	}
	bus.Post(EvtMechPrev, nil)
	bus.Post(EvtMechNext, nil)
	bus.Post(EvtUndo, nil)
	bus.Dispatch()

	if len(got) != 2 || got[0] != EvtMechPrev || got[1] != EvtMechNext {
		t.Fatalf("got %v", got)
	}
	if bus.Pending() != 0 {
		t.Errorf("queue not drained")
	}
}

func TestEmitFromHandlerWaitsForNextDispatch(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	bus.On(EvtBoardResized, func(e Event) {
		calls++
		if s, ok := e.Payload.(Size); !ok || s.Width != 3 {
			t.Errorf("payload = %#v", e.Payload)
		}
		if calls == 1 {
			bus.Post(EvtBoardResized, Size{3, 3})
		}
	})
	bus.Post(EvtBoardResized, Size{3, 4})
	bus.Dispatch()
	if calls != 1 || bus.Pending() != 1 {
		t.Fatalf("calls=%d pending=%d", calls, bus.Pending())
	}
	bus.Dispatch()
	if calls != 2 {
		t.Fatalf("calls=%d", calls)
	}
}

func TestEventTick(t *testing.T) {
	bus := NewEventBus()
	var ticks []uint64
	bus.On(EvtUndo, func(e Event) { ticks = append(ticks, e.Tick) })
	bus.Post(EvtUndo, nil)
	bus.Dispatch()
	bus.Post(EvtUndo, nil)
	bus.Dispatch()
	if len(ticks) != 2 || ticks[0] != 0 || ticks[1] != 1 {
		t.Fatalf("ticks = %v", ticks)
	}
}

func TestEventTypeString(t *testing.T) {
	if EvtExportRequested.String() != "export-requested" || EventType(99).String() != "unknown" {
		t.Fatalf("names: %s %s", EvtExportRequested, EventType(99))
	}
}
