package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	// EventInteract carries an InteractEvent.
	EventInteract = "interact"
	// EventGateChanged carries a GateEvent.
	EventGateChanged = "gate_changed"
)

// InteractEvent reports the outcome of a live switch press.
type InteractEvent struct {
	Entity   Entity
	SwitchID int
	Err      error
}

// GateEvent is emitted when a gate opens or closes.
type GateEvent struct {
	Entity Entity
	Open   bool
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
