package loop

// EventKind identifies session events.
type EventKind string

const (
	EventTaskRegistered  EventKind = "task_registered"
	EventTaskStolen      EventKind = "task_stolen"
	EventTaskFired       EventKind = "task_fired"
	EventTaskSkipped     EventKind = "task_skipped"
	EventRoundEnded      EventKind = "round_ended"
	EventTimelineEvicted EventKind = "timeline_evicted"
	EventRoundStarted    EventKind = "round_started"
	EventReplayFinished  EventKind = "replay_finished"
	EventSessionReset    EventKind = "session_reset"
)

// Event is emitted by the session for hosts that react to the loop (HUD,
// audio, traces). Fields that do not apply to a kind are zero.
type Event struct {
	Kind     EventKind
	Round    int
	Timeline int
	SwitchID int
	Time     float64
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
