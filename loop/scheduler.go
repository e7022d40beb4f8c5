package loop

import "log"

// TaskScheduler arms switch activations for replaying timelines. Every check
// happens when the callback fires, so a steal after arming cancels it.
type TaskScheduler struct {
	clock    *Clock
	tasks    *TaskRegistry
	switches *SwitchRegistry
	queue    *Deferred
	events   *EventQueue
}

func NewTaskScheduler(clock *Clock, tasks *TaskRegistry, switches *SwitchRegistry, queue *Deferred, events *EventQueue) *TaskScheduler {
	return &TaskScheduler{
		clock:    clock,
		tasks:    tasks,
		switches: switches,
		queue:    queue,
		events:   events,
	}
}

// Arm schedules every active task owned by owner at anchor+task.Time and
// returns how many callbacks were queued. A callback only fires in the round
// it was armed in.
func (s *TaskScheduler) Arm(owner int, anchor float64) int {
	if s == nil || s.tasks == nil || s.queue == nil {
		return 0
	}
	round := s.clock.Round()
	armed := 0
	for _, t := range s.tasks.TasksOwnedBy(owner) {
		if !t.Active() {
			continue
		}
		task := t
		s.queue.At(anchor+task.Time(), func(now float64) {
			s.fire(task, round, now)
		})
		armed++
	}
	return armed
}

func (s *TaskScheduler) fire(t *Task, armed int, now float64) {
	if !t.Active() {
		return
	}
	round := s.clock.Round()
	if round != armed {
		return
	}
	if last, ok := t.LastFiredRound(); ok && last == round {
		return
	}

	sw, ok := s.switches.Lookup(t.SwitchID())
	if !ok {
		log.Printf("loop: unknown switch %d for task owned by round %d, skipping", t.SwitchID(), t.OwnerRound())
		s.tasks.MarkFired(t, round)
		s.events.Push(Event{Kind: EventTaskSkipped, Round: round, Timeline: t.OwnerRound(), SwitchID: t.SwitchID(), Time: now})
		return
	}

	sw.Activate(t.OwnerRound())
	s.tasks.MarkFired(t, round)
	s.events.Push(Event{Kind: EventTaskFired, Round: round, Timeline: t.OwnerRound(), SwitchID: t.SwitchID(), Time: now})
	log.Printf("loop: task fired switch=%d owner=%d round=%d", t.SwitchID(), t.OwnerRound(), round)
}
