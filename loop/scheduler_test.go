package loop

import (
	"testing"
)

type schedulerHarness struct {
	clock     *Clock
	tasks     *TaskRegistry
	switches  *SwitchRegistry
	queue     *Deferred
	events    *EventQueue
	scheduler *TaskScheduler
}

func newSchedulerHarness() *schedulerHarness {
	h := &schedulerHarness{
		clock:    &Clock{},
		tasks:    NewTaskRegistry(),
		switches: NewSwitchRegistry(),
		queue:    &Deferred{},
		events:   &EventQueue{},
	}
	h.scheduler = NewTaskScheduler(h.clock, h.tasks, h.switches, h.queue, h.events)
	return h
}

func (h *schedulerHarness) addSwitch(id int) *fakeSwitch {
	sw := &fakeSwitch{now: h.clock.Now}
	h.switches.Register(id, sw)
	return sw
}

func (h *schedulerHarness) runFor(seconds, dt float64) {
	end := h.clock.Now() + seconds
	for h.clock.Now() < end {
		h.clock.Advance(dt)
		h.queue.Run(h.clock.Now())
	}
}

func TestSchedulerNoPrematureFire(t *testing.T) {
	h := newSchedulerHarness()
	sw := h.addSwitch(1)
	other := h.addSwitch(2)
	a := h.tasks.RegisterPress(1, 0.55, 0)
	b := h.tasks.RegisterPress(2, 1.3, 0)

	h.runFor(5, 0.1)
	anchor := h.clock.Now()
	h.clock.StartRound(1)
	if armed := h.scheduler.Arm(0, anchor); armed != 2 {
		t.Fatalf("expected 2 armed tasks, got %d", armed)
	}
	h.runFor(3, 0.1)

	checks := []struct {
		sw   *fakeSwitch
		task *Task
	}{{sw, a}, {other, b}}
	for _, c := range checks {
		if len(c.sw.activations) != 1 {
			t.Fatalf("switch %d: expected one activation, got %d", c.task.SwitchID(), len(c.sw.activations))
		}
		act := c.sw.activations[0]
		if act.at < anchor+c.task.Time() {
			t.Fatalf("switch %d fired at %g before target %g", c.task.SwitchID(), act.at, anchor+c.task.Time())
		}
		if act.round != 0 {
			t.Fatalf("switch %d: expected owner round 0, got %d", c.task.SwitchID(), act.round)
		}
		if last, ok := c.task.LastFiredRound(); !ok || last != 1 {
			t.Fatalf("switch %d: expected last fired round 1, got %d", c.task.SwitchID(), last)
		}
	}
}

func TestSchedulerStolenTaskNeverFires(t *testing.T) {
	h := newSchedulerHarness()
	sw := h.addSwitch(5)
	stale := h.tasks.RegisterPress(5, 2, 0)

	h.clock.StartRound(1)
	h.scheduler.Arm(0, 0)
	h.runFor(1, 0.25)
	h.tasks.RegisterPress(5, 1, 1)
	h.runFor(3, 0.25)

	if len(sw.activations) != 0 {
		t.Fatalf("stolen task fired %d times", len(sw.activations))
	}
	if _, ok := stale.LastFiredRound(); ok {
		t.Fatalf("stolen task should not be marked fired")
	}
}

func TestSchedulerOncePerRound(t *testing.T) {
	h := newSchedulerHarness()
	sw := h.addSwitch(7)
	h.tasks.RegisterPress(7, 1, 0)

	h.clock.StartRound(1)
	h.scheduler.Arm(0, 0)
	h.scheduler.Arm(0, 0)
	h.scheduler.Arm(0, 0.5)
	h.runFor(3, 0.25)
	if len(sw.activations) != 1 {
		t.Fatalf("expected one activation in round 1, got %d", len(sw.activations))
	}

	h.clock.StartRound(2)
	h.scheduler.Arm(0, h.clock.Now())
	h.runFor(2, 0.25)
	if len(sw.activations) != 2 {
		t.Fatalf("expected the task to fire again in round 2, got %d", len(sw.activations))
	}
}

func TestSchedulerDropsCallbacksFromEarlierRounds(t *testing.T) {
	h := newSchedulerHarness()
	sw := h.addSwitch(3)
	task := h.tasks.RegisterPress(3, 2, 0)

	h.clock.StartRound(1)
	h.scheduler.Arm(0, 0)
	h.runFor(1, 0.25)
	h.clock.StartRound(2)
	h.runFor(3, 0.25)

	if len(sw.activations) != 0 {
		t.Fatalf("callback armed in round 1 fired in round 2")
	}
	if _, ok := task.LastFiredRound(); ok {
		t.Fatalf("dropped callback must not mark the task fired")
	}
}

func TestSchedulerUnknownSwitch(t *testing.T) {
	h := newSchedulerHarness()
	task := h.tasks.RegisterPress(99, 0.5, 0)

	h.clock.StartRound(1)
	h.scheduler.Arm(0, 0)
	h.runFor(1, 0.25)

	if last, ok := task.LastFiredRound(); !ok || last != 1 {
		t.Fatalf("unknown switch should still mark the task fired, got %d ok=%v", last, ok)
	}
	events := h.events.Drain()
	if len(events) != 1 || events[0].Kind != EventTaskSkipped || events[0].SwitchID != 99 {
		t.Fatalf("expected one skipped event, got %+v", events)
	}

	h.scheduler.Arm(0, h.clock.Now())
	h.runFor(1, 0.25)
	if h.events.Len() != 0 {
		t.Fatalf("re-armed task must not retry the lookup in the same round")
	}
}

func TestSchedulerArmsOnlyActive(t *testing.T) {
	h := newSchedulerHarness()
	h.addSwitch(1)
	h.tasks.RegisterPress(1, 0.5, 0)
	h.tasks.RegisterPress(1, 0.5, 1)
	h.tasks.RegisterPress(2, 0.5, 0)

	if armed := h.scheduler.Arm(0, 0); armed != 1 {
		t.Fatalf("expected only the active task of round 0 to arm, got %d", armed)
	}
}
