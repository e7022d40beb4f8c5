package loop

import "testing"

func TestStealExclusivity(t *testing.T) {
	presses := []struct {
		switchID int
		owner    int
	}{
		{1, 0}, {2, 0}, {1, 1}, {3, 1}, {1, 2}, {2, 2}, {2, 3}, {1, 3},
	}

	r := NewTaskRegistry()
	latest := map[int]*Task{}
	for i, p := range presses {
		latest[p.switchID] = r.RegisterPress(p.switchID, float64(i), p.owner)

		activeCount := map[int]int{}
		for _, task := range r.Tasks() {
			if task.Active() {
				activeCount[task.SwitchID()]++
				if latest[task.SwitchID()] != task {
					t.Fatalf("press %d: active task for switch %d is not the latest", i, task.SwitchID())
				}
			}
		}
		for id, n := range activeCount {
			if n > 1 {
				t.Fatalf("press %d: switch %d has %d active tasks", i, id, n)
			}
		}
	}

	for id, want := range latest {
		got, ok := r.Active(id)
		if !ok || got != want {
			t.Fatalf("switch %d: Active returned %v, want %v", id, got, want)
		}
	}
}

func TestTaskOwnerImmutable(t *testing.T) {
	r := NewTaskRegistry()
	first := r.RegisterPress(4, 1.5, 0)
	r.MarkFired(first, 1)
	r.RegisterPress(4, 0.5, 1)
	r.MarkFired(first, 2)
	r.Prune(10, 1)

	if first.OwnerRound() != 0 || first.SwitchID() != 4 || first.Time() != 1.5 {
		t.Fatalf("task identity changed: owner=%d switch=%d time=%g", first.OwnerRound(), first.SwitchID(), first.Time())
	}
}

func TestMarkFired(t *testing.T) {
	r := NewTaskRegistry()
	task := r.RegisterPress(1, 0, 0)
	if _, ok := task.LastFiredRound(); ok {
		t.Fatalf("new task should not have fired")
	}

	r.MarkFired(task, 3)
	if last, ok := task.LastFiredRound(); !ok || last != 3 {
		t.Fatalf("expected last fired round 3, got %d ok=%v", last, ok)
	}

	r.RegisterPress(1, 0, 1)
	r.MarkFired(task, 4)
	if last, _ := task.LastFiredRound(); last != 3 {
		t.Fatalf("inactive task must not be marked, got %d", last)
	}
}

func TestTasksOwnedBy(t *testing.T) {
	r := NewTaskRegistry()
	a := r.RegisterPress(1, 0.5, 0)
	r.RegisterPress(2, 0.7, 1)
	c := r.RegisterPress(1, 0.9, 0)

	owned := r.TasksOwnedBy(0)
	if len(owned) != 2 || owned[0] != a || owned[1] != c {
		t.Fatalf("unexpected tasks for round 0: %+v", owned)
	}
	if a.Active() {
		t.Fatalf("earlier press of the same switch should be stolen")
	}
	if !r.PressedInRound(2, 1) || r.PressedInRound(2, 0) {
		t.Fatalf("PressedInRound mismatch")
	}
}

func TestPrune(t *testing.T) {
	r := NewTaskRegistry()
	r.RegisterPress(1, 0, 0)
	r.RegisterPress(1, 0, 1)
	r.RegisterPress(2, 0, 1)
	r.RegisterPress(1, 0, 6)

	// minRound = 9 - 2 - 2 = 5: stolen tasks of rounds 0 and 1 go, active ones stay.
	removed := r.Prune(9, 2)
	if removed != 2 {
		t.Fatalf("expected 2 pruned tasks, got %d", removed)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 remaining tasks, got %d", r.Len())
	}
	if _, ok := r.Active(2); !ok {
		t.Fatalf("active task must survive pruning")
	}

	r.Reset()
	if r.Len() != 0 {
		t.Fatalf("expected empty registry after reset")
	}
	if _, ok := r.Active(1); ok {
		t.Fatalf("reset must drop active bindings")
	}
}

func TestSwitchRegistry(t *testing.T) {
	reg := NewSwitchRegistry()
	a := &fakeSwitch{}
	b := &fakeSwitch{}

	reg.Register(3, a)
	reg.Register(3, b)
	got, ok := reg.Lookup(3)
	if !ok || got != b {
		t.Fatalf("expected last registration to win")
	}

	if reg.Unregister(3, a) {
		t.Fatalf("stale instance must not unregister the current binding")
	}
	if !reg.Unregister(3, b) {
		t.Fatalf("expected current instance to unregister")
	}
	if _, ok := reg.Lookup(3); ok {
		t.Fatalf("switch 3 should be gone")
	}

	reg.Register(1, a)
	reg.Register(2, b)
	reg.ResetAll()
	if a.resets != 1 || b.resets != 1 {
		t.Fatalf("expected every switch reset once, got %d and %d", a.resets, b.resets)
	}
}
