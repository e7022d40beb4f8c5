package loop

const noRound = -1

// Task is a recorded switch press owned by the round it happened in.
type Task struct {
	switchID  int
	time      float64
	owner     int
	active    bool
	lastFired int
}

func (t *Task) SwitchID() int { return t.switchID }

// Time is the round-relative moment of the press.
func (t *Task) Time() float64 { return t.time }

func (t *Task) OwnerRound() int { return t.owner }

// Active reports whether this task still holds authority over its switch.
func (t *Task) Active() bool { return t.active }

// LastFiredRound returns the last round the task fired in, if any.
func (t *Task) LastFiredRound() (int, bool) {
	return t.lastFired, t.lastFired != noRound
}

// TaskRegistry is the single source of truth for switch-press tasks within a
// play session. At most one task per switch is active at any time.
type TaskRegistry struct {
	tasks  []*Task
	active map[int]*Task
}

func NewTaskRegistry() *TaskRegistry {
	return &TaskRegistry{active: make(map[int]*Task)}
}

// RegisterPress deactivates the current task for switchID, if any, and
// appends a new active task owned by owner.
func (r *TaskRegistry) RegisterPress(switchID int, at float64, owner int) *Task {
	if r.active == nil {
		r.active = make(map[int]*Task)
	}
	if prev, ok := r.active[switchID]; ok {
		prev.active = false
	}

	t := &Task{
		switchID:  switchID,
		time:      at,
		owner:     owner,
		active:    true,
		lastFired: noRound,
	}
	r.tasks = append(r.tasks, t)
	r.active[switchID] = t
	return t
}

// Active returns the task currently holding switchID.
func (r *TaskRegistry) Active(switchID int) (*Task, bool) {
	t, ok := r.active[switchID]
	return t, ok
}

// TasksOwnedBy returns every task created in round, active or not, in
// registration order.
func (r *TaskRegistry) TasksOwnedBy(round int) []*Task {
	var out []*Task
	for _, t := range r.tasks {
		if t.owner == round {
			out = append(out, t)
		}
	}
	return out
}

// PressedInRound reports whether a task for switchID was created in round.
func (r *TaskRegistry) PressedInRound(switchID, round int) bool {
	for _, t := range r.tasks {
		if t.switchID == switchID && t.owner == round {
			return true
		}
	}
	return false
}

// MarkFired records that t fired in round. Inactive tasks are left alone.
func (r *TaskRegistry) MarkFired(t *Task, round int) {
	if t == nil || !t.active {
		return
	}
	t.lastFired = round
}

// Prune drops inactive tasks whose owner round is older than
// currentRound-maxGhosts-2 and returns how many were removed.
func (r *TaskRegistry) Prune(currentRound, maxGhosts int) int {
	minRound := max(0, currentRound-maxGhosts-2)
	kept := r.tasks[:0]
	removed := 0
	for _, t := range r.tasks {
		if !t.active && t.owner < minRound {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	for i := len(kept); i < len(r.tasks); i++ {
		r.tasks[i] = nil
	}
	r.tasks = kept
	return removed
}

// Tasks returns a snapshot of all tasks in registration order.
func (r *TaskRegistry) Tasks() []*Task {
	return append([]*Task(nil), r.tasks...)
}

func (r *TaskRegistry) Len() int {
	return len(r.tasks)
}

func (r *TaskRegistry) Reset() {
	r.tasks = nil
	r.active = make(map[int]*Task)
}
