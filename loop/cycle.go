package loop

import "log"

// Phase is the top-level state of the round cycle. Ghost replay runs
// alongside PhaseRecording rather than being a phase of its own.
type Phase int

const (
	PhaseRecording Phase = iota
	PhaseFrozen
	PhasePreStart
)

func (p Phase) String() string {
	switch p {
	case PhaseFrozen:
		return "frozen"
	case PhasePreStart:
		return "pre_start"
	default:
		return "recording"
	}
}

// CycleOrchestrator runs the round transition: it turns the live recording
// into a timeline, freezes the world, evicts old timelines and restarts every
// resident timeline alongside a new live round.
type CycleOrchestrator struct {
	cfg     Config
	pending *Config

	clock     *Clock
	recorder  *Recorder
	live      Movable
	switches  *SwitchRegistry
	tasks     *TaskRegistry
	scheduler *TaskScheduler
	pool      *TimelinePool
	events    *EventQueue

	ghosts    []*Ghost
	phase     Phase
	phaseEnds float64
	recorded  int
}

func (o *CycleOrchestrator) Phase() Phase { return o.phase }

// update runs every transition that is due at now. Zero-length phases
// complete within the same call.
func (o *CycleOrchestrator) update(now float64) {
	for range 3 {
		if !o.step(now) {
			return
		}
	}
}

func (o *CycleOrchestrator) step(now float64) bool {
	switch o.phase {
	case PhaseRecording:
		if o.recorder.IsRecording() && o.clock.RoundTime() >= o.cfg.CycleTime {
			o.endRound(now)
			return true
		}
	case PhaseFrozen:
		if now >= o.phaseEnds {
			o.thaw(now)
			return true
		}
	case PhasePreStart:
		if now >= o.phaseEnds {
			o.beginRound(now)
			return true
		}
	}
	return false
}

func (o *CycleOrchestrator) endRound(now float64) {
	round := o.clock.Round()

	// callbacks still queued belong to the round that just ended
	o.scheduler.queue.Clear()
	o.recorder.Stop()
	trajectory := o.recorder.TakeTrajectory()
	o.pool.Push(Timeline{Index: round, Trajectory: trajectory})
	o.recorded++
	o.live.SetControllable(false)

	for _, g := range o.ghosts {
		g.Visible = false
		g.replayer.Stop()
	}

	o.applyPending()

	o.phase = PhaseFrozen
	o.phaseEnds = now + o.cfg.FreezeDuration
	o.events.Push(Event{Kind: EventRoundEnded, Round: round, Timeline: round, Time: now})
	log.Printf("loop: round %d ended with %d frames", round, len(trajectory))
}

func (o *CycleOrchestrator) thaw(now float64) {
	o.live.SetPosition(o.cfg.Spawn)
	o.switches.ResetAll()

	for o.pool.Overflowing() {
		evicted, ok := o.pool.EvictOldest()
		if !ok {
			break
		}
		if len(o.ghosts) > 0 {
			o.ghosts[0] = nil
			o.ghosts = o.ghosts[1:]
		}
		o.events.Push(Event{Kind: EventTimelineEvicted, Round: o.clock.Round(), Timeline: evicted.Index, Time: now})
		log.Printf("loop: evicted timeline %d", evicted.Index)
	}

	if o.cfg.PruneTasks {
		if n := o.tasks.Prune(o.recorded, o.cfg.MaxGhosts); n > 0 {
			log.Printf("loop: pruned %d stale tasks", n)
		}
	}

	o.phase = PhasePreStart
	o.phaseEnds = now + o.cfg.PreStartDelay
}

func (o *CycleOrchestrator) beginRound(now float64) {
	timelines := o.pool.Timelines()
	for i, tl := range timelines {
		if i >= len(o.ghosts) {
			o.ghosts = append(o.ghosts, &Ghost{})
		}
		g := o.ghosts[i]
		g.Timeline = tl.Index
		g.Position = o.cfg.Spawn
		g.Visible = true
		g.replayer.Play(tl.Trajectory, now)
	}
	for i := len(timelines); i < len(o.ghosts); i++ {
		o.ghosts[i] = nil
	}
	o.ghosts = o.ghosts[:len(timelines)]

	// rounds count every recording, not the resident timelines, so indices stay unique after eviction
	o.clock.StartRound(o.recorded)
	o.recorder.Start(now)

	armed := 0
	for _, tl := range timelines {
		armed += o.scheduler.Arm(tl.Index, now)
	}

	o.live.SetControllable(true)
	o.phase = PhaseRecording
	o.events.Push(Event{Kind: EventRoundStarted, Round: o.clock.Round(), Time: now})
	log.Printf("loop: round %d started with %d ghosts, %d tasks armed", o.clock.Round(), len(timelines), armed)
}

// advanceGhosts moves every visible ghost along its trajectory.
func (o *CycleOrchestrator) advanceGhosts(now float64) {
	for _, g := range o.ghosts {
		if !g.Visible {
			continue
		}
		pb := g.replayer.Advance(now)
		if pb.HasPosition {
			g.Position = pb.Position
		}
		if pb.Completed {
			o.events.Push(Event{Kind: EventReplayFinished, Round: o.clock.Round(), Timeline: g.Timeline, Time: now})
		}
	}
}

func (o *CycleOrchestrator) applyPending() {
	if o.pending == nil {
		return
	}
	o.cfg = *o.pending
	o.pending = nil
	o.pool.SetCapacity(o.cfg.MaxGhosts)
	o.recorder.SetInterval(o.cfg.RecordInterval)
	log.Printf("loop: applied new cycle config cycle_time=%g max_ghosts=%d", o.cfg.CycleTime, o.cfg.MaxGhosts)
}

func (o *CycleOrchestrator) reset() {
	o.applyPending()
	o.ghosts = nil
	o.phase = PhaseRecording
	o.phaseEnds = 0
	o.recorded = 0
}
