package loop

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/timeloop/common"
)

var (
	ErrUnknownSwitch   = errors.New("loop: unknown switch")
	ErrNotControllable = errors.New("loop: live entity is not controllable")
	ErrAlreadyPressed  = errors.New("loop: switch already pressed this round")
)

// Movable is the live entity driven by the host. The session reads its
// position while recording and moves it back to spawn between rounds.
type Movable interface {
	Position() common.Vec2
	SetPosition(common.Vec2)
	SetControllable(bool)
}

// Session owns every piece of loop state for one play session.
type Session struct {
	clock     Clock
	recorder  *Recorder
	tasks     *TaskRegistry
	switches  *SwitchRegistry
	queue     Deferred
	events    EventQueue
	pool      *TimelinePool
	scheduler *TaskScheduler
	cycle     *CycleOrchestrator
	live      Movable
}

// NewSession starts round 0 with the live entity at spawn and recording.
func NewSession(cfg Config, live Movable, switches *SwitchRegistry) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if live == nil {
		return nil, errors.New("loop: nil live entity")
	}
	if switches == nil {
		switches = NewSwitchRegistry()
	}

	s := &Session{
		recorder: NewRecorder(cfg.RecordInterval),
		tasks:    NewTaskRegistry(),
		switches: switches,
		pool:     NewTimelinePool(cfg.MaxGhosts),
		live:     live,
	}
	s.scheduler = NewTaskScheduler(&s.clock, s.tasks, s.switches, &s.queue, &s.events)
	s.cycle = &CycleOrchestrator{
		cfg:       cfg,
		clock:     &s.clock,
		recorder:  s.recorder,
		live:      live,
		switches:  s.switches,
		tasks:     s.tasks,
		scheduler: s.scheduler,
		pool:      s.pool,
		events:    &s.events,
	}
	s.start()
	return s, nil
}

func (s *Session) start() {
	s.live.SetPosition(s.cycle.cfg.Spawn)
	s.clock.StartRound(0)
	s.recorder.Start(s.clock.Now())
	s.live.SetControllable(true)
}

// Tick advances the session by dt seconds. Order: clock, live recording and
// ghost replay, due task activations, round transition.
func (s *Session) Tick(dt float64) {
	s.clock.Advance(dt)
	now := s.clock.Now()

	if s.recorder.IsRecording() {
		s.recorder.Sample(s.live.Position(), now)
	}
	s.cycle.advanceGhosts(now)

	s.queue.Run(now)

	s.cycle.update(now)
}

// Interact registers a live press of switchID in the current round. The new
// task steals authority from whichever task held the switch before, and the
// switch activates immediately for the live round.
func (s *Session) Interact(switchID int) (*Task, error) {
	if s.cycle.phase != PhaseRecording {
		return nil, ErrNotControllable
	}
	sw, ok := s.switches.Lookup(switchID)
	if !ok {
		log.Printf("loop: interact with unknown switch %d ignored", switchID)
		return nil, fmt.Errorf("%w: %d", ErrUnknownSwitch, switchID)
	}
	if ps, ok := sw.(PressState); ok && ps.Pressed() {
		return nil, ErrAlreadyPressed
	}
	round := s.clock.Round()
	if s.tasks.PressedInRound(switchID, round) {
		return nil, ErrAlreadyPressed
	}

	prev, hadPrev := s.tasks.Active(switchID)
	at := s.clock.RoundTime()
	task := s.tasks.RegisterPress(switchID, at, round)
	if hadPrev {
		s.events.Push(Event{Kind: EventTaskStolen, Round: round, Timeline: prev.OwnerRound(), SwitchID: switchID, Time: s.clock.Now()})
	}
	s.events.Push(Event{Kind: EventTaskRegistered, Round: round, Timeline: round, SwitchID: switchID, Time: s.clock.Now()})
	log.Printf("loop: registered task switch=%d time=%.3f round=%d", switchID, at, round)

	sw.Activate(round)
	return task, nil
}

// Reset clears every task, timeline and ghost and starts over at round 0.
// Pending config is applied.
func (s *Session) Reset() {
	s.queue.Clear()
	s.events.flush()
	s.tasks.Reset()
	s.pool.Clear()
	s.recorder.Stop()
	s.cycle.reset()
	s.clock.Reset()
	s.switches.ResetAll()
	s.start()
	s.events.Push(Event{Kind: EventSessionReset})
	log.Printf("loop: session reset")
}

// SetConfig stages cfg; it takes effect at the next round end or reset.
func (s *Session) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cycle.pending = &cfg
	return nil
}

func (s *Session) Config() Config            { return s.cycle.cfg }
func (s *Session) Round() int                { return s.clock.Round() }
func (s *Session) Now() float64              { return s.clock.Now() }
func (s *Session) RoundTime() float64        { return s.clock.RoundTime() }
func (s *Session) Phase() Phase              { return s.cycle.phase }
func (s *Session) Controllable() bool        { return s.cycle.phase == PhaseRecording }
func (s *Session) Tasks() *TaskRegistry      { return s.tasks }
func (s *Session) Switches() *SwitchRegistry { return s.switches }
func (s *Session) Timelines() []Timeline     { return s.pool.Timelines() }
func (s *Session) Pending() int              { return s.queue.Len() }

// Events returns the queue of events emitted since the host last drained it.
func (s *Session) Events() *EventQueue { return &s.events }

// Ghosts returns a snapshot of the ghost slots, oldest timeline first.
func (s *Session) Ghosts() []GhostState {
	out := make([]GhostState, 0, len(s.cycle.ghosts))
	for i, g := range s.cycle.ghosts {
		out = append(out, GhostState{
			Slot:     i,
			Timeline: g.Timeline,
			Position: g.Position,
			Visible:  g.Visible,
			State:    g.replayer.State(),
		})
	}
	return out
}
