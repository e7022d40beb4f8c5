package loop

import "github.com/milk9111/timeloop/common"

type PlaybackState int

const (
	PlaybackIdle PlaybackState = iota
	PlaybackRunning
	PlaybackFinished
)

func (s PlaybackState) String() string {
	switch s {
	case PlaybackRunning:
		return "running"
	case PlaybackFinished:
		return "finished"
	default:
		return "idle"
	}
}

// Playback is the result of one Replayer evaluation. Completed is set only on
// the evaluation that reached the end of the trajectory.
type Playback struct {
	Position    common.Vec2
	HasPosition bool
	Completed   bool
}

// Replayer turns a trajectory back into positions over playback time.
type Replayer struct {
	trajectory Trajectory
	start      float64
	cursor     int
	state      PlaybackState
}

// Play restarts playback of t from its first frame, anchored at now.
func (r *Replayer) Play(t Trajectory, now float64) {
	if r == nil {
		return
	}
	r.trajectory = t
	r.start = now
	r.cursor = 0
	r.state = PlaybackRunning
}

func (r *Replayer) Stop() {
	if r == nil {
		return
	}
	r.state = PlaybackIdle
	r.cursor = 0
}

func (r *Replayer) State() PlaybackState {
	if r == nil {
		return PlaybackIdle
	}
	return r.state
}

func (r *Replayer) Trajectory() Trajectory {
	if r == nil {
		return nil
	}
	return r.trajectory
}

// Advance evaluates the playback at session time now.
func (r *Replayer) Advance(now float64) Playback {
	if r == nil {
		return Playback{}
	}

	n := len(r.trajectory)
	switch r.state {
	case PlaybackIdle:
		return Playback{}
	case PlaybackFinished:
		if n == 0 {
			return Playback{}
		}
		return Playback{Position: r.trajectory[n-1].Position, HasPosition: true}
	}

	if n == 0 {
		r.state = PlaybackFinished
		return Playback{Completed: true}
	}

	elapsed := now - r.start
	if n == 1 || elapsed >= r.trajectory[n-1].Time {
		r.state = PlaybackFinished
		return Playback{Position: r.trajectory[n-1].Position, HasPosition: true, Completed: true}
	}

	pos, cursor, _ := r.trajectory.sample(elapsed, r.cursor)
	r.cursor = cursor
	return Playback{Position: pos, HasPosition: true}
}
