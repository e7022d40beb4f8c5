package loop

import "github.com/milk9111/timeloop/common"

// Frame is one recorded sample. Time is relative to the start of the round
// that produced it.
type Frame struct {
	Position common.Vec2 `yaml:"position"`
	Time     float64     `yaml:"time"`
}

// Trajectory is an ordered list of frames with non-decreasing Time.
type Trajectory []Frame

// Duration returns the timestamp of the final frame.
func (t Trajectory) Duration() float64 {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].Time
}

func (t Trajectory) Clone() Trajectory {
	if t == nil {
		return nil
	}
	out := make(Trajectory, len(t))
	copy(out, t)
	return out
}

// At returns the interpolated position at elapsed playback time using a
// linear scan from the first frame. ok is false for an empty trajectory.
func (t Trajectory) At(elapsed float64) (common.Vec2, bool) {
	pos, _, ok := t.sample(elapsed, 0)
	return pos, ok
}

// sample evaluates the trajectory starting the segment search at cursor and
// returns the segment index it settled on. cursor must not be past the
// segment that contains elapsed.
func (t Trajectory) sample(elapsed float64, cursor int) (common.Vec2, int, bool) {
	n := len(t)
	if n == 0 {
		return common.Vec2{}, cursor, false
	}
	if n == 1 || elapsed >= t[n-1].Time {
		return t[n-1].Position, cursor, true
	}

	i := cursor
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	for i < n-2 && t[i+1].Time <= elapsed {
		i++
	}

	a := t[i]
	b := t[i+1]
	frac := 0.0
	if d := b.Time - a.Time; d > 0 {
		frac = common.Clamp01((elapsed - a.Time) / d)
	}
	return common.LerpVec2(a.Position, b.Position, frac), i, true
}
