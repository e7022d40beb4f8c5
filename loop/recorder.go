package loop

import "github.com/milk9111/timeloop/common"

// Recorder samples a moving entity into a round-relative trajectory.
type Recorder struct {
	interval   float64
	roundStart float64
	recording  bool
	frames     Trajectory
}

func NewRecorder(interval float64) *Recorder {
	return &Recorder{interval: interval}
}

// SetInterval changes the sampling cadence; it applies to the next sample.
func (r *Recorder) SetInterval(interval float64) {
	if r == nil || interval < 0 {
		return
	}
	r.interval = interval
}

func (r *Recorder) Interval() float64 {
	if r == nil {
		return 0
	}
	return r.interval
}

// Start drops any buffered frames and begins sampling a round anchored at
// roundStart.
func (r *Recorder) Start(roundStart float64) {
	if r == nil {
		return
	}
	r.frames = nil
	r.roundStart = roundStart
	r.recording = true
}

func (r *Recorder) Stop() {
	if r == nil {
		return
	}
	r.recording = false
}

func (r *Recorder) IsRecording() bool {
	return r != nil && r.recording
}

// Sample appends a frame when at least one interval has passed since the last
// appended frame. The first sample after Start is always kept.
func (r *Recorder) Sample(pos common.Vec2, now float64) bool {
	if r == nil || !r.recording {
		return false
	}
	rel := now - r.roundStart
	if rel < 0 {
		return false
	}
	if n := len(r.frames); n > 0 {
		last := r.frames[n-1].Time
		if rel < last || rel-last < r.interval {
			return false
		}
	}
	r.frames = append(r.frames, Frame{Position: pos, Time: rel})
	return true
}

// Len reports how many frames were collected since the last Start.
func (r *Recorder) Len() int {
	if r == nil {
		return 0
	}
	return len(r.frames)
}

// TakeTrajectory returns a copy of the frames collected since the last Start.
func (r *Recorder) TakeTrajectory() Trajectory {
	if r == nil || len(r.frames) == 0 {
		return Trajectory{}
	}
	return r.frames.Clone()
}
