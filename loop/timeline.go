package loop

import "github.com/milk9111/timeloop/common"

// Timeline is a finished round kept for replay.
type Timeline struct {
	Index      int
	Trajectory Trajectory
}

// TimelinePool holds recorded timelines in insertion order.
type TimelinePool struct {
	capacity  int
	timelines []Timeline
}

func NewTimelinePool(capacity int) *TimelinePool {
	return &TimelinePool{capacity: capacity}
}

func (p *TimelinePool) Push(t Timeline) {
	p.timelines = append(p.timelines, t)
}

// Overflowing reports whether more timelines are resident than allowed.
func (p *TimelinePool) Overflowing() bool {
	return len(p.timelines) > p.capacity
}

// EvictOldest removes the first inserted timeline.
func (p *TimelinePool) EvictOldest() (Timeline, bool) {
	if len(p.timelines) == 0 {
		return Timeline{}, false
	}
	out := p.timelines[0]
	p.timelines[0] = Timeline{}
	p.timelines = p.timelines[1:]
	return out, true
}

// Timelines returns the resident timelines, oldest first.
func (p *TimelinePool) Timelines() []Timeline {
	return append([]Timeline(nil), p.timelines...)
}

func (p *TimelinePool) Len() int      { return len(p.timelines) }
func (p *TimelinePool) Capacity() int { return p.capacity }

func (p *TimelinePool) SetCapacity(n int) {
	if n < 0 {
		n = 0
	}
	p.capacity = n
}

func (p *TimelinePool) Clear() {
	p.timelines = nil
}

// Ghost is a pooled replay slot. Slots are reused across rounds.
type Ghost struct {
	Timeline int
	Position common.Vec2
	Visible  bool
	replayer Replayer
}

// GhostState is a read-only snapshot of a ghost slot.
type GhostState struct {
	Slot     int
	Timeline int
	Position common.Vec2
	Visible  bool
	State    PlaybackState
}
