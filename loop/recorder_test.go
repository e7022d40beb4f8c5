package loop

import (
	"testing"

	"github.com/milk9111/timeloop/common"
)

func TestRecorderSampling(t *testing.T) {
	cases := []struct {
		name     string
		interval float64
		ticks    []float64
		want     []float64
	}{
		{"every_tick", 0.25, []float64{0.25, 0.25, 0.25}, []float64{0, 0.25, 0.5, 0.75}},
		{"variable_rate", 0.5, []float64{0.125, 0.125, 0.25, 0.125, 0.5}, []float64{0, 0.5, 1.125}},
		{"slow_ticks", 0.25, []float64{1, 1}, []float64{0, 1, 2}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewRecorder(c.interval)
			now := 4.0
			r.Start(now)
			r.Sample(common.Vec2{X: now}, now)
			for _, dt := range c.ticks {
				now += dt
				r.Sample(common.Vec2{X: now}, now)
			}

			traj := r.TakeTrajectory()
			if len(traj) != len(c.want) {
				t.Fatalf("expected %d frames, got %d: %+v", len(c.want), len(traj), traj)
			}
			for i, tm := range c.want {
				if traj[i].Time != tm {
					t.Fatalf("frame %d: expected time %g, got %g", i, tm, traj[i].Time)
				}
				if traj[i].Position.X != 4+tm {
					t.Fatalf("frame %d: expected x %g, got %g", i, 4+tm, traj[i].Position.X)
				}
			}
		})
	}
}

func TestRecorderLifecycle(t *testing.T) {
	r := NewRecorder(0.1)
	if r.Sample(common.Vec2{}, 0) {
		t.Fatalf("sample before Start should be dropped")
	}

	r.Start(0)
	r.Sample(common.Vec2{X: 1}, 0)
	r.Sample(common.Vec2{X: 2}, 0.5)

	taken := r.TakeTrajectory()
	taken[0].Position.X = 99
	if again := r.TakeTrajectory(); again[0].Position.X != 1 {
		t.Fatalf("TakeTrajectory must return a copy, buffer changed to %v", again[0].Position)
	}

	r.Stop()
	if r.IsRecording() {
		t.Fatalf("expected recorder to be stopped")
	}
	if r.Sample(common.Vec2{X: 3}, 2) {
		t.Fatalf("sample after Stop should be dropped")
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 frames after stop, got %d", r.Len())
	}

	r.Start(10)
	if r.Len() != 0 {
		t.Fatalf("Start should clear the buffer, got %d frames", r.Len())
	}
	if got := r.TakeTrajectory(); len(got) != 0 {
		t.Fatalf("expected empty trajectory, got %+v", got)
	}
}
