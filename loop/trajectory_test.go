package loop

import (
	"testing"

	"github.com/milk9111/timeloop/common"
)

func TestReplayerEndpoints(t *testing.T) {
	p0 := common.Vec2{X: 0, Y: 0}
	p1 := common.Vec2{X: 2, Y: 4}
	p2 := common.Vec2{X: 6, Y: -2}
	traj := Trajectory{{Position: p0, Time: 0}, {Position: p1, Time: 1}, {Position: p2, Time: 2}}

	cases := []struct {
		name      string
		elapsed   float64
		want      common.Vec2
		completed bool
	}{
		{"start", 0, p0, false},
		{"first_midpoint", 0.5, common.Vec2{X: 1, Y: 2}, false},
		{"second_frame", 1, p1, false},
		{"second_midpoint", 1.5, common.Vec2{X: 4, Y: 1}, false},
		{"end", 2, p2, true},
		{"past_end", 7, p2, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var r Replayer
			r.Play(traj, 10)
			pb := r.Advance(10 + c.elapsed)
			if !pb.HasPosition || pb.Position != c.want {
				t.Fatalf("expected %v, got %v (has=%v)", c.want, pb.Position, pb.HasPosition)
			}
			if pb.Completed != c.completed {
				t.Fatalf("expected completed=%v, got %v", c.completed, pb.Completed)
			}
		})
	}
}

func TestReplayerCompletesOnce(t *testing.T) {
	traj := Trajectory{{Position: common.Vec2{X: 1}, Time: 0}, {Position: common.Vec2{X: 3}, Time: 1}}
	var r Replayer
	r.Play(traj, 0)

	completions := 0
	for i := 0; i <= 20; i++ {
		pb := r.Advance(float64(i) * 0.25)
		if pb.Completed {
			completions++
		}
	}
	if completions != 1 {
		t.Fatalf("expected exactly one completion, got %d", completions)
	}
	if r.State() != PlaybackFinished {
		t.Fatalf("expected finished state, got %s", r.State())
	}
	if pb := r.Advance(100); pb.Position.X != 3 || pb.Completed {
		t.Fatalf("finished playback should hold the last frame, got %+v", pb)
	}

	r.Play(traj, 50)
	if pb := r.Advance(50); pb.Position.X != 1 || pb.Completed {
		t.Fatalf("restarted playback should begin at the first frame, got %+v", pb)
	}
}

func TestReplayerDegenerate(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var r Replayer
		r.Play(nil, 0)
		pb := r.Advance(0)
		if pb.HasPosition || !pb.Completed {
			t.Fatalf("expected immediate completion without a position, got %+v", pb)
		}
	})
	t.Run("single", func(t *testing.T) {
		var r Replayer
		r.Play(Trajectory{{Position: common.Vec2{X: 5, Y: 5}, Time: 3}}, 0)
		pb := r.Advance(0)
		if !pb.HasPosition || pb.Position != (common.Vec2{X: 5, Y: 5}) || !pb.Completed {
			t.Fatalf("expected immediate completion at the sole frame, got %+v", pb)
		}
	})
	t.Run("idle", func(t *testing.T) {
		var r Replayer
		if pb := r.Advance(1); pb.HasPosition || pb.Completed {
			t.Fatalf("idle replayer should report nothing, got %+v", pb)
		}
	})
}

func TestZeroLengthSegmentSnapsToEarlierFrame(t *testing.T) {
	a := common.Vec2{X: 1}
	b := common.Vec2{X: 9}
	traj := Trajectory{{Position: a, Time: 0.5}, {Position: b, Time: 0.5}, {Position: common.Vec2{X: 20}, Time: 1}}

	pos, ok := traj.At(0.25)
	if !ok || pos != a {
		t.Fatalf("expected snap to %v, got %v", a, pos)
	}
}

func TestCursorMatchesLinearScan(t *testing.T) {
	var traj Trajectory
	for i := 0; i < 40; i++ {
		tm := float64(i) * 0.037
		if i%7 == 3 {
			tm = traj[len(traj)-1].Time
		}
		traj = append(traj, Frame{
			Position: common.Vec2{X: float64(i*i) * 0.3, Y: float64(40-i) / 3},
			Time:     tm,
		})
	}

	var r Replayer
	r.Play(traj, 2)
	for e := 0.0; e <= traj.Duration()+0.1; e += 0.0131 {
		now := 2 + e
		pb := r.Advance(now)
		want, _ := traj.At(now - 2)
		if pb.Position != want {
			t.Fatalf("elapsed %g: cursor gave %v, scan gave %v", e, pb.Position, want)
		}
	}
}
