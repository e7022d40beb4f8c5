package loop

import "github.com/milk9111/timeloop/common"

type activation struct {
	round int
	at    float64
}

type fakeSwitch struct {
	now         func() float64
	activations []activation
	resets      int
	pressed     bool
}

func (f *fakeSwitch) Activate(round int) {
	at := 0.0
	if f.now != nil {
		at = f.now()
	}
	f.activations = append(f.activations, activation{round: round, at: at})
	f.pressed = true
}

func (f *fakeSwitch) Reset() {
	f.resets++
	f.pressed = false
}

// latchSwitch also reports its pressed state, like a physical button.
type latchSwitch struct {
	*fakeSwitch
}

func (l latchSwitch) Pressed() bool { return l.pressed }

type fakeBody struct {
	pos          common.Vec2
	controllable bool
	toggles      []bool
}

func (b *fakeBody) Position() common.Vec2     { return b.pos }
func (b *fakeBody) SetPosition(p common.Vec2) { b.pos = p }
func (b *fakeBody) SetControllable(v bool) {
	b.controllable = v
	b.toggles = append(b.toggles, v)
}
