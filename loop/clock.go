package loop

// Clock tracks session time and the anchor of the current round. Time only
// moves through Advance, so tests can drive it with any tick pattern.
type Clock struct {
	now        float64
	roundStart float64
	round      int
}

// Advance moves session time forward by dt seconds. Negative steps are ignored.
func (c *Clock) Advance(dt float64) {
	if c == nil || dt <= 0 {
		return
	}
	c.now += dt
}

func (c *Clock) Now() float64 {
	if c == nil {
		return 0
	}
	return c.now
}

// RoundTime returns the seconds elapsed since the current round started.
func (c *Clock) RoundTime() float64 {
	if c == nil {
		return 0
	}
	return c.now - c.roundStart
}

func (c *Clock) RoundStart() float64 {
	if c == nil {
		return 0
	}
	return c.roundStart
}

func (c *Clock) Round() int {
	if c == nil {
		return 0
	}
	return c.round
}

// StartRound anchors a new round at the current session time.
func (c *Clock) StartRound(round int) {
	if c == nil {
		return
	}
	c.round = round
	c.roundStart = c.now
}

func (c *Clock) Reset() {
	if c == nil {
		return
	}
	*c = Clock{}
}
