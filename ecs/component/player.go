package component

type Player struct {
	MoveSpeed      float64
	JumpSpeed      float64
	InteractRadius float64
}

var PlayerComponent = NewComponent[Player]()

// Controllable gates whether Input moves the entity. The time loop turns it
// off while the world is frozen between rounds.
type Controllable struct {
	Enabled bool
}

var ControllableComponent = NewComponent[Controllable]()
