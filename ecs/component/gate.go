package component

// Switch is a pressure switch the live player or a ghost can press.
type Switch struct {
	ID      int
	Pressed bool
	// Round is the owner round of the press that activated it, -1 when released.
	Round  int
	Width  float64
	Height float64
}

var SwitchComponent = NewComponent[Switch]()

// Gate is a solid block that opens while its linked switch is pressed
// (or closes, when OpenWhenPressed is false).
type Gate struct {
	SwitchID        int
	OpenWhenPressed bool
	Open            bool
}

// GateRuntime caches authored components so gates can be disabled/enabled
// without destroying the entity.
type GateRuntime struct {
	Initialized     bool
	HasPhysicsBody  bool
	PhysicsTemplate PhysicsBody
}

var GateComponent = NewComponent[Gate]()
var GateRuntimeComponent = NewComponent[GateRuntime]()
