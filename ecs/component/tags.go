package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type PlatformTag struct{}

var PlatformTagComponent = NewComponent[PlatformTag]()

// Ghost marks an entity mirroring one replaying timeline.
type Ghost struct {
	Slot     int
	Timeline int
}

var GhostComponent = NewComponent[Ghost]()
