package system

import (
	"log"

	"github.com/milk9111/timeloop/common"
	"github.com/milk9111/timeloop/ecs"
	"github.com/milk9111/timeloop/ecs/component"
	"github.com/milk9111/timeloop/loop"
)

// SwitchBinding exposes a switch entity to the loop as a loop.Switch.
type SwitchBinding struct {
	world  *ecs.World
	entity ecs.Entity
}

func NewSwitchBinding(w *ecs.World, e ecs.Entity) *SwitchBinding {
	return &SwitchBinding{world: w, entity: e}
}

func (b *SwitchBinding) Entity() ecs.Entity { return b.entity }

// Activate presses the switch on behalf of the owner round. Presses on an
// already pressed switch keep the first owner.
func (b *SwitchBinding) Activate(round int) {
	sw, ok := ecs.Get(b.world, b.entity, component.SwitchComponent.Kind())
	if !ok {
		log.Printf("switch: activate on entity %s without switch component", b.entity)
		return
	}
	if sw.Pressed {
		return
	}
	sw.Pressed = true
	sw.Round = round
}

func (b *SwitchBinding) Reset() {
	sw, ok := ecs.Get(b.world, b.entity, component.SwitchComponent.Kind())
	if !ok {
		return
	}
	sw.Pressed = false
	sw.Round = -1
}

func (b *SwitchBinding) Pressed() bool {
	sw, ok := ecs.Get(b.world, b.entity, component.SwitchComponent.Kind())
	return ok && sw.Pressed
}

// BindSwitches registers every switch entity in the world with reg.
func BindSwitches(w *ecs.World, reg *loop.SwitchRegistry) int {
	n := 0
	ecs.ForEach(w, component.SwitchComponent.Kind(), func(e ecs.Entity, sw *component.Switch) {
		reg.Register(sw.ID, NewSwitchBinding(w, e))
		n++
	})
	return n
}

// LiveBody exposes the player entity to the loop as a loop.Movable.
type LiveBody struct {
	world  *ecs.World
	entity ecs.Entity
}

func NewLiveBody(w *ecs.World, e ecs.Entity) *LiveBody {
	return &LiveBody{world: w, entity: e}
}

func (b *LiveBody) Position() common.Vec2 {
	t, ok := ecs.Get(b.world, b.entity, component.TransformComponent.Kind())
	if !ok {
		return common.Vec2{}
	}
	return common.Vec2{X: t.X, Y: t.Y}
}

func (b *LiveBody) SetPosition(pos common.Vec2) {
	Teleport(b.world, b.entity, pos.X, pos.Y)
}

func (b *LiveBody) SetControllable(enabled bool) {
	c, ok := ecs.Get(b.world, b.entity, component.ControllableComponent.Kind())
	if !ok {
		_ = ecs.Add(b.world, b.entity, component.ControllableComponent.Kind(), &component.Controllable{Enabled: enabled})
		return
	}
	c.Enabled = enabled
}
