package system

import (
	"github.com/milk9111/timeloop/ecs"
	"github.com/milk9111/timeloop/ecs/component"
)

// PlayerControllerSystem turns Input into body velocity while the entity is
// controllable. A frozen player keeps falling but cannot steer or jump.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, player *component.Player, input *component.Input, bodyComp *component.PhysicsBody) {
		if bodyComp.Body == nil {
			return
		}

		vel := bodyComp.Body.Velocity()
		if !isControllable(w, e) {
			vel.X = 0
			bodyComp.Body.SetVelocityVector(vel)
			return
		}

		vel.X = input.MoveX * player.MoveSpeed
		if input.JumpPressed && isGrounded(w, e) {
			vel.Y = -player.JumpSpeed
			if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok {
				pc.GroundGrace = 0
			}
		}
		bodyComp.Body.SetVelocityVector(vel)
	})
}

func isControllable(w *ecs.World, e ecs.Entity) bool {
	c, ok := ecs.Get(w, e, component.ControllableComponent.Kind())
	return !ok || c.Enabled
}

func isGrounded(w *ecs.World, e ecs.Entity) bool {
	pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
	return ok && (pc.Grounded || pc.GroundGrace > 0)
}
