package system

import (
	"errors"
	"log"
	"math"

	"github.com/milk9111/timeloop/ecs"
	"github.com/milk9111/timeloop/ecs/component"
	"github.com/milk9111/timeloop/loop"
)

// Interactor accepts live switch presses.
type Interactor interface {
	Interact(switchID int) (*loop.Task, error)
}

// InteractSystem forwards an interact input to the closest switch within the
// player's reach.
type InteractSystem struct {
	target Interactor
}

func NewInteractSystem(target Interactor) *InteractSystem {
	return &InteractSystem{target: target}
}

func (s *InteractSystem) Update(w *ecs.World) {
	if s == nil || s.target == nil || w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, player *component.Player, input *component.Input, transform *component.Transform) {
		if !input.Interact {
			return
		}
		input.Interact = false

		px, py := center(w, e, transform)
		id, ok := closestSwitch(w, px, py, player.InteractRadius)
		if !ok {
			return
		}

		_, err := s.target.Interact(id)
		if err != nil && !errors.Is(err, loop.ErrAlreadyPressed) && !errors.Is(err, loop.ErrNotControllable) {
			log.Printf("interact: switch=%d: %v", id, err)
		}
		w.Events().Push(ecs.Event{Type: ecs.EventInteract, Data: ecs.InteractEvent{Entity: e, SwitchID: id, Err: err}})
	})
}

func closestSwitch(w *ecs.World, px, py, radius float64) (int, bool) {
	bestID, found := 0, false
	best := radius
	ecs.ForEach2(w, component.SwitchComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, sw *component.Switch, t *component.Transform) {
		d := math.Hypot(t.X+sw.Width/2-px, t.Y+sw.Height/2-py)
		if d <= best {
			best, bestID, found = d, sw.ID, true
		}
	})
	return bestID, found
}

func center(w *ecs.World, e ecs.Entity, t *component.Transform) (float64, float64) {
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		return t.X + body.Width/2, t.Y + body.Height/2
	}
	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		return t.X + sprite.Width/2, t.Y + sprite.Height/2
	}
	return t.X, t.Y
}
