package system

import (
	"log"

	"github.com/milk9111/timeloop/ecs"
	"github.com/milk9111/timeloop/ecs/component"
)

// GateSystem opens and closes gates from the pressed state of their linked
// switch. An open gate loses its physics body and sprite until it closes.
type GateSystem struct{}

func NewGateSystem() *GateSystem { return &GateSystem{} }

func (s *GateSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	pressed := make(map[int]bool)
	ecs.ForEach(w, component.SwitchComponent.Kind(), func(_ ecs.Entity, sw *component.Switch) {
		pressed[sw.ID] = sw.Pressed
	})

	ecs.ForEach(w, component.GateComponent.Kind(), func(e ecs.Entity, gate *component.Gate) {
		rt, ok := ecs.Get(w, e, component.GateRuntimeComponent.Kind())
		if !ok {
			rt = &component.GateRuntime{}
			_ = ecs.Add(w, e, component.GateRuntimeComponent.Kind(), rt)
		}

		if !rt.Initialized {
			if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
				template := *body
				template.Body = nil
				template.Shape = nil
				rt.HasPhysicsBody = true
				rt.PhysicsTemplate = template
			}
			rt.Initialized = true
		}

		open := pressed[gate.SwitchID] == gate.OpenWhenPressed
		if open {
			_ = ecs.Remove(w, e, component.PhysicsBodyComponent.Kind())
		} else if rt.HasPhysicsBody && !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			template := rt.PhysicsTemplate
			_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &template)
		}
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.Hidden = open
		}

		if open != gate.Open {
			gate.Open = open
			log.Printf("gate: switch=%d open=%v", gate.SwitchID, open)
			w.Events().Push(ecs.Event{Type: ecs.EventGateChanged, Data: ecs.GateEvent{Entity: e, Open: open}})
		}
	})
}
