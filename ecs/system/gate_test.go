package system

import (
	"testing"

	"github.com/milk9111/timeloop/ecs"
	"github.com/milk9111/timeloop/ecs/component"
)

func addGate(t *testing.T, w *ecs.World, switchID int, openWhenPressed bool) ecs.Entity {
	t.Helper()
	e := addPlatform(t, w, 100, 0, 20, 100)
	if err := ecs.Add(w, e, component.GateComponent.Kind(), &component.Gate{SwitchID: switchID, OpenWhenPressed: openWhenPressed}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Width: 20, Height: 100}); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestGateFollowsSwitch(t *testing.T) {
	cases := []struct {
		name            string
		openWhenPressed bool
	}{
		{"door", true},
		{"bridge", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			sw := NewSwitchBinding(w, newSwitchEntity(t, w, 1, 0, 0))
			gate := addGate(t, w, 1, c.openWhenPressed)
			gates := NewGateSystem()

			check := func(step string, wantOpen bool) {
				t.Helper()
				g, _ := ecs.Get(w, gate, component.GateComponent.Kind())
				sprite, _ := ecs.Get(w, gate, component.SpriteComponent.Kind())
				solid := ecs.Has(w, gate, component.PhysicsBodyComponent.Kind())
				if g.Open != wantOpen || solid == wantOpen || sprite.Hidden != wantOpen {
					t.Fatalf("%s: expected open=%v, got open=%v solid=%v hidden=%v", step, wantOpen, g.Open, solid, sprite.Hidden)
				}
			}

			gates.Update(w)
			check("released", !c.openWhenPressed)

			sw.Activate(0)
			gates.Update(w)
			check("pressed", c.openWhenPressed)

			sw.Reset()
			gates.Update(w)
			check("reset", !c.openWhenPressed)

			body, _ := ecs.Get(w, gate, component.PhysicsBodyComponent.Kind())
			if !c.openWhenPressed && body != nil {
				t.Fatalf("bridge should have no body while released")
			}
			if c.openWhenPressed && (body == nil || body.Width != 20 || !body.Static) {
				t.Fatalf("door body should be restored from its template, got %+v", body)
			}
		})
	}
}

func TestGateEmitsChangeEvents(t *testing.T) {
	w := ecs.NewWorld()
	sw := NewSwitchBinding(w, newSwitchEntity(t, w, 1, 0, 0))
	addGate(t, w, 1, true)
	gates := NewGateSystem()

	gates.Update(w)
	if n := w.Events().Len(); n != 0 {
		t.Fatalf("closed door should not emit on first update, got %d events", n)
	}

	sw.Activate(0)
	gates.Update(w)
	gates.Update(w)
	events := w.Events().Drain()
	if len(events) != 1 || events[0].Type != ecs.EventGateChanged {
		t.Fatalf("expected a single gate change event, got %+v", events)
	}
	if evt := events[0].Data.(ecs.GateEvent); !evt.Open {
		t.Fatalf("expected gate open event, got %+v", evt)
	}
}
