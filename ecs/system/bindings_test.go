package system

import (
	"testing"

	"github.com/milk9111/timeloop/common"
	"github.com/milk9111/timeloop/ecs"
	"github.com/milk9111/timeloop/ecs/component"
	"github.com/milk9111/timeloop/loop"
)

func newSwitchEntity(t *testing.T, w *ecs.World, id int, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.SwitchComponent.Kind(), &component.Switch{ID: id, Round: -1, Width: 10, Height: 10}); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestSwitchBinding(t *testing.T) {
	w := ecs.NewWorld()
	e := newSwitchEntity(t, w, 3, 0, 0)
	b := NewSwitchBinding(w, e)

	if b.Pressed() {
		t.Fatalf("new switch should not be pressed")
	}

	b.Activate(2)
	b.Activate(5)
	sw, _ := ecs.Get(w, e, component.SwitchComponent.Kind())
	if !b.Pressed() || sw.Round != 2 {
		t.Fatalf("expected pressed by round 2, got pressed=%v round=%d", b.Pressed(), sw.Round)
	}

	b.Reset()
	if b.Pressed() || sw.Round != -1 {
		t.Fatalf("expected released switch after reset, got %+v", sw)
	}

	ecs.DestroyEntity(w, e)
	b.Activate(1)
	if b.Pressed() {
		t.Fatalf("destroyed switch must not report pressed")
	}
}

func TestBindSwitches(t *testing.T) {
	w := ecs.NewWorld()
	newSwitchEntity(t, w, 1, 0, 0)
	newSwitchEntity(t, w, 2, 50, 0)

	reg := loop.NewSwitchRegistry()
	if n := BindSwitches(w, reg); n != 2 {
		t.Fatalf("expected 2 bound switches, got %d", n)
	}
	ids := reg.IDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("unexpected registry ids %v", ids)
	}
	sw, ok := reg.Lookup(2)
	if !ok {
		t.Fatalf("switch 2 not registered")
	}
	if _, ok := sw.(loop.PressState); !ok {
		t.Fatalf("binding should expose press state")
	}
}

func TestLiveBody(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 1, Y: 2}); err != nil {
		t.Fatal(err)
	}
	body := NewLiveBody(w, e)

	if got := body.Position(); got != (common.Vec2{X: 1, Y: 2}) {
		t.Fatalf("unexpected position %+v", got)
	}

	body.SetPosition(common.Vec2{X: 7, Y: 9})
	if got := body.Position(); got != (common.Vec2{X: 7, Y: 9}) {
		t.Fatalf("expected teleported position, got %+v", got)
	}

	body.SetControllable(false)
	c, ok := ecs.Get(w, e, component.ControllableComponent.Kind())
	if !ok || c.Enabled {
		t.Fatalf("expected controllable component disabled, got %+v ok=%v", c, ok)
	}
	body.SetControllable(true)
	if !c.Enabled {
		t.Fatalf("expected controllable re-enabled")
	}
}
