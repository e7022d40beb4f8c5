package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/timeloop/ecs"
	"github.com/milk9111/timeloop/ecs/component"
	"github.com/milk9111/timeloop/prefabs"
)

// Render layers, low to high.
const (
	LayerPlatform = 0
	LayerGate     = 1
	LayerSwitch   = 2
	LayerPlayer   = 10
)

var (
	defaultPlatformColor = color.NRGBA{R: 79, G: 79, B: 79, A: 255}
	defaultSwitchColor   = color.NRGBA{R: 235, G: 87, B: 87, A: 255}
	defaultGateColor     = color.NRGBA{R: 130, G: 130, B: 130, A: 255}
	defaultPlayerColor   = color.NRGBA{R: 242, G: 201, B: 76, A: 255}
)

// Level lists the entities BuildLevel spawned.
type Level struct {
	Player    ecs.Entity
	Bounds    ecs.Entity
	Platforms []ecs.Entity
	Switches  map[int]ecs.Entity
	Gates     []ecs.Entity
}

// BuildLevel spawns the bounds, platforms, switches, gates and the player at
// the cycle spawn point.
func BuildLevel(w *ecs.World, spec *prefabs.LevelSpec) (*Level, error) {
	if spec == nil {
		return nil, fmt.Errorf("entity: nil level spec")
	}

	lvl := &Level{Switches: make(map[int]ecs.Entity, len(spec.Switches))}

	bounds, err := NewLevelBounds(w, spec.Bounds)
	if err != nil {
		return nil, err
	}
	lvl.Bounds = bounds

	for i, p := range spec.Platforms {
		e, err := NewPlatform(w, p)
		if err != nil {
			return nil, fmt.Errorf("entity: platform %d: %w", i, err)
		}
		lvl.Platforms = append(lvl.Platforms, e)
	}

	for _, s := range spec.Switches {
		e, err := NewSwitch(w, s)
		if err != nil {
			return nil, fmt.Errorf("entity: switch %d: %w", s.ID, err)
		}
		lvl.Switches[s.ID] = e
	}

	for i, g := range spec.Gates {
		e, err := NewGate(w, g)
		if err != nil {
			return nil, fmt.Errorf("entity: gate %d: %w", i, err)
		}
		lvl.Gates = append(lvl.Gates, e)
	}

	player, err := NewPlayerAt(w, spec.Player, spec.Cycle.Spawn.X, spec.Cycle.Spawn.Y)
	if err != nil {
		return nil, fmt.Errorf("entity: player: %w", err)
	}
	lvl.Player = player

	return lvl, nil
}

func NewLevelBounds(w *ecs.World, spec prefabs.BoundsSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: spec.Width, Height: spec.Height}); err != nil {
		return 0, err
	}
	return e, nil
}

func NewPlatform(w *ecs.World, spec prefabs.RectSpec) (ecs.Entity, error) {
	e, err := newStaticRect(w, spec, spec.Color.Or(defaultPlatformColor), LayerPlatform)
	if err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PlatformTagComponent.Kind(), &component.PlatformTag{}); err != nil {
		return 0, err
	}
	return e, nil
}

// NewSwitch spawns a switch plate. Switches have no body; ghosts and the
// player press them through the loop, not through contact.
func NewSwitch(w *ecs.World, spec prefabs.SwitchSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.SwitchComponent.Kind(), &component.Switch{
		ID:     spec.ID,
		Round:  -1,
		Width:  spec.Width,
		Height: spec.Height,
	}); err != nil {
		return 0, err
	}
	if err := addSprite(w, e, spec.Width, spec.Height, spec.Color.Or(defaultSwitchColor), LayerSwitch); err != nil {
		return 0, err
	}
	return e, nil
}

func NewGate(w *ecs.World, spec prefabs.GateSpec) (ecs.Entity, error) {
	e, err := newStaticRect(w, spec.RectSpec, spec.Color.Or(defaultGateColor), LayerGate)
	if err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.GateComponent.Kind(), &component.Gate{
		SwitchID:        spec.Switch,
		OpenWhenPressed: spec.OpenWhenPressed,
	}); err != nil {
		return 0, err
	}
	return e, nil
}

func NewPlayerAt(w *ecs.World, spec prefabs.PlayerSpec, x, y float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:      spec.MoveSpeed,
		JumpSpeed:      spec.JumpSpeed,
		InteractRadius: spec.InteractRadius,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.ControllableComponent.Kind(), &component.Controllable{Enabled: true}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Width,
		Height:   spec.Height,
		Mass:     spec.Mass,
		Friction: spec.Friction,
	}); err != nil {
		return 0, err
	}
	if err := addSprite(w, e, spec.Width, spec.Height, spec.Color.Or(defaultPlayerColor), LayerPlayer); err != nil {
		return 0, err
	}
	return e, nil
}

func newStaticRect(w *ecs.World, spec prefabs.RectSpec, c color.Color, layer int) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Width,
		Height:   spec.Height,
		Friction: 0.8,
		Static:   true,
	}); err != nil {
		return 0, err
	}
	if err := addSprite(w, e, spec.Width, spec.Height, c, layer); err != nil {
		return 0, err
	}
	return e, nil
}

func addSprite(w *ecs.World, e ecs.Entity, width, height float64, c color.Color, layer int) error {
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Width: width, Height: height, Color: c}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer})
}
