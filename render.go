package main

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/timeloop/ecs"
	"github.com/milk9111/timeloop/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	backgroundColor    = color.RGBA{R: 0x1b, G: 0x1d, B: 0x24, A: 0xff}
	pressedSwitchColor = colornames.Mediumseagreen
	ghostOutlineColor  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x60}
)

type drawable struct {
	layer  int
	entity ecs.Entity
}

// drawWorld fills every visible sprite rectangle in layer order.
func drawWorld(screen *ebiten.Image, w *ecs.World) {
	screen.Fill(backgroundColor)

	var items []drawable
	ecs.ForEach2(w, component.SpriteComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sprite *component.Sprite, _ *component.Transform) {
		if sprite.Hidden {
			return
		}
		layer := 0
		if rl, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layer = rl.Index
		}
		items = append(items, drawable{layer: layer, entity: e})
	})
	sort.SliceStable(items, func(i, j int) bool { return items[i].layer < items[j].layer })

	for _, item := range items {
		e := item.entity
		sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())

		x, y := float32(t.X), float32(t.Y)
		wdt, hgt := float32(sprite.Width), float32(sprite.Height)
		clr := sprite.Color
		if clr == nil {
			clr = color.White
		}

		if sw, ok := ecs.Get(w, e, component.SwitchComponent.Kind()); ok && sw.Pressed {
			// pressed plates sink to half height
			y += hgt / 2
			hgt /= 2
			clr = pressedSwitchColor
		}

		vector.FillRect(screen, x, y, wdt, hgt, clr, false)
		if ecs.Has(w, e, component.GhostComponent.Kind()) {
			vector.StrokeRect(screen, x, y, wdt, hgt, 1.0, ghostOutlineColor, false)
		}
		if g, ok := ecs.Get(w, e, component.GateComponent.Kind()); ok && !g.Open {
			vector.StrokeRect(screen, x, y, wdt, hgt, 1.0, colornames.Darkgray, false)
		}
	}
}
