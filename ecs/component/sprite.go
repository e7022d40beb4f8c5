package component

import "image/color"

// Sprite is a flat rectangle; the game draws every entity as one.
type Sprite struct {
	Width  float64
	Height float64
	Color  color.Color
	Hidden bool
}

var SpriteComponent = NewComponent[Sprite]()
