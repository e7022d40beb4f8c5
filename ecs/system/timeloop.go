package system

import (
	"image/color"

	"github.com/milk9111/timeloop/ecs"
	"github.com/milk9111/timeloop/ecs/component"
	"github.com/milk9111/timeloop/loop"
)

// GhostLayer draws ghosts under the live player.
const GhostLayer = 5

// TimeLoopSystem advances the session by one fixed step, republishes its
// events on the world queue and mirrors every ghost slot into an entity.
type TimeLoopSystem struct {
	session *loop.Session
	dt      float64

	ghostWidth  float64
	ghostHeight float64
	ghostColor  color.Color
	ghosts      []ecs.Entity
}

func NewTimeLoopSystem(session *loop.Session, dt, ghostWidth, ghostHeight float64, ghostColor color.Color) *TimeLoopSystem {
	if ghostColor == nil {
		ghostColor = color.NRGBA{R: 86, G: 204, B: 242, A: 153}
	}
	return &TimeLoopSystem{
		session:     session,
		dt:          dt,
		ghostWidth:  ghostWidth,
		ghostHeight: ghostHeight,
		ghostColor:  ghostColor,
	}
}

func (s *TimeLoopSystem) Session() *loop.Session { return s.session }

// Ghosts returns the ghost entities by slot.
func (s *TimeLoopSystem) Ghosts() []ecs.Entity {
	return append([]ecs.Entity(nil), s.ghosts...)
}

func (s *TimeLoopSystem) Update(w *ecs.World) {
	if s == nil || s.session == nil || w == nil {
		return
	}

	s.session.Tick(s.dt)

	for _, evt := range s.session.Events().Drain() {
		w.Events().Push(ecs.Event{Type: string(evt.Kind), Data: evt})
	}

	s.syncGhosts(w)
}

func (s *TimeLoopSystem) syncGhosts(w *ecs.World) {
	states := s.session.Ghosts()

	for len(s.ghosts) > len(states) {
		last := s.ghosts[len(s.ghosts)-1]
		ecs.DestroyEntity(w, last)
		s.ghosts = s.ghosts[:len(s.ghosts)-1]
	}
	for len(s.ghosts) < len(states) {
		s.ghosts = append(s.ghosts, s.spawnGhost(w))
	}

	for i, st := range states {
		e := s.ghosts[i]
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.X, t.Y = st.Position.X, st.Position.Y
		}
		if g, ok := ecs.Get(w, e, component.GhostComponent.Kind()); ok {
			g.Slot, g.Timeline = st.Slot, st.Timeline
		}
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.Hidden = !st.Visible
		}
	}
}

func (s *TimeLoopSystem) spawnGhost(w *ecs.World) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{})
	_ = ecs.Add(w, e, component.GhostComponent.Kind(), &component.Ghost{})
	_ = ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:  s.ghostWidth,
		Height: s.ghostHeight,
		Color:  s.ghostColor,
		Hidden: true,
	})
	_ = ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: GhostLayer})
	return e
}
