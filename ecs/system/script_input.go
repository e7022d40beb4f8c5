package system

import (
	"log"

	"github.com/milk9111/timeloop/ecs"
	"github.com/milk9111/timeloop/ecs/component"
	"github.com/milk9111/timeloop/script"
)

// RoundClock is the part of the session a script observes.
type RoundClock interface {
	Round() int
	RoundTime() float64
	Controllable() bool
}

// ScriptInputSystem fills the player's Input from a tengo autopilot. A
// script error stops the autopilot and leaves the input idle.
type ScriptInputSystem struct {
	pilot  *script.Autopilot
	clock  RoundClock
	failed bool
}

func NewScriptInputSystem(pilot *script.Autopilot, clock RoundClock) *ScriptInputSystem {
	return &ScriptInputSystem{pilot: pilot, clock: clock}
}

// SetPilot swaps the running script, e.g. after a hot reload.
func (s *ScriptInputSystem) SetPilot(pilot *script.Autopilot) {
	s.pilot = pilot
	s.failed = false
}

// Reset clears the script's memory and re-arms a failed autopilot; call it
// alongside Session.Reset.
func (s *ScriptInputSystem) Reset() {
	if s.pilot != nil {
		s.pilot.Reset()
	}
	s.failed = false
}

func (s *ScriptInputSystem) Update(w *ecs.World) {
	if s == nil || s.pilot == nil || s.clock == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, input *component.Input) {
		*input = component.Input{}
		if s.failed {
			return
		}

		st := script.State{
			Round:        s.clock.Round(),
			Time:         s.clock.RoundTime(),
			Controllable: s.clock.Controllable(),
			Grounded:     isGrounded(w, e),
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			st.X, st.Y = t.X, t.Y
		}

		cmd, err := s.pilot.Step(st)
		if err != nil {
			log.Printf("script input: %v", err)
			s.failed = true
			return
		}
		input.MoveX = cmd.MoveX
		input.Jump = cmd.Jump
		input.JumpPressed = cmd.Jump
		input.Interact = cmd.Interact
	})
}
