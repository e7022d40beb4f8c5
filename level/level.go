// Package level wires a level spec into a running world: entities, the
// time-loop session bound to them, and the system order shared by the game
// and the headless simulator.
package level

import (
	"fmt"
	"log"

	"github.com/milk9111/timeloop/common"
	"github.com/milk9111/timeloop/ecs"
	"github.com/milk9111/timeloop/ecs/entity"
	"github.com/milk9111/timeloop/ecs/system"
	"github.com/milk9111/timeloop/loop"
	"github.com/milk9111/timeloop/prefabs"
)

// Level is one running puzzle room.
type Level struct {
	Spec      *prefabs.LevelSpec
	World     *ecs.World
	Session   *loop.Session
	Scheduler *ecs.Scheduler
	Entities  *entity.Level
	TimeLoop  *system.TimeLoopSystem
}

// InputFactory builds the system that fills the player's Input. It receives
// the session so scripted input can observe round time.
type InputFactory func(session *loop.Session) ecs.System

// Build spawns spec into a fresh world and starts round 0. dt is the fixed
// step every system advances by. cfg overrides spec.Cycle.
func Build(spec *prefabs.LevelSpec, cfg loop.Config, dt float64, input InputFactory) (*Level, error) {
	if dt <= 0 {
		dt = 1.0 / common.TPS
	}

	w := ecs.NewWorld()
	ents, err := entity.BuildLevel(w, spec)
	if err != nil {
		return nil, err
	}

	switches := loop.NewSwitchRegistry()
	system.BindSwitches(w, switches)

	session, err := loop.NewSession(cfg, system.NewLiveBody(w, ents.Player), switches)
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", spec.Name, err)
	}

	timeLoop := system.NewTimeLoopSystem(session, dt, spec.Player.Width, spec.Player.Height, spec.Ghost.Color.Or(nil))

	scheduler := ecs.NewScheduler()
	if input != nil {
		scheduler.Add(input(session))
	}
	scheduler.Add(system.NewPlayerControllerSystem())
	scheduler.Add(system.NewInteractSystem(session))
	scheduler.Add(system.NewPhysicsSystem(spec.Gravity, dt))
	scheduler.Add(timeLoop)
	scheduler.Add(system.NewGateSystem())

	log.Printf("level: loaded %q switches=%d gates=%d cycle=%gs", spec.Name, switches.Len(), len(ents.Gates), cfg.CycleTime)

	return &Level{
		Spec:      spec,
		World:     w,
		Session:   session,
		Scheduler: scheduler,
		Entities:  ents,
		TimeLoop:  timeLoop,
	}, nil
}

// Update runs one fixed step.
func (l *Level) Update() {
	l.Scheduler.Update(l.World)
}

// Restart resets the session to round 0. Geometry stays as built.
func (l *Level) Restart() {
	l.Session.Reset()
	log.Printf("level: %s restarted", l.Spec.Name)
}
