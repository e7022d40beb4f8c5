// Package script drives the live player from a tengo program so rounds can be
// replayed without a keyboard.
//
// A script defines
//
//	update := func(engine, memory) { ... }
//
// which runs once per tick. engine exposes the player's state and the
// move/jump/interact commands; memory is a map that survives across ticks
// and rounds.
package script

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/timeloop/prefabs"
)

const dispatchScript = `
update(__engine, __memory)
`

// State is what a script can observe each tick.
type State struct {
	Round        int
	Time         float64
	X            float64
	Y            float64
	Grounded     bool
	Controllable bool
}

// Command is what a script asked for during one tick.
type Command struct {
	MoveX    float64
	Jump     bool
	Interact bool
}

type Autopilot struct {
	name     string
	compiled *tengo.Compiled
	memory   *tengo.Map
}

// Load compiles a script from prefabs/scripts.
func Load(name string) (*Autopilot, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return Compile(name, src)
}

func Compile(name string, src []byte) (*Autopilot, error) {
	full := string(src) + "\n" + dispatchScript
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__memory", map[string]any{})

	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	return &Autopilot{
		name:     name,
		compiled: compiled,
		memory:   &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (a *Autopilot) Name() string { return a.name }

// Reset forgets everything the script stored in memory.
func (a *Autopilot) Reset() {
	a.memory = &tengo.Map{Value: map[string]tengo.Object{}}
}

// Memory returns a plain copy of the script's memory map.
func (a *Autopilot) Memory() map[string]any {
	out := make(map[string]any, len(a.memory.Value))
	for k, v := range a.memory.Value {
		out[k] = objectToAny(v)
	}
	return out
}

// Step runs update once against st.
func (a *Autopilot) Step(st State) (Command, error) {
	var cmd Command
	if a == nil || a.compiled == nil {
		return cmd, fmt.Errorf("script: nil autopilot")
	}
	if err := a.compiled.Set("__engine", a.buildEngine(st, &cmd)); err != nil {
		return Command{}, err
	}
	if err := a.compiled.Set("__memory", a.memory); err != nil {
		return Command{}, err
	}
	if err := a.compiled.Run(); err != nil {
		return Command{}, fmt.Errorf("script: run %s: %w", a.name, err)
	}
	return cmd, nil
}

func (a *Autopilot) buildEngine(st State, cmd *Command) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["time"] = &tengo.UserFunction{Name: "time", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: st.Time}, nil
	}}
	values["round"] = &tengo.UserFunction{Name: "round", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(st.Round)}, nil
	}}
	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: st.X}, &tengo.Float{Value: st.Y}}}, nil
	}}
	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(st.Grounded), nil
	}}
	values["controllable"] = &tengo.UserFunction{Name: "controllable", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(st.Controllable), nil
	}}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		dir, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "dir", Expected: "float", Found: args[0].TypeName()}
		}
		cmd.MoveX = clampAxis(dir)
		return tengo.TrueValue, nil
	}}
	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		cmd.Jump = true
		return tengo.TrueValue, nil
	}}
	values["interact"] = &tengo.UserFunction{Name: "interact", Value: func(args ...tengo.Object) (tengo.Object, error) {
		cmd.Interact = true
		return tengo.TrueValue, nil
	}}
	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		log.Printf("script: %s: %s", a.name, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func clampAxis(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
