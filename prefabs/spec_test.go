package prefabs

import (
	"errors"
	"image/color"
	"testing"

	"github.com/milk9111/timeloop/loop"
)

func TestParseLevelSpecDefaults(t *testing.T) {
	spec, err := ParseLevelSpec([]byte(`
name: tiny
cycle:
  cycle_time: 4
switches:
  - { id: 7, x: 10, y: 20, width: 8, height: 4 }
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if spec.Cycle.CycleTime != 4 {
		t.Fatalf("expected cycle time 4, got %g", spec.Cycle.CycleTime)
	}
	def := loop.DefaultConfig()
	if spec.Cycle.MaxGhosts != def.MaxGhosts || spec.Cycle.RecordInterval != def.RecordInterval {
		t.Fatalf("expected omitted cycle fields to keep defaults, got %+v", spec.Cycle)
	}
	if spec.Player.Width != 24 || spec.Gravity != 1400 {
		t.Fatalf("expected default player and gravity, got %+v gravity=%g", spec.Player, spec.Gravity)
	}
	if len(spec.Switches) != 1 || spec.Switches[0].ID != 7 || spec.Switches[0].X != 10 {
		t.Fatalf("expected inline switch rect, got %+v", spec.Switches)
	}
}

func TestParseLevelSpecErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"bad_cycle", "cycle: { cycle_time: -1 }", loop.ErrInvalidConfig},
		{"bad_ghosts", "cycle: { max_ghosts: 0 }", loop.ErrInvalidConfig},
		{"duplicate_switch", "switches: [{id: 1}, {id: 1}]", ErrInvalidLevel},
		{"unknown_gate_switch", "switches: [{id: 1}]\ngates: [{switch: 2}]", ErrInvalidLevel},
		{"player_size", "player: { width: 0 }", ErrInvalidLevel},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseLevelSpec([]byte(c.src))
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}

	if _, err := ParseLevelSpec([]byte("cycle: [")); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestYAMLColor(t *testing.T) {
	spec, err := ParseLevelSpec([]byte(`
player: { width: 10, height: 10, color: "#102030" }
ghost: { color: "56ccf299" }
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if got := spec.Player.Color.Or(nil); got != (color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}) {
		t.Fatalf("unexpected player color %v", got)
	}
	if got := spec.Ghost.Color.Or(nil); got != (color.NRGBA{R: 0x56, G: 0xcc, B: 0xf2, A: 0x99}) {
		t.Fatalf("unexpected ghost color %v", got)
	}

	var unset *YAMLColor
	if got := unset.Or(color.White); got != color.White {
		t.Fatalf("expected fallback for unset color, got %v", got)
	}

	if _, err := ParseLevelSpec([]byte(`player: { width: 1, height: 1, color: "#12" }`)); err == nil {
		t.Fatalf("expected invalid color error")
	}
}

func TestLoadEmbeddedLevel(t *testing.T) {
	spec, err := LoadLevelSpec("level1.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name == "" || len(spec.Switches) == 0 || len(spec.Gates) == 0 {
		t.Fatalf("expected a populated level, got %+v", spec)
	}

	if _, err := LoadLevelSpec("missing.yaml"); err == nil {
		t.Fatalf("expected error for missing level")
	}
}

func TestCleanScriptPath(t *testing.T) {
	cases := map[string]string{
		"demo.tengo":                 "scripts/demo.tengo",
		"scripts/demo.tengo":         "scripts/demo.tengo",
		"prefabs/scripts/demo.tengo": "scripts/demo.tengo",
	}
	for in, want := range cases {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
	}
}
