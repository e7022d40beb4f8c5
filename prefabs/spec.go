package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/timeloop/common"
	"github.com/milk9111/timeloop/loop"
	"gopkg.in/yaml.v3"
)

var ErrInvalidLevel = errors.New("prefabs: invalid level")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LevelSpec describes one puzzle room and the loop settings it runs with.
type LevelSpec struct {
	Name      string       `yaml:"name"`
	Cycle     loop.Config  `yaml:"cycle"`
	Gravity   float64      `yaml:"gravity"`
	Bounds    BoundsSpec   `yaml:"bounds"`
	Player    PlayerSpec   `yaml:"player"`
	Ghost     GhostSpec    `yaml:"ghost"`
	Platforms []RectSpec   `yaml:"platforms"`
	Switches  []SwitchSpec `yaml:"switches"`
	Gates     []GateSpec   `yaml:"gates"`
}

type BoundsSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type RectSpec struct {
	X      float64    `yaml:"x"`
	Y      float64    `yaml:"y"`
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
}

type PlayerSpec struct {
	Width          float64    `yaml:"width"`
	Height         float64    `yaml:"height"`
	Mass           float64    `yaml:"mass"`
	Friction       float64    `yaml:"friction"`
	MoveSpeed      float64    `yaml:"move_speed"`
	JumpSpeed      float64    `yaml:"jump_speed"`
	InteractRadius float64    `yaml:"interact_radius"`
	Color          *YAMLColor `yaml:"color"`
}

type GhostSpec struct {
	Color *YAMLColor `yaml:"color"`
}

type SwitchSpec struct {
	ID       int `yaml:"id"`
	RectSpec `yaml:",inline"`
}

type GateSpec struct {
	Switch          int  `yaml:"switch"`
	OpenWhenPressed bool `yaml:"open_when_pressed"`
	RectSpec        `yaml:",inline"`
}

// DefaultLevelSpec holds the values a level file may omit.
func DefaultLevelSpec() LevelSpec {
	return LevelSpec{
		Cycle:   loop.DefaultConfig(),
		Gravity: 1400,
		Bounds:  BoundsSpec{Width: common.BaseWidth, Height: common.BaseHeight},
		Player: PlayerSpec{
			Width:          24,
			Height:         40,
			Mass:           1,
			MoveSpeed:      220,
			JumpSpeed:      560,
			InteractRadius: 48,
		},
	}
}

func LoadLevelSpec(name string) (*LevelSpec, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	spec, err := ParseLevelSpec(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return spec, nil
}

// ParseLevelSpec decodes a level over DefaultLevelSpec and validates it.
func ParseLevelSpec(data []byte) (*LevelSpec, error) {
	spec := DefaultLevelSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *LevelSpec) Validate() error {
	if err := s.Cycle.Validate(); err != nil {
		return err
	}
	if s.Player.Width <= 0 || s.Player.Height <= 0 {
		return fmt.Errorf("%w: player size must be positive", ErrInvalidLevel)
	}
	seen := make(map[int]bool, len(s.Switches))
	for _, sw := range s.Switches {
		if seen[sw.ID] {
			return fmt.Errorf("%w: duplicate switch id %d", ErrInvalidLevel, sw.ID)
		}
		seen[sw.ID] = true
	}
	for i, g := range s.Gates {
		if !seen[g.Switch] {
			return fmt.Errorf("%w: gate %d references unknown switch %d", ErrInvalidLevel, i, g.Switch)
		}
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

// Or returns the parsed color, or fallback when unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
