package loop

import (
	"errors"
	"fmt"

	"github.com/milk9111/timeloop/common"
)

var ErrInvalidConfig = errors.New("loop: invalid config")

// Config holds the cycle settings of a session. Durations are in seconds.
type Config struct {
	CycleTime      float64     `yaml:"cycle_time"`
	FreezeDuration float64     `yaml:"freeze_duration"`
	PreStartDelay  float64     `yaml:"pre_start_delay"`
	RecordInterval float64     `yaml:"record_interval"`
	MaxGhosts      int         `yaml:"max_ghosts"`
	Spawn          common.Vec2 `yaml:"spawn"`
	// PruneTasks drops stale stolen tasks at each round transition. Off by
	// default: tasks of evicted rounds stay in the registry, inert.
	PruneTasks bool `yaml:"prune_tasks"`
}

func DefaultConfig() Config {
	return Config{
		CycleTime:      10,
		FreezeDuration: 2,
		PreStartDelay:  1,
		RecordInterval: 0.02,
		MaxGhosts:      5,
	}
}

func (c Config) Validate() error {
	switch {
	case c.CycleTime <= 0:
		return fmt.Errorf("%w: cycle_time must be positive, got %g", ErrInvalidConfig, c.CycleTime)
	case c.FreezeDuration < 0:
		return fmt.Errorf("%w: freeze_duration must not be negative, got %g", ErrInvalidConfig, c.FreezeDuration)
	case c.PreStartDelay < 0:
		return fmt.Errorf("%w: pre_start_delay must not be negative, got %g", ErrInvalidConfig, c.PreStartDelay)
	case c.RecordInterval < 0:
		return fmt.Errorf("%w: record_interval must not be negative, got %g", ErrInvalidConfig, c.RecordInterval)
	case c.MaxGhosts < 1:
		return fmt.Errorf("%w: max_ghosts must be at least 1, got %d", ErrInvalidConfig, c.MaxGhosts)
	}
	return nil
}
