// Package config layers TIMELOOP_* environment overrides over the cycle
// settings a level file provides.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/milk9111/timeloop/loop"
)

const Prefix = "TIMELOOP_"

// Overrides holds the cycle settings that may come from the environment.
// Nil fields leave the level value in place.
type Overrides struct {
	CycleTime      *float64 `env:"CYCLE_TIME"`
	FreezeDuration *float64 `env:"FREEZE_DURATION"`
	PreStartDelay  *float64 `env:"PRE_START_DELAY"`
	RecordInterval *float64 `env:"RECORD_INTERVAL"`
	MaxGhosts      *int     `env:"MAX_GHOSTS"`
	PruneTasks     *bool    `env:"PRUNE_TASKS"`
}

// ParseEnv loads prefixed configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: Prefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Apply returns base with every set override copied in.
func (o Overrides) Apply(base loop.Config) loop.Config {
	cfg := base
	if o.CycleTime != nil {
		cfg.CycleTime = *o.CycleTime
	}
	if o.FreezeDuration != nil {
		cfg.FreezeDuration = *o.FreezeDuration
	}
	if o.PreStartDelay != nil {
		cfg.PreStartDelay = *o.PreStartDelay
	}
	if o.RecordInterval != nil {
		cfg.RecordInterval = *o.RecordInterval
	}
	if o.MaxGhosts != nil {
		cfg.MaxGhosts = *o.MaxGhosts
	}
	if o.PruneTasks != nil {
		cfg.PruneTasks = *o.PruneTasks
	}
	return cfg
}

// Cycle applies the environment to base and validates the result.
func Cycle(base loop.Config) (loop.Config, error) {
	var o Overrides
	if err := ParseEnv(&o); err != nil {
		return loop.Config{}, err
	}
	cfg := o.Apply(base)
	if err := cfg.Validate(); err != nil {
		return loop.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
