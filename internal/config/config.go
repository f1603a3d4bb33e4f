// Package config provides YAML-based configuration loading, validation,
// environment overrides and live reloading for the flight runner.
package config

import (
	"time"

	"github.com/vovakirdan/tui-flight/internal/sim"
)

// FlightConfig contains all configuration for the flight runner.
type FlightConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Field   FieldConfig   `yaml:"field"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Loop    LoopConfig    `yaml:"loop"`
	Theme   string        `yaml:"theme"`
}

// PhysicsConfig defines the actor's jump and the simulation rate.
type PhysicsConfig struct {
	JumpHeight int `yaml:"jump_height"`
	TickMS     int `yaml:"tick_ms"`
}

// FieldConfig defines the playfield dimensions.
type FieldConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	ActorColumn int `yaml:"actor_column"`
}

// SpawnConfig defines the per-tick obstacle spawn probability.
type SpawnConfig struct {
	Numerator   int `yaml:"numerator"`
	Denominator int `yaml:"denominator"`
}

// LoopConfig defines session loop timing.
type LoopConfig struct {
	PollMS int `yaml:"poll_ms"`
}

// TickInterval returns the minimum interval between simulation ticks.
func (c FlightConfig) TickInterval() time.Duration {
	return time.Duration(c.Physics.TickMS) * time.Millisecond
}

// PollTimeout returns the bound on each input poll.
func (c FlightConfig) PollTimeout() time.Duration {
	return time.Duration(c.Loop.PollMS) * time.Millisecond
}

// Params converts the config into simulation parameters drawn with glyphs.
func (c FlightConfig) Params(glyphs sim.Glyphs) sim.Params {
	return sim.Params{
		Width:        c.Field.Width,
		Height:       c.Field.Height,
		JumpHeight:   c.Physics.JumpHeight,
		ActorColumn:  c.Field.ActorColumn,
		TickInterval: c.TickInterval(),
		SpawnChance:  sim.Chance{Num: c.Spawn.Numerator, Den: c.Spawn.Denominator},
		Glyphs:       glyphs,
	}
}
