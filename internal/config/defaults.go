package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-flight/internal/sim"
)

//go:embed defaults/flight.yaml
var defaultFlightYAML []byte

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "classic"

// DefaultFlightConfig returns the built-in configuration.
func DefaultFlightConfig() FlightConfig {
	return FlightConfig{
		Physics: PhysicsConfig{
			JumpHeight: sim.DefaultJumpHeight,
			TickMS:     int(sim.DefaultTickInterval / time.Millisecond),
		},
		Field: FieldConfig{
			Width:       sim.DefaultWidth,
			Height:      sim.DefaultHeight,
			ActorColumn: sim.DefaultActorColumn,
		},
		Spawn: SpawnConfig{
			Numerator:   sim.DefaultSpawnChance.Num,
			Denominator: sim.DefaultSpawnChance.Den,
		},
		Loop: LoopConfig{
			PollMS: 10,
		},
		Theme: DefaultTheme,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlightYAML
}
