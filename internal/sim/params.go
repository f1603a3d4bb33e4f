// Package sim implements the flight runner simulation: a vertically bobbing
// actor, a scrolling set of obstacles, collision detection and frame
// composition. Everything here is deterministic given a Dice and the
// timestamps passed in; nothing blocks or touches the terminal.
package sim

import (
	"time"

	"github.com/vovakirdan/tui-flight/internal/core"
)

// Defaults matching the classic game.
const (
	DefaultWidth        = 80
	DefaultHeight       = 10
	DefaultJumpHeight   = 5
	DefaultActorColumn  = 2
	DefaultTickInterval = 50 * time.Millisecond
)

// Cell colors by role.
const (
	ActorColor    = core.ColorBrightYellow
	GroundColor   = core.ColorGray
	ObstacleColor = core.ColorOrange
)

// Chance is a Bernoulli probability expressed as Num/Den.
type Chance struct {
	Num int
	Den int
}

// DefaultSpawnChance is the per-tick obstacle spawn probability.
var DefaultSpawnChance = Chance{Num: 1, Den: 20}

// Glyphs is the symbol set the compositor draws with.
type Glyphs struct {
	Actor     rune
	Ground    []rune // Repeating ground pattern, at least one rune
	Obstacles []rune // Obstacle symbols chosen uniformly on spawn
}

// ClassicGlyphs returns the original plane, ground and building symbols.
func ClassicGlyphs() Glyphs {
	return Glyphs{
		Actor:     '🛩',
		Ground:    []rune{'▁'},
		Obstacles: []rune{'🏠', '🏢', '🏫', '🏛', '🏰'},
	}
}

// Params holds the simulation's fixed dimensions and rates.
type Params struct {
	Width        int
	Height       int
	JumpHeight   int
	ActorColumn  int
	TickInterval time.Duration
	SpawnChance  Chance
	Glyphs       Glyphs
}

// DefaultParams returns the classic 80x10 field.
func DefaultParams() Params {
	return Params{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		JumpHeight:   DefaultJumpHeight,
		ActorColumn:  DefaultActorColumn,
		TickInterval: DefaultTickInterval,
		SpawnChance:  DefaultSpawnChance,
		Glyphs:       ClassicGlyphs(),
	}
}

// SpawnColumn is the rightmost column, where obstacles enter.
func (p Params) SpawnColumn() int {
	return p.Width - 1
}

// GroundRow is the bottom row of the frame.
func (p Params) GroundRow() int {
	return p.Height - 1
}

// LaneRow is the row obstacles occupy and the actor's row when grounded.
func (p Params) LaneRow() int {
	return p.Height - 2
}
