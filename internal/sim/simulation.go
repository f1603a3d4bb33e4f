package sim

import (
	"time"

	"github.com/vovakirdan/tui-flight/internal/core"
)

// State is a snapshot of everything the compositor and collision detector read.
type State struct {
	Actor        Actor
	Obstacles    []Obstacle // Spawn order, decreasing X
	Score        int        // Admitted ticks survived
	GroundOffset int        // Ground scroll, in [0, Width)
	LastTick     time.Time
}

// Simulation owns the mutable state of one run.
// It is not safe for concurrent use; a single session loop drives it.
type Simulation struct {
	params       Params
	actor        Actor
	obstacles    *ObstacleManager
	ticker       *Ticker
	score        int
	groundOffset int
}

// New creates a simulation whose first tick is due one interval after start.
func New(p Params, dice Dice, start time.Time) *Simulation {
	return &Simulation{
		params:    p,
		obstacles: NewObstacleManager(p.SpawnColumn(), p.SpawnChance, p.Glyphs.Obstacles, dice),
		ticker:    NewTicker(p.TickInterval, start),
	}
}

// Params returns the parameters the simulation was created with.
func (s *Simulation) Params() Params {
	return s.params
}

// RequestJump forwards a jump request to the actor.
// Returns true if the jump took effect.
func (s *Simulation) RequestJump() bool {
	return s.actor.RequestJump()
}

// Update advances one tick if the ticker admits one at now.
// Returns true if a tick was admitted.
func (s *Simulation) Update(now time.Time) bool {
	if !s.ticker.ShouldAdvance(now) {
		return false
	}
	s.Tick()
	return true
}

// Tick performs one admitted tick unconditionally.
func (s *Simulation) Tick() {
	s.actor.Advance(s.params.JumpHeight)
	s.groundOffset = core.Wrap(s.groundOffset-1, s.params.Width)
	s.obstacles.Update()
	s.score++
}

// Score returns the number of admitted ticks so far.
func (s *Simulation) Score() int {
	return s.score
}

// State returns a snapshot of the current state.
func (s *Simulation) State() State {
	return State{
		Actor:        s.actor,
		Obstacles:    s.obstacles.Obstacles(),
		Score:        s.score,
		GroundOffset: s.groundOffset,
		LastTick:     s.ticker.Last(),
	}
}

// Compose renders the current state into a fresh frame.
func (s *Simulation) Compose() *core.Screen {
	return Compose(s.State(), s.params)
}

// Collided reports whether the current state is a collision.
func (s *Simulation) Collided() bool {
	return IsCollision(s.State(), s.params.ActorColumn)
}
