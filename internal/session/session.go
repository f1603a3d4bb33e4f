// Package session orchestrates one run of the flight runner:
// input, ticker-gated advance, composition, rendering and collision, in
// that fixed order every iteration. It is the only layer that talks to the
// input and output collaborators.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flight/internal/core"
	"github.com/vovakirdan/tui-flight/internal/sim"
)

// DefaultPollTimeout bounds each input poll.
const DefaultPollTimeout = 10 * time.Millisecond

// Failure kinds raised by collaborators. Both end the run immediately.
var (
	ErrInput  = errors.New("session: input failure")
	ErrOutput = errors.New("session: output failure")
)

// Phase is the session's state machine position.
type Phase int

const (
	PhaseRunning    Phase = iota
	PhaseGameOver         // Collision; terminal
	PhaseTerminated       // Quit requested; terminal
)

// String returns the phase name as stored in the run journal.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// ParsePhase converts a stored phase name back to a Phase.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "running":
		return PhaseRunning, nil
	case "game_over":
		return PhaseGameOver, nil
	case "terminated":
		return PhaseTerminated, nil
	}
	return PhaseRunning, fmt.Errorf("session: unknown phase %q", s)
}

// Input polls for at most one action, waiting no longer than timeout.
// It returns core.ActionNone when nothing arrived.
type Input interface {
	Poll(timeout time.Duration) (core.Action, error)
}

// Output displays frames and the final message.
// Render must clear what it drew before, so each frame is a full redraw.
type Output interface {
	Render(frame *core.Screen, score int) error
	RenderGameOver(score int) error
}

// Result summarises a finished run.
type Result struct {
	Phase Phase
	Score int
	Ticks int
	// Jumps holds, for each jump that took effect, the number of the
	// admitted tick it preceded (1-based). With the seed this is enough
	// to replay the run.
	Jumps []int
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now, for deterministic tests and replay.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithPollTimeout sets the input poll bound.
func WithPollTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.pollTimeout = d
		}
	}
}

// WithLogger attaches a logger for debug tracing.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// Session owns a simulation and its state machine.
// It is driven from a single goroutine.
type Session struct {
	sim         *sim.Simulation
	phase       Phase
	now         func() time.Time
	pollTimeout time.Duration
	logger      *log.Logger
	ticks       int
	jumps       []int
	frame       *core.Screen
}

// New creates a running session for a fresh simulation of p.
func New(p sim.Params, dice sim.Dice, opts ...Option) *Session {
	s := &Session{
		now:         time.Now,
		pollTimeout: DefaultPollTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sim = sim.New(p, dice, s.now())
	return s
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.sim.Score()
}

// Frame returns the most recently composed frame, or nil before the first step.
func (s *Session) Frame() *core.Screen {
	return s.frame
}

// State returns a snapshot of the simulation state.
func (s *Session) State() sim.State {
	return s.sim.State()
}

// Params returns the simulation parameters.
func (s *Session) Params() sim.Params {
	return s.sim.Params()
}

// JumpCount returns how many jumps have taken effect.
func (s *Session) JumpCount() int {
	return len(s.jumps)
}

// Result returns the run summary so far. A jump accepted after the last
// admitted tick never took effect and is left out.
func (s *Session) Result() Result {
	jumps := make([]int, 0, len(s.jumps))
	for _, t := range s.jumps {
		if t <= s.ticks {
			jumps = append(jumps, t)
		}
	}
	return Result{
		Phase: s.phase,
		Score: s.sim.Score(),
		Ticks: s.ticks,
		Jumps: jumps,
	}
}

// Apply applies one input action. Quit ends the session at once.
// Returns false if the session is no longer running.
func (s *Session) Apply(a core.Action) bool {
	if s.phase != PhaseRunning {
		return false
	}
	switch a {
	case core.ActionQuit:
		s.phase = PhaseTerminated
		s.debug("quit requested", "ticks", s.ticks)
		return false
	case core.ActionJump:
		if s.sim.RequestJump() {
			s.jumps = append(s.jumps, s.ticks+1)
			s.debug("jump", "before_tick", s.ticks+1)
		}
	}
	return true
}

// Advance runs the ticker-gated update and composes a fresh frame.
func (s *Session) Advance() *core.Screen {
	if s.sim.Update(s.now()) {
		s.ticks++
	}
	s.frame = s.sim.Compose()
	return s.frame
}

// Resolve checks for a collision and moves to GameOver if one occurred.
func (s *Session) Resolve() Phase {
	if s.phase == PhaseRunning && s.sim.Collided() {
		s.phase = PhaseGameOver
		s.debug("collision", "ticks", s.ticks, "score", s.sim.Score())
	}
	return s.phase
}

// Step is Apply, Advance and Resolve in order, for event-driven front ends
// that render after the fact. It returns the resulting phase.
func (s *Session) Step(a core.Action) Phase {
	if !s.Apply(a) {
		return s.phase
	}
	s.Advance()
	return s.Resolve()
}

// Run drives the polled loop until game over, quit, context cancellation
// or a collaborator failure. Cancellation counts as a quit.
func (s *Session) Run(ctx context.Context, in Input, out Output) (Result, error) {
	for s.phase == PhaseRunning {
		if err := ctx.Err(); err != nil {
			s.phase = PhaseTerminated
			break
		}

		action, err := in.Poll(s.pollTimeout)
		if err != nil {
			return s.Result(), fmt.Errorf("%w: %w", ErrInput, err)
		}
		if !s.Apply(action) {
			break
		}

		frame := s.Advance()
		if err := out.Render(frame, s.sim.Score()); err != nil {
			return s.Result(), fmt.Errorf("%w: %w", ErrOutput, err)
		}

		if s.Resolve() == PhaseGameOver {
			if err := out.RenderGameOver(s.sim.Score()); err != nil {
				return s.Result(), fmt.Errorf("%w: %w", ErrOutput, err)
			}
		}
	}
	return s.Result(), nil
}

func (s *Session) debug(msg string, kv ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, kv...)
	}
}
