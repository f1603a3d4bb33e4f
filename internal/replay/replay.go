// Package replay re-simulates journaled runs.
//
// A run is fully determined by its seed, its field parameters and the
// admitted tick each effective jump preceded. Replay drives a session with
// a synthetic clock on which every step is an admitted tick, so wall-clock
// jitter in the original run does not matter.
package replay

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-flight/internal/core"
	"github.com/vovakirdan/tui-flight/internal/session"
	"github.com/vovakirdan/tui-flight/internal/sim"
	"github.com/vovakirdan/tui-flight/internal/storage"
)

// epoch is the synthetic clock's start. Any fixed instant works.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Report is the outcome of a headless simulation.
type Report struct {
	Phase session.Phase
	Score int
	Ticks int
	Jumps []int        // Jumps that took effect
	Frame *core.Screen // Last composed frame, or the start state if no tick ran

	// Set by Run only.
	Match      bool
	Mismatches []string
}

// Simulate runs p headlessly with dice seeded by seed for at most maxTicks
// admitted ticks, requesting a jump before each tick listed in jumps. It
// stops early on collision. A run still going at maxTicks is Terminated.
func Simulate(p sim.Params, seed int64, maxTicks int, jumps []int) Report {
	clock := &syntheticClock{now: epoch, step: p.TickInterval}
	s := session.New(p, sim.NewRandDice(seed), session.WithClock(clock.Now))

	want := make(map[int]bool, len(jumps))
	for _, t := range jumps {
		want[t] = true
	}

	for tick := 1; tick <= maxTicks; tick++ {
		clock.Advance()
		action := core.ActionNone
		if want[tick] {
			action = core.ActionJump
		}
		if s.Step(action) != session.PhaseRunning {
			break
		}
	}

	res := s.Result()
	frame := s.Frame()
	if frame == nil {
		frame = sim.Compose(s.State(), p)
	}
	phase := res.Phase
	if phase == session.PhaseRunning {
		phase = session.PhaseTerminated
	}
	return Report{
		Phase: phase,
		Score: res.Score,
		Ticks: res.Ticks,
		Jumps: res.Jumps,
		Frame: frame,
	}
}

// Params rebuilds the simulation parameters a record was played with.
// The tick interval does not affect the outcome and is left at the default.
func Params(rec storage.RunRecord, glyphs sim.Glyphs) sim.Params {
	return sim.Params{
		Width:        rec.Width,
		Height:       rec.Height,
		JumpHeight:   rec.JumpHeight,
		ActorColumn:  rec.ActorColumn,
		TickInterval: sim.DefaultTickInterval,
		SpawnChance:  sim.Chance{Num: rec.SpawnNum, Den: rec.SpawnDen},
		Glyphs:       glyphs,
	}
}

// Run replays rec and compares the outcome with what was journaled.
// Glyphs only change what the final frame looks like; a different
// obstacle set size changes the dice sequence, so pass the record's theme.
func Run(rec storage.RunRecord, glyphs sim.Glyphs) (Report, error) {
	p := Params(rec, glyphs)
	if p.Width < p.ActorColumn+2 || p.Height < 3 || p.SpawnChance.Den <= 0 {
		return Report{}, fmt.Errorf("replay: run %d has an unplayable field %dx%d", rec.ID, rec.Width, rec.Height)
	}
	want, err := session.ParsePhase(rec.Outcome)
	if err != nil {
		return Report{}, fmt.Errorf("replay: run %d: %w", rec.ID, err)
	}

	rep := Simulate(p, rec.Seed, rec.Ticks, rec.Jumps)

	if rep.Phase != want {
		rep.Mismatches = append(rep.Mismatches, fmt.Sprintf("outcome %s, journaled %s", rep.Phase, want))
	}
	if rep.Ticks != rec.Ticks {
		rep.Mismatches = append(rep.Mismatches, fmt.Sprintf("ticks %d, journaled %d", rep.Ticks, rec.Ticks))
	}
	if rep.Score != rec.Score {
		rep.Mismatches = append(rep.Mismatches, fmt.Sprintf("score %d, journaled %d", rep.Score, rec.Score))
	}
	if !sameTicks(rep.Jumps, rec.Jumps) {
		rep.Mismatches = append(rep.Mismatches, fmt.Sprintf("jumps %v, journaled %v", rep.Jumps, rec.Jumps))
	}
	rep.Match = len(rep.Mismatches) == 0
	return rep, nil
}

// Record builds a journal entry for a finished session.
func Record(res session.Result, p sim.Params, seed int64, theme, player string) storage.RunRecord {
	return storage.RunRecord{
		Player:      player,
		Seed:        seed,
		Theme:       theme,
		Width:       p.Width,
		Height:      p.Height,
		JumpHeight:  p.JumpHeight,
		ActorColumn: p.ActorColumn,
		SpawnNum:    p.SpawnChance.Num,
		SpawnDen:    p.SpawnChance.Den,
		Ticks:       res.Ticks,
		Score:       res.Score,
		Outcome:     res.Phase.String(),
		Jumps:       res.Jumps,
	}
}

func sameTicks(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// syntheticClock moves forward one tick interval per Advance.
type syntheticClock struct {
	now  time.Time
	step time.Duration
}

func (c *syntheticClock) Now() time.Time {
	return c.now
}

func (c *syntheticClock) Advance() {
	c.now = c.now.Add(c.step)
}
