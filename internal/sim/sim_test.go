package sim

import (
	"testing"
	"time"
)

// fixedDice always returns the same roll and cycles through glyphs.
type fixedDice struct {
	spawn bool
	next  int
}

func (d *fixedDice) SpawnRoll(Chance) bool { return d.spawn }

func (d *fixedDice) ChooseGlyph(set []rune) rune {
	r := set[d.next%len(set)]
	d.next++
	return r
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestTickerGate(t *testing.T) {
	tk := NewTicker(50*time.Millisecond, epoch)

	tests := []struct {
		name     string
		offset   time.Duration
		expected bool
	}{
		{"before interval", 49 * time.Millisecond, false},
		{"at interval", 50 * time.Millisecond, true},
		{"same instant again", 50 * time.Millisecond, false},
		{"just short of next", 99 * time.Millisecond, false},
		{"next interval", 100 * time.Millisecond, true},
		{"long gap", 500 * time.Millisecond, true},
		{"gap does not bank ticks", 510 * time.Millisecond, false},
	}

	for _, tc := range tests {
		before := tk.Last()
		got := tk.ShouldAdvance(epoch.Add(tc.offset))
		if got != tc.expected {
			t.Errorf("%s: ShouldAdvance() = %v, expected %v", tc.name, got, tc.expected)
		}
		if !got && !tk.Last().Equal(before) {
			t.Errorf("%s: false result must not move the reference point", tc.name)
		}
		if got && !tk.Last().Equal(epoch.Add(tc.offset)) {
			t.Errorf("%s: true result should record now", tc.name)
		}
	}
}

func TestActorJumpSequence(t *testing.T) {
	var a Actor
	if !a.RequestJump() {
		t.Fatal("Grounded actor should accept a jump")
	}

	expected := []int{1, 2, 3, 4, 5}
	for i, h := range expected {
		a.Advance(DefaultJumpHeight)
		if a.Height != h {
			t.Errorf("tick %d: height = %d, expected %d", i+1, a.Height, h)
		}
		if h < DefaultJumpHeight && !a.Jumping {
			t.Errorf("tick %d: should still be ascending", i+1)
		}
	}
	if a.Jumping {
		t.Error("Jumping should flip to false at the apex")
	}
}

func TestActorTrajectorySymmetric(t *testing.T) {
	for jump := 1; jump <= 8; jump++ {
		var a Actor
		a.RequestJump()

		ticks := 0
		for {
			a.Advance(jump)
			ticks++
			if a.Grounded() && !a.Jumping {
				break
			}
			if ticks > 100 {
				t.Fatalf("jump height %d: actor never landed", jump)
			}
		}
		if ticks != 2*jump {
			t.Errorf("jump height %d: landed after %d ticks, expected %d", jump, ticks, 2*jump)
		}
	}
}

func TestActorJumpIgnoredWhileAirborne(t *testing.T) {
	var a Actor
	a.RequestJump()
	a.Advance(DefaultJumpHeight)

	for a.Height > 0 {
		before := a
		if a.RequestJump() {
			t.Errorf("RequestJump() at height %d should be a no-op", a.Height)
		}
		if a != before {
			t.Errorf("RequestJump() changed state: %+v -> %+v", before, a)
		}
		a.Advance(DefaultJumpHeight)
	}

	if !a.RequestJump() {
		t.Error("Jump should be accepted again once grounded")
	}
}

func TestActorHeightBounded(t *testing.T) {
	var a Actor
	for i := 0; i < 1000; i++ {
		if i%3 == 0 {
			a.RequestJump()
		}
		a.Advance(DefaultJumpHeight)
		if a.Height < 0 || a.Height > DefaultJumpHeight {
			t.Fatalf("tick %d: height %d out of [0, %d]", i, a.Height, DefaultJumpHeight)
		}
	}
}

func TestObstacleAdvanceRetire(t *testing.T) {
	om := NewObstacleManager(79, DefaultSpawnChance, []rune{'#'}, &fixedDice{})
	om.obstacles = []Obstacle{{X: 3, Glyph: '#'}, {X: 1, Glyph: '#'}}

	om.Update()

	got := om.Obstacles()
	if len(got) != 1 {
		t.Fatalf("Expected 1 obstacle after retire, got %d: %+v", len(got), got)
	}
	if got[0].X != 2 {
		t.Errorf("Obstacle X = %d, expected 2", got[0].X)
	}
}

func TestObstacleAdvanceFloorsAtZero(t *testing.T) {
	om := NewObstacleManager(79, DefaultSpawnChance, []rune{'#'}, &fixedDice{})
	om.obstacles = []Obstacle{{X: 0, Glyph: '#'}}

	om.Advance()
	if om.obstacles[0].X != 0 {
		t.Errorf("Advance should floor at 0, got %d", om.obstacles[0].X)
	}
}

func TestObstacleSpawnThrottle(t *testing.T) {
	dice := &fixedDice{spawn: true}
	om := NewObstacleManager(79, DefaultSpawnChance, []rune{'a', 'b', 'c'}, dice)

	for tick := 0; tick < 1000; tick++ {
		before := om.Obstacles()
		om.Update()
		after := om.Obstacles()

		atSpawn := 0
		for _, o := range after {
			if o.X == 79 {
				atSpawn++
			}
		}
		if atSpawn > 1 {
			t.Fatalf("tick %d: %d obstacles at spawn column", tick, atSpawn)
		}

		// Positions never increase and stay in spawn order.
		for i := 1; i < len(after); i++ {
			if after[i].X >= after[i-1].X {
				t.Fatalf("tick %d: obstacles not in decreasing X order: %+v", tick, after)
			}
		}

		// Survivors keep their relative order and moved left by one.
		retired := len(before) + 1 - len(after)
		if retired < 0 {
			retired = 0
		}
		for i := retired; i < len(before) && i-retired < len(after); i++ {
			prev, cur := before[i], after[i-retired]
			if cur.X > prev.X {
				t.Fatalf("tick %d: obstacle moved right %d -> %d", tick, prev.X, cur.X)
			}
		}
	}
}

func TestObstacleSpawnRespectsRoll(t *testing.T) {
	om := NewObstacleManager(79, DefaultSpawnChance, []rune{'#'}, &fixedDice{spawn: false})
	for i := 0; i < 100; i++ {
		om.Update()
	}
	if om.Len() != 0 {
		t.Errorf("No obstacles should spawn when rolls fail, got %d", om.Len())
	}
}

func TestRandDiceChance(t *testing.T) {
	d := NewRandDice(7)
	hits := 0
	const n = 20000
	for i := 0; i < n; i++ {
		if d.SpawnRoll(Chance{Num: 1, Den: 20}) {
			hits++
		}
	}
	// Expect ~1000; allow a generous band.
	if hits < 800 || hits > 1200 {
		t.Errorf("SpawnRoll(1/20) hit %d of %d", hits, n)
	}

	if d.SpawnRoll(Chance{Num: 0, Den: 20}) {
		t.Error("Zero chance should never hit")
	}
	if !d.SpawnRoll(Chance{Num: 1, Den: 1}) {
		t.Error("Certain chance should always hit")
	}
}

func TestRandDiceDeterministic(t *testing.T) {
	set := []rune("abcde")
	a, b := NewRandDice(42), NewRandDice(42)
	for i := 0; i < 100; i++ {
		if a.ChooseGlyph(set) != b.ChooseGlyph(set) {
			t.Fatal("Dice with the same seed diverged")
		}
	}
}

func TestCollision(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected bool
	}{
		{
			name:     "obstacle at actor column, grounded",
			state:    State{Obstacles: []Obstacle{{X: 2, Glyph: '#'}}},
			expected: true,
		},
		{
			name:     "obstacle at actor column, height 1",
			state:    State{Actor: Actor{Height: 1}, Obstacles: []Obstacle{{X: 2, Glyph: '#'}}},
			expected: false,
		},
		{
			name:     "obstacle at actor column, at apex",
			state:    State{Actor: Actor{Height: 5}, Obstacles: []Obstacle{{X: 2, Glyph: '#'}}},
			expected: false,
		},
		{
			name:     "no obstacle at actor column, grounded",
			state:    State{Obstacles: []Obstacle{{X: 3, Glyph: '#'}, {X: 1, Glyph: '#'}}},
			expected: false,
		},
		{
			name:     "grounded but jump just requested",
			state:    State{Actor: Actor{Jumping: true}, Obstacles: []Obstacle{{X: 2, Glyph: '#'}}},
			expected: true,
		},
		{
			name:     "empty field",
			state:    State{},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCollision(tc.state, DefaultActorColumn); got != tc.expected {
				t.Errorf("IsCollision() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestSimulationScoreCountsAdmittedTicks(t *testing.T) {
	p := DefaultParams()
	s := New(p, &fixedDice{}, epoch)

	now := epoch
	admitted := 0
	for i := 0; i < 100; i++ {
		now = now.Add(10 * time.Millisecond)
		if s.Update(now) {
			admitted++
		}
	}

	if admitted != 20 {
		t.Errorf("Expected 20 admitted ticks over 1s at 50ms, got %d", admitted)
	}
	if s.Score() != admitted {
		t.Errorf("Score() = %d, expected %d", s.Score(), admitted)
	}
}

func TestSimulationGroundOffsetWraps(t *testing.T) {
	p := DefaultParams()
	s := New(p, &fixedDice{}, epoch)

	for i := 0; i < p.Width; i++ {
		s.Tick()
		off := s.State().GroundOffset
		if off < 0 || off >= p.Width {
			t.Fatalf("tick %d: offset %d out of range", i+1, off)
		}
		if i == 0 && off != p.Width-1 {
			t.Errorf("First tick should wrap offset to %d, got %d", p.Width-1, off)
		}
	}
	if off := s.State().GroundOffset; off != 0 {
		t.Errorf("After %d ticks offset = %d, expected 0", p.Width, off)
	}
}

func TestSimulationDeterminism(t *testing.T) {
	p := DefaultParams()
	run := func() State {
		s := New(p, NewRandDice(12345), epoch)
		for i := 0; i < 500; i++ {
			if i%17 == 0 {
				s.RequestJump()
			}
			s.Tick()
		}
		return s.State()
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Actor != b.Actor || a.GroundOffset != b.GroundOffset {
		t.Fatalf("Runs diverged: %+v vs %+v", a, b)
	}
	if len(a.Obstacles) != len(b.Obstacles) {
		t.Fatalf("Obstacle counts differ: %d vs %d", len(a.Obstacles), len(b.Obstacles))
	}
	for i := range a.Obstacles {
		if a.Obstacles[i] != b.Obstacles[i] {
			t.Errorf("Obstacle %d differs: %+v vs %+v", i, a.Obstacles[i], b.Obstacles[i])
		}
	}
}

func TestSimulationStateIsSnapshot(t *testing.T) {
	s := New(DefaultParams(), &fixedDice{spawn: true}, epoch)
	s.Tick()

	st := s.State()
	if len(st.Obstacles) != 1 {
		t.Fatalf("Expected one spawned obstacle, got %d", len(st.Obstacles))
	}
	st.Obstacles[0].X = 0

	if s.State().Obstacles[0].X != DefaultWidth-1 {
		t.Error("Mutating a snapshot must not affect the simulation")
	}
}
