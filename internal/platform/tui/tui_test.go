package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flight/internal/core"
	"github.com/vovakirdan/tui-flight/internal/session"
	"github.com/vovakirdan/tui-flight/internal/replay"
	"github.com/vovakirdan/tui-flight/internal/sim"
	"github.com/vovakirdan/tui-flight/internal/storage"
)

func TestKeyMapMapKey(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"w ignored", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, core.ActionNone},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionQuit},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"x", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, core.ActionNone},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestRenderFrameKeepsGlyphs(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.Set(0, 0, '>', core.ColorBrightYellow)
	s.Set(3, 0, '#', core.ColorOrange)
	s.DrawText(0, 1, "______", core.ColorGray)

	out := RenderFrame(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	for _, want := range []string{">", "#", "______"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderFrame() output missing %q", want)
		}
	}
}

// stepClock advances one tick interval every time it is read after a tick.
type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}

func newTestModel(t *testing.T, opts ...ModelOption) (Model, *stepClock) {
	t.Helper()
	clock := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	p := sim.DefaultParams()
	p.SpawnChance = sim.Chance{Num: 0, Den: 1}
	sess := session.New(p, sim.NewRandDice(1), session.WithClock(clock.Now))
	return NewModel(sess, opts...), clock
}

func tick(t *testing.T, m Model, clock *stepClock) (Model, tea.Cmd) {
	t.Helper()
	clock.now = clock.now.Add(sim.DefaultTickInterval)
	next, cmd := m.Update(TickMsg(clock.now))
	return next.(Model), cmd
}

type countingSounder struct {
	jumps, crashes int
}

func (s *countingSounder) Jump()  { s.jumps++ }
func (s *countingSounder) Crash() { s.crashes++ }

func TestModelJumpAppliedOnNextTick(t *testing.T) {
	snd := &countingSounder{}
	m, clock := newTestModel(t, WithSounder(snd))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)
	if m.Session().State().Actor.Jumping {
		t.Fatal("Jump should wait for the next tick")
	}

	m, cmd := tick(t, m, clock)
	if cmd == nil {
		t.Fatal("Model should schedule another tick")
	}
	st := m.Session().State()
	if st.Actor.Height != 1 {
		t.Errorf("Height = %d after one tick, expected 1", st.Actor.Height)
	}
	if snd.jumps != 1 {
		t.Errorf("Sounder jumps = %d, expected 1", snd.jumps)
	}

	// A second press while airborne is ignored and plays nothing.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = tick(t, next.(Model), clock)
	if snd.jumps != 1 {
		t.Errorf("Airborne jump should be silent, got %d jumps", snd.jumps)
	}
}

func TestModelQuit(t *testing.T) {
	var finished *session.Result
	m, _ := newTestModel(t, WithOnFinish(func(r session.Result) { finished = &r }))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)

	if m.Session().Phase() != session.PhaseTerminated {
		t.Errorf("Phase = %v, expected terminated", m.Session().Phase())
	}
	if cmd == nil {
		t.Fatal("Quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Quit should return tea.Quit")
	}
	if finished == nil || finished.Phase != session.PhaseTerminated {
		t.Errorf("OnFinish not called with terminated result: %v", finished)
	}
}

func TestModelGameOver(t *testing.T) {
	snd := &countingSounder{}
	var results int
	clock := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	p := sim.DefaultParams()
	p.SpawnChance = sim.Chance{Num: 1, Den: 1}
	sess := session.New(p, sim.NewRandDice(1), session.WithClock(clock.Now))
	m := NewModel(sess, WithSounder(snd), WithOnFinish(func(session.Result) { results++ }))

	for i := 0; i < 200 && m.Session().Phase() == session.PhaseRunning; i++ {
		m, _ = tick(t, m, clock)
	}

	if m.Session().Phase() != session.PhaseGameOver {
		t.Fatalf("Phase = %v, expected game over", m.Session().Phase())
	}
	if snd.crashes != 1 {
		t.Errorf("Crash tones = %d, expected 1", snd.crashes)
	}
	if results != 1 {
		t.Errorf("OnFinish called %d times, expected 1", results)
	}

	view := m.View()
	if !strings.Contains(view, "Game Over! Final Score: 78") {
		t.Errorf("View() missing game-over line:\n%s", view)
	}

	// Ticks after game over do nothing.
	m, cmd := tick(t, m, clock)
	if cmd != nil {
		t.Error("No tick should be scheduled after game over")
	}

	// Any key leaves the game-over screen.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd == nil {
		t.Fatal("Key after game over should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Key after game over should return tea.Quit")
	}
}

func TestModelViewRunning(t *testing.T) {
	m, clock := newTestModel(t, WithTitle("flight"))
	m, _ = tick(t, m, clock)

	view := m.View()
	if !strings.Contains(view, "flight") {
		t.Error("View() should include the title")
	}
	if !strings.Contains(view, "Score: 1") {
		t.Errorf("View() missing score line:\n%s", view)
	}
	if !strings.Contains(view, "jump") {
		t.Error("View() should include key help")
	}
}

func TestModelSizeWarning(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 5})
	m = next.(Model)
	if !strings.Contains(m.View(), "smaller") {
		t.Error("View() should warn about a small terminal")
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	if strings.Contains(m.View(), "smaller") {
		t.Error("View() should not warn about a large terminal")
	}
}

func TestHostKeyPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := hostKeyPath("")
	if err != nil {
		t.Fatalf("hostKeyPath() failed: %v", err)
	}
	if want := filepath.Join(home, ".flight", "host_key"); got != want {
		t.Errorf("hostKeyPath() = %q, expected %q", got, want)
	}
	if _, err := os.Stat(filepath.Dir(got)); err != nil {
		t.Errorf("key directory not created: %v", err)
	}

	custom := filepath.Join(t.TempDir(), "keys", "id")
	if got, _ := hostKeyPath(custom); got != custom {
		t.Errorf("hostKeyPath(%q) = %q", custom, got)
	}
}

func newJournalServer(t *testing.T) *SSHServer {
	t.Helper()
	store, err := storage.Open(storage.MemoryPath)
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &SSHServer{logger: log.New(io.Discard), store: store}
}

func TestPendingRunAbandonJournalsTerminated(t *testing.T) {
	srv := newJournalServer(t)
	p := sim.DefaultParams()
	sess := session.New(p, sim.NewRandDice(1))

	run := &pendingRun{
		sess: sess,
		save: func(res session.Result) {
			srv.journal(replay.Record(res, p, 1, "classic", "alice"))
		},
	}
	// Client disconnected while the run was still going.
	run.abandon()
	run.abandon()

	runs, err := srv.store.RecentRuns(0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("journaled %d runs, expected 1", len(runs))
	}
	if runs[0].Outcome != session.PhaseTerminated.String() {
		t.Errorf("Outcome = %q, expected %q", runs[0].Outcome, session.PhaseTerminated.String())
	}
}

func TestPendingRunFinishWinsOverAbandon(t *testing.T) {
	var saved []session.Result
	run := &pendingRun{
		sess: session.New(sim.DefaultParams(), sim.NewRandDice(1)),
		save: func(res session.Result) { saved = append(saved, res) },
	}

	run.finish(session.Result{Phase: session.PhaseGameOver, Score: 42, Ticks: 42})
	run.abandon()

	if len(saved) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(saved))
	}
	if saved[0].Phase != session.PhaseGameOver || saved[0].Score != 42 {
		t.Errorf("saved %+v, expected the finished game over", saved[0])
	}
}

func TestJournalAfterCloseIsSkipped(t *testing.T) {
	srv := newJournalServer(t)
	srv.closeStore()

	// Must not touch the closed store.
	srv.journal(storage.RunRecord{Player: "bob", Theme: "classic", Outcome: "terminated"})
	if srv.store != nil {
		t.Error("closeStore() should clear the store")
	}
}
