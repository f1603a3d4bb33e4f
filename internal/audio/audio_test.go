package audio

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flight/internal/core"
)

func TestToneLength(t *testing.T) {
	s, err := Tone(440, 100*time.Millisecond, 0)
	if err != nil {
		t.Fatalf("Tone() failed: %v", err)
	}

	want := sampleRate.N(100 * time.Millisecond)
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if total != want {
		t.Errorf("Tone streamed %d samples, expected %d", total, want)
	}
}

func TestToneRejectsBadFrequency(t *testing.T) {
	// Above Nyquist
	if _, err := Tone(float64(sampleRate), time.Millisecond, 0); err == nil {
		t.Error("Tone() should reject a frequency above the Nyquist limit")
	}
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	p := New()
	// Must not panic or block without a device.
	p.Jump()
	p.Crash()
	p.Close()
}

type stubOutput struct {
	gameOvers int
}

func (o *stubOutput) Render(*core.Screen, int) error { return nil }
func (o *stubOutput) RenderGameOver(int) error {
	o.gameOvers++
	return nil
}

type stubInput struct {
	action core.Action
	err    error
}

func (i stubInput) Poll(time.Duration) (core.Action, error) {
	return i.action, i.err
}

func TestWrappersPassThrough(t *testing.T) {
	p := New()

	out := &stubOutput{}
	if err := p.WrapOutput(out).RenderGameOver(3); err != nil {
		t.Fatalf("RenderGameOver() failed: %v", err)
	}
	if out.gameOvers != 1 {
		t.Errorf("Wrapped output not called, got %d", out.gameOvers)
	}

	a, err := p.WrapInput(stubInput{action: core.ActionJump}, &stubCounter{}).Poll(time.Millisecond)
	if err != nil || a != core.ActionJump {
		t.Errorf("Poll() = %v, %v; expected Jump, nil", a, err)
	}

	boom := errors.New("boom")
	_, err = p.WrapInput(stubInput{err: boom}, &stubCounter{}).Poll(time.Millisecond)
	if !errors.Is(err, boom) {
		t.Errorf("Poll() error = %v, expected %v", err, boom)
	}
}

type stubCounter struct {
	n int
}

func (c *stubCounter) JumpCount() int { return c.n }

func TestJumpInputChirpsOnAcceptedJumps(t *testing.T) {
	counter := &stubCounter{n: 2}
	chirps := 0
	in := &jumpInput{
		Input: stubInput{action: core.ActionJump},
		jumps: counter,
		seen:  counter.JumpCount(),
		chirp: func() { chirps++ },
	}

	steps := []struct {
		name   string
		count  int
		chirps int
	}{
		{"key pressed, nothing accepted yet", 2, 0},
		{"takeoff accepted", 3, 1},
		{"airborne presses ignored", 3, 1},
		{"second takeoff", 4, 2},
	}
	for _, st := range steps {
		counter.n = st.count
		if _, err := in.Poll(time.Millisecond); err != nil {
			t.Fatalf("%s: Poll() failed: %v", st.name, err)
		}
		if chirps != st.chirps {
			t.Errorf("%s: chirps = %d, expected %d", st.name, chirps, st.chirps)
		}
	}
}
