// Package audio plays the short feedback tones: a chirp on takeoff and a
// low tone on collision. Sound is optional; when no output device is
// available every method is a no-op.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-flight/internal/core"
	"github.com/vovakirdan/tui-flight/internal/session"
)

const sampleRate = beep.SampleRate(44100)

// Tone parameters.
const (
	jumpFreq      = 880.0
	jumpDuration  = 60 * time.Millisecond
	crashFreq     = 110.0
	crashDuration = 400 * time.Millisecond
)

// Player mixes tones into the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// New creates a silent player. Call Init to open the speaker.
func New() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the audio device and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("audio: cannot init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Jump plays the takeoff chirp.
func (p *Player) Jump() {
	p.play(jumpFreq, jumpDuration, 0)
}

// Crash plays the collision tone.
func (p *Player) Crash() {
	p.play(crashFreq, crashDuration, 0.5)
}

func (p *Player) play(freq float64, d time.Duration, boost float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := Tone(freq, d, boost)
	if err != nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all sounds and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Tone returns a sine tone of the given length. boost is a volume change
// in halvings; 0 leaves the generator's level, negative is quieter.
func Tone(freq float64, d time.Duration, boost float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	quiet := &effects.Volume{
		Streamer: sine,
		Base:     2,
		Volume:   boost - 2,
	}
	return beep.Take(sampleRate.N(d), quiet), nil
}

// crashOutput plays the crash tone when the game-over message is shown.
type crashOutput struct {
	session.Output
	player *Player
}

// WrapOutput returns out with the crash tone attached to game over.
// The polled front end has no other hook into the session's events.
func (p *Player) WrapOutput(out session.Output) session.Output {
	return crashOutput{Output: out, player: p}
}

func (o crashOutput) RenderGameOver(score int) error {
	o.player.Crash()
	return o.Output.RenderGameOver(score)
}

// JumpCounter reports how many jumps a session has accepted.
type JumpCounter interface {
	JumpCount() int
}

// jumpInput plays the chirp once for every jump the session accepted.
// Presses ignored while airborne stay silent.
type jumpInput struct {
	session.Input
	jumps JumpCounter
	seen  int
	chirp func()
}

// WrapInput returns in with the jump chirp attached to accepted jumps.
// The chirp plays on the poll after the session took off.
func (p *Player) WrapInput(in session.Input, jumps JumpCounter) session.Input {
	return &jumpInput{Input: in, jumps: jumps, seen: jumps.JumpCount(), chirp: p.Jump}
}

func (i *jumpInput) Poll(timeout time.Duration) (core.Action, error) {
	if n := i.jumps.JumpCount(); n > i.seen {
		i.seen = n
		i.chirp()
	}
	return i.Input.Poll(timeout)
}
