// Package cell is the polled terminal front end built on tcell.
// Terminal implements session.Input and session.Output, so the session's
// own loop drives it: poll, advance, render, collide.
package cell

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-flight/internal/core"
)

// ErrClosed is returned by Poll after the terminal has been closed.
var ErrClosed = errors.New("cell: terminal closed")

// colorStyles maps core.Color to tcell styles.
var colorStyles = map[core.Color]tcell.Style{
	core.ColorDefault:      tcell.StyleDefault,
	core.ColorRed:          tcell.StyleDefault.Foreground(tcell.ColorMaroon),
	core.ColorGreen:        tcell.StyleDefault.Foreground(tcell.ColorGreen),
	core.ColorYellow:       tcell.StyleDefault.Foreground(tcell.ColorOlive),
	core.ColorBlue:         tcell.StyleDefault.Foreground(tcell.ColorNavy),
	core.ColorCyan:         tcell.StyleDefault.Foreground(tcell.ColorTeal),
	core.ColorWhite:        tcell.StyleDefault.Foreground(tcell.ColorSilver),
	core.ColorBrightYellow: tcell.StyleDefault.Foreground(tcell.PaletteColor(11)),
	core.ColorBrightCyan:   tcell.StyleDefault.Foreground(tcell.PaletteColor(14)),
	core.ColorOrange:       tcell.StyleDefault.Foreground(tcell.PaletteColor(208)),
	core.ColorGray:         tcell.StyleDefault.Foreground(tcell.PaletteColor(245)),
}

var (
	scoreStyle    = tcell.StyleDefault.Foreground(tcell.PaletteColor(14)).Bold(true)
	gameOverStyle = tcell.StyleDefault.Foreground(tcell.PaletteColor(9)).Bold(true)
)

// Terminal draws frames on a tcell screen and reads keys from it.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	closed chan struct{}
	rows   int // Height of the last rendered frame
}

// Open initializes the controlling terminal.
func Open() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("cell: cannot create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("cell: cannot init screen: %w", err)
	}
	return New(screen), nil
}

// New wraps an initialized screen and starts reading its events.
func New(screen tcell.Screen) *Terminal {
	screen.HideCursor()
	t := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, 100),
		closed: make(chan struct{}),
	}
	go t.pump()
	return t
}

// pump forwards screen events until the screen is finalized.
func (t *Terminal) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.closed:
			return
		}
	}
}

// Poll implements session.Input. It returns the first meaningful
// action within timeout, or ActionNone.
func (t *Terminal) Poll(timeout time.Duration) (core.Action, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case <-t.closed:
			return core.ActionNone, ErrClosed
		case <-deadline.C:
			return core.ActionNone, nil
		case ev := <-t.events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if a := MapKey(ev); a != core.ActionNone {
					return a, nil
				}
			case *tcell.EventResize:
				t.screen.Sync()
			case *tcell.EventError:
				return core.ActionNone, ev
			}
		}
	}
}

// MapKey translates a tcell key event to an action.
func MapKey(ev *tcell.EventKey) core.Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return core.ActionQuit
	case tcell.KeyUp:
		return core.ActionJump
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return core.ActionQuit
		case ' ':
			return core.ActionJump
		}
	}
	return core.ActionNone
}

// Render implements session.Output: a full redraw of frame with the
// score on the row below it.
func (t *Terminal) Render(frame *core.Screen, score int) error {
	t.screen.Clear()
	for y := range frame.Height() {
		for x := range frame.Width() {
			c := frame.GetCell(x, y)
			if c.Rune == ' ' {
				continue
			}
			t.screen.SetContent(x, y, c.Rune, nil, styleFor(c.Color))
		}
	}
	t.rows = frame.Height()
	t.drawText(0, t.rows, fmt.Sprintf("Score: %d", score), scoreStyle)
	t.screen.Show()
	return nil
}

// RenderGameOver implements session.Output. The message goes under the
// score row so the final frame stays visible.
func (t *Terminal) RenderGameOver(score int) error {
	t.drawText(0, t.rows+1, fmt.Sprintf("Game Over! Final Score: %d", score), gameOverStyle)
	t.screen.Show()
	return nil
}

// WaitKey blocks until any key is pressed or d elapses.
func (t *Terminal) WaitKey(d time.Duration) {
	deadline := time.NewTimer(d)
	defer deadline.Stop()
	for {
		select {
		case <-t.closed:
			return
		case <-deadline.C:
			return
		case ev := <-t.events:
			if _, ok := ev.(*tcell.EventKey); ok {
				return
			}
		}
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	select {
	case <-t.closed:
		return
	default:
	}
	close(t.closed)
	t.screen.Fini()
}

func (t *Terminal) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func styleFor(c core.Color) tcell.Style {
	if s, ok := colorStyles[c]; ok {
		return s
	}
	return tcell.StyleDefault
}
