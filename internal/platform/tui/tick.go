// Package tui provides the Bubble Tea front end for the flight runner.
// It handles the terminal UI loop, key bindings, styling and SSH play.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per poll interval to step the session.
type TickMsg time.Time

// gameOverMsg ends the program after the game-over screen has been shown.
type gameOverMsg struct{}

// tickCmd returns a Bubble Tea command that sends a tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// holdCmd waits d before asking the model to quit.
func holdCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return gameOverMsg{}
	})
}
