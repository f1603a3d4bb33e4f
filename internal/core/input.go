package core

// Action is a semantic input intent, decoupled from physical keys.
// Front ends translate their key events into actions; the session only
// ever sees actions.
type Action int

const (
	ActionNone Action = iota
	ActionJump        // Space, Up
	ActionQuit        // Esc, q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
