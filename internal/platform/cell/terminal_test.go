package cell

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-flight/internal/core"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want core.Action
	}{
		{"esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), core.ActionQuit},
		{"ctrl+c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), core.ActionQuit},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), core.ActionQuit},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), core.ActionJump},
		{"w ignored", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), core.ActionNone},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), core.ActionJump},
		{"x", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), core.ActionNone},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapKey(tt.ev); got != tt.want {
				t.Errorf("MapKey() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if styleFor(core.Color(200)) != tcell.StyleDefault {
		t.Error("Unknown colors should fall back to the default style")
	}
	if styleFor(core.ColorOrange) == tcell.StyleDefault {
		t.Error("Orange should have its own style")
	}
}
