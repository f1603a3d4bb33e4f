package sim

import "github.com/vovakirdan/tui-flight/internal/core"

// Compose rasterizes state into a fresh frame.
// It reads nothing but its arguments, so composing the same state twice
// yields equal frames.
func Compose(state State, p Params) *core.Screen {
	frame := core.NewScreen(p.Width, p.Height)

	// Ground scrolls left as the offset decreases.
	pattern := p.Glyphs.Ground
	if len(pattern) > 0 {
		for x := 0; x < p.Width; x++ {
			gx := core.Wrap(x+state.GroundOffset, p.Width)
			frame.Set(gx, p.GroundRow(), pattern[x%len(pattern)], GroundColor)
		}
	}

	actorY := p.LaneRow() - core.Clamp(state.Actor.Height, 0, p.JumpHeight)
	frame.Set(p.ActorColumn, actorY, p.Glyphs.Actor, ActorColor)

	// Obstacles are drawn last and win any overlap with the actor.
	for _, o := range state.Obstacles {
		frame.Set(o.X, p.LaneRow(), o.Glyph, ObstacleColor)
	}

	return frame
}
