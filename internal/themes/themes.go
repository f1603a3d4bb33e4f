// Package themes registers the built-in glyph themes.
// Import it for side effects.
package themes

import (
	"github.com/vovakirdan/tui-flight/internal/registry"
	"github.com/vovakirdan/tui-flight/internal/sim"
)

func init() {
	registry.Register(registry.Theme{
		ID:     "classic",
		Title:  "Classic (plane over town)",
		Glyphs: sim.ClassicGlyphs(),
	})

	registry.Register(registry.Theme{
		ID:    "ascii",
		Title: "Plain ASCII",
		Glyphs: sim.Glyphs{
			Actor:     '>',
			Ground:    []rune("_._"),
			Obstacles: []rune("#%&@H"),
		},
	})

	registry.Register(registry.Theme{
		ID:    "blocks",
		Title: "Block drawing",
		Glyphs: sim.Glyphs{
			Actor:     '▶',
			Ground:    []rune("▁▂"),
			Obstacles: []rune("█▓▒▙▟"),
		},
	})
}
