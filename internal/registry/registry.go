// Package registry provides a global registry of glyph themes.
// Themes register themselves in init() functions, allowing the platform
// to discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-flight/internal/sim"
)

// Theme is a named glyph set for the actor, ground and obstacles.
type Theme struct {
	ID     string
	Title  string
	Glyphs sim.Glyphs
}

// Validate checks that the theme can be drawn.
func (t Theme) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("registry: theme has no ID")
	}
	if t.Glyphs.Actor == 0 {
		return fmt.Errorf("registry: theme %q has no actor glyph", t.ID)
	}
	if len(t.Glyphs.Ground) == 0 {
		return fmt.Errorf("registry: theme %q has no ground glyphs", t.ID)
	}
	if len(t.Glyphs.Obstacles) == 0 {
		return fmt.Errorf("registry: theme %q has no obstacle glyphs", t.ID)
	}
	return nil
}

var (
	themes = make(map[string]Theme)
	mu     sync.RWMutex
)

// Register adds a theme to the registry.
// Typically called from an init() function.
// Panics if the theme is invalid or a theme with the same ID is already registered.
func Register(t Theme) {
	if err := t.Validate(); err != nil {
		panic(err)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := themes[t.ID]; exists {
		panic(fmt.Sprintf("registry: theme %q already registered", t.ID))
	}
	themes[t.ID] = t
}

// List returns all registered themes, sorted by ID.
func List() []Theme {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Theme, 0, len(themes))
	for _, t := range themes {
		result = append(result, t)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the theme with the given ID.
// Returns an error if the ID is not registered.
func Get(id string) (Theme, error) {
	mu.RLock()
	defer mu.RUnlock()

	t, ok := themes[id]
	if !ok {
		return Theme{}, fmt.Errorf("registry: unknown theme %q", id)
	}
	return t, nil
}

// Exists checks if a theme with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := themes[id]
	return ok
}
