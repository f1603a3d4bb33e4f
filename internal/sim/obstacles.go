package sim

// Obstacle is a ground-level object scrolling toward the actor.
type Obstacle struct {
	X     int  // Column, decreases by one per tick
	Glyph rune // Symbol drawn at X on the lane row
}

// ObstacleManager owns the scrolling obstacle set.
// Obstacles are kept in spawn order, which is also decreasing X order.
type ObstacleManager struct {
	obstacles []Obstacle
	spawnX    int
	chance    Chance
	glyphs    []rune
	dice      Dice
}

// NewObstacleManager creates an empty manager spawning at spawnX.
func NewObstacleManager(spawnX int, chance Chance, glyphs []rune, dice Dice) *ObstacleManager {
	return &ObstacleManager{
		obstacles: make([]Obstacle, 0, 8),
		spawnX:    spawnX,
		chance:    chance,
		glyphs:    glyphs,
		dice:      dice,
	}
}

// Update runs one admitted tick: advance, retire, then spawn.
func (om *ObstacleManager) Update() {
	om.Advance()
	om.Retire()
	om.Spawn()
}

// Advance moves every obstacle one column left, flooring at 0.
func (om *ObstacleManager) Advance() {
	for i := range om.obstacles {
		if om.obstacles[i].X > 0 {
			om.obstacles[i].X--
		}
	}
}

// Retire removes obstacles that reached column 0.
// This is independent of collisions, which are checked separately.
func (om *ObstacleManager) Retire() {
	kept := om.obstacles[:0]
	for _, o := range om.obstacles {
		if o.X > 0 {
			kept = append(kept, o)
		}
	}
	om.obstacles = kept
}

// Spawn rolls the dice and appends an obstacle at the spawn column.
// Nothing spawns while the spawn column is still occupied.
// Returns true if an obstacle was added.
func (om *ObstacleManager) Spawn() bool {
	if !om.dice.SpawnRoll(om.chance) {
		return false
	}
	if om.SpawnOccupied() {
		return false
	}
	om.obstacles = append(om.obstacles, Obstacle{
		X:     om.spawnX,
		Glyph: om.dice.ChooseGlyph(om.glyphs),
	})
	return true
}

// SpawnOccupied returns true if an obstacle sits at the spawn column.
func (om *ObstacleManager) SpawnOccupied() bool {
	for _, o := range om.obstacles {
		if o.X == om.spawnX {
			return true
		}
	}
	return false
}

// Obstacles returns a copy of the live obstacles in spawn order.
func (om *ObstacleManager) Obstacles() []Obstacle {
	out := make([]Obstacle, len(om.obstacles))
	copy(out, om.obstacles)
	return out
}

// Len returns the number of live obstacles.
func (om *ObstacleManager) Len() int {
	return len(om.obstacles)
}
