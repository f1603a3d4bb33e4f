package sim

// IsCollision reports whether a grounded actor shares its column with an
// obstacle. An airborne actor never collides, at any height.
func IsCollision(state State, actorColumn int) bool {
	if state.Actor.Height != 0 {
		return false
	}
	for _, o := range state.Obstacles {
		if o.X == actorColumn {
			return true
		}
	}
	return false
}
