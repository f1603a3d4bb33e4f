package sim

// Actor is the vertical state of the controlled entity.
// Height is measured in rows above the lane; 0 means grounded.
type Actor struct {
	Height  int
	Jumping bool
}

// Grounded returns true if the actor is on the lane.
func (a Actor) Grounded() bool {
	return a.Height == 0
}

// RequestJump starts a jump if the actor is grounded and not already jumping.
// Returns true if the request took effect.
func (a *Actor) RequestJump() bool {
	if a.Jumping || a.Height != 0 {
		return false
	}
	a.Jumping = true
	return true
}

// Advance moves the actor one unit along its trajectory.
// Ascent stops at jumpHeight, where the jump flips into descent.
func (a *Actor) Advance(jumpHeight int) {
	if a.Jumping {
		if a.Height < jumpHeight {
			a.Height++
		}
		if a.Height >= jumpHeight {
			a.Height = jumpHeight
			a.Jumping = false
		}
		return
	}
	if a.Height > 0 {
		a.Height--
	}
}
