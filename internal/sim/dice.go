package sim

import "math/rand"

// Dice is the randomness the simulation consumes.
// Implementations must be deterministic for a given seed so runs replay.
type Dice interface {
	// SpawnRoll returns true with probability c.Num/c.Den.
	SpawnRoll(c Chance) bool
	// ChooseGlyph picks one symbol uniformly from set.
	ChooseGlyph(set []rune) rune
}

// RandDice is a seeded math/rand source.
type RandDice struct {
	rng *rand.Rand
}

// NewRandDice creates dice seeded with seed.
func NewRandDice(seed int64) *RandDice {
	return &RandDice{rng: rand.New(rand.NewSource(seed))}
}

// SpawnRoll implements Dice.
func (d *RandDice) SpawnRoll(c Chance) bool {
	if c.Den <= 0 || c.Num <= 0 {
		return false
	}
	return d.rng.Intn(c.Den) < c.Num
}

// ChooseGlyph implements Dice.
func (d *RandDice) ChooseGlyph(set []rune) rune {
	if len(set) == 0 {
		return ' '
	}
	return set[d.rng.Intn(len(set))]
}
