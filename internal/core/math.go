package core

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Wrap returns val modulo n in the range [0, n).
// n must be positive.
func Wrap(val, n int) int {
	m := val % n
	if m < 0 {
		m += n
	}
	return m
}
