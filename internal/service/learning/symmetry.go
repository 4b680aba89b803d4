package learning

// The 8 dihedral symmetries of the 3x3 grid as cell permutations.
// transforms[t][i] is the source cell whose mark lands at cell i, so
// transformed[i] = original[transforms[t][i]].
var transforms = [8][9]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8}, // identity
	{6, 3, 0, 7, 4, 1, 8, 5, 2}, // rotate 90
	{8, 7, 6, 5, 4, 3, 2, 1, 0}, // rotate 180
	{2, 5, 8, 1, 4, 7, 0, 3, 6}, // rotate 270
	{2, 1, 0, 5, 4, 3, 8, 7, 6}, // flip horizontal
	{6, 7, 8, 3, 4, 5, 0, 1, 2}, // flip vertical
	{0, 3, 6, 1, 4, 7, 2, 5, 8}, // flip main diagonal
	{8, 5, 2, 7, 4, 1, 6, 3, 0}, // flip anti diagonal
}

// inverses[t][j] is the destination cell of source cell j under transform t.
var inverses = buildInverses()

func buildInverses() [8][9]int {
	var inv [8][9]int
	for t := range transforms {
		for i, src := range transforms[t] {
			inv[t][src] = i
		}
	}
	return inv
}

func applyTransform(state string, t int) string {
	buf := make([]byte, len(state))
	for i, src := range transforms[t] {
		buf[i] = state[src]
	}
	return string(buf)
}

// Canonicalize returns the lexicographically smallest of the 8 symmetry
// renditions of state, plus the transform index that produced it. All 8
// renditions of equivalent boards share one canonical key.
func Canonicalize(state string) (string, int) {
	best := state
	bestTransform := 0
	for t := 1; t < len(transforms); t++ {
		candidate := applyTransform(state, t)
		if candidate < best {
			best = candidate
			bestTransform = t
		}
	}
	return best, bestTransform
}

// MapToCanonical translates a cell index on the original board into the
// canonical orientation produced by transform t.
func MapToCanonical(cell, t int) int {
	return inverses[t][cell]
}

// MapFromCanonical is the exact inverse of MapToCanonical.
func MapFromCanonical(cell, t int) int {
	return transforms[t][cell]
}
