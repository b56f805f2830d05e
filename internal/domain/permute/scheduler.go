package permute

import "math/rand/v2"

// attempts returns how many swaps to try in a fraction of n statements.
func attempts(n int, density float64, rng *rand.Rand) int {
	if n < 2 || density <= 0 {
		return 0
	}

	if n == 2 {
		// One possible pair: a single trial keeps the expected number of
		// committed swaps in line with larger fractions.
		if rng.Float64() < 1-1/(1+density) {
			return 1
		}

		return 0
	}

	return int(density * float64(n))
}

// pickPair samples two positions of a fraction of n statements. Near pairs
// are more likely than far ones.
func pickPair(n int, rng *rand.Rand) (int, int) {
	u := rng.Float64()

	distance := 1 + int(u*u*float64(n-1))
	if distance > n-1 {
		distance = n - 1
	}

	start := rng.IntN(n - distance)

	return start, start + distance
}

// shuffle runs the attempts on one fraction and returns the committed swaps.
func (e *engine) shuffle(f *Fraction) (int, error) {
	n := len(f.Records)

	tries := attempts(n, e.density, e.rng)
	if tries == 0 {
		return 0, nil
	}

	g := buildGraph(f)

	// at lists the graph nodes by their current position in the fraction.
	at := make([]*graphNode, n)
	copy(at, g.nodes)

	changes := 0

	for range tries {
		i, j := pickPair(n, e.rng)
		a, b := at[i], at[j]

		if !g.legal(a, b) {
			continue
		}

		if err := g.swap(a, b); err != nil {
			return changes, err
		}

		if err := g.verify(); err != nil {
			if undo := g.swap(a, b); undo != nil {
				return changes, undo
			}

			return changes, err
		}

		at[i], at[j] = b, a
		changes++
	}

	return changes, nil
}
