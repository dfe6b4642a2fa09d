package queue

import "math/rand/v2"

// permutation returns a uniform random permutation of {0..n-1}
// (Fisher-Yates). Seeded fresh from the global source on every call; the
// order is never patched incrementally when the queue changes.
func permutation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	rand.Shuffle(n, func(i, j int) {
		p[i], p[j] = p[j], p[i]
	})
	return p
}
