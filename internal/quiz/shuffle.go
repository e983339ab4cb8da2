package quiz

import (
	"math/rand/v2"
)

// ShuffleOrder returns a Fisher–Yates permutation of 0..n-1. The same seed
// always yields the same order, so a question keeps its layout for as long as
// it keeps its seed.
func ShuffleOrder(n int, seed uint64) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// RandomSeed draws a fresh seed for a new question instance.
func RandomSeed() uint64 {
	return rand.Uint64()
}
