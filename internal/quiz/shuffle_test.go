package quiz

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShuffleOrder(t *testing.T) {
	t.Run("is a permutation", func(t *testing.T) {
		order := ShuffleOrder(10, 42)
		sorted := append([]int(nil), order...)
		sort.Ints(sorted)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, sorted)
	})

	t.Run("same seed same order", func(t *testing.T) {
		assert.Equal(t, ShuffleOrder(8, 7), ShuffleOrder(8, 7))
	})

	t.Run("seeds vary the order", func(t *testing.T) {
		seen := map[string]bool{}
		for seed := uint64(0); seed < 20; seed++ {
			seen[fmtOrder(ShuffleOrder(6, seed))] = true
		}
		assert.Greater(t, len(seen), 1)
	})

	t.Run("degenerate sizes", func(t *testing.T) {
		assert.Empty(t, ShuffleOrder(0, 1))
		assert.Equal(t, []int{0}, ShuffleOrder(1, 1))
	})
}

func fmtOrder(order []int) string {
	b := make([]byte, len(order))
	for i, v := range order {
		b[i] = byte('0' + v)
	}
	return string(b)
}
