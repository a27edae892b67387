package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueueOrder(t *testing.T) {
	heap := NewPriorityQueue[string, float64](4)
	heap.Enqueue("c", 3)
	heap.Enqueue("a", 1)
	heap.Enqueue("d", 4.5)
	heap.Enqueue("b", 2)
	heap.Enqueue("a2", 1)

	order := NewList[string](5)
	for {
		item, ok := heap.Dequeue()
		if !ok {
			break
		}
		order.Add(item)
	}
	require.Len(t, order, 5)
	assert.ElementsMatch(t, []string{"a", "a2"}, order[:2])
	assert.Equal(t, []string{"b", "c", "d"}, []string(order[2:]))
}

func TestFlagsReset(t *testing.T) {
	flags := NewFlags[float64](5, -1)
	*flags.Get(2) = 10
	*flags.Get(4) = 3
	assert.Equal(t, 10.0, flags.Peek(2))

	flags.Reset()
	for i := int32(0); i < 5; i++ {
		assert.Equal(t, -1.0, flags.Peek(i))
	}
}

func TestKDTreeClosest(t *testing.T) {
	tree := NewKDTree[int32](2)
	points := [][2]float64{{0, 0}, {10, 0}, {5, 5}, {-3, 2}, {7, 8}}
	for i, p := range points {
		tree.Insert(p[:], int32(i))
	}

	id, ok := tree.GetClosest([]float64{6, 6}, 5)
	require.True(t, ok)
	assert.Equal(t, int32(2), id)

	_, ok = tree.GetClosest([]float64{100, 100}, 5)
	assert.False(t, ok)

	found := NewList[int32](5)
	tree.ForInRange([]float64{0, 0}, 5, func(v int32) {
		found.Add(v)
	})
	assert.ElementsMatch(t, []int32{0, 3}, found)
}

func TestGetMostCommon(t *testing.T) {
	assert.Equal(t, "b", GetMostCommon([]string{"a", "b", "b", "a"}))
	assert.Equal(t, 3, GetMostCommon([]int{3, 1, 2}))
}
