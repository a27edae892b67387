package util

import (
	"math"
)

//*******************************************
// kd-tree
//*******************************************

type _KDNode[T any] struct {
	point []float64
	value T
	left  *_KDNode[T]
	right *_KDNode[T]
}

type KDTree[T any] struct {
	dim  int
	root *_KDNode[T]
	size int
}

func NewKDTree[T any](dim int) KDTree[T] {
	return KDTree[T]{dim: dim}
}

func (self *KDTree[T]) Length() int {
	return self.size
}

func (self *KDTree[T]) Insert(point []float64, value T) {
	p := make([]float64, self.dim)
	copy(p, point)
	node := &_KDNode[T]{point: p, value: value}
	self.size += 1
	if self.root == nil {
		self.root = node
		return
	}
	curr := self.root
	depth := 0
	for {
		axis := depth % self.dim
		if p[axis] < curr.point[axis] {
			if curr.left == nil {
				curr.left = node
				return
			}
			curr = curr.left
		} else {
			if curr.right == nil {
				curr.right = node
				return
			}
			curr = curr.right
		}
		depth += 1
	}
}

// Returns the value closest to point within max_dist (euclidean).
func (self *KDTree[T]) GetClosest(point []float64, max_dist float64) (T, bool) {
	var best T
	found := false
	best_dist := max_dist * max_dist
	var search func(node *_KDNode[T], depth int)
	search = func(node *_KDNode[T], depth int) {
		if node == nil {
			return
		}
		d := _SquaredDist(node.point, point)
		if d <= best_dist {
			best_dist = d
			best = node.value
			found = true
		}
		axis := depth % self.dim
		diff := point[axis] - node.point[axis]
		near, far := node.left, node.right
		if diff >= 0 {
			near, far = node.right, node.left
		}
		search(near, depth+1)
		if diff*diff <= best_dist {
			search(far, depth+1)
		}
	}
	search(self.root, 0)
	return best, found
}

// Calls the callback for every value within max_dist of point.
func (self *KDTree[T]) ForInRange(point []float64, max_dist float64, callback func(T)) {
	max_sq := max_dist * max_dist
	var search func(node *_KDNode[T], depth int)
	search = func(node *_KDNode[T], depth int) {
		if node == nil {
			return
		}
		if _SquaredDist(node.point, point) <= max_sq {
			callback(node.value)
		}
		axis := depth % self.dim
		diff := point[axis] - node.point[axis]
		if diff < 0 || diff*diff <= max_sq {
			search(node.left, depth+1)
		}
		if diff >= 0 || diff*diff <= max_sq {
			search(node.right, depth+1)
		}
	}
	search(self.root, 0)
}

func _SquaredDist(a, b []float64) float64 {
	sum := 0.0
	for i := 0; i < len(a); i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	if math.IsNaN(sum) {
		return math.Inf(1)
	}
	return sum
}
