package util

import (
	"cmp"
)

//*******************************************
// priority queue
//*******************************************

type _PQEntry[T any, P cmp.Ordered] struct {
	item T
	prio P
}

// Min-heap, the item with the smallest priority is dequeued first.
type PriorityQueue[T any, P cmp.Ordered] struct {
	heap List[_PQEntry[T, P]]
}

func NewPriorityQueue[T any, P cmp.Ordered](cap int) PriorityQueue[T, P] {
	return PriorityQueue[T, P]{
		heap: NewList[_PQEntry[T, P]](cap),
	}
}

func (self *PriorityQueue[T, P]) Length() int {
	return self.heap.Length()
}

func (self *PriorityQueue[T, P]) Enqueue(item T, prio P) {
	self.heap.Add(_PQEntry[T, P]{item, prio})
	i := self.heap.Length() - 1
	for i > 0 {
		parent := (i - 1) / 2
		if self.heap[parent].prio <= self.heap[i].prio {
			break
		}
		self.heap[parent], self.heap[i] = self.heap[i], self.heap[parent]
		i = parent
	}
}

func (self *PriorityQueue[T, P]) Dequeue() (T, bool) {
	l := self.heap.Length()
	if l == 0 {
		var t T
		return t, false
	}
	top := self.heap[0]
	last, _ := self.heap.Pop()
	l -= 1
	if l == 0 {
		return top.item, true
	}
	self.heap[0] = last
	i := 0
	for {
		left := 2*i + 1
		right := left + 1
		smallest := i
		if left < l && self.heap[left].prio < self.heap[smallest].prio {
			smallest = left
		}
		if right < l && self.heap[right].prio < self.heap[smallest].prio {
			smallest = right
		}
		if smallest == i {
			break
		}
		self.heap[smallest], self.heap[i] = self.heap[i], self.heap[smallest]
		i = smallest
	}
	return top.item, true
}

func (self *PriorityQueue[T, P]) Clear() {
	self.heap = self.heap[:0]
}
